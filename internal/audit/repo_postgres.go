package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo appends audit events.
//
// Assumed schema:
//
//	audit_events(id, org_id, type, actor_user_id, actor_role, ip_address,
//	             target_user_id, loan_id, message, metadata, created_at)
//
// The table carries an INSERT-only policy; there is no update or delete path.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (id, org_id, type, actor_user_id, actor_role, ip_address, target_user_id, loan_id, message, metadata, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.OrgID, e.Type, e.ActorUserID, e.ActorRole, e.IPAddress,
		e.TargetUserID, e.LoanID, e.Message, e.Metadata, e.CreatedAt,
	)
	return err
}
