package savings

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo persists savings entries.
//
// Assumed schema:
//
//	savings(id, org_id, user_id, amount_minor, currency, note, created_at, updated_at)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const entryColumns = `id, org_id, user_id, amount_minor, currency, note, created_at, updated_at`

func scanEntry(row interface{ Scan(...any) error }) (Entry, error) {
	var e Entry
	err := row.Scan(
		&e.ID,
		&e.OrgID,
		&e.UserID,
		&e.AmountMinor,
		&e.Currency,
		&e.Note,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return e, nil
}

func (r *PostgresRepo) Create(ctx context.Context, e Entry) error {
	const q = `
INSERT INTO savings (` + entryColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.OrgID, e.UserID, e.AmountMinor, e.Currency, e.Note, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) GetByID(ctx context.Context, orgID, id string) (Entry, error) {
	const q = `
SELECT ` + entryColumns + `
FROM savings
WHERE org_id = $1 AND id = $2
`
	return scanEntry(r.db.QueryRowContext(ctx, q, orgID, id))
}

func (r *PostgresRepo) ListByOrg(ctx context.Context, orgID string) ([]Entry, error) {
	const q = `
SELECT ` + entryColumns + `
FROM savings
WHERE org_id = $1
ORDER BY created_at
`
	return r.queryEntries(ctx, q, orgID)
}

func (r *PostgresRepo) ListByUser(ctx context.Context, orgID, userID string) ([]Entry, error) {
	const q = `
SELECT ` + entryColumns + `
FROM savings
WHERE org_id = $1 AND user_id = $2
ORDER BY created_at
`
	return r.queryEntries(ctx, q, orgID, userID)
}

func (r *PostgresRepo) Update(ctx context.Context, e Entry) error {
	const q = `
UPDATE savings
SET amount_minor = $3, note = $4, updated_at = $5
WHERE org_id = $1 AND id = $2
`
	res, err := r.db.ExecContext(ctx, q, e.OrgID, e.ID, e.AmountMinor, e.Note, e.UpdatedAt)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresRepo) Delete(ctx context.Context, orgID, id string) error {
	const q = `DELETE FROM savings WHERE org_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, q, orgID, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresRepo) TotalMinorByOrg(ctx context.Context, orgID string) (int64, error) {
	const q = `SELECT COALESCE(SUM(amount_minor), 0) FROM savings WHERE org_id = $1`
	var sum int64
	err := r.db.QueryRowContext(ctx, q, orgID).Scan(&sum)
	return sum, err
}

func (r *PostgresRepo) TotalMinorByUser(ctx context.Context, orgID, userID string) (int64, error) {
	const q = `SELECT COALESCE(SUM(amount_minor), 0) FROM savings WHERE org_id = $1 AND user_id = $2`
	var sum int64
	err := r.db.QueryRowContext(ctx, q, orgID, userID).Scan(&sum)
	return sum, err
}

func (r *PostgresRepo) queryEntries(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
