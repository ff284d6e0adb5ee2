package goals

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo persists personal goals.
//
// Assumed schema:
//
//	goals(id, org_id, user_id, title, target_minor, saved_minor, currency,
//	      deadline NULL, created_at, updated_at)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const goalColumns = `id, org_id, user_id, title, target_minor, saved_minor, currency, deadline, created_at, updated_at`

func scanGoal(row interface{ Scan(...any) error }) (Goal, error) {
	var g Goal
	err := row.Scan(
		&g.ID,
		&g.OrgID,
		&g.UserID,
		&g.Title,
		&g.TargetMinor,
		&g.SavedMinor,
		&g.Currency,
		&g.Deadline,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Goal{}, ErrNotFound
		}
		return Goal{}, err
	}
	return g, nil
}

func (r *PostgresRepo) Create(ctx context.Context, g Goal) error {
	const q = `
INSERT INTO goals (` + goalColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`
	_, err := r.db.ExecContext(ctx, q,
		g.ID, g.OrgID, g.UserID, g.Title, g.TargetMinor, g.SavedMinor, g.Currency, g.Deadline, g.CreatedAt, g.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) GetByID(ctx context.Context, orgID, id string) (Goal, error) {
	const q = `
SELECT ` + goalColumns + `
FROM goals
WHERE org_id = $1 AND id = $2
`
	return scanGoal(r.db.QueryRowContext(ctx, q, orgID, id))
}

func (r *PostgresRepo) ListByUser(ctx context.Context, orgID, userID string) ([]Goal, error) {
	const q = `
SELECT ` + goalColumns + `
FROM goals
WHERE org_id = $1 AND user_id = $2
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q, orgID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, g Goal) error {
	const q = `
UPDATE goals
SET title = $3, target_minor = $4, saved_minor = $5, deadline = $6, updated_at = $7
WHERE org_id = $1 AND id = $2
`
	res, err := r.db.ExecContext(ctx, q, g.OrgID, g.ID, g.Title, g.TargetMinor, g.SavedMinor, g.Deadline, g.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, orgID, id string) error {
	const q = `DELETE FROM goals WHERE org_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, q, orgID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
