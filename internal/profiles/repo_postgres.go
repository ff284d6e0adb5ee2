package profiles

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo persists profiles.
//
// Assumed schema:
//
//	profiles(id, org_id, user_id UNIQUE, position, salary_minor, currency,
//	         hire_date, created_at, updated_at)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const profileColumns = `id, org_id, user_id, position, salary_minor, currency, hire_date, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.OrgID,
		&p.UserID,
		&p.Position,
		&p.SalaryMinor,
		&p.Currency,
		&p.HireDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *PostgresRepo) Create(ctx context.Context, p Profile) error {
	const q = `
INSERT INTO profiles (` + profileColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`
	_, err := r.db.ExecContext(ctx, q,
		p.ID, p.OrgID, p.UserID, p.Position, p.SalaryMinor, p.Currency, p.HireDate, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) GetByID(ctx context.Context, orgID, id string) (Profile, error) {
	const q = `
SELECT ` + profileColumns + `
FROM profiles
WHERE org_id = $1 AND id = $2
`
	return scanProfile(r.db.QueryRowContext(ctx, q, orgID, id))
}

func (r *PostgresRepo) GetByUser(ctx context.Context, orgID, userID string) (Profile, error) {
	const q = `
SELECT ` + profileColumns + `
FROM profiles
WHERE org_id = $1 AND user_id = $2
`
	return scanProfile(r.db.QueryRowContext(ctx, q, orgID, userID))
}

func (r *PostgresRepo) ListByOrg(ctx context.Context, orgID string) ([]Profile, error) {
	const q = `
SELECT ` + profileColumns + `
FROM profiles
WHERE org_id = $1
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, p Profile) error {
	const q = `
UPDATE profiles
SET position = $3, salary_minor = $4, currency = $5, hire_date = $6, updated_at = $7
WHERE org_id = $1 AND id = $2
`
	res, err := r.db.ExecContext(ctx, q, p.OrgID, p.ID, p.Position, p.SalaryMinor, p.Currency, p.HireDate, p.UpdatedAt)
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
	const q = `DELETE FROM profiles WHERE org_id = $1 AND id = $2`
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
