package employees

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo persists users in the users table.
//
// Assumed schema:
//
//	users(id, org_id, full_name, email UNIQUE, role, password_hash, status, created_at, updated_at)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const userColumns = `id, org_id, full_name, email, role, password_hash, status, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.OrgID,
		&u.FullName,
		&u.Email,
		&u.Role,
		&u.PasswordHash,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepo) Create(ctx context.Context, u User) error {
	const q = `
INSERT INTO users (` + userColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`
	_, err := r.db.ExecContext(ctx, q,
		u.ID, u.OrgID, u.FullName, u.Email, u.Role, u.PasswordHash, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) GetByID(ctx context.Context, orgID, id string) (User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE org_id = $1 AND id = $2
`
	return scanUser(r.db.QueryRowContext(ctx, q, orgID, id))
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

func (r *PostgresRepo) ListByOrg(ctx context.Context, orgID string) ([]User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE org_id = $1
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, u User) error {
	const q = `
UPDATE users
SET full_name = $3, role = $4, password_hash = $5, status = $6, updated_at = $7
WHERE org_id = $1 AND id = $2
`
	res, err := r.db.ExecContext(ctx, q, u.OrgID, u.ID, u.FullName, u.Role, u.PasswordHash, u.Status, u.UpdatedAt)
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
	const q = `DELETE FROM users WHERE org_id = $1 AND id = $2`
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
