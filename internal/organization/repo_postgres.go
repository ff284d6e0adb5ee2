package organization

import (
	"context"
	"database/sql"
	"errors"

	"fintrack-platform/internal/employees"
	"fintrack-platform/pkg/utils"
)

// PostgresRepo persists organizations.
//
// Assumed schema:
//
//	organizations(id, name, email, phone, address, created_at, updated_at)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) RegisterWithAdmin(ctx context.Context, org Organization, admin employees.User) error {
	const insertOrg = `
INSERT INTO organizations (id, name, email, phone, address, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`
	const insertAdmin = `
INSERT INTO users (id, org_id, full_name, email, role, password_hash, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`
	return utils.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertOrg,
			org.ID, org.Name, org.Email, org.Phone, org.Address, org.CreatedAt, org.UpdatedAt,
		); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, insertAdmin,
			admin.ID, admin.OrgID, admin.FullName, admin.Email, admin.Role,
			admin.PasswordHash, admin.Status, admin.CreatedAt, admin.UpdatedAt,
		)
		return err
	})
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Organization, error) {
	const q = `
SELECT id, name, email, phone, address, created_at, updated_at
FROM organizations
WHERE id = $1
`
	var org Organization
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&org.ID,
		&org.Name,
		&org.Email,
		&org.Phone,
		&org.Address,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Organization{}, ErrNotFound
		}
		return Organization{}, err
	}
	return org, nil
}

func (r *PostgresRepo) Update(ctx context.Context, org Organization) error {
	const q = `
UPDATE organizations
SET name = $2, email = $3, phone = $4, address = $5, updated_at = $6
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, org.ID, org.Name, org.Email, org.Phone, org.Address, org.UpdatedAt)
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
