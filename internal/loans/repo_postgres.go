package loans

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo persists loans.
//
// Assumed schema:
//
//	loans(id, org_id, user_id, principal_minor, currency, purpose, status, repaid_minor, created_at, updated_at)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const loanColumns = `id, org_id, user_id, principal_minor, currency, purpose, status, repaid_minor, created_at, updated_at`

func scanLoan(row interface{ Scan(...any) error }) (Loan, error) {
	var l Loan
	err := row.Scan(
		&l.ID,
		&l.OrgID,
		&l.UserID,
		&l.PrincipalMinor,
		&l.Currency,
		&l.Purpose,
		&l.Status,
		&l.RepaidMinor,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, err
	}
	return l, nil
}

func (r *PostgresRepo) Create(ctx context.Context, l Loan) error {
	const q = `
INSERT INTO loans (` + loanColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`
	_, err := r.db.ExecContext(ctx, q,
		l.ID, l.OrgID, l.UserID, l.PrincipalMinor, l.Currency, l.Purpose, l.Status, l.RepaidMinor, l.CreatedAt, l.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) GetByID(ctx context.Context, orgID, id string) (Loan, error) {
	const q = `
SELECT ` + loanColumns + `
FROM loans
WHERE org_id = $1 AND id = $2
`
	return scanLoan(r.db.QueryRowContext(ctx, q, orgID, id))
}

func (r *PostgresRepo) ListByOrg(ctx context.Context, orgID string) ([]Loan, error) {
	const q = `
SELECT ` + loanColumns + `
FROM loans
WHERE org_id = $1
ORDER BY created_at
`
	return r.queryLoans(ctx, q, orgID)
}

func (r *PostgresRepo) ListByUser(ctx context.Context, orgID, userID string) ([]Loan, error) {
	const q = `
SELECT ` + loanColumns + `
FROM loans
WHERE org_id = $1 AND user_id = $2
ORDER BY created_at
`
	return r.queryLoans(ctx, q, orgID, userID)
}

func (r *PostgresRepo) Update(ctx context.Context, l Loan) error {
	const q = `
UPDATE loans
SET status = $3, repaid_minor = $4, purpose = $5, updated_at = $6
WHERE org_id = $1 AND id = $2
`
	res, err := r.db.ExecContext(ctx, q, l.OrgID, l.ID, l.Status, l.RepaidMinor, l.Purpose, l.UpdatedAt)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresRepo) Delete(ctx context.Context, orgID, id string) error {
	const q = `DELETE FROM loans WHERE org_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, q, orgID, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresRepo) OutstandingMinorByOrg(ctx context.Context, orgID string) (int64, error) {
	const q = `
SELECT COALESCE(SUM(GREATEST(principal_minor - repaid_minor, 0)), 0)
FROM loans
WHERE org_id = $1 AND status = 'approved'
`
	var sum int64
	err := r.db.QueryRowContext(ctx, q, orgID).Scan(&sum)
	return sum, err
}

func (r *PostgresRepo) OutstandingMinorByUser(ctx context.Context, orgID, userID string) (int64, error) {
	const q = `
SELECT COALESCE(SUM(GREATEST(principal_minor - repaid_minor, 0)), 0)
FROM loans
WHERE org_id = $1 AND user_id = $2 AND status = 'approved'
`
	var sum int64
	err := r.db.QueryRowContext(ctx, q, orgID, userID).Scan(&sum)
	return sum, err
}

func (r *PostgresRepo) queryLoans(ctx context.Context, q string, args ...any) ([]Loan, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
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
