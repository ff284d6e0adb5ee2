package repayments

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo persists repayments.
//
// Assumed schema:
//
//	repayments(id, org_id, loan_id, user_id, amount_minor, currency, note, created_at)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const repaymentColumns = `id, org_id, loan_id, user_id, amount_minor, currency, note, created_at`

func scanRepayment(row interface{ Scan(...any) error }) (Repayment, error) {
	var rp Repayment
	err := row.Scan(
		&rp.ID,
		&rp.OrgID,
		&rp.LoanID,
		&rp.UserID,
		&rp.AmountMinor,
		&rp.Currency,
		&rp.Note,
		&rp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Repayment{}, ErrNotFound
		}
		return Repayment{}, err
	}
	return rp, nil
}

func (r *PostgresRepo) Create(ctx context.Context, rp Repayment) error {
	const q = `
INSERT INTO repayments (` + repaymentColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`
	_, err := r.db.ExecContext(ctx, q,
		rp.ID, rp.OrgID, rp.LoanID, rp.UserID, rp.AmountMinor, rp.Currency, rp.Note, rp.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) GetByID(ctx context.Context, orgID, id string) (Repayment, error) {
	const q = `
SELECT ` + repaymentColumns + `
FROM repayments
WHERE org_id = $1 AND id = $2
`
	return scanRepayment(r.db.QueryRowContext(ctx, q, orgID, id))
}

func (r *PostgresRepo) ListByOrg(ctx context.Context, orgID string) ([]Repayment, error) {
	const q = `
SELECT ` + repaymentColumns + `
FROM repayments
WHERE org_id = $1
ORDER BY created_at
`
	return r.queryRepayments(ctx, q, orgID)
}

func (r *PostgresRepo) ListByLoan(ctx context.Context, orgID, loanID string) ([]Repayment, error) {
	const q = `
SELECT ` + repaymentColumns + `
FROM repayments
WHERE org_id = $1 AND loan_id = $2
ORDER BY created_at
`
	return r.queryRepayments(ctx, q, orgID, loanID)
}

func (r *PostgresRepo) ListByUser(ctx context.Context, orgID, userID string) ([]Repayment, error) {
	const q = `
SELECT ` + repaymentColumns + `
FROM repayments
WHERE org_id = $1 AND user_id = $2
ORDER BY created_at
`
	return r.queryRepayments(ctx, q, orgID, userID)
}

func (r *PostgresRepo) TotalMinorByOrg(ctx context.Context, orgID string) (int64, error) {
	const q = `SELECT COALESCE(SUM(amount_minor), 0) FROM repayments WHERE org_id = $1`
	var sum int64
	err := r.db.QueryRowContext(ctx, q, orgID).Scan(&sum)
	return sum, err
}

func (r *PostgresRepo) TotalMinorByUser(ctx context.Context, orgID, userID string) (int64, error) {
	const q = `SELECT COALESCE(SUM(amount_minor), 0) FROM repayments WHERE org_id = $1 AND user_id = $2`
	var sum int64
	err := r.db.QueryRowContext(ctx, q, orgID, userID).Scan(&sum)
	return sum, err
}

func (r *PostgresRepo) queryRepayments(ctx context.Context, q string, args ...any) ([]Repayment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Repayment
	for rows.Next() {
		rp, err := scanRepayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}
