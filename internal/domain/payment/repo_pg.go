package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const paymentCols = "id, check_number, amount::text, status, patient_id, created_date, updated_date"

// PGRepository implements Repository over a pgx connection pool. Amounts are
// transported as text so NUMERIC values round-trip without float loss.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func scanPayment(row pgx.Row) (*Payment, error) {
	var (
		p      Payment
		amount string
	)
	err := row.Scan(&p.ID, &p.CheckNumber, &amount, &p.Status, &p.PatientID, &p.CreatedDate, &p.UpdatedDate)
	if err != nil {
		return nil, err
	}
	p.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return &p, nil
}

func (r *PGRepository) Create(ctx context.Context, p *Payment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO payments (check_number, amount, status, patient_id)
		 VALUES ($1, $2::numeric, $3, $4)
		 RETURNING id, created_date`,
		p.CheckNumber, p.Amount.String(), p.Status, p.PatientID,
	).Scan(&p.ID, &p.CreatedDate)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PGRepository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	p, err := scanPayment(r.pool.QueryRow(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select payment %d: %w", id, err)
	}
	return p, nil
}

func (r *PGRepository) List(ctx context.Context, limit, offset int) ([]*Payment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentCols+` FROM payments ORDER BY id ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	return collect(rows, total, limit)
}

func (r *PGRepository) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Payment, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE patient_id = $1`, patientID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count patient payments: %w", err)
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE patient_id = $1 ORDER BY id ASC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list patient payments: %w", err)
	}
	return collect(rows, total, limit)
}

func collect(rows pgx.Rows, total, limit int) ([]*Payment, int, error) {
	defer rows.Close()
	payments := make([]*Payment, 0, limit)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate payments: %w", err)
	}
	return payments, total, nil
}
