package payment

import "context"

// Repository is the storage gateway for payments. GetByID reports absence as
// (nil, nil). Payments have no delete path of their own; they go away with
// their patient through the FK cascade.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id int64) (*Payment, error)
	List(ctx context.Context, limit, offset int) ([]*Payment, int, error)
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Payment, int, error)
}
