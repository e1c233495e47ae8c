package patient

import "context"

// Repository is the storage gateway for patients. GetByID reports absence as
// (nil, nil), not an error; Delete is a no-op for missing ids. Callers that
// need a not-found failure check existence first.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
