package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/patientportal/portal/internal/platform/apperror"
)

// API is the behavior exposed to transports and decorators.
type API interface {
	List(ctx context.Context, limit, offset int) ([]Response, int, error)
	Get(ctx context.Context, id int64) (*Response, error)
	Create(ctx context.Context, in Input) (*Response, error)
	Update(ctx context.Context, id int64, in Input) (*Response, error)
	Delete(ctx context.Context, id int64) error
}

// Service implements the patient business rules.
type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source. Tests use this to pin ages.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// checkInput validates field constraints and parses the date of birth,
// rejecting dates in the future.
func (s *Service) checkInput(in Input) (time.Time, error) {
	if err := s.validate.Struct(in); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			fe := errs[0]
			switch fe.Field() {
			case "Name":
				if fe.Tag() == "max" {
					return time.Time{}, apperror.Validation("name", "name must be at most %s characters", fe.Param())
				}
				return time.Time{}, apperror.Validation("name", "name is required")
			case "DateOfBirth":
				return time.Time{}, apperror.Validation("dateOfBirth", "date of birth is required")
			case "Email":
				if fe.Tag() == "email" {
					return time.Time{}, apperror.Validation("email", "email address is not valid")
				}
				return time.Time{}, apperror.Validation("email", "email is required")
			}
		}
		return time.Time{}, apperror.Validation("input", "invalid input")
	}

	dob, err := in.ParseDOB()
	if err != nil {
		return time.Time{}, apperror.Validation("dateOfBirth", "%s", err.Error())
	}
	if dob.After(s.now()) {
		return time.Time{}, apperror.Validation("dateOfBirth", "date of birth cannot be in the future")
	}
	return dob, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Response, int, error) {
	patients, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	now := s.now()
	out := make([]Response, 0, len(patients))
	for _, p := range patients {
		out = append(out, p.ToResponse(now))
	}
	return out, total, nil
}

// Get returns (nil, nil) when no patient has the given id.
func (s *Service) Get(ctx context.Context, id int64) (*Response, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	if p == nil {
		return nil, nil
	}
	resp := p.ToResponse(s.now())
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Response, error) {
	dob, err := s.checkInput(in)
	if err != nil {
		return nil, err
	}
	p := &Patient{
		Name:        in.Name,
		DateOfBirth: dob,
		Email:       in.Email,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	resp := p.ToResponse(s.now())
	return &resp, nil
}

// Update resolves the patient before validating the payload, so a missing id
// always fails with NotFoundError no matter what the payload contains.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*Response, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	if existing == nil {
		return nil, apperror.NotFound("patient", id)
	}
	dob, err := s.checkInput(in)
	if err != nil {
		return nil, err
	}
	existing.Name = in.Name
	existing.DateOfBirth = dob
	existing.Email = in.Email
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	resp := existing.ToResponse(s.now())
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if !exists {
		return apperror.NotFound("patient", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}
