package payment

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/patientportal/portal/internal/platform/apperror"
)

// PatientDirectory answers whether a patient id exists. The patient
// repository satisfies it.
type PatientDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// API is the behavior exposed to transports and decorators.
type API interface {
	List(ctx context.Context, limit, offset int) ([]*Payment, int, error)
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Payment, int, error)
	Get(ctx context.Context, id int64) (*Payment, error)
	Create(ctx context.Context, in Input) (*Payment, error)
}

// Service implements the payment business rules. Payments are create-only;
// they leave the system with their patient via the FK cascade.
type Service struct {
	repo     Repository
	patients PatientDirectory
	validate *validator.Validate
}

func NewService(repo Repository, patients PatientDirectory) *Service {
	return &Service{repo: repo, patients: patients, validate: validator.New()}
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Payment, int, error) {
	out, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	return out, total, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Payment, int, error) {
	exists, err := s.patients.Exists(ctx, patientID)
	if err != nil {
		return nil, 0, fmt.Errorf("check patient: %w", err)
	}
	if !exists {
		return nil, 0, apperror.NotFound("patient", patientID)
	}
	out, total, err := s.repo.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list patient payments: %w", err)
	}
	return out, total, nil
}

// Get returns (nil, nil) when no payment has the given id.
func (s *Service) Get(ctx context.Context, id int64) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Payment, error) {
	if err := s.validate.Struct(in); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			switch errs[0].Field() {
			case "CheckNumber":
				return nil, apperror.Validation("checkNumber", "check number is required")
			case "Status":
				return nil, apperror.Validation("status", "status is required")
			case "PatientID":
				return nil, apperror.Validation("patientId", "patientId is required")
			}
		}
		return nil, apperror.Validation("input", "invalid input")
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, apperror.Validation("amount", "amount must be greater than zero")
	}
	if !ValidStatus(in.Status) {
		return nil, apperror.Validation("status", "unknown payment status %q", in.Status)
	}

	exists, err := s.patients.Exists(ctx, in.PatientID)
	if err != nil {
		return nil, fmt.Errorf("check patient: %w", err)
	}
	if !exists {
		return nil, apperror.NotFound("patient", in.PatientID)
	}

	p := &Payment{
		CheckNumber: in.CheckNumber,
		Amount:      in.Amount,
		Status:      in.Status,
		PatientID:   in.PatientID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return p, nil
}
