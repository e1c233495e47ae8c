package payment

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/patientportal/portal/internal/platform/apperror"
)

type mockRepo struct {
	payments map[int64]*Payment
	nextID   int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{payments: make(map[int64]*Payment), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, p *Payment) error {
	p.ID = m.nextID
	m.nextID++
	p.CreatedDate = time.Now()
	cp := *p
	m.payments[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) sorted() []*Payment {
	out := make([]*Payment, 0, len(m.payments))
	for _, p := range m.payments {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func page(all []*Payment, limit, offset int) []*Payment {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Payment, int, error) {
	all := m.sorted()
	return page(all, limit, offset), len(all), nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID int64, limit, offset int) ([]*Payment, int, error) {
	var all []*Payment
	for _, p := range m.sorted() {
		if p.PatientID == patientID {
			all = append(all, p)
		}
	}
	return page(all, limit, offset), len(all), nil
}

type mockPatients map[int64]bool

func (m mockPatients) Exists(_ context.Context, id int64) (bool, error) {
	return m[id], nil
}

func validInput() Input {
	return Input{
		CheckNumber: "CHK1001",
		Amount:      decimal.NewFromFloat(250.50),
		Status:      StatusReadyForRelease,
		PatientID:   1,
	}
}

func TestCreatePayment(t *testing.T) {
	svc := NewService(newMockRepo(), mockPatients{1: true})

	out, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID == 0 {
		t.Error("expected assigned id")
	}
	if !out.Amount.Equal(decimal.NewFromFloat(250.50)) {
		t.Errorf("amount = %s, want 250.5", out.Amount)
	}
	if out.UpdatedDate != nil {
		t.Error("updatedDate must be nil on create")
	}
}

func TestCreatePayment_Validation(t *testing.T) {
	svc := NewService(newMockRepo(), mockPatients{1: true})

	tests := []struct {
		name string
		mut  func(*Input)
	}{
		{"empty check number", func(in *Input) { in.CheckNumber = "" }},
		{"zero amount", func(in *Input) { in.Amount = decimal.Zero }},
		{"negative amount", func(in *Input) { in.Amount = decimal.NewFromInt(-5) }},
		{"empty status", func(in *Input) { in.Status = "" }},
		{"unknown status", func(in *Input) { in.Status = "Pending" }},
		{"zero patient id", func(in *Input) { in.PatientID = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mut(&in)
			if _, err := svc.Create(context.Background(), in); !apperror.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreatePayment_MissingPatient(t *testing.T) {
	svc := NewService(newMockRepo(), mockPatients{})
	_, err := svc.Create(context.Background(), validInput())
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCreatePayment_AllStatusesAccepted(t *testing.T) {
	svc := NewService(newMockRepo(), mockPatients{1: true})
	for status := range validStatuses {
		in := validInput()
		in.Status = status
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Errorf("status %q rejected: %v", status, err)
		}
	}
}

func TestGetPayment_Absent(t *testing.T) {
	svc := NewService(newMockRepo(), mockPatients{})
	out, err := svc.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("absence must not be an error: %v", err)
	}
	if out != nil {
		t.Errorf("expected nil, got %+v", out)
	}
}

func TestListByPatient(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, mockPatients{1: true, 2: true})

	for i, pid := range []int64{1, 2, 1} {
		in := validInput()
		in.PatientID = pid
		in.CheckNumber = "CHK" + string(rune('A'+i))
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	out, total, err := svc.ListByPatient(context.Background(), 1, 100, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(out) != 2 {
		t.Fatalf("got %d/%d payments, want 2", len(out), total)
	}
	for _, p := range out {
		if p.PatientID != 1 {
			t.Errorf("payment %d belongs to patient %d", p.ID, p.PatientID)
		}
	}
}

func TestListByPatient_MissingPatient(t *testing.T) {
	svc := NewService(newMockRepo(), mockPatients{})
	_, _, err := svc.ListByPatient(context.Background(), 9, 20, 0)
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
