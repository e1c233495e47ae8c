package seed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/patientportal/portal/internal/domain/patient"
	"github.com/patientportal/portal/internal/domain/payment"
)

type memPatients struct {
	rows   []*patient.Patient
	nextID int64
}

func (m *memPatients) Create(_ context.Context, p *patient.Patient) error {
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memPatients) GetByID(_ context.Context, id int64) (*patient.Patient, error) {
	for _, p := range m.rows {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPatients) List(_ context.Context, limit, offset int) ([]*patient.Patient, int, error) {
	total := len(m.rows)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return m.rows[offset:end], total, nil
}

func (m *memPatients) Update(_ context.Context, p *patient.Patient) error { return nil }
func (m *memPatients) Delete(_ context.Context, id int64) error           { return nil }
func (m *memPatients) Exists(_ context.Context, id int64) (bool, error) {
	p, _ := m.GetByID(nil, id)
	return p != nil, nil
}

type memPayments struct {
	rows   []*payment.Payment
	nextID int64
}

func (m *memPayments) Create(_ context.Context, p *payment.Payment) error {
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memPayments) GetByID(_ context.Context, id int64) (*payment.Payment, error) {
	return nil, nil
}

func (m *memPayments) List(_ context.Context, limit, offset int) ([]*payment.Payment, int, error) {
	total := len(m.rows)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return m.rows[offset:end], total, nil
}

func (m *memPayments) ListByPatient(_ context.Context, patientID int64, limit, offset int) ([]*payment.Payment, int, error) {
	return nil, 0, nil
}

func newSeeder() (*Seeder, *memPatients, *memPayments) {
	patients := &memPatients{}
	payments := &memPayments{}
	return New(patients, payments, zerolog.Nop()), patients, payments
}

func TestRunSeedsEverything(t *testing.T) {
	s, patients, payments := newSeeder()

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(patients.rows) != 20 {
		t.Errorf("patients = %d, want 20", len(patients.rows))
	}
	if len(payments.rows) != 10 {
		t.Errorf("payments = %d, want 10", len(payments.rows))
	}
}

func TestRunIsIdempotent(t *testing.T) {
	s, patients, payments := newSeeder()

	for i := 0; i < 2; i++ {
		if err := s.Run(context.Background()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if len(patients.rows) != 20 || len(payments.rows) != 10 {
		t.Errorf("second run changed the dataset: %d patients, %d payments",
			len(patients.rows), len(payments.rows))
	}
}

func TestPaymentsSkippedWithoutEnoughPatients(t *testing.T) {
	patients := &memPatients{}
	payments := &memPayments{}
	s := New(patients, payments, zerolog.Nop())

	// A database with some patients already present seeds no new patients
	// and, with fewer than ten, no payments.
	for i := 0; i < 3; i++ {
		patients.Create(nil, &patient.Patient{
			Name:        "Existing",
			DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			Email:       "existing@example.com",
		})
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(patients.rows) != 3 {
		t.Errorf("patients = %d, want untouched 3", len(patients.rows))
	}
	if len(payments.rows) != 0 {
		t.Errorf("payments = %d, want 0", len(payments.rows))
	}
}

func TestSeedDatasetConsistency(t *testing.T) {
	for _, ps := range paymentSeeds {
		if !payment.ValidStatus(ps.status) {
			t.Errorf("payment %s has unknown status %q", ps.checkNumber, ps.status)
		}
		if ps.patientSlot < 0 || ps.patientSlot >= len(patientSeeds) {
			t.Errorf("payment %s references patient slot %d out of range", ps.checkNumber, ps.patientSlot)
		}
	}
	for _, ps := range patientSeeds {
		if _, err := time.Parse(patient.DateLayout, ps.dob); err != nil {
			t.Errorf("patient %q has invalid dob %q", ps.name, ps.dob)
		}
	}
}

func TestSeededPaymentsReferenceRealPatients(t *testing.T) {
	s, patients, payments := newSeeder()
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, p := range payments.rows {
		ok, _ := patients.Exists(nil, p.PatientID)
		if !ok {
			t.Errorf("payment %s references missing patient %d", p.CheckNumber, p.PatientID)
		}
	}
}
