// Package seed loads the demo dataset into an empty database. Patients and
// payments are checked independently, so payments can be seeded into a
// database whose patients were created earlier.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/patientportal/portal/internal/domain/patient"
	"github.com/patientportal/portal/internal/domain/payment"
)

type patientSeed struct {
	name  string
	dob   string
	email string
}

type paymentSeed struct {
	checkNumber string
	amount      string
	status      string
	patientSlot int
}

var patientSeeds = []patientSeed{
	{"Salvador Dali", "1904-05-11", "melting.clocks@surreal.com"},
	{"Frida Kahlo", "1907-07-06", "self.portraits@mexico.art"},
	{"Vincent van Gogh", "1853-03-30", "starry.night@postimpressionist.com"},
	{"Benjamin Reichwald", "1994-09-04", "bladee.city@bladeeRadio.2real"},
	{"Andy Warhol", "1928-08-06", "campbell.soup@popart.com"},
	{"Marina Abramović", "1946-11-30", "rhythm.zero@performance.art"},
	{"Jean-Michel Basquiat", "1960-12-22", "neo.expressionist@nyc.com"},
	{"Tracey Emin", "1963-07-03", "unmade.bed@yba.com"},
	{"Damien Hirst", "1965-06-07", "shark.tank@yba.com"},
	{"Banksy", "1974-07-28", "anonymous@street.art"},
	{"Yayoi Kusama", "1929-03-22", "infinity.dots@polka.com"},
	{"Ai Weiwei", "1957-08-28", "sunflower.seeds@contemporary.com"},
	{"Cindy Sherman", "1954-01-19", "untitled.film@stills.com"},
	{"Jeff Koons", "1955-01-21", "balloon.dog@kitsch.com"},
	{"Kara Walker", "1969-11-26", "silhouettes@history.com"},
	{"Maurizio Cattelan", "1960-09-21", "banana.tape@contemporary.com"},
	{"Olafur Eliasson", "1967-02-05", "weather.project@tate.org"},
	{"Anish Kapoor", "1954-03-12", "void@sculpture.com"},
	{"Jenny Holzer", "1950-07-29", "truisms@led.com"},
	{"Chris Ofili", "1968-10-10", "elephant.dung@painting.com"},
}

// paymentSeeds reference patients by list position, resolved to real ids at
// seed time.
var paymentSeeds = []paymentSeed{
	{"CHK1001", "100.00", payment.StatusReadyForRelease, 0},
	{"CHK1002", "150.50", payment.StatusReleased, 1},
	{"CHK1003", "200.75", payment.StatusDeterminingPath, 2},
	{"CHK1004", "250.00", payment.StatusOutForPayment, 3},
	{"CHK1005", "300.25", payment.StatusShipped, 4},
	{"CHK1006", "75.10", payment.StatusCashed, 5},
	{"CHK1007", "500.00", payment.StatusEscheatment, 6},
	{"CHK1008", "425.75", payment.StatusReleased, 7},
	{"CHK1009", "80.00", payment.StatusOutForPayment, 8},
	{"CHK1010", "999.99", payment.StatusReadyForRelease, 9},
}

// Seeder writes the demo dataset through the domain repositories.
type Seeder struct {
	patients patient.Repository
	payments payment.Repository
	logger   zerolog.Logger
}

func New(patients patient.Repository, payments payment.Repository, logger zerolog.Logger) *Seeder {
	return &Seeder{patients: patients, payments: payments, logger: logger.With().Str("component", "seed").Logger()}
}

// Run seeds patients, then payments. Each step is skipped when its table
// already has rows. Payments are only seeded when at least ten patients exist
// to attach them to.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedPatients(ctx); err != nil {
		return err
	}
	return s.seedPayments(ctx)
}

func (s *Seeder) seedPatients(ctx context.Context) error {
	_, total, err := s.patients.List(ctx, 1, 0)
	if err != nil {
		return fmt.Errorf("count patients: %w", err)
	}
	if total > 0 {
		s.logger.Info().Int("existing", total).Msg("patients already present, skipping")
		return nil
	}

	for _, ps := range patientSeeds {
		dob, err := time.Parse(patient.DateLayout, ps.dob)
		if err != nil {
			return fmt.Errorf("seed patient %q: %w", ps.name, err)
		}
		p := &patient.Patient{Name: ps.name, DateOfBirth: dob, Email: ps.email}
		if err := s.patients.Create(ctx, p); err != nil {
			return fmt.Errorf("seed patient %q: %w", ps.name, err)
		}
	}
	s.logger.Info().Int("count", len(patientSeeds)).Msg("seeded patients")
	return nil
}

func (s *Seeder) seedPayments(ctx context.Context) error {
	_, total, err := s.payments.List(ctx, 1, 0)
	if err != nil {
		return fmt.Errorf("count payments: %w", err)
	}
	if total > 0 {
		s.logger.Info().Int("existing", total).Msg("payments already present, skipping")
		return nil
	}

	existing, _, err := s.patients.List(ctx, len(paymentSeeds), 0)
	if err != nil {
		return fmt.Errorf("load patients for payments: %w", err)
	}
	if len(existing) < len(paymentSeeds) {
		s.logger.Warn().Int("patients", len(existing)).Msg("not enough patients, skipping payment seed")
		return nil
	}

	for _, ps := range paymentSeeds {
		amount, err := decimal.NewFromString(ps.amount)
		if err != nil {
			return fmt.Errorf("seed payment %s: %w", ps.checkNumber, err)
		}
		p := &payment.Payment{
			CheckNumber: ps.checkNumber,
			Amount:      amount,
			Status:      ps.status,
			PatientID:   existing[ps.patientSlot].ID,
		}
		if err := s.payments.Create(ctx, p); err != nil {
			return fmt.Errorf("seed payment %s: %w", ps.checkNumber, err)
		}
	}
	s.logger.Info().Int("count", len(paymentSeeds)).Msg("seeded payments")
	return nil
}
