package payment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/patientportal/portal/internal/platform/telemetry"
)

// LoggingService wraps an API with structured logging and operation metrics.
type LoggingService struct {
	next    API
	logger  zerolog.Logger
	metrics *telemetry.Provider
}

func NewLoggingService(next API, logger zerolog.Logger, metrics *telemetry.Provider) *LoggingService {
	return &LoggingService{next: next, logger: logger.With().Str("domain", "payment").Logger(), metrics: metrics}
}

func (l *LoggingService) record(op string) {
	if l.metrics != nil {
		l.metrics.RecordOperation("payment", op)
	}
}

func (l *LoggingService) List(ctx context.Context, limit, offset int) ([]*Payment, int, error) {
	l.record("list")
	out, total, err := l.next.List(ctx, limit, offset)
	if err != nil {
		l.logger.Error().Err(err).Msg("list payments failed")
		return nil, 0, err
	}
	l.logger.Info().Int("count", len(out)).Int("total", total).Msg("listed payments")
	return out, total, nil
}

func (l *LoggingService) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Payment, int, error) {
	l.record("list_by_patient")
	out, total, err := l.next.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		l.logger.Warn().Err(err).Int64("patient_id", patientID).Msg("list patient payments failed")
		return nil, 0, err
	}
	l.logger.Info().Int64("patient_id", patientID).Int("count", len(out)).Msg("listed patient payments")
	return out, total, nil
}

func (l *LoggingService) Get(ctx context.Context, id int64) (*Payment, error) {
	l.record("get")
	out, err := l.next.Get(ctx, id)
	if err != nil {
		l.logger.Error().Err(err).Int64("payment_id", id).Msg("get payment failed")
		return nil, err
	}
	l.logger.Info().Int64("payment_id", id).Bool("found", out != nil).Msg("fetched payment")
	return out, nil
}

func (l *LoggingService) Create(ctx context.Context, in Input) (*Payment, error) {
	l.record("create")
	out, err := l.next.Create(ctx, in)
	if err != nil {
		l.logger.Warn().Err(err).Str("check_number", in.CheckNumber).Msg("create payment failed")
		return nil, err
	}
	l.logger.Info().Int64("payment_id", out.ID).Int64("patient_id", out.PatientID).Msg("created payment")
	return out, nil
}
