package patient

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
	return &LoggingService{next: next, logger: logger.With().Str("domain", "patient").Logger(), metrics: metrics}
}

func (l *LoggingService) record(op string) {
	if l.metrics != nil {
		l.metrics.RecordOperation("patient", op)
	}
}

func (l *LoggingService) List(ctx context.Context, limit, offset int) ([]Response, int, error) {
	l.record("list")
	out, total, err := l.next.List(ctx, limit, offset)
	if err != nil {
		l.logger.Error().Err(err).Msg("list patients failed")
		return nil, 0, err
	}
	l.logger.Info().Int("count", len(out)).Int("total", total).Msg("listed patients")
	return out, total, nil
}

func (l *LoggingService) Get(ctx context.Context, id int64) (*Response, error) {
	l.record("get")
	out, err := l.next.Get(ctx, id)
	if err != nil {
		l.logger.Error().Err(err).Int64("patient_id", id).Msg("get patient failed")
		return nil, err
	}
	l.logger.Info().Int64("patient_id", id).Bool("found", out != nil).Msg("fetched patient")
	return out, nil
}

func (l *LoggingService) Create(ctx context.Context, in Input) (*Response, error) {
	l.record("create")
	out, err := l.next.Create(ctx, in)
	if err != nil {
		l.logger.Warn().Err(err).Msg("create patient failed")
		return nil, err
	}
	l.logger.Info().Int64("patient_id", out.ID).Msg("created patient")
	return out, nil
}

func (l *LoggingService) Update(ctx context.Context, id int64, in Input) (*Response, error) {
	l.record("update")
	out, err := l.next.Update(ctx, id, in)
	if err != nil {
		l.logger.Warn().Err(err).Int64("patient_id", id).Msg("update patient failed")
		return nil, err
	}
	l.logger.Info().Int64("patient_id", id).Msg("updated patient")
	return out, nil
}

func (l *LoggingService) Delete(ctx context.Context, id int64) error {
	l.record("delete")
	if err := l.next.Delete(ctx, id); err != nil {
		l.logger.Warn().Err(err).Int64("patient_id", id).Msg("delete patient failed")
		return err
	}
	l.logger.Info().Int64("patient_id", id).Msg("deleted patient")
	return nil
}
