package exchange

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"krexchange/pkg/core"
)

// OrderFailure describes a rejected buy or sell.
type OrderFailure struct {
	Exchange   string
	Operation  core.Operation
	Reason     core.ErrorType
	StatusCode int
	// Body is the raw reply, possibly empty or not JSON.
	Body      []byte
	RequestID string
}

// FailureReporter receives order failures for diagnosis. Implementations
// must not block for long; a panic is recovered and logged by the caller.
type FailureReporter interface {
	ReportFailure(ctx context.Context, f *OrderFailure)
}

// ReporterFunc adapts a function to FailureReporter.
type ReporterFunc func(ctx context.Context, f *OrderFailure)

// ReportFailure implements FailureReporter.
func (fn ReporterFunc) ReportFailure(ctx context.Context, f *OrderFailure) {
	fn(ctx, f)
}

// LogReporter writes order failures to a zerolog logger.
type LogReporter struct {
	logger zerolog.Logger
}

// NewLogReporter creates a LogReporter.
func NewLogReporter(logger zerolog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// ReportFailure implements FailureReporter.
func (r *LogReporter) ReportFailure(_ context.Context, f *OrderFailure) {
	ev := r.logger.Error().
		Str("exchange", f.Exchange).
		Str("op", f.Operation.String()).
		Str("reason", f.Reason.String()).
		Int("status", f.StatusCode).
		Str("request_id", f.RequestID)
	if len(f.Body) > 0 && sonic.Valid(f.Body) {
		ev = ev.RawJSON("body", f.Body)
	} else {
		ev = ev.Str("body", string(f.Body))
	}
	ev.Msg("order failed")
}
