// internal/audit/audit.go
package audit

import (
	"context"
	"time"

	"faq-service/internal/common/logger"
	"faq-service/internal/common/metrics"
)

// Record is one query-audit entry: what was asked and what the pipeline
// resolved it to.
type Record struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Found     bool      `json:"found"`
	MatchedOn string    `json:"matchedOn"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder writes one audit record to a backing sink.
type Recorder interface {
	Write(ctx context.Context, rec Record) error
	Backend() string
}

// Dispatcher fires audit writes after the response is already determined.
// Writes run on their own goroutine with their own timeout; a failed write is
// logged and otherwise ignored. A nil Dispatcher and a Dispatcher with no
// recorder are both valid and do nothing.
type Dispatcher struct {
	recorder Recorder
	timeout  time.Duration
	logger   logger.Logger
}

func NewDispatcher(recorder Recorder, timeout time.Duration, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		recorder: recorder,
		timeout:  timeout,
		logger:   log,
	}
}

// Dispatch writes rec in the background and returns immediately.
func (d *Dispatcher) Dispatch(rec Record) {
	if d == nil || d.recorder == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.recorder.Write(ctx, rec); err != nil {
			metrics.AuditWrites.WithLabelValues(d.recorder.Backend(), "error").Inc()
			d.logger.WithError(err).Warn("audit write failed", map[string]interface{}{
				"backend": d.recorder.Backend(),
				"id":      rec.ID,
			})
			return
		}
		metrics.AuditWrites.WithLabelValues(d.recorder.Backend(), "success").Inc()
	}()
}
