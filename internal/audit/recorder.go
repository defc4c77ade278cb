// Package audit records the per-invoice trail of pipeline actions.
package audit

import (
	"time"

	"github.com/Sh8ubham/ai-memory-intern/internal/model"
)

// Recorder accumulates timestamped audit entries for one invoice's pipeline
// pass. A Recorder is scoped to a single pass; create a fresh one (or Clear)
// between invoices.
type Recorder struct {
	now   func() time.Time
	trail []model.AuditStep
}

// NewRecorder creates an empty recorder using the system clock.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// NewRecorderWithClock creates a recorder with an injectable clock for tests.
func NewRecorderWithClock(now func() time.Time) *Recorder {
	return &Recorder{now: now}
}

// Log appends one (stage, detail) entry stamped with the current time.
func (r *Recorder) Log(stage model.AuditStage, details string) {
	r.trail = append(r.trail, model.AuditStep{
		Step:      stage,
		Timestamp: r.now().UTC(),
		Details:   details,
	})
}

// Trail returns the entries recorded so far, in order.
func (r *Recorder) Trail() []model.AuditStep {
	return r.trail
}

// Clear discards all recorded entries so the recorder can be reused.
func (r *Recorder) Clear() {
	r.trail = nil
}
