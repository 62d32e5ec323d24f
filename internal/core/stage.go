package core

import (
	"context"
	"sync"
	"time"

	"github.com/valter-silva-au/onboard/internal/integration"
	"github.com/valter-silva-au/onboard/pkg/models"
)

// Stage lifecycle statuses reported to observers.
const (
	StageStarted   = "started"
	StageCompleted = "completed"
	StageFailed    = "failed"
)

// StageEvent is a progress notification emitted as each pipeline stage
// starts, completes, or fails. Observers drive the event log and the
// terminal progress view; they never influence control flow.
type StageEvent struct {
	RunID   string
	Step    string
	Status  string
	Error   string
	Metrics map[string]int
}

// StageObserver receives stage progress notifications. Observers must be
// safe to call from multiple goroutines: collector stages complete
// concurrently.
type StageObserver func(StageEvent)

// RunRecorder accumulates the per-stage outcomes of one pipeline run.
// Every stage appends exactly one StepOutcome on success or exactly one
// StepError on failure, never both. The mutex serializes appends from
// concurrently completing stages.
type RunRecorder struct {
	runID    string
	observer StageObserver

	mu     sync.Mutex
	steps  []models.StepOutcome
	errors []models.StepError
}

// NewRunRecorder creates a recorder for one run. observer may be nil.
func NewRunRecorder(runID string, observer StageObserver) *RunRecorder {
	return &RunRecorder{runID: runID, observer: observer}
}

func (r *RunRecorder) notify(step, status, errMsg string, metrics map[string]int) {
	if r.observer == nil {
		return
	}
	r.observer(StageEvent{
		RunID:   r.runID,
		Step:    step,
		Status:  status,
		Error:   errMsg,
		Metrics: metrics,
	})
}

func (r *RunRecorder) started(step string) {
	r.notify(step, StageStarted, "", nil)
}

func (r *RunRecorder) success(step string, metrics map[string]int) {
	r.mu.Lock()
	r.steps = append(r.steps, models.StepOutcome{
		Step:    step,
		Status:  "success",
		Metrics: metrics,
	})
	r.mu.Unlock()

	r.notify(step, StageCompleted, "", metrics)
}

func (r *RunRecorder) failure(step string, err error) {
	r.mu.Lock()
	r.errors = append(r.errors, models.StepError{
		Step:  step,
		Error: err.Error(),
	})
	r.mu.Unlock()

	r.notify(step, StageFailed, err.Error(), nil)
}

// Snapshot returns copies of the accumulated step and error lists.
func (r *RunRecorder) Snapshot() ([]models.StepOutcome, []models.StepError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	steps := make([]models.StepOutcome, len(r.steps))
	copy(steps, r.steps)
	errs := make([]models.StepError, len(r.errors))
	copy(errs, r.errors)
	return steps, errs
}

// runStage executes one pipeline stage with failure absorption. On success
// the stage's real value is returned and one StepOutcome recorded; on any
// error the caller-declared fallback is returned and one StepError
// recorded. Failures never propagate past this boundary, so downstream
// stages always receive a syntactically valid (possibly empty) record.
func runStage[T any](ctx context.Context, rec *RunRecorder, step string, fallback T, metrics func(T) map[string]int, work func(context.Context) (T, error)) T {
	rec.started(step)

	val, err := work(ctx)
	if err != nil {
		rec.failure(step, err)
		return fallback
	}

	var m map[string]int
	if metrics != nil {
		m = metrics(val)
	}
	rec.success(step, m)
	return val
}

// sendWithTimeout issues one session round-trip bounded by the per-call
// timeout. A timed-out call surfaces as an ordinary error and therefore as
// a stage failure, so a hung backend delays only its own collector.
func sendWithTimeout(ctx context.Context, session integration.ChatSession, timeout time.Duration, prompt string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return session.SendAndWait(ctx, prompt)
}
