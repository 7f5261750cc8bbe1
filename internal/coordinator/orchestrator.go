// Package coordinator runs a fixed sequence of stages for one request and
// records each transition in the run log.
package coordinator

import (
	"context"
	"log/slog"
	"time"

	"github.com/jcmexdev/order-taking/internal/coordinator/runlog"
)

// Stage is a single step of a run. A stage reads what earlier stages produced
// and must not start until they have finished.
type Stage interface {
	Name() string
	Execute(ctx context.Context) error
}

type stageFunc struct {
	name string
	fn   func(ctx context.Context) error
}

// NewStage adapts a function to a Stage.
func NewStage(name string, fn func(ctx context.Context) error) Stage {
	return stageFunc{name: name, fn: fn}
}

func (s stageFunc) Name() string                      { return s.name }
func (s stageFunc) Execute(ctx context.Context) error { return s.fn(ctx) }

// StageObserver is told how each executed stage ended.
type StageObserver func(stage string, elapsed time.Duration, err error)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRunLog persists every transition to repo. A nil repo disables logging.
func WithRunLog(repo runlog.Repository) Option {
	return func(o *Orchestrator) { o.repo = repo }
}

// WithPayload stores the request body on the STARTED row.
func WithPayload(payload string) Option {
	return func(o *Orchestrator) { o.payload = payload }
}

// WithObserver registers a callback run after every stage.
func WithObserver(fn StageObserver) Option {
	return func(o *Orchestrator) { o.observe = fn }
}

// Orchestrator executes stages in order and stops at the first failure.
type Orchestrator struct {
	runID   string
	stages  []Stage
	repo    runlog.Repository
	payload string
	observe StageObserver
}

func NewOrchestrator(runID string, stages []Stage, opts ...Option) *Orchestrator {
	o := &Orchestrator{runID: runID, stages: stages}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start runs every stage sequentially. The first stage error is returned
// unchanged and no later stage runs.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.record(ctx, runlog.StatusStarted, "", o.payload, nil)

	for _, stage := range o.stages {
		slog.DebugContext(ctx, "executing stage", "run_id", o.runID, "stage", stage.Name())

		began := time.Now()
		err := stage.Execute(ctx)
		if o.observe != nil {
			o.observe(stage.Name(), time.Since(began), err)
		}
		if err != nil {
			slog.InfoContext(ctx, "stage failed", "run_id", o.runID, "stage", stage.Name(), "error", err)
			o.record(ctx, runlog.StatusFailed, stage.Name(), "", []string{stage.Name() + ": " + err.Error()})
			return err
		}
		o.record(ctx, runlog.StatusStageDone, stage.Name(), "", nil)
	}

	o.record(ctx, runlog.StatusCompleted, "", "", nil)
	return nil
}

// record writes a run log entry. Persistence failures are logged and never
// fail the run.
func (o *Orchestrator) record(ctx context.Context, status runlog.Status, stage, payload string, errs []string) {
	if o.repo == nil {
		return
	}
	entry := runlog.NewEntry(ctx, o.runID, status, stage, payload, errs)
	if err := o.repo.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "run log write failed", "run_id", o.runID, "status", status, "error", err)
	}
}
