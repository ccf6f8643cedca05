// internal/app/system/saga/saga.go

// Package saga runs multi-step workflows with per-step compensations in
// place of multi-document transactions. The storage layer gives us no
// cross-collection transaction guarantee, so each workflow declares an
// ordered list of steps, and on failure the compensations of the
// already-completed steps run in reverse order before the error is
// returned. Compensation order is enforced by structure here, not by
// nested error handling at call sites.
package saga

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Step is one action of a workflow. Compensate undoes a completed Run; it
// is nil when the step needs no undo (for example when an earlier step's
// compensation already covers it).
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Run executes steps in order. When a step fails, the compensations of all
// previously completed steps run in reverse order and the step's error is
// returned. Compensation failures are logged at error severity but do not
// change the returned error; the caller always sees the original failure.
func Run(ctx context.Context, log *zap.Logger, steps []Step) error {
	var done []Step
	for _, st := range steps {
		if err := st.Run(ctx); err != nil {
			compensate(ctx, log, done, st.Name)
			return fmt.Errorf("%s: %w", st.Name, err)
		}
		done = append(done, st)
	}
	return nil
}

// compensate undoes completed steps, newest first. A canceled or timed-out
// workflow context must not block its own rollback, so compensations run on
// a context detached from the parent's cancellation.
func compensate(ctx context.Context, log *zap.Logger, done []Step, failed string) {
	cctx := context.WithoutCancel(ctx)
	for i := len(done) - 1; i >= 0; i-- {
		st := done[i]
		if st.Compensate == nil {
			continue
		}
		if err := st.Compensate(cctx); err != nil {
			log.Error("compensation failed",
				zap.String("step", st.Name),
				zap.String("failed_step", failed),
				zap.Error(err))
			continue
		}
		log.Info("compensated step",
			zap.String("step", st.Name),
			zap.String("failed_step", failed))
	}
}
