package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"momo-wallet/pkg/logging"
)

type sagaStep struct {
	name       string
	action     func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// runSaga executes the steps' actions in order. When an action fails, the
// compensations of every previously succeeded step run in reverse order and
// the failing action's error is returned. A failed compensation is a
// double fault: the wallet and the withdrawal record may have diverged, so
// it is logged with full correlation for manual reconciliation and never
// masks the original error.
func runSaga(ctx context.Context, logger *logging.ZapLogger, steps []sagaStep) error {
	executed := make([]sagaStep, 0, len(steps))
	for _, step := range steps {
		err := step.action(ctx)
		if err == nil {
			executed = append(executed, step)
			continue
		}
		for i := len(executed) - 1; i >= 0; i-- {
			prev := executed[i]
			if prev.compensate == nil {
				continue
			}
			if compErr := prev.compensate(ctx); compErr != nil {
				logger.ErrorCtx(ctx, "saga compensation failed, manual reconciliation required",
					zap.String("failedStep", step.name),
					zap.String("compensatedStep", prev.name),
					zap.NamedError("compensationError", compErr),
					zap.Error(err),
				)
			}
		}
		return fmt.Errorf("step %s failed: %w", step.name, err)
	}
	return nil
}
