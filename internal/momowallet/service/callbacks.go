package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"momo-wallet/internal/momowallet/data"
	"momo-wallet/pkg/logging"
)

type CallbackRepository interface {
	GetWithdrawalByReference(ctx context.Context, externalRef string) (data.Withdrawal, error)
	SetWithdrawalStatusIfProcessing(ctx context.Context, id string, status data.Status) (bool, error)
	CreditWallet(ctx context.Context, userID string, amount decimal.Decimal) error
	InsertAuditRecord(ctx context.Context, record data.AuditRecord) error
}

// Callbacks converges a withdrawal and its wallet to a consistent terminal
// state from provider-initiated notifications, exactly once under
// at-least-once delivery.
type Callbacks struct {
	transactionManager TransactionManager
	repository         CallbackRepository
	logger             *logging.ZapLogger
}

func NewCallbacks(
	transactionManager TransactionManager,
	repository CallbackRepository,
	logger *logging.ZapLogger,
) *Callbacks {
	return &Callbacks{
		transactionManager: transactionManager,
		repository:         repository,
		logger:             logger,
	}
}

type CallbackResult struct {
	WithdrawalID string
	Status       data.Status
	// Applied is false when the delivery was a duplicate or carried a
	// non-terminal status, i.e. nothing changed.
	Applied bool
}

// HandleDisbursement applies one provider notification. The status update
// is conditional on the record still being PROCESSING, so two concurrent
// deliveries for the same reference cannot both refund.
func (c *Callbacks) HandleDisbursement(ctx context.Context, event CallbackEvent) (CallbackResult, error) {
	normalized := NormalizeStatus(event.RawStatus)

	withdrawal, err := c.repository.GetWithdrawalByReference(ctx, event.ExternalRef)
	if err != nil {
		return CallbackResult{}, fmt.Errorf("failed to look up withdrawal: %w", err)
	}

	ctx = logging.WithContextFields(ctx,
		zap.String("withdrawalID", withdrawal.ID),
		zap.String("externalRef", withdrawal.ExternalRef),
		zap.String("rawStatus", event.RawStatus),
	)

	if _, err := Transition(withdrawal.Status, normalized); err != nil {
		// Already terminal: duplicate delivery, success without reapplying.
		c.logger.InfoCtx(ctx, "callback ignored, withdrawal already terminal")
		return CallbackResult{WithdrawalID: withdrawal.ID, Status: withdrawal.Status}, nil
	}
	if !normalized.Terminal() {
		c.logger.DebugCtx(ctx, "callback carries intermediate status, no change")
		return CallbackResult{WithdrawalID: withdrawal.ID, Status: withdrawal.Status}, nil
	}

	applied := false
	err = c.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		updated, err := c.repository.SetWithdrawalStatusIfProcessing(ctx, withdrawal.ID, normalized)
		if err != nil {
			return fmt.Errorf("failed to update withdrawal status: %w", err)
		}
		if !updated {
			// Lost the race against a concurrent delivery that already
			// applied a terminal status.
			return nil
		}
		applied = true
		switch normalized {
		case data.FailedStatus:
			if err := c.repository.CreditWallet(ctx, withdrawal.UserID, withdrawal.GrossAmount); err != nil {
				return fmt.Errorf("compensating credit failed: %w", err)
			}
			return c.repository.InsertAuditRecord(ctx, data.AuditRecord{
				UserID:      withdrawal.UserID,
				Amount:      withdrawal.GrossAmount,
				Kind:        data.RefundAuditKind,
				Reference:   withdrawal.ExternalRef,
				Description: fmt.Sprintf("Refund of failed withdrawal via %s", withdrawal.Provider),
				CreatedAt:   time.Now(),
			})
		default:
			return c.repository.InsertAuditRecord(ctx, data.AuditRecord{
				UserID:      withdrawal.UserID,
				Amount:      decimal.Zero,
				Kind:        data.CompletionAuditKind,
				Reference:   withdrawal.ExternalRef,
				Description: fmt.Sprintf("Withdrawal completed via %s", withdrawal.Provider),
				CreatedAt:   time.Now(),
			})
		}
	})
	if err != nil {
		c.logger.ErrorCtx(ctx, "failed to apply callback", zap.Error(err))
		return CallbackResult{}, err
	}
	if !applied {
		c.logger.InfoCtx(ctx, "callback raced a concurrent terminal update, nothing applied")
		return CallbackResult{WithdrawalID: withdrawal.ID, Status: normalized}, nil
	}
	c.logger.InfoCtx(ctx, "callback applied", zap.String("status", string(normalized)))
	return CallbackResult{WithdrawalID: withdrawal.ID, Status: normalized, Applied: true}, nil
}
