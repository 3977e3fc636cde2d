package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"momo-wallet/internal/momowallet/data"
	"momo-wallet/pkg/logging"
	"momo-wallet/pkg/msisdn"
)

type TopupRepository interface {
	InsertTopup(ctx context.Context, topup data.Topup) error
	GetTopupByReference(ctx context.Context, externalRef string) (data.Topup, error)
	SetTopupStatusIfPending(ctx context.Context, id string, status data.TopupStatus) (bool, error)
	CreditWallet(ctx context.Context, userID string, amount decimal.Decimal) error
	InsertAuditRecord(ctx context.Context, record data.AuditRecord) error
}

// Topups handles mobile-money deposits into the wallet: a PENDING request
// first, the wallet credited only when the provider confirms collection.
type Topups struct {
	transactionManager TransactionManager
	repository         TopupRepository
	logger             *logging.ZapLogger
}

func NewTopups(
	transactionManager TransactionManager,
	repository TopupRepository,
	logger *logging.ZapLogger,
) *Topups {
	return &Topups{
		transactionManager: transactionManager,
		repository:         repository,
		logger:             logger,
	}
}

func (t *Topups) RequestTopup(
	ctx context.Context,
	userID string,
	phoneNumber string,
	provider data.Provider,
	amount decimal.Decimal,
) (data.Topup, error) {
	if err := validateAmount(amount); err != nil {
		return data.Topup{}, err
	}
	phone, ok := msisdn.Normalize(phoneNumber)
	if !ok {
		return data.Topup{}, ErrInvalidPhoneNumber
	}

	now := time.Now()
	topup := data.Topup{
		ID:          uuid.NewString(),
		UserID:      userID,
		PhoneNumber: phone,
		Amount:      amount,
		Currency:    Currency,
		Provider:    provider,
		Status:      data.PendingTopupStatus,
		ExternalRef: uuid.NewString(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.repository.InsertTopup(ctx, topup); err != nil {
		return data.Topup{}, fmt.Errorf("failed to insert topup: %w", err)
	}
	t.logger.InfoCtx(ctx, "topup requested",
		zap.String("topupID", topup.ID),
		zap.String("externalRef", topup.ExternalRef),
	)
	return topup, nil
}

// HandleTopupCallback credits the wallet exactly once when the provider
// confirms collection. Duplicate deliveries are success no-ops, mirroring
// the withdrawal callback guarantees.
func (t *Topups) HandleTopupCallback(
	ctx context.Context,
	externalRef string,
	rawStatus string,
) (data.Topup, bool, error) {
	normalized := NormalizeStatus(rawStatus)

	topup, err := t.repository.GetTopupByReference(ctx, externalRef)
	if err != nil {
		return data.Topup{}, false, fmt.Errorf("failed to look up topup: %w", err)
	}

	ctx = logging.WithContextFields(ctx,
		zap.String("topupID", topup.ID),
		zap.String("externalRef", topup.ExternalRef),
	)

	if topup.Status != data.PendingTopupStatus {
		t.logger.InfoCtx(ctx, "topup callback ignored, already terminal")
		return topup, false, nil
	}
	if !normalized.Terminal() {
		t.logger.DebugCtx(ctx, "topup callback carries intermediate status, no change")
		return topup, false, nil
	}

	next := data.FailedTopupStatus
	if normalized == data.CompletedStatus {
		next = data.SuccessTopupStatus
	}

	applied := false
	err = t.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		updated, err := t.repository.SetTopupStatusIfPending(ctx, topup.ID, next)
		if err != nil {
			return fmt.Errorf("failed to update topup status: %w", err)
		}
		if !updated {
			return nil
		}
		applied = true
		if next != data.SuccessTopupStatus {
			return nil
		}
		if err := t.repository.CreditWallet(ctx, topup.UserID, topup.Amount); err != nil {
			return fmt.Errorf("wallet credit failed: %w", err)
		}
		return t.repository.InsertAuditRecord(ctx, data.AuditRecord{
			UserID:      topup.UserID,
			Amount:      topup.Amount,
			Kind:        data.TopupAuditKind,
			Reference:   topup.ExternalRef,
			Description: fmt.Sprintf("Top-up via mobile %s", topup.PhoneNumber),
			CreatedAt:   time.Now(),
		})
	})
	if err != nil {
		t.logger.ErrorCtx(ctx, "failed to apply topup callback", zap.Error(err))
		return data.Topup{}, false, err
	}
	topup.Status = next
	return topup, applied, nil
}
