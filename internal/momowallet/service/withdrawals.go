package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"momo-wallet/internal/momowallet/data"
	"momo-wallet/internal/momowallet/provider"
	"momo-wallet/pkg/logging"
	"momo-wallet/pkg/msisdn"
)

const premiumTier = "premium"

type WithdrawalRepository interface {
	GetProfile(ctx context.Context, userID string) (data.Profile, error)
	DebitWalletIfEnough(ctx context.Context, userID string, amount decimal.Decimal) (bool, error)
	CreditWallet(ctx context.Context, userID string, amount decimal.Decimal) error
	InsertWithdrawal(ctx context.Context, withdrawal data.Withdrawal) error
	SetWithdrawalStatus(ctx context.Context, id string, status data.Status) error
	IncrementWithdrawSkips(ctx context.Context, userID string) error
	InsertAuditRecord(ctx context.Context, record data.AuditRecord) error
}

type GatewayResolver interface {
	ForProvider(p data.Provider) (provider.Gateway, error)
}

// Withdrawals orchestrates a single withdrawal end to end: fee split,
// conditional debit, durable record, provider transfer, and the unwinding
// of already-executed steps when a later one fails.
type Withdrawals struct {
	repository WithdrawalRepository
	gateways   GatewayResolver
	logger     *logging.ZapLogger
}

func NewWithdrawals(
	repository WithdrawalRepository,
	gateways GatewayResolver,
	logger *logging.ZapLogger,
) *Withdrawals {
	return &Withdrawals{
		repository: repository,
		gateways:   gateways,
		logger:     logger,
	}
}

// RequestWithdrawal debits gross from the user's wallet and submits the net
// amount to the user's mobile-money provider. On success the withdrawal is
// returned in PROCESSING: completion arrives later through the disbursement
// callback. Any failure after the debit is compensated before returning.
func (s *Withdrawals) RequestWithdrawal(
	ctx context.Context,
	userID string,
	gross decimal.Decimal,
) (data.Withdrawal, error) {
	if err := validateAmount(gross); err != nil {
		return data.Withdrawal{}, err
	}

	profile, err := s.repository.GetProfile(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNoSuchProfile):
			return data.Withdrawal{}, ErrProfileIncomplete
		default:
			return data.Withdrawal{}, fmt.Errorf("failed to load profile: %w", err)
		}
	}
	phone, ok := msisdn.Normalize(profile.Mobile)
	if !ok || profile.Provider == data.NullProvider {
		return data.Withdrawal{}, ErrProfileIncomplete
	}
	gateway, err := s.gateways.ForProvider(profile.Provider)
	if err != nil {
		s.logger.ErrorCtx(ctx, "no gateway for profile provider",
			zap.String("provider", string(profile.Provider)), zap.Error(err))
		return data.Withdrawal{}, ErrProfileIncomplete
	}

	fee, net := SplitGross(gross)
	now := time.Now()
	withdrawal := data.Withdrawal{
		ID:           uuid.NewString(),
		UserID:       userID,
		GrossAmount:  gross,
		FeeAmount:    fee,
		NetAmount:    net,
		Currency:     Currency,
		MobileNumber: phone,
		Provider:     profile.Provider,
		Status:       data.ProcessingStatus,
		ExternalRef:  uuid.NewString(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx = logging.WithContextFields(ctx,
		zap.String("withdrawalID", withdrawal.ID),
		zap.String("externalRef", withdrawal.ExternalRef),
	)

	err = runSaga(ctx, s.logger, []sagaStep{
		{
			name: "debit wallet",
			action: func(ctx context.Context) error {
				debited, err := s.repository.DebitWalletIfEnough(ctx, userID, gross)
				if err != nil {
					return fmt.Errorf("wallet debit failed: %w", err)
				}
				if !debited {
					return ErrInsufficientFunds
				}
				return nil
			},
			compensate: func(ctx context.Context) error {
				return s.repository.CreditWallet(ctx, userID, gross)
			},
		},
		{
			name: "insert withdrawal record",
			action: func(ctx context.Context) error {
				return s.repository.InsertWithdrawal(ctx, withdrawal)
			},
			compensate: func(ctx context.Context) error {
				return s.repository.SetWithdrawalStatus(ctx, withdrawal.ID, data.FailedStatus)
			},
		},
		{
			name: "provider transfer",
			action: func(ctx context.Context) error {
				// No retry here: resubmitting a transfer risks double
				// disbursement at the provider.
				return gateway.Transfer(ctx, withdrawal.ExternalRef, phone, net)
			},
		},
	})
	if err != nil {
		var providerErr *provider.Error
		switch {
		case errors.Is(err, ErrInsufficientFunds):
			return data.Withdrawal{}, ErrInsufficientFunds
		case errors.As(err, &providerErr):
			s.logger.ErrorCtx(ctx, "provider transfer failed, withdrawal rolled back", zap.Error(err))
			return data.Withdrawal{}, fmt.Errorf("%w: %s", ErrProviderUnavailable, providerErr.Provider)
		default:
			s.logger.ErrorCtx(ctx, "withdrawal failed, wallet refunded", zap.Error(err))
			return data.Withdrawal{}, ErrTransactionFailed
		}
	}

	s.recordAcceptedSideEffects(ctx, profile, withdrawal)
	return withdrawal, nil
}

// recordAcceptedSideEffects runs after the provider accepted the transfer.
// Both effects are non-critical: their failure must not fail the withdrawal.
func (s *Withdrawals) recordAcceptedSideEffects(
	ctx context.Context,
	profile data.Profile,
	withdrawal data.Withdrawal,
) {
	if profile.SubscriptionTier == premiumTier && profile.WithdrawSkipsUsed < profile.WithdrawSkipsLimit {
		if err := s.repository.IncrementWithdrawSkips(ctx, profile.UserID); err != nil {
			s.logger.WarnCtx(ctx, "failed to increment withdraw skips", zap.Error(err))
		}
	}
	err := s.repository.InsertAuditRecord(ctx, data.AuditRecord{
		UserID:      withdrawal.UserID,
		Amount:      withdrawal.GrossAmount.Neg(),
		Kind:        data.WithdrawalAuditKind,
		Reference:   withdrawal.ExternalRef,
		Description: fmt.Sprintf("Withdrawal to %s via %s", withdrawal.MobileNumber, withdrawal.Provider),
		CreatedAt:   time.Now(),
	})
	if err != nil {
		s.logger.WarnCtx(ctx, "failed to insert audit record", zap.Error(err))
	}
}
