package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"momo-wallet/internal/momowallet/data"
)

type BalanceInfo struct {
	Balance   decimal.Decimal
	Withdrawn decimal.Decimal
}

type BalanceRepository interface {
	GetWalletBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	GetTotalUserWithdraw(ctx context.Context, userID string) (decimal.Decimal, error)
	GetAllUserWithdrawals(ctx context.Context, userID string) ([]data.Withdrawal, error)
}

type Wallet struct {
	transactionManager TransactionManager
	repository         BalanceRepository
}

func NewWallet(transactionManager TransactionManager, repository BalanceRepository) *Wallet {
	return &Wallet{
		transactionManager: transactionManager,
		repository:         repository,
	}
}

func (w *Wallet) GetUserBalanceInfo(ctx context.Context, userID string) (BalanceInfo, error) {
	res := BalanceInfo{}
	err := w.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		balance, err := w.repository.GetWalletBalance(ctx, userID)
		if err != nil {
			return fmt.Errorf("getting wallet balance failed: %w", err)
		}
		res.Balance = balance
		withdrawn, err := w.repository.GetTotalUserWithdraw(ctx, userID)
		if err != nil {
			return fmt.Errorf("getting total user withdrawals failed: %w", err)
		}
		res.Withdrawn = withdrawn
		return nil
	})
	if err != nil {
		return BalanceInfo{}, err //nolint:wrapcheck // unnecessary
	}
	return res, nil
}

func (w *Wallet) GetAllUserWithdrawals(ctx context.Context, userID string) ([]data.Withdrawal, error) {
	withdrawals, err := w.repository.GetAllUserWithdrawals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting user withdrawals failed: %w", err)
	}
	return withdrawals, nil
}
