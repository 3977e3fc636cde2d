package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"momo-wallet/internal/momowallet/data"
	"momo-wallet/internal/momowallet/provider"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetProfile(ctx context.Context, userID string) (data.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(data.Profile), args.Error(1)
}

func (m *mockRepository) DebitWalletIfEnough(ctx context.Context, userID string, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, userID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) CreditWallet(ctx context.Context, userID string, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *mockRepository) InsertWithdrawal(ctx context.Context, withdrawal data.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *mockRepository) SetWithdrawalStatus(ctx context.Context, id string, status data.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockRepository) SetWithdrawalStatusIfProcessing(ctx context.Context, id string, status data.Status) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) GetWithdrawalByReference(ctx context.Context, externalRef string) (data.Withdrawal, error) {
	args := m.Called(ctx, externalRef)
	return args.Get(0).(data.Withdrawal), args.Error(1)
}

func (m *mockRepository) IncrementWithdrawSkips(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockRepository) InsertAuditRecord(ctx context.Context, record data.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockRepository) InsertTopup(ctx context.Context, topup data.Topup) error {
	args := m.Called(ctx, topup)
	return args.Error(0)
}

func (m *mockRepository) GetTopupByReference(ctx context.Context, externalRef string) (data.Topup, error) {
	args := m.Called(ctx, externalRef)
	return args.Get(0).(data.Topup), args.Error(1)
}

func (m *mockRepository) SetTopupStatusIfPending(ctx context.Context, id string, status data.TopupStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) GetWalletBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockRepository) GetTotalUserWithdraw(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockRepository) GetAllUserWithdrawals(ctx context.Context, userID string) ([]data.Withdrawal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]data.Withdrawal), args.Error(1)
}

// fakeTransactionManager runs the body without a real transaction.
type fakeTransactionManager struct{}

func (fakeTransactionManager) DoWithTransaction(ctx context.Context, f func(ctx context.Context) error) error {
	return f(ctx)
}

type transferCall struct {
	externalRef string
	phone       string
	amount      decimal.Decimal
}

type fakeGateway struct {
	name        data.Provider
	transferErr error
	calls       []transferCall
}

func (g *fakeGateway) Name() data.Provider {
	return g.name
}

func (g *fakeGateway) Transfer(_ context.Context, externalRef string, phone string, amount decimal.Decimal) error {
	g.calls = append(g.calls, transferCall{externalRef: externalRef, phone: phone, amount: amount})
	return g.transferErr
}

type fakeResolver struct {
	gateway provider.Gateway
	err     error
}

func (r fakeResolver) ForProvider(data.Provider) (provider.Gateway, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.gateway, nil
}

func decimalEq(expected decimal.Decimal) interface{} {
	return mock.MatchedBy(func(actual decimal.Decimal) bool {
		return actual.Equal(expected)
	})
}
