package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"momo-wallet/internal/momowallet/data"
	"momo-wallet/pkg/logging"
)

func pendingTopup() data.Topup {
	return data.Topup{
		ID:          "t-1",
		UserID:      testUserID,
		PhoneNumber: testPhone,
		Amount:      decimal.NewFromInt(50_000),
		Currency:    Currency,
		Provider:    data.AirtelProvider,
		Status:      data.PendingTopupStatus,
		ExternalRef: testExternalRef,
	}
}

func TestRequestTopup(t *testing.T) {
	repository := &mockRepository{}
	svc := NewTopups(fakeTransactionManager{}, repository, logging.NewNop())

	repository.On("InsertTopup", mock.Anything, mock.MatchedBy(func(topup data.Topup) bool {
		return topup.UserID == testUserID &&
			topup.PhoneNumber == testPhone &&
			topup.Status == data.PendingTopupStatus &&
			topup.Amount.Equal(decimal.NewFromInt(50_000))
	})).Return(nil)

	topup, err := svc.RequestTopup(context.Background(), testUserID, testMobile, data.MTNProvider, decimal.NewFromInt(50_000))

	require.NoError(t, err)
	assert.Equal(t, data.PendingTopupStatus, topup.Status)
	assert.Equal(t, testPhone, topup.PhoneNumber)
	assert.NotEmpty(t, topup.ExternalRef)
	repository.AssertExpectations(t)
}

func TestRequestTopupInvalidInput(t *testing.T) {
	repository := &mockRepository{}
	svc := NewTopups(fakeTransactionManager{}, repository, logging.NewNop())

	_, err := svc.RequestTopup(context.Background(), testUserID, testMobile, data.MTNProvider, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.RequestTopup(context.Background(), testUserID, "12345", data.MTNProvider, decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, ErrInvalidPhoneNumber)

	repository.AssertNotCalled(t, "InsertTopup", mock.Anything, mock.Anything)
}

func TestHandleTopupCallbackSuccessCreditsOnce(t *testing.T) {
	topup := pendingTopup()
	repository := &mockRepository{}
	svc := NewTopups(fakeTransactionManager{}, repository, logging.NewNop())

	repository.On("GetTopupByReference", mock.Anything, testExternalRef).Return(topup, nil)
	repository.On("SetTopupStatusIfPending", mock.Anything, "t-1", data.SuccessTopupStatus).Return(true, nil)
	repository.On("CreditWallet", mock.Anything, testUserID, decimalEq(topup.Amount)).Return(nil)
	repository.On("InsertAuditRecord", mock.Anything, mock.MatchedBy(func(record data.AuditRecord) bool {
		return record.Kind == data.TopupAuditKind && record.Amount.Equal(topup.Amount)
	})).Return(nil)

	updated, applied, err := svc.HandleTopupCallback(context.Background(), testExternalRef, "SUCCESS")

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, data.SuccessTopupStatus, updated.Status)
	repository.AssertExpectations(t)
}

func TestHandleTopupCallbackFailureDoesNotCredit(t *testing.T) {
	repository := &mockRepository{}
	svc := NewTopups(fakeTransactionManager{}, repository, logging.NewNop())

	repository.On("GetTopupByReference", mock.Anything, testExternalRef).Return(pendingTopup(), nil)
	repository.On("SetTopupStatusIfPending", mock.Anything, "t-1", data.FailedTopupStatus).Return(true, nil)

	updated, applied, err := svc.HandleTopupCallback(context.Background(), testExternalRef, "FAILED")

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, data.FailedTopupStatus, updated.Status)
	repository.AssertNotCalled(t, "CreditWallet", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleTopupCallbackDuplicateIsNoOp(t *testing.T) {
	topup := pendingTopup()
	topup.Status = data.SuccessTopupStatus

	repository := &mockRepository{}
	svc := NewTopups(fakeTransactionManager{}, repository, logging.NewNop())
	repository.On("GetTopupByReference", mock.Anything, testExternalRef).Return(topup, nil)

	_, applied, err := svc.HandleTopupCallback(context.Background(), testExternalRef, "SUCCESS")

	require.NoError(t, err)
	assert.False(t, applied)
	repository.AssertNotCalled(t, "SetTopupStatusIfPending", mock.Anything, mock.Anything, mock.Anything)
	repository.AssertNotCalled(t, "CreditWallet", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleTopupCallbackIntermediateStatusIsNoOp(t *testing.T) {
	repository := &mockRepository{}
	svc := NewTopups(fakeTransactionManager{}, repository, logging.NewNop())
	repository.On("GetTopupByReference", mock.Anything, testExternalRef).Return(pendingTopup(), nil)

	_, applied, err := svc.HandleTopupCallback(context.Background(), testExternalRef, "PENDING")

	require.NoError(t, err)
	assert.False(t, applied)
	repository.AssertNotCalled(t, "SetTopupStatusIfPending", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleTopupCallbackUnknownReference(t *testing.T) {
	repository := &mockRepository{}
	svc := NewTopups(fakeTransactionManager{}, repository, logging.NewNop())
	repository.On("GetTopupByReference", mock.Anything, "missing").Return(data.Topup{}, data.ErrNoSuchTopup)

	_, _, err := svc.HandleTopupCallback(context.Background(), "missing", "SUCCESS")

	assert.ErrorIs(t, err, data.ErrNoSuchTopup)
}
