package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momo-wallet/internal/common/clientprotocol"
	"momo-wallet/internal/momowallet/data"
	"momo-wallet/internal/momowallet/service"
	"momo-wallet/pkg/logging"
)

func TestWithdrawRequesterHandler(t *testing.T) {
	accepted := data.Withdrawal{
		ID:           "w-1",
		UserID:       testUserID,
		GrossAmount:  decimal.NewFromInt(100_000),
		FeeAmount:    decimal.NewFromInt(35_000),
		NetAmount:    decimal.NewFromInt(65_000),
		Currency:     "UGX",
		MobileNumber: "256772123456",
		Provider:     data.MTNProvider,
		Status:       data.ProcessingStatus,
		ExternalRef:  "ref-1",
		CreatedAt:    time.Now(),
	}

	tests := []struct {
		name               string
		body               string
		serviceErr         error
		expectedStatusCode int
	}{
		{
			name:               "accepted",
			body:               `{"gross_amount":100000}`,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "missing amount",
			body:               `{}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "negative amount",
			body:               `{"gross_amount":-5}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "not json",
			body:               `gross_amount=100`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "invalid amount from service",
			body:               `{"gross_amount":100000}`,
			serviceErr:         service.ErrInvalidAmount,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "profile incomplete",
			body:               `{"gross_amount":100000}`,
			serviceErr:         service.ErrProfileIncomplete,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "insufficient funds",
			body:               `{"gross_amount":100000}`,
			serviceErr:         service.ErrInsufficientFunds,
			expectedStatusCode: http.StatusPaymentRequired,
		},
		{
			name:               "provider unavailable",
			body:               `{"gross_amount":100000}`,
			serviceErr:         service.ErrProviderUnavailable,
			expectedStatusCode: http.StatusBadGateway,
		},
		{
			name:               "internal failure",
			body:               `{"gross_amount":100000}`,
			serviceErr:         errors.New("storage error"),
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	tokenAuth := testTokenAuth()
	token := mintToken(t, tokenAuth)

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var gotUserID string
			handler := NewWithdrawRequesterHandler(stubWithdrawService{
				fn: func(_ context.Context, userID string, _ decimal.Decimal) (data.Withdrawal, error) {
					gotUserID = userID
					if test.serviceErr != nil {
						return data.Withdrawal{}, test.serviceErr
					}
					return accepted, nil
				},
			}, logging.NewNop())
			router := protectedRouter(tokenAuth, http.MethodPost, "/withdraw", handler.ServeHTTP)

			rec := doRequest(router, http.MethodPost, "/withdraw", token, strings.NewReader(test.body))

			assert.Equal(t, test.expectedStatusCode, rec.Code)
			if test.expectedStatusCode != http.StatusOK {
				return
			}
			assert.Equal(t, testUserID, gotUserID)

			var response clientprotocol.WithdrawalResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.True(t, response.Success)
			assert.Equal(t, "w-1", response.Withdrawal.ID)
			assert.InDelta(t, 100_000, response.Withdrawal.GrossAmount, 0.001)
			assert.InDelta(t, 35_000, response.Withdrawal.FeeAmount, 0.001)
			assert.InDelta(t, 65_000, response.Withdrawal.NetAmount, 0.001)
			assert.Equal(t, "PROCESSING", response.Withdrawal.Status)
		})
	}
}

func TestWithdrawRequesterHandlerUnauthorized(t *testing.T) {
	handler := NewWithdrawRequesterHandler(stubWithdrawService{
		fn: func(context.Context, string, decimal.Decimal) (data.Withdrawal, error) {
			t.Error("service must not be reached without a valid token")
			return data.Withdrawal{}, nil
		},
	}, logging.NewNop())
	router := protectedRouter(testTokenAuth(), http.MethodPost, "/withdraw", handler.ServeHTTP)

	rec := doRequest(router, http.MethodPost, "/withdraw", "", strings.NewReader(`{"gross_amount":100000}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
