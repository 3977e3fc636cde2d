package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"momo-wallet/internal/momowallet/data"
	"momo-wallet/internal/momowallet/service"
	"momo-wallet/pkg/jwtfactory"
)

const testUserID = "3f0c6f5e-9f2f-4f58-9a5f-6cfb86d1a001"

func testTokenAuth() *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte("test-secret"), nil)
}

// protectedRouter mounts a handler behind the same JWT middleware chain the
// server uses for user-facing routes.
func protectedRouter(tokenAuth *jwtauth.JWTAuth, method string, pattern string, handler http.HandlerFunc) chi.Router {
	router := chi.NewRouter()
	router.Group(func(router chi.Router) {
		router.Use(jwtauth.Verifier(tokenAuth))
		router.Use(jwtauth.Authenticator(tokenAuth))
		router.Method(method, pattern, handler)
	})
	return router
}

func mintToken(t *testing.T, tokenAuth *jwtauth.JWTAuth) string {
	t.Helper()
	token, err := jwtfactory.New(tokenAuth, time.Hour).Generate(testUserID)
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method string, path string, token string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

type stubWithdrawService struct {
	fn func(ctx context.Context, userID string, gross decimal.Decimal) (data.Withdrawal, error)
}

func (s stubWithdrawService) RequestWithdrawal(
	ctx context.Context,
	userID string,
	gross decimal.Decimal,
) (data.Withdrawal, error) {
	return s.fn(ctx, userID, gross)
}

type stubCallbackService struct {
	fn func(ctx context.Context, event service.CallbackEvent) (service.CallbackResult, error)
}

func (s stubCallbackService) HandleDisbursement(
	ctx context.Context,
	event service.CallbackEvent,
) (service.CallbackResult, error) {
	return s.fn(ctx, event)
}

type stubTopupService struct {
	requestFn  func(ctx context.Context, userID string, phoneNumber string, provider data.Provider, amount decimal.Decimal) (data.Topup, error)
	callbackFn func(ctx context.Context, externalRef string, rawStatus string) (data.Topup, bool, error)
}

func (s stubTopupService) RequestTopup(
	ctx context.Context,
	userID string,
	phoneNumber string,
	provider data.Provider,
	amount decimal.Decimal,
) (data.Topup, error) {
	return s.requestFn(ctx, userID, phoneNumber, provider, amount)
}

func (s stubTopupService) HandleTopupCallback(
	ctx context.Context,
	externalRef string,
	rawStatus string,
) (data.Topup, bool, error) {
	return s.callbackFn(ctx, externalRef, rawStatus)
}

type stubWalletService struct {
	balanceFn     func(ctx context.Context, userID string) (service.BalanceInfo, error)
	withdrawalsFn func(ctx context.Context, userID string) ([]data.Withdrawal, error)
}

func (s stubWalletService) GetUserBalanceInfo(ctx context.Context, userID string) (service.BalanceInfo, error) {
	return s.balanceFn(ctx, userID)
}

func (s stubWalletService) GetAllUserWithdrawals(ctx context.Context, userID string) ([]data.Withdrawal, error) {
	return s.withdrawalsFn(ctx, userID)
}
