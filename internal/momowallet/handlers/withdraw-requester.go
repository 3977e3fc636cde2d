package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"momo-wallet/internal/common/clientprotocol"
	"momo-wallet/internal/momowallet/data"
	"momo-wallet/internal/momowallet/service"
	"momo-wallet/pkg/logging"
)

type WithdrawRequesterHandler struct {
	service WithdrawRequesterService
	logger  *logging.ZapLogger
}

type WithdrawRequesterService interface {
	RequestWithdrawal(ctx context.Context, userID string, gross decimal.Decimal) (data.Withdrawal, error)
}

func NewWithdrawRequesterHandler(
	service WithdrawRequesterService,
	logger *logging.ZapLogger,
) *WithdrawRequesterHandler {
	return &WithdrawRequesterHandler{
		service: service,
		logger:  logger,
	}
}

func (h *WithdrawRequesterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), failedToRecoverUserIDErrorMessage, zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	request, err := decodeJSON[clientprotocol.WithdrawalRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "input decoding error", zap.Error(err))
		writeJSONError(w, http.StatusBadRequest, "gross_amount required")
		return
	}
	if err := validate.Struct(request); err != nil {
		h.logger.DebugCtx(r.Context(), "input validation error", zap.Error(err))
		writeJSONError(w, http.StatusBadRequest, "gross_amount must be a positive number")
		return
	}

	withdrawal, err := h.service.RequestWithdrawal(
		r.Context(),
		userID,
		decimal.NewFromFloat(request.GrossAmount),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProfileIncomplete):
			writeJSONError(w, http.StatusBadRequest, "Profile missing mobile or provider")
		case errors.Is(err, service.ErrInsufficientFunds):
			writeJSONError(w, http.StatusPaymentRequired, "Insufficient funds")
		case errors.Is(err, service.ErrProviderUnavailable):
			writeJSONError(w, http.StatusBadGateway, "Provider temporarily unavailable, please try again later")
		default:
			h.logger.ErrorCtx(r.Context(), "withdrawal request failed", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "Withdrawal failed, please try again or contact support")
		}
		return
	}

	response := clientprotocol.WithdrawalResponse{
		Success:    true,
		Withdrawal: toWithdrawalView(withdrawal),
	}
	if err := tryWriteResponseJSON(w, http.StatusOK, response); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
	}
}
