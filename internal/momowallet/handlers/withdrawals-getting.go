package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"momo-wallet/internal/common/clientprotocol"
	"momo-wallet/internal/momowallet/data"
	"momo-wallet/pkg/logging"
)

type WithdrawalsGettingHandler struct {
	service WithdrawalsGettingService
	logger  *logging.ZapLogger
}

type WithdrawalsGettingService interface {
	GetAllUserWithdrawals(ctx context.Context, userID string) ([]data.Withdrawal, error)
}

func NewWithdrawalsGettingHandler(
	service WithdrawalsGettingService,
	logger *logging.ZapLogger,
) *WithdrawalsGettingHandler {
	return &WithdrawalsGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *WithdrawalsGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), failedToRecoverUserIDErrorMessage, zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	withdrawals, err := h.service.GetAllUserWithdrawals(r.Context(), userID)
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "error getting withdrawals", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if len(withdrawals) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	views := make([]clientprotocol.Withdrawal, len(withdrawals))
	for i, withdrawal := range withdrawals {
		views[i] = toWithdrawalView(withdrawal)
	}
	if err := tryWriteResponseJSON(w, http.StatusOK, views); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
	}
}
