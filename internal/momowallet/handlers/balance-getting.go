package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"momo-wallet/internal/common/clientprotocol"
	"momo-wallet/internal/momowallet/service"
	"momo-wallet/pkg/logging"
)

type BalanceGettingHandler struct {
	service BalanceGettingService
	logger  *logging.ZapLogger
}

type BalanceGettingService interface {
	GetUserBalanceInfo(ctx context.Context, userID string) (service.BalanceInfo, error)
}

func NewBalanceGettingHandler(service BalanceGettingService, logger *logging.ZapLogger) *BalanceGettingHandler {
	return &BalanceGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *BalanceGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), failedToRecoverUserIDErrorMessage, zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	balanceInfo, err := h.service.GetUserBalanceInfo(r.Context(), userID)
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "failed to get user balance info", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	balance, _ := balanceInfo.Balance.Float64()
	withdrawn, _ := balanceInfo.Withdrawn.Float64()
	response := clientprotocol.BalanceInfo{
		Balance:   balance,
		Withdrawn: withdrawn,
	}
	if err := tryWriteResponseJSON(w, http.StatusOK, response); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
	}
}
