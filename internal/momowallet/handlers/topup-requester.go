package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"momo-wallet/internal/common/clientprotocol"
	"momo-wallet/internal/momowallet/data"
	"momo-wallet/internal/momowallet/service"
	"momo-wallet/pkg/logging"
)

type TopupRequesterHandler struct {
	service TopupRequesterService
	logger  *logging.ZapLogger
}

type TopupRequesterService interface {
	RequestTopup(
		ctx context.Context,
		userID string,
		phoneNumber string,
		provider data.Provider,
		amount decimal.Decimal,
	) (data.Topup, error)
}

func NewTopupRequesterHandler(service TopupRequesterService, logger *logging.ZapLogger) *TopupRequesterHandler {
	return &TopupRequesterHandler{
		service: service,
		logger:  logger,
	}
}

func (h *TopupRequesterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), failedToRecoverUserIDErrorMessage, zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	request, err := decodeJSON[clientprotocol.TopupRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "input decoding error", zap.Error(err))
		writeJSONError(w, http.StatusBadRequest, "phone_number, provider and amount required")
		return
	}
	if err := validate.Struct(request); err != nil {
		h.logger.DebugCtx(r.Context(), "input validation error", zap.Error(err))
		writeJSONError(w, http.StatusBadRequest, "phone_number, provider and positive amount required")
		return
	}

	topup, err := h.service.RequestTopup(
		r.Context(),
		userID,
		request.PhoneNumber,
		data.Provider(strings.ToUpper(request.Provider)),
		decimal.NewFromFloat(request.Amount),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidPhoneNumber):
			writeJSONError(w, http.StatusBadRequest, "invalid phone number")
		default:
			h.logger.ErrorCtx(r.Context(), "topup request failed", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "Failed to create transaction record")
		}
		return
	}

	response := clientprotocol.TopupResponse{
		Success:     true,
		ExternalRef: topup.ExternalRef,
	}
	if err := tryWriteResponseJSON(w, http.StatusOK, response); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
	}
}
