package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"momo-wallet/internal/common/clientprotocol"
	"momo-wallet/internal/momowallet/data"
	"momo-wallet/pkg/logging"
)

type TopupCallbackHandler struct {
	service TopupCallbackService
	secrets map[data.Provider]string
	logger  *logging.ZapLogger
}

type TopupCallbackService interface {
	HandleTopupCallback(ctx context.Context, externalRef string, rawStatus string) (data.Topup, bool, error)
}

func NewTopupCallbackHandler(
	service TopupCallbackService,
	secrets map[data.Provider]string,
	logger *logging.ZapLogger,
) *TopupCallbackHandler {
	return &TopupCallbackHandler{
		service: service,
		secrets: secrets,
		logger:  logger,
	}
}

func (h *TopupCallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "failed to read callback body", zap.Error(err))
		writeJSONError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	headerProvider := data.Provider(strings.ToUpper(r.Header.Get(ProviderHeader)))
	switch secret := h.secrets[headerProvider]; {
	case secret != "":
		if !ValidSignature(secret, body, r.Header.Get(SignatureHeader)) {
			h.logger.WarnCtx(r.Context(), "topup callback signature mismatch",
				zap.String("provider", string(headerProvider)))
			writeJSONError(w, http.StatusUnauthorized, "invalid signature")
			return
		}
	case hasConfiguredSecret(h.secrets):
		h.logger.WarnCtx(r.Context(), "topup callback from unverifiable provider rejected",
			zap.String("provider", string(headerProvider)))
		writeJSONError(w, http.StatusUnauthorized, "unknown provider")
		return
	}

	// Unknown fields are expected here, providers add their own extras.
	var request clientprotocol.TopupCallbackRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request.ExternalTxID == "" || request.Status == "" {
		h.logger.DebugCtx(r.Context(), "malformed topup callback", zap.Error(err))
		writeJSONError(w, http.StatusBadRequest, "external_tx_id and status required")
		return
	}

	_, _, err = h.service.HandleTopupCallback(r.Context(), request.ExternalTxID, request.Status)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNoSuchTopup):
			writeJSONError(w, http.StatusNotFound, "Transaction not found")
		default:
			h.logger.ErrorCtx(r.Context(), "topup callback processing failed", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "Failed to update transaction")
		}
		return
	}

	if err := tryWriteResponseJSON(w, http.StatusOK, clientprotocol.CallbackResponse{Success: true}); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
	}
}
