package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"momo-wallet/internal/common/clientprotocol"
	"momo-wallet/internal/momowallet/data"
	"momo-wallet/internal/momowallet/service"
	"momo-wallet/pkg/logging"
)

const ProviderHeader = "X-Provider"

type DisbursementCallbackHandler struct {
	service DisbursementCallbackService
	secrets map[data.Provider]string
	logger  *logging.ZapLogger
}

type DisbursementCallbackService interface {
	HandleDisbursement(ctx context.Context, event service.CallbackEvent) (service.CallbackResult, error)
}

// NewDisbursementCallbackHandler builds the webhook endpoint the providers
// call back on. secrets maps a provider to its shared HMAC secret. With no
// secrets configured verification is disabled entirely; once any secret is
// configured, a callback must resolve to a known provider and carry a valid
// signature, or it is rejected.
func NewDisbursementCallbackHandler(
	service DisbursementCallbackService,
	secrets map[data.Provider]string,
	logger *logging.ZapLogger,
) *DisbursementCallbackHandler {
	return &DisbursementCallbackHandler{
		service: service,
		secrets: secrets,
		logger:  logger,
	}
}

func (h *DisbursementCallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "failed to read callback body", zap.Error(err))
		writeJSONError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	// The provider identity comes from the header when present, so the
	// signature can be checked before the payload is parsed at all.
	headerProvider := data.Provider(strings.ToUpper(r.Header.Get(ProviderHeader)))
	verified := false
	if headerProvider != data.NullProvider {
		if !h.verify(w, r, headerProvider, body) {
			return
		}
		verified = true
	}

	event, err := service.ParseCallback(body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "malformed callback payload", zap.Error(err))
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if event.Provider == data.NullProvider {
		event.Provider = headerProvider
	}
	if !verified && !h.verify(w, r, event.Provider, body) {
		return
	}

	result, err := h.service.HandleDisbursement(r.Context(), event)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNoSuchWithdrawal):
			writeJSONError(w, http.StatusNotFound, "Withdrawal not found")
		default:
			h.logger.ErrorCtx(r.Context(), "callback processing failed", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "Failed to update withdrawal")
		}
		return
	}

	response := clientprotocol.CallbackResponse{
		Success:      true,
		WithdrawalID: result.WithdrawalID,
		Status:       string(result.Status),
	}
	if err := tryWriteResponseJSON(w, http.StatusOK, response); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
	}
}

func (h *DisbursementCallbackHandler) verify(
	w http.ResponseWriter,
	r *http.Request,
	p data.Provider,
	body []byte,
) bool {
	secret := h.secrets[p]
	if secret == "" {
		if !hasConfiguredSecret(h.secrets) {
			return true
		}
		// A callback that cannot be resolved to a provider with a secret is
		// unverifiable and must not be trusted.
		h.logger.WarnCtx(r.Context(), "callback from unverifiable provider rejected",
			zap.String("provider", string(p)))
		writeJSONError(w, http.StatusUnauthorized, "unknown provider")
		return false
	}
	if !ValidSignature(secret, body, r.Header.Get(SignatureHeader)) {
		h.logger.WarnCtx(r.Context(), "callback signature mismatch", zap.String("provider", string(p)))
		writeJSONError(w, http.StatusUnauthorized, "invalid signature")
		return false
	}
	return true
}
