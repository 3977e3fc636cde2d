package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"momo-wallet/internal/common/clientprotocol"
	"momo-wallet/internal/momowallet/data"
	"momo-wallet/pkg/jwtfactory"
	"momo-wallet/pkg/logging"
)

const failedToRecoverUserIDErrorMessage = "failed to recover user id"

var validate = validator.New(validator.WithRequiredStructEnabled())

func closeBody(ctx context.Context, body io.ReadCloser, logger *logging.ZapLogger) {
	err := body.Close()
	if err != nil {
		logger.ErrorCtx(ctx, "failed to close body", zap.Error(err))
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&out)
	return out, err
}

func userIDFromCtx(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err //nolint:wrapcheck // unnecessary
	}
	userID, ok := claims[jwtfactory.UserIDClaim].(string)
	if !ok || userID == "" {
		return "", errors.New("no subject claim in token")
	}
	return userID, nil
}

func tryWriteResponseJSON(w http.ResponseWriter, statusCode int, responseItem any) error {
	res, err := json.Marshal(responseItem)
	if err != nil {
		return err //nolint:wrapcheck // unnecessary
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, err = w.Write(res)
	return err //nolint:wrapcheck // unnecessary
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	_ = tryWriteResponseJSON(w, statusCode, clientprotocol.ErrorResponse{Error: message})
}

func toWithdrawalView(w data.Withdrawal) clientprotocol.Withdrawal {
	gross, _ := w.GrossAmount.Float64()
	fee, _ := w.FeeAmount.Float64()
	net, _ := w.NetAmount.Float64()
	return clientprotocol.Withdrawal{
		ID:           w.ID,
		GrossAmount:  gross,
		FeeAmount:    fee,
		NetAmount:    net,
		Currency:     w.Currency,
		MobileNumber: w.MobileNumber,
		Provider:     string(w.Provider),
		Status:       string(w.Status),
		ExternalRef:  w.ExternalRef,
		CreatedAt:    w.CreatedAt,
	}
}
