package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"momo-wallet/internal/common/providerprotocol"
	"momo-wallet/internal/momowallet/data"
	"momo-wallet/pkg/logging"
)

type AirtelConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Currency     string
}

// Airtel implements Gateway against the Airtel Money payments API.
type Airtel struct {
	cfg    AirtelConfig
	client *resty.Client
	logger *logging.ZapLogger
}

func NewAirtel(cfg AirtelConfig, logger *logging.ZapLogger) *Airtel {
	return &Airtel{
		cfg:    cfg,
		client: resty.New().SetBaseURL(cfg.BaseURL),
		logger: logger,
	}
}

func (a *Airtel) Name() data.Provider {
	return data.AirtelProvider
}

func (a *Airtel) Transfer(ctx context.Context, externalRef string, phone string, amount decimal.Decimal) error {
	token, err := a.token(ctx)
	if err != nil {
		return &Error{Provider: data.AirtelProvider, Message: "token acquisition failed", Cause: err}
	}

	body := providerprotocol.TransferRequest{
		Amount:     amount.String(),
		Currency:   a.cfg.Currency,
		ExternalID: externalRef,
		Payee: providerprotocol.Party{
			PartyIDType: providerprotocol.MSISDNPartyIDType,
			PartyID:     phone,
		},
		PayerMessage: providerprotocol.PayerMessage,
		PayeeNote:    providerprotocol.PayeeNote,
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("X-Reference-Id", externalRef).
		SetBody(body).
		Post("/merchant/v1/payments")
	if err != nil {
		return &Error{Provider: data.AirtelProvider, Message: "transfer request failed", Cause: err}
	}
	statusCode := resp.StatusCode()
	if statusCode != 200 && statusCode != 202 {
		return &Error{
			Provider: data.AirtelProvider,
			Message:  fmt.Sprintf("transfer rejected with status %v: %s", statusCode, resp.Body()),
		}
	}
	a.logger.InfoCtx(ctx, "Airtel transfer accepted",
		zap.String("externalRef", externalRef),
		zap.Int("statusCode", statusCode),
	)
	return nil
}

func (a *Airtel) token(ctx context.Context) (string, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     a.cfg.ClientID,
			"client_secret": a.cfg.ClientSecret,
			"grant_type":    "client_credentials",
		}).
		Post("/auth/oauth2/token")
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("unexpected token status code %v: %s", resp.StatusCode(), resp.Body())
	}
	res := providerprotocol.TokenResponse{}
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		return "", fmt.Errorf("error unmarshalling token response: %w", err)
	}
	if res.AccessToken == "" {
		return "", fmt.Errorf("empty access token in response")
	}
	return res.AccessToken, nil
}
