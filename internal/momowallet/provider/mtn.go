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

type MTNConfig struct {
	BaseURL         string
	SubscriptionKey string
	UserID          string
	APIKey          string
	TargetEnv       string
	CallbackURL     string
	Currency        string
}

// MTN implements Gateway against the MTN MoMo disbursement API.
type MTN struct {
	cfg    MTNConfig
	client *resty.Client
	logger *logging.ZapLogger
}

func NewMTN(cfg MTNConfig, logger *logging.ZapLogger) *MTN {
	return &MTN{
		cfg:    cfg,
		client: resty.New().SetBaseURL(cfg.BaseURL),
		logger: logger,
	}
}

func (m *MTN) Name() data.Provider {
	return data.MTNProvider
}

func (m *MTN) Transfer(ctx context.Context, externalRef string, phone string, amount decimal.Decimal) error {
	token, err := m.token(ctx)
	if err != nil {
		return &Error{Provider: data.MTNProvider, Message: "token acquisition failed", Cause: err}
	}

	body := providerprotocol.TransferRequest{
		Amount:     amount.String(),
		Currency:   m.cfg.Currency,
		ExternalID: externalRef,
		Payee: providerprotocol.Party{
			PartyIDType: providerprotocol.MSISDNPartyIDType,
			PartyID:     phone,
		},
		PayerMessage: providerprotocol.PayerMessage,
		PayeeNote:    providerprotocol.PayeeNote,
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("X-Reference-Id", externalRef).
		SetHeader("X-Target-Environment", m.cfg.TargetEnv).
		SetHeader("Ocp-Apim-Subscription-Key", m.cfg.SubscriptionKey).
		SetHeader("X-Callback-Url", m.cfg.CallbackURL).
		SetBody(body).
		Post("/disbursement/v1_0/transfer")
	if err != nil {
		return &Error{Provider: data.MTNProvider, Message: "transfer request failed", Cause: err}
	}
	statusCode := resp.StatusCode()
	if statusCode != 200 && statusCode != 202 {
		return &Error{
			Provider: data.MTNProvider,
			Message:  fmt.Sprintf("transfer rejected with status %v: %s", statusCode, resp.Body()),
		}
	}
	m.logger.InfoCtx(ctx, "MTN transfer accepted",
		zap.String("externalRef", externalRef),
		zap.Int("statusCode", statusCode),
	)
	return nil
}

func (m *MTN) token(ctx context.Context) (string, error) {
	resp, err := m.client.R().
		SetContext(ctx).
		SetBasicAuth(m.cfg.UserID, m.cfg.APIKey).
		SetHeader("Ocp-Apim-Subscription-Key", m.cfg.SubscriptionKey).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody("grant_type=client_credentials").
		Post("/disbursement/token/")
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
