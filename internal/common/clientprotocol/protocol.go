package clientprotocol

import "time"

// Wire types of the wallet HTTP API.

type WithdrawalRequest struct {
	GrossAmount float64 `json:"gross_amount" validate:"required,gt=0"`
}

type Withdrawal struct {
	ID           string    `json:"id"`
	GrossAmount  float64   `json:"gross_amount"`
	FeeAmount    float64   `json:"fee_amount"`
	NetAmount    float64   `json:"net_amount"`
	Currency     string    `json:"currency"`
	MobileNumber string    `json:"mobile_number"`
	Provider     string    `json:"provider"`
	Status       string    `json:"status"`
	ExternalRef  string    `json:"external_ref"`
	CreatedAt    time.Time `json:"created_at"`
}

type WithdrawalResponse struct {
	Success    bool       `json:"success"`
	Withdrawal Withdrawal `json:"withdrawal"`
}

type BalanceInfo struct {
	Balance   float64 `json:"balance"`
	Withdrawn float64 `json:"withdrawn"`
}

type TopupRequest struct {
	PhoneNumber string  `json:"phone_number" validate:"required"`
	Provider    string  `json:"provider" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

type TopupCallbackRequest struct {
	ExternalTxID string `json:"external_tx_id"`
	Status       string `json:"status"`
}

type TopupResponse struct {
	Success     bool   `json:"success"`
	ExternalRef string `json:"external_ref"`
}

type CallbackResponse struct {
	Success      bool   `json:"success"`
	WithdrawalID string `json:"withdrawalId,omitempty"`
	Status       string `json:"status,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
