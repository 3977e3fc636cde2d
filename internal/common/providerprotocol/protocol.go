package providerprotocol

// Wire types shared by the MTN and Airtel disbursement APIs. Both speak the
// same transfer body shape; they differ in authentication and paths.

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type Party struct {
	PartyIDType string `json:"partyIdType"`
	PartyID     string `json:"partyId"`
}

type TransferRequest struct {
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	ExternalID   string `json:"externalId"`
	Payee        Party  `json:"payee"`
	PayerMessage string `json:"payerMessage"`
	PayeeNote    string `json:"payeeNote"`
}

const (
	MSISDNPartyIDType = "MSISDN"
	PayerMessage      = "Wallet withdrawal"
	PayeeNote         = "Withdrawal from platform"
)
