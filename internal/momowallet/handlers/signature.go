package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"momo-wallet/internal/momowallet/data"
)

const SignatureHeader = "X-Signature"

// ValidSignature checks a hex-encoded HMAC-SHA256 of the raw request body
// against the supplied header value.
func ValidSignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func hasConfiguredSecret(secrets map[data.Provider]string) bool {
	for _, secret := range secrets {
		if secret != "" {
			return true
		}
	}
	return false
}
