package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"momo-wallet/internal/momowallet/data"
)

// Providers are not uniform in callback field naming, so each logical field
// is extracted by trying an ordered list of candidate paths. Adding a
// provider dialect is a data change here, not new branching code.

type fieldPath []string

var (
	referenceFieldCandidates = []fieldPath{
		{"externalId"},
		{"referenceId"},
		{"transactionId"},
		{"transaction", "reference"},
		{"financialTransactionId"},
	}
	statusFieldCandidates = []fieldPath{
		{"status"},
		{"transaction", "status"},
	}
	providerFieldCandidates = []fieldPath{
		{"provider"},
	}
)

// Raw provider status vocabularies, allow-listed into the canonical set.
// Anything unrecognized stays PROCESSING and is never applied as terminal.
var (
	completedSynonyms = []string{"SUCCESS", "COMPLETED", "ACCEPTED", "SUCCESSFUL"}
	failedSynonyms    = []string{"FAILED", "REJECTED", "ERROR", "DECLINED", "CANCELLED"}
)

type CallbackEvent struct {
	Provider    data.Provider
	ExternalRef string
	RawStatus   string
}

func ParseCallback(payload []byte) (CallbackEvent, error) {
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return CallbackEvent{}, fmt.Errorf("%w: %v", ErrCallbackMalformed, err)
	}
	externalRef, ok := lookupString(doc, referenceFieldCandidates)
	if !ok {
		return CallbackEvent{}, fmt.Errorf("%w: no external reference", ErrCallbackMalformed)
	}
	rawStatus, ok := lookupString(doc, statusFieldCandidates)
	if !ok {
		return CallbackEvent{}, fmt.Errorf("%w: no status", ErrCallbackMalformed)
	}
	event := CallbackEvent{
		ExternalRef: externalRef,
		RawStatus:   rawStatus,
	}
	if providerName, ok := lookupString(doc, providerFieldCandidates); ok {
		event.Provider = data.Provider(strings.ToUpper(providerName))
	}
	return event, nil
}

// NormalizeStatus maps a raw provider status onto the canonical set.
func NormalizeStatus(rawStatus string) data.Status {
	raw := strings.ToUpper(strings.TrimSpace(rawStatus))
	for _, synonym := range completedSynonyms {
		if raw == synonym {
			return data.CompletedStatus
		}
	}
	for _, synonym := range failedSynonyms {
		if raw == synonym {
			return data.FailedStatus
		}
	}
	return data.ProcessingStatus
}

func lookupString(doc map[string]any, candidates []fieldPath) (string, bool) {
	for _, path := range candidates {
		if value, ok := lookupPath(doc, path); ok && value != "" {
			return value, true
		}
	}
	return "", false
}

func lookupPath(doc map[string]any, path fieldPath) (string, bool) {
	current := any(doc)
	for _, segment := range path {
		node, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current, ok = node[segment]
		if !ok {
			return "", false
		}
	}
	value, ok := current.(string)
	return value, ok
}
