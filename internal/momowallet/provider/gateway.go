package provider

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"momo-wallet/internal/momowallet/data"
)

// Gateway submits one disbursement transfer to a mobile-money provider.
// A transfer is accepted only on a 200/202 synchronous response; every other
// outcome (token failure, transport error, non-2xx) is an *Error. The caller
// must treat submission as at-most-once: a Gateway never retries a transfer.
type Gateway interface {
	Name() data.Provider
	Transfer(ctx context.Context, externalRef string, phone string, amount decimal.Decimal) error
}

// Error is the single failure shape all gateway variants report.
type Error struct {
	Provider data.Provider
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s gateway: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s gateway: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Registry resolves the gateway for a profile's provider preference.
type Registry struct {
	gateways map[data.Provider]Gateway
}

func NewRegistry(gateways ...Gateway) *Registry {
	m := make(map[data.Provider]Gateway, len(gateways))
	for _, g := range gateways {
		m[g.Name()] = g
	}
	return &Registry{gateways: m}
}

func (r *Registry) ForProvider(p data.Provider) (Gateway, error) {
	g, ok := r.gateways[p]
	if !ok {
		return nil, fmt.Errorf("unsupported provider %q", p)
	}
	return g, nil
}
