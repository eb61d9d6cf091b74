package config

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/kalhintz/opinion-auto-trade/opinion/client"
)

// Runtime holds the mutable subset of the configuration: the bearer token and
// the notional order amount may be updated by the operator while the process
// runs. Everything else is fixed at startup. Updates are last-write-wins;
// an in-flight batch picks a new value up at its next order.
type Runtime struct {
	mu sync.RWMutex

	bearerToken string
	orderAmount decimal.Decimal

	deviceFingerprint string
}

// NewRuntime seeds the store from the startup configuration.
func NewRuntime(cfg *Config) *Runtime {
	return &Runtime{
		bearerToken:       cfg.BearerToken,
		orderAmount:       cfg.OrderAmount,
		deviceFingerprint: cfg.DeviceFingerprint,
	}
}

// Credentials implements client.CredentialProvider.
func (r *Runtime) Credentials() client.Credentials {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return client.Credentials{
		BearerToken:       r.bearerToken,
		DeviceFingerprint: r.deviceFingerprint,
	}
}

// OrderAmount returns the current notional amount per order.
func (r *Runtime) OrderAmount() decimal.Decimal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.orderAmount
}

// SetOrderAmount replaces the notional amount per order.
func (r *Runtime) SetOrderAmount(amount decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orderAmount = amount
}

// SetBearerToken replaces the bearer credential.
func (r *Runtime) SetBearerToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bearerToken = token
}
