package domain

import "context"

// Exchanger is the contract every exchange adapter satisfies.
type Exchanger interface {
	Info() ExchangeInfo
	ListCurrencyPairs(ctx context.Context) (pairs []CurrencyPair, err error)
	GetTicker(ctx context.Context, pair CurrencyPair) (ticker Ticker, err error)
	GetOrderbook(ctx context.Context, pair CurrencyPair) (orderbook Orderbook, err error)
}

// ExchangeInfo is the static identity of an adapter, used for display and registration.
type ExchangeInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}
