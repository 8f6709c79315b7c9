package domain

import "fmt"

// CurrencyPair is compared by value; two pairs with equal fields are the same pair.
type CurrencyPair struct {
	BaseCurrency string `json:"base_currency"`
	Currency     string `json:"currency"`
}

func NewCurrencyPair(baseCurrency string, currency string) CurrencyPair {
	return CurrencyPair{BaseCurrency: baseCurrency, Currency: currency}
}

// Symbol is the concatenated identifier most venues use, e.g. BTC + USDT = BTCUSDT.
func (pair CurrencyPair) Symbol() string {
	return pair.BaseCurrency + pair.Currency
}

func (pair CurrencyPair) String() string {
	return pair.BaseCurrency + "/" + pair.Currency
}

func (pair CurrencyPair) IsMissing() bool {
	return pair.BaseCurrency == "" || pair.Currency == ""
}

// Validate reports ErrInvalidParameter when either side of the pair is missing.
func (pair CurrencyPair) Validate() error {
	if pair.IsMissing() {
		return fmt.Errorf("currency_pair is missing: %w", ErrInvalidParameter)
	}
	return nil
}
