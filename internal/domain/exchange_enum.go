package domain

import "strings"

type ExchangeEnum int

const (
	Binance ExchangeEnum = iota
	Luno
)

func (e ExchangeEnum) String() string {
	switch e {
	case Binance:
		return "Binance"
	case Luno:
		return "Luno"
	default:
		return "Unknown"
	}
}

// Key is the lower-case name used in config files and URLs.
func (e ExchangeEnum) Key() string {
	return strings.ToLower(e.String())
}
