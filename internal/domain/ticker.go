package domain

type Ticker struct {
	CurrencyPair CurrencyPair `json:"currency_pair"`
	Price        float64      `json:"price"`
	Timestamp    int64        `json:"timestamp"` // ms, exchange clock
}
