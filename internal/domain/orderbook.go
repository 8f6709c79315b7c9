package domain

type OrderbookItem struct {
	Price  float64 `json:"price"`
	Amount float64 `json:"amount"`
}

// Orderbook is a point-in-time snapshot. Asks and Bids keep the order the
// exchange returned them in; nothing here re-sorts levels.
type Orderbook struct {
	CurrencyPair CurrencyPair    `json:"currency_pair"`
	Asks         []OrderbookItem `json:"asks"`
	Bids         []OrderbookItem `json:"bids"`
	Timestamp    int64           `json:"timestamp"` // ms, exchange clock
}
