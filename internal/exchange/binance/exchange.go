package binance

import (
	"context"
	"fmt"

	"exchange-gateway/internal/domain"
	"exchange-gateway/internal/platform/config"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	Name    = "Binance"
	Version = "1.0"
	URL     = "https://github.com/binance-exchange/binance-official-api-docs/blob/master/rest-api.md"
)

// Exchange adapts the Binance spot REST API to domain.Exchanger. It holds no
// mutable state, so one instance can serve concurrent callers.
type Exchange struct {
	client RemoteClient
	info   domain.ExchangeInfo
}

func NewExchange(client RemoteClient) *Exchange {
	return &Exchange{
		client: client,
		info:   domain.ExchangeInfo{Name: Name, Version: Version, URL: URL},
	}
}

func CreateClient(cfg config.ExchangeConfig, logger *zap.Logger) *Exchange {
	return NewExchange(NewRestClient(cfg, logger))
}

func (exchange *Exchange) Info() domain.ExchangeInfo {
	return exchange.info
}

// ListCurrencyPairs derives the quote currency as whatever follows the base
// asset in the symbol. The prefix is not checked.
func (exchange *Exchange) ListCurrencyPairs(ctx context.Context) ([]domain.CurrencyPair, error) {
	res, err := exchange.client.GetExchangeInfo(ctx)
	if err != nil {
		return nil, err
	}

	pairs := make([]domain.CurrencyPair, 0, len(res.Symbols))
	for _, symbol := range res.Symbols {
		baseCurrency := symbol.BaseAsset
		currency := ""
		if len(baseCurrency) < len(symbol.Symbol) {
			currency = symbol.Symbol[len(baseCurrency):]
		}
		pairs = append(pairs, domain.NewCurrencyPair(baseCurrency, currency))
	}

	return pairs, nil
}

func (exchange *Exchange) GetTicker(ctx context.Context, pair domain.CurrencyPair) (domain.Ticker, error) {
	if err := pair.Validate(); err != nil {
		return domain.Ticker{}, err
	}
	symbol := pair.Symbol()

	serverTime, err := exchange.client.GetTime(ctx)
	if err != nil {
		return domain.Ticker{}, err
	}

	res, err := exchange.client.GetTickerPrice(ctx, symbol)
	if err != nil {
		return domain.Ticker{}, err
	}

	price, err := parseFloat(res.Price)
	if err != nil {
		return domain.Ticker{}, fmt.Errorf("binance ticker %s: invalid price: %w", symbol, err)
	}

	return domain.Ticker{
		CurrencyPair: pair,
		Price:        price,
		Timestamp:    serverTime.ServerTime,
	}, nil
}

func (exchange *Exchange) GetOrderbook(ctx context.Context, pair domain.CurrencyPair) (domain.Orderbook, error) {
	if err := pair.Validate(); err != nil {
		return domain.Orderbook{}, err
	}
	symbol := pair.Symbol()

	serverTime, err := exchange.client.GetTime(ctx)
	if err != nil {
		return domain.Orderbook{}, err
	}

	res, err := exchange.client.GetOrderbook(ctx, symbol)
	if err != nil {
		return domain.Orderbook{}, err
	}

	asks, err := convertLevels(res.Asks)
	if err != nil {
		return domain.Orderbook{}, fmt.Errorf("binance orderbook %s: asks: %w", symbol, err)
	}
	bids, err := convertLevels(res.Bids)
	if err != nil {
		return domain.Orderbook{}, fmt.Errorf("binance orderbook %s: bids: %w", symbol, err)
	}

	return domain.Orderbook{
		CurrencyPair: pair,
		Asks:         asks,
		Bids:         bids,
		Timestamp:    serverTime.ServerTime,
	}, nil
}

func convertLevels(levels []DepthLevel) ([]domain.OrderbookItem, error) {
	items := make([]domain.OrderbookItem, 0, len(levels))
	for i, level := range levels {
		price, err := parseFloat(level[0])
		if err != nil {
			return nil, fmt.Errorf("level %d price: %w", i, err)
		}
		amount, err := parseFloat(level[1])
		if err != nil {
			return nil, fmt.Errorf("level %d amount: %w", i, err)
		}
		items = append(items, domain.OrderbookItem{Price: price, Amount: amount})
	}
	return items, nil
}

func parseFloat(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}
