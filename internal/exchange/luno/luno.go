package luno

import (
	"context"
	"time"

	"exchange-gateway/internal/domain"
	"exchange-gateway/internal/platform/config"

	"github.com/luno/luno-go"
	"github.com/luno/luno-go/decimal"
	"go.uber.org/zap"
)

const (
	Name    = "Luno"
	Version = "1.0"
	URL     = "https://www.luno.com/en/developers/api"
)

// api is the subset of *luno.Client the adapter calls.
type api interface {
	Markets(ctx context.Context, req *luno.MarketsRequest) (*luno.MarketsResponse, error)
	GetTicker(ctx context.Context, req *luno.GetTickerRequest) (*luno.GetTickerResponse, error)
	GetOrderBook(ctx context.Context, req *luno.GetOrderBookRequest) (*luno.GetOrderBookResponse, error)
}

type LunoExchange struct {
	lunoClient api
	info       domain.ExchangeInfo
}

func CreateClient(cfg config.ExchangeConfig, logger *zap.Logger) *LunoExchange {
	lunoClient := luno.NewClient()
	if cfg.BaseUrl != "" {
		lunoClient.SetBaseURL(cfg.BaseUrl)
	}
	if cfg.Timeout > 0 {
		lunoClient.SetTimeout(cfg.Timeout.Std())
	}
	if cfg.ApiKey != "" {
		if err := lunoClient.SetAuth(cfg.ApiKey, cfg.ApiSecret); err != nil {
			logger.Warn("Luno credentials rejected, continuing unauthenticated", zap.Error(err))
		}
	}

	logger.Info("Luno client created")

	return newLunoExchange(lunoClient)
}

func newLunoExchange(client api) *LunoExchange {
	return &LunoExchange{
		lunoClient: client,
		info:       domain.ExchangeInfo{Name: Name, Version: Version, URL: URL},
	}
}

func (lunoExchange *LunoExchange) Info() domain.ExchangeInfo {
	return lunoExchange.info
}

func (lunoExchange *LunoExchange) ListCurrencyPairs(ctx context.Context) ([]domain.CurrencyPair, error) {
	res, err := lunoExchange.lunoClient.Markets(ctx, &luno.MarketsRequest{})
	if err != nil {
		return nil, err
	}

	pairs := make([]domain.CurrencyPair, 0, len(res.Markets))
	for _, market := range res.Markets {
		pairs = append(pairs, domain.NewCurrencyPair(market.BaseCurrency, market.CounterCurrency))
	}

	return pairs, nil
}

func (lunoExchange *LunoExchange) GetTicker(ctx context.Context, pair domain.CurrencyPair) (domain.Ticker, error) {
	if err := pair.Validate(); err != nil {
		return domain.Ticker{}, err
	}

	res, err := lunoExchange.lunoClient.GetTicker(ctx, &luno.GetTickerRequest{Pair: pair.Symbol()})
	if err != nil {
		return domain.Ticker{}, err
	}

	return domain.Ticker{
		CurrencyPair: pair,
		Price:        res.LastTrade.Float64(),
		Timestamp:    time.Time(res.Timestamp).UnixMilli(),
	}, nil
}

func (lunoExchange *LunoExchange) GetOrderbook(ctx context.Context, pair domain.CurrencyPair) (domain.Orderbook, error) {
	if err := pair.Validate(); err != nil {
		return domain.Orderbook{}, err
	}

	res, err := lunoExchange.lunoClient.GetOrderBook(ctx, &luno.GetOrderBookRequest{Pair: pair.Symbol()})
	if err != nil {
		return domain.Orderbook{}, err
	}

	return domain.Orderbook{
		CurrencyPair: pair,
		Asks:         convertEntries(res.Asks),
		Bids:         convertEntries(res.Bids),
		Timestamp:    res.Timestamp,
	}, nil
}

func convertEntries(entries []luno.OrderBookEntry) []domain.OrderbookItem {
	items := make([]domain.OrderbookItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, domain.OrderbookItem{
			Price:  toFloat(entry.Price),
			Amount: toFloat(entry.Volume),
		})
	}
	return items
}

func toFloat(d decimal.Decimal) float64 {
	return d.Float64()
}
