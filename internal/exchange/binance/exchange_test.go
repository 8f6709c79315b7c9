package binance

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"exchange-gateway/internal/domain"
)

type fakeRemoteClient struct {
	exchangeInfo ExchangeInfoResponse
	serverTime   int64
	price        string
	depth        DepthResponse
	err          error

	calls   []string
	symbols []string
}

func (f *fakeRemoteClient) GetExchangeInfo(ctx context.Context) (ExchangeInfoResponse, error) {
	f.calls = append(f.calls, "exchangeInfo")
	return f.exchangeInfo, f.err
}

func (f *fakeRemoteClient) GetTime(ctx context.Context) (ServerTimeResponse, error) {
	f.calls = append(f.calls, "time")
	return ServerTimeResponse{ServerTime: f.serverTime}, f.err
}

func (f *fakeRemoteClient) GetTickerPrice(ctx context.Context, symbol string) (TickerPriceResponse, error) {
	f.calls = append(f.calls, "tickerPrice")
	f.symbols = append(f.symbols, symbol)
	return TickerPriceResponse{Symbol: symbol, Price: f.price}, f.err
}

func (f *fakeRemoteClient) GetOrderbook(ctx context.Context, symbol string) (DepthResponse, error) {
	f.calls = append(f.calls, "depth")
	f.symbols = append(f.symbols, symbol)
	return f.depth, f.err
}

func TestInfo(t *testing.T) {
	info := NewExchange(&fakeRemoteClient{}).Info()

	if info.Name != "Binance" || info.Version != "1.0" || info.URL != URL {
		t.Errorf("Unexpected exchange info: %+v", info)
	}
}

func TestListCurrencyPairs(t *testing.T) {
	client := &fakeRemoteClient{exchangeInfo: ExchangeInfoResponse{Symbols: []SymbolInfo{
		{Symbol: "BTCUSDT", BaseAsset: "BTC"},
		{Symbol: "ETHBTC", BaseAsset: "ETH"},
		{Symbol: "1INCHUSDT", BaseAsset: "1INCH"},
	}}}

	pairs, err := NewExchange(client).ListCurrencyPairs(context.Background())
	if err != nil {
		t.Fatalf("ListCurrencyPairs returned error: %v", err)
	}

	expected := []domain.CurrencyPair{
		domain.NewCurrencyPair("BTC", "USDT"),
		domain.NewCurrencyPair("ETH", "BTC"),
		domain.NewCurrencyPair("1INCH", "USDT"),
	}
	if !reflect.DeepEqual(pairs, expected) {
		t.Errorf("Expected %v, got %v", expected, pairs)
	}
}

func TestListCurrencyPairsUnvalidatedBaseAsset(t *testing.T) {
	client := &fakeRemoteClient{exchangeInfo: ExchangeInfoResponse{Symbols: []SymbolInfo{
		{Symbol: "BTCUSDT", BaseAsset: "XBT"},
		{Symbol: "BTC", BaseAsset: "BTC"},
		{Symbol: "BTC", BaseAsset: "BTCUSD"},
	}}}

	pairs, err := NewExchange(client).ListCurrencyPairs(context.Background())
	if err != nil {
		t.Fatalf("ListCurrencyPairs returned error: %v", err)
	}

	expected := []domain.CurrencyPair{
		domain.NewCurrencyPair("XBT", "USDT"),
		domain.NewCurrencyPair("BTC", ""),
		domain.NewCurrencyPair("BTCUSD", ""),
	}
	if !reflect.DeepEqual(pairs, expected) {
		t.Errorf("Expected %v, got %v", expected, pairs)
	}
}

func TestListCurrencyPairsEmpty(t *testing.T) {
	pairs, err := NewExchange(&fakeRemoteClient{}).ListCurrencyPairs(context.Background())
	if err != nil {
		t.Fatalf("ListCurrencyPairs returned error: %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("Expected no pairs, got %v", pairs)
	}
}

func TestGetTicker(t *testing.T) {
	client := &fakeRemoteClient{serverTime: 1700000000000, price: "42000.50"}
	pair := domain.NewCurrencyPair("BTC", "USDT")

	ticker, err := NewExchange(client).GetTicker(context.Background(), pair)
	if err != nil {
		t.Fatalf("GetTicker returned error: %v", err)
	}

	expected := domain.Ticker{CurrencyPair: pair, Price: 42000.50, Timestamp: 1700000000000}
	if ticker != expected {
		t.Errorf("Expected %+v, got %+v", expected, ticker)
	}
	if !reflect.DeepEqual(client.calls, []string{"time", "tickerPrice"}) {
		t.Errorf("Unexpected call sequence: %v", client.calls)
	}
	if client.symbols[0] != "BTCUSDT" {
		t.Errorf("Expected symbol BTCUSDT, got %s", client.symbols[0])
	}
}

func TestGetTickerMissingPair(t *testing.T) {
	client := &fakeRemoteClient{}

	_, err := NewExchange(client).GetTicker(context.Background(), domain.CurrencyPair{})
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
	if len(client.calls) != 0 {
		t.Errorf("Expected no remote calls, got %v", client.calls)
	}
}

func TestGetTickerRemoteErrorIsReturnedUnchanged(t *testing.T) {
	apiErr := &APIError{Endpoint: tickerPricePath, StatusCode: 400, Code: -1121, Message: "Invalid symbol."}
	client := &fakeRemoteClient{err: apiErr}

	_, err := NewExchange(client).GetTicker(context.Background(), domain.NewCurrencyPair("FOO", "BAR"))
	if err != apiErr {
		t.Errorf("Expected the remote error unchanged, got %v", err)
	}
}

func TestGetTickerMalformedPrice(t *testing.T) {
	client := &fakeRemoteClient{serverTime: 1, price: "n/a"}

	_, err := NewExchange(client).GetTicker(context.Background(), domain.NewCurrencyPair("BTC", "USDT"))
	if err == nil {
		t.Error("Expected parse error for non-numeric price")
	}
}

func TestGetOrderbook(t *testing.T) {
	client := &fakeRemoteClient{
		serverTime: 1700000000000,
		depth: DepthResponse{
			Asks: []DepthLevel{{"100.0", "1.5"}, {"101.0", "0.5"}},
			Bids: []DepthLevel{{"99.0", "2.0"}, {"98.5", "3.25"}},
		},
	}
	pair := domain.NewCurrencyPair("BTC", "USDT")

	orderbook, err := NewExchange(client).GetOrderbook(context.Background(), pair)
	if err != nil {
		t.Fatalf("GetOrderbook returned error: %v", err)
	}

	expectedAsks := []domain.OrderbookItem{{Price: 100.0, Amount: 1.5}, {Price: 101.0, Amount: 0.5}}
	expectedBids := []domain.OrderbookItem{{Price: 99.0, Amount: 2.0}, {Price: 98.5, Amount: 3.25}}

	if !reflect.DeepEqual(orderbook.Asks, expectedAsks) {
		t.Errorf("Expected asks %v, got %v", expectedAsks, orderbook.Asks)
	}
	if !reflect.DeepEqual(orderbook.Bids, expectedBids) {
		t.Errorf("Expected bids %v, got %v", expectedBids, orderbook.Bids)
	}
	if orderbook.CurrencyPair != pair || orderbook.Timestamp != 1700000000000 {
		t.Errorf("Unexpected orderbook header: %+v", orderbook)
	}
	if !reflect.DeepEqual(client.calls, []string{"time", "depth"}) {
		t.Errorf("Unexpected call sequence: %v", client.calls)
	}
}

func TestGetOrderbookMissingPair(t *testing.T) {
	client := &fakeRemoteClient{}

	_, err := NewExchange(client).GetOrderbook(context.Background(), domain.NewCurrencyPair("BTC", ""))
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
	if len(client.calls) != 0 {
		t.Errorf("Expected no remote calls, got %v", client.calls)
	}
}

func TestGetOrderbookMalformedLevel(t *testing.T) {
	client := &fakeRemoteClient{depth: DepthResponse{
		Asks: []DepthLevel{{"100.0", "1.5"}},
		Bids: []DepthLevel{{"99.0", "lots"}},
	}}

	orderbook, err := NewExchange(client).GetOrderbook(context.Background(), domain.NewCurrencyPair("BTC", "USDT"))
	if err == nil {
		t.Fatal("Expected parse error for non-numeric amount")
	}
	if orderbook.Asks != nil {
		t.Errorf("Expected no partial result, got %+v", orderbook)
	}
}

func TestRepeatedCallsIssueIdenticalRequests(t *testing.T) {
	client := &fakeRemoteClient{price: "1", depth: DepthResponse{}}
	exchange := NewExchange(client)
	pair := domain.NewCurrencyPair("ETH", "BTC")

	for i := 0; i < 2; i++ {
		if _, err := exchange.GetTicker(context.Background(), pair); err != nil {
			t.Fatal(err)
		}
		if _, err := exchange.GetOrderbook(context.Background(), pair); err != nil {
			t.Fatal(err)
		}
	}

	expectedCalls := []string{"time", "tickerPrice", "time", "depth", "time", "tickerPrice", "time", "depth"}
	if !reflect.DeepEqual(client.calls, expectedCalls) {
		t.Errorf("Expected %v, got %v", expectedCalls, client.calls)
	}
	for _, symbol := range client.symbols {
		if symbol != "ETHBTC" {
			t.Errorf("Expected every request for ETHBTC, got %s", symbol)
		}
	}
}
