package binance

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"exchange-gateway/internal/platform/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const binanceApiBaseUrl = "https://api.binance.com"

const (
	exchangeInfoPath = "/api/v3/exchangeInfo"
	timePath         = "/api/v3/time"
	tickerPricePath  = "/api/v3/ticker/price"
	depthPath        = "/api/v3/depth"
)

// RemoteClient performs the raw REST calls the adapter needs. Implementations
// own timeouts, rate limiting and retries.
type RemoteClient interface {
	GetExchangeInfo(ctx context.Context) (ExchangeInfoResponse, error)
	GetTime(ctx context.Context) (ServerTimeResponse, error)
	GetTickerPrice(ctx context.Context, symbol string) (TickerPriceResponse, error)
	GetOrderbook(ctx context.Context, symbol string) (DepthResponse, error)
}

type RestClient struct {
	client     *resty.Client
	limiter    *rate.Limiter
	depthLimit int
	logger     *zap.Logger
}

func NewRestClient(cfg config.ExchangeConfig, logger *zap.Logger) *RestClient {
	baseUrl := cfg.BaseUrl
	if baseUrl == "" {
		baseUrl = binanceApiBaseUrl
	}

	client := resty.New().
		SetBaseURL(baseUrl).
		SetTimeout(cfg.Timeout.Std()).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if r == nil {
				return false
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})
	if cfg.ApiKey != "" {
		client.SetHeader("X-MBX-APIKEY", cfg.ApiKey)
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	return &RestClient{
		client:     client,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		depthLimit: cfg.DepthLimit,
		logger:     logger,
	}
}

func (c *RestClient) GetExchangeInfo(ctx context.Context) (res ExchangeInfoResponse, err error) {
	err = c.get(ctx, exchangeInfoPath, nil, &res)
	return
}

func (c *RestClient) GetTime(ctx context.Context) (res ServerTimeResponse, err error) {
	err = c.get(ctx, timePath, nil, &res)
	return
}

func (c *RestClient) GetTickerPrice(ctx context.Context, symbol string) (res TickerPriceResponse, err error) {
	err = c.get(ctx, tickerPricePath, map[string]string{"symbol": symbol}, &res)
	return
}

func (c *RestClient) GetOrderbook(ctx context.Context, symbol string) (res DepthResponse, err error) {
	params := map[string]string{"symbol": symbol}
	if c.depthLimit > 0 {
		params["limit"] = strconv.Itoa(c.depthLimit)
	}
	err = c.get(ctx, depthPath, params, &res)
	return
}

func (c *RestClient) get(ctx context.Context, path string, params map[string]string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("binance %s: rate limiter: %w", path, err)
	}

	apiErr := &APIError{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		ForceContentType("application/json").
		SetResult(result).
		SetError(apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("binance %s: %w", path, err)
	}

	c.logger.Debug("binance request",
		zap.String("path", path),
		zap.Any("params", params),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", resp.Time()),
	)

	if resp.IsError() {
		apiErr.Endpoint = path
		apiErr.StatusCode = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = string(resp.Body())
		}
		return apiErr
	}

	return nil
}
