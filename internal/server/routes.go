package server

import (
	"strings"

	"exchange-gateway/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 1000
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Use(s.accessLog)

	s.App.Get("/health", s.healthHandler)

	api := s.App.Group("/api/v1")
	api.Get("/exchanges", s.listExchangesHandler)
	api.Get("/exchanges/:exchange/pairs", s.listCurrencyPairsHandler)
	api.Get("/exchanges/:exchange/ticker/:base/:quote", s.tickerHandler)
	api.Get("/exchanges/:exchange/ticker/:base/:quote/history", s.tickerHistoryHandler)
	api.Get("/exchanges/:exchange/orderbook/:base/:quote", s.orderbookHandler)
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	return c.JSON(s.db.Health())
}

func (s *FiberServer) listExchangesHandler(c *fiber.Ctx) error {
	exchanges := s.exchanges.List()
	infos := make([]domain.ExchangeInfo, 0, len(exchanges))
	for _, ex := range exchanges {
		infos = append(infos, ex.Info())
	}
	return ok(c, infos)
}

func (s *FiberServer) listCurrencyPairsHandler(c *fiber.Ctx) error {
	ex, err := s.exchanges.Get(c.Params("exchange"))
	if err != nil {
		return err
	}

	pairs, err := ex.ListCurrencyPairs(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, pairs)
}

func (s *FiberServer) tickerHandler(c *fiber.Ctx) error {
	ex, err := s.exchanges.Get(c.Params("exchange"))
	if err != nil {
		return err
	}

	ticker, err := ex.GetTicker(c.UserContext(), pairFromParams(c))
	if err != nil {
		return err
	}

	if err := s.db.SaveTicker(c.UserContext(), ex.Info().Name, ticker); err != nil {
		s.logger.Warn("Failed to save ticker snapshot", zap.Error(err))
	}
	return ok(c, ticker)
}

func (s *FiberServer) tickerHistoryHandler(c *fiber.Ctx) error {
	ex, err := s.exchanges.Get(c.Params("exchange"))
	if err != nil {
		return err
	}

	pair := pairFromParams(c)
	if err := pair.Validate(); err != nil {
		return err
	}

	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	tickers, err := s.db.ListTickers(c.UserContext(), ex.Info().Name, pair, limit)
	if err != nil {
		return err
	}
	return ok(c, tickers)
}

func (s *FiberServer) orderbookHandler(c *fiber.Ctx) error {
	ex, err := s.exchanges.Get(c.Params("exchange"))
	if err != nil {
		return err
	}

	orderbook, err := ex.GetOrderbook(c.UserContext(), pairFromParams(c))
	if err != nil {
		return err
	}

	if err := s.db.SaveOrderbook(c.UserContext(), ex.Info().Name, orderbook); err != nil {
		s.logger.Warn("Failed to save orderbook snapshot", zap.Error(err))
	}
	return ok(c, orderbook)
}

// pairFromParams copies the params; fiber reuses their backing buffer after the handler returns.
func pairFromParams(c *fiber.Ctx) domain.CurrencyPair {
	return domain.NewCurrencyPair(
		strings.ToUpper(utils.CopyString(c.Params("base"))),
		strings.ToUpper(utils.CopyString(c.Params("quote"))),
	)
}
