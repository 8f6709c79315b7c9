package server

import (
	"errors"
	"time"

	"exchange-gateway/internal/database"
	"exchange-gateway/internal/domain"
	"exchange-gateway/internal/exchange"
	"exchange-gateway/internal/exchange/binance"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

type FiberServer struct {
	*fiber.App

	db           database.Service
	exchanges    *exchange.Registry
	logger       *zap.Logger
	accessLogger *zap.Logger
}

type Response struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func New(exchanges *exchange.Registry, db database.Service, logger *zap.Logger, accessLogger *zap.Logger, readTimeout time.Duration) *FiberServer {
	server := &FiberServer{
		db:           db,
		exchanges:    exchanges,
		logger:       logger,
		accessLogger: accessLogger,
	}

	server.App = fiber.New(fiber.Config{
		ServerHeader: "exchange-gateway",
		AppName:      "exchange-gateway",
		ReadTimeout:  readTimeout,
		ErrorHandler: server.errorHandler,
	})

	return server
}

func ok(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Code:    fiber.StatusOK,
		Message: "OK",
		Data:    data,
	})
}

func (s *FiberServer) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var apiErr *binance.APIError
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, domain.ErrInvalidParameter):
		code = fiber.StatusBadRequest
	case errors.Is(err, exchange.ErrUnknownExchange):
		code = fiber.StatusNotFound
	case errors.As(err, &apiErr):
		code = fiber.StatusBadGateway
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	}

	if code >= fiber.StatusInternalServerError {
		s.logger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(code).JSON(Response{
		Success: false,
		Code:    code,
		Message: utils.StatusMessage(code),
		Error:   err.Error(),
	})
}

func (s *FiberServer) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	s.accessLogger.Info("request",
		zap.String("method", c.Method()),
		zap.String("path", c.OriginalURL()),
		zap.String("ip", c.IP()),
		zap.Duration("latency", time.Since(start)),
		zap.Error(err),
	)

	return err
}
