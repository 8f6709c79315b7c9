package exchange

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"exchange-gateway/internal/domain"
	"exchange-gateway/internal/exchange/binance"
	"exchange-gateway/internal/exchange/luno"
	"exchange-gateway/internal/platform/config"

	"go.uber.org/zap"
)

var ErrUnknownExchange = errors.New("unknown exchange")

// Registry holds the adapters the gateway exposes, keyed by lower-case name.
type Registry struct {
	mutex     sync.RWMutex
	exchanges map[string]domain.Exchanger
}

func NewRegistry() *Registry {
	return &Registry{exchanges: make(map[string]domain.Exchanger)}
}

// NewRegistryFromConfig creates a client for every enabled exchange in cfg.
func NewRegistryFromConfig(cfg *config.Config, logger *zap.Logger) (*Registry, error) {
	registry := NewRegistry()

	for name, exchangeConfig := range cfg.Exchange {
		if !exchangeConfig.Enabled {
			continue
		}

		var ex domain.Exchanger
		switch name {
		case domain.Binance.Key():
			ex = binance.CreateClient(exchangeConfig, logger)
		case domain.Luno.Key():
			ex = luno.CreateClient(exchangeConfig, logger)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownExchange, name)
		}

		registry.Register(ex)
		logger.Info("Exchange registered", zap.String("exchange", ex.Info().Name), zap.String("version", ex.Info().Version))
	}

	return registry, nil
}

func (registry *Registry) Register(ex domain.Exchanger) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.exchanges[strings.ToLower(ex.Info().Name)] = ex
}

func (registry *Registry) Get(name string) (domain.Exchanger, error) {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()

	if ex, ok := registry.exchanges[strings.ToLower(name)]; ok {
		return ex, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownExchange, name)
}

// List returns the registered adapters sorted by name.
func (registry *Registry) List() []domain.Exchanger {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()

	exchanges := make([]domain.Exchanger, 0, len(registry.exchanges))
	for _, ex := range registry.exchanges {
		exchanges = append(exchanges, ex)
	}
	sort.Slice(exchanges, func(i, j int) bool {
		return exchanges[i].Info().Name < exchanges[j].Info().Name
	})
	return exchanges
}
