package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"exchange-gateway/internal/domain"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Service stores ticker and orderbook snapshots fetched through the API.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	SaveTicker(ctx context.Context, exchange string, ticker domain.Ticker) error
	SaveOrderbook(ctx context.Context, exchange string, orderbook domain.Orderbook) error

	// ListTickers returns stored tickers for a pair, newest first.
	ListTickers(ctx context.Context, exchange string, pair domain.CurrencyPair, limit int) ([]domain.Ticker, error)

	Close() error
}

type service struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS tickers (
	id         TEXT PRIMARY KEY,
	exchange   TEXT    NOT NULL,
	base       TEXT    NOT NULL,
	quote      TEXT    NOT NULL,
	price      REAL    NOT NULL,
	timestamp  INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tickers_pair ON tickers (exchange, base, quote, timestamp);

CREATE TABLE IF NOT EXISTS orderbooks (
	id         TEXT PRIMARY KEY,
	exchange   TEXT    NOT NULL,
	base       TEXT    NOT NULL,
	quote      TEXT    NOT NULL,
	asks       TEXT    NOT NULL,
	bids       TEXT    NOT NULL,
	timestamp  INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orderbooks_pair ON orderbooks (exchange, base, quote, timestamp);
`

// New opens (or creates) the SQLite database at path and applies the schema.
func New(path string) (Service, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &service{db: db}, nil
}

func (s *service) SaveTicker(ctx context.Context, exchange string, ticker domain.Ticker) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tickers (id, exchange, base, quote, price, timestamp, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		exchange,
		ticker.CurrencyPair.BaseCurrency,
		ticker.CurrencyPair.Currency,
		ticker.Price,
		ticker.Timestamp,
		time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save ticker %s %s: %w", exchange, ticker.CurrencyPair, err)
	}
	return nil
}

func (s *service) SaveOrderbook(ctx context.Context, exchange string, orderbook domain.Orderbook) error {
	asks, err := json.Marshal(orderbook.Asks)
	if err != nil {
		return fmt.Errorf("failed to marshal asks: %w", err)
	}
	bids, err := json.Marshal(orderbook.Bids)
	if err != nil {
		return fmt.Errorf("failed to marshal bids: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO orderbooks (id, exchange, base, quote, asks, bids, timestamp, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		exchange,
		orderbook.CurrencyPair.BaseCurrency,
		orderbook.CurrencyPair.Currency,
		string(asks),
		string(bids),
		orderbook.Timestamp,
		time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save orderbook %s %s: %w", exchange, orderbook.CurrencyPair, err)
	}
	return nil
}

func (s *service) ListTickers(ctx context.Context, exchange string, pair domain.CurrencyPair, limit int) ([]domain.Ticker, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT price, timestamp FROM tickers
		 WHERE exchange = ? AND base = ? AND quote = ?
		 ORDER BY timestamp DESC, rowid DESC
		 LIMIT ?`,
		exchange, pair.BaseCurrency, pair.Currency, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickers: %w", err)
	}
	defer rows.Close()

	tickers := make([]domain.Ticker, 0)
	for rows.Next() {
		ticker := domain.Ticker{CurrencyPair: pair}
		if err := rows.Scan(&ticker.Price, &ticker.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, ticker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tickers: %w", err)
	}

	return tickers, nil
}

// Health checks the health of the database connection by pinging the database.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)

	return stats
}

func (s *service) Close() error {
	return s.db.Close()
}
