package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `{
	"Server": {"Port": 9000, "ReadTimeout": "3s"},
	"Exchange": {
		"Binance": {"Enabled": true, "BaseUrl": "https://api.binance.com", "Timeout": 5, "RetryCount": 2},
		"Luno": {"Enabled": false, "ApiKey": "id", "ApiSecret": "secret", "DepthLimit": 20}
	}
}`

func TestParse(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")

	c, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if c.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout.Std() != 3*time.Second {
		t.Errorf("Expected read timeout 3s, got %v", c.Server.ReadTimeout.Std())
	}
	if c.Database.Path != "exchange-gateway.db" {
		t.Errorf("Expected default database path, got %s", c.Database.Path)
	}

	binance, ok := c.Exchange["binance"]
	if !ok {
		t.Fatal("Expected exchange keys to be lower-cased")
	}
	if binance.Timeout.Std() != 5*time.Second {
		t.Errorf("Expected numeric timeout in seconds, got %v", binance.Timeout.Std())
	}
	if binance.RequestsPerSecond != 10 || binance.DepthLimit != 100 {
		t.Errorf("Expected defaults to be applied, got %+v", binance)
	}
	if c.Exchange["luno"].DepthLimit != 20 {
		t.Errorf("Expected configured depth limit to be kept, got %d", c.Exchange["luno"].DepthLimit)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("DB_PATH", "/tmp/snapshots.db")

	c, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if c.Server.Port != 7070 {
		t.Errorf("Expected PORT override, got %d", c.Server.Port)
	}
	if c.Database.Path != "/tmp/snapshots.db" {
		t.Errorf("Expected DB_PATH override, got %s", c.Database.Path)
	}
}

func TestParseInvalidDuration(t *testing.T) {
	if _, err := Parse([]byte(`{"Server": {"ReadTimeout": "soon"}}`)); err == nil {
		t.Error("Expected error for invalid duration")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err != nil {
		t.Errorf("Load returned error: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
