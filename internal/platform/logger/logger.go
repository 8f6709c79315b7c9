package logger

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var once sync.Once
var appLogger *zap.Logger
var accessLogger *zap.Logger

type Config struct {
	Filename   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// Get returns the gateway logger, writing to stdout and app.log.
func Get() *zap.Logger {
	once.Do(initLoggers)
	return appLogger
}

// GetAccessLogger returns the logger for API access records. It only writes to access.log.
func GetAccessLogger() *zap.Logger {
	once.Do(initLoggers)
	return accessLogger
}

// Level reads LOG_LEVEL, falling back to info.
func Level() zapcore.Level {
	level := zap.InfoLevel
	if levelEnv := os.Getenv("LOG_LEVEL"); levelEnv != "" {
		if parsedLevel, err := zapcore.ParseLevel(levelEnv); err == nil {
			level = parsedLevel
		}
	}
	return level
}

func New(config Config, useConsole bool) *zap.Logger {
	fileHandler := &lumberjack.Logger{
		Filename:   config.Filename,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}

	logLevel := zap.NewAtomicLevelAt(Level())

	cores := []zapcore.Core{
		zapcore.NewCore(fileEncoder(), zapcore.AddSync(fileHandler), logLevel),
	}
	if useConsole {
		cores = append(cores, zapcore.NewCore(consoleEncoder(), zapcore.AddSync(os.Stdout), logLevel))
	}

	return zap.New(zapcore.NewTee(cores...))
}

// fileEncoder writes JSON records with ISO8601 timestamps under "timestamp".
func fileEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func logDir() string {
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		return dir
	}
	return "logs"
}

func initLoggers() {
	dir := logDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}

	appConfig := Config{
		Filename:   filepath.Join(dir, "app.log"),
		MaxSize:    5,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	accessConfig := Config{
		Filename:   filepath.Join(dir, "access.log"),
		MaxSize:    5,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	appLogger = New(appConfig, true)
	accessLogger = New(accessConfig, false)
}
