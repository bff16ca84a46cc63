package config

import (
	"github.com/vietddude/sniffer/internal/analysis"
	"github.com/vietddude/sniffer/internal/infra/kafka"
	redisclient "github.com/vietddude/sniffer/internal/infra/redis"
	"github.com/vietddude/sniffer/internal/infra/telemetry"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig       `yaml:"server"`
	Logging  LoggingConfig      `yaml:"logging"`
	Redis    redisclient.Config `yaml:"redis"`
	Kafka    kafka.Config       `yaml:"kafka"`
	Tracing  telemetry.Config   `yaml:"tracing"`
	Analysis AnalysisConfig     `yaml:"analysis"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port      int     `yaml:"port"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second, 0 = unlimited
	Burst     int     `yaml:"burst"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// AnalysisConfig holds the default options of each analysis kind.
// Request bodies override them field by field.
type AnalysisConfig struct {
	Wallet      analysis.WalletOptions      `yaml:"wallet"`
	Events      analysis.EventOptions       `yaml:"events"`
	Swaps       analysis.SwapOptions        `yaml:"swaps"`
	Transaction analysis.TransactionOptions `yaml:"transaction"`
}
