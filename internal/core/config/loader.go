package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/vietddude/sniffer/internal/analysis"
)

// Default returns the configuration used for every key the file leaves out.
func Default() AppConfig {
	return AppConfig{
		Server:  ServerConfig{Port: 8080, RateLimit: 20, Burst: 40},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Analysis: AnalysisConfig{
			Wallet:      analysis.DefaultWalletOptions(),
			Events:      analysis.DefaultEventOptions(),
			Swaps:       analysis.DefaultSwapOptions(),
			Transaction: analysis.DefaultTransactionOptions(),
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimit > 0 && cfg.Server.Burst <= 0 {
		cfg.Server.Burst = int(cfg.Server.RateLimit) + 1
	}

	return &cfg, nil
}
