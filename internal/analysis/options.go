package analysis

import (
	"github.com/vietddude/sniffer/internal/analytics/counterparty"
	"github.com/vietddude/sniffer/internal/analytics/detect"
	"github.com/vietddude/sniffer/internal/analytics/stats"
	"github.com/vietddude/sniffer/internal/analytics/swap"
	"github.com/vietddude/sniffer/internal/analytics/txlabel"
	"github.com/vietddude/sniffer/internal/core/domain"
)

// DefaultAlertMinDegree is the minimum degree for centrality alerts in wallet and event analysis.
const DefaultAlertMinDegree = 3

// WalletOptions configures AnalyzeWallet. Start from DefaultWalletOptions;
// the zero value disables most thresholds.
type WalletOptions struct {
	ZThreshold             float64       `json:"z_threshold" yaml:"z_threshold"`
	LargeTransferThreshold domain.Amount `json:"large_transfer_threshold" yaml:"large_transfer_threshold"`
	MinCentralityDegree    int           `json:"min_centrality_degree" yaml:"min_centrality_degree"`
	IncludeSelfTransfers   bool          `json:"include_self_transfers" yaml:"include_self_transfers"`
	IncludeZeroValue       bool          `json:"include_zero_value" yaml:"include_zero_value"`
	BaselineWindow         int           `json:"baseline_window" yaml:"baseline_window"`
	TrendWindow            int           `json:"trend_window" yaml:"trend_window"`
	TrendZThreshold        float64       `json:"trend_z_threshold" yaml:"trend_z_threshold"`
	TrendCUSUMLimit        float64       `json:"trend_cusum_limit" yaml:"trend_cusum_limit"`
	TokenDecimals          int32         `json:"token_decimals" yaml:"token_decimals"`
}

// DefaultWalletOptions returns the wallet analysis defaults.
func DefaultWalletOptions() WalletOptions {
	trend := stats.DefaultTrendOptions()
	return WalletOptions{
		ZThreshold:             detect.DefaultZThreshold,
		LargeTransferThreshold: domain.NewAmount(detect.DefaultLargeTransferThreshold()),
		MinCentralityDegree:    DefaultAlertMinDegree,
		IncludeSelfTransfers:   true,
		IncludeZeroValue:       true,
		BaselineWindow:         stats.DefaultBaselineWindow,
		TrendWindow:            trend.Window,
		TrendZThreshold:        trend.ZThreshold,
		TrendCUSUMLimit:        trend.CUSUMLimit,
		TokenDecimals:          counterparty.DefaultDecimals,
	}
}

// EventOptions configures AnalyzeEvents.
type EventOptions struct {
	ZThreshold             float64       `json:"z_threshold" yaml:"z_threshold"`
	LargeTransferThreshold domain.Amount `json:"large_transfer_threshold" yaml:"large_transfer_threshold"`
	MinCentralityDegree    int           `json:"min_centrality_degree" yaml:"min_centrality_degree"`
	IncludeSelfTransfers   bool          `json:"include_self_transfers" yaml:"include_self_transfers"`
	IncludeZeroValue       bool          `json:"include_zero_value" yaml:"include_zero_value"`
	BaselineWindow         int           `json:"baseline_window" yaml:"baseline_window"`
	TrendWindow            int           `json:"trend_window" yaml:"trend_window"`
	TrendZThreshold        float64       `json:"trend_z_threshold" yaml:"trend_z_threshold"`
	TrendCUSUMLimit        float64       `json:"trend_cusum_limit" yaml:"trend_cusum_limit"`
	TopSenders             int           `json:"top_senders" yaml:"top_senders"`
}

// DefaultEventOptions returns the event-log analysis defaults.
func DefaultEventOptions() EventOptions {
	w := DefaultWalletOptions()
	return EventOptions{
		ZThreshold:             w.ZThreshold,
		LargeTransferThreshold: w.LargeTransferThreshold,
		MinCentralityDegree:    w.MinCentralityDegree,
		IncludeSelfTransfers:   true,
		IncludeZeroValue:       true,
		BaselineWindow:         w.BaselineWindow,
		TrendWindow:            w.TrendWindow,
		TrendZThreshold:        w.TrendZThreshold,
		TrendCUSUMLimit:        w.TrendCUSUMLimit,
		TopSenders:             counterparty.DefaultTopSenders,
	}
}

// SwapOptions configures AnalyzeSwaps.
type SwapOptions struct {
	MinPriceDeltaBps   float64        `json:"min_price_delta_bps" yaml:"min_price_delta_bps"`
	// MinNotional is optional; nil keeps every swap.
	MinNotional        *domain.Amount `json:"min_notional" yaml:"min_notional"`
	WashTradeThreshold int            `json:"wash_trade_threshold" yaml:"wash_trade_threshold"`
}

// DefaultSwapOptions returns the swap analysis defaults.
func DefaultSwapOptions() SwapOptions {
	return SwapOptions{
		MinPriceDeltaBps:   swap.DefaultMinPriceDeltaBps,
		WashTradeThreshold: swap.DefaultMaxSwaps,
	}
}

// TransactionOptions configures AnalyzeTransaction.
type TransactionOptions struct {
	DecodeMethods       bool             `json:"decode_methods" yaml:"decode_methods"`
	LargeValueThreshold domain.Amount    `json:"large_value_threshold" yaml:"large_value_threshold"`
	Watchlist           []string         `json:"watchlist" yaml:"watchlist"`
	// Lookup resolves selectors before the built-in registry.
	Lookup              txlabel.Resolver `json:"-" yaml:"-"`
}

// DefaultTransactionOptions returns the transaction analysis defaults.
func DefaultTransactionOptions() TransactionOptions {
	return TransactionOptions{
		DecodeMethods:       true,
		LargeValueThreshold: domain.NewAmount(txlabel.DefaultLargeValueThreshold()),
	}
}
