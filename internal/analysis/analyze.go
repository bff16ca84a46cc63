// Package analysis composes the detectors into one report per request.
// Each Analyze function validates its request, runs on the pre-fetched
// payload and never performs I/O.
package analysis

import (
	"fmt"

	"github.com/vietddude/sniffer/internal/analytics/counterparty"
	"github.com/vietddude/sniffer/internal/analytics/detect"
	"github.com/vietddude/sniffer/internal/analytics/graph"
	"github.com/vietddude/sniffer/internal/analytics/risk"
	"github.com/vietddude/sniffer/internal/analytics/stats"
	"github.com/vietddude/sniffer/internal/analytics/swap"
	"github.com/vietddude/sniffer/internal/analytics/txlabel"
	"github.com/vietddude/sniffer/internal/core/domain"
	"github.com/vietddude/sniffer/internal/core/watchlist"
)

// Analysis kinds, used in summaries and metrics labels.
const (
	KindWallet      = "wallet"
	KindEvents      = "events"
	KindSwaps       = "swaps"
	KindTransaction = "transaction"
)

// WalletMetrics is the metrics section of a wallet report.
type WalletMetrics struct {
	Baselines      []stats.Baseline           `json:"baselines"`
	RiskScores     []domain.RiskScore         `json:"risk_scores"`
	Counterparties domain.CounterpartySummary `json:"counterparties"`
	Volumes        counterparty.Volumes       `json:"volumes"`
}

// EventMetrics is the metrics section of an event-log report.
type EventMetrics struct {
	Baselines  []stats.Baseline           `json:"baselines"`
	TopSenders []counterparty.SenderTotal `json:"top_senders"`
}

// SwapMetrics is the metrics section of a swap report.
type SwapMetrics struct {
	Swaps        int `json:"swaps"`
	PriceImpacts int `json:"price_impacts"`
	WashTrades   int `json:"wash_trades"`
}

// TransactionMetrics is the metrics section of a transaction report.
type TransactionMetrics struct {
	Transactions []domain.LabeledTransaction `json:"transactions"`
}

// AnalyzeWallet runs every transfer detector over the wallet's decoded logs and
// scores the watched addresses.
func AnalyzeWallet(req WalletRequest) (*domain.Report, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("analyze wallet: %w", err)
	}
	opts := req.Options
	events := req.Payload.DecodedLogs
	watched := watchlist.New(req.Addresses...)
	addresses := watched.Addresses()

	anomalies := detect.ValueAnomalies(events, opts.ZThreshold)
	large := detect.LargeTransfers(events, opts.LargeTransferThreshold.Int())
	centrality := graph.Centrality(events, opts.MinCentralityDegree)
	patterns := detect.FilterPatterns(detect.SuspiciousPatterns(events), opts.IncludeSelfTransfers, opts.IncludeZeroValue)
	trends := stats.RollingTrends(events, stats.TrendOptions{
		Window:     opts.TrendWindow,
		ZThreshold: opts.TrendZThreshold,
		CUSUMLimit: opts.TrendCUSUMLimit,
		Include:    addresses,
	})

	var b alertBuilder
	collect(&b, anomalies)
	collect(&b, large)
	collect(&b, centrality)
	collect(&b, trends)
	collect(&b, patterns)
	alerts, verdict, severity := b.result()

	metrics := WalletMetrics{
		Baselines:      stats.WalletBaselines(events, addresses, opts.BaselineWindow),
		RiskScores:     risk.Score(watched, anomalies, large, centrality),
		Counterparties: counterparty.Summarize(events, watched, counterparty.Options{Decimals: opts.TokenDecimals}),
		Volumes:        counterparty.CollectVolumes(events, req.Payload.Transactions),
	}

	return &domain.Report{
		Summary: domain.Summary{
			Kind:              KindWallet,
			Addresses:         addresses,
			NextBlock:         req.Payload.NextBlock,
			ArchiveHeight:     req.Payload.ArchiveHeight,
			TotalLogs:         len(req.Payload.Logs),
			TotalTransactions: len(req.Payload.Transactions),
			AlertCount:        len(alerts),
			Verdict:           verdict,
			Severity:          severity,
		},
		Alerts:  alerts,
		Metrics: metrics,
		Raw:     req.Payload.Raw(),
	}, nil
}

// AnalyzeEvents runs the transfer detectors over one contract's event stream.
// No address is privileged: baselines cover every sender.
func AnalyzeEvents(req EventRequest) (*domain.Report, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("analyze events: %w", err)
	}
	opts := req.Options
	events := req.Payload.DecodedLogs

	var b alertBuilder
	collect(&b, detect.ValueAnomalies(events, opts.ZThreshold))
	collect(&b, detect.LargeTransfers(events, opts.LargeTransferThreshold.Int()))
	collect(&b, graph.Centrality(events, opts.MinCentralityDegree))
	collect(&b, stats.RollingTrends(events, stats.TrendOptions{
		Window:     opts.TrendWindow,
		ZThreshold: opts.TrendZThreshold,
		CUSUMLimit: opts.TrendCUSUMLimit,
	}))
	collect(&b, detect.FilterPatterns(detect.SuspiciousPatterns(events), opts.IncludeSelfTransfers, opts.IncludeZeroValue))
	alerts, verdict, severity := b.result()

	start, end := req.StartBlock, req.EndBlock
	return &domain.Report{
		Summary: domain.Summary{
			Kind:          KindEvents,
			Contract:      normalize(req.Contract),
			Topic0:        req.Topic0,
			StartBlock:    &start,
			EndBlock:      &end,
			NextBlock:     req.Payload.NextBlock,
			ArchiveHeight: req.Payload.ArchiveHeight,
			TotalLogs:     len(req.Payload.Logs),
			AlertCount:    len(alerts),
			Verdict:       verdict,
			Severity:      severity,
		},
		Alerts: alerts,
		Metrics: EventMetrics{
			Baselines:  stats.WalletBaselines(events, nil, opts.BaselineWindow),
			TopSenders: counterparty.TopSenders(events, opts.TopSenders),
		},
		Raw: req.Payload.Raw(),
	}, nil
}

// AnalyzeSwaps runs the price-impact and wash-trade detectors over a pool's
// swaps. DecodedLogs must be in execution order.
func AnalyzeSwaps(req SwapRequest) (*domain.Report, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("analyze swaps: %w", err)
	}
	opts := req.Options
	events := req.Payload.DecodedLogs

	impactOpts := swap.PriceImpactOptions{MinDeltaBps: opts.MinPriceDeltaBps}
	if opts.MinNotional != nil {
		impactOpts.MinNotional = opts.MinNotional.Int()
	}
	impacts := swap.PriceImpact(events, impactOpts)
	washes := swap.WashTrades(events, opts.WashTradeThreshold)

	var b alertBuilder
	collect(&b, impacts)
	collect(&b, washes)
	alerts, verdict, severity := b.result()

	swaps := 0
	for _, e := range events {
		if swap.IsSwapShaped(e) {
			swaps++
		}
	}

	start, end := req.StartBlock, req.EndBlock
	return &domain.Report{
		Summary: domain.Summary{
			Kind:          KindSwaps,
			PoolAddress:   normalize(req.PoolAddress),
			Topic0:        req.Topic0,
			StartBlock:    &start,
			EndBlock:      &end,
			NextBlock:     req.Payload.NextBlock,
			ArchiveHeight: req.Payload.ArchiveHeight,
			TotalLogs:     len(req.Payload.Logs),
			AlertCount:    len(alerts),
			Verdict:       verdict,
			Severity:      severity,
		},
		Alerts: alerts,
		Metrics: SwapMetrics{
			Swaps:        swaps,
			PriceImpacts: len(impacts),
			WashTrades:   len(washes),
		},
		Raw: req.Payload.Raw(),
	}, nil
}

// AnalyzeTransaction decodes and labels the fetched transactions and raises one
// alert per transaction that received a risk flag.
func AnalyzeTransaction(req TransactionRequest) (*domain.Report, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("analyze transaction: %w", err)
	}
	opts := req.Options
	txs := req.Payload.Transactions

	var labeled []domain.LabeledTransaction
	if opts.DecodeMethods {
		labeled = txlabel.DecodeMethods(txs, opts.Lookup)
	} else {
		labeled = txlabel.Wrap(txs)
	}
	labeled = txlabel.LabelRisk(labeled, watchlist.New(opts.Watchlist...), opts.LargeValueThreshold.Int())

	var b alertBuilder
	for _, tx := range labeled {
		if len(tx.RiskFlags) == 0 {
			continue
		}
		b.add(domain.TransactionRisk{Transaction: tx, Flags: tx.RiskFlags})
	}
	alerts, verdict, severity := b.result()

	return &domain.Report{
		Summary: domain.Summary{
			Kind:              KindTransaction,
			TxHash:            normalize(req.TxHash),
			NextBlock:         req.Payload.NextBlock,
			ArchiveHeight:     req.Payload.ArchiveHeight,
			TotalTransactions: len(txs),
			AlertCount:        len(alerts),
			Verdict:           verdict,
			Severity:          severity,
		},
		Alerts:  alerts,
		Metrics: TransactionMetrics{Transactions: labeled},
		Raw:     req.Payload.Raw(),
	}, nil
}

func normalize(s string) string {
	return watchlist.Normalize(s)
}
