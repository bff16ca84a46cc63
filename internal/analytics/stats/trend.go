package stats

import (
	"math"
	"strings"

	"github.com/vietddude/sniffer/internal/analytics/numeric"
	"github.com/vietddude/sniffer/internal/core/domain"
)

// cusumSlack is subtracted from every |z| before it is accumulated.
const cusumSlack = 0.5

// TrendOptions configures RollingTrends.
type TrendOptions struct {
	Window     int
	ZThreshold float64
	CUSUMLimit float64
	// Include restricts the series to events touching these addresses.
	Include []string
}

// DefaultTrendOptions mirrors the wallet and event analysis defaults.
func DefaultTrendOptions() TrendOptions {
	return TrendOptions{Window: 30, ZThreshold: 3.0, CUSUMLimit: 5.0}
}

// RollingTrends walks the ordered value series and flags values that break away
// from the trailing window before them, either by a single large z-score or by
// a sustained drift accumulated in a one-sided CUSUM. Events must be in source order.
func RollingTrends(events []*domain.DecodedEvent, opts TrendOptions) []domain.Trend {
	if opts.Window < 2 {
		opts.Window = 2
	}
	include := make([]string, 0, len(opts.Include))
	for _, a := range opts.Include {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			include = append(include, a)
		}
	}

	var (
		findings []domain.Trend
		window   = make([]float64, 0, opts.Window)
		cusum    float64
	)
	for i, e := range events {
		if e == nil {
			continue
		}
		subject, ok := trendSubject(e, include)
		if !ok {
			continue
		}
		v, ok := numeric.Float(e.PrimaryValue())
		if !ok {
			continue
		}

		if len(window) >= 2 {
			mean, std := MeanStd(window)
			z := ZScore(v, mean, std)
			cusum = math.Max(0, cusum+math.Abs(z)-cusumSlack)

			var reason domain.TrendReason
			switch {
			case math.Abs(z) >= opts.ZThreshold:
				reason = domain.TrendReasonZScore
			case cusum >= opts.CUSUMLimit:
				reason = domain.TrendReasonCUSUM
			}
			if reason != "" {
				findings = append(findings, domain.Trend{
					Index:   i,
					Event:   e,
					Address: subject,
					Value:   v,
					ZScore:  z,
					CUSUM:   cusum,
					Reason:  reason,
				})
			}
			if cusum >= opts.CUSUMLimit {
				cusum = 0
			}
		}

		if len(window) == opts.Window {
			window = append(window[:0], window[1:]...)
		}
		window = append(window, v)
	}
	return findings
}

func trendSubject(e *domain.DecodedEvent, include []string) (string, bool) {
	if len(include) == 0 {
		from, _ := e.Sender()
		return from, true
	}
	for _, a := range include {
		if e.Touches(a) {
			return a, true
		}
	}
	return "", false
}
