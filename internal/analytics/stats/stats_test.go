package stats

import (
	"math"
	"testing"

	"github.com/vietddude/sniffer/internal/core/domain"
)

const eps = 1e-9

func TestZScores_EdgeCases(t *testing.T) {
	if got := ZScores(nil); len(got) != 0 {
		t.Errorf("expected empty output for empty input, got %v", got)
	}

	got := ZScores([]float64{42})
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("expected [0] for single value, got %v", got)
	}

	got = ZScores([]float64{7, 7, 7, 7})
	for i, z := range got {
		if z != 0 {
			t.Errorf("expected z[%d]=0 for constant data, got %v", i, z)
		}
	}

	// Identical large values must not manufacture variance from rounding.
	got = ZScores([]float64{1e24, 1e24, 1e24})
	for i, z := range got {
		if z != 0 {
			t.Errorf("expected z[%d]=0 for identical large values, got %v", i, z)
		}
	}
}

func TestZScores_OverflowingMomentsScoreZero(t *testing.T) {
	got := ZScores([]float64{math.MaxFloat64, math.MaxFloat64, -math.MaxFloat64, 1})
	for i, z := range got {
		if z != 0 {
			t.Errorf("expected z[%d]=0 when moments overflow, got %v", i, z)
		}
	}
	if z := ZScore(math.Inf(1), 0, 1); z != 0 {
		t.Errorf("expected 0 for an infinite value, got %v", z)
	}
}

func TestZScores_StandardizedMoments(t *testing.T) {
	batches := [][]float64{
		{1, 2, 3, 4, 5},
		{1000, 1000, 1000, 1000, 1_000_000},
		{-3.5, 0, 12.25, 8, 8, 1e6},
		{0.001, 0.002},
	}

	for _, values := range batches {
		z := ZScores(values)
		if len(z) != len(values) {
			t.Fatalf("expected %d scores, got %d", len(values), len(z))
		}
		mean, std := MeanStd(z)
		if math.Abs(mean) > eps {
			t.Errorf("%v: expected mean 0, got %v", values, mean)
		}
		if math.Abs(std-1) > eps {
			t.Errorf("%v: expected std 1, got %v", values, std)
		}
	}
}

func TestZScores_PopulationStdDev(t *testing.T) {
	// Population std of {2,4,4,4,5,5,7,9} is exactly 2 (sample std would be ~2.14).
	z := ZScores([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if z[7] != 2 {
		t.Errorf("expected z=2 for 9 with population std, got %v", z[7])
	}
}

func TestWalletBaselines(t *testing.T) {
	events := []*domain.DecodedEvent{
		domain.NewTransfer("0xA", "0xb", "10"),
		domain.NewTransfer("0xa", "0xc", "0x14"), // 20
		nil,
		domain.NewTransfer("0xb", "0xA", 30),
		domain.NewTransfer("0xa", "0xd", "garbage"),
	}

	got := WalletBaselines(events, []string{"0xA", "0xE"}, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 baselines, got %d", len(got))
	}

	a := got[0]
	if a.Address != "0xa" || a.Samples != 3 {
		t.Fatalf("unexpected baseline for 0xa: %+v", a)
	}
	if math.Abs(a.Mean-20) > eps || math.Abs(a.StdDev-math.Sqrt(200.0/3)) > eps {
		t.Errorf("unexpected mean/std: %v/%v", a.Mean, a.StdDev)
	}
	if a.Latest != 30 {
		t.Errorf("expected latest 30, got %v", a.Latest)
	}

	if got[1].Address != "0xe" || got[1].Samples != 0 {
		t.Errorf("expected empty baseline for 0xe, got %+v", got[1])
	}

	windowed := WalletBaselines(events, []string{"0xa"}, 2)
	if windowed[0].Samples != 2 || windowed[0].Mean != 25 || windowed[0].LatestZScore != 1 {
		t.Errorf("unexpected windowed baseline: %+v", windowed[0])
	}
}

func TestWalletBaselines_DiscoversSenders(t *testing.T) {
	events := []*domain.DecodedEvent{
		domain.NewTransfer("0xb", "0xa", 5),
		domain.NewTransfer("0xa", "0xb", 7),
		domain.NewTransfer("0xb", "0xc", 9),
	}
	got := WalletBaselines(events, nil, DefaultBaselineWindow)
	if len(got) != 2 {
		t.Fatalf("expected 2 discovered senders, got %d", len(got))
	}
	if got[0].Address != "0xb" || got[0].Samples != 2 {
		t.Errorf("unexpected first baseline: %+v", got[0])
	}
	if got[1].Address != "0xa" || got[1].Samples != 1 {
		t.Errorf("unexpected second baseline: %+v", got[1])
	}
}

func trendBatch() []*domain.DecodedEvent {
	values := []int{10, 12, 10, 12, 10, 12, 500}
	events := make([]*domain.DecodedEvent, len(values))
	for i, v := range values {
		events[i] = domain.NewTransfer("0xa", "0xb", v)
	}
	return events
}

func TestRollingTrends_ZScoreSpike(t *testing.T) {
	got := RollingTrends(trendBatch(), DefaultTrendOptions())
	if len(got) != 1 {
		t.Fatalf("expected 1 trend finding, got %d", len(got))
	}
	if got[0].Index != 6 || got[0].Reason != domain.TrendReasonZScore {
		t.Errorf("unexpected finding: %+v", got[0])
	}
	if got[0].Address != "0xa" {
		t.Errorf("expected subject 0xa, got %s", got[0].Address)
	}
}

func TestRollingTrends_CUSUMDrift(t *testing.T) {
	opts := DefaultTrendOptions()
	opts.ZThreshold = 1000
	got := RollingTrends(trendBatch(), opts)
	if len(got) != 1 {
		t.Fatalf("expected 1 trend finding, got %d", len(got))
	}
	if got[0].Reason != domain.TrendReasonCUSUM {
		t.Errorf("expected cusum reason, got %s", got[0].Reason)
	}
}

func TestRollingTrends_IncludeFilter(t *testing.T) {
	events := trendBatch()
	opts := DefaultTrendOptions()
	opts.Include = []string{"0xZZ"}
	if got := RollingTrends(events, opts); len(got) != 0 {
		t.Errorf("expected no findings for unrelated include list, got %d", len(got))
	}

	opts.Include = []string{"0xB"}
	got := RollingTrends(events, opts)
	if len(got) != 1 || got[0].Address != "0xb" {
		t.Errorf("expected one finding attributed to 0xb, got %+v", got)
	}
}

func TestRollingTrends_Empty(t *testing.T) {
	if got := RollingTrends(nil, DefaultTrendOptions()); len(got) != 0 {
		t.Errorf("expected no findings, got %d", len(got))
	}
}
