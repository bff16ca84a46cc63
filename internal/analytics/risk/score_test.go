package risk

import (
	"math/big"
	"testing"

	"github.com/vietddude/sniffer/internal/core/domain"
	"github.com/vietddude/sniffer/internal/core/watchlist"
)

func large(from, to string) domain.LargeTransfer {
	return domain.LargeTransfer{
		Value:    domain.NewAmount(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)),
		Sender:   from,
		Receiver: to,
	}
}

func anomaly(from, to string) domain.ValueAnomaly {
	return domain.ValueAnomaly{ZScore: 2.5, Sender: from, Receiver: to}
}

func TestScore_LargeTransferAndCentrality(t *testing.T) {
	got := Score(
		watchlist.New("0xA"),
		nil,
		[]domain.LargeTransfer{large("0xa", "0xb")},
		[]domain.Centrality{{Address: "0xa", Degree: 2}},
	)
	if len(got) != 1 {
		t.Fatalf("expected 1 score, got %d", len(got))
	}
	if got[0].Address != "0xa" || got[0].Score != 25 {
		t.Errorf("expected 0xa to score 25, got %+v", got[0])
	}
	if len(got[0].Factors) != 2 {
		t.Errorf("expected 2 factors, got %+v", got[0].Factors)
	}
}

func TestScore_UnmentionedAddressesScoreZero(t *testing.T) {
	got := Score(watchlist.New("0xquiet", "0xloud"), []domain.ValueAnomaly{anomaly("0xLOUD", "0xx")}, nil, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(got))
	}
	if got[0].Address != "0xloud" || got[0].Score != AnomalyPoints {
		t.Errorf("expected 0xloud first with %d, got %+v", AnomalyPoints, got[0])
	}
	if got[1].Address != "0xquiet" || got[1].Score != 0 || got[1].Factors == nil {
		t.Errorf("expected 0xquiet with score 0 and empty factors, got %+v", got[1])
	}
}

func TestScore_OncePerFindingPerAddress(t *testing.T) {
	// Both parties watched: each gets the points once. Self-transfer counts once.
	got := Score(
		watchlist.New("0xa", "0xb"),
		[]domain.ValueAnomaly{anomaly("0xa", "0xb"), anomaly("0xa", "0xA")},
		nil,
		[]domain.Centrality{{Address: "0xb", Degree: 1}, {Address: "0xb", Degree: 9}},
	)
	scores := map[string]int{}
	for _, s := range got {
		scores[s.Address] = s.Score
	}
	if scores["0xa"] != 40 {
		t.Errorf("expected 0xa=40, got %d", scores["0xa"])
	}
	if scores["0xb"] != 25 {
		t.Errorf("expected 0xb=20+5, got %d", scores["0xb"])
	}
}

func TestScore_CentralityCapped(t *testing.T) {
	got := Score(watchlist.New("0xhub"), nil, nil, []domain.Centrality{{Address: "0xhub", Degree: 40}})
	if got[0].Score != MaxCentralityPoints {
		t.Errorf("expected centrality capped at %d, got %d", MaxCentralityPoints, got[0].Score)
	}
}

func TestScore_MonotonicAndBounded(t *testing.T) {
	w := watchlist.New("0xa")
	var anomalies []domain.ValueAnomaly
	var transfers []domain.LargeTransfer
	prev := 0
	for i := 0; i < 12; i++ {
		anomalies = append(anomalies, anomaly("0xa", "0xz"))
		transfers = append(transfers, large("0xz", "0xa"))
		got := Score(w, anomalies, transfers, []domain.Centrality{{Address: "0xa", Degree: i}})
		score := got[0].Score
		if score < prev {
			t.Fatalf("score decreased from %d to %d at step %d", prev, score, i)
		}
		if score > MaxScore {
			t.Fatalf("score %d exceeds %d", score, MaxScore)
		}
		prev = score
	}
	if prev != MaxScore {
		t.Errorf("expected score to saturate at %d, got %d", MaxScore, prev)
	}
}

func TestScore_EmptyWatchlist(t *testing.T) {
	if got := Score(watchlist.New(), []domain.ValueAnomaly{anomaly("0xa", "0xb")}, nil, nil); len(got) != 0 {
		t.Errorf("expected no scores, got %+v", got)
	}
}

func TestScore_TiesAtCapKeepWatchlistOrder(t *testing.T) {
	var anomalies []domain.ValueAnomaly
	for range 5 {
		anomalies = append(anomalies, anomaly("0xa", "0xz"))
	}
	for range 6 {
		anomalies = append(anomalies, anomaly("0xb", "0xz"))
	}

	got := Score(watchlist.New("0xa", "0xb"), anomalies, nil, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(got))
	}
	if got[0].Address != "0xa" || got[1].Address != "0xb" {
		t.Errorf("expected capped ties in watchlist order, got %s then %s", got[0].Address, got[1].Address)
	}
	for _, s := range got {
		if s.Score != MaxScore {
			t.Errorf("expected %s capped at %d, got %d", s.Address, MaxScore, s.Score)
		}
	}
}
