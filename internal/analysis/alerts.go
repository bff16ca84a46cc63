package analysis

import (
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/vietddude/sniffer/internal/core/domain"
)

// newAlertID returns "<kind>_<32 hex chars>".
func newAlertID(kind domain.FindingKind) string {
	id := uuid.New()
	return string(kind) + "_" + hex.EncodeToString(id[:])
}

// NewAlert wraps f with a fresh id and its resolved severity.
func NewAlert(f domain.Finding) domain.Alert {
	a := domain.Alert{
		ID:       newAlertID(f.Kind()),
		Type:     f.Kind(),
		Severity: domain.SeverityOf(f),
		Verdict:  domain.VerdictSuspectedFraud,
		Details:  f,
	}
	if subject := f.Subject(); subject != "" {
		a.Address = &subject
	}
	return a
}

type alertBuilder struct {
	alerts []domain.Alert
}

func (b *alertBuilder) add(f domain.Finding) {
	b.alerts = append(b.alerts, NewAlert(f))
}

func collect[T domain.Finding](b *alertBuilder, findings []T) {
	for _, f := range findings {
		b.add(f)
	}
}

// result returns the alerts with the overall verdict and highest severity.
func (b *alertBuilder) result() ([]domain.Alert, domain.Verdict, domain.Severity) {
	if len(b.alerts) == 0 {
		return []domain.Alert{}, domain.VerdictClear, domain.SeverityLow
	}
	severity := domain.SeverityLow
	for _, a := range b.alerts {
		if a.Severity.Rank() > severity.Rank() {
			severity = a.Severity
		}
	}
	return b.alerts, domain.VerdictSuspectedFraud, severity
}
