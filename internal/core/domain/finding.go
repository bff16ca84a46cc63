package domain

// FindingKind identifies which detector produced a Finding.
type FindingKind string

const (
	FindingValueAnomaly    FindingKind = "value_anomaly"
	FindingLargeTransfer   FindingKind = "large_transfer"
	FindingCentrality      FindingKind = "centrality"
	FindingSelfTransfer    FindingKind = "self_transfer"
	FindingZeroValue       FindingKind = "zero_value"
	FindingPriceImpact     FindingKind = "price_impact"
	FindingWashTradePair   FindingKind = "wash_trade_pair"
	FindingTransactionRisk FindingKind = "transaction_risk"
	FindingTrend           FindingKind = "trend"
)

// FindingKinds lists every kind in alert emission order.
var FindingKinds = []FindingKind{
	FindingValueAnomaly,
	FindingLargeTransfer,
	FindingCentrality,
	FindingTrend,
	FindingSelfTransfer,
	FindingZeroValue,
	FindingPriceImpact,
	FindingWashTradePair,
	FindingTransactionRisk,
}

// Finding is one flagged condition. The concrete types below are the only
// implementations; switch on them (or on Kind) to read the payload.
type Finding interface {
	Kind() FindingKind
	// Subject is the address the finding is about, empty when there is none.
	Subject() string
	// Severity is an explicit override; empty means use the kind's default.
	Severity() Severity
}

// ValueAnomaly flags an event whose amount is a statistical outlier in its batch.
type ValueAnomaly struct {
	Index    int           `json:"index"`
	Event    *DecodedEvent `json:"event"`
	Value    Amount        `json:"value"`
	ZScore   float64       `json:"z_score"`
	Sender   string        `json:"sender,omitempty"`
	Receiver string        `json:"receiver,omitempty"`
}

func (f ValueAnomaly) Kind() FindingKind  { return FindingValueAnomaly }
func (f ValueAnomaly) Subject() string    { return f.Sender }
func (f ValueAnomaly) Severity() Severity { return "" }

// LargeTransfer flags an event whose amount reaches a fixed threshold.
type LargeTransfer struct {
	Index     int           `json:"index"`
	Event     *DecodedEvent `json:"event"`
	Value     Amount        `json:"value"`
	Threshold Amount        `json:"threshold"`
	Sender    string        `json:"sender,omitempty"`
	Receiver  string        `json:"receiver,omitempty"`
}

func (f LargeTransfer) Kind() FindingKind  { return FindingLargeTransfer }
func (f LargeTransfer) Subject() string    { return f.Sender }
func (f LargeTransfer) Severity() Severity { return "" }

// Centrality records an address and its number of distinct counterparties.
type Centrality struct {
	Address string `json:"address"`
	Degree  int    `json:"degree"`
}

func (f Centrality) Kind() FindingKind  { return FindingCentrality }
func (f Centrality) Subject() string    { return f.Address }
func (f Centrality) Severity() Severity { return "" }

// SelfTransfer flags an event whose sender and receiver are the same address.
type SelfTransfer struct {
	Index   int           `json:"index"`
	Event   *DecodedEvent `json:"event"`
	Address string        `json:"address"`
}

func (f SelfTransfer) Kind() FindingKind  { return FindingSelfTransfer }
func (f SelfTransfer) Subject() string    { return f.Address }
func (f SelfTransfer) Severity() Severity { return "" }

// ZeroValue flags an event transferring exactly zero.
type ZeroValue struct {
	Index    int           `json:"index"`
	Event    *DecodedEvent `json:"event"`
	Sender   string        `json:"sender,omitempty"`
	Receiver string        `json:"receiver,omitempty"`
}

func (f ZeroValue) Kind() FindingKind  { return FindingZeroValue }
func (f ZeroValue) Subject() string    { return f.Sender }
func (f ZeroValue) Severity() Severity { return "" }

// PriceImpact flags a swap that moved the pool price by at least the threshold.
type PriceImpact struct {
	Index         int           `json:"index"`
	Event         *DecodedEvent `json:"event"`
	Sender        string        `json:"sender,omitempty"`
	Recipient     string        `json:"recipient,omitempty"`
	Amount0       Amount        `json:"amount0"`
	Amount1       Amount        `json:"amount1"`
	SqrtPriceX96  Amount        `json:"sqrt_price_x96"`
	Liquidity     Amount        `json:"liquidity"`
	Price         float64       `json:"price"`
	PreviousPrice float64       `json:"previous_price"`
	DeltaBps      float64       `json:"delta_bps"`
}

func (f PriceImpact) Kind() FindingKind  { return FindingPriceImpact }
func (f PriceImpact) Subject() string    { return f.Sender }
func (f PriceImpact) Severity() Severity { return "" }

// WashTradePair flags two parties that traded with each other repeatedly.
// Participants are sorted lexicographically.
type WashTradePair struct {
	Participants [2]string `json:"participants"`
	Swaps        int       `json:"swaps"`
}

func (f WashTradePair) Kind() FindingKind  { return FindingWashTradePair }
func (f WashTradePair) Subject() string    { return f.Participants[0] }
func (f WashTradePair) Severity() Severity { return "" }

// TransactionRisk wraps a labeled transaction that received at least one flag.
type TransactionRisk struct {
	Transaction LabeledTransaction `json:"transaction"`
	Flags       []RiskFlag         `json:"risk_flags"`
}

func (f TransactionRisk) Kind() FindingKind { return FindingTransactionRisk }
func (f TransactionRisk) Subject() string   { return f.Transaction.FromAddress() }

// Severity escalates transactions moving a large value.
func (f TransactionRisk) Severity() Severity {
	for _, flag := range f.Flags {
		if flag == RiskFlagLargeValue {
			return SeverityHigh
		}
	}
	return SeverityMedium
}

// TrendReason says which rolling monitor tripped.
type TrendReason string

const (
	TrendReasonZScore TrendReason = "zscore"
	TrendReasonCUSUM  TrendReason = "cusum"
)

// Trend flags a value that broke away from the trailing window of values before it.
type Trend struct {
	Index   int           `json:"index"`
	Event   *DecodedEvent `json:"event"`
	Address string        `json:"address,omitempty"`
	Value   float64       `json:"value"`
	ZScore  float64       `json:"z_score"`
	CUSUM   float64       `json:"cusum"`
	Reason  TrendReason   `json:"reason"`
}

func (f Trend) Kind() FindingKind  { return FindingTrend }
func (f Trend) Subject() string    { return f.Address }
func (f Trend) Severity() Severity { return "" }
