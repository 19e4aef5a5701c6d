// Package report provides the canonical report model, the normalizer
// that resolves loosely-structured report documents into it, and the
// loader that retrieves report documents from the flat-file archive.
package report

// Kind distinguishes the daily signal stream from the weekly stream.
type Kind string

const (
	KindDaily  Kind = "daily"
	KindWeekly Kind = "weekly"
)

// PeriodLabel returns the display label used when a report carries no
// date of its own.
func (k Kind) PeriodLabel() string {
	if k == KindWeekly {
		return "This Week"
	}
	return "Today"
}

// Action is a normalized trade recommendation. Input casing and legacy
// field names are resolved during normalization; the canonical model
// only ever holds one of the two values below.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

// Defaults applied when a field cannot be resolved from the document.
const (
	DefaultSymbol   = "N/A"
	DefaultScore    = "N/A"
	DefaultAnalysis = "No analysis available."
)

// Metadata is the resolved report header.
type Metadata struct {
	Title        string `json:"title"`
	Date         string `json:"date,omitempty"`
	TotalSignals *int   `json:"total_signals,omitempty"`
}

// SetupValue is one trade-setup field: either a numeric price level or a
// free-text range such as "3500-3550".
type SetupValue struct {
	Number *float64 `json:"number,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// IsEmpty reports whether the field was absent from the document.
func (v SetupValue) IsEmpty() bool {
	return v.Number == nil && v.Text == ""
}

// TradeSetup holds the entry/stop/target guidance attached to a signal.
type TradeSetup struct {
	Entry  SetupValue `json:"entry"`
	Stop   SetupValue `json:"stop"`
	Target SetupValue `json:"target"`
}

// Signal is one canonical trading recommendation.
type Signal struct {
	ID             string     `json:"id,omitempty"`
	Symbol         string     `json:"symbol"`
	Action         Action     `json:"action"`
	Score          string     `json:"score"`
	ReferencePrice *float64   `json:"reference_price,omitempty"`
	Setup          TradeSetup `json:"trade_setup"`
	Analysis       string     `json:"analysis"`
}

// Pick is one entry in the weekly digest's top-picks list.
type Pick struct {
	Symbol    string `json:"symbol"`
	Action    Action `json:"action"`
	Rationale string `json:"rationale,omitempty"`
}

// Digest holds the narrative sections of a weekly digest report. Every
// section is independently optional; an absent section is omitted from
// output rather than treated as an error.
type Digest struct {
	MarketOverview string   `json:"market_overview,omitempty"`
	KeyInsights    []string `json:"key_insights,omitempty"`
	TopPicks       []Pick   `json:"top_picks,omitempty"`
	SectorAnalysis string   `json:"sector_analysis,omitempty"`
	Outlook        string   `json:"outlook,omitempty"`
}

// IsEmpty reports whether no digest section carries content.
func (d *Digest) IsEmpty() bool {
	if d == nil {
		return true
	}
	return d.MarketOverview == "" &&
		len(d.KeyInsights) == 0 &&
		len(d.TopPicks) == 0 &&
		d.SectorAnalysis == "" &&
		d.Outlook == ""
}

// Report is the canonical, shape-independent model a raw document
// normalizes into. One load cycle owns exactly one Report; it is rebuilt
// in full on every load and never mutated afterwards.
type Report struct {
	Meta    Metadata `json:"meta"`
	Signals []Signal `json:"signals,omitempty"`
	Digest  *Digest  `json:"digest,omitempty"`
}

// IsEmpty reports whether the document yielded no renderable content.
func (r *Report) IsEmpty() bool {
	return len(r.Signals) == 0 && r.Digest.IsEmpty()
}

// Summary holds the derived counts displayed above the card list.
type Summary struct {
	Total     int `json:"total"`
	BuyCount  int `json:"buy_count"`
	SellCount int `json:"sell_count"`
}
