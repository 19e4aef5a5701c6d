package report

import (
	"strconv"
	"strings"
)

// Normalize resolves a raw report document of ambiguous shape into the
// canonical model. It is total: no input, however malformed, produces an
// error. Every field resolves through an ordered fallback chain in which
// the primary key always wins over its legacy alternate, and anything
// unresolvable degrades to a default.
//
// Fallback chains per field:
//
//	metadata   report_metadata -> meta
//	date       week_ending -> generated_date -> generated_at (date part)
//	symbol     symbol -> ticker
//	action     action -> signal (uppercased, BUY unless SELL)
//	score      score -> analysis.confidenceScore
//	price      reference_price -> price
//	setup      trade_setup -> analysis.tradeSetup
//	  entry    entry -> entryZone
//	  stop     stop -> stopLoss
//	  target   target -> targetPrice
//	analysis   analysis (string) -> analysis.reasoning
func Normalize(raw map[string]any) *Report {
	rep := &Report{
		Meta: normalizeMetadata(raw),
	}

	if entries, ok := raw["signals"].([]any); ok {
		for _, e := range entries {
			entry, ok := e.(map[string]any)
			if !ok {
				continue
			}
			rep.Signals = append(rep.Signals, normalizeSignal(entry))
		}
	}

	if digest := normalizeDigest(raw); !digest.IsEmpty() {
		rep.Digest = digest
	}

	return rep
}

func normalizeMetadata(raw map[string]any) Metadata {
	meta, ok := asMap(raw["report_metadata"])
	if !ok {
		meta, _ = asMap(raw["meta"])
	}

	md := Metadata{
		Title: asString(meta["title"]),
	}

	md.Date = firstString(meta, "week_ending", "generated_date")
	if md.Date == "" {
		// Combined timestamps like "2025-12-28T06:29:37.692Z" carry the
		// date before the time separator.
		if at := asString(meta["generated_at"]); at != "" {
			md.Date, _, _ = strings.Cut(at, "T")
		}
	}

	if n := asNumber(meta["total_signals"]); n != nil {
		total := int(*n)
		md.TotalSignals = &total
	}

	return md
}

func normalizeSignal(entry map[string]any) Signal {
	// "analysis" is either the analysis text itself or a nested object
	// carrying reasoning/confidenceScore/tradeSetup legacy fields.
	analysisText := asString(entry["analysis"])
	analysisObj, _ := asMap(entry["analysis"])

	sig := Signal{
		ID:     asScalarString(entry["id"]),
		Symbol: firstString(entry, "symbol", "ticker"),
		Action: normalizeAction(firstString(entry, "action", "signal")),
	}
	if sig.Symbol == "" {
		sig.Symbol = DefaultSymbol
	}

	sig.Score = asScalarString(entry["score"])
	if sig.Score == "" {
		sig.Score = asScalarString(analysisObj["confidenceScore"])
	}
	if sig.Score == "" {
		sig.Score = DefaultScore
	}

	sig.ReferencePrice = asNumber(entry["reference_price"])
	if sig.ReferencePrice == nil {
		sig.ReferencePrice = asNumber(entry["price"])
	}

	setup, ok := asMap(entry["trade_setup"])
	if !ok {
		setup, _ = asMap(analysisObj["tradeSetup"])
	}
	sig.Setup = TradeSetup{
		Entry:  setupValue(setup, "entry", "entryZone"),
		Stop:   setupValue(setup, "stop", "stopLoss"),
		Target: setupValue(setup, "target", "targetPrice"),
	}

	sig.Analysis = analysisText
	if sig.Analysis == "" {
		sig.Analysis = asString(analysisObj["reasoning"])
	}
	if sig.Analysis == "" {
		sig.Analysis = DefaultAnalysis
	}

	return sig
}

func normalizeDigest(raw map[string]any) *Digest {
	d := &Digest{
		MarketOverview: asString(raw["market_overview"]),
		SectorAnalysis: asString(raw["sector_analysis"]),
		Outlook:        asString(raw["outlook"]),
	}

	if insights, ok := raw["key_insights"].([]any); ok {
		for _, v := range insights {
			if s := asString(v); s != "" {
				d.KeyInsights = append(d.KeyInsights, s)
			}
		}
	}

	if picks, ok := raw["top_picks"].([]any); ok {
		for _, v := range picks {
			pick, ok := asMap(v)
			if !ok {
				continue
			}
			p := Pick{
				Symbol:    firstString(pick, "symbol", "ticker"),
				Action:    normalizeAction(firstString(pick, "action", "signal")),
				Rationale: firstString(pick, "rationale", "reason"),
			}
			if p.Symbol == "" {
				p.Symbol = DefaultSymbol
			}
			d.TopPicks = append(d.TopPicks, p)
		}
	}

	return d
}

// normalizeAction folds any casing of the action field into the canonical
// enum. Absent or unrecognized values default to BUY.
func normalizeAction(raw string) Action {
	if strings.EqualFold(raw, string(ActionSell)) {
		return ActionSell
	}
	return ActionBuy
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if m == nil {
		return map[string]any{}, ok
	}
	return m, ok
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asScalarString renders string or numeric scalars for display fields
// such as id and score, which upstream generators emit in either type.
func asScalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func asNumber(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case int:
		f := float64(t)
		return &f
	default:
		return nil
	}
}

// firstString resolves the first key holding a non-empty string value.
func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := asString(m[key]); s != "" {
			return s
		}
	}
	return ""
}

// setupValue resolves one trade-setup field, which may be numeric or
// free text, from its primary key then its legacy alternate.
func setupValue(setup map[string]any, keys ...string) SetupValue {
	for _, key := range keys {
		v, present := setup[key]
		if !present || v == nil {
			continue
		}
		if n := asNumber(v); n != nil {
			return SetupValue{Number: n}
		}
		if s := asString(v); s != "" {
			return SetupValue{Text: s}
		}
	}
	return SetupValue{}
}
