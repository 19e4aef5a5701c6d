package render

import (
	"strings"
	"testing"

	"github.com/ternarybob/swingsignal/internal/report"
)

func price(v float64) *float64 { return &v }

func TestRenderEntry_EscapesReportText(t *testing.T) {
	r := NewRenderer(nil)

	card := r.RenderEntry(report.Signal{
		Symbol:   `<script>alert("x")</script>`,
		Action:   report.ActionBuy,
		Score:    "88",
		Analysis: "<img src=x onerror=alert(1)>",
		Setup: report.TradeSetup{
			Entry: report.SetupValue{Text: `"><b>bold</b>`},
		},
	})

	html := string(card.HTML)
	if strings.Contains(html, "<script>") || strings.Contains(html, "<img") || strings.Contains(html, "<b>") {
		t.Errorf("rendered fragment contains unescaped report text:\n%s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("symbol not escaped:\n%s", html)
	}
}

func TestRenderEntry_Fields(t *testing.T) {
	r := NewRenderer(nil)

	card := r.RenderEntry(report.Signal{
		Symbol:         "TCS.NS",
		Action:         report.ActionSell,
		Score:          "91",
		ReferencePrice: price(1234567),
		Setup: report.TradeSetup{
			Entry:  report.SetupValue{Text: "3500-3550"},
			Stop:   report.SetupValue{Number: price(3490)},
			Target: report.SetupValue{},
		},
		Analysis: "Momentum fading.",
	})

	html := string(card.HTML)

	for _, want := range []string{
		"TCS.NS",
		"12,34,567",
		`action-sell`,
		"Score: 91",
		"3500-3550",
		"3,490",
		"N/A",
		"Momentum fading.",
		"View Analysis",
		`data-state="collapsed"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("fragment missing %q:\n%s", want, html)
		}
	}
}

func TestRenderEntry_LegacyEntryZoneVerbatim(t *testing.T) {
	r := NewRenderer(nil)

	// Legacy entryZone text with no primary entry must render verbatim
	// after escaping.
	card := r.RenderEntry(report.Signal{
		Symbol: "TCS.NS",
		Action: report.ActionBuy,
		Score:  "N/A",
		Setup: report.TradeSetup{
			Entry: report.SetupValue{Text: "3500-3550"},
		},
	})

	if !strings.Contains(string(card.HTML), ">3500-3550<") {
		t.Errorf("entry zone not rendered verbatim:\n%s", card.HTML)
	}
}

func TestCardToggle(t *testing.T) {
	card := Card{State: StateCollapsed}

	if card.State.TriggerLabel() != "View Analysis" {
		t.Errorf("initial label = %q, want View Analysis", card.State.TriggerLabel())
	}

	card.Toggle()
	if card.State != StateExpanded {
		t.Errorf("State = %v after toggle, want expanded", card.State)
	}
	if card.State.TriggerLabel() != "Hide Analysis" {
		t.Errorf("label = %q, want Hide Analysis", card.State.TriggerLabel())
	}

	card.Toggle()
	if card.State != StateCollapsed {
		t.Errorf("State = %v after second toggle, want collapsed", card.State)
	}
}

func TestRenderReport_DigestSectionOrderAndOmission(t *testing.T) {
	r := NewRenderer(nil)

	rep := &report.Report{
		Meta: report.Metadata{Title: "Weekly Analysis", Date: "2026-01-10"},
		Digest: &report.Digest{
			Outlook:        "Cautiously optimistic.",
			MarketOverview: "Consolidation week.",
			KeyInsights:    []string{"IT leading"},
		},
	}

	model := r.RenderReport(report.KindWeekly, rep)

	if model.Empty {
		t.Fatal("Empty = true, want rendered digest")
	}
	if len(model.Sections) != 3 {
		t.Fatalf("Sections len = %d, want 3 (absent sections omitted)", len(model.Sections))
	}

	// Fixed order: overview, insights, (no picks), (no sector), outlook.
	if !strings.Contains(string(model.Sections[0]), "Market Overview") {
		t.Errorf("Sections[0] = %s", model.Sections[0])
	}
	if !strings.Contains(string(model.Sections[1]), "Key Insights") {
		t.Errorf("Sections[1] = %s", model.Sections[1])
	}
	if !strings.Contains(string(model.Sections[2]), "Outlook") {
		t.Errorf("Sections[2] = %s", model.Sections[2])
	}

	if model.PeriodLabel != "Saturday, January 10, 2026" {
		t.Errorf("PeriodLabel = %q", model.PeriodLabel)
	}
}

func TestRenderReport_EmptyTopPicksIsEmptyState(t *testing.T) {
	r := NewRenderer(nil)

	// A digest whose only section is an empty picks list normalizes to no
	// digest at all: the page shows the empty-state message, not an empty
	// Top Picks section.
	rep := &report.Report{Meta: report.Metadata{Title: "Weekly Analysis"}}

	model := r.RenderReport(report.KindWeekly, rep)
	if !model.Empty {
		t.Error("Empty = false, want true")
	}
	if len(model.Sections) != 0 || len(model.Cards) != 0 {
		t.Errorf("Sections/Cards rendered for empty report: %+v", model)
	}
	if model.PeriodLabel != "This Week" {
		t.Errorf("PeriodLabel = %q, want This Week", model.PeriodLabel)
	}
}

func TestRenderSection_EmptyContent(t *testing.T) {
	r := NewRenderer(nil)

	if got := r.RenderSection("Top Picks", []report.Pick{}); got != "" {
		t.Errorf("RenderSection(empty picks) = %q, want empty", got)
	}
	if got := r.RenderSection("Outlook", ""); got != "" {
		t.Errorf("RenderSection(empty text) = %q, want empty", got)
	}
}

func TestRenderReport_CardsCollapsedInitially(t *testing.T) {
	r := NewRenderer(nil)

	rep := &report.Report{
		Meta: report.Metadata{Title: "Daily"},
		Signals: []report.Signal{
			{Symbol: "A", Action: report.ActionBuy, Score: "N/A", Analysis: report.DefaultAnalysis},
			{Symbol: "B", Action: report.ActionSell, Score: "N/A", Analysis: report.DefaultAnalysis},
		},
	}

	model := r.RenderReport(report.KindDaily, rep)
	if len(model.Cards) != 2 {
		t.Fatalf("Cards len = %d, want 2", len(model.Cards))
	}
	for i, card := range model.Cards {
		if card.State != StateCollapsed {
			t.Errorf("Cards[%d].State = %v, want collapsed", i, card.State)
		}
	}
	if model.Summary.BuyCount != 1 || model.Summary.SellCount != 1 || model.Summary.Total != 2 {
		t.Errorf("Summary = %+v", model.Summary)
	}
}
