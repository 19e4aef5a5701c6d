// Package render maps the canonical report model into display fragments.
// Fragments are built from escaped text only; the renderer is the single
// place report-supplied strings become markup.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/swingsignal/internal/format"
	"github.com/ternarybob/swingsignal/internal/report"
)

// EmptyMessage is rendered when a report yields no content at all.
const EmptyMessage = "No signals available for this period."

// DisplayModel is the rendered-ready aggregate for one page load. It is
// rebuilt in full on every load and handed to the page template as the
// single output sink; nothing mutates it afterwards.
type DisplayModel struct {
	Title       string
	PeriodLabel string
	Summary     report.Summary
	Cards       []Card
	Sections    []template.HTML
	Empty       bool
}

// Renderer builds display fragments from normalized reports.
type Renderer struct {
	logger arbor.ILogger
}

// NewRenderer creates a renderer.
func NewRenderer(logger arbor.ILogger) *Renderer {
	return &Renderer{logger: logger}
}

// RenderReport composes the full display model for one load cycle:
// metadata line, summary counts, and either the signal card list or the
// weekly digest sections.
func (r *Renderer) RenderReport(kind report.Kind, rep *report.Report) *DisplayModel {
	model := &DisplayModel{
		Title:       rep.Meta.Title,
		PeriodLabel: format.FormatDate(rep.Meta.Date, kind.PeriodLabel()),
		Summary:     report.Aggregate(rep.Meta, rep.Signals),
	}

	if rep.IsEmpty() {
		model.Empty = true
		return model
	}

	if rep.Digest != nil {
		model.Sections = r.renderDigest(rep.Digest)
		return model
	}

	for _, sig := range rep.Signals {
		model.Cards = append(model.Cards, r.RenderEntry(sig))
	}

	return model
}

// RenderEntry produces the card fragment for one signal: symbol,
// reference price, action and score badges, the trade-setup grid, and
// the analysis panel, initially collapsed.
func (r *Renderer) RenderEntry(sig report.Signal) Card {
	card := Card{
		Symbol: sig.Symbol,
		State:  StateCollapsed,
	}

	action := strings.ToLower(string(sig.Action))

	var b strings.Builder
	b.WriteString(`<div class="signal-card">`)

	b.WriteString(`<div class="card-header">`)
	fmt.Fprintf(&b, `<span class="symbol">%s</span>`, format.Escape(sig.Symbol))
	fmt.Fprintf(&b, `<span class="price">%s</span>`, format.Escape(format.FormatNumber(sig.ReferencePrice)))
	b.WriteString(`</div>`)

	b.WriteString(`<div class="card-badges">`)
	fmt.Fprintf(&b, `<span class="badge action-%s">%s</span>`, action, format.Escape(string(sig.Action)))
	fmt.Fprintf(&b, `<span class="badge score">Score: %s</span>`, format.Escape(sig.Score))
	b.WriteString(`</div>`)

	b.WriteString(`<div class="setup-grid">`)
	writeSetupField(&b, "Entry", sig.Setup.Entry)
	writeSetupField(&b, "Stop", sig.Setup.Stop)
	writeSetupField(&b, "Target", sig.Setup.Target)
	b.WriteString(`</div>`)

	fmt.Fprintf(&b, `<button type="button" class="analysis-toggle">%s</button>`, card.State.TriggerLabel())
	fmt.Fprintf(&b, `<div class="analysis-panel" data-state="%s" hidden>%s</div>`,
		card.State, format.Escape(sig.Analysis))

	b.WriteString(`</div>`)

	card.HTML = template.HTML(b.String())
	return card
}

func writeSetupField(b *strings.Builder, label string, v report.SetupValue) {
	fmt.Fprintf(b, `<div class="setup-field"><span class="setup-label">%s</span><span class="setup-value">%s</span></div>`,
		label, format.Escape(format.FormatSetupValue(v.Number, v.Text)))
}

// renderDigest emits the digest sections in their fixed display order.
// Absent sections produce no output.
func (r *Renderer) renderDigest(d *report.Digest) []template.HTML {
	var sections []template.HTML

	add := func(h template.HTML) {
		if h != "" {
			sections = append(sections, h)
		}
	}

	add(r.renderTextSection("Market Overview", d.MarketOverview))
	add(r.renderInsights(d.KeyInsights))
	add(r.renderPicks(d.TopPicks))
	add(r.renderTextSection("Sector Analysis", d.SectorAnalysis))
	add(r.renderTextSection("Outlook", d.Outlook))

	return sections
}

// RenderSection emits one named digest section, or nothing when the
// content is absent or empty.
func (r *Renderer) RenderSection(name string, content any) template.HTML {
	switch c := content.(type) {
	case string:
		return r.renderTextSection(name, c)
	case []string:
		return r.renderInsights(c)
	case []report.Pick:
		return r.renderPicks(c)
	default:
		if r.logger != nil {
			r.logger.Warn().
				Str("section", name).
				Msg("Unrenderable digest section content")
		}
		return ""
	}
}

func (r *Renderer) renderTextSection(title, text string) template.HTML {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<section class="digest-section">`)
	fmt.Fprintf(&b, `<h2>%s</h2>`, format.Escape(title))
	fmt.Fprintf(&b, `<p>%s</p>`, format.Escape(text))
	b.WriteString(`</section>`)
	return template.HTML(b.String())
}

func (r *Renderer) renderInsights(insights []string) template.HTML {
	if len(insights) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<section class="digest-section"><h2>Key Insights</h2><ul class="insight-list">`)
	for _, insight := range insights {
		fmt.Fprintf(&b, `<li>%s</li>`, format.Escape(insight))
	}
	b.WriteString(`</ul></section>`)
	return template.HTML(b.String())
}

func (r *Renderer) renderPicks(picks []report.Pick) template.HTML {
	if len(picks) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<section class="digest-section"><h2>Top Picks</h2><ul class="pick-list">`)
	for _, pick := range picks {
		action := strings.ToLower(string(pick.Action))
		fmt.Fprintf(&b, `<li class="pick-item"><span class="symbol">%s</span><span class="badge action-%s">%s</span>`,
			format.Escape(pick.Symbol), action, format.Escape(string(pick.Action)))
		if pick.Rationale != "" {
			fmt.Fprintf(&b, `<p class="rationale">%s</p>`, format.Escape(pick.Rationale))
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul></section>`)
	return template.HTML(b.String())
}
