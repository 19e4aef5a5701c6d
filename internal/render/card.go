package render

import "html/template"

// CardState is the expand/collapse state of one card's analysis panel.
// Each card owns its state; cards never share or observe each other's
// state, and a reload rebuilds every card collapsed.
type CardState int

const (
	StateCollapsed CardState = iota
	StateExpanded
)

// String returns the state name used in markup data attributes.
func (s CardState) String() string {
	if s == StateExpanded {
		return "expanded"
	}
	return "collapsed"
}

// TriggerLabel returns the toggle trigger text mirroring the current
// state: the label names the action the trigger will perform next.
func (s CardState) TriggerLabel() string {
	if s == StateExpanded {
		return "Hide Analysis"
	}
	return "View Analysis"
}

// Card is one rendered signal entry together with its panel state.
type Card struct {
	Symbol string
	State  CardState
	HTML   template.HTML
}

// Toggle flips the analysis panel between collapsed and expanded. It is
// a pure state flip; no data is re-fetched and no other card is touched.
func (c *Card) Toggle() {
	if c.State == StateCollapsed {
		c.State = StateExpanded
	} else {
		c.State = StateCollapsed
	}
}
