package session

import (
	"fmt"
	"strings"

	"github.com/claimsdesk/fnol/internal/intake"
)

// View is the active output pane.
type View string

const (
	ViewSummary View = "summary"
	ViewFields  View = "fields"
	ViewRaw     View = "raw"
)

// Views lists the panes in selector order.
var Views = []View{ViewSummary, ViewFields, ViewRaw}

// ParseView maps a name onto a View.
func ParseView(name string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(name))) {
	case ViewSummary:
		return ViewSummary, nil
	case ViewFields:
		return ViewFields, nil
	case ViewRaw:
		return ViewRaw, nil
	}
	return "", fmt.Errorf("unknown view %q", name)
}

// Next returns the view after v, wrapping around.
func (v View) Next() View {
	for i, candidate := range Views {
		if candidate == v {
			return Views[(i+1)%len(Views)]
		}
	}
	return ViewSummary
}

// Phase is the implicit lifecycle position of the session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseProcessing
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseProcessing:
		return "processing"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is the whole mutable console session.
type State struct {
	Selection  *intake.Upload
	Processing bool
	LastError  string
	LastResult *intake.ClaimResult
	ActiveView View
	RawText    string
}

func initialState() State {
	return State{ActiveView: ViewSummary}
}

// Phase derives the lifecycle position from the stored fields.
func (s State) Phase() Phase {
	switch {
	case s.Processing:
		return PhaseProcessing
	case s.LastError != "":
		return PhaseFailed
	case s.LastResult != nil:
		return PhaseSucceeded
	default:
		return PhaseIdle
	}
}

// Tone classifies the current route; neutral when there is no result.
func (s State) Tone() Tone {
	if s.LastResult == nil {
		return ToneNeutral
	}
	return RouteTone(s.LastResult.RecommendedRoute)
}

// Missing summarizes the mandatory fields the service could not find.
func (s State) Missing() MissingSummary {
	if s.LastResult == nil {
		return MissingSummary{}
	}
	return MissingSummary{HasResult: true, Fields: s.LastResult.MissingFields}
}

// MissingSummary distinguishes "no result yet" from "nothing missing".
type MissingSummary struct {
	HasResult bool
	Fields    []string
}

// None reports a result with an empty missing list.
func (m MissingSummary) None() bool {
	return m.HasResult && len(m.Fields) == 0
}

// Text renders the list in received order, "None" when empty and "" when
// there is no result.
func (m MissingSummary) Text() string {
	if !m.HasResult {
		return ""
	}
	if len(m.Fields) == 0 {
		return "None"
	}
	return strings.Join(m.Fields, ", ")
}

func (s State) clone() State {
	dup := s
	dup.LastResult = s.LastResult.Clone()
	return dup
}
