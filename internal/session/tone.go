package session

import "strings"

// Tone is a display-only severity derived from a route label.
type Tone string

const (
	ToneDanger  Tone = "danger"
	ToneWarning Tone = "warning"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneNeutral Tone = "neutral"
)

// toneRules are checked in order; the first substring hit wins.
var toneRules = []struct {
	needle string
	tone   Tone
}{
	{"investigation", ToneDanger},
	{"manual", ToneWarning},
	{"specialist", ToneInfo},
	{"fast", ToneSuccess},
}

// RouteTone classifies a route label by case-insensitive substring match.
func RouteTone(route string) Tone {
	lower := strings.ToLower(route)
	for _, rule := range toneRules {
		if strings.Contains(lower, rule.needle) {
			return rule.tone
		}
	}
	return ToneNeutral
}
