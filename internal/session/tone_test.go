package session

import "testing"

func TestRouteTone(t *testing.T) {
	tests := []struct {
		route string
		want  Tone
	}{
		{"Requires Investigation", ToneDanger},
		{"Investigation Flag", ToneDanger},
		{"FRAUD INVESTIGATION pending", ToneDanger},
		{"Route to Specialist", ToneInfo},
		{"Specialist Queue", ToneInfo},
		{"Fast-Track Approval", ToneSuccess},
		{"Fast-track", ToneSuccess},
		{"Needs Manual Review", ToneWarning},
		{"Manual review", ToneWarning},
		{"Standard", ToneNeutral},
		{"Standard queue", ToneNeutral},
		{"", ToneNeutral},
		{"manual investigation", ToneDanger},
		{"fast specialist", ToneInfo},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			if got := RouteTone(tt.route); got != tt.want {
				t.Errorf("RouteTone(%q) = %q, want %q", tt.route, got, tt.want)
			}
		})
	}
}

func TestStateTone_NoResultIsNeutral(t *testing.T) {
	if got := (State{}).Tone(); got != ToneNeutral {
		t.Fatalf("Tone() without result = %q, want neutral", got)
	}
}
