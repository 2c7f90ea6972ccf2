package ui

import (
	"testing"

	"github.com/claimsdesk/fnol/internal/session"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 || names[0] != "Nightfox" {
		t.Fatalf("ThemeNames() = %v", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme_FallsBack(t *testing.T) {
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Nightfox", got)
	}
}

func TestToneColor(t *testing.T) {
	th := GetTheme("Slate")
	cases := map[session.Tone]string{
		session.ToneDanger:  th.Danger,
		session.ToneWarning: th.Warning,
		session.ToneInfo:    th.Info,
		session.ToneSuccess: th.Success,
		session.ToneNeutral: th.Muted,
	}
	for tone, want := range cases {
		if got := th.ToneColor(tone); got != want {
			t.Fatalf("ToneColor(%s) = %q, want %q", tone, got, want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("http://claims.internal:8000/process", 15); len([]rune(got)) != 15 {
		t.Fatalf("truncateMiddle length = %d (%q)", len([]rune(got)), got)
	}
	if got := truncateMiddle("short", 15); got != "short" {
		t.Fatalf("truncateMiddle(short) = %q", got)
	}
	if got := truncate("abcdefgh", 5); got != "ab..." {
		t.Fatalf("truncate = %q", got)
	}
}
