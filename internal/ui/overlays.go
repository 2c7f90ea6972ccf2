package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claimsdesk/fnol/internal/session"
)

// handlePickerKey drives the file browser. Only .pdf and .txt are offered;
// other files can still be chosen through the typed path.
func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) || msg.String() == "ctrl+c" {
		m.overlay = overlayNone
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.overlay = overlayNone
		return m, tea.Batch(cmd, loadFileCmd(path, true))
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.setNotice(path+" is not a .pdf/.txt file; press u to type it anyway", session.ToneWarning)
	}
	return m, cmd
}

func (m Model) handlePathKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.overlay = overlayNone
		m.pathInput.Blur()
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		m.overlay = overlayNone
		m.pathInput.Blur()
		if path == "" {
			return m, nil
		}
		return m, loadFileCmd(path, false)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Activity), msg.String() == "ctrl+c":
		m.overlay = overlayNone
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.activity.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.activity.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.activity, cmd = m.activity.Update(msg)
	return m, cmd
}

func (m *Model) handleActivity(msg activityMsg) {
	styles := m.theme.Styles()
	switch {
	case msg.err != nil:
		m.activity.SetContent(styles.DangerText.Render("Could not read log: " + msg.err.Error()))
	case len(msg.lines) == 0:
		m.activity.SetContent(styles.FaintText.Render("No activity logged yet."))
	default:
		m.activity.SetContent(strings.Join(msg.lines, "\n"))
	}
	m.activity.GotoBottom()
}

func (m Model) renderPicker() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Select FNOL Document"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(truncateMiddle(m.picker.CurrentDirectory, m.modalWidth()-6)))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("enter select · esc cancel · .pdf/.txt only"))
	return m.placeModal(b.String(), m.modalWidth())
}

func (m Model) renderPathInput() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("File Path"))
	b.WriteString("\n\n")
	b.WriteString(m.pathInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("enter select · esc cancel"))
	return m.placeModal(b.String(), m.modalWidth())
}

func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Activity"))
	b.WriteString(" ")
	b.WriteString(styles.FaintText.Render(truncateMiddle(m.config.LogPath, m.modalWidth()-16)))
	b.WriteString("\n\n")
	b.WriteString(m.activity.View())
	return m.placeModal(b.String(), m.modalWidth())
}

func (m Model) modalWidth() int {
	w := m.width - 8
	if w > 100 {
		w = 100
	}
	if w < 30 {
		w = 30
	}
	return w
}
