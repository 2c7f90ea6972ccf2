package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/claimsdesk/fnol/internal/intake"
	"github.com/claimsdesk/fnol/internal/session"
)

// refreshOutput re-renders the active view into the output viewport.
func (m *Model) refreshOutput() {
	if m.output.Width <= 0 {
		return
	}
	styles := m.theme.Styles()
	var content string
	switch m.state.ActiveView {
	case session.ViewFields:
		content = m.renderFields(styles)
	case session.ViewRaw:
		content = m.renderRaw(styles)
	default:
		content = m.renderSummary(styles)
	}
	m.output.SetContent(content)
}

func (m Model) placeholder(styles Styles) string {
	switch m.state.Phase() {
	case session.PhaseProcessing:
		return styles.WarningText.Render("Processing document…")
	case session.PhaseFailed:
		return styles.MutedText.Render("No result. Fix the problem shown on the left and process again.")
	}
	if m.state.Selection == nil {
		return styles.MutedText.Render("Select a FNOL document to begin.")
	}
	return styles.MutedText.Render("Press p to process " + m.state.Selection.Name + ".")
}

func (m Model) renderSummary(styles Styles) string {
	result := m.state.LastResult
	if result == nil {
		return m.placeholder(styles)
	}
	width := m.output.Width
	label := styles.MutedText.Width(20)
	missing := m.state.Missing()

	var b strings.Builder
	b.WriteString(label.Render("Recommended Route"))
	if route := strings.TrimSpace(result.RecommendedRoute); route != "" {
		b.WriteString(styles.TonePill(m.state.Tone()).Render(route))
	} else {
		b.WriteString(styles.FaintText.Render("—"))
	}
	b.WriteString("\n\n")

	b.WriteString(label.Render("Mandatory Missing"))
	if missing.None() {
		b.WriteString(styles.SuccessText.Render("No"))
	} else {
		b.WriteString(styles.DangerText.Render("Yes"))
	}
	b.WriteString("\n")

	b.WriteString(label.Render("Missing Fields"))
	missingStyle := styles.WarningText
	if missing.None() {
		missingStyle = styles.Text
	}
	b.WriteString(missingStyle.Width(max(width-20, 10)).Render(missing.Text()))
	b.WriteString("\n\n")

	b.WriteString(styles.Text.Bold(true).Render("Reason"))
	b.WriteString("\n")
	reason := strings.TrimSpace(result.Reasoning)
	if reason == "" {
		reason = "—"
	}
	b.WriteString(styles.Text.Width(width).Render(reason))
	b.WriteString("\n")
	return b.String()
}

// fieldGroups is the fields view order.
var fieldGroups = []string{
	intake.GroupPolicy,
	intake.GroupIncident,
	intake.GroupParties,
	intake.GroupAsset,
}

func (m Model) renderFields(styles Styles) string {
	result := m.state.LastResult
	if result == nil {
		return m.placeholder(styles)
	}
	width := m.output.Width
	const labelWidth = 20

	slots := result.ExtractedFields.Slots()
	var b strings.Builder
	for i, group := range fieldGroups {
		b.WriteString(styles.AccentText.Bold(true).Render(group))
		b.WriteString("\n")
		for _, slot := range slots {
			if slot.Group != group {
				continue
			}
			valueStyle := styles.Text
			if !slot.Present() {
				valueStyle = styles.FaintText
			}
			row := lipgloss.JoinHorizontal(lipgloss.Top,
				styles.MutedText.Render(padRight(slot.Label, labelWidth)),
				valueStyle.Width(max(width-labelWidth, 10)).Render(slot.Display()),
			)
			b.WriteString(row)
			b.WriteString("\n")
		}
		if i < len(fieldGroups)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderRaw(styles Styles) string {
	if m.state.RawText == "" {
		return m.placeholder(styles)
	}
	return styles.Text.Render(m.state.RawText)
}
