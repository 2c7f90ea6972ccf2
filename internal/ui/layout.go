package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/claimsdesk/fnol/internal/session"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which panels stack.
	LayoutCompactWidth = 100

	// chromeHeight is header, command bar and footer.
	chromeHeight = 3

	// panelChrome is border plus horizontal padding on each side.
	panelChrome = 4
)

// panelSizes returns outer widths for the upload and output panels and the
// outer height of the output panel.
func (m Model) panelSizes() (uploadW, outputW, outputH int) {
	bodyH := max(m.height-chromeHeight, 6)
	if m.width < LayoutCompactWidth {
		uploadH := min(bodyH/2, 14)
		return m.width, m.width, max(bodyH-uploadH, 6)
	}
	uploadW = max(m.width*2/5, 36)
	return uploadW, m.width - uploadW, bodyH
}

// resize fits the viewports to the window.
func (m *Model) resize() {
	_, outputW, outputH := m.panelSizes()
	// Borders plus the tab strip and its rule.
	m.output.Width = max(outputW-panelChrome, 10)
	m.output.Height = max(outputH-4, 3)

	m.activity.Width = max(m.modalWidth()-6, 10)
	m.activity.Height = max(m.height-12, 5)
}

// renderMain renders the full console.
func (m Model) renderMain() string {
	uploadW, outputW, outputH := m.panelSizes()
	styles := m.theme.Styles()

	var body string
	if m.width < LayoutCompactWidth {
		upload := m.renderUploadPanel(styles, uploadW, max(m.height-chromeHeight-outputH, 6))
		body = lipgloss.JoinVertical(lipgloss.Left, upload, m.renderOutputPanel(styles, outputW, outputH))
	} else {
		upload := m.renderUploadPanel(styles, uploadW, outputH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, upload, m.renderOutputPanel(styles, outputW, outputH))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(styles),
		m.renderCommandBar(styles),
		body,
		m.renderFooter(styles),
	)
}

func (m Model) renderHeader(styles Styles) string {
	parts := []string{styles.Logo.Render("fnol")}

	switch m.state.Phase() {
	case session.PhaseProcessing:
		parts = append(parts, styles.WarningText.Render(m.spinner.View()+" Processing"))
	case session.PhaseSucceeded:
		parts = append(parts, styles.SuccessText.Render("● Ready"))
	case session.PhaseFailed:
		parts = append(parts, styles.DangerText.Render("● Failed"))
	default:
		parts = append(parts, styles.MutedText.Render("● Idle"))
	}

	parts = append(parts,
		styles.FaintText.Render("Claims")+" "+
			styles.MutedText.Render(truncateMiddle(m.config.Endpoint(), max(m.width/3, 20))))

	if m.width >= LayoutCompactWidth {
		parts = append(parts, styles.FaintText.Render(m.theme.Name))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderCommandBar(styles Styles) string {
	items := make([]string, 0, len(m.keys.commandBar()))
	for _, b := range m.keys.commandBar() {
		h := b.Help()
		items = append(items, styles.AccentText.Render(h.Key)+" "+styles.MutedText.Render(h.Desc))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(items, "  "))
}

func (m Model) renderFooter(styles Styles) string {
	if m.notice == "" {
		return styles.Footer.Width(m.width).Render("")
	}
	style := styles.MutedText
	switch m.noticeTone {
	case session.ToneDanger:
		style = styles.DangerText
	case session.ToneWarning:
		style = styles.WarningText
	case session.ToneSuccess:
		style = styles.SuccessText
	}
	return styles.Footer.Width(m.width).Render(style.Render(truncate(m.notice, m.width-2)))
}

// renderUploadPanel shows the selection, its preview, the processing status,
// the last error and the routing policy reference.
func (m Model) renderUploadPanel(styles Styles, width, height int) string {
	inner := max(width-panelChrome, 10)
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Upload FNOL Document"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Accepted: .pdf, .txt"))
	b.WriteString("\n\n")

	if sel := m.state.Selection; sel != nil {
		b.WriteString(styles.AccentText.Render(truncateMiddle(sel.Name, inner)))
		b.WriteString("\n")
		if m.preview != nil {
			b.WriteString(styles.MutedText.Render(m.preview.Summary()))
			b.WriteString("\n")
			for _, line := range m.preview.Head {
				b.WriteString(styles.FaintText.Render(truncate(line, inner)))
				b.WriteString("\n")
			}
		} else if m.previewErr != "" {
			b.WriteString(styles.FaintText.Render("No preview: " + truncate(m.previewErr, inner-12)))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(styles.MutedText.Render("No file selected. Press o to browse or u to type a path."))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.state.Phase() {
	case session.PhaseProcessing:
		b.WriteString(styles.WarningText.Render(fmt.Sprintf("%s Processing… %s", m.spinner.View(), m.elapsed.Round(100*time.Millisecond))))
		b.WriteString("\n")
	case session.PhaseSucceeded:
		b.WriteString(styles.SuccessText.Render(fmt.Sprintf("Processed in %s", m.elapsed.Round(10*time.Millisecond))))
		b.WriteString("\n")
	case session.PhaseFailed:
		b.WriteString(styles.DangerText.Width(inner).Render(strings.TrimSpace(m.state.LastError)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderQuickChecks(styles, inner))

	return styles.Panel.Width(width - 2).Height(height - 2).Render(b.String())
}

// routingPolicy documents how the claims service routes. The console never
// evaluates it; the recommended route always comes from the service.
var routingPolicy = []struct {
	route string
	rule  string
	tone  session.Tone
}{
	{"Investigation", "description mentions fraud, inconsistent or staged", session.ToneDanger},
	{"Specialist", "claim type is injury", session.ToneInfo},
	{"Manual review", "mandatory fields missing or estimates inconsistent", session.ToneWarning},
	{"Fast-track", "estimated damage below 25,000", session.ToneSuccess},
}

func (m Model) renderQuickChecks(styles Styles, width int) string {
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Quick Checks"))
	b.WriteString("\n")
	for _, p := range routingPolicy {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ToneColor(p.tone))).Render("●")
		line := dot + " " + styles.Text.Render(p.route) + styles.FaintText.Render(": "+p.rule)
		b.WriteString(lipgloss.NewStyle().Width(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderOutputPanel(styles Styles, width, height int) string {
	tabs := make([]string, 0, len(session.Views))
	for i, v := range session.Views {
		label := fmt.Sprintf("%d %s", i+1, viewLabel(v))
		if v == m.state.ActiveView {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabIdle.Render(label))
		}
	}
	inner := max(width-panelChrome, 10)
	content := strings.Join(tabs, " ") + "\n" +
		styles.FaintText.Render(strings.Repeat("─", inner)) + "\n" +
		m.output.View()

	panel := styles.Panel
	if m.state.LastResult != nil {
		panel = styles.FocusPanel()
	}
	return panel.Width(width - 2).Height(height - 2).Render(content)
}

func viewLabel(v session.View) string {
	switch v {
	case session.ViewFields:
		return "Fields"
	case session.ViewRaw:
		return "Raw JSON"
	default:
		return "Summary"
	}
}
