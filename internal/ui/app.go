package ui

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claimsdesk/fnol/internal/config"
	"github.com/claimsdesk/fnol/internal/intake"
	"github.com/claimsdesk/fnol/internal/prefs"
	"github.com/claimsdesk/fnol/internal/preview"
	"github.com/claimsdesk/fnol/internal/session"
)

// overlay is the modal currently drawn over the main layout.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayPicker
	overlayPath
	overlayActivity
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *session.Controller
	Config     *config.Config
	Prefs      prefs.Prefs
	PrefsPath  string
	StartDir   string // overrides Prefs.LastDir; empty falls back to the working directory
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	controller *session.Controller
	config     config.Config
	prefsPath  string
	prefs      prefs.Prefs
	keys       keyMap

	// UI state
	theme   Theme
	overlay overlay
	width   int
	height  int
	ready   bool

	// Session snapshot, refreshed after every controller call
	state session.State

	// Selection preview
	preview    *preview.Info
	previewErr string

	// Processing indicator
	spinner   spinner.Model
	startedAt time.Time
	elapsed   time.Duration

	// Output pane
	output viewport.Model

	// Overlays
	picker    filepicker.Model
	pathInput textinput.Model
	activity  viewport.Model

	// Footer notice
	notice     string
	noticeTone session.Tone
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	themeName := opts.Prefs.Theme
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	controller := opts.Controller
	if controller == nil {
		controller = session.New(nil)
	}

	startDir := opts.StartDir
	if startDir == "" {
		startDir = opts.Prefs.StartDir()
	}
	if startDir == "" {
		if wd, err := os.Getwd(); err == nil {
			startDir = wd
		}
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	fp := filepicker.New()
	fp.AllowedTypes = append([]string(nil), intake.AcceptedExtensions...)
	fp.CurrentDirectory = startDir
	fp.AutoHeight = true
	fp.ShowPermissions = false

	ti := textinput.New()
	ti.Placeholder = "/path/to/claim.pdf"
	ti.Prompt = "› "
	ti.CharLimit = 4096

	m := Model{
		ctx:        ctx,
		controller: controller,
		config:     cfg,
		prefsPath:  prefsPath,
		prefs:      opts.Prefs,
		keys:       DefaultKeyMap(),
		theme:      GetTheme(themeName),
		spinner:    sp,
		picker:     fp,
		pathInput:  ti,
		output:     viewport.New(0, 0),
		activity:   viewport.New(0, 0),
	}
	m.state = controller.Snapshot()
	if m.state.Selection != nil {
		m.setPreview(m.state.Selection)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.picker.Init())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		m.refreshOutput()
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case outcomeMsg:
		m.handleOutcome(session.Outcome(msg))
		return m, nil

	case selectedMsg:
		m.handleSelected(msg)
		return m, nil

	case exportedMsg:
		m.handleExported(msg)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setNotice("Copy failed: "+msg.err.Error(), session.ToneDanger)
		} else {
			m.setNotice("Raw JSON copied to clipboard", session.ToneSuccess)
		}
		return m, nil

	case activityMsg:
		m.handleActivity(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Processing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.elapsed = time.Since(m.startedAt)
		return m, cmd
	}

	// Directory listings and other picker traffic.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.overlay {
	case overlayHelp:
		return m.renderHelp()
	case overlayPicker:
		return m.renderPicker()
	case overlayPath:
		return m.renderPathInput()
	case overlayActivity:
		return m.renderActivity()
	}
	return m.renderMain()
}

// handleKey processes keyboard input. Overlays get the first look.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayHelp:
		m.overlay = overlayNone
		return m, nil
	case overlayPicker:
		return m.handlePickerKey(msg)
	case overlayPath:
		return m.handlePathKey(msg)
	case overlayActivity:
		return m.handleActivityKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.refreshOutput()
		return m, nil

	case key.Matches(msg, m.keys.OpenPicker):
		m.overlay = overlayPicker
		return m, m.picker.Init()

	case key.Matches(msg, m.keys.TypePath):
		m.overlay = overlayPath
		m.pathInput.SetValue("")
		return m, m.pathInput.Focus()

	case key.Matches(msg, m.keys.Process):
		return m.process()

	case key.Matches(msg, m.keys.Reset):
		m.reset()
		return m, nil

	case key.Matches(msg, m.keys.NextView):
		m.setView(m.state.ActiveView.Next())
		return m, nil

	case key.Matches(msg, m.keys.ViewSummary):
		m.setView(session.ViewSummary)
		return m, nil

	case key.Matches(msg, m.keys.ViewFields):
		m.setView(session.ViewFields)
		return m, nil

	case key.Matches(msg, m.keys.ViewRaw):
		m.setView(session.ViewRaw)
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m, exportCmd(m.controller, m.config.ExportDir)

	case key.Matches(msg, m.keys.Copy):
		if m.state.RawText == "" {
			return m, nil
		}
		return m, copyCmd(m.state.RawText)

	case key.Matches(msg, m.keys.Activity):
		m.overlay = overlayActivity
		return m, readActivityCmd(m.config.LogPath)

	case key.Matches(msg, m.keys.Top):
		m.output.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.output.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.output, cmd = m.output.Update(msg)
	return m, cmd
}

// process starts a submission unless one is already in flight.
func (m Model) process() (tea.Model, tea.Cmd) {
	req, ok := m.controller.Begin()
	m.sync()
	if !ok {
		return m, nil
	}
	m.notice = ""
	m.startedAt = time.Now()
	m.elapsed = 0
	return m, tea.Batch(m.spinner.Tick, submitCmd(m.ctx, req))
}

func (m *Model) reset() {
	m.controller.Reset()
	m.preview = nil
	m.previewErr = ""
	m.notice = ""
	m.elapsed = 0
	m.sync()
}

func (m *Model) setView(v session.View) {
	m.controller.SetActiveView(v)
	m.sync()
	m.output.GotoTop()
}

func (m *Model) handleOutcome(o session.Outcome) {
	if !m.controller.Complete(o) {
		return
	}
	m.elapsed = o.Elapsed
	m.sync()
	m.output.GotoTop()
}

func (m *Model) handleSelected(msg selectedMsg) {
	if msg.err != nil {
		m.setNotice(msg.err.Error(), session.ToneDanger)
		return
	}
	m.controller.SelectFile(msg.upload)
	if msg.fromPicker {
		m.prefs = m.prefs.WithDocument(msg.path)
		m.savePrefs()
	}
	m.preview = msg.preview
	m.previewErr = msg.previewErr
	m.notice = ""
	if !msg.upload.Accepted() {
		m.setNotice("Not a .pdf/.txt file; the claims service may reject it", session.ToneWarning)
	}
	m.sync()
}

func (m *Model) handleExported(msg exportedMsg) {
	switch {
	case msg.err != nil:
		m.setNotice("Export failed: "+msg.err.Error(), session.ToneDanger)
	case msg.path != "":
		m.setNotice("Exported "+msg.path, session.ToneSuccess)
	}
}

func (m *Model) setPreview(upload *intake.Upload) {
	info, err := preview.Inspect(upload, preview.DefaultHeadLines)
	if err != nil {
		m.preview = nil
		m.previewErr = err.Error()
		return
	}
	m.preview = &info
	m.previewErr = ""
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.setNotice("Preferences not saved: "+err.Error(), session.ToneWarning)
	}
}

func (m *Model) setNotice(text string, tone session.Tone) {
	m.notice = strings.TrimSpace(text)
	m.noticeTone = tone
}

// sync pulls a fresh snapshot and re-renders the output pane.
func (m *Model) sync() {
	m.state = m.controller.Snapshot()
	m.refreshOutput()
}

// Messages

type outcomeMsg session.Outcome

type selectedMsg struct {
	path       string
	fromPicker bool
	upload     *intake.Upload
	preview    *preview.Info
	previewErr string
	err        error
}

type exportedMsg struct {
	path string
	err  error
}

type copiedMsg struct {
	err error
}

type activityMsg struct {
	lines []string
	err   error
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
