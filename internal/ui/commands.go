package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claimsdesk/fnol/internal/intake"
	"github.com/claimsdesk/fnol/internal/logtail"
	"github.com/claimsdesk/fnol/internal/preview"
	"github.com/claimsdesk/fnol/internal/session"
)

// activityLines is how much of the log the activity overlay shows.
const activityLines = 200

// submitCmd performs the single network call off the UI loop.
func submitCmd(ctx context.Context, req *session.Request) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(req.Run(ctx))
	}
}

// loadFileCmd reads a document and inspects it for the selection preview.
func loadFileCmd(path string, fromPicker bool) tea.Cmd {
	return func() tea.Msg {
		upload, err := intake.LoadUpload(path)
		if err != nil {
			return selectedMsg{path: path, err: fmt.Errorf("open %s: %w", path, err)}
		}
		msg := selectedMsg{path: path, fromPicker: fromPicker, upload: upload}
		info, err := preview.Inspect(upload, preview.DefaultHeadLines)
		if err != nil {
			msg.previewErr = err.Error()
		} else {
			msg.preview = &info
		}
		return msg
	}
}

func exportCmd(controller *session.Controller, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := controller.Export(dir)
		return exportedMsg{path: path, err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func readActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, activityLines)
		return activityMsg{lines: lines, err: err}
	}
}
