package app

import (
	"context"
	"fmt"

	"github.com/claimsdesk/fnol/internal/config"
	"github.com/claimsdesk/fnol/internal/intake"
	"github.com/claimsdesk/fnol/internal/session"
)

// Report is what a headless run produced.
type Report struct {
	State      session.State
	ExportPath string
}

// ProcessFile runs one select/process/export round trip without the console.
// A failed submission is reported through Report.State.LastError and a nil
// error; err is reserved for local problems such as an unreadable file.
func ProcessFile(ctx context.Context, cfg config.Config, submitter intake.Submitter, path string, export bool) (Report, error) {
	upload, err := intake.LoadUpload(path)
	if err != nil {
		return Report{}, fmt.Errorf("select %s: %w", path, err)
	}

	controller := session.New(submitter)
	controller.SelectFile(upload)

	state, err := controller.Process(ctx)
	if err != nil {
		return Report{State: state}, err
	}
	report := Report{State: state}
	if !export || state.Phase() != session.PhaseSucceeded {
		return report, nil
	}

	exported, err := controller.Export(cfg.ExportDir)
	if err != nil {
		return report, err
	}
	report.ExportPath = exported
	return report, nil
}
