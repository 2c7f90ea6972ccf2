package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claimsdesk/fnol/internal/intake"
)

// NoSelectionMessage is shown when processing is requested without a file.
const NoSelectionMessage = "Select a FNOL PDF/TXT file first."

// ExportFileName is the name of the exported claim JSON.
const ExportFileName = "claim_output.json"

// ErrNoSelection is returned by Process when no file is selected.
var ErrNoSelection = errors.New("no file selected")

// Controller owns the session and serializes every transition. Only the
// most recent submission may land: each Begin and Reset bumps a generation
// counter and completions from older generations are dropped.
type Controller struct {
	mu         sync.Mutex
	state      State
	generation uint64
	client     intake.Submitter
	newID      func() string
}

// Request is a submission handed out by Begin. Run it off the UI loop and
// pass its Outcome back to Complete.
type Request struct {
	Generation uint64
	ID         string // sent as X-Request-ID and used in log lines
	Upload     *intake.Upload
	client     intake.Submitter
}

// Outcome is the transient result of one Request.
type Outcome struct {
	Generation uint64
	RequestID  string
	Result     *intake.ClaimResult
	Err        error
	Elapsed    time.Duration
}

// New returns a controller in the idle state.
func New(client intake.Submitter) *Controller {
	return &Controller{state: initialState(), client: client, newID: uuid.NewString}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// SelectFile replaces the selection. Any prior result or error is kept.
func (c *Controller) SelectFile(upload *intake.Upload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Selection = upload
}

// SetActiveView switches the output pane.
func (c *Controller) SetActiveView(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ActiveView = v
}

// Reset returns to the initial state and invalidates any in-flight request.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Processing {
		log.Printf("reset discards in-flight submission gen=%d", c.generation)
	}
	c.generation++
	c.state = initialState()
}

// Begin starts a submission. It returns false without touching state while
// another submission is in flight, and fails the session locally when no
// file is selected.
func (c *Controller) Begin() (*Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Processing {
		return nil, false
	}
	c.state.LastError = ""
	c.state.LastResult = nil
	c.state.RawText = ""

	if c.state.Selection == nil {
		c.state.LastError = NoSelectionMessage
		return nil, false
	}

	c.generation++
	c.state.Processing = true
	id := c.newID()
	log.Printf("submit gen=%d request=%s file=%q bytes=%d", c.generation, id, c.state.Selection.Name, c.state.Selection.Size())
	return &Request{Generation: c.generation, ID: id, Upload: c.state.Selection, client: c.client}, true
}

// Run performs the network call. It does not touch the controller.
func (r *Request) Run(ctx context.Context) Outcome {
	start := time.Now()
	if r.client == nil {
		return Outcome{Generation: r.Generation, RequestID: r.ID, Err: fmt.Errorf("no claims client configured")}
	}
	result, err := r.client.Submit(intake.WithRequestID(ctx, r.ID), r.Upload)
	return Outcome{Generation: r.Generation, RequestID: r.ID, Result: result, Err: err, Elapsed: time.Since(start)}
}

// Complete applies an outcome if it belongs to the current submission and
// reports whether it did.
func (c *Controller) Complete(o Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if o.Generation != c.generation || !c.state.Processing {
		log.Printf("discard stale outcome gen=%d request=%s current=%d", o.Generation, o.RequestID, c.generation)
		return false
	}
	c.state.Processing = false

	if o.Err == nil && o.Result == nil {
		o.Err = fmt.Errorf("claims service returned no result")
	}
	if o.Err != nil {
		c.state.LastError = intake.Message(o.Err)
		c.state.LastResult = nil
		c.state.RawText = ""
		log.Printf("submit gen=%d request=%s failed after %s: %v", o.Generation, o.RequestID, o.Elapsed.Round(time.Millisecond), o.Err)
		return true
	}

	raw, err := o.Result.Pretty()
	if err != nil {
		c.state.LastError = intake.Message(err)
		return true
	}
	c.state.LastResult = o.Result.Clone()
	c.state.RawText = raw
	c.state.ActiveView = ViewSummary
	c.state.LastError = ""
	log.Printf("submit gen=%d request=%s succeeded after %s route=%q missing=%d",
		o.Generation, o.RequestID, o.Elapsed.Round(time.Millisecond), o.Result.RecommendedRoute, len(o.Result.MissingFields))
	return true
}

// Process runs Begin, Run and Complete back to back and returns the
// resulting state. It returns ErrNoSelection when nothing is selected and
// the untouched state when a submission is already in flight.
func (c *Controller) Process(ctx context.Context) (State, error) {
	req, ok := c.Begin()
	if !ok {
		snap := c.Snapshot()
		if snap.Selection == nil && snap.LastError == NoSelectionMessage {
			return snap, ErrNoSelection
		}
		return snap, nil
	}
	c.Complete(req.Run(ctx))
	return c.Snapshot(), nil
}

// Export writes the raw JSON to dir/claim_output.json and returns the path.
// With nothing to export it does nothing and returns an empty path.
func (c *Controller) Export(dir string) (string, error) {
	c.mu.Lock()
	raw := c.state.RawText
	c.mu.Unlock()

	if raw == "" {
		return "", nil
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, ExportFileName)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	log.Printf("exported claim json to %s", path)
	return path, nil
}
