// Package ui implements the FNOL console on Bubble Tea.
//
// # Layout
//
//	┌ header: logo, session phase, claims endpoint, theme ───────────────┐
//	│ command bar                                                         │
//	├ Upload FNOL Document ──────┬ 1 Summary  2 Fields  3 Raw JSON ──────┤
//	│ selection + preview         │                                      │
//	│ processing status / error   │ output viewport                      │
//	│ Quick Checks                │                                      │
//	└─────────────────────────────┴──────────────────────────────────────┘
//	  footer notice
//
// Below LayoutCompactWidth columns the two panels stack vertically.
//
// # State
//
// The Model holds no session data of its own. Every action calls the
// session.Controller and then copies its Snapshot into Model.state, so the
// rendered view is always a function of the controller state plus purely
// visual bits (theme, overlay, viewport offsets, spinner).
//
// # Processing
//
// Pressing p calls Controller.Begin. When it hands back a Request, the
// request runs in a tea.Cmd and its Outcome returns as an outcomeMsg that
// Update passes to Controller.Complete. A reset in the meantime bumps the
// controller's generation, so the late outcome is dropped there. A second p
// while processing is a no-op inside Begin.
//
// # Overlays
//
// Help, the file picker (restricted to .pdf/.txt), the typed-path prompt
// (which accepts any file) and the activity log read from the log file are
// drawn as centered modals and take all key input while open.
package ui
