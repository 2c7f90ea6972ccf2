// Package app wires configuration, the claims client, the session controller
// and the terminal UI together.
//
// # Startup
//
// Run performs these steps:
//
//  1. Resolve configuration: flags, then FNOL_* environment (including a
//     .env file), then ~/.config/fnol/config.toml, then defaults.
//  2. Redirect the standard logger to log_path. The UI owns the terminal.
//  3. Load display preferences. A broken prefs file is logged and ignored.
//  4. Build an intake.Client for backend_url with request_timeout and hand
//     it to a new session.Controller.
//  5. Optionally preselect the document passed on the command line.
//  6. Start the Bubble Tea program and block until it exits.
//
// There is no background polling. The only network traffic is the single
// POST issued when the user processes a document.
//
// # Headless
//
// ProcessFile drives the same controller without a UI for scripting:
// select, process, and optionally export claim_output.json. A failed
// submission is not an error of ProcessFile itself; callers inspect
// Report.State to decide the exit status.
package app
