// Package session holds the console's single mutable session and the four
// actions that change it: SelectFile, Process (Begin + Complete), Reset and
// SetActiveView.
//
// # Lifecycle
//
//	Idle ──Begin──▶ Processing ──Complete(ok)──▶ Succeeded
//	  ▲                 │
//	  │                 └──────Complete(err)──▶ Failed
//	  └──────────────── Reset (from any state)
//
// Begin without a selection goes straight to Failed and never reaches the
// network. Begin while Processing is a no-op.
//
// # Stale completions
//
// The network call runs outside the controller. Every Begin and Reset bumps a
// generation counter, the Request carries the generation it was issued under,
// and Complete ignores any Outcome whose generation is no longer current. A
// Reset during a slow submission therefore wins over its late answer.
//
// # Derived values
//
// Tone, Missing and Phase are computed from the stored result on every call
// and are never stored alongside it.
package session
