// Package logtail reads bounded slices of line-oriented text: the tail of
// the console's activity log and the head of a selected text document.
package logtail
