// Package forms holds one controller per document type.
//
// A controller has two halves. Refresh is pure: from a snapshot it computes
// the indicator, the headline and the set of actions currently offered.
// Run performs one action against the server and describes the outcome as
// render effects; it never touches the document itself, which is the
// session's job.
//
// Failures reported by the server become dialogs, not errors. Run returns
// an error only when it cannot attempt the action at all.
package forms
