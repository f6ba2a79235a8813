package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures so callers can fold them into the right
// report bucket without string matching on messages.
var (
	// ErrTagConfig marks mapping configuration load/validation failures.
	ErrTagConfig = goerr.NewTag("config")

	// ErrTagUpstream marks gateway calls that returned no usable data.
	ErrTagUpstream = goerr.NewTag("upstream")

	// ErrTagMutation marks add-to-group calls that failed and were not
	// classified as already-member.
	ErrTagMutation = goerr.NewTag("mutation")
)
