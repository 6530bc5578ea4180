package planner

import "sync/atomic"

// AbortFlag is a cooperative cancellation token, polled at the top of the
// planner's main loop (spec.md §5, §9). The reference design is a single
// process-wide byte; here it is a token owned by one PlanState instead, as
// §9 explicitly invites for languages with first-class cancellation —
// semantics are unchanged: any goroutine may call Set, the planner
// observes it on its next iteration and stops gracefully.
type AbortFlag struct {
	flag atomic.Bool
}

// NewAbortFlag returns a flag reset to false, as at planner construction.
func NewAbortFlag() *AbortFlag {
	return &AbortFlag{}
}

// Set requests graceful termination of the search owning this flag.
func (a *AbortFlag) Set() {
	a.flag.Store(true)
}

// IsSet reports whether termination has been requested.
func (a *AbortFlag) IsSet() bool {
	return a.flag.Load()
}
