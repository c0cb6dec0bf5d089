// Package visibility detects the first time an element becomes visible in
// the viewport.
//
// A [Trigger] wraps a single viewport-intersection [Observer]. It moves
// through three phases, Unobserved, Observing and Visible, and reports the
// first entry with a non-zero intersection ratio exactly once:
//
//	t := visibility.NewTrigger(visibility.DefaultObserverFactory())
//	if err := t.Attach(placeholder, func() { startFetch() }); err != nil {
//	    // the observation facility failed; the callback will never run
//	}
//	defer t.Detach()
//
// Hosts install the observation facility with [SetDefaultObserverFactory].
// [Viewport] is an in-process facility that computes intersections from
// laid-out rectangles; tests use the synthetic observer in
// github.com/go-drift/lazymedia/pkg/testing to inject entries directly.
package visibility
