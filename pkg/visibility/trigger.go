package visibility

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"

	"github.com/go-drift/lazymedia/pkg/core"
)

// ErrNoObserver is returned by Attach when no observer could be created.
var ErrNoObserver = errors.New("visibility: no intersection observer available")

// Phase is the observation phase of a Trigger.
type Phase int32

const (
	// PhaseUnobserved is the initial phase: no observer is registered,
	// either because Attach was not called or because it was skipped.
	PhaseUnobserved Phase = iota
	// PhaseObserving means an observer is registered and the target has not
	// intersected yet.
	PhaseObserving
	// PhaseVisible is terminal: the target intersected and the observer
	// has been released.
	PhaseVisible
	// PhaseDisposed means Detach was called. No further events are handled.
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseUnobserved:
		return "unobserved"
	case PhaseObserving:
		return "observing"
	case PhaseVisible:
		return "visible"
	case PhaseDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Trigger reports, at most once, the first time a target intersects the
// viewport.
//
// The visible value is monotonic: it goes from false to true once and stays
// true for the trigger's lifetime, including after Detach. The observer is
// owned by the trigger and disconnected exactly once, on the first visible
// entry or on Detach, whichever comes first.
//
// Attach, Detach and event delivery must happen on the UI thread. Visible,
// Phase and Done may be read from any goroutine.
type Trigger struct {
	factory   ObserverFactory
	observer  Observer
	onVisible func()

	phase   atomic.Int32
	visible *core.Observable[bool]
	done    chan struct{}
}

// NewTrigger creates an unobserved trigger that will obtain its observer from
// factory on Attach.
func NewTrigger(factory ObserverFactory) *Trigger {
	return &Trigger{
		factory: factory,
		visible: core.NewObservable(false),
		done:    make(chan struct{}),
	}
}

// Attach starts observing target and arranges for onVisible to run once, the
// first time an entry reports a non-zero intersection ratio.
//
// A nil target is not yet resolved: Attach does nothing and returns nil, and
// the trigger stays unobserved. It does not retry when the target resolves
// later. Attach on a trigger that is already observing, visible or disposed
// is also a no-op.
//
// Failures of the observation facility are returned to the caller and leave
// the trigger unobserved.
func (t *Trigger) Attach(target Target, onVisible func()) error {
	if isNilTarget(target) {
		return nil
	}
	if Phase(t.phase.Load()) != PhaseUnobserved {
		return nil
	}
	if t.factory == nil {
		return ErrNoObserver
	}
	obs := t.factory()
	if obs == nil {
		return errors.Wrap(ErrNoObserver, "observer factory returned nil")
	}

	t.observer = obs
	t.onVisible = onVisible
	t.phase.Store(int32(PhaseObserving))

	if err := obs.Observe(target, t.handleEntries); err != nil {
		if t.phase.CompareAndSwap(int32(PhaseObserving), int32(PhaseUnobserved)) {
			t.release()
			t.onVisible = nil
		}
		return errors.Wrapf(err, "observe %s", target.ElementID())
	}
	return nil
}

func (t *Trigger) handleEntries(entries []Entry) {
	if Phase(t.phase.Load()) != PhaseObserving {
		return
	}
	var ratio float64
	if len(entries) > 0 {
		ratio = entries[0].IntersectionRatio
	}
	if ratio <= 0 {
		return
	}
	if !t.phase.CompareAndSwap(int32(PhaseObserving), int32(PhaseVisible)) {
		return
	}

	t.release()
	close(t.done)
	t.visible.Set(true)

	onVisible := t.onVisible
	t.onVisible = nil
	if onVisible != nil {
		onVisible()
	}
}

// Detach disconnects the observer if it is still live and disposes the
// trigger. It is safe to call any number of times, before or after the
// target became visible. The visible value is left as it was.
func (t *Trigger) Detach() {
	for {
		p := t.phase.Load()
		if Phase(p) == PhaseDisposed {
			return
		}
		if t.phase.CompareAndSwap(p, int32(PhaseDisposed)) {
			break
		}
	}
	t.release()
	t.onVisible = nil
}

// Dispose is an alias for Detach so a Trigger can be managed by
// core.UseController.
func (t *Trigger) Dispose() {
	t.Detach()
}

func (t *Trigger) release() {
	if t.observer == nil {
		return
	}
	obs := t.observer
	t.observer = nil
	obs.Disconnect()
}

// Visible reports whether the target has ever intersected the viewport.
func (t *Trigger) Visible() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Phase returns the current observation phase.
func (t *Trigger) Phase() Phase {
	return Phase(t.phase.Load())
}

// Done returns a channel that is closed when the target becomes visible.
// It is never closed for a trigger that is detached before that.
func (t *Trigger) Done() <-chan struct{} {
	return t.done
}

// State exposes the visible value as a read-only observable for
// core.UseObservable. Only the trigger can change it.
func (t *Trigger) State() core.ReadOnlyObservable[bool] {
	return t.visible.ReadOnly()
}

// Listen registers fn to be told when the visible value changes. It returns
// a function that removes the listener.
func (t *Trigger) Listen(fn func(visible bool)) func() {
	return t.visible.AddListener(fn)
}

func isNilTarget(target Target) bool {
	if target == nil {
		return true
	}
	v := reflect.ValueOf(target)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
