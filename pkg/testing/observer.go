package testing

import (
	"github.com/go-drift/lazymedia/pkg/rendering"
	"github.com/go-drift/lazymedia/pkg/visibility"
)

// FakeObserver is a synthetic intersection observer. Tests inject entries
// with Emit or Deliver instead of laying out real geometry.
type FakeObserver struct {
	target      visibility.Target
	cb          visibility.Callback
	observes    int
	disconnects int

	// ObserveErr, if set, is returned by Observe.
	ObserveErr error
}

// Observe records target and cb.
func (o *FakeObserver) Observe(target visibility.Target, cb visibility.Callback) error {
	o.observes++
	if o.ObserveErr != nil {
		return o.ObserveErr
	}
	o.target = target
	o.cb = cb
	return nil
}

// Disconnect records the call.
func (o *FakeObserver) Disconnect() {
	o.disconnects++
}

// Target returns the observed target.
func (o *FakeObserver) Target() visibility.Target {
	return o.target
}

// Observes returns how many times Observe was called.
func (o *FakeObserver) Observes() int {
	return o.observes
}

// Disconnects returns how many times Disconnect was called.
func (o *FakeObserver) Disconnects() int {
	return o.disconnects
}

// Connected reports whether the observer is observing and has not been
// disconnected.
func (o *FakeObserver) Connected() bool {
	return o.cb != nil && o.disconnects == 0
}

// Emit delivers one entry per ratio, each in its own batch, to the registered
// callback. Delivery ignores Disconnect, modelling a platform that still
// flushes queued events; the consumer must guard against them.
func (o *FakeObserver) Emit(ratios ...float64) {
	for _, r := range ratios {
		o.Deliver(o.Entry(r))
	}
}

// Deliver hands entries to the registered callback as a single batch.
func (o *FakeObserver) Deliver(entries ...visibility.Entry) {
	if o.cb == nil {
		return
	}
	o.cb(entries)
}

// Entry builds an entry for the observed target with the given ratio.
func (o *FakeObserver) Entry(ratio float64) visibility.Entry {
	bounds := rendering.RectFromLTWH(0, 0, 100, 100)
	return visibility.Entry{
		Target:            o.target,
		IntersectionRatio: ratio,
		IsIntersecting:    ratio > 0,
		BoundingRect:      bounds,
		IntersectionRect:  rendering.RectFromLTWH(0, 0, 100, 100*ratio),
		RootBounds:        rendering.RectFromLTWH(0, 0, DefaultTestWidth, DefaultTestHeight),
	}
}

// FakeObserverFactory hands out FakeObservers and remembers them.
type FakeObserverFactory struct {
	observers []*FakeObserver

	// ObserveErr is copied into every observer the factory creates.
	ObserveErr error
}

// NewFakeObserverFactory creates an empty factory.
func NewFakeObserverFactory() *FakeObserverFactory {
	return &FakeObserverFactory{}
}

// Factory returns the factory function to install with
// visibility.SetDefaultObserverFactory or pass to visibility.NewTrigger.
func (f *FakeObserverFactory) Factory() visibility.ObserverFactory {
	return func() visibility.Observer {
		o := &FakeObserver{ObserveErr: f.ObserveErr}
		f.observers = append(f.observers, o)
		return o
	}
}

// Observers returns every observer created so far.
func (f *FakeObserverFactory) Observers() []*FakeObserver {
	return f.observers
}

// Last returns the most recently created observer, or nil.
func (f *FakeObserverFactory) Last() *FakeObserver {
	if len(f.observers) == 0 {
		return nil
	}
	return f.observers[len(f.observers)-1]
}
