package testing

import (
	"testing"

	"github.com/go-drift/lazymedia/pkg/core"
	"github.com/go-drift/lazymedia/pkg/platform"
	"github.com/go-drift/lazymedia/pkg/rendering"
	"github.com/go-drift/lazymedia/pkg/visibility"
)

const (
	// DefaultTestWidth is the default logical width of the synthetic viewport.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height of the synthetic viewport.
	DefaultTestHeight = 600
)

// WidgetTester mounts a widget against a synthetic host: a FakeObserverFactory
// as the intersection facility and a CountingDocument as the element factory.
type WidgetTester struct {
	observers *FakeObserverFactory
	document  *CountingDocument
	element   *core.StatefulElement
}

// NewWidgetTester installs a synthetic host and returns a tester for it.
// Call Cleanup() when done, or use NewWidgetTesterWithT() instead.
func NewWidgetTester() *WidgetTester {
	t := &WidgetTester{
		observers: NewFakeObserverFactory(),
		document:  NewCountingDocument(),
	}
	visibility.SetDefaultObserverFactory(t.observers.Factory())
	platform.SetDocument(t.document)
	return t
}

// NewWidgetTesterWithT creates a tester and registers Cleanup with tb.
func NewWidgetTesterWithT(tb testing.TB) *WidgetTester {
	t := NewWidgetTester()
	tb.Cleanup(t.Cleanup)
	return t
}

// Cleanup unmounts the widget and uninstalls the synthetic host.
func (t *WidgetTester) Cleanup() {
	t.Unmount()
	visibility.SetDefaultObserverFactory(nil)
	platform.SetDocument(nil)
}

// PumpWidget mounts widget, replacing any previously mounted one.
func (t *WidgetTester) PumpWidget(widget core.StatefulWidget) {
	t.Unmount()
	t.element = core.Mount(widget)
}

// Update replaces the mounted widget's configuration and pumps.
func (t *WidgetTester) Update(widget core.StatefulWidget) {
	if t.element == nil {
		t.PumpWidget(widget)
		return
	}
	t.element.Update(widget)
	t.Pump()
}

// Pump runs a pending rebuild, if any.
func (t *WidgetTester) Pump() {
	if t.element != nil {
		t.element.Rebuild()
	}
}

// Unmount tears the mounted widget down.
func (t *WidgetTester) Unmount() {
	if t.element != nil {
		t.element.Unmount()
	}
}

// Element returns the mounted element.
func (t *WidgetTester) Element() *core.StatefulElement {
	return t.element
}

// Node returns the most recently built output.
func (t *WidgetTester) Node() rendering.Node {
	if t.element == nil {
		return rendering.Node{}
	}
	return t.element.Node()
}

// RenderedSources returns the source nodes in the current output.
func (t *WidgetTester) RenderedSources() []rendering.Node {
	return t.Node().FindAll("source")
}

// Observers returns the synthetic observer factory.
func (t *WidgetTester) Observers() *FakeObserverFactory {
	return t.observers
}

// Document returns the counting element factory.
func (t *WidgetTester) Document() *CountingDocument {
	return t.document
}
