package core

import (
	"reflect"
	"time"

	"github.com/go-drift/lazymedia/pkg/errors"
	"github.com/go-drift/lazymedia/pkg/rendering"
)

// StatefulWidget is an immutable configuration that owns mutable State.
type StatefulWidget interface {
	CreateState() State
}

// BuildContext gives Build access to the hosting element.
type BuildContext interface {
	Widget() StatefulWidget
	BuildCount() int
}

// State holds the mutable part of a StatefulWidget.
//
// InitState runs exactly once per mount, Dispose exactly once per unmount.
// Build may run any number of times in between and must not allocate
// resources that outlive a single pass.
type State interface {
	InitState()
	Build(ctx BuildContext) rendering.Node
	DidUpdateWidget(oldWidget StatefulWidget)
	Dispose()
}

// StatefulElement hosts a StatefulWidget and its State.
//
// The element is an explicit lifecycle state machine: Mount creates the
// state and runs InitState, Update swaps configuration, Rebuild builds only
// when marked dirty, and Unmount disposes.
type StatefulElement struct {
	widget  StatefulWidget
	state   State
	node    rendering.Node
	dirty   bool
	mounted bool
	builds  int
}

// Mount creates the element for widget, initializes its state, and performs
// the first build.
func Mount(widget StatefulWidget) *StatefulElement {
	e := &StatefulElement{widget: widget}
	e.mounted = true
	e.state = widget.CreateState()
	if setter, ok := e.state.(interface{ setElement(*StatefulElement) }); ok {
		setter.setElement(e)
	}
	e.state.InitState()
	e.dirty = true
	e.Rebuild()
	return e
}

// Widget returns the current widget configuration.
func (e *StatefulElement) Widget() StatefulWidget {
	return e.widget
}

// State returns the hosted state.
func (e *StatefulElement) State() State {
	return e.state
}

// Mounted reports whether the element is still mounted.
func (e *StatefulElement) Mounted() bool {
	return e.mounted
}

// BuildCount returns how many times Build has run.
func (e *StatefulElement) BuildCount() int {
	return e.builds
}

// Dirty reports whether a rebuild is pending.
func (e *StatefulElement) Dirty() bool {
	return e.dirty
}

// Update swaps the widget configuration and schedules a rebuild.
func (e *StatefulElement) Update(newWidget StatefulWidget) {
	if !e.mounted {
		return
	}
	oldWidget := e.widget
	e.widget = newWidget
	e.state.DidUpdateWidget(oldWidget)
	e.MarkNeedsBuild()
}

// MarkNeedsBuild flags the element for the next Rebuild.
func (e *StatefulElement) MarkNeedsBuild() {
	if !e.mounted {
		return
	}
	e.dirty = true
}

// Rebuild runs Build if the element is dirty and mounted.
func (e *StatefulElement) Rebuild() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	e.node = e.safeBuild()
}

// Node returns the output of the most recent build.
func (e *StatefulElement) Node() rendering.Node {
	return e.node
}

// Unmount disposes the state. Further calls are no-ops.
func (e *StatefulElement) Unmount() {
	if !e.mounted {
		return
	}
	e.mounted = false
	e.dirty = false
	if e.state != nil {
		e.state.Dispose()
	}
}

// safeBuild executes Build with panic recovery. A failed build is reported
// and leaves the previous output in place.
func (e *StatefulElement) safeBuild() (node rendering.Node) {
	previous := e.node
	defer func() {
		if r := recover(); r != nil {
			errors.ReportBuildError(&errors.BuildError{
				Widget:     reflect.TypeOf(e.widget).String(),
				Recovered:  r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
			node = previous
		}
	}()
	e.builds++
	return e.state.Build(e)
}
