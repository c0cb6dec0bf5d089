package core

import (
	"testing"

	"github.com/go-drift/lazymedia/pkg/errors"
	"github.com/go-drift/lazymedia/pkg/rendering"
)

type counterWidget struct {
	label string
	log   *lifecycleLog
}

type lifecycleLog struct {
	inits    int
	updates  int
	disposes int
}

func (w counterWidget) CreateState() State {
	return &counterState{}
}

type counterState struct {
	StateBase
	count int
	panic bool
}

func (s *counterState) InitState() {
	s.Widget().(counterWidget).log.inits++
}

func (s *counterState) DidUpdateWidget(old StatefulWidget) {
	s.Widget().(counterWidget).log.updates++
}

func (s *counterState) Dispose() {
	s.Widget().(counterWidget).log.disposes++
	s.StateBase.Dispose()
}

func (s *counterState) Build(ctx BuildContext) rendering.Node {
	if s.panic {
		panic("build failed")
	}
	w := ctx.Widget().(counterWidget)
	return rendering.Node{Tag: "span", Attrs: []rendering.Attr{{Name: "data-label", Value: w.label}}}
}

func TestStatefulElement_Lifecycle(t *testing.T) {
	log := &lifecycleLog{}
	e := Mount(counterWidget{label: "a", log: log})

	if log.inits != 1 || e.BuildCount() != 1 {
		t.Fatalf("after mount: inits=%d builds=%d, want 1/1", log.inits, e.BuildCount())
	}

	// Rebuild without dirty flag does nothing.
	e.Rebuild()
	if e.BuildCount() != 1 {
		t.Errorf("clean rebuild should not build, builds=%d", e.BuildCount())
	}

	e.Update(counterWidget{label: "b", log: log})
	e.Rebuild()
	if log.updates != 1 || log.inits != 1 {
		t.Errorf("update: updates=%d inits=%d, want 1/1", log.updates, log.inits)
	}
	if v, _ := e.Node().Attr("data-label"); v != "b" {
		t.Errorf("label = %q, want b", v)
	}

	e.Unmount()
	e.Unmount()
	if log.disposes != 1 {
		t.Errorf("disposes = %d, want 1", log.disposes)
	}
	if !e.State().(*counterState).IsDisposed() {
		t.Error("state should be disposed")
	}
}

func TestStatefulElement_SetStateAfterUnmountIsNoop(t *testing.T) {
	e := Mount(counterWidget{log: &lifecycleLog{}})
	s := e.State().(*counterState)
	e.Unmount()

	s.SetState(func() { s.count++ })
	e.Rebuild()

	if s.count != 0 {
		t.Error("SetState after dispose should not run fn")
	}
	if e.BuildCount() != 1 {
		t.Errorf("builds = %d, want 1", e.BuildCount())
	}
}

type buildRecorder struct {
	builds []*errors.BuildError
}

func (r *buildRecorder) HandleError(*errors.DriftError)          {}
func (r *buildRecorder) HandlePanic(*errors.PanicError)          {}
func (r *buildRecorder) HandleBuildError(err *errors.BuildError) { r.builds = append(r.builds, err) }

func TestStatefulElement_BuildPanicKeepsPreviousNode(t *testing.T) {
	rec := &buildRecorder{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	e := Mount(counterWidget{label: "ok", log: &lifecycleLog{}})
	s := e.State().(*counterState)
	s.SetState(func() { s.panic = true })
	e.Rebuild()

	if len(rec.builds) != 1 {
		t.Fatalf("reported build errors = %d, want 1", len(rec.builds))
	}
	if v, _ := e.Node().Attr("data-label"); v != "ok" {
		t.Errorf("node after failed build = %q, want previous output", v)
	}
}
