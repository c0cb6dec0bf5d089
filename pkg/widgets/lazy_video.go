package widgets

import (
	"github.com/go-drift/lazymedia/pkg/core"
	"github.com/go-drift/lazymedia/pkg/errors"
	"github.com/go-drift/lazymedia/pkg/platform"
	"github.com/go-drift/lazymedia/pkg/rendering"
	"github.com/go-drift/lazymedia/pkg/visibility"
)

// LazyVideo renders a video player immediately but defers constructing its
// media source until the player first becomes visible in the viewport. No
// bytes are fetched for videos the reader never scrolls to.
//
//	widgets.LazyVideo{SourceURL: "/video/intro.mp4", Height: "225px", AutoPlay: true}
//
// The visibility facility comes from visibility.DefaultObserverFactory and the
// elements from platform.GetDocument, both installed by the host.
type LazyVideo struct {
	// SourceURL is the media URL. It is not requested until the player is visible.
	SourceURL string

	// MimeType of the source. Defaults to "video/mp4".
	MimeType string

	// Height is passed through to the player as a CSS length.
	Height string

	// AutoPlay starts playback once the source has buffered.
	AutoPlay bool

	// HideControls hides the player's transport controls.
	HideControls bool
}

// CreateState implements core.StatefulWidget.
func (v LazyVideo) CreateState() core.State {
	return &lazyVideoState{}
}

func (v LazyVideo) options() platform.VideoOptions {
	return platform.VideoOptions{
		Height:       v.Height,
		AutoPlay:     v.AutoPlay,
		HideControls: v.HideControls,
	}
}

// LazyVideoHandle exposes a mounted LazyVideo to its host. Obtain it with
// element.State().(widgets.LazyVideoHandle).
type LazyVideoHandle interface {
	// Placeholder returns the player element, if it was created.
	Placeholder() (*platform.VideoElement, bool)
	// Visible reports whether the player has ever been visible.
	Visible() bool
	// Source returns the materialized source, if any.
	Source() (platform.Source, bool)
	// Phase returns the observation phase of the player's trigger.
	Phase() visibility.Phase
}

type lazyVideoState struct {
	core.StateBase
	placeholder core.Ref[*platform.VideoElement]
	trigger     *visibility.Trigger
	source      *platform.Source
}

var _ LazyVideoHandle = (*lazyVideoState)(nil)

func (s *lazyVideoState) widget() LazyVideo {
	return s.Widget().(LazyVideo)
}

func (s *lazyVideoState) InitState() {
	el, err := platform.GetDocument().CreateVideo(s.widget().options())
	if err != nil {
		errors.Report(&errors.DriftError{
			Op:   "widgets.LazyVideo.mount",
			Kind: errors.KindPlatform,
			Err:  err,
		})
	} else {
		s.placeholder.Set(el)
	}

	s.initialize()
	s.OnDispose(s.teardown)
}

// initialize binds a trigger to the placeholder. It runs once per mount;
// rebuilds and configuration updates keep the same target.
func (s *lazyVideoState) initialize() {
	s.trigger = core.UseController(s, func() *visibility.Trigger {
		return visibility.NewTrigger(visibility.DefaultObserverFactory())
	})
	core.UseObservable(s, s.trigger.State())

	var target visibility.Target
	if el, ok := s.placeholder.Current(); ok {
		target = el
	}
	if err := s.trigger.Attach(target, s.materialize); err != nil {
		report := &errors.DriftError{
			Op:   "widgets.LazyVideo.initialize",
			Kind: errors.KindPlatform,
			Err:  err,
		}
		if target != nil {
			report.Element = target.ElementID()
		}
		errors.Report(report)
	}
}

// teardown releases the placeholder. The trigger is disposed by
// UseController.
func (s *lazyVideoState) teardown() {
	if el, ok := s.placeholder.Current(); ok {
		el.Dispose()
	}
}

// materialize constructs the source and binds it to the placeholder, which
// starts the fetch.
func (s *lazyVideoState) materialize() {
	if s.source != nil || s.IsDisposed() {
		return
	}
	el, ok := s.placeholder.Current()
	if !ok {
		return
	}

	w := s.widget()
	src := platform.GetDocument().CreateSource(w.SourceURL, w.MimeType)
	if err := el.AttachSource(src); err != nil {
		errors.Report(&errors.DriftError{
			Op:      "widgets.LazyVideo.materialize",
			Kind:    errors.KindPlatform,
			Element: el.ElementID(),
			Err:     err,
		})
		return
	}
	s.source = &src
	s.SetState(nil)
}

func (s *lazyVideoState) DidUpdateWidget(old core.StatefulWidget) {
	if el, ok := s.placeholder.Current(); ok {
		el.SetOptions(s.widget().options())
	}
}

func (s *lazyVideoState) Build(ctx core.BuildContext) rendering.Node {
	if el, ok := s.placeholder.Current(); ok {
		return el.Node()
	}
	// No element could be created; render an inert player.
	return rendering.Node{Tag: "video"}
}

func (s *lazyVideoState) Placeholder() (*platform.VideoElement, bool) {
	return s.placeholder.Current()
}

func (s *lazyVideoState) Visible() bool {
	return s.trigger != nil && s.trigger.Visible()
}

func (s *lazyVideoState) Source() (platform.Source, bool) {
	if s.source == nil {
		return platform.Source{}, false
	}
	return *s.source, true
}

func (s *lazyVideoState) Phase() visibility.Phase {
	if s.trigger == nil {
		return visibility.PhaseUnobserved
	}
	return s.trigger.Phase()
}
