package platform

import (
	"sync"

	"github.com/google/uuid"

	"github.com/go-drift/lazymedia/pkg/rendering"
)

// VideoOptions are passthrough rendering options for a video element.
type VideoOptions struct {
	// Height is a CSS length such as "225px" or "50vh". Empty leaves the
	// host default.
	Height string

	// AutoPlay starts playback as soon as enough data is buffered.
	AutoPlay bool

	// HideControls hides the host's transport controls.
	HideControls bool
}

// VideoElement is a playable-media element in the host document. It is
// created without a source, so it renders as an empty player until
// [VideoElement.AttachSource] is called.
//
// All methods are safe for concurrent use.
type VideoElement struct {
	mu       sync.RWMutex
	id       string
	options  VideoOptions
	source   Source
	attached bool
	state    PlaybackState
	disposed bool
}

func newVideoElement(opts VideoOptions) *VideoElement {
	return &VideoElement{
		id:      "video-" + uuid.NewString(),
		options: opts,
	}
}

// ElementID returns the element's document-unique identifier.
func (v *VideoElement) ElementID() string {
	return v.id
}

// Options returns the current rendering options.
func (v *VideoElement) Options() VideoOptions {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.options
}

// SetOptions replaces the rendering options. It never touches the source.
func (v *VideoElement) SetOptions(opts VideoOptions) {
	v.mu.Lock()
	v.options = opts
	v.mu.Unlock()
}

// AttachSource binds src to the element and starts the fetch. An element
// accepts exactly one source.
func (v *VideoElement) AttachSource(src Source) error {
	v.mu.Lock()
	if v.disposed {
		v.mu.Unlock()
		return ErrDisposed
	}
	if v.attached {
		v.mu.Unlock()
		return ErrSourceAttached
	}
	v.source = src
	v.attached = true
	v.state = PlaybackStateBuffering
	v.mu.Unlock()
	return nil
}

// Source returns the attached source, if any.
func (v *VideoElement) Source() (Source, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.source, v.attached
}

// State returns the current playback state.
func (v *VideoElement) State() PlaybackState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Disposed reports whether Dispose has been called.
func (v *VideoElement) Disposed() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.disposed
}

// Dispose releases the element. Dispose is idempotent.
func (v *VideoElement) Dispose() {
	v.mu.Lock()
	v.disposed = true
	v.mu.Unlock()
}

// Node renders the element. The source child is present only once a source
// has been attached.
func (v *VideoElement) Node() rendering.Node {
	v.mu.RLock()
	defer v.mu.RUnlock()

	n := rendering.Node{
		Tag:   "video",
		Attrs: []rendering.Attr{{Name: "id", Value: v.id}},
	}
	if !v.options.HideControls {
		n.Attrs = append(n.Attrs, rendering.Attr{Name: "controls", Bool: true})
	}
	if v.options.AutoPlay {
		n.Attrs = append(n.Attrs, rendering.Attr{Name: "autoplay", Bool: true})
	}
	if v.options.Height != "" {
		n.Attrs = append(n.Attrs, rendering.Attr{Name: "style", Value: "height: " + v.options.Height})
	}
	if v.attached {
		n.Children = []rendering.Node{{
			Tag: "source",
			Attrs: []rendering.Attr{
				{Name: "type", Value: v.source.MimeType},
				{Name: "src", Value: v.source.URL},
			},
		}}
	}
	return n
}
