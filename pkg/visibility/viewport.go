package visibility

import (
	"github.com/cockroachdb/errors"

	"github.com/go-drift/lazymedia/pkg/rendering"
)

// ErrObserverDisconnected is returned by Observe on a disconnected observer.
var ErrObserverDisconnected = errors.New("visibility: observer disconnected")

// Viewport is an in-process intersection facility. It tracks where targets
// are laid out in document coordinates and which part of the document is
// currently scrolled into view, and reports intersections to its observers.
//
// Entries are computed from the current geometry and delivered by Flush, on
// the goroutine that calls it. Targets without a layout are skipped until
// Layout is called for them. An observer receives an initial
// entry for every target it starts observing; after that it receives an
// entry only when the target crosses the "any non-zero overlap" threshold.
//
// Viewport is not safe for concurrent use.
type Viewport struct {
	size      rendering.Size
	scroll    rendering.Offset
	layouts   map[string]rendering.Rect
	observers []*viewportObserver
}

// NewViewport creates a viewport of the given size scrolled to the origin.
func NewViewport(size rendering.Size) *Viewport {
	return &Viewport{
		size:    size,
		layouts: make(map[string]rendering.Rect),
	}
}

// Bounds returns the visible part of the document.
func (v *Viewport) Bounds() rendering.Rect {
	return rendering.RectFromOffsetAndSize(v.scroll, v.size)
}

// Layout records target's rect in document coordinates.
func (v *Viewport) Layout(target Target, rect rendering.Rect) {
	v.layouts[target.ElementID()] = rect
}

// ScrollTo moves the viewport's top-left corner to offset.
func (v *Viewport) ScrollTo(offset rendering.Offset) {
	v.scroll = offset
}

// Resize changes the viewport size.
func (v *Viewport) Resize(size rendering.Size) {
	v.size = size
}

// NewObserver returns an Observer backed by this viewport. It has the
// signature of an ObserverFactory.
func (v *Viewport) NewObserver() Observer {
	o := &viewportObserver{}
	v.observers = append(v.observers, o)
	return o
}

// Flush computes intersections for every live observation and delivers the
// entries that are due. It returns the number of entries delivered.
func (v *Viewport) Flush() int {
	root := v.Bounds()
	delivered := 0

	// Callbacks may disconnect observers or create new ones.
	observers := append([]*viewportObserver(nil), v.observers...)
	for _, o := range observers {
		if o.disconnected {
			continue
		}
		var batch []Entry
		for _, obs := range o.targets {
			rect, ok := v.layouts[obs.target.ElementID()]
			if !ok {
				continue
			}
			entry := computeEntry(obs.target, rect, root)
			if obs.reported && entry.IsIntersecting == obs.lastIntersecting {
				continue
			}
			obs.reported = true
			obs.lastIntersecting = entry.IsIntersecting
			batch = append(batch, entry)
		}
		if len(batch) == 0 {
			continue
		}
		// Batches go to the callback registered by the first Observe.
		o.targets[0].cb(batch)
		delivered += len(batch)
	}

	v.prune()
	return delivered
}

func (v *Viewport) prune() {
	live := v.observers[:0]
	for _, o := range v.observers {
		if !o.disconnected {
			live = append(live, o)
		}
	}
	for i := len(live); i < len(v.observers); i++ {
		v.observers[i] = nil
	}
	v.observers = live
}

// Observing returns the number of live observations, for diagnostics.
func (v *Viewport) Observing() int {
	n := 0
	for _, o := range v.observers {
		if !o.disconnected {
			n += len(o.targets)
		}
	}
	return n
}

func computeEntry(target Target, rect, root rendering.Rect) Entry {
	ratio := rect.IntersectionRatio(root)
	return Entry{
		Target:            target,
		IntersectionRatio: ratio,
		IsIntersecting:    ratio > 0,
		BoundingRect:      rect,
		IntersectionRect:  rect.Intersect(root),
		RootBounds:        root,
	}
}

type observation struct {
	target           Target
	cb               Callback
	reported         bool
	lastIntersecting bool
}

type viewportObserver struct {
	targets      []*observation
	disconnected bool
}

func (o *viewportObserver) Observe(target Target, cb Callback) error {
	if o.disconnected {
		return ErrObserverDisconnected
	}
	for _, obs := range o.targets {
		if obs.target.ElementID() == target.ElementID() {
			return nil
		}
	}
	o.targets = append(o.targets, &observation{target: target, cb: cb})
	return nil
}

func (o *viewportObserver) Disconnect() {
	o.disconnected = true
	o.targets = nil
}
