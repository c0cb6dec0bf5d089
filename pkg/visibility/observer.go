package visibility

import (
	"sync"

	"github.com/go-drift/lazymedia/pkg/rendering"
)

// Target is an element that can be observed for viewport intersection.
type Target interface {
	ElementID() string
}

// Entry reports the intersection of one target with the observation root at
// the moment the entry was produced.
type Entry struct {
	Target            Target
	IntersectionRatio float64
	IsIntersecting    bool
	BoundingRect      rendering.Rect
	IntersectionRect  rendering.Rect
	RootBounds        rendering.Rect
}

// Callback receives batches of entries. Implementations deliver batches on
// the UI thread.
type Callback func(entries []Entry)

// Observer is a viewport-intersection observation. A single Observer serves a
// single trigger; Disconnect stops all delivery and may be called any number
// of times.
type Observer interface {
	Observe(target Target, cb Callback) error
	Disconnect()
}

// ObserverFactory creates a fresh Observer.
type ObserverFactory func() Observer

var (
	defaultFactory   ObserverFactory
	defaultFactoryMu sync.RWMutex
)

// DefaultObserverFactory returns the process-wide observer factory installed
// by the host, or nil if none is installed.
func DefaultObserverFactory() ObserverFactory {
	defaultFactoryMu.RLock()
	defer defaultFactoryMu.RUnlock()
	return defaultFactory
}

// SetDefaultObserverFactory installs the process-wide observer factory.
// Pass nil to uninstall it.
func SetDefaultObserverFactory(f ObserverFactory) {
	defaultFactoryMu.Lock()
	defaultFactory = f
	defaultFactoryMu.Unlock()
}
