// Package testing provides synthetic host facilities for testing lazymedia
// widgets and triggers.
//
// # Quick Start
//
// Create a tester, pump a widget, and inject intersection entries:
//
//	func TestLazyVideo(t *testing.T) {
//	    tester := drifttest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})
//
//	    tester.Observers().Last().Emit(0.5)
//	    tester.Pump()
//
//	    if len(tester.RenderedSources()) != 1 {
//	        t.Error("expected one source after the first visible entry")
//	    }
//	}
//
// FakeObserver can also be used on its own with visibility.NewTrigger.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drifttest "github.com/go-drift/lazymedia/pkg/testing"
package testing
