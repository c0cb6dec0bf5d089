package widgets_test

import (
	"testing"

	crdb "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/lazymedia/pkg/errors"
	"github.com/go-drift/lazymedia/pkg/platform"
	drifttest "github.com/go-drift/lazymedia/pkg/testing"
	"github.com/go-drift/lazymedia/pkg/visibility"
	"github.com/go-drift/lazymedia/pkg/widgets"
)

type reportRecorder struct {
	errs []*errors.DriftError
}

func (r *reportRecorder) HandleError(err *errors.DriftError)  { r.errs = append(r.errs, err) }
func (r *reportRecorder) HandlePanic(*errors.PanicError)      {}
func (r *reportRecorder) HandleBuildError(*errors.BuildError) {}

func recordReports(t *testing.T) *reportRecorder {
	t.Helper()
	rec := &reportRecorder{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return rec
}

func handle(t *testing.T, tester *drifttest.WidgetTester) widgets.LazyVideoHandle {
	t.Helper()
	h, ok := tester.Element().State().(widgets.LazyVideoHandle)
	require.True(t, ok, "LazyVideo state should implement LazyVideoHandle")
	return h
}

func TestLazyVideo_NoEventsNoSource(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})
	tester.Pump()

	assert.Empty(t, tester.RenderedSources())
	assert.Empty(t, tester.Document().Sources())
	require.Len(t, tester.Document().Videos(), 1)
	assert.Equal(t, platform.PlaybackStateIdle, tester.Document().Videos()[0].State())
	assert.Equal(t, visibility.PhaseObserving, handle(t, tester).Phase())
}

func TestLazyVideo_FirstVisibleEntryMaterializesSource(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})

	obs := tester.Observers().Last()
	require.NotNil(t, obs)
	obs.Emit(0.5)
	tester.Pump()

	h := handle(t, tester)
	assert.True(t, h.Visible())

	sources := tester.RenderedSources()
	require.Len(t, sources, 1)
	src, _ := sources[0].Attr("src")
	typ, _ := sources[0].Attr("type")
	assert.Equal(t, "a.mp4", src)
	assert.Equal(t, "video/mp4", typ)

	require.Len(t, tester.Document().Sources(), 1)
	assert.Equal(t, platform.PlaybackStateBuffering, tester.Document().Videos()[0].State())
}

func TestLazyVideo_RepeatedEntriesCreateOneSource(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})

	obs := tester.Observers().Last()
	obs.Emit(1.0)
	assert.Equal(t, 1, obs.Disconnects(), "observer should disconnect after the first visible entry")
	obs.Emit(1.0)
	tester.Pump()

	assert.Len(t, tester.Document().Sources(), 1)
	assert.Len(t, tester.RenderedSources(), 1)
	assert.Equal(t, 1, obs.Disconnects())
}

func TestLazyVideo_UnresolvedTargetNeverObserves(t *testing.T) {
	rec := recordReports(t)
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.Document().CreateVideoErr = crdb.New("no media support")

	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})

	h := handle(t, tester)
	assert.Equal(t, visibility.PhaseUnobserved, h.Phase())
	assert.Empty(t, tester.Observers().Observers(), "no observer should be created for an unresolved target")

	// The placeholder failure is reported; the skipped attach is not.
	require.Len(t, rec.errs, 1)
	assert.Equal(t, "widgets.LazyVideo.mount", rec.errs[0].Op)

	// Rebuilding after the host recovers does not start observation.
	tester.Document().CreateVideoErr = nil
	tester.Update(widgets.LazyVideo{SourceURL: "a.mp4", Height: "225px"})
	assert.Equal(t, visibility.PhaseUnobserved, h.Phase())
	assert.Empty(t, tester.Observers().Observers())
	assert.Equal(t, "video", tester.Node().Tag)
}

func TestLazyVideo_RebuildsBeforeVisibleDoNotFetch(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})

	for i := 0; i < 5; i++ {
		tester.Element().MarkNeedsBuild()
		tester.Pump()
		obs := tester.Observers().Last()
		obs.Emit(0)
	}

	assert.Empty(t, tester.RenderedSources())
	assert.Empty(t, tester.Document().Sources())
	assert.Len(t, tester.Observers().Observers(), 1, "rebuilds must not create new observers")
}

func TestLazyVideo_TeardownBeforeVisible(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})
	obs := tester.Observers().Last()

	tester.Unmount()
	assert.Equal(t, 1, obs.Disconnects())

	obs.Emit(1.0)
	assert.Empty(t, tester.Document().Sources(), "no source may be created after teardown")
	assert.True(t, tester.Document().Videos()[0].Disposed())
}

func TestLazyVideo_TeardownAfterVisibleDoesNotDisconnectTwice(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})
	obs := tester.Observers().Last()
	obs.Emit(0.1)

	tester.Unmount()

	assert.Equal(t, 1, obs.Disconnects())
	assert.True(t, handle(t, tester).Visible(), "visible value persists after teardown")
}

func TestLazyVideo_OptionsPassThrough(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.webm", MimeType: "video/webm", Height: "225px", AutoPlay: true})

	node := tester.Node()
	assert.True(t, node.HasAttr("autoplay"))
	assert.True(t, node.HasAttr("controls"))
	style, _ := node.Attr("style")
	assert.Equal(t, "height: 225px", style)

	tester.Update(widgets.LazyVideo{SourceURL: "a.webm", MimeType: "video/webm", HideControls: true})
	assert.False(t, tester.Node().HasAttr("controls"))
	assert.False(t, tester.Node().HasAttr("autoplay"))

	tester.Observers().Last().Emit(0.3)
	tester.Pump()
	typ, _ := tester.RenderedSources()[0].Attr("type")
	assert.Equal(t, "video/webm", typ)
}

func TestLazyVideo_SourceChangeBeforeVisibleIsHonoured(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})
	tester.Update(widgets.LazyVideo{SourceURL: "b.mp4"})

	tester.Observers().Last().Emit(1)
	tester.Pump()

	src, ok := handle(t, tester).Source()
	require.True(t, ok)
	assert.Equal(t, "b.mp4", src.URL)

	// After visibility the source is fixed for the widget's lifetime.
	tester.Update(widgets.LazyVideo{SourceURL: "c.mp4"})
	src, _ = handle(t, tester).Source()
	assert.Equal(t, "b.mp4", src.URL)
	assert.Len(t, tester.Document().Sources(), 1)
}

func TestLazyVideo_ObserveFailureIsReported(t *testing.T) {
	rec := recordReports(t)
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.Observers().ObserveErr = crdb.New("intersection observer unsupported")

	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})

	require.Len(t, rec.errs, 1)
	assert.Equal(t, "widgets.LazyVideo.initialize", rec.errs[0].Op)
	assert.Equal(t, errors.KindPlatform, rec.errs[0].Kind)
	assert.Equal(t, tester.Document().Videos()[0].ElementID(), rec.errs[0].Element)
	assert.Equal(t, visibility.PhaseUnobserved, handle(t, tester).Phase())
	assert.Empty(t, tester.RenderedSources())
}

func TestLazyVideo_NoObserverFactoryIsReported(t *testing.T) {
	rec := recordReports(t)
	tester := drifttest.NewWidgetTesterWithT(t)
	visibility.SetDefaultObserverFactory(nil)

	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})

	require.Len(t, rec.errs, 1)
	assert.True(t, crdb.Is(rec.errs[0], visibility.ErrNoObserver))
}

func TestLazyVideo_FailedAttachLeavesNoSource(t *testing.T) {
	rec := recordReports(t)
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})

	el := tester.Document().Videos()[0]
	el.Dispose()
	tester.Observers().Last().Emit(1)
	tester.Pump()

	_, ok := handle(t, tester).Source()
	assert.False(t, ok, "a source that never reached the element is not materialized")
	assert.True(t, handle(t, tester).Visible())
	assert.Empty(t, tester.RenderedSources())

	require.Len(t, rec.errs, 1)
	assert.Equal(t, "widgets.LazyVideo.materialize", rec.errs[0].Op)
	assert.True(t, crdb.Is(rec.errs[0], platform.ErrDisposed))
	assert.Equal(t, el.ElementID(), rec.errs[0].Element)
}

func TestLazyVideo_TriggerDisposedWithState(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazyVideo{SourceURL: "a.mp4"})
	h := handle(t, tester)

	tester.Unmount()

	assert.Equal(t, visibility.PhaseDisposed, h.Phase())
	assert.True(t, tester.Document().Videos()[0].Disposed())
}
