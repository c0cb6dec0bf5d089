package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/go-drift/lazymedia/cmd/lazymedia/internal/config"
	"github.com/go-drift/lazymedia/pkg/errors"
)

const testPage = `
site:
  name: handbook
viewport:
  width: 800
  height: 600
videos:
  - src: /video/intro.mp4
    top: 100
  - src: /video/demo.webm
    type: video/webm
    height: 225px
    top: 1600
  - src: /video/outro.mp4
    top: 3000
`

func writePage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { errors.SetHandler(nil) })

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderPrintsPlaceholdersWithoutSources(t *testing.T) {
	out, err := runCLI(t, "render", writePage(t, testPage))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<main data-site="handbook">`), out)
	assert.Equal(t, 3, strings.Count(out, "<video "))
	assert.Contains(t, out, `style="height: 225px"`)
	assert.NotContains(t, out, "<source")
}

func TestRenderRejectsInvalidPage(t *testing.T) {
	_, err := runCLI(t, "render", writePage(t, "videos:\n  - top: 1\n"))
	assert.ErrorContains(t, err, "src is required")
}

func TestSimulatePrintsTable(t *testing.T) {
	out, err := runCLI(t, "simulate", "--step", "100", writePage(t, testPage))
	require.NoError(t, err)

	assert.Contains(t, out, "VISIBLE AT")
	assert.Contains(t, out, "/video/demo.webm")
	assert.Contains(t, out, "video/webm")
	assert.Contains(t, out, "Buffering")
	assert.NotContains(t, out, "Idle")
	assert.NotContains(t, out, "never")
}

func TestSimulateRejectsInvalidStep(t *testing.T) {
	for _, step := range []string{"0", "-50", "NaN", "+Inf", "-Inf"} {
		_, err := runCLI(t, "simulate", "--step", step, writePage(t, testPage))
		assert.ErrorContains(t, err, "--step must be a finite positive number", "step %s", step)
	}
}

type configRecorder struct {
	errs []*errors.DriftError
}

func (r *configRecorder) HandleError(err *errors.DriftError)  { r.errs = append(r.errs, err) }
func (r *configRecorder) HandlePanic(*errors.PanicError)      {}
func (r *configRecorder) HandleBuildError(*errors.BuildError) {}

func TestLoadPageReportsConfigError(t *testing.T) {
	rec := &configRecorder{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	_, err := loadPage(writePage(t, "videos:\n  - src: a.mp4\n    top: -5\n"))
	require.Error(t, err)

	require.Len(t, rec.errs, 1)
	assert.Equal(t, errors.KindConfig, rec.errs[0].Kind)
	assert.Equal(t, "lazymedia.loadPage", rec.errs[0].Op)
	assert.ErrorIs(t, rec.errs[0], err)

	page, err := loadPage(writePage(t, testPage))
	require.NoError(t, err)
	assert.Len(t, page.Videos, 3)
	assert.Len(t, rec.errs, 1)
}

func TestSimulateScrollMaterializesInOrder(t *testing.T) {
	page, err := config.Resolve(writePage(t, testPage))
	require.NoError(t, err)

	obsCore, logs := observer.New(zap.InfoLevel)
	h := mountPage(page)
	defer h.close()

	simulateScroll(h, 200, zap.New(obsCore))

	// Viewport bottom must pass each top edge before the video counts as visible.
	assert.Equal(t, 0.0, h.players[0].visibleAt)
	assert.Equal(t, 1200.0, h.players[1].visibleAt)
	assert.Equal(t, 2550.0, h.players[2].visibleAt, "last step is clamped to the page end")

	entries := logs.FilterMessage("materialized video source").All()
	require.Len(t, entries, 3)
	assert.Equal(t, "/video/intro.mp4", entries[0].ContextMap()["src"])
	assert.Equal(t, "/video/outro.mp4", entries[2].ContextMap()["src"])

	for _, p := range h.players {
		src, ok := p.handle().Source()
		require.True(t, ok)
		assert.Equal(t, p.video.Src, src.URL)
	}
	assert.Equal(t, 0, h.viewport.Observing())
}

func TestSimulateShortPageStopsAtTop(t *testing.T) {
	page, err := config.Resolve(writePage(t, "viewport:\n  height: 600\nvideos:\n  - src: a.mp4\n    top: 700\n"))
	require.NoError(t, err)

	h := mountPage(page)
	defer h.close()
	simulateScroll(h, 500, zap.NewNop())

	// Document height is 850, so scrolling stops at 250 after the first step.
	assert.Equal(t, 250.0, h.players[0].visibleAt)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lazymedia version "+Version)
}
