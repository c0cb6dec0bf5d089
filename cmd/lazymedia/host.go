package main

import (
	"fmt"

	"github.com/go-drift/lazymedia/cmd/lazymedia/internal/config"
	"github.com/go-drift/lazymedia/pkg/core"
	"github.com/go-drift/lazymedia/pkg/errors"
	"github.com/go-drift/lazymedia/pkg/platform"
	"github.com/go-drift/lazymedia/pkg/rendering"
	"github.com/go-drift/lazymedia/pkg/visibility"
	"github.com/go-drift/lazymedia/pkg/widgets"
)

// host mounts the videos of a page against a simulated viewport.
type host struct {
	page     *config.Resolved
	viewport *visibility.Viewport
	players  []*player
}

type player struct {
	video     config.VideoConfig
	element   *core.StatefulElement
	visibleAt float64
}

func (p *player) handle() widgets.LazyVideoHandle {
	h, _ := p.element.State().(widgets.LazyVideoHandle)
	return h
}

// loadPage resolves a page file and reports a bad page as a config error.
func loadPage(path string) (*config.Resolved, error) {
	page, err := config.Resolve(path)
	if err != nil {
		errors.Report(&errors.DriftError{
			Op:   "lazymedia.loadPage",
			Kind: errors.KindConfig,
			Err:  err,
		})
		return nil, err
	}
	return page, nil
}

// mountPage installs a document and the viewport's observer facility, then
// mounts one LazyVideo per video and lays its placeholder out at the video's
// offset. Call close to release the players and the globals.
func mountPage(page *config.Resolved) *host {
	vp := visibility.NewViewport(rendering.Size{Width: page.ViewportWidth, Height: page.ViewportHeight})
	platform.SetDocument(platform.NewDocument())
	visibility.SetDefaultObserverFactory(vp.NewObserver)

	h := &host{page: page, viewport: vp}
	for _, v := range page.Videos {
		el := core.Mount(widgets.LazyVideo{
			SourceURL:    v.Src,
			MimeType:     v.Type,
			Height:       v.Height,
			AutoPlay:     v.AutoPlay,
			HideControls: v.HideControls,
		})
		p := &player{video: v, element: el, visibleAt: -1}
		if target, ok := p.handle().Placeholder(); ok {
			vp.Layout(target, rendering.RectFromLTWH(0, v.Top, page.ViewportWidth, v.PixelHeight()))
		}
		h.players = append(h.players, p)
	}
	return h
}

// rebuild pumps every player with a pending rebuild.
func (h *host) rebuild() {
	for _, p := range h.players {
		p.element.Rebuild()
	}
}

// node wraps the players' output in a page container.
func (h *host) node() rendering.Node {
	root := rendering.Node{
		Tag:   "main",
		Attrs: []rendering.Attr{{Name: "data-site", Value: h.page.SiteName}},
	}
	for _, p := range h.players {
		root.Children = append(root.Children, p.element.Node())
	}
	return root
}

func (h *host) close() {
	for _, p := range h.players {
		p.element.Unmount()
	}
	visibility.SetDefaultObserverFactory(nil)
	platform.SetDocument(nil)
}

func formatPixels(v float64) string {
	return fmt.Sprintf("%gpx", v)
}
