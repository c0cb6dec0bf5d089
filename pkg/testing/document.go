package testing

import "github.com/go-drift/lazymedia/pkg/platform"

// CountingDocument is a platform.Document that records what it creates.
type CountingDocument struct {
	videos  []*platform.VideoElement
	sources []platform.Source

	// CreateVideoErr, if set, makes CreateVideo fail.
	CreateVideoErr error
}

// NewCountingDocument creates an empty CountingDocument.
func NewCountingDocument() *CountingDocument {
	return &CountingDocument{}
}

// CreateVideo implements platform.Document.
func (d *CountingDocument) CreateVideo(opts platform.VideoOptions) (*platform.VideoElement, error) {
	if d.CreateVideoErr != nil {
		return nil, d.CreateVideoErr
	}
	el := platform.NewVideoElement(opts)
	d.videos = append(d.videos, el)
	return el, nil
}

// CreateSource implements platform.Document.
func (d *CountingDocument) CreateSource(url, mimeType string) platform.Source {
	src := platform.NewSource(url, mimeType)
	d.sources = append(d.sources, src)
	return src
}

// Videos returns every video element created so far.
func (d *CountingDocument) Videos() []*platform.VideoElement {
	return d.videos
}

// Sources returns every source descriptor constructed so far.
func (d *CountingDocument) Sources() []platform.Source {
	return d.sources
}
