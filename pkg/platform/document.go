package platform

import "sync"

// Document is the host's element-creation facility.
type Document interface {
	// CreateVideo creates an empty video element with the given options.
	CreateVideo(opts VideoOptions) (*VideoElement, error)

	// CreateSource constructs a media source descriptor. Constructing the
	// descriptor is the expensive step widgets defer; it is not yet bound
	// to any element.
	CreateSource(url, mimeType string) Source
}

// NewDocument returns the default in-process document.
func NewDocument() Document {
	return defaultDocument{}
}

type defaultDocument struct{}

func (defaultDocument) CreateVideo(opts VideoOptions) (*VideoElement, error) {
	return newVideoElement(opts), nil
}

func (defaultDocument) CreateSource(url, mimeType string) Source {
	return NewSource(url, mimeType)
}

var (
	document   Document
	documentMu sync.RWMutex
)

// GetDocument returns the global document, installing the default one on
// first use.
func GetDocument() Document {
	documentMu.RLock()
	d := document
	documentMu.RUnlock()
	if d != nil {
		return d
	}

	documentMu.Lock()
	defer documentMu.Unlock()
	if document == nil {
		document = NewDocument()
	}
	return document
}

// SetDocument installs d as the global document. Pass nil to restore the
// default on next use.
func SetDocument(d Document) {
	documentMu.Lock()
	document = d
	documentMu.Unlock()
}

// NewVideoElement creates a video element outside any document. Custom
// [Document] implementations use it to build their elements.
func NewVideoElement(opts VideoOptions) *VideoElement {
	return newVideoElement(opts)
}
