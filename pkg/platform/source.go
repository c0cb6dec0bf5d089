package platform

import "strings"

// DefaultMimeType is used when a source does not name its type.
const DefaultMimeType = "video/mp4"

// Source describes a media resource. Attaching a Source to a [VideoElement]
// is what makes the host start fetching it, so widgets construct one only
// when they actually want the bytes.
type Source struct {
	URL      string
	MimeType string
}

// NewSource returns a Source for url, defaulting mimeType to [DefaultMimeType].
func NewSource(url, mimeType string) Source {
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = DefaultMimeType
	}
	return Source{URL: url, MimeType: mimeType}
}

// IsZero reports whether s is the zero Source.
func (s Source) IsZero() bool {
	return s.URL == "" && s.MimeType == ""
}
