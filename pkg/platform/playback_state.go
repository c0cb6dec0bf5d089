package platform

// PlaybackState represents the lifecycle of a media element's resource.
// A placeholder starts Idle; attaching a source moves it to Buffering, which
// is the moment the resource fetch begins.
type PlaybackState int

const (
	// PlaybackStateIdle indicates the element exists but has no source, so
	// nothing has been fetched.
	PlaybackStateIdle PlaybackState = iota

	// PlaybackStateBuffering indicates a source is attached and the host is
	// fetching media data.
	PlaybackStateBuffering
)

// String returns a human-readable label for the playback state.
func (s PlaybackState) String() string {
	switch s {
	case PlaybackStateIdle:
		return "Idle"
	case PlaybackStateBuffering:
		return "Buffering"
	default:
		return "Unknown"
	}
}
