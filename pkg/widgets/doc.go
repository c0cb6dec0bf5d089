// Package widgets provides media widgets that defer network work until the
// reader can see them.
//
// LazyVideo mounts a player placeholder immediately and binds it to a
// visibility.Trigger. The media source is constructed and attached only when
// the placeholder first intersects the viewport; after that the player keeps
// its source for the rest of its lifetime, regardless of later scrolling.
//
//	el := core.Mount(widgets.LazyVideo{SourceURL: "/video/intro.mp4", Height: "225px"})
//	defer el.Unmount()
//
// The host installs the intersection facility with
// visibility.SetDefaultObserverFactory and the element factory with
// platform.SetDocument before mounting.
package widgets
