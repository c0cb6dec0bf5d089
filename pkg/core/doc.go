// Package core provides the stateful widget lifecycle used by lazymedia widgets.
//
// A StatefulWidget is an immutable configuration. Mounting it creates a
// StatefulElement, which owns the widget's State and drives it through an
// explicit lifecycle:
//
//	e := core.Mount(widgets.LazyVideo{SourceURL: "intro.mp4"}) // InitState + first Build
//	e.Update(widgets.LazyVideo{SourceURL: "intro.mp4", Height: "225px"}) // DidUpdateWidget
//	e.Rebuild() // Build, only if marked dirty
//	e.Unmount() // Dispose
//
// InitState runs once per mount, so resources tied to element identity are
// created there rather than in Build.
//
// # State Management
//
// Embed StateBase in your state struct. SetState marks the element dirty;
// OnDispose registers cleanup that runs once, in reverse order, on unmount.
//
// Observable provides thread-safe reactive values:
//
//	visible := core.NewObservable(false)
//	core.UseObservable(s, visible.ReadOnly()) // rebuild on change
//
// Ref holds an object that may not be available yet:
//
//	var placeholder core.Ref[*platform.VideoElement]
//	if el, ok := placeholder.Current(); ok { ... }
//
// # Hooks
//
// UseController and UseObservable manage resources and subscriptions with
// automatic cleanup on disposal.
package core
