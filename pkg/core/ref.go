package core

// Ref is a mutable slot for an object that may not exist yet, such as the
// element produced by a widget's first mount. The zero Ref is unresolved.
type Ref[T any] struct {
	current  T
	resolved bool
}

// Current returns the referenced value and whether it has been resolved.
func (r *Ref[T]) Current() (T, bool) {
	return r.current, r.resolved
}

// Set resolves the reference. Setting a ref does not notify anyone; holders
// that captured it earlier must read it again.
func (r *Ref[T]) Set(v T) {
	r.current = v
	r.resolved = true
}

// Clear returns the ref to the unresolved state.
func (r *Ref[T]) Clear() {
	var zero T
	r.current = zero
	r.resolved = false
}

// IsResolved reports whether Set has been called since the last Clear.
func (r *Ref[T]) IsResolved() bool {
	return r.resolved
}
