package core

// Disposable is implemented by controllers that hold resources until disposed.
type Disposable interface {
	Dispose()
}

// UseController creates a controller and registers it for automatic disposal.
// The controller will be disposed when the state is disposed.
//
//	func (s *myState) InitState() {
//	    s.trigger = core.UseController(s, func() *visibility.Trigger {
//	        return visibility.NewTrigger(visibility.DefaultObserverFactory())
//	    })
//	}
func UseController[C Disposable](s stateBase, create func() C) C {
	base := s.state()
	controller := create()
	base.OnDispose(func() {
		controller.Dispose()
	})
	return controller
}

// UseObservable subscribes to an observable and triggers rebuilds when it changes.
// Call this once in InitState(), not in Build(). The subscription is automatically
// cleaned up when the state is disposed.
func UseObservable[T comparable](s stateBase, obs ReadOnlyObservable[T]) {
	base := s.state()
	unsub := obs.AddListener(func(T) {
		base.SetState(nil)
	})
	base.OnDispose(unsub)
}
