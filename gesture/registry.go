package gesture

// Registry routes element-keyed pointer events to live dispatchers.
// Events for elements with no dispatcher are dropped: a stray event after
// an unbind is normal during UI rebuilds, not an error.
type Registry struct {
	dispatchers map[string]*Dispatcher
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{dispatchers: make(map[string]*Dispatcher)}
}

// Bind installs the dispatcher for an element key, closing any previous
// one bound to the same key.
func (r *Registry) Bind(key string, d *Dispatcher) {
	if old, ok := r.dispatchers[key]; ok {
		old.Close()
	}
	r.dispatchers[key] = d
}

// Unbind closes and removes the element's dispatcher. Timers die with it;
// no action fires afterward.
func (r *Registry) Unbind(key string) {
	if d, ok := r.dispatchers[key]; ok {
		d.Close()
		delete(r.dispatchers, key)
	}
}

// UnbindAll closes every dispatcher, e.g. before rebuilding a view.
func (r *Registry) UnbindAll() {
	for key, d := range r.dispatchers {
		d.Close()
		delete(r.dispatchers, key)
	}
}

// Bound reports whether an element has a live dispatcher.
func (r *Registry) Bound(key string) bool {
	_, ok := r.dispatchers[key]
	return ok
}

// Press forwards a press event to the element's dispatcher, if any.
func (r *Registry) Press(key string, shift bool) {
	if d, ok := r.dispatchers[key]; ok {
		d.Press(shift)
	}
}

// Release forwards a release event to the element's dispatcher, if any.
func (r *Registry) Release(key string) {
	if d, ok := r.dispatchers[key]; ok {
		d.Release()
	}
}

// DoubleClick forwards a double-click event to the element's dispatcher, if any.
func (r *Registry) DoubleClick(key string) {
	if d, ok := r.dispatchers[key]; ok {
		d.DoubleClick()
	}
}

// RightClick forwards a right-click event to the element's dispatcher, if any.
func (r *Registry) RightClick(key string) {
	if d, ok := r.dispatchers[key]; ok {
		d.RightClick()
	}
}
