package event

import "sync"

// Inspector is handed to listeners during dispatch. It is only valid until
// the listener returns.
type Inspector interface {
	// Globals returns the global variables in definition order.
	Globals() ([]Variable, bool)
	// Locals returns the named locals of the innermost active frame.
	Locals() ([]Variable, bool)
	// Pause suspends execution after the current notification.
	Pause() error
	// Stop terminates the run after the current notification.
	Stop() error
}

// Listener receives events of the kinds it was registered for.
type Listener func(Event, Inspector)

// Handle identifies a registration for Unregister.
type Handle struct {
	kind Kind
	id   uint64
}

type subscription struct {
	id uint64
	fn Listener
}

// Registry holds the listeners of one session. The compiler consults it to
// decide which notifications to emit; the VM dispatches through it.
type Registry struct {
	mu     sync.Mutex
	nextID uint64
	subs   [numKinds][]subscription
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds fn as a listener for kind.
func (r *Registry) Register(kind Kind, fn Listener) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.subs[kind] = append(r.subs[kind], subscription{id: r.nextID, fn: fn})
	return Handle{kind: kind, id: r.nextID}
}

// Unregister removes a registration. It reports whether h was registered.
func (r *Registry) Unregister(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := r.subs[h.kind]
	for i, s := range subs {
		if s.id == h.id {
			r.subs[h.kind] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether at least one listener is registered for kind. A nil
// registry has no listeners.
func (r *Registry) Has(kind Kind) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs[kind]) > 0
}

// Dispatch delivers ev to the listeners of its kind in registration order.
func (r *Registry) Dispatch(ev Event, in Inspector) {
	if r == nil {
		return
	}
	r.mu.Lock()
	subs := r.subs[ev.Kind()]
	r.mu.Unlock()
	for _, s := range subs {
		s.fn(ev, in)
	}
}

// On registers a typed listener for events of type E.
func On[E Event](r *Registry, fn func(E, Inspector)) Handle {
	var zero E
	return r.Register(zero.Kind(), func(ev Event, in Inspector) {
		if e, ok := ev.(E); ok {
			fn(e, in)
		}
	})
}
