package events

// Callback is invoked with the payload passed to Trigger.
type Callback func(payload any)

// ListenerID identifies a registered callback for removal.
type ListenerID int

type listener struct {
	id ListenerID
	fn Callback
}

// Registry is a synchronous pub/sub registry. Callbacks for an event are
// invoked in registration order; triggering an event nobody listens to is a
// no-op, never an error. The registry is single-threaded by contract: it is
// only touched from the UI update loop.
type Registry struct {
	listeners map[Event][]listener
	hooks     []func(Event, any)
	nextID    ListenerID
}

// NewRegistry creates an empty listener registry.
func NewRegistry() *Registry {
	return &Registry{
		listeners: make(map[Event][]listener),
	}
}

// AddListener registers fn for event. Multiple callbacks per event are
// allowed and fire in registration order.
func (r *Registry) AddListener(event Event, fn Callback) ListenerID {
	r.nextID++
	r.listeners[event] = append(r.listeners[event], listener{id: r.nextID, fn: fn})
	return r.nextID
}

// Once registers fn to fire on the next trigger of event only.
func (r *Registry) Once(event Event, fn Callback) ListenerID {
	var id ListenerID
	id = r.AddListener(event, func(payload any) {
		r.RemoveListener(event, id)
		fn(payload)
	})
	return id
}

// RemoveListener deregisters a callback. Unknown ids are a no-op.
func (r *Registry) RemoveListener(event Event, id ListenerID) {
	ls := r.listeners[event]
	for i, l := range ls {
		if l.id == id {
			r.listeners[event] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Trigger invokes every callback registered for event, in order. The listener
// slice is snapshotted first, so callbacks may add or remove listeners without
// corrupting the iteration; additions take effect on the next trigger.
func (r *Registry) Trigger(event Event, payload any) {
	for _, hook := range r.hooks {
		hook(event, payload)
	}

	ls := r.listeners[event]
	if len(ls) == 0 {
		return
	}

	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)

	for _, l := range snapshot {
		l.fn(payload)
	}
}

// OnTrigger registers a hook invoked before every dispatch, for observability.
func (r *Registry) OnTrigger(fn func(Event, any)) {
	r.hooks = append(r.hooks, fn)
}

// ListenerCount reports how many callbacks are registered for event.
func (r *Registry) ListenerCount(event Event) int {
	return len(r.listeners[event])
}
