package block

// Emitter is an ordered list of change listeners.
// The zero value is ready to use.
type Emitter struct {
	next      int
	listeners []listener
}

type listener struct {
	id int
	fn func()
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (e *Emitter) Subscribe(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	e.next++
	id := e.next
	e.listeners = append(e.listeners, listener{id: id, fn: fn})
	return func() { e.remove(id) }
}

func (e *Emitter) remove(id int) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return
		}
	}
}

// Emit calls every listener in subscription order.
// Listeners added or removed during Emit take effect on the next call.
func (e *Emitter) Emit() {
	if len(e.listeners) == 0 {
		return
	}
	snapshot := make([]listener, len(e.listeners))
	copy(snapshot, e.listeners)
	for _, l := range snapshot {
		l.fn()
	}
}

// Len returns the number of registered listeners.
func (e *Emitter) Len() int { return len(e.listeners) }
