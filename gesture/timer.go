package gesture

import "time"

// wallTimer wraps time.AfterFunc as a Timer.
type wallTimer struct {
	t *time.Timer
}

func (w *wallTimer) Stop() {
	w.t.Stop()
}

// AfterFuncFactory schedules callbacks with time.AfterFunc. The callback
// runs on a timer goroutine, so this factory is only safe for hosts that
// already serialize access to the dispatcher; event-loop hosts should use
// DeliveredFactory instead.
func AfterFuncFactory(d time.Duration, fn func()) Timer {
	return &wallTimer{t: time.AfterFunc(d, fn)}
}

// DeliveredFactory returns a factory whose expirations are handed to
// deliver instead of being invoked inline. An event-loop host passes a
// deliver that enqueues the callback on its own loop, keeping the
// dispatcher thread-confined.
func DeliveredFactory(deliver func(fn func())) TimerFactory {
	return func(d time.Duration, fn func()) Timer {
		return &wallTimer{t: time.AfterFunc(d, func() { deliver(fn) })}
	}
}
