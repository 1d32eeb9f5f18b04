package gesture

import "time"

const (
	// DefaultHoldThreshold is how long a press must last to count as a hold
	DefaultHoldThreshold = 300 * time.Millisecond
	// DefaultDoubleClickDelay is the window in which a second click can
	// upgrade a single click
	DefaultDoubleClickDelay = 200 * time.Millisecond
)

// State is the dispatcher's position in a gesture.
type State int

const (
	StateIdle State = iota
	StatePressed
	StateAwaitingDoubleClick
)

// Callbacks are the four externally-supplied action handlers. The
// dispatcher decides which one fires and when; what the handler does is
// the host's business. Nil entries are skipped.
type Callbacks struct {
	MainCommand      func()
	SecondaryCommand func()
	OpenManager      func()
	ShowSubmenu      func()
}

func (c Callbacks) invoke(action Action) {
	var fn func()
	switch action {
	case ActionMainCommand:
		fn = c.MainCommand
	case ActionSecondaryCommand:
		fn = c.SecondaryCommand
	case ActionOpenManager:
		fn = c.OpenManager
	case ActionShowSubmenu:
		fn = c.ShowSubmenu
	}
	if fn != nil {
		fn()
	}
}

// Timer is a cancelable single-shot timer handle.
type Timer interface {
	Stop()
}

// TimerFactory schedules fn to run once after d. Implementations must
// deliver fn on the goroutine that owns the dispatcher; the dispatcher
// itself is thread-confined.
type TimerFactory func(d time.Duration, fn func()) Timer

// Dispatcher classifies the raw pointer events of one interactive element
// into at most one logical action per gesture. The trigger map is
// re-read through the provider on every event, so rebinding takes effect
// mid-session. All state is committed before an action callback runs: a
// callback that panics or blocks cannot leave the machine mid-transition.
type Dispatcher struct {
	triggers  func() TriggerMap
	callbacks Callbacks
	newTimer  TimerFactory

	holdThreshold    time.Duration
	doubleClickDelay time.Duration

	state   State
	closed  bool
	shift   bool
	held    bool
	doubled bool
	pending Action

	holdTimer  Timer
	holdSeq    int
	clickTimer Timer
	clickSeq   int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimings overrides the hold threshold and double-click window.
func WithTimings(hold, doubleClick time.Duration) Option {
	return func(d *Dispatcher) {
		d.holdThreshold = hold
		d.doubleClickDelay = doubleClick
	}
}

// WithTimerFactory injects the timer implementation, letting tests fire
// timeouts deterministically.
func WithTimerFactory(f TimerFactory) Option {
	return func(d *Dispatcher) { d.newTimer = f }
}

// NewDispatcher creates a dispatcher for one element. triggers is called
// on every event for the current map snapshot.
func NewDispatcher(triggers func() TriggerMap, callbacks Callbacks, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		triggers:         triggers,
		callbacks:        callbacks,
		newTimer:         AfterFuncFactory,
		holdThreshold:    DefaultHoldThreshold,
		doubleClickDelay: DefaultDoubleClickDelay,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns the current gesture state.
func (d *Dispatcher) State() State {
	return d.state
}

// Press begins a gesture. The hold timer only runs when some action is
// actually bound to the hold trigger.
func (d *Dispatcher) Press(shift bool) {
	if d.closed {
		return
	}

	d.shift = shift
	d.held = false
	d.doubled = false
	d.state = StatePressed

	d.stopHoldTimer()
	if _, ok := d.triggers().ActionFor(TriggerHold); ok {
		seq := d.holdSeq
		d.holdTimer = d.newTimer(d.holdThreshold, func() { d.holdTimeout(seq) })
	}
}

// holdTimeout fires when the pointer has stayed down past the threshold.
func (d *Dispatcher) holdTimeout(seq int) {
	if d.closed || seq != d.holdSeq || d.state != StatePressed {
		return
	}

	d.held = true
	action, ok := d.triggers().ActionFor(TriggerHold)
	if !ok {
		return
	}
	d.callbacks.invoke(action)
}

// Release ends the press phase. A release after a hold or double-click
// fires nothing; otherwise the click resolves to its action, deferred
// only when the map binds double-click at all.
func (d *Dispatcher) Release() {
	if d.closed {
		return
	}

	d.stopHoldTimer()

	if d.state != StatePressed {
		return
	}
	if d.held || d.doubled {
		d.state = StateIdle
		return
	}

	trigger := TriggerClick
	if d.shift {
		trigger = TriggerShiftClick
	}

	m := d.triggers()
	action, ok := m.ActionFor(trigger)
	if !ok {
		d.state = StateIdle
		return
	}

	if m.UsesDoubleClick() {
		// Defer so a second click can still win; without a double-click
		// binding the click must feel instantaneous
		d.stopClickTimer()
		d.pending = action
		d.state = StateAwaitingDoubleClick
		seq := d.clickSeq
		d.clickTimer = d.newTimer(d.doubleClickDelay, func() { d.clickTimeout(seq) })
		return
	}

	d.state = StateIdle
	d.callbacks.invoke(action)
}

// clickTimeout fires when no second click arrived in the window.
func (d *Dispatcher) clickTimeout(seq int) {
	if d.closed || seq != d.clickSeq || d.state != StateAwaitingDoubleClick {
		return
	}

	action := d.pending
	d.pending = ""
	d.state = StateIdle
	if action != "" {
		d.callbacks.invoke(action)
	}
}

// DoubleClick resolves a second click: the pending single-click action is
// discarded and the double-click action fires instead.
func (d *Dispatcher) DoubleClick() {
	if d.closed {
		return
	}

	d.doubled = true
	d.stopClickTimer()
	d.pending = ""
	d.state = StateIdle

	action, ok := d.triggers().ActionFor(TriggerDoubleClick)
	if !ok {
		return
	}
	d.callbacks.invoke(action)
}

// RightClick is immediate and independent of the press/release machine.
func (d *Dispatcher) RightClick() {
	if d.closed {
		return
	}

	action, ok := d.triggers().ActionFor(TriggerRightClick)
	if !ok {
		return
	}
	d.callbacks.invoke(action)
}

// Close unbinds the dispatcher: both timers are cancelled, the pending
// action is discarded, and every later event or timer firing is a no-op.
func (d *Dispatcher) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.stopHoldTimer()
	d.stopClickTimer()
	d.pending = ""
	d.state = StateIdle
}

func (d *Dispatcher) stopHoldTimer() {
	d.holdSeq++
	if d.holdTimer != nil {
		d.holdTimer.Stop()
		d.holdTimer = nil
	}
}

func (d *Dispatcher) stopClickTimer() {
	d.clickSeq++
	if d.clickTimer != nil {
		d.clickTimer.Stop()
		d.clickTimer = nil
	}
}
