package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimer records its callback so tests can fire timeouts deterministically.
type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() { t.stopped = true }

// Fire simulates expiry. A stopped timer never fires, like the real thing.
func (t *fakeTimer) Fire() {
	if !t.stopped {
		t.fn()
	}
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) factory(d time.Duration, fn func()) Timer {
	t := &fakeTimer{delay: d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// last returns the most recently started timer.
func (c *fakeClock) last(t *testing.T) *fakeTimer {
	t.Helper()
	require.NotEmpty(t, c.timers, "expected a timer to have been started")
	return c.timers[len(c.timers)-1]
}

// counter tallies callback invocations by action.
type counter struct {
	main, secondary, manager, submenu int
}

func (c *counter) callbacks() Callbacks {
	return Callbacks{
		MainCommand:      func() { c.main++ },
		SecondaryCommand: func() { c.secondary++ },
		OpenManager:      func() { c.manager++ },
		ShowSubmenu:      func() { c.submenu++ },
	}
}

func newTestDispatcher(m TriggerMap) (*Dispatcher, *counter, *fakeClock) {
	clock := &fakeClock{}
	count := &counter{}
	d := NewDispatcher(func() TriggerMap { return m }, count.callbacks(),
		WithTimerFactory(clock.factory))
	return d, count, clock
}

func TestPlainClickFiresImmediately(t *testing.T) {
	m := TriggerMap{ActionMainCommand: TriggerClick}
	d, count, clock := newTestDispatcher(m)

	d.Press(false)
	assert.Empty(t, clock.timers, "no hold binding, no hold timer")
	d.Release()

	assert.Equal(t, 1, count.main, "main fires exactly once, synchronously on release")
	assert.Equal(t, StateIdle, d.State())
	assert.Empty(t, clock.timers, "no double-click binding, no deferral timer")
}

func TestShiftClickFiresSecondary(t *testing.T) {
	m := TriggerMap{
		ActionMainCommand:      TriggerClick,
		ActionSecondaryCommand: TriggerShiftClick,
	}
	d, count, _ := newTestDispatcher(m)

	d.Press(true)
	d.Release()

	assert.Equal(t, 0, count.main)
	assert.Equal(t, 1, count.secondary)
}

func TestDoubleClickWinsOverPendingClick(t *testing.T) {
	m := TriggerMap{
		ActionMainCommand: TriggerClick,
		ActionShowSubmenu: TriggerDoubleClick,
	}
	d, count, clock := newTestDispatcher(m)

	d.Press(false)
	d.Release()
	assert.Equal(t, 0, count.main, "click is deferred while double-click is possible")
	assert.Equal(t, StateAwaitingDoubleClick, d.State())
	pending := clock.last(t)

	d.Press(false)
	d.DoubleClick()

	assert.Equal(t, 1, count.submenu, "double-click action fires exactly once")
	assert.Equal(t, 0, count.main, "pending single click is discarded")
	assert.True(t, pending.stopped)
	assert.Equal(t, StateIdle, d.State())

	// a dangling expiry after the double click changes nothing
	pending.Fire()
	assert.Equal(t, 0, count.main)

	// the release trailing the double click fires nothing either
	d.Release()
	assert.Equal(t, 1, count.submenu)
	assert.Equal(t, 0, count.main)
}

func TestDeferredClickFiresOnTimeout(t *testing.T) {
	m := TriggerMap{
		ActionMainCommand: TriggerClick,
		ActionShowSubmenu: TriggerDoubleClick,
	}
	d, count, clock := newTestDispatcher(m)

	d.Press(false)
	d.Release()
	clock.last(t).Fire()

	assert.Equal(t, 1, count.main, "the single click wins once the window closes")
	assert.Equal(t, 0, count.submenu)
	assert.Equal(t, StateIdle, d.State())
}

func TestHoldSuppressesClick(t *testing.T) {
	m := TriggerMap{
		ActionMainCommand: TriggerClick,
		ActionOpenManager: TriggerHold,
	}
	d, count, clock := newTestDispatcher(m)

	d.Press(false)
	require.Len(t, clock.timers, 1, "hold binding starts the hold timer")
	clock.timers[0].Fire()
	assert.Equal(t, 1, count.manager, "hold action fires at the threshold")

	d.Release()
	assert.Equal(t, 1, count.manager)
	assert.Equal(t, 0, count.main, "a release after a hold must not also click")
	assert.Equal(t, StateIdle, d.State())
}

func TestReleaseBeforeHoldThreshold(t *testing.T) {
	m := TriggerMap{
		ActionMainCommand: TriggerClick,
		ActionOpenManager: TriggerHold,
	}
	d, count, clock := newTestDispatcher(m)

	d.Press(false)
	holdTimer := clock.timers[0]
	d.Release()

	assert.True(t, holdTimer.stopped, "release cancels the hold timer")
	assert.Equal(t, 1, count.main)
	assert.Equal(t, 0, count.manager)

	// a dangling hold expiry is absorbed
	holdTimer.Fire()
	assert.Equal(t, 0, count.manager)
}

func TestRightClickIsImmediateAndStateless(t *testing.T) {
	m := TriggerMap{ActionOpenManager: TriggerRightClick}
	d, count, _ := newTestDispatcher(m)

	d.RightClick()
	assert.Equal(t, 1, count.manager)
	assert.Equal(t, StateIdle, d.State())

	// mid-gesture right click leaves the left-button machine alone
	d.Press(false)
	d.RightClick()
	assert.Equal(t, 2, count.manager)
	assert.Equal(t, StatePressed, d.State())
	d.Release()
}

func TestUnboundTriggerIsNoOp(t *testing.T) {
	d, count, _ := newTestDispatcher(TriggerMap{})

	d.Press(false)
	d.Release()
	d.RightClick()
	d.DoubleClick()

	assert.Zero(t, count.main+count.secondary+count.manager+count.submenu)
	assert.Equal(t, StateIdle, d.State())
}

func TestCloseCancelsTimersAndPendingAction(t *testing.T) {
	m := TriggerMap{
		ActionMainCommand: TriggerClick,
		ActionOpenManager: TriggerHold,
		ActionShowSubmenu: TriggerDoubleClick,
	}
	d, count, clock := newTestDispatcher(m)

	// press then unbind before release: the hold expiry must not fire
	d.Press(false)
	holdTimer := clock.last(t)
	d.Close()
	holdTimer.Fire()
	d.Release()
	assert.Zero(t, count.main+count.manager+count.submenu)

	// same for a pending deferred click
	d2, count2, clock2 := newTestDispatcher(m)
	d2.Press(false)
	d2.Release()
	pending := clock2.last(t)
	d2.Close()
	pending.Fire()
	assert.Zero(t, count2.main)
}

func TestEventsAfterCloseAreIgnored(t *testing.T) {
	m := TriggerMap{ActionMainCommand: TriggerClick}
	d, count, _ := newTestDispatcher(m)

	d.Close()
	d.Press(false)
	d.Release()
	d.DoubleClick()
	d.RightClick()
	assert.Zero(t, count.main)
}

func TestTriggerMapReReadPerEvent(t *testing.T) {
	m := TriggerMap{ActionMainCommand: TriggerClick}
	clock := &fakeClock{}
	count := &counter{}
	d := NewDispatcher(func() TriggerMap { return m }, count.callbacks(),
		WithTimerFactory(clock.factory))

	d.Press(false)
	// rebinding between press and release takes effect immediately
	m.Set(ActionShowSubmenu, TriggerClick)
	d.Release()

	assert.Equal(t, 0, count.main)
	assert.Equal(t, 1, count.submenu)
}

func TestRepeatedPressesRestartHoldTimer(t *testing.T) {
	m := TriggerMap{ActionOpenManager: TriggerHold}
	d, _, clock := newTestDispatcher(m)

	d.Press(false)
	first := clock.timers[0]
	d.Release()
	d.Press(false)

	require.Len(t, clock.timers, 2)
	assert.True(t, first.stopped, "a new hold timer cancels the previous one")
}

func TestPanickingCallbackLeavesMachineCommitted(t *testing.T) {
	m := TriggerMap{ActionMainCommand: TriggerClick}
	clock := &fakeClock{}
	d := NewDispatcher(func() TriggerMap { return m }, Callbacks{
		MainCommand: func() { panic("command exploded") },
	}, WithTimerFactory(clock.factory))

	d.Press(false)
	assert.Panics(t, func() { d.Release() })

	// the transition was committed before the callback ran
	assert.Equal(t, StateIdle, d.State())

	// and the machine still works for the next gesture
	d.Press(false)
	assert.Equal(t, StatePressed, d.State())
}

func TestRegistryIgnoresUnknownElements(t *testing.T) {
	r := NewRegistry()

	// events for elements nobody bound are dropped, not a crash
	r.Press("ghost", false)
	r.Release("ghost")
	r.DoubleClick("ghost")
	r.RightClick("ghost")

	m := TriggerMap{ActionMainCommand: TriggerClick}
	clock := &fakeClock{}
	count := &counter{}
	r.Bind("btn-0", NewDispatcher(func() TriggerMap { return m }, count.callbacks(),
		WithTimerFactory(clock.factory)))

	r.Press("btn-0", false)
	r.Release("btn-0")
	assert.Equal(t, 1, count.main)

	r.Unbind("btn-0")
	assert.False(t, r.Bound("btn-0"))
	r.Press("btn-0", false)
	r.Release("btn-0")
	assert.Equal(t, 1, count.main, "events after unbind are dropped")
}

func TestRegistryRebindClosesPrevious(t *testing.T) {
	r := NewRegistry()
	m := TriggerMap{
		ActionMainCommand: TriggerClick,
		ActionOpenManager: TriggerHold,
	}
	clock := &fakeClock{}
	count := &counter{}
	factory := func() TriggerMap { return m }

	first := NewDispatcher(factory, count.callbacks(), WithTimerFactory(clock.factory))
	r.Bind("btn", first)
	r.Press("btn", false)
	holdTimer := clock.last(t)

	// rebuilding the view rebinds the key; the old dispatcher's timer dies
	r.Bind("btn", NewDispatcher(factory, count.callbacks(), WithTimerFactory(clock.factory)))
	holdTimer.Fire()
	assert.Zero(t, count.manager)
}
