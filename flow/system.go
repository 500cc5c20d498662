package flow

import (
	"sync/atomic"
	"weak"
)

// Message is whatever a system's run returns, or whatever the
// dispatcher publishes into a subscribed system's input: the value
// passed to Dispatcher.Subscribe for that system, published unchanged
// on every Dispatch, or a value returned by a parent system. The
// dispatcher does not resolve queries itself. Systems must not retain
// a message past their Run call.
type Message = any

// RunFunc is a system's processing unit: given the world and the
// message for this tick, return the value to forward to children, or
// an error to stop the system.
type RunFunc[W any] func(world *W, sys *System[W], msg Message) (Message, error)

// System is one node in the dataflow graph: a bounded input channel, a
// Run function, and the children its non-nil results are forwarded to.
type System[W any] struct {
	id       string
	run      RunFunc[W]
	input    chan Message
	active   atomic.Bool
	children []*System[W]
	world    weak.Pointer[W]
	disp     *Dispatcher[W]
	closeOne atomicOnce
}

// NewSystem returns a System identified by id, with a bounded input
// channel of the given capacity.
func NewSystem[W any](id string, capacity int, run RunFunc[W]) *System[W] {
	return &System[W]{
		id:    id,
		run:   run,
		input: make(chan Message, capacity),
	}
}

// ID returns the system's identifier, used in error messages and logs.
func (s *System[W]) ID() string { return s.id }

// Active reports whether the system's task is currently running.
func (s *System[W]) Active() bool { return s.active.Load() }

// Children returns the systems this system forwards non-nil results
// to, in listen_to order.
func (s *System[W]) Children() []*System[W] {
	return append([]*System[W](nil), s.children...)
}

// Stop clears active and closes the input channel; in-flight Run
// calls complete or fail naturally.
func (s *System[W]) Stop() {
	s.active.Store(false)
	s.closeOne.Do(func() { close(s.input) })
}

// loop is the system's cooperative task: it keeps pulling one message
// at a time, running it, forwarding a non-nil result to every child,
// and checking in with the dispatcher's tick barrier, for as long as
// the system stays alive. It only stops when its input channel is
// closed, its world reference is gone, or run returns an error.
func (s *System[W]) loop(d *Dispatcher[W]) {
	defer func() {
		// Wake any Blocker: with one system fewer, the systems that
		// already checked in may now complete the tick, or none is live.
		d.condMu.Lock()
		d.live.Add(-1)
		if d.doneCount > 0 && d.doneCount >= d.liveCount() {
			d.doneCount = 0
			d.tickGen++
		}
		d.cond.Broadcast()
		d.condMu.Unlock()
	}()

	for {
		msg, ok := <-s.input
		if !ok {
			s.active.Store(false)
			return
		}

		w := s.world.Value()
		if w == nil {
			s.active.Store(false)
			return
		}

		result, err := s.run(w, s, msg)
		if err != nil {
			s.active.Store(false)
			d.OnSystemError(SystemRunError{System: s.id, Message: msg, Cause: err})
			return
		}

		if result != nil {
			for _, c := range s.children {
				select {
				case c.input <- result:
				default:
				}
			}
		}

		d.barrierTick()
	}
}

// atomicOnce is sync.Once without importing sync just for this; kept
// tiny and inlined alongside System since it's the only user.
type atomicOnce struct {
	done atomic.Bool
}

func (o *atomicOnce) Do(f func()) {
	if o.done.CompareAndSwap(false, true) {
		f()
	}
}
