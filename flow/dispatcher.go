// Package flow implements a reactive system dispatcher: independent
// goroutines pull messages off bounded channels, process them against
// a world, and forward their results to listening children. A tick
// barrier lets a caller block until every system currently live has
// finished its turn, without polling or sleeping.
package flow

import (
	"sync"
	"sync/atomic"
	"weak"

	"github.com/TheBitDrifter/bark"
)

// Dispatcher owns the subscription table and the dataflow graph's
// edges for a single world of type W.
type Dispatcher[W any] struct {
	world *W

	mu            sync.Mutex
	subscriptions map[*System[W]]Message

	live      atomic.Int64
	condMu    sync.Mutex
	cond      *sync.Cond
	tickGen   int
	doneCount int

	// OnSystemError is invoked whenever a system's Run returns an
	// error, after the system has been stopped. Defaults to logging
	// via bark.AddTrace; callers may override for custom handling.
	OnSystemError func(SystemRunError)
}

// NewDispatcher returns a Dispatcher bound to world.
func NewDispatcher[W any](world *W) *Dispatcher[W] {
	d := &Dispatcher[W]{
		world:         world,
		subscriptions: make(map[*System[W]]Message),
	}
	d.cond = sync.NewCond(&d.condMu)
	d.OnSystemError = func(e SystemRunError) {
		bark.AddTrace(e)
	}
	return d
}

func (d *Dispatcher[W]) liveCount() int {
	return int(d.live.Load())
}

// Subscribe registers s to receive msg on every Dispatch call, and
// binds s to this dispatcher's world.
func (d *Dispatcher[W]) Subscribe(s *System[W], msg Message) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s.world = weak.Make(d.world)
	s.disp = d
	d.subscriptions[s] = msg
}

// Unsubscribe removes s from the dispatch table. It does not stop s
// if it is currently running; call s.Stop for that.
func (d *Dispatcher[W]) Unsubscribe(s *System[W]) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.subscriptions, s)
}

// ListenTo adds a dataflow edge: whenever source's Run returns a
// non-nil message, it is forwarded to listener's input. Returns
// CycleDetectedError if listener can already reach source, which
// would make the edge loop forever.
func (d *Dispatcher[W]) ListenTo(source, listener *System[W]) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if source == listener || reachable(listener, source) {
		return CycleDetectedError{Source: source.id, Listener: listener.id}
	}
	source.children = append(source.children, listener)
	if listener.world == (weak.Pointer[W]{}) {
		listener.world = source.world
	}
	listener.disp = d
	return nil
}

// reachable reports whether target is reachable by following from's
// children transitively. Used to detect the edge that would close a
// cycle before it is added: listen_to(source, listener) must fail
// when listener can already reach source.
func reachable[W any](from, target *System[W]) bool {
	seen := make(map[*System[W]]bool)
	var walk func(*System[W]) bool
	walk = func(s *System[W]) bool {
		if s == target {
			return true
		}
		if seen[s] {
			return false
		}
		seen[s] = true
		for _, c := range s.children {
			if walk(c) {
				return true
			}
		}
		return false
	}
	return walk(from)
}

// GetIntoFlow splices mid between source and source's existing
// children: source now forwards only to mid, and mid forwards to
// whatever source used to forward to. mid inherits source's world
// reference if it does not already have one of its own.
func (d *Dispatcher[W]) GetIntoFlow(source, mid *System[W]) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	mid.children = source.children
	source.children = []*System[W]{mid}
	if mid.world == (weak.Pointer[W]{}) {
		mid.world = source.world
	}
	mid.disp = d
	return nil
}

// RunSystem starts s's cooperative task: a goroutine that keeps
// pulling one message at a time from s's input for as long as s stays
// alive, checking in with the tick barrier after each one. It returns
// NotSubscribedError if s has never been bound to a world via
// Subscribe or as a ListenTo/GetIntoFlow target. A system stopped by a
// run error is restarted by calling RunSystem again. A system stopped
// with Stop is not: its input channel stays closed, so a new task exits
// at once.
func (d *Dispatcher[W]) RunSystem(s *System[W]) error {
	if s.world.Value() == nil {
		return NotSubscribedError{System: s.id}
	}
	s.active.Store(true)
	d.live.Add(1)
	go s.loop(d)
	return nil
}

// Dispatch publishes each subscribed system's configured message to
// its input channel, so its next pull picks it up.
func (d *Dispatcher[W]) Dispatch() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for s, msg := range d.subscriptions {
		if !s.active.Load() {
			continue
		}
		select {
		case s.input <- msg:
		default:
		}
	}
}
