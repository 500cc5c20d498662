package hlock

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// goroutineID extracts the calling goroutine's id from its stack trace
// header ("goroutine 123 [running]: ..."). It is the cheapest way to get
// reentrancy without threading a caller token through every Lock call;
// used only to let the same goroutine re-enter a leaf it already holds.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	id, _ := strconv.ParseUint(string(buf), 10, 64)
	return id
}

// reentrantMutex lets the goroutine that already holds it lock again
// without blocking; every Lock must be balanced by an Unlock.
type reentrantMutex struct {
	mu    sync.Mutex
	owner uint64
	count int
}

func (m *reentrantMutex) Lock() {
	id := goroutineID()
	m.mu.Lock()
	if m.count > 0 && m.owner == id {
		m.count++
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.acquire(id)
}

// acquire spins on the underlying mutex's intent by retrying; it blocks
// until the leaf is free or already owned by id.
func (m *reentrantMutex) acquire(id uint64) {
	for {
		m.mu.Lock()
		if m.count == 0 {
			m.owner = id
			m.count = 1
			m.mu.Unlock()
			return
		}
		if m.owner == id {
			m.count++
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()
		runtime.Gosched()
	}
}

func (m *reentrantMutex) TryLock() bool {
	id := goroutineID()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.count == 0 {
		m.owner = id
		m.count = 1
		return true
	}
	if m.owner == id {
		m.count++
		return true
	}
	return false
}

func (m *reentrantMutex) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.count == 0 {
		panic("hlock: Unlock of unlocked leaf")
	}
	m.count--
}

func (m *reentrantMutex) IsLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count > 0
}
