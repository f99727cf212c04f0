//go:build !linux && !windows

package sem

import (
	"container/list"
	"sync"
	"time"
)

// Semaphore is a counting semaphore built from a mutex-guarded counter and
// a FIFO queue of waiter channels. This is the portable backend for
// platforms without a dedicated native primitive; a timed wait is expressed
// with a timer racing the handoff channel, since sync.Cond has no deadline
// support.
type Semaphore struct {
	mu      sync.Mutex
	count   int
	waiters list.List // of chan struct{}
}

// New returns a semaphore with a count of zero. The portable backend
// cannot fail to construct.
func New() (*Semaphore, error) {
	return &Semaphore{}, nil
}

// Post adds n permits, handing them to queued waiters in FIFO order. n
// must be at least 1.
func (s *Semaphore) Post(n int) {
	if n < 1 {
		panic("sem: Post count must be >= 1")
	}
	s.mu.Lock()
	s.count += n
	for s.count > 0 && s.waiters.Len() > 0 {
		front := s.waiters.Front()
		s.waiters.Remove(front)
		close(front.Value.(chan struct{}))
		s.count--
	}
	s.mu.Unlock()
}

// Wait blocks until a permit is available, then consumes it and returns
// true. A negative timeout waits indefinitely; zero polls once; a positive
// timeout bounds the wait and returns false on expiry.
func (s *Semaphore) Wait(timeout time.Duration) bool {
	s.mu.Lock()
	if s.count > 0 {
		s.count--
		s.mu.Unlock()
		return true
	}
	if timeout == 0 {
		s.mu.Unlock()
		return false
	}

	// A closed channel is a permit handed off by Post.
	ready := make(chan struct{})
	elem := s.waiters.PushBack(ready)
	s.mu.Unlock()

	if timeout < 0 {
		<-ready
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ready:
		return true
	case <-timer.C:
		s.mu.Lock()
		select {
		case <-ready:
			// A post handed us a permit while the timer fired; keep it.
			s.mu.Unlock()
			return true
		default:
		}
		s.waiters.Remove(elem)
		s.mu.Unlock()
		return false
	}
}

// Close releases the semaphore. The portable backend holds no native
// handle.
func (s *Semaphore) Close() error {
	return nil
}
