//go:build linux

package sem

import (
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Semaphore is a counting semaphore backed by a futex word. The count
// lives in a single uint32: Post and Wait race on it with compare-and-swap
// and fall back to the kernel only when the count is exhausted.
type Semaphore struct {
	count uint32
}

// New returns a semaphore with a count of zero. The futex backend cannot
// fail to construct.
func New() (*Semaphore, error) {
	return &Semaphore{}, nil
}

// Post adds n permits and wakes up to n blocked waiters. n must be at
// least 1.
func (s *Semaphore) Post(n int) {
	if n < 1 {
		panic("sem: Post count must be >= 1")
	}
	atomic.AddUint32(&s.count, uint32(n))
	futexWake(&s.count, n)
}

// Wait blocks until a permit is available, then consumes it and returns
// true. A negative timeout waits indefinitely; zero polls once; a positive
// timeout bounds the wait and returns false on expiry. Interrupted and
// spurious kernel wakeups are retried transparently against the deadline.
func (s *Semaphore) Wait(timeout time.Duration) bool {
	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		for {
			c := atomic.LoadUint32(&s.count)
			if c == 0 {
				break
			}
			if atomic.CompareAndSwapUint32(&s.count, c, c-1) {
				return true
			}
		}
		var ts *unix.Timespec
		if timeout >= 0 {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return false
			}
			t := unix.NsecToTimespec(remaining.Nanoseconds())
			ts = &t
		}
		if err := futexWait(&s.count, 0, ts); err == unix.ETIMEDOUT {
			return false
		}
		// EINTR, EAGAIN (count changed under us) and spurious wakeups
		// fall through and retry the fast path.
	}
}

// Close releases the semaphore. The futex backend holds no kernel handle.
func (s *Semaphore) Close() error {
	return nil
}

// golang.org/x/sys/unix exports the futex syscall number but not the op
// constants; define the two we need, with the private flag folded in.
const (
	futexWaitPrivate = 0x80 // FUTEX_WAIT | FUTEX_PRIVATE_FLAG
	futexWakePrivate = 0x81 // FUTEX_WAKE | FUTEX_PRIVATE_FLAG
)

func futexWait(addr *uint32, val uint32, ts *unix.Timespec) error {
	_, _, errno := unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWaitPrivate),
		uintptr(val),
		uintptr(unsafe.Pointer(ts)),
		0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func futexWake(addr *uint32, n int) {
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWakePrivate),
		uintptr(n),
		0, 0, 0)
}
