//go:build windows

package sem

import (
	"math"
	"time"

	"golang.org/x/sys/windows"
)

// Semaphore is a counting semaphore backed by a Windows kernel semaphore
// object. Post and Wait map directly onto ReleaseSemaphore and
// WaitForSingleObject.
type Semaphore struct {
	handle windows.Handle
}

// New returns a semaphore with a count of zero. Creating the kernel object
// can fail; the returned error must be checked before the semaphore is
// used.
func New() (*Semaphore, error) {
	h, err := windows.CreateSemaphore(nil, 0, math.MaxInt32, nil)
	if err != nil {
		return nil, err
	}
	return &Semaphore{handle: h}, nil
}

// Post adds n permits and wakes up to n blocked waiters. n must be at
// least 1.
func (s *Semaphore) Post(n int) {
	if n < 1 {
		panic("sem: Post count must be >= 1")
	}
	_ = windows.ReleaseSemaphore(s.handle, int32(n), nil)
}

// Wait blocks until a permit is available, then consumes it and returns
// true. A negative timeout maps to INFINITE; zero polls once; a positive
// timeout bounds the wait and returns false on expiry.
func (s *Semaphore) Wait(timeout time.Duration) bool {
	millis := uint32(windows.INFINITE)
	if timeout >= 0 {
		millis = uint32(timeout / time.Millisecond)
	}
	ev, err := windows.WaitForSingleObject(s.handle, millis)
	return err == nil && ev == windows.WAIT_OBJECT_0
}

// Close releases the kernel semaphore object.
func (s *Semaphore) Close() error {
	return windows.CloseHandle(s.handle)
}
