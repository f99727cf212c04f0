// Package sem provides a blocking counting semaphore with a uniform
// post/wait-with-timeout contract across platforms.
//
// # Contract
//
// A Semaphore starts with a count of zero. Post adds permits and wakes
// blocked waiters; Wait consumes one permit, blocking up to the given
// timeout. The count never goes negative: the number of successful waits is
// bounded by the number of posted permits.
//
// # Backends
//
// The backing primitive is selected at build time:
//
//   - linux: a futex word with an atomic fast path
//   - windows: a kernel semaphore object
//   - everything else: a mutex-guarded counter with a FIFO waiter queue
//
// All backends satisfy the identical external contract. Which waiter wakes
// on a given post is backend-dependent; no fairness is promised.
//
// # Lifetime
//
// Close releases any native handle. Closing a semaphore while goroutines
// are blocked on it is undefined behavior; drain all waiters first.
package sem

import "time"

// Forever blocks Wait until a permit arrives. Any negative timeout behaves
// the same way.
const Forever time.Duration = -1
