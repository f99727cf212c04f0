package sem

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSem(t *testing.T) *Semaphore {
	t.Helper()
	s, err := New()
	require.NoError(t, err, "semaphore construction should not fail")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestSemaphore_PostThenPoll posts k permits and drains them with
// zero-timeout waits; the (k+1)th poll must fail immediately.
func TestSemaphore_PostThenPoll(t *testing.T) {
	s := newTestSem(t)

	const k = 5
	s.Post(k)
	for i := 0; i < k; i++ {
		require.True(t, s.Wait(0), "permit %d should be available", i)
	}
	assert.False(t, s.Wait(0), "count exhausted, poll must fail")
}

// TestSemaphore_SinglePosts drains permits posted one at a time.
func TestSemaphore_SinglePosts(t *testing.T) {
	s := newTestSem(t)

	for i := 0; i < 3; i++ {
		s.Post(1)
	}
	for i := 0; i < 3; i++ {
		require.True(t, s.Wait(0), "permit %d should be available", i)
	}
	assert.False(t, s.Wait(0))
}

// TestSemaphore_WaitTimeoutElapses verifies a bounded wait on an empty
// semaphore blocks for at least the timeout.
func TestSemaphore_WaitTimeoutElapses(t *testing.T) {
	s := newTestSem(t)

	start := time.Now()
	ok := s.Wait(100 * time.Millisecond)
	elapsed := time.Since(start)

	assert.False(t, ok, "no post, wait must time out")
	assert.GreaterOrEqual(t, elapsed, 95*time.Millisecond, "returned before the timeout")
	assert.Less(t, elapsed, 2*time.Second, "wait overshot wildly")
}

// TestSemaphore_PostWakesBlockedWaiter verifies a blocked infinite wait is
// released by a later post.
func TestSemaphore_PostWakesBlockedWaiter(t *testing.T) {
	s := newTestSem(t)

	done := make(chan bool, 1)
	go func() { done <- s.Wait(Forever) }()

	time.Sleep(50 * time.Millisecond)
	s.Post(1)

	select {
	case ok := <-done:
		assert.True(t, ok, "infinite wait must report success")
	case <-time.After(2 * time.Second):
		t.Fatal("waiter was not woken by post")
	}
}

// TestSemaphore_FiveWaitersFivePosts runs the contention scenario: five
// infinite waiters, five staggered posts; all five succeed and a sixth
// waiter finds nothing left.
func TestSemaphore_FiveWaitersFivePosts(t *testing.T) {
	s := newTestSem(t)

	var acquired atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Wait(Forever) {
				acquired.Add(1)
			}
		}()
	}

	for i := 0; i < 5; i++ {
		time.Sleep(10 * time.Millisecond)
		s.Post(1)
	}

	waitDone := make(chan struct{})
	go func() { wg.Wait(); close(waitDone) }()
	select {
	case <-waitDone:
	case <-time.After(5 * time.Second):
		t.Fatal("waiters did not drain")
	}

	assert.Equal(t, int32(5), acquired.Load(), "every post satisfies exactly one waiter")
	assert.False(t, s.Wait(150*time.Millisecond), "no sixth permit was posted")
}

// TestSemaphore_BatchPostWakesAll posts all permits in one call against
// already-blocked waiters.
func TestSemaphore_BatchPostWakesAll(t *testing.T) {
	s := newTestSem(t)

	var wg sync.WaitGroup
	var acquired atomic.Int32
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Wait(2 * time.Second) {
				acquired.Add(1)
			}
		}()
	}

	// Let the waiters block before the batch post.
	time.Sleep(50 * time.Millisecond)
	s.Post(4)
	wg.Wait()

	assert.Equal(t, int32(4), acquired.Load(), "a batch post satisfies all due waiters")
	assert.False(t, s.Wait(0))
}

// TestSemaphore_RepeatedBlockingHandoff forces the waiter to actually
// block in the backing primitive on every iteration, so the native
// wait/wake pair is exercised rather than the fast path.
func TestSemaphore_RepeatedBlockingHandoff(t *testing.T) {
	s := newTestSem(t)

	for i := 0; i < 50; i++ {
		done := make(chan bool, 1)
		go func() { done <- s.Wait(2 * time.Second) }()

		// Give the waiter time to block before posting.
		time.Sleep(time.Millisecond)
		s.Post(1)

		select {
		case ok := <-done:
			require.True(t, ok, "iteration %d: blocked waiter not woken", i)
		case <-time.After(5 * time.Second):
			t.Fatalf("iteration %d: waiter stuck", i)
		}
	}
	assert.False(t, s.Wait(0), "no permits should remain")
}

// TestSemaphore_PostInvalidCountPanics tests the assertion on bad post
// counts.
func TestSemaphore_PostInvalidCountPanics(t *testing.T) {
	s := newTestSem(t)

	assert.Panics(t, func() { s.Post(0) })
	assert.Panics(t, func() { s.Post(-1) })
}

// TestSemaphore_CountAccumulatesAcrossWaiters mixes timed waits with posts
// and checks the decrement/increment bookkeeping stays balanced.
func TestSemaphore_CountAccumulatesAcrossWaiters(t *testing.T) {
	s := newTestSem(t)

	s.Post(2)
	require.True(t, s.Wait(0))

	// One permit left; a timed wait takes it, the next one starves.
	require.True(t, s.Wait(100*time.Millisecond))
	assert.False(t, s.Wait(50*time.Millisecond))

	s.Post(1)
	assert.True(t, s.Wait(0), "late post must be visible to a fresh wait")
}
