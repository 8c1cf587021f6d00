package pool

import (
	"testing"
	"time"
)
import "github.com/stretchr/testify/require"

func TestJobQueue_DeliversInFifoOrder(t *testing.T) {
	q := newJobQueue()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		require.NoError(t, q.push(func() { order = append(order, i) }))
	}

	for i := 0; i < 5; i++ {
		job, ok := q.pop()
		require.True(t, ok)
		job()
	}

	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestJobQueue_PopBlocksUntilPush(t *testing.T) {
	q := newJobQueue()

	popped := make(chan bool)
	go func() {
		_, ok := q.pop()
		popped <- ok
	}()

	select {
	case <-popped:
		t.Fatal("pop returned with an empty queue")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, q.push(func() {}))

	select {
	case ok := <-popped:
		require.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("pop did not wake up after push")
	}
}

func TestJobQueue_CloseWakesBlockedPop(t *testing.T) {
	q := newJobQueue()

	popped := make(chan bool)
	go func() {
		_, ok := q.pop()
		popped <- ok
	}()

	time.Sleep(50 * time.Millisecond)
	q.close()

	select {
	case ok := <-popped:
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("pop did not wake up after close")
	}
}

func TestJobQueue_PushAfterCloseFails(t *testing.T) {
	q := newJobQueue()
	q.close()

	require.ErrorIs(t, q.push(func() {}), ErrPoolClosed)
}

func TestJobQueue_DrainsQueuedJobsAfterClose(t *testing.T) {
	q := newJobQueue()

	for i := 0; i < 3; i++ {
		require.NoError(t, q.push(func() {}))
	}
	q.close()

	for i := 0; i < 3; i++ {
		job, ok := q.pop()
		require.True(t, ok)
		require.NotNil(t, job)
	}

	_, ok := q.pop()
	require.False(t, ok)
}
