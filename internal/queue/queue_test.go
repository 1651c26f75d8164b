package queue

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushThenNextPreservesOrder(t *testing.T) {
	q := New()
	for i := 0; i < 10; i++ {
		require.True(t, q.Push(i))
	}

	for i := 0; i < 10; i++ {
		msg, ok := q.Next()
		require.True(t, ok)
		assert.Equal(t, i, msg)
	}
	assert.Equal(t, 0, q.Len())
}

func TestTryNextOnEmptyQueue(t *testing.T) {
	q := New()
	msg, ok := q.TryNext()
	assert.False(t, ok)
	assert.Nil(t, msg)
}

func TestNextBlocksUntilPush(t *testing.T) {
	q := New()
	got := make(chan any, 1)

	go func() {
		msg, _ := q.Next()
		got <- msg
	}()

	q.Push("hello")

	select {
	case msg := <-got:
		assert.Equal(t, "hello", msg)
	case <-time.After(time.Second):
		t.Fatal("Next did not wake after Push")
	}
}

func TestCloseDrainsThenReportsDone(t *testing.T) {
	q := New()
	q.Push("a")
	q.Push("b")
	q.Close()

	assert.False(t, q.Push("c"), "Push after Close should be rejected")

	msg, ok := q.Next()
	require.True(t, ok)
	assert.Equal(t, "a", msg)

	msg, ok = q.Next()
	require.True(t, ok)
	assert.Equal(t, "b", msg)

	_, ok = q.Next()
	assert.False(t, ok, "drained closed queue should report done")
	_, ok = q.TryNext()
	assert.False(t, ok)
}

func TestCloseWakesBlockedNext(t *testing.T) {
	q := New()
	done := make(chan bool, 1)

	go func() {
		_, ok := q.Next()
		done <- ok
	}()

	q.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Next did not wake after Close")
	}
}

func TestConcurrentSendersKeepPerSenderOrder(t *testing.T) {
	const senders = 4
	const perSender = 100

	q := New()
	var wg sync.WaitGroup
	for s := 0; s < senders; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				q.Push(fmt.Sprintf("%d:%d", s, i))
			}
		}(s)
	}
	wg.Wait()

	seen := make(map[int]int)
	for n := 0; n < senders*perSender; n++ {
		msg, ok := q.Next()
		require.True(t, ok)

		var s, i int
		_, err := fmt.Sscanf(msg.(string), "%d:%d", &s, &i)
		require.NoError(t, err)
		assert.Equal(t, seen[s], i, "messages from sender %d arrived out of order", s)
		seen[s]++
	}

	for s := 0; s < senders; s++ {
		assert.Equal(t, perSender, seen[s])
	}
}

func TestLenCountsQueuedMessages(t *testing.T) {
	q := New()
	assert.Equal(t, 0, q.Len())

	q.Push(1)
	q.Push(2)
	assert.Equal(t, 2, q.Len())

	q.TryNext()
	assert.Equal(t, 1, q.Len())
}
