package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/gelfship/internal/domain"
)

func contextWithCancel() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}

func TestNewEventChannel_Capacity(t *testing.T) {
	assert.Equal(t, DefaultChannelCapacity, NewEventChannel(-1).Cap())
	assert.Equal(t, 0, NewEventChannel(0).Cap())
	assert.Equal(t, 8, NewEventChannel(8).Cap())
}

func TestEventChannel_FIFO(t *testing.T) {
	ch := NewEventChannel(4)

	require.NoError(t, ch.Enqueue(rec("a")))
	require.NoError(t, ch.ForceFlush())
	require.NoError(t, ch.Enqueue(rec("b")))
	assert.Equal(t, 3, ch.Len())

	ev, ok := ch.Receive()
	require.True(t, ok)
	assert.Equal(t, domain.EventData, ev.Kind)
	assert.Equal(t, "a", ev.Record.ShortMessage)

	ev, ok = ch.Receive()
	require.True(t, ok)
	assert.Equal(t, domain.EventFlush, ev.Kind)

	ev, ok = ch.Receive()
	require.True(t, ok)
	assert.Equal(t, "b", ev.Record.ShortMessage)
}

func TestEventChannel_SendAfterClose(t *testing.T) {
	ch := NewEventChannel(4)
	ch.Close()
	ch.Close()

	assert.True(t, ch.Closed())
	assert.ErrorIs(t, ch.Enqueue(rec("a")), domain.ErrChannelClosed)
	assert.ErrorIs(t, ch.ForceFlush(), domain.ErrChannelClosed)
	assert.Zero(t, ch.Len())
}

func TestEventChannel_DrainAfterClose(t *testing.T) {
	ch := NewEventChannel(4)
	require.NoError(t, ch.Enqueue(rec("a")))
	require.NoError(t, ch.Enqueue(rec("b")))
	ch.Close()

	var got []string
	for {
		ev, ok := ch.Receive()
		if !ok {
			break
		}
		got = append(got, ev.Record.ShortMessage)
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestEventChannel_SendBlocksWhenFull(t *testing.T) {
	ch := NewEventChannel(1)
	require.NoError(t, ch.Enqueue(rec("a")))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := ch.SendContext(ctx, domain.DataEvent(rec("b")))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	sent := make(chan error, 1)
	go func() { sent <- ch.Enqueue(rec("c")) }()

	select {
	case <-sent:
		t.Fatal("send into a full channel must block")
	case <-time.After(20 * time.Millisecond):
	}

	_, ok := ch.Receive()
	require.True(t, ok)

	select {
	case err := <-sent:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("blocked send was not released")
	}
}

func TestEventChannel_CloseReleasesBlockedSender(t *testing.T) {
	ch := NewEventChannel(0)

	sent := make(chan error, 1)
	go func() { sent <- ch.Enqueue(rec("a")) }()

	time.Sleep(10 * time.Millisecond)
	ch.Close()

	select {
	case err := <-sent:
		assert.ErrorIs(t, err, domain.ErrChannelClosed)
	case <-time.After(time.Second):
		t.Fatal("close did not release the sender")
	}
}

func TestEventChannel_ConcurrentProducers(t *testing.T) {
	const producers, perProducer = 8, 50
	ch := NewEventChannel(DefaultChannelCapacity)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				assert.NoError(t, ch.Enqueue(rec("x")))
			}
		}()
	}
	wg.Wait()
	ch.Close()

	n := 0
	for {
		if _, ok := ch.Receive(); !ok {
			break
		}
		n++
	}
	assert.Equal(t, producers*perProducer, n)
}

func TestEventChannel_AcceptedSendsSurviveClose(t *testing.T) {
	const producers, rounds = 8, 200

	for round := 0; round < rounds; round++ {
		ch := NewEventChannel(4)

		var accepted sync.WaitGroup
		var mu sync.Mutex
		ok := 0
		for p := 0; p < producers; p++ {
			accepted.Add(1)
			go func() {
				defer accepted.Done()
				for {
					if err := ch.Enqueue(rec("x")); err != nil {
						assert.ErrorIs(t, err, domain.ErrChannelClosed)
						return
					}
					mu.Lock()
					ok++
					mu.Unlock()
				}
			}()
		}

		received := make(chan int, 1)
		go func() {
			n := 0
			for {
				if _, more := ch.Receive(); !more {
					received <- n
					return
				}
				n++
			}
		}()

		time.Sleep(time.Duration(round%5) * 100 * time.Microsecond)
		ch.Close()
		accepted.Wait()

		select {
		case n := <-received:
			mu.Lock()
			assert.Equal(t, ok, n, "round %d", round)
			mu.Unlock()
		case <-time.After(2 * time.Second):
			t.Fatalf("round %d: consumer did not finish", round)
		}
	}
}
