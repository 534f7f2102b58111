package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()

	for i := 0; i < 5; i++ {
		if err := q.Push(Progress{Value: float64(i) / 10}); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
	}

	if q.Len() != 5 {
		t.Errorf("Len() = %d, want 5", q.Len())
	}

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		ev, err := q.Pop(ctx)
		if err != nil {
			t.Fatalf("Pop failed: %v", err)
		}
		p, ok := ev.(Progress)
		if !ok {
			t.Fatalf("Pop returned %T, want Progress", ev)
		}
		if want := float64(i) / 10; p.Value != want {
			t.Errorf("event %d value = %v, want %v", i, p.Value, want)
		}
	}

	if q.Len() != 0 {
		t.Errorf("Len() = %d after draining, want 0", q.Len())
	}
}

func TestQueue_PopBlocksUntilPush(t *testing.T) {
	q := NewQueue()

	got := make(chan Event, 1)
	go func() {
		ev, err := q.Pop(context.Background())
		if err != nil {
			t.Errorf("Pop failed: %v", err)
		}
		got <- ev
	}()

	select {
	case ev := <-got:
		t.Fatalf("Pop returned %v before any push", ev)
	case <-time.After(20 * time.Millisecond):
	}

	if err := q.Push(Press("q")); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	select {
	case ev := <-got:
		if ev != Press("q") {
			t.Errorf("Pop returned %v, want %v", ev, Press("q"))
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not return after push")
	}
}

func TestQueue_PopHonoursContext(t *testing.T) {
	q := NewQueue()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := q.Pop(ctx)
		errCh <- err
	}()

	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Pop error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not return after cancel")
	}
}

func TestQueue_CloseDrainsThenErrClosed(t *testing.T) {
	q := NewQueue()
	_ = q.Push(Press("c"))
	q.Close()
	q.Close() // idempotent

	if err := q.Push(Press("q")); !errors.Is(err, ErrClosed) {
		t.Errorf("Push after Close error = %v, want ErrClosed", err)
	}

	ev, err := q.Pop(context.Background())
	if err != nil {
		t.Fatalf("Pop of queued event failed: %v", err)
	}
	if ev != Press("c") {
		t.Errorf("Pop returned %v, want %v", ev, Press("c"))
	}

	if _, err := q.Pop(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Pop on drained closed queue error = %v, want ErrClosed", err)
	}
}

func TestQueue_CloseWakesBlockedPop(t *testing.T) {
	q := NewQueue()

	errCh := make(chan error, 1)
	go func() {
		_, err := q.Pop(context.Background())
		errCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrClosed) {
			t.Errorf("Pop error = %v, want ErrClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake on Close")
	}
}

func TestQueue_ConcurrentProducersKeepPerProducerOrder(t *testing.T) {
	const producers = 4
	const perProducer = 250

	q := NewQueue()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				// Encode producer and sequence so order can be checked.
				_ = q.Push(Progress{Value: float64(p*perProducer + i)})
			}
		}(p)
	}

	last := make([]int, producers)
	for p := range last {
		last[p] = -1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for n := 0; n < producers*perProducer; n++ {
		ev, err := q.Pop(ctx)
		if err != nil {
			t.Fatalf("Pop %d failed: %v", n, err)
		}
		v := int(ev.(Progress).Value)
		p, seq := v/perProducer, v%perProducer
		if seq <= last[p] {
			t.Fatalf("producer %d: seq %d popped after %d", p, seq, last[p])
		}
		last[p] = seq
	}

	wg.Wait()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestKeyKind_String(t *testing.T) {
	tests := []struct {
		kind KeyKind
		want string
	}{
		{KeyPress, "press"},
		{KeyRelease, "release"},
		{KeyKind(7), "KeyKind(7)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("KeyKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
