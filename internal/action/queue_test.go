package action

import (
	"fmt"
	"sync"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 5; i++ {
		if err := q.Send(Tick{Seq: uint64(i)}); err != nil {
			t.Fatalf("Send(%d) error = %v", i, err)
		}
	}
	for i := 0; i < 5; i++ {
		a, ok := q.TryRecv()
		if !ok {
			t.Fatalf("TryRecv() empty after %d receives, want 5", i)
		}
		tick, ok := a.(Tick)
		if !ok {
			t.Fatalf("TryRecv() = %T, want Tick", a)
		}
		if tick.Seq != uint64(i) {
			t.Errorf("TryRecv() seq = %d, want %d", tick.Seq, i)
		}
	}
	if _, ok := q.TryRecv(); ok {
		t.Error("TryRecv() on drained queue reported ok")
	}
}

func TestQueueTryRecvEmpty(t *testing.T) {
	q := NewQueue()
	if a, ok := q.TryRecv(); ok {
		t.Errorf("TryRecv() on empty queue = %v, want not ok", a)
	}
}

func TestQueueSendAfterClose(t *testing.T) {
	q := NewQueue()
	if err := q.Send(Render{}); err != nil {
		t.Fatalf("Send() before close error = %v", err)
	}
	q.Close()
	if err := q.Send(Quit{}); err != ErrClosed {
		t.Errorf("Send() after close error = %v, want ErrClosed", err)
	}
	// Actions queued before close stay receivable.
	if _, ok := q.TryRecv(); !ok {
		t.Error("TryRecv() after close lost the pre-close action")
	}
}

func TestQueueInterleavedSendRecv(t *testing.T) {
	q := NewQueue()
	q.Send(Error{Message: "a"})
	q.Send(Error{Message: "b"})
	a, _ := q.TryRecv()
	if a.(Error).Message != "a" {
		t.Fatalf("first recv = %v, want a", a)
	}
	// An action enqueued mid-drain is delivered after the earlier ones.
	q.Send(Error{Message: "c"})
	var got []string
	for {
		a, ok := q.TryRecv()
		if !ok {
			break
		}
		got = append(got, a.(Error).Message)
	}
	if fmt.Sprint(got) != "[b c]" {
		t.Errorf("drain order = %v, want [b c]", got)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers = 8
	const each = 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				if err := q.Send(Tick{Seq: uint64(p*each + i)}); err != nil {
					t.Errorf("Send error = %v", err)
					return
				}
			}
		}(p)
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	count := 0
	for {
		a, ok := q.TryRecv()
		if !ok {
			break
		}
		count++
		seq := a.(Tick).Seq
		if seen[seq] {
			t.Errorf("duplicate action %d", seq)
		}
		seen[seq] = true
	}
	if count != producers*each {
		t.Errorf("received %d actions, want %d", count, producers*each)
	}
}
