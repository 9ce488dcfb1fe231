package corobus

import "testing"

func TestWaiterQueueFIFO(t *testing.T) {
	var q waiterQueue

	w1, w2, w3 := newWaiter(), newWaiter(), newWaiter()
	q.enqueue(w1)
	q.enqueue(w2)
	q.enqueue(w3)

	if q.len() != 3 {
		t.Fatalf("len = %d, want 3", q.len())
	}
	q.wakeOne()
	if q.len() != 2 {
		t.Fatalf("len after one wake = %d, want 2", q.len())
	}
	select {
	case <-w1.wake:
	default:
		t.Fatalf("wakeOne did not wake the first enqueued waiter")
	}
	if front := q.list.Front().Value.(*waiter); front != w2 {
		t.Fatalf("head after one wake is not the second enqueued waiter")
	}
	q.wakeAll()
	if !q.empty() {
		t.Fatalf("queue not empty after wakeAll")
	}
}

func TestWaiterDetachIdempotent(t *testing.T) {
	var q waiterQueue
	w := newWaiter()
	q.enqueue(w)

	w.detach()
	if !q.empty() {
		t.Fatalf("queue should be empty after detach")
	}
	// second detach must not panic or touch q again.
	w.detach()
}

func TestWakeOneOnEmptyQueueIsNoop(t *testing.T) {
	var q waiterQueue
	q.wakeOne() // must not panic
	if !q.empty() {
		t.Fatalf("empty queue should remain empty")
	}
}

func TestWakeOneDetachesBeforeClose(t *testing.T) {
	var q waiterQueue
	w := newWaiter()
	q.enqueue(w)

	q.wakeOne()
	if w.q != nil || w.elem != nil {
		t.Fatalf("waiter should be fully detached after wakeOne")
	}
	select {
	case <-w.wake:
	default:
		t.Fatalf("wake channel should be closed")
	}
}
