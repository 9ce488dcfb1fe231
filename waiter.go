package corobus

import "container/list"

// waiter ties one parked coroutine to one node in a waiterQueue. It exists
// exclusively during a single suspension: allocated by suspendSelf, detached
// either by a waker (wakeOne/wakeAll) or by suspendSelf itself on the
// cancellation path, and discarded once the parked call returns.
//
// wake is closed exactly once to signal the parked coroutine. Only wakeOne
// closes it, and wakeOne only reaches waiters still linked into a queue, so
// detaching first rules out a second close. The cancellation path in
// suspendSelf only detaches the waiter and never closes wake.
type waiter struct {
	wake chan struct{}
	elem *list.Element // nil once detached
	q    *waiterQueue   // nil once detached
}

func newWaiter() *waiter {
	return &waiter{wake: make(chan struct{})}
}

// detach removes w from its queue if still linked. Idempotent: safe to call
// from both the waker and the resumed coroutine.
func (w *waiter) detach() {
	if w.q == nil {
		return
	}
	w.q.list.Remove(w.elem)
	w.q = nil
	w.elem = nil
}

// waiterQueue is an ordered FIFO of parked coroutines. All methods assume
// the caller already holds the owning Bus's scheduler mutex.
type waiterQueue struct {
	list list.List
}

func (q *waiterQueue) empty() bool {
	return q.list.Len() == 0
}

func (q *waiterQueue) len() int {
	return q.list.Len()
}

// enqueue links w at the tail of q. w must not already be linked anywhere.
func (q *waiterQueue) enqueue(w *waiter) {
	w.elem = q.list.PushBack(w)
	w.q = q
}

// wakeOne detaches the head waiter, if any, and closes its wake channel.
// Detach happens strictly before the close so a woken coroutine never
// observes itself still linked into a queue that might be destroyed
// immediately afterwards (e.g. by a concurrent channel close).
func (q *waiterQueue) wakeOne() {
	front := q.list.Front()
	if front == nil {
		return
	}
	w := front.Value.(*waiter)
	w.detach()
	close(w.wake)
}

// wakeAll drains q, waking every waiter in enqueue order.
func (q *waiterQueue) wakeAll() {
	for !q.empty() {
		q.wakeOne()
	}
}
