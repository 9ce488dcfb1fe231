package corobus

import (
	"context"
	"time"
)

// Send pushes item onto the channel at desc, suspending the calling
// coroutine while the channel is full. Each time the channel has room it
// wakes exactly one recv-waiter. Send never wakes a broadcast-waiter: a push
// only takes away room, so it can never satisfy a parked Broadcast.
func (co *Coroutine) Send(ctx context.Context, bus *Bus, desc int, item uint32) error {
	start := co.now()
	bus.mu.Lock()
	defer bus.mu.Unlock()

	for {
		ch, err := bus.channel(desc)
		if err != nil {
			co.setErr(err)
			bus.collect(OpMetrics{Op: "send", Desc: desc, Start: start, Duration: time.Since(start), Err: err})
			return err
		}
		if !ch.full() {
			ch.push(item)
			ch.recvWaiters.wakeOne()
			co.clearErr()
			bus.collect(OpMetrics{Op: "send", Desc: desc, Start: start, Duration: time.Since(start), Count: 1})
			return nil
		}

		co.setErr(ErrWouldBlock)
		if err := bus.suspendSelf(ctx, &ch.sendWaiters); err != nil {
			co.setErr(err)
			bus.collect(OpMetrics{Op: "send", Desc: desc, Start: start, Duration: time.Since(start), Err: err})
			return err
		}
	}
}

// TrySend is the non-blocking form of Send: it returns ErrWouldBlock
// instead of suspending when the channel is full.
func (co *Coroutine) TrySend(bus *Bus, desc int, item uint32) error {
	start := co.now()
	bus.mu.Lock()
	defer bus.mu.Unlock()

	ch, err := bus.channel(desc)
	if err != nil {
		co.setErr(err)
		bus.collect(OpMetrics{Op: "trysend", Desc: desc, Start: start, Duration: time.Since(start), Err: err})
		return err
	}
	if ch.full() {
		co.setErr(ErrWouldBlock)
		bus.collect(OpMetrics{Op: "trysend", Desc: desc, Start: start, Duration: time.Since(start), Err: ErrWouldBlock})
		return ErrWouldBlock
	}

	ch.push(item)
	ch.recvWaiters.wakeOne()
	co.clearErr()
	bus.collect(OpMetrics{Op: "trysend", Desc: desc, Start: start, Duration: time.Since(start), Count: 1})
	return nil
}

// Recv pops one item from the channel at desc, suspending the calling
// coroutine while the channel is empty. Each pop wakes one send-waiter and
// one broadcast-waiter, since freeing a slot can satisfy either a blocked
// Send or a blocked Broadcast.
func (co *Coroutine) Recv(ctx context.Context, bus *Bus, desc int) (uint32, error) {
	start := co.now()
	bus.mu.Lock()
	defer bus.mu.Unlock()

	for {
		ch, err := bus.channel(desc)
		if err != nil {
			co.setErr(err)
			bus.collect(OpMetrics{Op: "recv", Desc: desc, Start: start, Duration: time.Since(start), Err: err})
			return 0, err
		}
		if !ch.empty() {
			item := ch.pop()
			ch.sendWaiters.wakeOne()
			bus.broadcastWaiters.wakeOne()
			co.clearErr()
			bus.collect(OpMetrics{Op: "recv", Desc: desc, Start: start, Duration: time.Since(start), Count: 1})
			return item, nil
		}

		co.setErr(ErrWouldBlock)
		if err := bus.suspendSelf(ctx, &ch.recvWaiters); err != nil {
			co.setErr(err)
			bus.collect(OpMetrics{Op: "recv", Desc: desc, Start: start, Duration: time.Since(start), Err: err})
			return 0, err
		}
	}
}

// TryRecv is the non-blocking form of Recv: it returns ErrWouldBlock
// instead of suspending when the channel is empty.
func (co *Coroutine) TryRecv(bus *Bus, desc int) (uint32, error) {
	start := co.now()
	bus.mu.Lock()
	defer bus.mu.Unlock()

	ch, err := bus.channel(desc)
	if err != nil {
		co.setErr(err)
		bus.collect(OpMetrics{Op: "tryrecv", Desc: desc, Start: start, Duration: time.Since(start), Err: err})
		return 0, err
	}
	if ch.empty() {
		co.setErr(ErrWouldBlock)
		bus.collect(OpMetrics{Op: "tryrecv", Desc: desc, Start: start, Duration: time.Since(start), Err: ErrWouldBlock})
		return 0, ErrWouldBlock
	}

	item := ch.pop()
	ch.sendWaiters.wakeOne()
	bus.broadcastWaiters.wakeOne()
	co.clearErr()
	bus.collect(OpMetrics{Op: "tryrecv", Desc: desc, Start: start, Duration: time.Since(start), Count: 1})
	return item, nil
}

// now wraps time.Now; it is the clock every operation reads for
// OpMetrics.Start.
func (co *Coroutine) now() time.Time { return time.Now() }
