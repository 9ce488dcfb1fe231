package corobus

import (
	"context"
	"time"
)

// SendBatch pushes as many of items as currently fit, blocking only until
// at least one slot is free (not until all of items fit). It returns the
// count actually transferred; that count is 0 only when items is empty.
func (co *Coroutine) SendBatch(ctx context.Context, bus *Bus, desc int, items []uint32) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	start := co.now()
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if !bus.features.batch {
		co.setErr(ErrFeatureDisabled)
		bus.collect(OpMetrics{Op: "sendbatch", Desc: desc, Start: start, Duration: time.Since(start), Err: ErrFeatureDisabled})
		return 0, ErrFeatureDisabled
	}

	for {
		ch, err := bus.channel(desc)
		if err != nil {
			co.setErr(err)
			bus.collect(OpMetrics{Op: "sendbatch", Desc: desc, Start: start, Duration: time.Since(start), Err: err})
			return 0, err
		}
		if ch.free() > 0 {
			n := min(ch.free(), len(items))
			for i := 0; i < n; i++ {
				ch.push(items[i])
			}
			for i := 0; i < n; i++ {
				ch.recvWaiters.wakeOne()
			}
			co.clearErr()
			bus.collect(OpMetrics{Op: "sendbatch", Desc: desc, Start: start, Duration: time.Since(start), Count: n})
			return n, nil
		}

		co.setErr(ErrWouldBlock)
		if err := bus.suspendSelf(ctx, &ch.sendWaiters); err != nil {
			co.setErr(err)
			bus.collect(OpMetrics{Op: "sendbatch", Desc: desc, Start: start, Duration: time.Since(start), Err: err})
			return 0, err
		}
	}
}

// TrySendBatch is the non-blocking form of SendBatch.
func (co *Coroutine) TrySendBatch(bus *Bus, desc int, items []uint32) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	start := co.now()
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if !bus.features.batch {
		co.setErr(ErrFeatureDisabled)
		bus.collect(OpMetrics{Op: "trysendbatch", Desc: desc, Start: start, Duration: time.Since(start), Err: ErrFeatureDisabled})
		return 0, ErrFeatureDisabled
	}

	ch, err := bus.channel(desc)
	if err != nil {
		co.setErr(err)
		bus.collect(OpMetrics{Op: "trysendbatch", Desc: desc, Start: start, Duration: time.Since(start), Err: err})
		return 0, err
	}
	if ch.free() == 0 {
		co.setErr(ErrWouldBlock)
		bus.collect(OpMetrics{Op: "trysendbatch", Desc: desc, Start: start, Duration: time.Since(start), Err: ErrWouldBlock})
		return 0, ErrWouldBlock
	}

	n := min(ch.free(), len(items))
	for i := 0; i < n; i++ {
		ch.push(items[i])
	}
	for i := 0; i < n; i++ {
		ch.recvWaiters.wakeOne()
	}
	co.clearErr()
	bus.collect(OpMetrics{Op: "trysendbatch", Desc: desc, Start: start, Duration: time.Since(start), Count: n})
	return n, nil
}

// RecvBatch pops as many items as currently available, up to len(out),
// blocking only until the channel is non-empty. It returns the count
// actually transferred.
func (co *Coroutine) RecvBatch(ctx context.Context, bus *Bus, desc int, out []uint32) (int, error) {
	if len(out) == 0 {
		return 0, nil
	}

	start := co.now()
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if !bus.features.batch {
		co.setErr(ErrFeatureDisabled)
		bus.collect(OpMetrics{Op: "recvbatch", Desc: desc, Start: start, Duration: time.Since(start), Err: ErrFeatureDisabled})
		return 0, ErrFeatureDisabled
	}

	for {
		ch, err := bus.channel(desc)
		if err != nil {
			co.setErr(err)
			bus.collect(OpMetrics{Op: "recvbatch", Desc: desc, Start: start, Duration: time.Since(start), Err: err})
			return 0, err
		}
		if !ch.empty() {
			n := min(ch.Len(), len(out))
			for i := 0; i < n; i++ {
				out[i] = ch.pop()
			}
			for i := 0; i < n; i++ {
				ch.sendWaiters.wakeOne()
			}
			bus.broadcastWaiters.wakeOne()
			co.clearErr()
			bus.collect(OpMetrics{Op: "recvbatch", Desc: desc, Start: start, Duration: time.Since(start), Count: n})
			return n, nil
		}

		co.setErr(ErrWouldBlock)
		if err := bus.suspendSelf(ctx, &ch.recvWaiters); err != nil {
			co.setErr(err)
			bus.collect(OpMetrics{Op: "recvbatch", Desc: desc, Start: start, Duration: time.Since(start), Err: err})
			return 0, err
		}
	}
}

// TryRecvBatch is the non-blocking form of RecvBatch.
func (co *Coroutine) TryRecvBatch(bus *Bus, desc int, out []uint32) (int, error) {
	if len(out) == 0 {
		return 0, nil
	}

	start := co.now()
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if !bus.features.batch {
		co.setErr(ErrFeatureDisabled)
		bus.collect(OpMetrics{Op: "tryrecvbatch", Desc: desc, Start: start, Duration: time.Since(start), Err: ErrFeatureDisabled})
		return 0, ErrFeatureDisabled
	}

	ch, err := bus.channel(desc)
	if err != nil {
		co.setErr(err)
		bus.collect(OpMetrics{Op: "tryrecvbatch", Desc: desc, Start: start, Duration: time.Since(start), Err: err})
		return 0, err
	}
	if ch.empty() {
		co.setErr(ErrWouldBlock)
		bus.collect(OpMetrics{Op: "tryrecvbatch", Desc: desc, Start: start, Duration: time.Since(start), Err: ErrWouldBlock})
		return 0, ErrWouldBlock
	}

	n := min(ch.Len(), len(out))
	for i := 0; i < n; i++ {
		out[i] = ch.pop()
	}
	for i := 0; i < n; i++ {
		ch.sendWaiters.wakeOne()
	}
	bus.broadcastWaiters.wakeOne()
	co.clearErr()
	bus.collect(OpMetrics{Op: "tryrecvbatch", Desc: desc, Start: start, Duration: time.Since(start), Count: n})
	return n, nil
}
