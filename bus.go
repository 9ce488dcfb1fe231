package corobus

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Bus is a sparse table of Channels indexed by small non-negative integer
// descriptors, plus the broadcast waiter queue and, optionally, an
// open-channel limiter. All bus and channel state is guarded by mu: exactly
// one coroutine executes bus code at a time, which is what makes Broadcast's
// scan-then-push step atomic and makes the close protocol in Channel safe
// without any per-channel locking of its own.
type Bus struct {
	mu sync.Mutex

	slots            []*Channel
	broadcastWaiters waiterQueue
	openWaiters      waiterQueue

	features    features
	chanLimit   *semaphore.Weighted
	maxChannels int

	logger  Logger
	metrics MetricsCollector

	closed bool
}

// NewBus constructs a Bus. By default broadcast and batch operations are
// enabled and the number of open channels is unbounded.
func NewBus(opts ...Option) *Bus {
	cfg := defaultBusConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Bus{
		features:    cfg.features,
		maxChannels: cfg.maxChannels,
		logger:      cfg.logger,
		metrics:     cfg.metrics,
	}
	if cfg.maxChannels > 0 {
		b.chanLimit = semaphore.NewWeighted(int64(cfg.maxChannels))
	}
	return b
}

// Close tears down the Bus. It fails with ErrBusy if any coroutine is
// parked on a channel's send/recv queues, on the broadcast waiter queue, or
// on the open-channel limiter; destroying their storage out from under them
// would be a use-after-free once they resume. Close is not idempotent: a
// second call on an already-closed Bus fails with ErrBusClosed. Once
// closed, every other operation on the Bus also fails with ErrBusClosed,
// except CloseChannel, which stays silent.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}
	if !b.broadcastWaiters.empty() || !b.openWaiters.empty() {
		return ErrBusy
	}
	for _, ch := range b.slots {
		if ch == nil {
			continue
		}
		if !ch.sendWaiters.empty() || !ch.recvWaiters.empty() {
			return ErrBusy
		}
	}

	b.slots = nil
	b.closed = true
	b.logger.Info("corobus: bus closed")
	return nil
}

// channel resolves desc to its Channel. Must be called with mu held, and
// re-invoked after every resume from suspension rather than cached across
// it: the channel may have been closed while the caller was parked.
func (b *Bus) channel(desc int) (*Channel, error) {
	if b.closed {
		return nil, ErrBusClosed
	}
	if desc < 0 || desc >= len(b.slots) || b.slots[desc] == nil {
		return nil, ErrNoChannel
	}
	return b.slots[desc], nil
}

// openChannelSlots returns the descriptors of every currently open channel,
// in ascending order. Must be called with mu held.
func (b *Bus) openChannelSlots() []int {
	var open []int
	for i, ch := range b.slots {
		if ch != nil {
			open = append(open, i)
		}
	}
	return open
}

// allocSlot finds the lowest free slot index, reusing a hole left by a
// prior close when one exists, and otherwise growing the table. Must be
// called with mu held.
func (b *Bus) allocSlot() int {
	for i, ch := range b.slots {
		if ch == nil {
			return i
		}
	}
	b.slots = append(b.slots, nil)
	return len(b.slots) - 1
}

// suspendSelf parks the calling coroutine on q until woken or ctx is done.
// The caller must hold mu; suspendSelf releases it for the duration of the
// wait and reacquires it before returning, so the bus is never left
// unguarded and the caller never need hold mu across a suspension point
// itself.
func (b *Bus) suspendSelf(ctx context.Context, q *waiterQueue) error {
	w := newWaiter()
	q.enqueue(w)

	b.mu.Unlock()
	var cancelled bool
	select {
	case <-w.wake:
	case <-ctx.Done():
		cancelled = true
	}
	b.mu.Lock()

	// Idempotent: a no-op if a waker already detached w (the normal path),
	// and the only path that removes w from q if ctx fired instead.
	w.detach()

	if cancelled {
		return ctx.Err()
	}
	return nil
}

// Open allocates a channel of the given capacity and returns its
// descriptor. Descriptors are the lowest non-negative index with an empty
// slot, so they stay dense even as channels are opened and closed. If the
// Bus was constructed with WithMaxChannels and the cap is currently
// reached, Open suspends the caller until a channel closes. A successful
// Open wakes every parked broadcaster, since the open-channel set changed.
func (co *Coroutine) Open(ctx context.Context, bus *Bus, capacity int) (int, error) {
	if capacity <= 0 {
		co.setErr(ErrInvalidCapacity)
		return -1, ErrInvalidCapacity
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		co.setErr(ErrBusClosed)
		return -1, ErrBusClosed
	}

	for {
		if bus.chanLimit == nil || bus.chanLimit.TryAcquire(1) {
			desc := bus.allocSlot()
			bus.slots[desc] = newChannel(capacity)
			bus.broadcastWaiters.wakeAll()
			co.clearErr()
			bus.logger.Debug("corobus: channel opened", "desc", desc, "capacity", capacity)
			return desc, nil
		}

		co.setErr(ErrWouldBlock)
		if err := bus.suspendSelf(ctx, &bus.openWaiters); err != nil {
			co.setErr(err)
			return -1, err
		}
	}
}

// CloseChannel destroys the channel at desc, if any. Closing an invalid or
// already-closed descriptor is silent: idempotent close is a deliberate
// contract, not an error condition.
//
// The slot is cleared before any waiter is woken, so coroutines resuming
// into the bus observe ErrNoChannel rather than touching the freed
// Channel. Every send- and recv-waiter is woken, then every
// broadcast-waiter (the open-channel set just changed), then, if a channel
// limiter is configured, one unit is returned to it and one parked Open is
// woken.
func (co *Coroutine) CloseChannel(bus *Bus, desc int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if desc < 0 || desc >= len(bus.slots) || bus.slots[desc] == nil {
		return
	}
	ch := bus.slots[desc]
	bus.slots[desc] = nil

	ch.sendWaiters.wakeAll()
	ch.recvWaiters.wakeAll()
	bus.broadcastWaiters.wakeAll()

	if bus.chanLimit != nil {
		bus.chanLimit.Release(1)
		bus.openWaiters.wakeOne()
	}

	bus.logger.Debug("corobus: channel closed", "desc", desc)
}
