package corobus

import "errors"

var (
	// ErrNoChannel indicates the descriptor does not name an open channel:
	// out of range, pointing at an empty slot, or closed while a coroutine
	// was parked on it.
	ErrNoChannel = errors.New("corobus: no such channel")

	// ErrWouldBlock indicates a non-blocking operation could not make
	// progress without suspension. Blocking operations also record this on
	// the calling coroutine's last-error slot while parked, but never
	// return it directly.
	ErrWouldBlock = errors.New("corobus: would block")

	// ErrInvalidCapacity indicates Open was called with a non-positive
	// capacity.
	ErrInvalidCapacity = errors.New("corobus: invalid capacity")

	// ErrBusy indicates Bus.Close was called while coroutines remain
	// parked on one or more channels or on the broadcast waiter queue.
	ErrBusy = errors.New("corobus: bus has parked coroutines")

	// ErrFeatureDisabled indicates a broadcast or batch operation was
	// called on a Bus constructed with that feature turned off.
	ErrFeatureDisabled = errors.New("corobus: feature disabled")

	// ErrBusClosed indicates the Bus has been closed via Bus.Close and no
	// longer accepts new channels or operations.
	ErrBusClosed = errors.New("corobus: bus is closed")
)
