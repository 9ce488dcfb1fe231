package corobus

import (
	"sync"

	"github.com/google/uuid"
)

// Coroutine is the caller's identity on a Bus. Every blocking and
// non-blocking operation is a method on *Coroutine rather than acting on
// some ambient "current coroutine": Go has no native coroutine-local
// storage, and threading the identity through the receiver makes that
// identity explicit and race-free wherever a *Coroutine is shared across
// goroutines.
//
// A Coroutine carries its own last-error slot rather than participating in
// a single process-wide one, so that two coroutines blocked on independent
// channels never clobber each other's error state.
type Coroutine struct {
	name string

	mu      sync.Mutex
	lastErr error
}

// Spawn creates a Coroutine identity. An empty name is replaced with a
// generated one, suitable for log lines and test failure messages.
func Spawn(name string) *Coroutine {
	if name == "" {
		name = uuid.NewString()
	}
	return &Coroutine{name: name}
}

// Name returns the coroutine's name, as given to Spawn or generated.
func (co *Coroutine) Name() string { return co.name }

// LastError returns the error left by the coroutine's most recent bus
// operation, or nil if that operation succeeded. It mirrors the errno-style
// side channel of the system this module is modeled on, scoped per
// coroutine instead of per process.
func (co *Coroutine) LastError() error {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.lastErr
}

func (co *Coroutine) setErr(err error) {
	co.mu.Lock()
	co.lastErr = err
	co.mu.Unlock()
}

func (co *Coroutine) clearErr() {
	co.mu.Lock()
	co.lastErr = nil
	co.mu.Unlock()
}
