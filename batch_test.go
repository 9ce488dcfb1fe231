package corobus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arsbeglov/corobus"
)

func TestSendBatchTransfersPartial(t *testing.T) {
	bus := corobus.NewBus()
	co := corobus.Spawn("")
	ctx := context.Background()

	desc, err := co.Open(ctx, bus, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := co.TrySend(bus, desc, 0); err != nil {
		t.Fatalf("TrySend: %v", err)
	}

	n, err := co.SendBatch(ctx, bus, desc, []uint32{10, 20, 30, 40, 50})
	if err != nil {
		t.Fatalf("SendBatch: %v", err)
	}
	if n != 3 {
		t.Fatalf("SendBatch transferred %d, want 3", n)
	}

	out := make([]uint32, 10)
	n, err = co.RecvBatch(ctx, bus, desc, out)
	if err != nil {
		t.Fatalf("RecvBatch: %v", err)
	}
	if n != 4 {
		t.Fatalf("RecvBatch transferred %d, want 4", n)
	}
	want := []uint32{0, 10, 20, 30}
	for i, w := range want {
		if out[i] != w {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], w)
		}
	}
}

func TestSendBatchEmptyInputIsNoop(t *testing.T) {
	bus := corobus.NewBus()
	co := corobus.Spawn("")
	ctx := context.Background()

	desc, err := co.Open(ctx, bus, 1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	n, err := co.SendBatch(ctx, bus, desc, nil)
	if err != nil || n != 0 {
		t.Fatalf("SendBatch(nil) = %d, %v, want 0, nil", n, err)
	}
}

func TestTryRecvBatchOnEmptyChannel(t *testing.T) {
	bus := corobus.NewBus()
	co := corobus.Spawn("")
	ctx := context.Background()

	desc, err := co.Open(ctx, bus, 2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	out := make([]uint32, 4)
	if _, err := co.TryRecvBatch(bus, desc, out); !errors.Is(err, corobus.ErrWouldBlock) {
		t.Fatalf("TryRecvBatch on empty = %v, want ErrWouldBlock", err)
	}
}

func TestSendBatchParksUntilRoom(t *testing.T) {
	bus := corobus.NewBus()
	producer := corobus.Spawn("producer")
	consumer := corobus.Spawn("consumer")
	ctx := context.Background()

	desc, err := producer.Open(ctx, bus, 2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := producer.SendBatch(ctx, bus, desc, []uint32{1, 2}); err != nil {
		t.Fatalf("fill SendBatch: %v", err)
	}

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := producer.SendBatch(ctx, bus, desc, []uint32{3, 4, 5})
		done <- result{n, err}
	}()
	time.Sleep(20 * time.Millisecond)

	if _, err := consumer.Recv(ctx, bus, desc); err != nil {
		t.Fatalf("Recv: %v", err)
	}

	select {
	case r := <-done:
		if r.err != nil || r.n != 1 {
			t.Fatalf("parked SendBatch = %d, %v, want 1, nil", r.n, r.err)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for parked SendBatch")
	}
}
