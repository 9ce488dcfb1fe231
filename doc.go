// Package corobus implements a cooperative in-process message bus for
// coroutines realized as goroutines coordinated by a single scheduler
// mutex per [Bus]. Coroutines send and receive uint32 items across bounded
// FIFO channels identified by small integer descriptors, suspending when an
// operation cannot make progress and resuming when another coroutine frees
// capacity, closes a channel, or changes the set of open channels.
//
// # Quick Start
//
//	bus := corobus.NewBus()
//	defer bus.Close()
//
//	co := corobus.Spawn("")
//	desc, _ := co.Open(context.Background(), bus, 1)
//	_ = co.Send(context.Background(), bus, desc, 42)
//	v, _ := co.Recv(context.Background(), bus, desc)
//
// # Categories
//
// Point-to-point: [Coroutine.Send], [Coroutine.TrySend], [Coroutine.Recv], [Coroutine.TryRecv]
//
// Batch: [Coroutine.SendBatch], [Coroutine.TrySendBatch], [Coroutine.RecvBatch], [Coroutine.TryRecvBatch]
//
// Fan-out: [Coroutine.Broadcast], [Coroutine.TryBroadcast]
//
// Lifecycle: [NewBus], [Bus.Close], [Coroutine.Open], [Coroutine.CloseChannel]
//
// For the cooperative scheduling primitives, see waiter.go (waiter queues,
// wake) and Bus.suspendSelf in bus.go (suspend).
package corobus
