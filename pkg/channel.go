package lemon

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// channelState is the explicit three-state lifecycle spec.md §3 assigns to
// the token channel. The teacher's Lexer just closes a plain Go channel
// (pkg/lexer.go's Do/Chan); this type makes the closed-vs-drained
// distinction spec.md requires observable to callers that care (tests,
// diagnostics) without changing Send/Recv's blocking behaviour.
type channelState uint8

const (
	ChannelOpen channelState = iota
	ChannelClosedByProducer
	ChannelDrained
)

// SendResult is the outcome of [Channel.Send].
type SendResult uint8

const (
	SendOK SendResult = iota
	SendClosed
)

// RecvResult pairs a received token with whether the channel has anything
// left to give.
type RecvResult struct {
	Token Token
	// Ok is false exactly when the channel is closed and drained — the
	// end-of-stream signal from spec.md §4.2.
	Ok bool
}

// Channel is a bounded, single-producer/single-consumer queue of [Token]
// values with the explicit close semantics spec.md §3/§4.2 specify: FIFO
// delivery, no loss of anything sent before Close, and a finite-time unblock
// of a producer stuck in Send once the consumer closes the channel from its
// side.
//
// Capacity gating is built on two counting semaphores rather than a native
// Go channel so Close can cancel an in-flight Send deterministically (a
// plain `chan Token` has no way to abort a blocked send other than closing
// the channel itself, which panics on a concurrent send). This repurposes
// golang.org/x/sync/semaphore, which the teacher's go.mod already pulled in
// for build-pipeline error handling (see DESIGN.md).
type Channel struct {
	mu   sync.Mutex
	buf  []Token
	head int
	size int

	// freeSlots has one permit per empty slot; Send acquires one before
	// writing, Recv releases one after reading.
	freeSlots *semaphore.Weighted
	// filled has one permit per occupied slot; Recv acquires one before
	// reading, Send releases one after writing.
	filled *semaphore.Weighted

	closeOnce sync.Once
	ctx       context.Context
	cancel    context.CancelFunc

	stateMu sync.Mutex
	state   channelState
}

// NewChannel allocates a ring buffer of the given capacity. A non-positive
// capacity is clamped to 1, since a zero-capacity SPSC channel can never
// make progress under this implementation's blocking discipline.
func NewChannel(capacity int) *Channel {
	if capacity < 1 {
		capacity = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	filled := semaphore.NewWeighted(int64(capacity))
	// Weighted starts with every permit available, the right initial state
	// for freeSlots (all slots empty) but the inverse of what filled needs
	// (no slots occupied yet). Claiming every permit up front inverts its
	// sense: Release (called by Send) hands a permit back as a slot fills,
	// and Acquire (called by Recv) blocks until one is handed back, giving
	// the classic "starts empty, producer signals" counting semaphore.
	_ = filled.Acquire(context.Background(), int64(capacity))

	return &Channel{
		buf:       make([]Token, capacity),
		freeSlots: semaphore.NewWeighted(int64(capacity)),
		filled:    filled,
		ctx:       ctx,
		cancel:    cancel,
		state:     ChannelOpen,
	}
}

// Send blocks while the buffer is full and the channel remains open, then
// publishes tok and returns [SendOK]. If the channel is or becomes closed
// before a slot is available, Send returns [SendClosed] without publishing
// tok. Send must be called by exactly one producer goroutine.
func (c *Channel) Send(tok Token) SendResult {
	if err := c.freeSlots.Acquire(c.ctx, 1); err != nil {
		// Closed while waiting for room: no slot was reserved, nothing to
		// undo.
		return SendClosed
	}

	if c.State() != ChannelOpen {
		c.freeSlots.Release(1)
		return SendClosed
	}

	c.mu.Lock()
	idx := (c.head + c.size) % len(c.buf)
	c.buf[idx] = tok
	c.size++
	c.mu.Unlock()

	c.filled.Release(1)
	return SendOK
}

// Recv blocks while the buffer is empty and the channel remains open, then
// returns the oldest pending token with Ok set to true. Once the channel is
// closed and fully drained, Recv returns a zero [RecvResult] with Ok false.
// Recv must be called by exactly one consumer goroutine.
func (c *Channel) Recv() RecvResult {
	if err := c.filled.Acquire(c.ctx, 1); err != nil {
		// Closed, and no permit was immediately available: the buffer was
		// already empty, since filled permits track buffered tokens 1:1.
		c.markDrained()
		return RecvResult{}
	}

	c.mu.Lock()
	tok := c.buf[c.head]
	c.buf[c.head] = Token{}
	c.head = (c.head + 1) % len(c.buf)
	c.size--
	empty := c.size == 0
	c.mu.Unlock()

	c.freeSlots.Release(1)

	if empty {
		c.markDrained()
	}

	return RecvResult{Token: tok, Ok: true}
}

// Close marks the channel closed. It is idempotent and safe to call from
// either the producer (normal EOF shutdown, spec.md §4.3) or the consumer
// (early abandonment, spec.md §5): either way, any Send blocked waiting for
// a free slot unblocks in finite time and observes [SendClosed].
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		c.stateMu.Lock()
		if c.state == ChannelOpen {
			c.state = ChannelClosedByProducer
		}
		c.stateMu.Unlock()

		c.cancel()
	})
}

// State reports the channel's current lifecycle state. It is informational
// only — tests and diagnostics consult it — and is not itself part of the
// blocking Send/Recv contract.
func (c *Channel) State() channelState {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

func (c *Channel) markDrained() {
	c.stateMu.Lock()
	if c.state == ChannelClosedByProducer {
		c.state = ChannelDrained
	}
	c.stateMu.Unlock()
}
