package lemon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelFIFO(t *testing.T) {
	ch := NewChannel(10)

	for i := 0; i < 10; i++ {
		res := ch.Send(Token{Kind: KindIdentifier, Line: uint32(i)})
		require.Equal(t, SendOK, res)
	}
	ch.Close()

	for i := 0; i < 10; i++ {
		r := ch.Recv()
		require.True(t, r.Ok)
		assert.Equal(t, uint32(i), r.Token.Line)
	}

	r := ch.Recv()
	assert.False(t, r.Ok)
	assert.Equal(t, ChannelDrained, ch.State())
}

func TestChannelBlocksWhenFull(t *testing.T) {
	ch := NewChannel(1)
	require.Equal(t, SendOK, ch.Send(Token{Kind: KindComma}))

	done := make(chan SendResult, 1)
	go func() {
		done <- ch.Send(Token{Kind: KindSemicolon})
	}()

	select {
	case <-done:
		t.Fatal("second send should have blocked while the buffer was full")
	case <-time.After(50 * time.Millisecond):
	}

	r := ch.Recv()
	require.True(t, r.Ok)
	assert.Equal(t, KindComma, r.Token.Kind)

	select {
	case res := <-done:
		assert.Equal(t, SendOK, res)
	case <-time.After(time.Second):
		t.Fatal("send never unblocked after a slot freed up")
	}
}

func TestChannelBlocksWhenEmpty(t *testing.T) {
	ch := NewChannel(4)

	done := make(chan RecvResult, 1)
	go func() {
		done <- ch.Recv()
	}()

	select {
	case <-done:
		t.Fatal("recv should have blocked on an empty, open channel")
	case <-time.After(50 * time.Millisecond):
	}

	ch.Send(Token{Kind: KindDot})

	select {
	case r := <-done:
		require.True(t, r.Ok)
		assert.Equal(t, KindDot, r.Token.Kind)
	case <-time.After(time.Second):
		t.Fatal("recv never unblocked after a send")
	}
}

func TestChannelCloseUnblocksPendingSend(t *testing.T) {
	ch := NewChannel(1)
	require.Equal(t, SendOK, ch.Send(Token{Kind: KindComma}))

	done := make(chan SendResult, 1)
	go func() {
		done <- ch.Send(Token{Kind: KindSemicolon})
	}()

	time.Sleep(20 * time.Millisecond)
	ch.Close()

	select {
	case res := <-done:
		assert.Equal(t, SendClosed, res)
	case <-time.After(time.Second):
		t.Fatal("close did not unblock a pending send in finite time")
	}
}

func TestChannelCloseDrainsBufferedBeforeEndOfStream(t *testing.T) {
	ch := NewChannel(4)
	ch.Send(Token{Kind: KindLet})
	ch.Send(Token{Kind: KindMut})
	ch.Close()

	r1 := ch.Recv()
	require.True(t, r1.Ok)
	assert.Equal(t, KindLet, r1.Token.Kind)

	r2 := ch.Recv()
	require.True(t, r2.Ok)
	assert.Equal(t, KindMut, r2.Token.Kind)

	r3 := ch.Recv()
	assert.False(t, r3.Ok)
}

func TestChannelSendAfterCloseFails(t *testing.T) {
	ch := NewChannel(4)
	ch.Close()

	assert.Equal(t, SendClosed, ch.Send(Token{Kind: KindLet}))
}

func TestChannelCloseIsIdempotent(t *testing.T) {
	ch := NewChannel(4)
	ch.Close()
	assert.NotPanics(t, ch.Close)
}
