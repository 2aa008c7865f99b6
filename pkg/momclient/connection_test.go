package momclient_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gotest.tools/assert"

	"gitlab.heather.loc/helios/momapi/pkg/mom"
	"gitlab.heather.loc/helios/momapi/pkg/momclient"
)

func newTestConnection(t *testing.T, opts ...momclient.ConnectionOption) (*momclient.Connection, *momclient.Loopback, chan *mom.Response) {
	t.Helper()
	events := make(chan *mom.Response, 100)
	lb, factory := momclient.NewLoopbackFactory()
	conn := momclient.NewConnection(zap.NewNop(), "test", func(rsp *mom.Response) {
		events <- rsp
	}, opts...)
	assert.NilError(t, conn.Bind(factory))
	return conn, lb, events
}

func waitEvent(t *testing.T, events chan *mom.Response) *mom.Response {
	t.Helper()
	select {
	case rsp := <-events:
		return rsp
	case <-time.After(5 * time.Second):
		t.Fatal("no event delivered")
		return nil
	}
}

func encodeSignal(t *testing.T, kind mom.Kind) []byte {
	t.Helper()
	data, err := mom.EncodeResponse(&mom.Response{Kind: kind})
	assert.NilError(t, err)
	return data
}

func TestConnection_Handshake(t *testing.T) {
	conn, lb, events := newTestConnection(t)
	defer conn.Stop()

	assert.NilError(t, conn.Connect())
	assert.Assert(t, !conn.IsConnected())

	sent := lb.Sent()
	assert.Equal(t, len(sent), 1)
	assert.DeepEqual(t, sent[0], []byte{byte(mom.KindInit)})

	lb.Inject(encodeSignal(t, mom.KindInit))
	assert.Equal(t, waitEvent(t, events).Kind, mom.KindConnected)
	assert.Assert(t, conn.IsConnected())
}

func TestConnection_SendBeforeConnected(t *testing.T) {
	conn, _, _ := newTestConnection(t)
	defer conn.Stop()

	err := conn.Send(&mom.Request{Kind: mom.KindQryAccount})
	assert.Assert(t, errors.Is(err, momclient.ErrNotConnected))

	assert.NilError(t, conn.Connect())
	err = conn.Send(&mom.Request{Kind: mom.KindQryAccount})
	assert.Assert(t, errors.Is(err, momclient.ErrNotConnected))
}

func TestConnection_PongReply(t *testing.T) {
	conn, lb, events := newTestConnection(t)
	defer conn.Stop()

	assert.NilError(t, conn.Connect())
	lb.Inject(encodeSignal(t, mom.KindInit))
	waitEvent(t, events)

	lb.Inject(encodeSignal(t, mom.KindPing))

	deadline := time.Now().Add(5 * time.Second)
	for {
		var pong bool
		for _, frame := range lb.Sent() {
			if len(frame) == 1 && frame[0] == byte(mom.KindPong) {
				pong = true
			}
		}
		if pong {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("no pong sent")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestConnection_PeerCloseDisconnectsOnce(t *testing.T) {
	conn, lb, events := newTestConnection(t)
	defer conn.Stop()

	assert.NilError(t, conn.Connect())
	lb.Inject(encodeSignal(t, mom.KindInit))
	waitEvent(t, events)

	lb.Inject(encodeSignal(t, mom.KindClose))
	lb.Inject(encodeSignal(t, mom.KindClose))
	lb.Down(errors.New("also down"))

	rsp := waitEvent(t, events)
	assert.Equal(t, rsp.Kind, mom.KindDisconnected)
	info, ok := rsp.Payload.(*mom.DisconnectInfo)
	assert.Assert(t, ok)
	assert.Assert(t, info.Graceful)
	assert.Assert(t, !conn.IsConnected())

	// repeated triggers must not emit a second event
	select {
	case rsp = <-events:
		t.Fatalf("unexpected second event %s", rsp.Kind.String())
	case <-time.After(100 * time.Millisecond):
	}
}

func TestConnection_TransportDown(t *testing.T) {
	conn, lb, events := newTestConnection(t)
	defer conn.Stop()

	assert.NilError(t, conn.Connect())
	lb.Inject(encodeSignal(t, mom.KindInit))
	waitEvent(t, events)

	lb.Down(errors.New("broken pipe"))

	rsp := waitEvent(t, events)
	assert.Equal(t, rsp.Kind, mom.KindDisconnected)
	info, ok := rsp.Payload.(*mom.DisconnectInfo)
	assert.Assert(t, ok)
	assert.Assert(t, !info.Graceful)
	assert.Equal(t, info.Reason, "transport")
}

func TestConnection_HeartbeatTimeout(t *testing.T) {
	conn, lb, events := newTestConnection(t, momclient.WithHeartbeat(10*time.Millisecond, 50*time.Millisecond))
	defer conn.Stop()

	assert.NilError(t, conn.Connect())
	lb.Inject(encodeSignal(t, mom.KindInit))
	waitEvent(t, events)

	// go silent and wait for the watchdog
	rsp := waitEvent(t, events)
	assert.Equal(t, rsp.Kind, mom.KindDisconnected)
	info, ok := rsp.Payload.(*mom.DisconnectInfo)
	assert.Assert(t, ok)
	assert.Assert(t, !info.Graceful)
	assert.Equal(t, info.Reason, "timeout")
}

func TestConnection_DeliversResponsesInOrder(t *testing.T) {
	conn, lb, events := newTestConnection(t)
	defer conn.Stop()

	assert.NilError(t, conn.Connect())
	lb.Inject(encodeSignal(t, mom.KindInit))
	waitEvent(t, events)

	const total = 100
	for i := 0; i < total; i++ {
		data, err := mom.EncodeResponse(&mom.Response{
			Kind:    mom.KindRspQryTrade,
			Seq:     uint32(i),
			IsLast:  i == total-1,
			Payload: &mom.Trade{TradeID: "t"},
		})
		assert.NilError(t, err)
		lb.Inject(data)
	}
	for i := 0; i < total; i++ {
		rsp := waitEvent(t, events)
		assert.Equal(t, rsp.Kind, mom.KindRspQryTrade)
		assert.Equal(t, rsp.Seq, uint32(i))
		assert.Equal(t, rsp.IsLast, i == total-1)
	}
}

func TestConnection_MalformedFrame(t *testing.T) {
	conn, lb, events := newTestConnection(t)
	defer conn.Stop()

	assert.NilError(t, conn.Connect())
	lb.Inject(encodeSignal(t, mom.KindInit))
	waitEvent(t, events)

	lb.Inject([]byte{byte(mom.KindRspQryOrder), 1, 0, 0, 0, 1, 3, '{', 'x', '}'})

	rsp := waitEvent(t, events)
	assert.Equal(t, rsp.Kind, mom.KindRspError)
	_, ok := rsp.Payload.(*mom.DecodeError)
	assert.Assert(t, ok)
	// the receive loop survives malformed input
	assert.Assert(t, conn.IsConnected())
}
