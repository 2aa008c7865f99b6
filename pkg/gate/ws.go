package gate

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"gitlab.heather.loc/helios/momapi/pkg/momclient"
)

// wsTransport carries the wire protocol over a websocket. Every frame is
// one binary message; a reader goroutine feeds the sink until the socket
// fails or closes.
type wsTransport struct {
	logger *zap.Logger
	conn   *websocket.Conn
	sink   momclient.Sink
	addr   string
	sendMx sync.Mutex
	closed uint32
}

func (t *wsTransport) Send(data []byte) error {
	t.sendMx.Lock()
	defer t.sendMx.Unlock()
	if err := t.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.logger.Error("ws: fail send", zap.String("gate", t.addr), zap.Error(err))
		return errors.WithMessage(err, "fail send via websocket")
	}
	return nil
}

func (t *wsTransport) Close() error {
	if !atomic.CompareAndSwapUint32(&t.closed, 0, 1) {
		return nil
	}
	return t.conn.Close()
}

func (t *wsTransport) readMessages() {
	for {
		msgType, msg, err := t.conn.ReadMessage()
		if err != nil {
			if atomic.LoadUint32(&t.closed) == 1 {
				return
			}
			t.logger.Warn("ws: receive data error", zap.Error(err), zap.String("gate", t.addr))
			t.sink.OnDown(err)
			return
		}
		if msgType != websocket.BinaryMessage {
			t.logger.Warn("ws: skip non-binary message", zap.Int("type", msgType), zap.String("gate", t.addr))
			continue
		}
		t.sink.OnBytes(msg)
	}
}

func createWsTransport(logger *zap.Logger, addr string, sink momclient.Sink) (momclient.Transport, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.Dial(addr, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "fail dial "+addr)
	}
	tr := &wsTransport{
		logger: logger,
		conn:   conn,
		sink:   sink,
		addr:   addr,
	}
	go tr.readMessages()
	sink.OnUp()
	return tr, nil
}
