package gate

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pebbe/zmq4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"gitlab.heather.loc/helios/momapi/pkg/momclient"
)

type configZmqGate struct {
	PushAddr  string
	PullAddr  string
	PublicKey string
}

// zmqTransport carries the wire protocol over a PUSH/PULL socket pair:
// PUSH for outbound requests, PULL for inbound responses. A monitor
// socket per pair reports connect and close events to the sink.
type zmqTransport struct {
	logger *zap.Logger
	ctx    *zmq4.Context
	push   *zmq4.Socket
	pull   *zmq4.Socket
	sink   momclient.Sink
	addr   string
	sendMx sync.Mutex
	closed uint32
}

func (t *zmqTransport) Send(data []byte) error {
	t.sendMx.Lock()
	defer t.sendMx.Unlock()
	if _, err := t.push.SendBytes(data, zmq4.DONTWAIT); err != nil {
		t.logger.Error("zmq: fail send", zap.String("gate", t.addr), zap.Error(err))
		return errors.WithMessage(err, "fail send via zmq")
	}
	return nil
}

func (t *zmqTransport) Close() error {
	if !atomic.CompareAndSwapUint32(&t.closed, 0, 1) {
		return nil
	}
	if err := t.push.Close(); err != nil {
		return errors.WithMessage(err, "fail close push socket")
	}
	return t.pull.Close()
}

func (t *zmqTransport) readMessages() {
	for {
		msg, err := t.pull.RecvBytes(0)
		if err != nil {
			if atomic.LoadUint32(&t.closed) == 1 {
				return
			}
			t.logger.Error("zmq: receive data error", zap.Error(err), zap.String("gate", t.addr))
			t.sink.OnDown(err)
			return
		}
		t.sink.OnBytes(msg)
	}
}

func (t *zmqTransport) handleMonitor(online chan bool) {
	for status := range online {
		if status {
			t.sink.OnUp()
		} else if atomic.LoadUint32(&t.closed) == 0 {
			t.sink.OnDown(errors.New("zmq: connection closed"))
		}
	}
}

var monitorID int64

func generateMonitorAddr() string {
	nextID := atomic.AddInt64(&monitorID, 1)
	return fmt.Sprintf("inproc://monitor_mom.%d", nextID)
}

// runSocketMonitor watches zmq socket connection status events.
func runSocketMonitor(zmqCtx *zmq4.Context, addr string, online chan bool, logger *zap.Logger) {
	s, err := zmqCtx.NewSocket(zmq4.PAIR)
	if err != nil {
		logger.Error("zmq-monitor: fail create socket", zap.Error(err))
		return
	}
	if err = s.SetLinger(0); err != nil {
		logger.Error("zmq-monitor: fail setLinger", zap.Error(err))
	}
	defer func() {
		if err = s.Close(); err != nil {
			logger.Error("zmq-monitor: fail close socket", zap.Error(err))
		}
	}()

	if err = s.Connect(addr); err != nil {
		logger.Error("zmq-monitor: fail connect", zap.Error(err))
		return
	}

	for {
		event, address, _, err := s.RecvEvent(0)
		if err != nil {
			logger.Error("zmq-monitor: fail receive event", zap.Error(err))
			return
		}
		switch event {
		case zmq4.EVENT_CONNECTED:
			logger.Info("zmq-monitor: connection established", zap.String("addr", address))
			online <- true
		case zmq4.EVENT_CONNECT_DELAYED:
			logger.Warn("zmq-monitor: trying to connect", zap.String("addr", address))
		case zmq4.EVENT_CONNECT_RETRIED:
			logger.Warn("zmq-monitor: retry connect", zap.String("addr", address))
		case zmq4.EVENT_CLOSED:
			logger.Warn("zmq-monitor: closed", zap.String("addr", address))
			online <- false
		default:
			if event.String() == "<NONE>" {
				logger.Warn("zmq-monitor: stop monitor")
				close(online)
				return
			}
			logger.Warn("zmq-monitor: unprocessed event", zap.String("addr", address), zap.String("event", event.String()))
		}
	}
}

func tuneSocket(sock *zmq4.Socket, publicKey string) error {
	if err := sock.SetReconnectIvl(time.Second); err != nil {
		return errors.WithMessage(err, "fail set reconnect interval")
	}
	if err := sock.SetSndhwm(100000); err != nil {
		return errors.WithMessage(err, "fail set send buffer messages count")
	}
	if err := sock.SetLinger(5 * time.Second); err != nil {
		return errors.WithMessage(err, "fail set linger timeout")
	}
	if err := sock.SetConnectTimeout(5 * time.Second); err != nil {
		return errors.WithMessage(err, "fail set connect timeout")
	}
	if publicKey != "" {
		// auth zmq using curve algorithm
		keyPublic, keySecret, err := zmq4.NewCurveKeypair()
		if err != nil {
			return errors.WithMessage(err, "fail generate curve pair")
		}
		if err = sock.ClientAuthCurve(publicKey, keyPublic, keySecret); err != nil {
			return errors.WithMessage(err, "fail set auth curve")
		}
	}
	return nil
}

func createZmqTransport(logger *zap.Logger, cfg configZmqGate, sink momclient.Sink) (momclient.Transport, error) {
	zmqCtx, err := zmq4.NewContext()
	if err != nil {
		return nil, errors.WithMessage(err, "fail create zmq context")
	}
	monitorAddr := generateMonitorAddr()
	online := make(chan bool)
	go runSocketMonitor(zmqCtx, monitorAddr, online, logger)

	push, err := zmqCtx.NewSocket(zmq4.PUSH)
	if err != nil {
		return nil, errors.WithMessage(err, "fail create push socket")
	}
	if err = push.Monitor(monitorAddr, zmq4.EVENT_ALL); err != nil {
		return nil, errors.WithMessage(err, "fail set monitor address")
	}
	if err = tuneSocket(push, cfg.PublicKey); err != nil {
		return nil, err
	}
	if err = push.SetImmediate(true); err != nil {
		return nil, errors.WithMessage(err, "fail set immediate send flag")
	}
	if err = push.Connect(cfg.PushAddr); err != nil {
		return nil, errors.WithMessage(err, "fail connect "+cfg.PushAddr)
	}

	pull, err := zmqCtx.NewSocket(zmq4.PULL)
	if err != nil {
		return nil, errors.WithMessage(err, "fail create pull socket")
	}
	if err = tuneSocket(pull, cfg.PublicKey); err != nil {
		return nil, err
	}
	if err = pull.Connect(cfg.PullAddr); err != nil {
		return nil, errors.WithMessage(err, "fail connect "+cfg.PullAddr)
	}

	tr := &zmqTransport{
		logger: logger,
		ctx:    zmqCtx,
		push:   push,
		pull:   pull,
		sink:   sink,
		addr:   cfg.PushAddr,
	}
	go tr.handleMonitor(online)
	go tr.readMessages()
	return tr, nil
}
