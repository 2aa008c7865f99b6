package momclient

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"gitlab.heather.loc/helios/momapi/pkg/conc"
	"gitlab.heather.loc/helios/momapi/pkg/mom"
)

// Transport is the byte-stream boundary. Implementations deliver inbound
// frames and connect/disconnect signals to the Sink they were built with.
type Transport interface {
	Send(data []byte) error
	Close() error
}

// Sink receives transport-level events. The connection supervisor is the
// only implementation; transports treat it as their receive entry point.
type Sink interface {
	OnBytes(data []byte)
	OnUp()
	OnDown(err error)
}

// TransportFactory builds a transport wired to a sink.
type TransportFactory func(Sink) (Transport, error)

// ErrNotConnected rejects a request sent while the handshake is not done.
var ErrNotConnected = errors.New("mom: not connected")

const (
	stateDisconnected uint32 = iota
	stateAwaitingInit
	stateConnected
)

// Connection owns one transport and drives the Init/Connected handshake,
// the heartbeat supervisor and the delivery pipeline. Decoded responses
// flow through a single SPSC link, which preserves per-connection order
// end to end.
type Connection struct {
	logger *zap.Logger
	name   string

	trMx sync.Mutex
	tr   Transport

	state uint32
	hb    atomic.Pointer[heartbeatSupervisor]
	out   *conc.Link[*mom.Response]

	hbInterval time.Duration
	hbTimeout  time.Duration
}

// ConnectionOption tunes a connection at construction time.
type ConnectionOption func(*connectionConfig)

type connectionConfig struct {
	hbInterval time.Duration
	hbTimeout  time.Duration
	core       int
}

// WithHeartbeat overrides the heartbeat interval and timeout.
func WithHeartbeat(interval, timeout time.Duration) ConnectionOption {
	return func(cfg *connectionConfig) {
		cfg.hbInterval = interval
		cfg.hbTimeout = timeout
	}
}

// WithPinnedCore pins the delivery link's drain thread to a logical CPU.
func WithPinnedCore(core int) ConnectionOption {
	return func(cfg *connectionConfig) {
		cfg.core = core
	}
}

// NewConnection creates the supervisor. handler receives every delivered
// response on the link's drain thread, in arrival order.
func NewConnection(logger *zap.Logger, name string, handler func(*mom.Response), opts ...ConnectionOption) *Connection {
	cfg := connectionConfig{hbInterval: time.Second, hbTimeout: 10 * time.Second, core: -1}
	for _, opt := range opts {
		opt(&cfg)
	}
	linkOpts := make([]conc.LinkOption, 0, 1)
	if cfg.core >= 0 {
		linkOpts = append(linkOpts, conc.WithCore(cfg.core))
	}
	return &Connection{
		logger:     logger,
		name:       name,
		out:        conc.NewLink(logger, handler, linkOpts...),
		hbInterval: cfg.hbInterval,
		hbTimeout:  cfg.hbTimeout,
	}
}

// Bind builds the transport against this connection. Must precede Connect.
func (c *Connection) Bind(factory TransportFactory) error {
	tr, err := factory(c)
	if err != nil {
		return errors.WithMessage(err, "fail create transport")
	}
	c.trMx.Lock()
	c.tr = tr
	c.trMx.Unlock()
	return nil
}

// Name returns the gate label used in logs and metrics.
func (c *Connection) Name() string {
	return c.name
}

// IsConnected reports whether the Init handshake completed.
func (c *Connection) IsConnected() bool {
	return atomic.LoadUint32(&c.state) == stateConnected
}

// Connect starts the handshake by sending the Init signal.
func (c *Connection) Connect() error {
	if !atomic.CompareAndSwapUint32(&c.state, stateDisconnected, stateAwaitingInit) {
		return errors.New("mom: connect while not disconnected")
	}
	c.logger.Info("mom: connecting", zap.String("gate", c.name))
	return c.sendSignal(mom.KindInit)
}

// Disconnect sends Close best-effort and forces the local transition.
func (c *Connection) Disconnect() {
	if c.IsConnected() {
		_ = c.sendSignal(mom.KindClose)
	}
	c.forceDisconnect(true, "local")
}

// Stop disconnects and shuts down the delivery link.
func (c *Connection) Stop() {
	c.Disconnect()
	c.out.Stop()
	c.trMx.Lock()
	tr := c.tr
	c.trMx.Unlock()
	if tr != nil {
		if err := tr.Close(); err != nil {
			c.logger.Warn("mom: fail close transport", zap.Error(err), zap.String("gate", c.name))
		}
	}
}

// Send frames and transmits a request. Rejected while not connected.
func (c *Connection) Send(req *mom.Request) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}
	data, err := mom.EncodeRequest(req)
	if err != nil {
		return errors.WithMessage(err, "fail encode request "+req.Kind.String())
	}
	requestCounters.WithLabelValues(c.name, req.Kind.String()).Inc()
	return c.transmit(data)
}

// sendSignal bypasses the connected check: control signals drive the
// handshake itself.
func (c *Connection) sendSignal(kind mom.Kind) error {
	data, err := mom.EncodeRequest(&mom.Request{Kind: kind})
	if err != nil {
		return err
	}
	requestCounters.WithLabelValues(c.name, kind.String()).Inc()
	return c.transmit(data)
}

func (c *Connection) transmit(data []byte) error {
	c.trMx.Lock()
	tr := c.tr
	c.trMx.Unlock()
	if tr == nil {
		return errors.New("mom: transport not bound")
	}
	if err := tr.Send(data); err != nil {
		return errors.WithMessage(err, "fail send via transport")
	}
	return nil
}

// OnBytes is the transport's receive entry point. Any inbound frame
// counts as liveness; malformed frames arrive as RspError responses from
// the codec and follow the normal delivery path.
func (c *Connection) OnBytes(data []byte) {
	rsp := mom.DecodeResponse(data)
	messageCounters.WithLabelValues(c.name, rsp.Kind.String()).Inc()
	if hb := c.hb.Load(); hb != nil {
		hb.Touch()
	}
	switch rsp.Kind {
	case mom.KindInit:
		c.handleInit()
	case mom.KindPing:
		if err := c.sendSignal(mom.KindPong); err != nil {
			c.logger.Warn("mom: fail send pong", zap.Error(err), zap.String("gate", c.name))
		}
	case mom.KindPong, mom.KindConnected:
		// liveness only
	case mom.KindClose, mom.KindDisconnected:
		c.forceDisconnect(true, "close")
	default:
		c.out.Post(rsp)
	}
}

// OnUp handles the transport-level connect signal. The protocol-level
// Connected state still waits for the peer's Init.
func (c *Connection) OnUp() {
	c.logger.Info("mom: transport up", zap.String("gate", c.name))
}

// OnDown handles the transport-level disconnect signal.
func (c *Connection) OnDown(err error) {
	if err != nil {
		c.logger.Warn("mom: transport down", zap.Error(err), zap.String("gate", c.name))
	}
	c.forceDisconnect(false, "transport")
}

func (c *Connection) handleInit() {
	if !atomic.CompareAndSwapUint32(&c.state, stateAwaitingInit, stateConnected) {
		// a repeated Init while connected is idempotent
		return
	}
	c.logger.Info("mom: connected", zap.String("gate", c.name))
	readyState.WithLabelValues(c.name).Set(1)
	hb := newHeartbeatSupervisor(c.logger, c.hbInterval, c.hbTimeout, c.ping, c.timeout)
	c.hb.Store(hb)
	hb.Start()
	// a disconnect racing the handshake may have missed the supervisor
	if atomic.LoadUint32(&c.state) != stateConnected {
		hb.Stop()
	}
	c.out.Post(&mom.Response{Kind: mom.KindConnected})
}

func (c *Connection) ping() {
	if !c.IsConnected() {
		return
	}
	if err := c.sendSignal(mom.KindPing); err != nil {
		// sends are best-effort on an already-monitored liveness channel
		c.logger.Warn("mom: fail send ping", zap.Error(err), zap.String("gate", c.name))
	}
}

func (c *Connection) timeout() {
	c.forceDisconnect(false, "timeout")
}

// forceDisconnect performs the exactly-once transition to Disconnected
// and emits the event with its reason. Repeated triggers are no-ops.
func (c *Connection) forceDisconnect(graceful bool, reason string) {
	prev := atomic.SwapUint32(&c.state, stateDisconnected)
	if prev == stateDisconnected {
		return
	}
	c.logger.Warn("mom: disconnected", zap.String("gate", c.name), zap.String("reason", reason), zap.Bool("graceful", graceful))
	readyState.WithLabelValues(c.name).Set(0)
	disconnectCounters.WithLabelValues(c.name, reason).Inc()
	if hb := c.hb.Load(); hb != nil {
		hb.Stop()
	}
	c.out.Post(&mom.Response{
		Kind:    mom.KindDisconnected,
		Payload: &mom.DisconnectInfo{Graceful: graceful, Reason: reason},
	})
}
