package momclient

import (
	"sync"

	"github.com/pkg/errors"
)

// Loopback is an in-memory transport for tests. The client side of the
// pair is the Transport handed to the connection; the test drives the
// gateway side through Inject, Up and Down and inspects what the client
// sent through Sent.
type Loopback struct {
	mx     sync.Mutex
	sink   Sink
	sent   [][]byte
	onSend func([]byte)
	closed bool
}

// NewLoopbackFactory returns the gateway-side handle and the factory to
// bind on a connection.
func NewLoopbackFactory() (*Loopback, TransportFactory) {
	lb := &Loopback{}
	return lb, func(sink Sink) (Transport, error) {
		lb.mx.Lock()
		lb.sink = sink
		lb.mx.Unlock()
		return lb, nil
	}
}

func (l *Loopback) Send(data []byte) error {
	l.mx.Lock()
	if l.closed {
		l.mx.Unlock()
		return errors.New("loopback closed")
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	l.sent = append(l.sent, cp)
	onSend := l.onSend
	l.mx.Unlock()
	if onSend != nil {
		onSend(cp)
	}
	return nil
}

func (l *Loopback) Close() error {
	l.mx.Lock()
	l.closed = true
	l.mx.Unlock()
	return nil
}

// OnSend installs a hook observing every frame the client sends.
func (l *Loopback) OnSend(fn func([]byte)) {
	l.mx.Lock()
	l.onSend = fn
	l.mx.Unlock()
}

// Sent returns a snapshot of every frame the client sent so far.
func (l *Loopback) Sent() [][]byte {
	l.mx.Lock()
	defer l.mx.Unlock()
	out := make([][]byte, len(l.sent))
	copy(out, l.sent)
	return out
}

// Inject delivers a frame to the client as if it arrived off the wire.
func (l *Loopback) Inject(data []byte) {
	l.mx.Lock()
	sink := l.sink
	l.mx.Unlock()
	if sink != nil {
		sink.OnBytes(data)
	}
}

// Up signals a transport-level connect to the client.
func (l *Loopback) Up() {
	l.mx.Lock()
	sink := l.sink
	l.mx.Unlock()
	if sink != nil {
		sink.OnUp()
	}
}

// Down signals a transport-level failure to the client.
func (l *Loopback) Down(err error) {
	l.mx.Lock()
	sink := l.sink
	l.mx.Unlock()
	if sink != nil {
		sink.OnDown(err)
	}
}
