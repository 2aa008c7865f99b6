package momclient

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	heartbeatStateIdle uint32 = iota
	heartbeatStateRunning
	heartbeatStateStopped
)

// heartbeatSupervisor watches connection liveness. Every inbound message
// resets the last-seen stamp via Touch; the timer loop sends a ping each
// interval and fires onTimeout once when no traffic was observed for a
// full timeout window. Checking at the ping interval bounds detection
// latency to timeout plus one interval.
type heartbeatSupervisor struct {
	logger    *zap.Logger
	interval  time.Duration
	timeout   time.Duration
	lastSeen  int64
	onPing    func()
	onTimeout func()
	cancel    context.CancelFunc
	state     uint32
}

func newHeartbeatSupervisor(logger *zap.Logger, interval, timeout time.Duration, onPing, onTimeout func()) *heartbeatSupervisor {
	if interval <= 0 {
		interval = time.Second
	}
	if timeout <= 0 {
		timeout = 10 * interval
	}
	return &heartbeatSupervisor{
		logger:    logger,
		interval:  interval,
		timeout:   timeout,
		onPing:    onPing,
		onTimeout: onTimeout,
	}
}

// Start launches the timer loop. A second Start is a no-op.
func (h *heartbeatSupervisor) Start() {
	if !atomic.CompareAndSwapUint32(&h.state, heartbeatStateIdle, heartbeatStateRunning) {
		return
	}
	h.Touch()
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go h.run(ctx)
}

// Stop cancels the timer loop. Idempotent, safe from callbacks.
func (h *heartbeatSupervisor) Stop() {
	if atomic.CompareAndSwapUint32(&h.state, heartbeatStateRunning, heartbeatStateStopped) {
		h.cancel()
	}
}

// Touch records inbound traffic as liveness evidence.
func (h *heartbeatSupervisor) Touch() {
	atomic.StoreInt64(&h.lastSeen, time.Now().UnixNano())
}

func (h *heartbeatSupervisor) run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		silence := time.Duration(time.Now().UnixNano() - atomic.LoadInt64(&h.lastSeen))
		if silence >= h.timeout {
			h.logger.Warn("mom: heartbeat timeout", zap.Duration("silence", silence))
			h.Stop()
			h.onTimeout()
			return
		}
		h.onPing()
	}
}
