package gate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"gitlab.heather.loc/helios/momapi/pkg/momclient"
)

func parseDsnZmq(dsn string) (configZmqGate, error) {
	cfg := configZmqGate{}

	u, err := url.Parse(dsn)
	if err != nil {
		return cfg, err
	}
	if u.Hostname() == "" {
		return cfg, errors.New("host is empty")
	}
	if u.Port() == "" {
		return cfg, errors.New("port is empty")
	}

	pushPort, err := strconv.Atoi(u.Port())
	if err != nil {
		return cfg, errors.WithMessage(err, "invalid push port value")
	}
	pullPort := pushPort + 1
	if u.Query().Get("pull_port") != "" {
		pullPort, err = strconv.Atoi(u.Query().Get("pull_port"))
		if err != nil {
			return cfg, errors.WithMessage(err, "invalid pull port value")
		}
	}

	cfg.PushAddr = "tcp://" + u.Hostname() + ":" + strconv.Itoa(pushPort)
	cfg.PullAddr = "tcp://" + u.Hostname() + ":" + strconv.Itoa(pullPort)
	cfg.PublicKey = u.Query().Get("key")
	return cfg, nil
}

// Dial resolves a dsn into a transport factory. Supported schemes:
// zmq:// for the PUSH/PULL pair, ws:// and wss:// for websocket, and
// mock:// for the in-process gateway.
func Dial(logger *zap.Logger, dsn string) (momclient.TransportFactory, error) {
	if strings.HasPrefix(dsn, "mock://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return nil, errors.WithMessage(err, "fail parse mock dsn")
		}
		fixtures := u.Query().Get("fixtures") == "true"
		_, factory := momclient.NewMockGateFactory(logger, fixtures)
		return factory, nil
	}

	if strings.HasPrefix(dsn, "zmq://") {
		cfg, err := parseDsnZmq(dsn)
		if err != nil {
			return nil, errors.WithMessage(err, "fail parse zmq dsn")
		}
		return func(sink momclient.Sink) (momclient.Transport, error) {
			return createZmqTransport(logger, cfg, sink)
		}, nil
	}

	if strings.HasPrefix(dsn, "ws://") || strings.HasPrefix(dsn, "wss://") {
		return func(sink momclient.Sink) (momclient.Transport, error) {
			return createWsTransport(logger, dsn, sink)
		}, nil
	}

	return nil, errors.New("dsn not supported")
}
