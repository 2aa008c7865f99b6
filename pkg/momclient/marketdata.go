package momclient

import (
	"go.uber.org/zap"

	"gitlab.heather.loc/helios/momapi/pkg/conc"
	"gitlab.heather.loc/helios/momapi/pkg/mom"
)

// MarketDataClient is the quote-stream facade. Depth snapshots fan out
// to named consumers registered via SubscribeDepth; each consumer gets
// its own clone in producer order, so mutating a record in one handler
// never leaks into another.
type MarketDataClient struct {
	logger *zap.Logger
	conn   *Connection
	fanout *conc.Broadcast[*mom.DepthMarketData]

	OnConnected    func()
	OnDisconnected func(graceful bool)
	OnRspUserLogin func(login *mom.RspUserLogin)
	OnRspError     func(info *mom.RspInfo)
	OnDecodeError  func(fail *mom.DecodeError)

	OnRspSubscribe   func(symbols *mom.SymbolList, isLast bool)
	OnRspUnsubscribe func(symbols *mom.SymbolList, isLast bool)

	OnInstrumentListed  func(instrument *mom.Instrument)
	OnInstrumentExpired func(instrument *mom.Instrument)
}

func NewMarketDataClient(logger *zap.Logger, factory TransportFactory, opts ...ConnectionOption) (*MarketDataClient, error) {
	client := &MarketDataClient{
		logger: logger,
		fanout: conc.NewBroadcast(logger, func(d *mom.DepthMarketData) *mom.DepthMarketData {
			cp := *d
			return &cp
		}),
	}
	client.conn = NewConnection(logger, "md", client.dispatch, opts...)
	if err := client.conn.Bind(factory); err != nil {
		client.fanout.Stop()
		return nil, err
	}
	return client, nil
}

func (c *MarketDataClient) Connect() error {
	return c.conn.Connect()
}

func (c *MarketDataClient) Disconnect() {
	c.conn.Disconnect()
}

func (c *MarketDataClient) Stop() {
	c.conn.Stop()
	c.fanout.Stop()
}

func (c *MarketDataClient) IsConnected() bool {
	return c.conn.IsConnected()
}

func (c *MarketDataClient) Login(userID, password string) error {
	return c.conn.Send(&mom.Request{
		Kind:    mom.KindUserLogin,
		Payload: &mom.ReqUserLogin{UserID: userID, Password: password},
	})
}

// Subscribe asks the gateway to start streaming depth for the symbols.
func (c *MarketDataClient) Subscribe(symbols ...string) error {
	return c.conn.Send(&mom.Request{Kind: mom.KindSubscribe, Payload: &mom.SymbolList{Symbols: symbols}})
}

// Unsubscribe stops the stream for the symbols.
func (c *MarketDataClient) Unsubscribe(symbols ...string) error {
	return c.conn.Send(&mom.Request{Kind: mom.KindUnsubscribe, Payload: &mom.SymbolList{Symbols: symbols}})
}

// SubscribeDepth registers a named depth consumer on the local fan-out.
// Registering the same name again replaces the previous handler.
func (c *MarketDataClient) SubscribeDepth(name string, fn func(*mom.DepthMarketData)) {
	c.fanout.Add(name, fn)
}

// UnsubscribeDepth removes a named depth consumer.
func (c *MarketDataClient) UnsubscribeDepth(name string) {
	c.fanout.Remove(name)
}

func (c *MarketDataClient) dispatch(rsp *mom.Response) {
	switch rsp.Kind {
	case mom.KindRtnDepthMarketData:
		if depth, ok := rsp.Payload.(*mom.DepthMarketData); ok {
			c.fanout.Post(depth)
		}
	case mom.KindConnected:
		if c.OnConnected != nil {
			c.OnConnected()
		}
	case mom.KindDisconnected:
		if c.OnDisconnected != nil {
			graceful := false
			if info, ok := rsp.Payload.(*mom.DisconnectInfo); ok {
				graceful = info.Graceful
			}
			c.OnDisconnected(graceful)
		}
	case mom.KindRspUserLogin:
		if login, ok := rsp.Payload.(*mom.RspUserLogin); ok && c.OnRspUserLogin != nil {
			c.OnRspUserLogin(login)
		}
	case mom.KindRspSubscribe:
		if symbols, ok := rsp.Payload.(*mom.SymbolList); ok && c.OnRspSubscribe != nil {
			c.OnRspSubscribe(symbols, rsp.IsLast)
		}
	case mom.KindRspUnsubscribe:
		if symbols, ok := rsp.Payload.(*mom.SymbolList); ok && c.OnRspUnsubscribe != nil {
			c.OnRspUnsubscribe(symbols, rsp.IsLast)
		}
	case mom.KindInstrumentListed:
		if instrument, ok := rsp.Payload.(*mom.Instrument); ok && c.OnInstrumentListed != nil {
			c.OnInstrumentListed(instrument)
		}
	case mom.KindInstrumentExpired:
		if instrument, ok := rsp.Payload.(*mom.Instrument); ok && c.OnInstrumentExpired != nil {
			c.OnInstrumentExpired(instrument)
		}
	case mom.KindRspError:
		switch p := rsp.Payload.(type) {
		case *mom.DecodeError:
			c.logger.Error("mom md: decode failure", zap.String("reason", p.Reason), zap.ByteString("raw", p.Raw))
			if c.OnDecodeError != nil {
				c.OnDecodeError(p)
			}
		case *mom.RspInfo:
			if c.OnRspError != nil {
				c.OnRspError(p)
			}
		}
	default:
		c.logger.Warn("mom md: unhandled response", zap.String("kind", rsp.Kind.String()))
	}
}
