package momclient

import (
	"strconv"

	"go.uber.org/zap"

	"gitlab.heather.loc/helios/momapi/pkg/idgen"
	"gitlab.heather.loc/helios/momapi/pkg/mom"
)

// TraderClient is the order-routing facade. Set the callbacks before
// Connect; they fire on the connection's drain thread in arrival order.
type TraderClient struct {
	logger *zap.Logger
	conn   *Connection
	ids    idgen.Generator

	OnConnected    func()
	OnDisconnected func(graceful bool)
	OnRspUserLogin func(login *mom.RspUserLogin)
	OnRspError     func(info *mom.RspInfo)
	OnDecodeError  func(fail *mom.DecodeError)

	OnOrder       func(order *mom.Order)
	OnTrade       func(trade *mom.Trade)
	OnAccount     func(account *mom.Account)
	OnPosition    func(position *mom.Position)
	OnCashJournal func(journal *mom.CashJournal)

	OnQryInstrument func(instrument *mom.Instrument, isLast bool)
	OnQryOrder      func(order *mom.Order, isLast bool)
	OnQryTrade      func(trade *mom.Trade, isLast bool)
	OnQryAccount    func(account *mom.Account, isLast bool)
	OnQryPosition   func(position *mom.Position, isLast bool)

	OnChangeLeverage func(change *mom.ChangeLeverage)
}

// NewTraderClient wires the facade to a transport. The id generator
// stamps input ids and action refs on outbound orders.
func NewTraderClient(logger *zap.Logger, factory TransportFactory, ids idgen.Generator, opts ...ConnectionOption) (*TraderClient, error) {
	if ids == nil {
		ids = idgen.NewAtomicTick()
	}
	client := &TraderClient{logger: logger, ids: ids}
	client.conn = NewConnection(logger, "trader", client.dispatch, opts...)
	if err := client.conn.Bind(factory); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *TraderClient) Connect() error {
	return c.conn.Connect()
}

func (c *TraderClient) Disconnect() {
	c.conn.Disconnect()
}

func (c *TraderClient) Stop() {
	c.conn.Stop()
}

func (c *TraderClient) IsConnected() bool {
	return c.conn.IsConnected()
}

// Login authenticates the session. The reply arrives via OnRspUserLogin,
// a rejection via OnRspError.
func (c *TraderClient) Login(userID, password, fundID string) error {
	return c.conn.Send(&mom.Request{
		Kind:    mom.KindUserLogin,
		Payload: &mom.ReqUserLogin{UserID: userID, Password: password, FundID: fundID},
	})
}

// InputOrder submits a new order. Missing InputID and OrderRef are
// stamped from the id generator; the stamped input id is returned for
// correlation with subsequent reports.
func (c *TraderClient) InputOrder(input *mom.InputOrder) (int64, error) {
	if input.InputID == 0 {
		input.InputID = c.ids.Next()
	}
	if input.OrderRef == "" {
		input.OrderRef = strconv.FormatInt(input.InputID, 10)
	}
	err := c.conn.Send(&mom.Request{Kind: mom.KindInputOrder, Payload: input})
	if err != nil {
		return 0, err
	}
	return input.InputID, nil
}

// CancelOrder requests a cancel for an order identified by its order ref
// or its exchange order-system id.
func (c *TraderClient) CancelOrder(action *mom.OrderAction) error {
	if action.ActionRef == 0 {
		action.ActionRef = c.ids.Next()
	}
	return c.conn.Send(&mom.Request{Kind: mom.KindOrderAction, Payload: action})
}

func (c *TraderClient) QryInstrument(filter *mom.QryFilter) error {
	return c.conn.Send(&mom.Request{Kind: mom.KindQryInstrument, Payload: filter})
}

func (c *TraderClient) QryOrder(filter *mom.QryFilter) error {
	return c.conn.Send(&mom.Request{Kind: mom.KindQryOrder, Payload: filter})
}

func (c *TraderClient) QryTrade(filter *mom.QryFilter) error {
	return c.conn.Send(&mom.Request{Kind: mom.KindQryTrade, Payload: filter})
}

func (c *TraderClient) QryAccount(filter *mom.QryFilter) error {
	return c.conn.Send(&mom.Request{Kind: mom.KindQryAccount, Payload: filter})
}

func (c *TraderClient) QryPosition(filter *mom.QryFilter) error {
	return c.conn.Send(&mom.Request{Kind: mom.KindQryPosition, Payload: filter})
}

func (c *TraderClient) QryExchangeOrder(filter *mom.QryFilter) error {
	return c.conn.Send(&mom.Request{Kind: mom.KindQryExchangeOrder, Payload: filter})
}

func (c *TraderClient) QryExchangeAccount(filter *mom.QryFilter) error {
	return c.conn.Send(&mom.Request{Kind: mom.KindQryExchangeAccount, Payload: filter})
}

func (c *TraderClient) QryExchangePosition(filter *mom.QryFilter) error {
	return c.conn.Send(&mom.Request{Kind: mom.KindQryExchangePosition, Payload: filter})
}

func (c *TraderClient) ChangeLeverage(accountID, symbol string, leverage int) error {
	return c.conn.Send(&mom.Request{
		Kind:    mom.KindChangeLeverage,
		Payload: &mom.ChangeLeverage{AccountID: accountID, Symbol: symbol, Leverage: leverage},
	})
}

// Transfer books a cash journal entry (deposit or withdraw).
func (c *TraderClient) Transfer(journal *mom.CashJournal) error {
	return c.conn.Send(&mom.Request{Kind: mom.KindCashJournal, Payload: journal})
}

func (c *TraderClient) dispatch(rsp *mom.Response) {
	switch rsp.Kind {
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
	case mom.KindRspError:
		c.dispatchError(rsp.Payload)
	case mom.KindRspInputOrder, mom.KindRspOrderAction, mom.KindRtnOrder:
		if order, ok := rsp.Payload.(*mom.Order); ok && c.OnOrder != nil {
			c.OnOrder(order)
		}
	case mom.KindRtnTrade:
		if trade, ok := rsp.Payload.(*mom.Trade); ok && c.OnTrade != nil {
			c.OnTrade(trade)
		}
	case mom.KindRtnAccount:
		if account, ok := rsp.Payload.(*mom.Account); ok && c.OnAccount != nil {
			c.OnAccount(account)
		}
	case mom.KindRtnPosition:
		if position, ok := rsp.Payload.(*mom.Position); ok && c.OnPosition != nil {
			c.OnPosition(position)
		}
	case mom.KindRspCashJournal, mom.KindRtnCashJournal:
		if journal, ok := rsp.Payload.(*mom.CashJournal); ok && c.OnCashJournal != nil {
			c.OnCashJournal(journal)
		}
	case mom.KindRspQryInstrument:
		if instrument, ok := rsp.Payload.(*mom.Instrument); ok && c.OnQryInstrument != nil {
			c.OnQryInstrument(instrument, rsp.IsLast)
		}
	case mom.KindRspQryOrder, mom.KindRspQryExchangeOrder:
		if order, ok := rsp.Payload.(*mom.Order); ok && c.OnQryOrder != nil {
			c.OnQryOrder(order, rsp.IsLast)
		}
	case mom.KindRspQryTrade:
		if trade, ok := rsp.Payload.(*mom.Trade); ok && c.OnQryTrade != nil {
			c.OnQryTrade(trade, rsp.IsLast)
		}
	case mom.KindRspQryAccount, mom.KindRspQryExchangeAccount:
		if account, ok := rsp.Payload.(*mom.Account); ok && c.OnQryAccount != nil {
			c.OnQryAccount(account, rsp.IsLast)
		}
	case mom.KindRspQryPosition, mom.KindRspQryExchangePosition:
		if position, ok := rsp.Payload.(*mom.Position); ok && c.OnQryPosition != nil {
			c.OnQryPosition(position, rsp.IsLast)
		}
	case mom.KindRspChangeLeverage:
		if change, ok := rsp.Payload.(*mom.ChangeLeverage); ok && c.OnChangeLeverage != nil {
			c.OnChangeLeverage(change)
		}
	default:
		c.logger.Warn("mom trader: unhandled response", zap.String("kind", rsp.Kind.String()))
	}
}

func (c *TraderClient) dispatchError(payload mom.Payload) {
	switch p := payload.(type) {
	case *mom.DecodeError:
		c.logger.Error("mom trader: decode failure", zap.String("reason", p.Reason), zap.ByteString("raw", p.Raw))
		if c.OnDecodeError != nil {
			c.OnDecodeError(p)
		}
	case *mom.RspInfo:
		if c.OnRspError != nil {
			c.OnRspError(p)
		}
	}
}
