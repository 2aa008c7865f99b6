package momclient

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gitlab.heather.loc/helios/momapi/pkg/mom"
)

// MockGate is an in-process gateway speaking the full wire protocol. It
// answers the handshake, login, orders and queries from in-memory state,
// so client scenarios run without a broker. Replies are delivered
// synchronously from Send, which keeps test ordering deterministic.
type MockGate struct {
	logger *zap.Logger

	mx          sync.Mutex
	sink        Sink
	orders      map[string]*mom.Order
	instruments []*mom.Instrument
	accounts    []*mom.Account
	positions   []*mom.Position
	trades      []*mom.Trade
	journals    []*mom.CashJournal
	autoFill    bool

	seq       uint32
	sessionID int64
	journalID int64
}

func NewMockGate(logger *zap.Logger) *MockGate {
	logger.Info("mock-gate: created")
	return &MockGate{
		logger: logger,
		orders: make(map[string]*mom.Order),
	}
}

// NewMockGateFactory binds a mock gate as the connection transport.
func NewMockGateFactory(logger *zap.Logger, fixtures bool) (*MockGate, TransportFactory) {
	gate := NewMockGate(logger)
	if fixtures {
		gate.SetupFixtures()
	}
	return gate, func(sink Sink) (Transport, error) {
		gate.mx.Lock()
		gate.sink = sink
		gate.mx.Unlock()
		return gate, nil
	}
}

// SetAutoFill makes every accepted order fill immediately with a trade
// push and a filled order push.
func (m *MockGate) SetAutoFill(val bool) {
	m.mx.Lock()
	m.autoFill = val
	m.mx.Unlock()
}

func (m *MockGate) Close() error {
	return nil
}

// Send receives a client frame and answers it in place.
func (m *MockGate) Send(data []byte) error {
	req, err := mom.DecodeRequest(data)
	if err != nil {
		m.logger.Error("mock-gate: fail decode request", zap.Error(err))
		return err
	}
	switch req.Kind {
	case mom.KindInit:
		m.reply(&mom.Response{Kind: mom.KindInit})
	case mom.KindPing:
		m.reply(&mom.Response{Kind: mom.KindPong})
	case mom.KindPong:
		// liveness only
	case mom.KindClose:
		m.reply(&mom.Response{Kind: mom.KindClose})
	case mom.KindUserLogin:
		m.handleLogin(req)
	case mom.KindSubscribe:
		m.replyPayload(mom.KindRspSubscribe, req.Payload, true)
	case mom.KindUnsubscribe:
		m.replyPayload(mom.KindRspUnsubscribe, req.Payload, true)
	case mom.KindInputOrder:
		m.handleInputOrder(req)
	case mom.KindOrderAction:
		m.handleOrderAction(req)
	case mom.KindQryInstrument:
		m.streamInstruments()
	case mom.KindQryOrder, mom.KindQryExchangeOrder:
		m.streamOrders(req.Kind)
	case mom.KindQryTrade:
		m.streamTrades()
	case mom.KindQryAccount, mom.KindQryExchangeAccount:
		m.streamAccounts(req.Kind)
	case mom.KindQryPosition, mom.KindQryExchangePosition:
		m.streamPositions(req.Kind)
	case mom.KindChangeLeverage:
		m.replyPayload(mom.KindRspChangeLeverage, req.Payload, true)
	case mom.KindCashJournal:
		m.handleCashJournal(req)
	default:
		m.replyPayload(mom.KindRspError, mom.NewRspInfo(mom.ErrorUnsupportedRequest), true)
	}
	return nil
}

func (m *MockGate) handleLogin(req *mom.Request) {
	login, ok := req.Payload.(*mom.ReqUserLogin)
	if !ok || login.UserID == "" || login.Password == "" {
		m.replyPayload(mom.KindRspError, mom.NewRspInfo(mom.ErrorInvalidLogin), true)
		return
	}
	m.logger.Info("mock-gate: login", zap.String("user", login.UserID))
	m.replyPayload(mom.KindRspUserLogin, &mom.RspUserLogin{
		UserID:      login.UserID,
		TradingDay:  time.Now().Format("20060102"),
		SessionID:   atomic.AddInt64(&m.sessionID, 1),
		MaxOrderRef: 1,
	}, true)
}

func (m *MockGate) handleInputOrder(req *mom.Request) {
	input, ok := req.Payload.(*mom.InputOrder)
	if !ok {
		m.replyPayload(mom.KindRspError, mom.NewRspInfo(mom.ErrorUnsupportedRequest), true)
		return
	}
	m.mx.Lock()
	if _, dup := m.orders[input.OrderRef]; dup {
		m.mx.Unlock()
		info := mom.NewRspInfo(mom.ErrorDuplicateOrderRef)
		info.InputID = input.InputID
		info.OrderRef = input.OrderRef
		m.replyPayload(mom.KindRspError, info, true)
		return
	}
	order := input.ToOrder()
	order.OrderSysID = "sys_" + strconv.FormatInt(input.InputID, 10)
	order.SubmitStatus = mom.SubmitStatusAccepted
	order.InsertTime = time.Now().UnixNano() / 1e6
	m.orders[order.OrderRef] = order
	autoFill := m.autoFill
	m.mx.Unlock()

	m.replyPayload(mom.KindRspInputOrder, order.Clone(), true)
	if autoFill {
		m.fillOrder(order)
	}
}

func (m *MockGate) fillOrder(order *mom.Order) {
	trade := &mom.Trade{
		TradeID:    "trade_" + order.OrderSysID,
		OrderRef:   order.OrderRef,
		OrderSysID: order.OrderSysID,
		InputID:    order.InputID,
		FundID:     order.FundID,
		AccountID:  order.AccountID,
		UserID:     order.UserID,
		Symbol:     order.Symbol,
		Exchange:   order.Exchange,
		Direction:  order.Direction,
		Offset:     order.Offset,
		Role:       mom.TradeRoleTaker,
		Price:      order.Price,
		Volume:     order.Volume,
		Amount:     order.Price.Mul(order.Volume),
		TradeTime:  time.Now().UnixNano() / 1e6,
	}
	m.mx.Lock()
	order.VolumeTraded = order.Volume
	order.VolumeLeft = decimal.Zero
	order.ApplyStatus(mom.OrderStatusFilled)
	m.trades = append(m.trades, trade)
	m.mx.Unlock()
	m.replyPayload(mom.KindRtnTrade, trade, true)
	m.replyPayload(mom.KindRtnOrder, order.Clone(), true)
}

func (m *MockGate) handleOrderAction(req *mom.Request) {
	action, ok := req.Payload.(*mom.OrderAction)
	if !ok {
		m.replyPayload(mom.KindRspError, mom.NewRspInfo(mom.ErrorUnsupportedRequest), true)
		return
	}
	m.mx.Lock()
	order := m.orders[action.OrderRef]
	if order == nil {
		for _, o := range m.orders {
			if action.OrderSysID != "" && o.OrderSysID == action.OrderSysID {
				order = o
				break
			}
		}
	}
	if order == nil {
		m.mx.Unlock()
		info := mom.NewRspInfo(mom.ErrorOrderNotFound)
		info.OrderRef = action.OrderRef
		m.replyPayload(mom.KindRspError, info, true)
		return
	}
	if order.IsDone() {
		m.mx.Unlock()
		info := mom.NewRspInfo(mom.ErrorDuplicateCancel)
		info.OrderRef = order.OrderRef
		m.replyPayload(mom.KindRspError, info, true)
		return
	}
	order.SubmitStatus = mom.SubmitStatusCancelSubmitted
	order.ApplyStatus(mom.OrderStatusCanceled)
	cp := order.Clone()
	m.mx.Unlock()
	m.replyPayload(mom.KindRspOrderAction, cp, true)
}

func (m *MockGate) handleCashJournal(req *mom.Request) {
	journal, ok := req.Payload.(*mom.CashJournal)
	if !ok {
		m.replyPayload(mom.KindRspError, mom.NewRspInfo(mom.ErrorUnsupportedRequest), true)
		return
	}
	cp := journal.Clone()
	cp.JournalID = "journal_" + strconv.FormatInt(atomic.AddInt64(&m.journalID, 1), 10)
	cp.Timestamp = time.Now().UnixNano() / 1e6
	m.mx.Lock()
	m.journals = append(m.journals, cp)
	m.mx.Unlock()
	m.replyPayload(mom.KindRspCashJournal, cp, true)
}

func (m *MockGate) streamInstruments() {
	m.mx.Lock()
	items := make([]*mom.Instrument, len(m.instruments))
	copy(items, m.instruments)
	m.mx.Unlock()
	if len(items) == 0 {
		m.reply(&mom.Response{Kind: mom.KindRspQryInstrument, IsLast: true})
		return
	}
	for i, item := range items {
		m.replySeq(mom.KindRspQryInstrument, item.Clone(), i == len(items)-1, uint32(i))
	}
}

func (m *MockGate) streamOrders(kind mom.Kind) {
	rspKind := mom.KindRspQryOrder
	if kind == mom.KindQryExchangeOrder {
		rspKind = mom.KindRspQryExchangeOrder
	}
	m.mx.Lock()
	items := make([]*mom.Order, 0, len(m.orders))
	for _, o := range m.orders {
		items = append(items, o.Clone())
	}
	m.mx.Unlock()
	if len(items) == 0 {
		m.reply(&mom.Response{Kind: rspKind, IsLast: true})
		return
	}
	for i, item := range items {
		m.replySeq(rspKind, item, i == len(items)-1, uint32(i))
	}
}

func (m *MockGate) streamTrades() {
	m.mx.Lock()
	items := make([]*mom.Trade, len(m.trades))
	copy(items, m.trades)
	m.mx.Unlock()
	if len(items) == 0 {
		m.reply(&mom.Response{Kind: mom.KindRspQryTrade, IsLast: true})
		return
	}
	for i, item := range items {
		m.replySeq(mom.KindRspQryTrade, item.Clone(), i == len(items)-1, uint32(i))
	}
}

func (m *MockGate) streamAccounts(kind mom.Kind) {
	rspKind := mom.KindRspQryAccount
	if kind == mom.KindQryExchangeAccount {
		rspKind = mom.KindRspQryExchangeAccount
	}
	m.mx.Lock()
	items := make([]*mom.Account, len(m.accounts))
	copy(items, m.accounts)
	m.mx.Unlock()
	if len(items) == 0 {
		m.reply(&mom.Response{Kind: rspKind, IsLast: true})
		return
	}
	for i, item := range items {
		m.replySeq(rspKind, item.Clone(), i == len(items)-1, uint32(i))
	}
}

func (m *MockGate) streamPositions(kind mom.Kind) {
	rspKind := mom.KindRspQryPosition
	if kind == mom.KindQryExchangePosition {
		rspKind = mom.KindRspQryExchangePosition
	}
	m.mx.Lock()
	items := make([]*mom.Position, len(m.positions))
	copy(items, m.positions)
	m.mx.Unlock()
	if len(items) == 0 {
		m.reply(&mom.Response{Kind: rspKind, IsLast: true})
		return
	}
	for i, item := range items {
		m.replySeq(rspKind, item.Clone(), i == len(items)-1, uint32(i))
	}
}

// PushDepth streams a depth snapshot to the client.
func (m *MockGate) PushDepth(depth *mom.DepthMarketData) {
	m.replyPayload(mom.KindRtnDepthMarketData, depth, true)
}

// PushOrder streams an order update to the client.
func (m *MockGate) PushOrder(order *mom.Order) {
	m.replyPayload(mom.KindRtnOrder, order, true)
}

// PushInstrumentListed announces a new contract to the client.
func (m *MockGate) PushInstrumentListed(instrument *mom.Instrument) {
	m.replyPayload(mom.KindInstrumentListed, instrument, true)
}

// PushInstrumentExpired announces a contract expiry to the client.
func (m *MockGate) PushInstrumentExpired(instrument *mom.Instrument) {
	m.replyPayload(mom.KindInstrumentExpired, instrument, true)
}

// DropConnection simulates a transport failure on the client side.
func (m *MockGate) DropConnection(err error) {
	m.mx.Lock()
	sink := m.sink
	m.mx.Unlock()
	if sink != nil {
		sink.OnDown(err)
	}
}

func (m *MockGate) replyPayload(kind mom.Kind, payload mom.Payload, isLast bool) {
	m.replySeq(kind, payload, isLast, atomic.AddUint32(&m.seq, 1))
}

func (m *MockGate) replySeq(kind mom.Kind, payload mom.Payload, isLast bool, seq uint32) {
	m.reply(&mom.Response{Kind: kind, IsLast: isLast, Seq: seq, Payload: payload})
}

func (m *MockGate) reply(rsp *mom.Response) {
	data, err := mom.EncodeResponse(rsp)
	if err != nil {
		m.logger.Error("mock-gate: fail encode response", zap.Error(err), zap.String("kind", rsp.Kind.String()))
		return
	}
	m.mx.Lock()
	sink := m.sink
	m.mx.Unlock()
	if sink != nil {
		sink.OnBytes(data)
	}
}

// SetupFixtures seeds reference data for query scenarios.
func (m *MockGate) SetupFixtures() {
	instruments := []*mom.Instrument{
		{
			Symbol:         "btc_usdt_swap",
			Exchange:       "mock",
			Market:         "swap",
			Class:          mom.ProductClassSwap,
			PriceTick:      decimal.RequireFromString("0.1"),
			VolumeMultiple: decimal.RequireFromString("1"),
			Rules:          mom.RuleEnableTrading.With(mom.RuleEnableShort),
		},
		{
			Symbol:         "eth_usdt_swap",
			Exchange:       "mock",
			Market:         "swap",
			Class:          mom.ProductClassSwap,
			PriceTick:      decimal.RequireFromString("0.01"),
			VolumeMultiple: decimal.RequireFromString("1"),
			Rules:          mom.RuleEnableTrading.With(mom.RuleEnableShort),
		},
	}
	accounts := []*mom.Account{
		{
			Scope:      mom.ScopeUser,
			FundID:     "fund_1",
			AccountID:  "acc_1",
			UserID:     "user_1",
			Currency:   "USDT",
			PreBalance: decimal.RequireFromString("10000"),
			Balance:    decimal.RequireFromString("10000"),
			Available:  decimal.RequireFromString("10000"),
			TradingDay: time.Now().Format("20060102"),
		},
	}
	positions := []*mom.Position{
		{
			FundID:       "fund_1",
			AccountID:    "acc_1",
			Symbol:       "btc_usdt_swap",
			Exchange:     "mock",
			Market:       "swap",
			Class:        mom.ProductClassSwap,
			Direction:    mom.PosiDirectionLong,
			Position:     decimal.RequireFromString("2"),
			CashPosition: decimal.RequireFromString("2"),
			TradingDay:   time.Now().Format("20060102"),
		},
	}
	m.mx.Lock()
	m.instruments = instruments
	m.accounts = accounts
	m.positions = positions
	m.mx.Unlock()
	m.logger.Info("mock-gate: setup fixtures",
		zap.Int("instruments", len(instruments)),
		zap.Int("accounts", len(accounts)),
		zap.Int("positions", len(positions)))
}
