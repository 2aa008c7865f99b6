package momclient_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gotest.tools/assert"

	"gitlab.heather.loc/helios/momapi/pkg/idgen"
	"gitlab.heather.loc/helios/momapi/pkg/mom"
	"gitlab.heather.loc/helios/momapi/pkg/momclient"
)

func waitFor[T any](t *testing.T, ch chan T, what string) T {
	t.Helper()
	select {
	case val := <-ch:
		return val
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for " + what)
		var zero T
		return zero
	}
}

func newTestTrader(t *testing.T, fixtures bool) (*momclient.TraderClient, *momclient.MockGate) {
	t.Helper()
	gate, factory := momclient.NewMockGateFactory(zap.NewNop(), fixtures)
	client, err := momclient.NewTraderClient(zap.NewNop(), factory, idgen.NewComposite(1))
	assert.NilError(t, err)
	return client, gate
}

func TestTrader_ConnectAndLogin(t *testing.T) {
	client, _ := newTestTrader(t, false)
	defer client.Stop()

	connected := make(chan struct{}, 1)
	logins := make(chan *mom.RspUserLogin, 1)
	client.OnConnected = func() { connected <- struct{}{} }
	client.OnRspUserLogin = func(login *mom.RspUserLogin) { logins <- login }

	assert.NilError(t, client.Connect())
	waitFor(t, connected, "connected event")
	assert.Assert(t, client.IsConnected())

	assert.NilError(t, client.Login("user_1", "secret", "fund_1"))
	login := waitFor(t, logins, "login reply")
	assert.Equal(t, login.UserID, "user_1")
	assert.Assert(t, login.SessionID > 0)
}

func TestTrader_LoginRejected(t *testing.T) {
	client, _ := newTestTrader(t, false)
	defer client.Stop()

	rejections := make(chan *mom.RspInfo, 1)
	client.OnRspError = func(info *mom.RspInfo) { rejections <- info }

	assert.NilError(t, client.Connect())
	assert.NilError(t, client.Login("user_1", "", ""))

	info := waitFor(t, rejections, "login rejection")
	assert.Equal(t, info.Code, mom.ErrorInvalidLogin)
	assert.ErrorContains(t, info.Err(), "invalid login")
}

func TestTrader_InputOrderLifecycle(t *testing.T) {
	client, gate := newTestTrader(t, false)
	defer client.Stop()
	gate.SetAutoFill(true)

	orders := make(chan *mom.Order, 10)
	trades := make(chan *mom.Trade, 10)
	client.OnOrder = func(order *mom.Order) { orders <- order }
	client.OnTrade = func(trade *mom.Trade) { trades <- trade }

	assert.NilError(t, client.Connect())

	inputID, err := client.InputOrder(&mom.InputOrder{
		AccountID: "acc_1",
		Symbol:    "btc_usdt_swap",
		Direction: mom.DirectionBuy,
		Offset:    mom.OffsetOpen,
		Price:     decimal.RequireFromString("25000"),
		Volume:    decimal.RequireFromString("2"),
	})
	assert.NilError(t, err)
	assert.Assert(t, inputID > 0)

	accepted := waitFor(t, orders, "accepted order")
	assert.Equal(t, accepted.InputID, inputID)
	assert.Equal(t, accepted.SubmitStatus, mom.SubmitStatusAccepted)

	trade := waitFor(t, trades, "fill trade")
	assert.Equal(t, trade.InputID, inputID)
	assert.Assert(t, trade.Volume.Equal(decimal.RequireFromString("2")))
	assert.Assert(t, trade.Amount.Equal(decimal.RequireFromString("50000")))

	filled := waitFor(t, orders, "filled order")
	assert.Equal(t, filled.Status, mom.OrderStatusFilled)
	assert.Assert(t, filled.VolumeLeft.IsZero())
}

func TestTrader_DuplicateOrderRef(t *testing.T) {
	client, _ := newTestTrader(t, false)
	defer client.Stop()

	orders := make(chan *mom.Order, 1)
	rejections := make(chan *mom.RspInfo, 1)
	client.OnOrder = func(order *mom.Order) { orders <- order }
	client.OnRspError = func(info *mom.RspInfo) { rejections <- info }

	assert.NilError(t, client.Connect())

	input := &mom.InputOrder{InputID: 10, OrderRef: "dup", Symbol: "btc_usdt_swap", Volume: decimal.New(1, 0)}
	_, err := client.InputOrder(input)
	assert.NilError(t, err)
	waitFor(t, orders, "first order")

	_, err = client.InputOrder(&mom.InputOrder{InputID: 11, OrderRef: "dup", Symbol: "btc_usdt_swap", Volume: decimal.New(1, 0)})
	assert.NilError(t, err)

	info := waitFor(t, rejections, "duplicate rejection")
	assert.Equal(t, info.Code, mom.ErrorDuplicateOrderRef)
	assert.Equal(t, info.OrderRef, "dup")
	assert.Equal(t, info.InputID, int64(11))
}

func TestTrader_CancelOrder(t *testing.T) {
	client, _ := newTestTrader(t, false)
	defer client.Stop()

	orders := make(chan *mom.Order, 10)
	rejections := make(chan *mom.RspInfo, 1)
	client.OnOrder = func(order *mom.Order) { orders <- order }
	client.OnRspError = func(info *mom.RspInfo) { rejections <- info }

	assert.NilError(t, client.Connect())

	_, err := client.InputOrder(&mom.InputOrder{InputID: 20, OrderRef: "c1", Symbol: "btc_usdt_swap", Volume: decimal.New(1, 0)})
	assert.NilError(t, err)
	waitFor(t, orders, "accepted order")

	assert.NilError(t, client.CancelOrder(&mom.OrderAction{OrderRef: "c1"}))
	canceled := waitFor(t, orders, "canceled order")
	assert.Equal(t, canceled.Status, mom.OrderStatusCanceled)
	assert.Equal(t, canceled.SubmitStatus, mom.SubmitStatusCancelSubmitted)

	// a second cancel on a terminal order is rejected
	assert.NilError(t, client.CancelOrder(&mom.OrderAction{OrderRef: "c1"}))
	info := waitFor(t, rejections, "duplicate cancel rejection")
	assert.Equal(t, info.Code, mom.ErrorDuplicateCancel)

	assert.NilError(t, client.CancelOrder(&mom.OrderAction{OrderRef: "missing"}))
	info = waitFor(t, rejections, "unknown order rejection")
	assert.Equal(t, info.Code, mom.ErrorOrderNotFound)
}

func TestTrader_QryAccountFixtures(t *testing.T) {
	client, _ := newTestTrader(t, true)
	defer client.Stop()

	type accountEvent struct {
		account *mom.Account
		isLast  bool
	}
	accounts := make(chan accountEvent, 10)
	client.OnQryAccount = func(account *mom.Account, isLast bool) {
		accounts <- accountEvent{account: account, isLast: isLast}
	}

	assert.NilError(t, client.Connect())
	assert.NilError(t, client.QryAccount(&mom.QryFilter{FundID: "fund_1"}))

	evt := waitFor(t, accounts, "account reply")
	assert.Equal(t, evt.account.AccountID, "acc_1")
	assert.Equal(t, evt.account.Currency, "USDT")
	assert.Assert(t, evt.isLast)
}

func TestTrader_QryInstrumentStream(t *testing.T) {
	client, _ := newTestTrader(t, true)
	defer client.Stop()

	type instrumentEvent struct {
		instrument *mom.Instrument
		isLast     bool
	}
	instruments := make(chan instrumentEvent, 10)
	client.OnQryInstrument = func(instrument *mom.Instrument, isLast bool) {
		instruments <- instrumentEvent{instrument: instrument, isLast: isLast}
	}

	assert.NilError(t, client.Connect())
	assert.NilError(t, client.QryInstrument(&mom.QryFilter{}))

	first := waitFor(t, instruments, "first instrument")
	assert.Assert(t, !first.isLast)
	second := waitFor(t, instruments, "last instrument")
	assert.Assert(t, second.isLast)
	assert.Assert(t, first.instrument.Symbol != second.instrument.Symbol)
}

func TestTrader_Transfer(t *testing.T) {
	client, _ := newTestTrader(t, false)
	defer client.Stop()

	journals := make(chan *mom.CashJournal, 1)
	client.OnCashJournal = func(journal *mom.CashJournal) { journals <- journal }

	assert.NilError(t, client.Connect())
	assert.NilError(t, client.Transfer(&mom.CashJournal{
		FundID:       "fund_1",
		AccountID:    "acc_1",
		Amount:       decimal.RequireFromString("100.5"),
		CurrencyType: "USDT",
		Type:         mom.CashJournalDeposit,
	}))

	journal := waitFor(t, journals, "journal confirmation")
	assert.Equal(t, journal.Amount.String(), "100.5")
	assert.Assert(t, journal.JournalID != "")
	assert.Assert(t, journal.Timestamp > 0)
}

func TestTrader_DisconnectCallback(t *testing.T) {
	client, gate := newTestTrader(t, false)
	defer client.Stop()

	disconnects := make(chan bool, 1)
	client.OnDisconnected = func(graceful bool) { disconnects <- graceful }

	assert.NilError(t, client.Connect())
	gate.DropConnection(nil)

	graceful := waitFor(t, disconnects, "disconnect event")
	assert.Assert(t, !graceful)
	assert.Assert(t, !client.IsConnected())
}
