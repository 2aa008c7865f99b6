package mom

import (
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// Order is the live order record. It is created when an input order is
// submitted and mutated by every matching push until the status turns
// terminal, after which no transition is accepted.
type Order struct {
	FundID    string `json:"fundId"`
	AccountID string `json:"accountId"`
	UserID    string `json:"userId"`

	OrderRef   string `json:"orderRef"`
	InputID    int64  `json:"inputId"`
	OrderSysID string `json:"orderSysId"`

	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	Market   string `json:"market"`

	Direction     Direction           `json:"direction"`
	Offset        OffsetFlag          `json:"offset"`
	Price         decimal.Decimal     `json:"price"`
	Volume        decimal.Decimal     `json:"volume"`
	VolumeTraded  decimal.Decimal     `json:"volumeTraded"`
	VolumeLeft    decimal.Decimal     `json:"volumeLeft"`
	StopPrice     decimal.Decimal     `json:"stopPrice"`
	TimeCondition TimeCondition       `json:"timeCondition"`
	Contingent    ContingentCondition `json:"contingent"`

	Status       OrderStatus  `json:"status"`
	SubmitStatus SubmitStatus `json:"submitStatus"`
	StatusMsg    string       `json:"statusMsg,omitempty"`

	InsertTime int64  `json:"insertTime"`
	UpdateTime int64  `json:"updateTime"`
	TradingDay string `json:"tradingDay"`
	Version    int64  `json:"version"`
}

func (o *Order) momPayload() {}

func (o *Order) UpdateVersion() int64 {
	return atomic.AddInt64(&o.Version, 1)
}

// IsDone reports whether the order reached a terminal status.
func (o *Order) IsDone() bool {
	return o.Status.IsTerminal()
}

// ApplyStatus transitions the order status. Transitions out of a terminal
// status are rejected and leave the record unchanged.
func (o *Order) ApplyStatus(status OrderStatus) bool {
	if o.Status.IsTerminal() {
		return false
	}
	o.Status = status
	o.UpdateVersion()
	return true
}

// Clone returns a field-complete copy of the record.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Version = atomic.LoadInt64(&o.Version)
	return &cp
}

func (o *Order) ClonePayload() Payload {
	return o.Clone()
}

// InputOrder is the order-entry request payload. InputID correlates the
// request with its reports; OrderRef is the client-side order reference.
type InputOrder struct {
	FundID    string `json:"fundId"`
	AccountID string `json:"accountId"`
	UserID    string `json:"userId"`

	OrderRef string `json:"orderRef"`
	InputID  int64  `json:"inputId"`

	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`

	Direction     Direction           `json:"direction"`
	Offset        OffsetFlag          `json:"offset"`
	Price         decimal.Decimal     `json:"price"`
	Volume        decimal.Decimal     `json:"volume"`
	StopPrice     decimal.Decimal     `json:"stopPrice"`
	TimeCondition TimeCondition       `json:"timeCondition"`
	Contingent    ContingentCondition `json:"contingent"`

	Version int64 `json:"version"`
}

func (i *InputOrder) momPayload() {}

func (i *InputOrder) UpdateVersion() int64 {
	return atomic.AddInt64(&i.Version, 1)
}

func (i *InputOrder) Clone() *InputOrder {
	cp := *i
	cp.Version = atomic.LoadInt64(&i.Version)
	return &cp
}

func (i *InputOrder) ClonePayload() Payload {
	return i.Clone()
}

// ToOrder seeds a queueing order record from the input request.
func (i *InputOrder) ToOrder() *Order {
	return &Order{
		FundID:        i.FundID,
		AccountID:     i.AccountID,
		UserID:        i.UserID,
		OrderRef:      i.OrderRef,
		InputID:       i.InputID,
		Symbol:        i.Symbol,
		Exchange:      i.Exchange,
		Direction:     i.Direction,
		Offset:        i.Offset,
		Price:         i.Price,
		Volume:        i.Volume,
		VolumeLeft:    i.Volume,
		StopPrice:     i.StopPrice,
		TimeCondition: i.TimeCondition,
		Contingent:    i.Contingent,
		Status:        OrderStatusQueueing,
		SubmitStatus:  SubmitStatusInsertSubmitted,
	}
}

// OrderAction is the cancel request payload. Either OrderRef or OrderSysID
// identifies the target order.
type OrderAction struct {
	FundID    string `json:"fundId"`
	AccountID string `json:"accountId"`
	UserID    string `json:"userId"`

	OrderRef   string `json:"orderRef"`
	InputID    int64  `json:"inputId"`
	OrderSysID string `json:"orderSysId"`
	ActionRef  int64  `json:"actionRef"`

	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
}

func (a *OrderAction) momPayload() {}

func (a *OrderAction) ClonePayload() Payload {
	cp := *a
	return &cp
}
