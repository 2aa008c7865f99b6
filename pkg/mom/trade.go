package mom

import (
	"bytes"
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

type TradeRole byte

const (
	TradeRoleTaker TradeRole = iota
	TradeRoleMaker

	tradeRoleTakerStr = "taker"
	tradeRoleMakerStr = "maker"
)

var (
	tradeRoleTakerBytes = []byte(`"taker"`)
	tradeRoleMakerBytes = []byte(`"maker"`)
)

var tradeRoleSet = RegisterCodeSet("tradeRole", map[string]byte{
	tradeRoleTakerStr: byte(TradeRoleTaker),
	tradeRoleMakerStr: byte(TradeRoleMaker),
})

func (tr TradeRole) String() string {
	return tradeRoleSet.NameOf(byte(tr))
}

func (tr TradeRole) MarshalJSON() ([]byte, error) {
	switch tr {
	case TradeRoleTaker:
		return tradeRoleTakerBytes, nil
	case TradeRoleMaker:
		return tradeRoleMakerBytes, nil
	}
	return nil, errors.New("invalid trade role json conversion: " + strconv.Itoa(int(tr)))
}

func (tr *TradeRole) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, tradeRoleTakerBytes) {
		*tr = TradeRoleTaker
		return nil
	}
	if bytes.Equal(data, tradeRoleMakerBytes) {
		*tr = TradeRoleMaker
		return nil
	}
	return errors.New("unsupported trade role: " + string(data))
}

// Trade is a single fill. Immutable after creation; only the version
// counter moves, to signal that the fill was observed again.
type Trade struct {
	TradeID    string `json:"tradeId"`
	OrderRef   string `json:"orderRef"`
	OrderSysID string `json:"orderSysId"`
	InputID    int64  `json:"inputId"`

	FundID    string `json:"fundId"`
	AccountID string `json:"accountId"`
	UserID    string `json:"userId"`

	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`

	Direction Direction  `json:"direction"`
	Offset    OffsetFlag `json:"offset"`
	Role      TradeRole  `json:"role"`

	Price      decimal.Decimal `json:"price"`
	Volume     decimal.Decimal `json:"volume"`
	Amount     decimal.Decimal `json:"amount"`
	Commission decimal.Decimal `json:"commission"`

	TradeTime  int64  `json:"tradeTime"`
	TradingDay string `json:"tradingDay"`
	Version    int64  `json:"version"`
}

func (t *Trade) momPayload() {}

func (t *Trade) UpdateVersion() int64 {
	return atomic.AddInt64(&t.Version, 1)
}

// Clone returns a field-complete copy of the record.
func (t *Trade) Clone() *Trade {
	cp := *t
	cp.Version = atomic.LoadInt64(&t.Version)
	return &cp
}

func (t *Trade) ClonePayload() Payload {
	return t.Clone()
}
