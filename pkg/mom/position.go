package mom

import (
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// Position is the per-instrument position record. For inverse products the
// effective quantity lives in CashPosition, not Position.
type Position struct {
	FundID    string `json:"fundId"`
	AccountID string `json:"accountId"`

	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	Market   string `json:"market"`

	Class     ProductClass  `json:"class"`
	Direction PosiDirection `json:"direction"`

	Position     decimal.Decimal `json:"position"`
	CashPosition decimal.Decimal `json:"cashPosition"`
	BuyVolume    decimal.Decimal `json:"buyVolume"`
	SellVolume   decimal.Decimal `json:"sellVolume"`

	Cost             decimal.Decimal `json:"cost"`
	Margin           decimal.Decimal `json:"margin"`
	RealizedProfit   decimal.Decimal `json:"realizedProfit"`
	UnrealizedProfit decimal.Decimal `json:"unrealizedProfit"`

	TradingDay string `json:"tradingDay"`
	Version    int64  `json:"version"`
}

func (p *Position) momPayload() {}

func (p *Position) UpdateVersion() int64 {
	return atomic.AddInt64(&p.Version, 1)
}

// EffectiveVolume returns the quantity that actually backs the exposure:
// the cash position for coin-margined products, the generic position
// otherwise.
func (p *Position) EffectiveVolume() decimal.Decimal {
	if p.Class.IsInverse() {
		return p.CashPosition
	}
	return p.Position
}

// Clone returns a field-complete copy of the record.
func (p *Position) Clone() *Position {
	cp := *p
	cp.Version = atomic.LoadInt64(&p.Version)
	return &cp
}

func (p *Position) ClonePayload() Payload {
	return p.Clone()
}

// PositionSnapshot is an immutable copy of a position frozen against a
// trading day.
type PositionSnapshot struct {
	TradingDay string
	Position   Position
}

// Freeze copies the live record into a snapshot tagged with the day key.
func (p *Position) Freeze(tradingDay string) PositionSnapshot {
	snap := p.Clone()
	snap.TradingDay = tradingDay
	return PositionSnapshot{TradingDay: tradingDay, Position: *snap}
}
