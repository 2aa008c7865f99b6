package mom

import (
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// TradingRule is a packed bit-field of per-instrument trading permissions.
type TradingRule byte

const (
	RuleEnableTrading TradingRule = 1 << iota
	RuleCloseTodayFirst
	RuleLockCloseToday
	RuleEnableShort
	RuleEnableCloseToday
)

// Has reports whether every rule in mask is set.
func (r TradingRule) Has(mask TradingRule) bool {
	return r&mask == mask
}

// With returns the rule set with mask added.
func (r TradingRule) With(mask TradingRule) TradingRule {
	return r | mask
}

// Without returns the rule set with mask removed.
func (r TradingRule) Without(mask TradingRule) TradingRule {
	return r &^ mask
}

// InstrumentPhase is the contract lifecycle state.
type InstrumentPhase byte

const (
	InstrumentStarted InstrumentPhase = iota
	InstrumentExpiredPhase
)

func (p InstrumentPhase) String() string {
	if p == InstrumentStarted {
		return "started"
	}
	return "expired"
}

// Instrument is the contract reference record. Identity is the symbol
// alone; exchange and market are descriptive.
type Instrument struct {
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	Market   string `json:"market"`

	Class          ProductClass    `json:"class"`
	PriceTick      decimal.Decimal `json:"priceTick"`
	VolumeMultiple decimal.Decimal `json:"volumeMultiple"`
	StrikePrice    decimal.Decimal `json:"strikePrice,omitempty"`
	ExpireDate     string          `json:"expireDate,omitempty"`

	Rules TradingRule     `json:"rules"`
	Phase InstrumentPhase `json:"phase"`

	Version int64 `json:"version"`
}

func (i *Instrument) momPayload() {}

func (i *Instrument) UpdateVersion() int64 {
	return atomic.AddInt64(&i.Version, 1)
}

// Same reports record identity, which is defined by symbol alone.
func (i *Instrument) Same(other *Instrument) bool {
	return other != nil && i.Symbol == other.Symbol
}

// Tradable reports whether orders are currently accepted for the contract.
func (i *Instrument) Tradable() bool {
	return i.Phase == InstrumentStarted && i.Rules.Has(RuleEnableTrading)
}

// Clone returns a field-complete copy of the record.
func (i *Instrument) Clone() *Instrument {
	cp := *i
	cp.Version = atomic.LoadInt64(&i.Version)
	return &cp
}

func (i *Instrument) ClonePayload() Payload {
	return i.Clone()
}
