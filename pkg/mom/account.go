package mom

import (
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

// RecordScope tags whether a record aggregates at fund level or belongs to
// a single user account.
type RecordScope byte

const (
	ScopeFund RecordScope = iota
	ScopeUser
)

func (rs RecordScope) String() string {
	if rs == ScopeFund {
		return "fund"
	}
	return "user"
}

// Account is the trading-account balance record pushed by the gateway.
// The gateway reconciles by overwriting fields in place; Version lets a
// consumer holding an older copy detect staleness without locking.
type Account struct {
	Scope     RecordScope `json:"scope"`
	FundID    string      `json:"fundId"`
	AccountID string      `json:"accountId"`
	UserID    string      `json:"userId"`
	Exchange  string      `json:"exchange"`
	Market    string      `json:"market"`
	Currency  string      `json:"currency"`

	PreBalance       decimal.Decimal `json:"preBalance"`
	Deposit          decimal.Decimal `json:"deposit"`
	Withdraw         decimal.Decimal `json:"withdraw"`
	FrozenMargin     decimal.Decimal `json:"frozenMargin"`
	CurrMargin       decimal.Decimal `json:"currMargin"`
	FrozenCommission decimal.Decimal `json:"frozenCommission"`
	Commission       decimal.Decimal `json:"commission"`
	FrozenPremium    decimal.Decimal `json:"frozenPremium"`
	Premium          decimal.Decimal `json:"premium"`
	CloseProfit      decimal.Decimal `json:"closeProfit"`
	PositionProfit   decimal.Decimal `json:"positionProfit"`
	Balance          decimal.Decimal `json:"balance"`
	Available        decimal.Decimal `json:"available"`

	TradingDay string `json:"tradingDay"`
	Version    int64  `json:"version"`
}

func (a *Account) momPayload() {}

// UpdateVersion atomically bumps the version counter and returns it.
func (a *Account) UpdateVersion() int64 {
	return atomic.AddInt64(&a.Version, 1)
}

// RiskDegree derives margin usage: currMargin / (available + positionProfit)
// when the denominator is positive, zero otherwise.
func (a *Account) RiskDegree() decimal.Decimal {
	denom := a.Available.Add(a.PositionProfit)
	if denom.Sign() <= 0 {
		return decimal.Zero
	}
	return a.CurrMargin.Div(denom)
}

// Reset zeroes the per-period accumulators at period roll. Balances and
// margin stay untouched; the rollover trigger lives with the caller.
func (a *Account) Reset() {
	a.Deposit = decimal.Zero
	a.Withdraw = decimal.Zero
	a.FrozenMargin = decimal.Zero
	a.FrozenCommission = decimal.Zero
	a.Commission = decimal.Zero
	a.FrozenPremium = decimal.Zero
	a.Premium = decimal.Zero
	a.CloseProfit = decimal.Zero
	a.PositionProfit = decimal.Zero
}

// Clone returns a field-complete copy of the record.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Version = atomic.LoadInt64(&a.Version)
	return &cp
}

func (a *Account) ClonePayload() Payload {
	return a.Clone()
}

// Summary renders the record for logs. Fund-scope accounts hide the user
// identity, user-scope accounts carry it.
func (a *Account) Summary() string {
	type fundSummary struct {
		FundID    string          `json:"fundId"`
		Currency  string          `json:"currency"`
		Balance   decimal.Decimal `json:"balance"`
		Available decimal.Decimal `json:"available"`
		Risk      decimal.Decimal `json:"riskDegree"`
	}
	type userSummary struct {
		fundSummary
		AccountID string `json:"accountId"`
		UserID    string `json:"userId"`
	}
	fund := fundSummary{
		FundID:    a.FundID,
		Currency:  a.Currency,
		Balance:   a.Balance,
		Available: a.Available,
		Risk:      a.RiskDegree(),
	}
	var data []byte
	if a.Scope == ScopeFund {
		data, _ = jsoniter.Marshal(fund)
	} else {
		data, _ = jsoniter.Marshal(userSummary{fundSummary: fund, AccountID: a.AccountID, UserID: a.UserID})
	}
	return string(data)
}
