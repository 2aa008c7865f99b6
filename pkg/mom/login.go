package mom

// ReqUserLogin authenticates a user against the gateway.
type ReqUserLogin struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
	FundID   string `json:"fundId,omitempty"`
	Protocol string `json:"protocol,omitempty"`
}

func (r *ReqUserLogin) momPayload() {}

func (r *ReqUserLogin) ClonePayload() Payload {
	cp := *r
	return &cp
}

// RspUserLogin carries the session granted by the gateway.
type RspUserLogin struct {
	UserID      string `json:"userId"`
	TradingDay  string `json:"tradingDay"`
	SessionID   int64  `json:"sessionId"`
	MaxOrderRef int64  `json:"maxOrderRef"`
}

func (r *RspUserLogin) momPayload() {}

func (r *RspUserLogin) ClonePayload() Payload {
	cp := *r
	return &cp
}

// SymbolList is the subscribe/unsubscribe payload.
type SymbolList struct {
	Symbols []string `json:"symbols"`
}

func (s *SymbolList) momPayload() {}

func (s *SymbolList) ClonePayload() Payload {
	cp := &SymbolList{Symbols: make([]string, len(s.Symbols))}
	copy(cp.Symbols, s.Symbols)
	return cp
}

// QryFilter narrows a query request. Empty fields match everything.
type QryFilter struct {
	FundID    string `json:"fundId,omitempty"`
	AccountID string `json:"accountId,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Symbol    string `json:"symbol,omitempty"`
	Exchange  string `json:"exchange,omitempty"`
}

func (q *QryFilter) momPayload() {}

func (q *QryFilter) ClonePayload() Payload {
	cp := *q
	return &cp
}

// ChangeLeverage adjusts account leverage for one instrument.
type ChangeLeverage struct {
	AccountID string `json:"accountId"`
	Symbol    string `json:"symbol"`
	Leverage  int    `json:"leverage"`
}

func (c *ChangeLeverage) momPayload() {}

func (c *ChangeLeverage) ClonePayload() Payload {
	cp := *c
	return &cp
}
