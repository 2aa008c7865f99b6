package mom

// Kind is the one-byte message discriminator selecting payload type and
// routing for every envelope on the wire.
type Kind byte

const (
	KindInit Kind = iota + 1
	KindPing
	KindPong
	KindClose
	KindConnected
	KindDisconnected
)

const (
	KindUserLogin Kind = iota + 10
	KindSubscribe
	KindUnsubscribe
	KindInputOrder
	KindOrderAction
	KindQryInstrument
	KindQryOrder
	KindQryTrade
	KindQryAccount
	KindQryPosition
	KindQryExchangeOrder
	KindQryExchangeAccount
	KindQryExchangePosition
	KindChangeLeverage
	KindCashJournal
)

const (
	KindRspUserLogin Kind = iota + 110
	KindRspSubscribe
	KindRspUnsubscribe
	KindRspInputOrder
	KindRspOrderAction
	KindRspQryInstrument
	KindRspQryOrder
	KindRspQryTrade
	KindRspQryAccount
	KindRspQryPosition
	KindRspQryExchangeOrder
	KindRspQryExchangeAccount
	KindRspQryExchangePosition
	KindRspChangeLeverage
	KindRspCashJournal
	KindRspError
	KindRtnDepthMarketData
	KindRtnOrder
	KindRtnTrade
	KindRtnAccount
	KindRtnPosition
	KindRtnCashJournal
	KindInstrumentListed
	KindInstrumentExpired
)

var kindSet = RegisterCodeSet("messageKind", map[string]byte{
	"Init":                   byte(KindInit),
	"Ping":                   byte(KindPing),
	"Pong":                   byte(KindPong),
	"Close":                  byte(KindClose),
	"Connected":              byte(KindConnected),
	"Disconnected":           byte(KindDisconnected),
	"UserLogin":              byte(KindUserLogin),
	"Subscribe":              byte(KindSubscribe),
	"Unsubscribe":            byte(KindUnsubscribe),
	"InputOrder":             byte(KindInputOrder),
	"OrderAction":            byte(KindOrderAction),
	"QryInstrument":          byte(KindQryInstrument),
	"QryOrder":               byte(KindQryOrder),
	"QryTrade":               byte(KindQryTrade),
	"QryAccount":             byte(KindQryAccount),
	"QryPosition":            byte(KindQryPosition),
	"QryExchangeOrder":       byte(KindQryExchangeOrder),
	"QryExchangeAccount":     byte(KindQryExchangeAccount),
	"QryExchangePosition":    byte(KindQryExchangePosition),
	"ChangeLeverage":         byte(KindChangeLeverage),
	"CashJournal":            byte(KindCashJournal),
	"RspUserLogin":           byte(KindRspUserLogin),
	"RspSubscribe":           byte(KindRspSubscribe),
	"RspUnsubscribe":         byte(KindRspUnsubscribe),
	"RspInputOrder":          byte(KindRspInputOrder),
	"RspOrderAction":         byte(KindRspOrderAction),
	"RspQryInstrument":       byte(KindRspQryInstrument),
	"RspQryOrder":            byte(KindRspQryOrder),
	"RspQryTrade":            byte(KindRspQryTrade),
	"RspQryAccount":          byte(KindRspQryAccount),
	"RspQryPosition":         byte(KindRspQryPosition),
	"RspQryExchangeOrder":    byte(KindRspQryExchangeOrder),
	"RspQryExchangeAccount":  byte(KindRspQryExchangeAccount),
	"RspQryExchangePosition": byte(KindRspQryExchangePosition),
	"RspChangeLeverage":      byte(KindRspChangeLeverage),
	"RspCashJournal":         byte(KindRspCashJournal),
	"RspError":               byte(KindRspError),
	"RtnDepthMarketData":     byte(KindRtnDepthMarketData),
	"RtnOrder":               byte(KindRtnOrder),
	"RtnTrade":               byte(KindRtnTrade),
	"RtnAccount":             byte(KindRtnAccount),
	"RtnPosition":            byte(KindRtnPosition),
	"RtnCashJournal":         byte(KindRtnCashJournal),
	"InstrumentListed":       byte(KindInstrumentListed),
	"InstrumentExpired":      byte(KindInstrumentExpired),
})

func (k Kind) String() string {
	return kindSet.NameOf(byte(k))
}

// IsSignal reports whether the kind is a control signal carrying no payload.
func (k Kind) IsSignal() bool {
	return k >= KindInit && k <= KindDisconnected
}

// KindStrToType resolves a kind by its registered name.
func KindStrToType(name string) (Kind, error) {
	code, err := kindSet.CodeOf(name)
	return Kind(code), err
}
