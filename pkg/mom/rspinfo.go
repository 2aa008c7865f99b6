package mom

import "errors"

// ErrorCode is a protocol-level business rejection. The catalogue is
// closed; every code pairs with a stable message.
type ErrorCode byte

const (
	ErrorNone ErrorCode = iota
	ErrorInvalidLogin
	ErrorNotLoggedIn
	ErrorInstrumentNotFound
	ErrorAccountNotAssigned
	ErrorChannelNotAssigned
	ErrorInsufficientMoney
	ErrorInsufficientPosition
	ErrorDuplicateOrderRef
	ErrorPriceOutOfRange
	ErrorVolumeOutOfRange
	ErrorMarketClosed
	ErrorDuplicateCancel
	ErrorOrderNotFound
	ErrorUnsupportedRequest
)

var errorCodeSet = RegisterCodeSet("errorCode", map[string]byte{
	"none":                      byte(ErrorNone),
	"invalid login":             byte(ErrorInvalidLogin),
	"not logged in":             byte(ErrorNotLoggedIn),
	"instrument not found":      byte(ErrorInstrumentNotFound),
	"account not assigned":      byte(ErrorAccountNotAssigned),
	"channel not assigned":      byte(ErrorChannelNotAssigned),
	"insufficient money":        byte(ErrorInsufficientMoney),
	"insufficient position":     byte(ErrorInsufficientPosition),
	"duplicate order reference": byte(ErrorDuplicateOrderRef),
	"price out of range":        byte(ErrorPriceOutOfRange),
	"volume out of range":       byte(ErrorVolumeOutOfRange),
	"market closed":             byte(ErrorMarketClosed),
	"duplicate cancel":          byte(ErrorDuplicateCancel),
	"order not found":           byte(ErrorOrderNotFound),
	"unsupported request":       byte(ErrorUnsupportedRequest),
})

func (e ErrorCode) Error() string {
	return errorCodeSet.NameOf(byte(e))
}

// ErrorCodeStrToType resolves a catalogue message back to its code.
func ErrorCodeStrToType(value string) (ErrorCode, error) {
	code, err := errorCodeSet.CodeOf(value)
	if err != nil {
		return 0, errors.New("unsupported error code: " + value)
	}
	return ErrorCode(code), nil
}

// IsError reports whether the code signals a rejection.
func (e ErrorCode) IsError() bool {
	return e != ErrorNone
}

// RspInfo attaches a rejection to a response. A zero code means success.
// InputID and OrderRef correlate the rejection with the request it answers.
type RspInfo struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message,omitempty"`
	InputID  int64     `json:"inputId,omitempty"`
	OrderRef string    `json:"orderRef,omitempty"`
}

func (r *RspInfo) momPayload() {}

func (r *RspInfo) ClonePayload() Payload {
	cp := *r
	return &cp
}

// Err returns the rejection as an error, nil on success.
func (r *RspInfo) Err() error {
	if r == nil || !r.Code.IsError() {
		return nil
	}
	return r.Code
}

// NewRspInfo builds a rejection with the catalogue message.
func NewRspInfo(code ErrorCode) *RspInfo {
	return &RspInfo{Code: code, Message: code.Error()}
}

// DecodeError wraps bytes that failed to decode. It travels the normal
// event path instead of surfacing as an error: malformed input from the
// peer must never break the receive loop.
type DecodeError struct {
	Reason string
	Raw    []byte
}

func (d *DecodeError) momPayload() {}

func (d *DecodeError) ClonePayload() Payload {
	cp := &DecodeError{Reason: d.Reason, Raw: make([]byte, len(d.Raw))}
	copy(cp.Raw, d.Raw)
	return cp
}

func (d *DecodeError) Error() string {
	return "decode failure: " + d.Reason
}

// DisconnectInfo is the synthetic payload of a local Disconnected event.
// Graceful distinguishes a peer Close from a timeout or transport error,
// so the consumer can decide between immediate re-login and back-off.
type DisconnectInfo struct {
	Graceful bool
	Reason   string
}

func (d *DisconnectInfo) momPayload() {}

func (d *DisconnectInfo) ClonePayload() Payload {
	cp := *d
	return &cp
}
