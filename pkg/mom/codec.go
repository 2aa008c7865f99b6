package mom

import (
	"encoding/binary"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// requestPayloads and responsePayloads are the static kind→payload tables
// driving both codec directions. The two tables must stay in lock-step
// with the encoders: every kind a peer can send must decode to the exact
// type the sender encoded.
var requestPayloads = map[Kind]func() Payload{
	KindUserLogin:           func() Payload { return &ReqUserLogin{} },
	KindSubscribe:           func() Payload { return &SymbolList{} },
	KindUnsubscribe:         func() Payload { return &SymbolList{} },
	KindInputOrder:          func() Payload { return &InputOrder{} },
	KindOrderAction:         func() Payload { return &OrderAction{} },
	KindQryInstrument:       func() Payload { return &QryFilter{} },
	KindQryOrder:            func() Payload { return &QryFilter{} },
	KindQryTrade:            func() Payload { return &QryFilter{} },
	KindQryAccount:          func() Payload { return &QryFilter{} },
	KindQryPosition:         func() Payload { return &QryFilter{} },
	KindQryExchangeOrder:    func() Payload { return &QryFilter{} },
	KindQryExchangeAccount:  func() Payload { return &QryFilter{} },
	KindQryExchangePosition: func() Payload { return &QryFilter{} },
	KindChangeLeverage:      func() Payload { return &ChangeLeverage{} },
	KindCashJournal:         func() Payload { return &CashJournal{} },
}

var responsePayloads = map[Kind]func() Payload{
	KindRspUserLogin:           func() Payload { return &RspUserLogin{} },
	KindRspSubscribe:           func() Payload { return &SymbolList{} },
	KindRspUnsubscribe:         func() Payload { return &SymbolList{} },
	KindRspInputOrder:          func() Payload { return &Order{} },
	KindRspOrderAction:         func() Payload { return &Order{} },
	KindRspQryInstrument:       func() Payload { return &Instrument{} },
	KindRspQryOrder:            func() Payload { return &Order{} },
	KindRspQryTrade:            func() Payload { return &Trade{} },
	KindRspQryAccount:          func() Payload { return &Account{} },
	KindRspQryPosition:         func() Payload { return &Position{} },
	KindRspQryExchangeOrder:    func() Payload { return &Order{} },
	KindRspQryExchangeAccount:  func() Payload { return &Account{} },
	KindRspQryExchangePosition: func() Payload { return &Position{} },
	KindRspChangeLeverage:      func() Payload { return &ChangeLeverage{} },
	KindRspCashJournal:         func() Payload { return &CashJournal{} },
	KindRspError:               func() Payload { return &RspInfo{} },
	KindRtnOrder:               func() Payload { return &Order{} },
	KindRtnTrade:               func() Payload { return &Trade{} },
	KindRtnAccount:             func() Payload { return &Account{} },
	KindRtnPosition:            func() Payload { return &Position{} },
	KindRtnCashJournal:         func() Payload { return &CashJournal{} },
	KindInstrumentListed:       func() Payload { return &Instrument{} },
	KindInstrumentExpired:      func() Payload { return &Instrument{} },
}

// appendPayload writes the base-128 length prefix and the payload body.
// A nil payload writes a zero prefix, which decodes back to absent.
func appendPayload(buf []byte, payload Payload) ([]byte, error) {
	if payload == nil {
		return append(buf, 0), nil
	}
	body, err := jsoniter.Marshal(payload)
	if err != nil {
		return nil, errors.WithMessage(err, "fail marshal payload")
	}
	buf = binary.AppendUvarint(buf, uint64(len(body)))
	return append(buf, body...), nil
}

// readPayload consumes the length prefix and returns the body bytes, or
// nil for an absent payload.
func readPayload(data []byte) ([]byte, error) {
	size, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, errors.New("bad payload length prefix")
	}
	body := data[n:]
	if uint64(len(body)) != size {
		return nil, errors.Errorf("payload length %d, prefix says %d", len(body), size)
	}
	if size == 0 {
		return nil, nil
	}
	return body, nil
}

// EncodeRequest frames an outbound request: one kind byte, then the
// length-prefixed payload for kinds that carry data.
func EncodeRequest(r *Request) ([]byte, error) {
	if r.Kind.IsSignal() {
		return []byte{byte(r.Kind)}, nil
	}
	if _, ok := requestPayloads[r.Kind]; !ok {
		return nil, errors.New("unencodable request kind " + r.Kind.String())
	}
	buf := make([]byte, 1, 64)
	buf[0] = byte(r.Kind)
	return appendPayload(buf, r.Payload)
}

// DecodeRequest parses a request envelope. Unknown kinds yield a request
// with no payload rather than an error, so a newer peer cannot break us.
func DecodeRequest(data []byte) (*Request, error) {
	if len(data) == 0 {
		return nil, errors.New("empty request frame")
	}
	kind := Kind(data[0])
	if kind.IsSignal() {
		return &Request{Kind: kind}, nil
	}
	factory, ok := requestPayloads[kind]
	if !ok {
		return &Request{Kind: kind}, nil
	}
	body, err := readPayload(data[1:])
	if err != nil {
		return nil, errors.WithMessage(err, "fail frame request "+kind.String())
	}
	if body == nil {
		return &Request{Kind: kind}, nil
	}
	payload := factory()
	if err = jsoniter.Unmarshal(body, payload); err != nil {
		return nil, errors.WithMessage(err, "fail unmarshal request "+kind.String())
	}
	return &Request{Kind: kind, Payload: payload}, nil
}

// EncodeResponse frames an inbound-direction envelope: kind, isLast flag,
// big-endian sequence index, then the length-prefixed payload. Depth
// market data skips the generic boxing and serializes its fixed layout.
func EncodeResponse(r *Response) ([]byte, error) {
	buf := make([]byte, 0, 64)
	var last byte
	if r.IsLast {
		last = 1
	}
	buf = append(buf, byte(r.Kind), last)
	buf = binary.BigEndian.AppendUint32(buf, r.Seq)
	if r.Kind.IsSignal() {
		return buf, nil
	}
	if r.Kind == KindRtnDepthMarketData {
		depth, ok := r.Payload.(*DepthMarketData)
		if !ok || depth == nil {
			return append(buf, 0), nil
		}
		buf = binary.AppendUvarint(buf, depthWireSize)
		return encodeDepth(buf, depth), nil
	}
	if _, ok := responsePayloads[r.Kind]; !ok {
		return nil, errors.New("unencodable response kind " + r.Kind.String())
	}
	return appendPayload(buf, r.Payload)
}

// DecodeResponse parses an inbound envelope. It never fails: malformed
// bytes become a response of kind RspError wrapping the reason and the
// raw frame, delivered through the normal event path.
func DecodeResponse(data []byte) *Response {
	rsp, err := decodeResponse(data)
	if err != nil {
		raw := make([]byte, len(data))
		copy(raw, data)
		return &Response{Kind: KindRspError, Payload: &DecodeError{Reason: err.Error(), Raw: raw}}
	}
	return rsp
}

func decodeResponse(data []byte) (*Response, error) {
	if len(data) < 6 {
		return nil, errors.Errorf("response frame too short: %d bytes", len(data))
	}
	rsp := &Response{
		Kind:   Kind(data[0]),
		IsLast: data[1] == 1,
		Seq:    binary.BigEndian.Uint32(data[2:6]),
	}
	if rsp.Kind.IsSignal() {
		return rsp, nil
	}
	if rsp.Kind == KindRtnDepthMarketData {
		body, err := readPayload(data[6:])
		if err != nil {
			return nil, errors.WithMessage(err, "fail frame depth")
		}
		if body == nil {
			return rsp, nil
		}
		depth, err := decodeDepth(body)
		if err != nil {
			return nil, err
		}
		rsp.Payload = depth
		return rsp, nil
	}
	factory, ok := responsePayloads[rsp.Kind]
	if !ok {
		return rsp, nil
	}
	body, err := readPayload(data[6:])
	if err != nil {
		return nil, errors.WithMessage(err, "fail frame response "+rsp.Kind.String())
	}
	if body == nil {
		return rsp, nil
	}
	payload := factory()
	if err = jsoniter.Unmarshal(body, payload); err != nil {
		return nil, errors.WithMessage(err, "fail unmarshal response "+rsp.Kind.String())
	}
	rsp.Payload = payload
	return rsp, nil
}
