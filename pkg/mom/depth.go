package mom

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

const depthLevels = 5

// depthWireSize is the exact serialized size of one depth record: the
// 16-byte symbol, trading day, timestamp, five tick prices, volume,
// turnover, open interest and five bid/ask price+volume levels.
const depthWireSize = 16 + 4 + 8 + 5*8 + 3*8 + 4*depthLevels*8

// DepthMarketData is the market-depth snapshot. It is the highest-volume
// message kind, so it bypasses the generic payload boxing entirely: fixed
// field order, numeric fields only, no allocation on decode beyond the
// record itself.
type DepthMarketData struct {
	Symbol     [16]byte
	TradingDay uint32
	Timestamp  int64

	LastPrice float64
	Open      float64
	High      float64
	Low       float64
	Close     float64

	Volume       float64
	Turnover     float64
	OpenInterest float64

	BidPrice  [depthLevels]float64
	BidVolume [depthLevels]float64
	AskPrice  [depthLevels]float64
	AskVolume [depthLevels]float64
}

func (d *DepthMarketData) momPayload() {}

func (d *DepthMarketData) ClonePayload() Payload {
	cp := *d
	return &cp
}

// SymbolString trims the fixed symbol field to its string form.
func (d *DepthMarketData) SymbolString() string {
	if i := bytes.IndexByte(d.Symbol[:], 0); i >= 0 {
		return string(d.Symbol[:i])
	}
	return string(d.Symbol[:])
}

// SetSymbol fills the fixed symbol field, truncating to 16 bytes.
func (d *DepthMarketData) SetSymbol(symbol string) {
	d.Symbol = [16]byte{}
	copy(d.Symbol[:], symbol)
}

func encodeDepth(buf []byte, d *DepthMarketData) []byte {
	buf = append(buf, d.Symbol[:]...)
	buf = binary.BigEndian.AppendUint32(buf, d.TradingDay)
	buf = binary.BigEndian.AppendUint64(buf, uint64(d.Timestamp))
	for _, v := range []float64{d.LastPrice, d.Open, d.High, d.Low, d.Close, d.Volume, d.Turnover, d.OpenInterest} {
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
	}
	for i := 0; i < depthLevels; i++ {
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(d.BidPrice[i]))
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(d.BidVolume[i]))
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(d.AskPrice[i]))
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(d.AskVolume[i]))
	}
	return buf
}

func decodeDepth(data []byte) (*DepthMarketData, error) {
	if len(data) != depthWireSize {
		return nil, errors.Errorf("depth payload size %d, want %d", len(data), depthWireSize)
	}
	d := &DepthMarketData{}
	copy(d.Symbol[:], data[:16])
	data = data[16:]
	d.TradingDay = binary.BigEndian.Uint32(data)
	data = data[4:]
	d.Timestamp = int64(binary.BigEndian.Uint64(data))
	data = data[8:]
	for _, field := range []*float64{&d.LastPrice, &d.Open, &d.High, &d.Low, &d.Close, &d.Volume, &d.Turnover, &d.OpenInterest} {
		*field = math.Float64frombits(binary.BigEndian.Uint64(data))
		data = data[8:]
	}
	for i := 0; i < depthLevels; i++ {
		d.BidPrice[i] = math.Float64frombits(binary.BigEndian.Uint64(data))
		d.BidVolume[i] = math.Float64frombits(binary.BigEndian.Uint64(data[8:]))
		d.AskPrice[i] = math.Float64frombits(binary.BigEndian.Uint64(data[16:]))
		d.AskVolume[i] = math.Float64frombits(binary.BigEndian.Uint64(data[24:]))
		data = data[32:]
	}
	return d, nil
}
