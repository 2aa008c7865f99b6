package mom

import (
	"bytes"
	"errors"
	"strconv"
)

type OffsetFlag byte

const (
	OffsetOpen OffsetFlag = iota
	OffsetClose
	OffsetCloseToday
	OffsetCloseYesterday

	offsetOpenStr           = "open"
	offsetCloseStr          = "close"
	offsetCloseTodayStr     = "closeToday"
	offsetCloseYesterdayStr = "closeYesterday"
)

var (
	offsetOpenBytes           = []byte(`"open"`)
	offsetCloseBytes          = []byte(`"close"`)
	offsetCloseTodayBytes     = []byte(`"closeToday"`)
	offsetCloseYesterdayBytes = []byte(`"closeYesterday"`)
)

var offsetSet = RegisterCodeSet("offsetFlag", map[string]byte{
	offsetOpenStr:           byte(OffsetOpen),
	offsetCloseStr:          byte(OffsetClose),
	offsetCloseTodayStr:     byte(OffsetCloseToday),
	offsetCloseYesterdayStr: byte(OffsetCloseYesterday),
})

func (of OffsetFlag) String() string {
	return offsetSet.NameOf(byte(of))
}

// IsClose reports whether the flag closes an existing position.
func (of OffsetFlag) IsClose() bool {
	return of != OffsetOpen
}

func (of OffsetFlag) MarshalJSON() ([]byte, error) {
	switch of {
	case OffsetOpen:
		return offsetOpenBytes, nil
	case OffsetClose:
		return offsetCloseBytes, nil
	case OffsetCloseToday:
		return offsetCloseTodayBytes, nil
	case OffsetCloseYesterday:
		return offsetCloseYesterdayBytes, nil
	}
	return nil, errors.New("invalid offset flag json conversion: " + strconv.Itoa(int(of)))
}

func (of *OffsetFlag) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, offsetOpenBytes) {
		*of = OffsetOpen
		return nil
	}
	if bytes.Equal(data, offsetCloseBytes) {
		*of = OffsetClose
		return nil
	}
	if bytes.Equal(data, offsetCloseTodayBytes) {
		*of = OffsetCloseToday
		return nil
	}
	if bytes.Equal(data, offsetCloseYesterdayBytes) {
		*of = OffsetCloseYesterday
		return nil
	}
	return errors.New("unsupported offset flag: " + string(data))
}

func OffsetFlagStrToType(value string) (OffsetFlag, error) {
	code, err := offsetSet.CodeOf(value)
	if err != nil {
		return 0, errors.New("unsupported offset flag: " + value)
	}
	return OffsetFlag(code), nil
}
