package mom

import (
	"bytes"
	"errors"
	"strconv"
)

type PosiDirection byte

const (
	PosiDirectionNet PosiDirection = iota
	PosiDirectionLong
	PosiDirectionShort

	posiDirectionNetStr   = "net"
	posiDirectionLongStr  = "long"
	posiDirectionShortStr = "short"
)

var (
	posiDirectionNetBytes   = []byte(`"net"`)
	posiDirectionLongBytes  = []byte(`"long"`)
	posiDirectionShortBytes = []byte(`"short"`)
)

var posiDirectionSet = RegisterCodeSet("posiDirection", map[string]byte{
	posiDirectionNetStr:   byte(PosiDirectionNet),
	posiDirectionLongStr:  byte(PosiDirectionLong),
	posiDirectionShortStr: byte(PosiDirectionShort),
})

func (pd PosiDirection) String() string {
	return posiDirectionSet.NameOf(byte(pd))
}

func (pd PosiDirection) MarshalJSON() ([]byte, error) {
	switch pd {
	case PosiDirectionNet:
		return posiDirectionNetBytes, nil
	case PosiDirectionLong:
		return posiDirectionLongBytes, nil
	case PosiDirectionShort:
		return posiDirectionShortBytes, nil
	}
	return nil, errors.New("invalid position direction json conversion: " + strconv.Itoa(int(pd)))
}

func (pd *PosiDirection) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, posiDirectionNetBytes) {
		*pd = PosiDirectionNet
		return nil
	}
	if bytes.Equal(data, posiDirectionLongBytes) {
		*pd = PosiDirectionLong
		return nil
	}
	if bytes.Equal(data, posiDirectionShortBytes) {
		*pd = PosiDirectionShort
		return nil
	}
	return errors.New("unsupported position direction: " + string(data))
}

func PosiDirectionStrToType(value string) (PosiDirection, error) {
	code, err := posiDirectionSet.CodeOf(value)
	if err != nil {
		return 0, errors.New("unsupported position direction: " + value)
	}
	return PosiDirection(code), nil
}
