package mom

import (
	"bytes"
	"errors"
	"strconv"
)

type Direction byte

const (
	DirectionBuy Direction = iota
	DirectionSell

	directionBuyStr  = "buy"
	directionSellStr = "sell"
)

var (
	directionBuyBytes  = []byte(`"buy"`)
	directionSellBytes = []byte(`"sell"`)
)

var directionSet = RegisterCodeSet("direction", map[string]byte{
	directionBuyStr:  byte(DirectionBuy),
	directionSellStr: byte(DirectionSell),
})

func (d Direction) String() string {
	return directionSet.NameOf(byte(d))
}

// Opposite returns the other trading direction.
func (d Direction) Opposite() Direction {
	if d == DirectionBuy {
		return DirectionSell
	}
	return DirectionBuy
}

func (d Direction) MarshalJSON() ([]byte, error) {
	switch d {
	case DirectionBuy:
		return directionBuyBytes, nil
	case DirectionSell:
		return directionSellBytes, nil
	}
	return nil, errors.New("invalid direction json conversion: " + strconv.Itoa(int(d)))
}

func (d *Direction) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, directionBuyBytes) {
		*d = DirectionBuy
		return nil
	}
	if bytes.Equal(data, directionSellBytes) {
		*d = DirectionSell
		return nil
	}
	return errors.New("unsupported direction: " + string(data))
}

func DirectionStrToType(value string) (Direction, error) {
	code, err := directionSet.CodeOf(value)
	if err != nil {
		return 0, errors.New("unsupported direction: " + value)
	}
	return Direction(code), nil
}
