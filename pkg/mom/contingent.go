package mom

import (
	"bytes"
	"errors"
	"strconv"
)

type ContingentCondition byte

const (
	ContingentImmediately ContingentCondition = iota
	ContingentStopLoss
	ContingentTakeProfit

	contingentImmediatelyStr = "immediately"
	contingentStopLossStr    = "stopLoss"
	contingentTakeProfitStr  = "takeProfit"
)

var (
	contingentImmediatelyBytes = []byte(`"immediately"`)
	contingentStopLossBytes    = []byte(`"stopLoss"`)
	contingentTakeProfitBytes  = []byte(`"takeProfit"`)
)

var contingentSet = RegisterCodeSet("contingentCondition", map[string]byte{
	contingentImmediatelyStr: byte(ContingentImmediately),
	contingentStopLossStr:    byte(ContingentStopLoss),
	contingentTakeProfitStr:  byte(ContingentTakeProfit),
})

func (cc ContingentCondition) String() string {
	return contingentSet.NameOf(byte(cc))
}

// IsConditional reports whether the order waits on a trigger price.
func (cc ContingentCondition) IsConditional() bool {
	return cc != ContingentImmediately
}

func (cc ContingentCondition) MarshalJSON() ([]byte, error) {
	switch cc {
	case ContingentImmediately:
		return contingentImmediatelyBytes, nil
	case ContingentStopLoss:
		return contingentStopLossBytes, nil
	case ContingentTakeProfit:
		return contingentTakeProfitBytes, nil
	}
	return nil, errors.New("invalid contingent condition json conversion: " + strconv.Itoa(int(cc)))
}

func (cc *ContingentCondition) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, contingentImmediatelyBytes) {
		*cc = ContingentImmediately
		return nil
	}
	if bytes.Equal(data, contingentStopLossBytes) {
		*cc = ContingentStopLoss
		return nil
	}
	if bytes.Equal(data, contingentTakeProfitBytes) {
		*cc = ContingentTakeProfit
		return nil
	}
	return errors.New("unsupported contingent condition: " + string(data))
}

func ContingentConditionStrToType(value string) (ContingentCondition, error) {
	code, err := contingentSet.CodeOf(value)
	if err != nil {
		return 0, errors.New("unsupported contingent condition: " + value)
	}
	return ContingentCondition(code), nil
}
