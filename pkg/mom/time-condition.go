package mom

import (
	"bytes"
	"errors"
	"strconv"
)

type TimeCondition byte

const (
	TimeConditionGFD TimeCondition = iota
	TimeConditionGTC
	TimeConditionIOC
	TimeConditionFOK

	timeConditionGFDStr = "gfd"
	timeConditionGTCStr = "gtc"
	timeConditionIOCStr = "ioc"
	timeConditionFOKStr = "fok"
)

var (
	timeConditionGFDBytes = []byte(`"gfd"`)
	timeConditionGTCBytes = []byte(`"gtc"`)
	timeConditionIOCBytes = []byte(`"ioc"`)
	timeConditionFOKBytes = []byte(`"fok"`)
)

var timeConditionSet = RegisterCodeSet("timeCondition", map[string]byte{
	timeConditionGFDStr: byte(TimeConditionGFD),
	timeConditionGTCStr: byte(TimeConditionGTC),
	timeConditionIOCStr: byte(TimeConditionIOC),
	timeConditionFOKStr: byte(TimeConditionFOK),
})

func (tc TimeCondition) String() string {
	return timeConditionSet.NameOf(byte(tc))
}

// IsImmediate reports whether the unfilled remainder dies on arrival.
func (tc TimeCondition) IsImmediate() bool {
	return tc == TimeConditionIOC || tc == TimeConditionFOK
}

func (tc TimeCondition) MarshalJSON() ([]byte, error) {
	switch tc {
	case TimeConditionGFD:
		return timeConditionGFDBytes, nil
	case TimeConditionGTC:
		return timeConditionGTCBytes, nil
	case TimeConditionIOC:
		return timeConditionIOCBytes, nil
	case TimeConditionFOK:
		return timeConditionFOKBytes, nil
	}
	return nil, errors.New("invalid time condition json conversion: " + strconv.Itoa(int(tc)))
}

func (tc *TimeCondition) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, timeConditionGFDBytes) {
		*tc = TimeConditionGFD
		return nil
	}
	if bytes.Equal(data, timeConditionGTCBytes) {
		*tc = TimeConditionGTC
		return nil
	}
	if bytes.Equal(data, timeConditionIOCBytes) {
		*tc = TimeConditionIOC
		return nil
	}
	if bytes.Equal(data, timeConditionFOKBytes) {
		*tc = TimeConditionFOK
		return nil
	}
	return errors.New("unsupported time condition: " + string(data))
}

func TimeConditionStrToType(value string) (TimeCondition, error) {
	code, err := timeConditionSet.CodeOf(value)
	if err != nil {
		return 0, errors.New("unsupported time condition: " + value)
	}
	return TimeCondition(code), nil
}
