package mom

import (
	"bytes"
	"errors"
	"strconv"
)

type ProductClass byte

const (
	ProductClassSpot ProductClass = iota
	ProductClassFutures
	ProductClassSwap
	ProductClassInverseSwap
	ProductClassOption

	productClassSpotStr        = "spot"
	productClassFuturesStr     = "futures"
	productClassSwapStr        = "swap"
	productClassInverseSwapStr = "inverseSwap"
	productClassOptionStr      = "option"
)

var (
	productClassSpotBytes        = []byte(`"spot"`)
	productClassFuturesBytes     = []byte(`"futures"`)
	productClassSwapBytes        = []byte(`"swap"`)
	productClassInverseSwapBytes = []byte(`"inverseSwap"`)
	productClassOptionBytes      = []byte(`"option"`)
)

var productClassSet = RegisterCodeSet("productClass", map[string]byte{
	productClassSpotStr:        byte(ProductClassSpot),
	productClassFuturesStr:     byte(ProductClassFutures),
	productClassSwapStr:        byte(ProductClassSwap),
	productClassInverseSwapStr: byte(ProductClassInverseSwap),
	productClassOptionStr:      byte(ProductClassOption),
})

func (pc ProductClass) String() string {
	return productClassSet.NameOf(byte(pc))
}

// IsInverse reports whether the product is coin-margined. Inverse products
// keep their effective quantity in the cash position field.
func (pc ProductClass) IsInverse() bool {
	return pc == ProductClassInverseSwap
}

func (pc ProductClass) MarshalJSON() ([]byte, error) {
	switch pc {
	case ProductClassSpot:
		return productClassSpotBytes, nil
	case ProductClassFutures:
		return productClassFuturesBytes, nil
	case ProductClassSwap:
		return productClassSwapBytes, nil
	case ProductClassInverseSwap:
		return productClassInverseSwapBytes, nil
	case ProductClassOption:
		return productClassOptionBytes, nil
	}
	return nil, errors.New("invalid product class json conversion: " + strconv.Itoa(int(pc)))
}

func (pc *ProductClass) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, productClassSpotBytes) {
		*pc = ProductClassSpot
		return nil
	}
	if bytes.Equal(data, productClassFuturesBytes) {
		*pc = ProductClassFutures
		return nil
	}
	if bytes.Equal(data, productClassSwapBytes) {
		*pc = ProductClassSwap
		return nil
	}
	if bytes.Equal(data, productClassInverseSwapBytes) {
		*pc = ProductClassInverseSwap
		return nil
	}
	if bytes.Equal(data, productClassOptionBytes) {
		*pc = ProductClassOption
		return nil
	}
	return errors.New("unsupported product class: " + string(data))
}

func ProductClassStrToType(value string) (ProductClass, error) {
	code, err := productClassSet.CodeOf(value)
	if err != nil {
		return 0, errors.New("unsupported product class: " + value)
	}
	return ProductClass(code), nil
}
