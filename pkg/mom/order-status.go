package mom

import (
	"bytes"
	"errors"
	"strconv"
)

type OrderStatus byte

const (
	OrderStatusQueueing OrderStatus = iota
	OrderStatusPartiallyFilled
	OrderStatusFilled
	OrderStatusCanceled
	OrderStatusPartCanceled
	OrderStatusRejected
	OrderStatusExpired

	orderStatusQueueingStr        = "queueing"
	orderStatusPartiallyFilledStr = "partiallyFilled"
	orderStatusFilledStr          = "filled"
	orderStatusCanceledStr        = "canceled"
	orderStatusPartCanceledStr    = "partCanceled"
	orderStatusRejectedStr        = "rejected"
	orderStatusExpiredStr         = "expired"
)

var (
	orderStatusQueueingBytes        = []byte(`"queueing"`)
	orderStatusPartiallyFilledBytes = []byte(`"partiallyFilled"`)
	orderStatusFilledBytes          = []byte(`"filled"`)
	orderStatusCanceledBytes        = []byte(`"canceled"`)
	orderStatusPartCanceledBytes    = []byte(`"partCanceled"`)
	orderStatusRejectedBytes        = []byte(`"rejected"`)
	orderStatusExpiredBytes         = []byte(`"expired"`)
)

var orderStatusSet = RegisterCodeSet("orderStatus", map[string]byte{
	orderStatusQueueingStr:        byte(OrderStatusQueueing),
	orderStatusPartiallyFilledStr: byte(OrderStatusPartiallyFilled),
	orderStatusFilledStr:          byte(OrderStatusFilled),
	orderStatusCanceledStr:        byte(OrderStatusCanceled),
	orderStatusPartCanceledStr:    byte(OrderStatusPartCanceled),
	orderStatusRejectedStr:        byte(OrderStatusRejected),
	orderStatusExpiredStr:         byte(OrderStatusExpired),
})

func (os OrderStatus) String() string {
	return orderStatusSet.NameOf(byte(os))
}

// IsTerminal reports whether the status is final. A terminal order never
// transitions again.
func (os OrderStatus) IsTerminal() bool {
	switch os {
	case OrderStatusFilled, OrderStatusCanceled, OrderStatusPartCanceled, OrderStatusRejected, OrderStatusExpired:
		return true
	}
	return false
}

func (os OrderStatus) MarshalJSON() ([]byte, error) {
	switch os {
	case OrderStatusQueueing:
		return orderStatusQueueingBytes, nil
	case OrderStatusPartiallyFilled:
		return orderStatusPartiallyFilledBytes, nil
	case OrderStatusFilled:
		return orderStatusFilledBytes, nil
	case OrderStatusCanceled:
		return orderStatusCanceledBytes, nil
	case OrderStatusPartCanceled:
		return orderStatusPartCanceledBytes, nil
	case OrderStatusRejected:
		return orderStatusRejectedBytes, nil
	case OrderStatusExpired:
		return orderStatusExpiredBytes, nil
	}
	return nil, errors.New("invalid order status json conversion: " + strconv.Itoa(int(os)))
}

func (os *OrderStatus) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, orderStatusQueueingBytes) {
		*os = OrderStatusQueueing
		return nil
	}
	if bytes.Equal(data, orderStatusPartiallyFilledBytes) {
		*os = OrderStatusPartiallyFilled
		return nil
	}
	if bytes.Equal(data, orderStatusFilledBytes) {
		*os = OrderStatusFilled
		return nil
	}
	if bytes.Equal(data, orderStatusCanceledBytes) {
		*os = OrderStatusCanceled
		return nil
	}
	if bytes.Equal(data, orderStatusPartCanceledBytes) {
		*os = OrderStatusPartCanceled
		return nil
	}
	if bytes.Equal(data, orderStatusRejectedBytes) {
		*os = OrderStatusRejected
		return nil
	}
	if bytes.Equal(data, orderStatusExpiredBytes) {
		*os = OrderStatusExpired
		return nil
	}
	return errors.New("unsupported order status: " + string(data))
}

func OrderStatusStrToType(value string) (OrderStatus, error) {
	code, err := orderStatusSet.CodeOf(value)
	if err != nil {
		return 0, errors.New("unsupported order status: " + value)
	}
	return OrderStatus(code), nil
}
