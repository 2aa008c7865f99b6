package mom_test

import (
	"encoding/json"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"gitlab.heather.loc/helios/momapi/pkg/mom"
	"gotest.tools/assert"
)

type testOrderStatusType struct {
	Status mom.OrderStatus `json:"status"`
}

func orderStatusGetMap() map[string]mom.OrderStatus {
	return map[string]mom.OrderStatus{
		"queueing":        mom.OrderStatusQueueing,
		"partiallyFilled": mom.OrderStatusPartiallyFilled,
		"filled":          mom.OrderStatusFilled,
		"canceled":        mom.OrderStatusCanceled,
		"partCanceled":    mom.OrderStatusPartCanceled,
		"rejected":        mom.OrderStatusRejected,
		"expired":         mom.OrderStatusExpired,
	}
}

func TestOrderStatus_MarshalJSON(t *testing.T) {
	var err error
	var result []byte
	var obj testOrderStatusType

	for valStr, val := range orderStatusGetMap() {
		jsonObj := testOrderStatusType{Status: val}
		jsonStr := `{"status":"` + valStr + `"}`

		result, err = json.Marshal(&jsonObj)
		assert.NilError(t, err)
		assert.Equal(t, string(result), jsonStr, "std marshal "+valStr)

		result, err = jsoniter.Marshal(&jsonObj)
		assert.NilError(t, err)
		assert.Equal(t, string(result), jsonStr, "jsoniter marshal "+valStr)

		err = json.Unmarshal([]byte(jsonStr), &obj)
		assert.NilError(t, err)
		assert.Equal(t, obj.Status, val, "std unmarshal "+valStr)

		err = jsoniter.Unmarshal([]byte(jsonStr), &obj)
		assert.NilError(t, err)
		assert.Equal(t, obj.Status, val, "jsoniter unmarshal "+valStr)
	}

	_, err = json.Marshal(&testOrderStatusType{Status: mom.OrderStatus(100)})
	assert.ErrorContains(t, err, `invalid order status json conversion: 100`)

	err = json.Unmarshal([]byte(`{"status":"newStatus"}`), &obj)
	assert.ErrorContains(t, err, `unsupported order status: "newStatus"`)
}

func TestOrderStatus_String(t *testing.T) {
	for valStr, val := range orderStatusGetMap() {
		assert.Equal(t, val.String(), valStr, "string "+valStr)
		resolve, err := mom.OrderStatusStrToType(valStr)
		assert.NilError(t, err)
		assert.Equal(t, resolve, val, "from string "+valStr)
	}

	assert.Equal(t, mom.OrderStatus(100).String(), "_Undefined(100)_")

	_, err := mom.OrderStatusStrToType("newStatus")
	assert.Error(t, err, `unsupported order status: newStatus`)
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	terminal := map[mom.OrderStatus]bool{
		mom.OrderStatusQueueing:        false,
		mom.OrderStatusPartiallyFilled: false,
		mom.OrderStatusFilled:          true,
		mom.OrderStatusCanceled:        true,
		mom.OrderStatusPartCanceled:    true,
		mom.OrderStatusRejected:        true,
		mom.OrderStatusExpired:         true,
	}
	for status, want := range terminal {
		assert.Equal(t, status.IsTerminal(), want, status.String())
	}
}
