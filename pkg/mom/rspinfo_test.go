package mom_test

import (
	"testing"

	"gotest.tools/assert"

	"gitlab.heather.loc/helios/momapi/pkg/mom"
)

func TestErrorCode_BothDirections(t *testing.T) {
	cases := map[mom.ErrorCode]string{
		mom.ErrorNone:               "none",
		mom.ErrorInvalidLogin:       "invalid login",
		mom.ErrorDuplicateOrderRef:  "duplicate order reference",
		mom.ErrorOrderNotFound:      "order not found",
		mom.ErrorUnsupportedRequest: "unsupported request",
	}
	for code, msg := range cases {
		assert.Equal(t, code.Error(), msg)

		back, err := mom.ErrorCodeStrToType(msg)
		assert.NilError(t, err)
		assert.Equal(t, back, code)
	}
}

func TestErrorCode_Unregistered(t *testing.T) {
	assert.Equal(t, mom.ErrorCode(200).Error(), "_Undefined(200)_")

	_, err := mom.ErrorCodeStrToType("no such rejection")
	assert.ErrorContains(t, err, "unsupported error code")
}

func TestRspInfo_Err(t *testing.T) {
	assert.NilError(t, mom.NewRspInfo(mom.ErrorNone).Err())

	info := mom.NewRspInfo(mom.ErrorInsufficientMoney)
	assert.Equal(t, info.Message, "insufficient money")
	assert.Error(t, info.Err(), "insufficient money")
}
