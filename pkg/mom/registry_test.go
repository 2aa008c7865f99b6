package mom_test

import (
	"testing"

	"gitlab.heather.loc/helios/momapi/pkg/mom"
	"gotest.tools/assert"
)

func TestCodeSet_NameOf(t *testing.T) {
	set := mom.RegisterCodeSet("testSet", map[string]byte{
		"alpha": 1,
		"beta":  2,
	})

	assert.Equal(t, set.NameOf(1), "alpha")
	assert.Equal(t, set.NameOf(2), "beta")
	assert.Equal(t, set.NameOf(42), "_Undefined(42)_")
}

func TestCodeSet_CodeOf(t *testing.T) {
	set := mom.RegisterCodeSet("testSetCodes", map[string]byte{
		"alpha": 1,
	})

	code, err := set.CodeOf("alpha")
	assert.NilError(t, err)
	assert.Equal(t, code, byte(1))

	_, err = set.CodeOf("gamma")
	assert.ErrorContains(t, err, "unregistered name gamma in code set testSetCodes")
}

func TestRegisterCodeSet_Cached(t *testing.T) {
	first := mom.RegisterCodeSet("testSetCached", map[string]byte{"alpha": 1})
	second := mom.RegisterCodeSet("testSetCached", map[string]byte{"other": 9})

	assert.Equal(t, first, second)
	assert.Equal(t, second.NameOf(1), "alpha")
	assert.Equal(t, second.NameOf(9), "_Undefined(9)_")
}
