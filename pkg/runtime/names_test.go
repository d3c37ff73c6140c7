package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames_EveryConstantIsListed(t *testing.T) {
	consts := []string{
		Undefined, Plus, LooseEq, And, Or, Nullish, Typeof, GetIndex, SetIndex,
		New, Keys, Iter, Regex, JsError, Console, Array, Object, Date, JSON,
		ObjSet, Spread, StringCoerce, NewObject,
	}
	for _, c := range consts {
		assert.True(t, Names[c], "constant %q missing from Names", c)
	}
	assert.Len(t, Names, len(consts))
}
