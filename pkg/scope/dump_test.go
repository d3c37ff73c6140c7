package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestDumpYAML_RoundTripsScopeShape(t *testing.T) {
	program, bus := parseFor(t, "function f(a) {\n  var x = a;\n  return x;\n}")
	res := Analyze("test.js", program, bus, false)

	data, err := DumpYAML(res)
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	var decoded []*Scope
	assert.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Len(t, decoded, len(res.Scopes))
	assert.Equal(t, res.Scopes[0].Kind, decoded[0].Kind)
}

func TestDumpYAML_OmitsBindingsField(t *testing.T) {
	program, bus := parseFor(t, "var x = 1;")
	res := Analyze("test.js", program, bus, false)

	data, err := DumpYAML(res)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "bindings:")
}
