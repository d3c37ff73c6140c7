package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_DeterministicForSameInput(t *testing.T) {
	a, err := Fingerprint([]byte("print(1)\n"))
	assert.NoError(t, err)
	b, err := Fingerprint([]byte("print(1)\n"))
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFingerprint_DiffersForDifferentInput(t *testing.T) {
	a, err := Fingerprint([]byte("print(1)\n"))
	assert.NoError(t, err)
	b, err := Fingerprint([]byte("print(2)\n"))
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFingerprint_EmptyInputIsDeterministic(t *testing.T) {
	a, err := Fingerprint(nil)
	assert.NoError(t, err)
	b, err := Fingerprint([]byte{})
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}
