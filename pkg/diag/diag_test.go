package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_SortedOrdering(t *testing.T) {
	b := NewBus()
	b.Warn("b.js", Location{StartLine: 2, StartCol: 1}, CodeUnsupportedSyn, "second file")
	b.Warn("a.js", Location{StartLine: 5, StartCol: 1}, CodeUnsupportedSyn, "later line")
	b.Warn("a.js", Location{StartLine: 1, StartCol: 2}, CodeEval, "earlier line, later col")
	b.Warn("a.js", Location{StartLine: 1, StartCol: 1}, CodeWith, "earliest")

	got := b.Sorted()
	assert.Len(t, got, 4)
	assert.Equal(t, "earliest", got[0].Message)
	assert.Equal(t, "earlier line, later col", got[1].Message)
	assert.Equal(t, "later line", got[2].Message)
	assert.Equal(t, "second file", got[3].Message)
}

func TestBus_HasErrors(t *testing.T) {
	b := NewBus()
	assert.False(t, b.HasErrors())
	b.Warn("f.js", Location{}, CodeUnsupportedSyn, "warn only")
	assert.False(t, b.HasErrors())
	b.Error("f.js", Location{}, CodeParseError, "fatal")
	assert.True(t, b.HasErrors())
}

func TestBus_PromoteWarnToError(t *testing.T) {
	b := NewBus()
	b.Warn("f.js", Location{}, CodeEval, "uses eval")
	b.Info("f.js", Location{}, CodeDoWhile, "informational, stays info")

	b.PromoteWarnToError()

	records := b.Records()
	assert.Equal(t, Error, records[0].Level)
	assert.Equal(t, CodeStrictPromoted+":"+CodeEval, records[0].Code)
	assert.Equal(t, Info, records[1].Level, "info-level records are not promoted")
	assert.True(t, b.HasErrors())
}

func TestBus_Len(t *testing.T) {
	b := NewBus()
	assert.Equal(t, 0, b.Len())
	b.Info("f.js", Location{}, CodeSparseArray, "x")
	assert.Equal(t, 1, b.Len())
}
