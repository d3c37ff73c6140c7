package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/txtar"
)

// goldenFixtures bundles several small, independent source snippets into one
// txtar archive, the teacher's own fixture format (x/mod's module-graph
// tests and x/tools' own test suite both lean on txtar for exactly this:
// many small named inputs in one readable blob) rather than one file per
// case.
var goldenFixtures = []byte(`
-- function.js --
function add(a, b) {
  return a + b;
}
-- class.js --
class Counter {
  constructor() {
    this.n = 0;
  }
  increment() {
    this.n = this.n + 1;
    return this.n;
  }
}
-- loop.js --
var total = 0;
for (var i = 0; i < 10; i = i + 1) {
  total = total + i;
}
-- module.js --
export function square(x) {
  return x * x;
}
export default square;
`)

// TestRun_GoldenFixturesAreDeterministic runs every fixture through the full
// pipeline twice and checks the translated text is byte-identical both
// times, the determinism contract spec.md §8 requires of the Emitter.
func TestRun_GoldenFixturesAreDeterministic(t *testing.T) {
	archive := txtar.Parse(goldenFixtures)
	assert.NotEmpty(t, archive.Files)

	for _, f := range archive.Files {
		f := f
		t.Run(f.Name, func(t *testing.T) {
			opt := Options{SourceName: f.Name}
			first := Run(context.Background(), f.Name, f.Data, nil, opt)
			second := Run(context.Background(), f.Name, f.Data, nil, opt)

			assert.Equal(t, first.Output, second.Output)
			assert.Equal(t, first.ExitCode, second.ExitCode)
			assert.NotEqual(t, 2, first.ExitCode, "fixture %s should translate without a fatal error", f.Name)
		})
	}
}
