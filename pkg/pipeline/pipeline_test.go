package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"

	"github.com/viant/jstranslate/pkg/cache"
)

func TestRun_SimpleFunctionTranslatesCleanly(t *testing.T) {
	src := []byte(`
function add(a, b) {
  return a + b;
}
`)
	res := Run(context.Background(), "add.js", src, nil, Options{SourceName: "add.js"})
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Output, "def add(a, b):")
	assert.Contains(t, res.Output, "return")
	assert.True(t, strings.HasSuffix(res.Output, "\n"))
	assert.False(t, strings.HasSuffix(res.Output, "\n\n"))
}

func TestRun_DoWhileProducesInfoDiagnosticNotError(t *testing.T) {
	src := []byte(`
var i = 0;
do {
  i = i + 1;
} while (i < 3);
`)
	res := Run(context.Background(), "loop.js", src, nil, Options{})
	assert.Equal(t, 1, res.ExitCode, "a non-error diagnostic still yields the translated-with-diagnostics exit code")
	found := false
	for _, r := range res.Bus.Records() {
		if r.Code == "JSR-DO-WHILE" {
			found = true
		}
	}
	assert.True(t, found, "do/while should record an info diagnostic")
}

func TestRun_StrictModePromotesWarningsToFatal(t *testing.T) {
	src := []byte(`with (obj) { x = 1; }`)
	res := Run(context.Background(), "with.js", src, nil, Options{Strict: true})
	assert.Equal(t, 2, res.ExitCode)
	assert.True(t, res.Bus.HasErrors())
}

func TestRun_SyntaxErrorWithoutStrictBestEffort(t *testing.T) {
	src := []byte(`function broken( {`)
	res := Run(context.Background(), "broken.js", src, nil, Options{})
	assert.NotEqual(t, 0, res.ExitCode)
}

func TestRun_CacheHitReusesParsedAST(t *testing.T) {
	dir := t.TempDir()
	c := cache.New(afs.New(), dir)
	src := []byte(`function f() { return 1; }`)

	first := Run(context.Background(), "f.js", src, c, Options{UseCache: true})
	second := Run(context.Background(), "f.js", src, c, Options{UseCache: true})

	assert.Equal(t, first.Output, second.Output)
	assert.Equal(t, 0, second.ExitCode)
}

func TestWorstExitCode(t *testing.T) {
	assert.Equal(t, 0, WorstExitCode(nil))
	assert.Equal(t, 0, WorstExitCode([]int{0, 0}))
	assert.Equal(t, 1, WorstExitCode([]int{0, 1, 0}))
	assert.Equal(t, 2, WorstExitCode([]int{0, 1, 2}))
}

func TestNormalize_CRLFAndBOM(t *testing.T) {
	got := normalize(string(rune(0xFEFF)) + "a\r\nb\rc")
	assert.Equal(t, "a\nb\nc\n", got)
}

func TestNormalize_CollapsesTrailingBlankLines(t *testing.T) {
	got := normalize("a\n\n\n\n")
	assert.Equal(t, "a\n", got)
}
