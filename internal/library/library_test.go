package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swanand58/math-ai-agent/internal/expression"
)

func fullRecord(t *testing.T) *expression.Expression {
	t.Helper()
	e, err := expression.New("x^2 + y^2", "x^{2} + y^{2}",
		expression.WithQuery("sum of squares"),
		expression.WithLatencySeconds(0.25),
	)
	require.NoError(t, err)
	e, err = e.WithRendering("x² + y²")
	require.NoError(t, err)
	return e
}

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	l := New(filepath.Join(t.TempDir(), "expressions"))
	l.now = func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) }
	return l
}

func TestFormat_Golden(t *testing.T) {
	g := goldie.New(t)
	g.Assert(t, "saved_record", []byte(Format(fullRecord(t))))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	l := newTestLibrary(t)
	e := fullRecord(t)

	path, err := l.Save(e, "pythagoras")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(l.Dir(), "pythagoras.txt"), path)

	got, err := l.Load("pythagoras")
	require.NoError(t, err)
	assert.True(t, e.Equal(got), "round trip changed the record")

	// The full path and the suffixed name resolve to the same file.
	got, err = l.Load(path)
	require.NoError(t, err)
	assert.True(t, e.Equal(got))
	got, err = l.Load("pythagoras.txt")
	require.NoError(t, err)
	assert.True(t, e.Equal(got))
}

func TestSaveLoad_MinimalRecord(t *testing.T) {
	l := newTestLibrary(t)
	e, err := expression.New("a/b", `\frac{a}{b}`)
	require.NoError(t, err)

	_, err = l.Save(e, "frac")
	require.NoError(t, err)

	got, err := l.Load("frac")
	require.NoError(t, err)
	assert.True(t, e.Equal(got))
	_, hasLatency := got.Latency()
	assert.False(t, hasLatency)
	assert.Empty(t, got.Rendering())
}

func TestSave_DefaultName(t *testing.T) {
	l := newTestLibrary(t)
	e, err := expression.New(`integrate(x/2, x) \ 1`, "x")
	require.NoError(t, err)

	path, err := l.Save(e, "")
	require.NoError(t, err)
	assert.Equal(t, "expr_integrate(x_2,_x)____20260314_092653.txt", filepath.Base(path))
}

func TestLoad_NotFound(t *testing.T) {
	l := newTestLibrary(t)
	_, err := l.Load("missing")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestLoad_FallsBackToNormalizer(t *testing.T) {
	l := newTestLibrary(t)
	require.NoError(t, os.MkdirAll(l.Dir(), 0o755))

	tests := []struct {
		name       string
		content    string
		wantMathJS string
		wantLaTeX  string
	}{
		{
			name:       "no marker, plain lines",
			content:    "sqrt(x)\n\\sqrt{x}",
			wantMathJS: "sqrt(x)",
			wantLaTeX:  `\sqrt{x}`,
		},
		{
			name:       "corrupt JSON block",
			content:    "MathJS: a\n\nJSON Representation:\n{\"mathjs\": \"a\", \"latex\": ",
			wantMathJS: "JSON Representation:",
			wantLaTeX:  `{"mathjs": "a", "latex":`,
		},
		{
			name:       "marker inside a line is ignored",
			content:    "note: JSON Representation: here\n{\"mathjs\":\"m\",\"latex\":\"l\"}",
			wantMathJS: "m",
			wantLaTeX:  "l",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(filepath.Join(l.Dir(), "hand.txt"), []byte(tt.content), 0o644))
			got, err := l.Load("hand")
			require.NoError(t, err)
			assert.Equal(t, tt.wantMathJS, got.MathJS())
			assert.Equal(t, tt.wantLaTeX, got.LaTeX())
		})
	}
}

func TestLoad_LastMarkerWins(t *testing.T) {
	l := newTestLibrary(t)
	e := fullRecord(t)

	content := "JSON Representation:\n{\"mathjs\":\"old\",\"latex\":\"old\"}\n" + Format(e)
	require.NoError(t, os.MkdirAll(l.Dir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(l.Dir(), "twice.txt"), []byte(content), 0o644))

	got, err := l.Load("twice")
	require.NoError(t, err)
	assert.True(t, e.Equal(got))
}

func TestList(t *testing.T) {
	l := newTestLibrary(t)

	names, err := l.List()
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.DirExists(t, l.Dir())

	e := fullRecord(t)
	for _, n := range []string{"first", "second", "third"} {
		_, err := l.Save(e, n)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(l.Dir(), "notes.md"), []byte("x"), 0o644))

	base := time.Now()
	for i, n := range []string{"first", "second", "third"} {
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(filepath.Join(l.Dir(), n+".txt"), ts, ts))
	}

	names, err = l.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"third.txt", "second.txt", "first.txt"}, names)
}

func TestDirFromEnv(t *testing.T) {
	t.Setenv("MATHAGENT_EXPRESSIONS_DIR", "")
	assert.Equal(t, DefaultDir, DirFromEnv())

	t.Setenv("MATHAGENT_EXPRESSIONS_DIR", "/tmp/exprs")
	assert.Equal(t, "/tmp/exprs", DirFromEnv())
}
