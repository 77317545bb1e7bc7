package musiccleanup

import (
	"bytes"
	"github.com/musikpolice/musiccleanup/internal/merge"
	"github.com/musikpolice/musiccleanup/internal/output"
	"github.com/musikpolice/musiccleanup/internal/similarity"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

type fakePrompt struct {
	texts   []string
	answers []merge.Answer
	asked   []string
}

func (f *fakePrompt) AskText(request string) (string, bool) {
	f.asked = append(f.asked, request)
	if len(f.texts) == 0 {
		return "", true
	}
	next := f.texts[0]
	f.texts = f.texts[1:]
	return next, false
}

func (f *fakePrompt) AskYesNoAbort(request string) merge.Answer {
	f.asked = append(f.asked, request)
	if len(f.answers) == 0 {
		return merge.AnswerAbort
	}
	next := f.answers[0]
	f.answers = f.answers[1:]
	return next
}

const root = "/music"

func library(t *testing.T, paths ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(root, 0o755))
	for _, p := range paths {
		full := filepath.Join(root, p)
		if p[len(p)-1] == '/' {
			require.NoError(t, fsys.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, afero.WriteFile(fsys, full, []byte(p), 0o644))
	}
	return fsys
}

// testCleaner opens the library with output captured in the returned buffer.
func testCleaner(t *testing.T, fsys afero.Fs, scorer similarity.Scorer) (*cleaner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := makeCleaner(fsys, root, scorer, CreateConfig{Plain: true})
	c.printer = output.NewPrinterTo([]output.Class{output.Required, output.Error, output.Normal}, false, &out, &out)
	c.merger = merge.NewMerger(fsys, c.printer)
	return c, &out
}

func exists(t *testing.T, fsys afero.Fs, path string) bool {
	t.Helper()
	found, err := afero.Exists(fsys, filepath.Join(root, path))
	require.NoError(t, err)
	return found
}

func TestNewWithFs(t *testing.T) {
	t.Parallel()
	fsys := library(t, "Beatles/")

	handle, err := NewWithFs(fsys, root, CreateConfig{})
	require.NoError(t, err)
	assert.Equal(t, root, handle.Root())
	assert.Equal(t, "exact", handle.(*cleaner).scorer.String())

	handle, err = NewWithFs(fsys, root, CreateConfig{Matching: FuzzyMatching})
	require.NoError(t, err)
	assert.Equal(t, similarity.FuzzyPartialRatio{Threshold: similarity.DefaultThreshold}, handle.(*cleaner).scorer)

	_, err = NewWithFs(fsys, "/nowhere", CreateConfig{})
	var commandErr *CommandError
	assert.ErrorAs(t, err, &commandErr)

	_, err = NewWithFs(fsys, root+"/Beatles/../../music/Beatles/missing", CreateConfig{})
	assert.Error(t, err)

	_, err = NewWithFs(fsys, root, CreateConfig{Matching: "soundex"})
	assert.ErrorContains(t, err, "bad matching configuration")
}

func TestMakeCleanerVerbosity(t *testing.T) {
	quiet := makeCleaner(afero.NewMemMapFs(), root, similarity.ExactCanonical{}, CreateConfig{Verbosity: QuietMode})
	assert.True(t, quiet.printer.Enabled(output.Required))
	assert.False(t, quiet.printer.Enabled(output.Normal))

	normal := makeCleaner(afero.NewMemMapFs(), root, similarity.ExactCanonical{}, CreateConfig{})
	assert.True(t, normal.printer.Enabled(output.Normal))
	assert.False(t, normal.printer.Enabled(output.Verbose))

	verbose := makeCleaner(afero.NewMemMapFs(), root, similarity.ExactCanonical{}, CreateConfig{Verbosity: VerboseMode})
	assert.True(t, verbose.printer.Enabled(output.Normal))
	assert.True(t, verbose.printer.Enabled(output.Verbose))
}

func TestCombineSimilarTopLevel(t *testing.T) {
	t.Parallel()
	fsys := library(t, "Beatles/Help/01.mp3", "The Beatles/Abbey Road/01.mp3", "Rolling Stones/Aftermath/01.mp3")
	c, _ := testCleaner(t, fsys, similarity.ExactCanonical{})
	prompt := &fakePrompt{texts: []string{"", "2"}}

	outcome, err := c.CombineSimilar(prompt, false)

	require.NoError(t, err)
	assert.Equal(t, Continue, outcome)
	assert.True(t, exists(t, fsys, "The Beatles/Help/01.mp3"))
	assert.False(t, exists(t, fsys, "Beatles"))
	assert.True(t, exists(t, fsys, "Rolling Stones"))
}

func TestCombineSimilarRecursive(t *testing.T) {
	t.Parallel()
	fsys := library(t, "Beatles/Help/01.mp3", "Beatles/Help (1965)/02.mp3", "Oasis/Morning Glory/01.mp3")
	c, _ := testCleaner(t, fsys, similarity.ExactCanonical{})
	prompt := &fakePrompt{texts: []string{"", "1"}}

	outcome, err := c.CombineSimilar(prompt, true)

	require.NoError(t, err)
	assert.Equal(t, Continue, outcome)
	assert.True(t, exists(t, fsys, "Beatles/Help/01.mp3"))
	assert.True(t, exists(t, fsys, "Beatles/Help/02.mp3"))
	assert.False(t, exists(t, fsys, "Beatles/Help (1965)"))
	assert.Len(t, prompt.asked, 2, "only the album pair is similar")
}

func TestCombineSimilarAbort(t *testing.T) {
	t.Parallel()
	fsys := library(t, "Beatles/", "The Beatles/")
	c, _ := testCleaner(t, fsys, similarity.ExactCanonical{})

	outcome, err := c.CombineSimilar(&fakePrompt{texts: []string{"a"}}, false)

	require.NoError(t, err)
	assert.Equal(t, Abort, outcome)
	assert.True(t, exists(t, fsys, "Beatles"))
	assert.True(t, exists(t, fsys, "The Beatles"))
}

func TestCombineIgnoringPrefixes(t *testing.T) {
	t.Parallel()
	fsys := library(t, "Beatles/Help/01.mp3", "The Beatles/Abbey Road/01.mp3", "Tribe Called Quest/x.mp3",
		"A Tribe Called Quest/y.mp3", "The Who/", "Who/", "Queen/")
	c, out := testCleaner(t, fsys, similarity.ExactCanonical{})
	prompt := &fakePrompt{answers: []merge.Answer{merge.AnswerYes, merge.AnswerYes, merge.AnswerNo}}

	outcome, err := c.CombineIgnoringPrefixes(prompt)

	require.NoError(t, err)
	assert.Equal(t, Continue, outcome)
	assert.Equal(t, []string{
		"Would you like to combine Beatles with The Beatles?",
		"Would you like to combine Tribe Called Quest with A Tribe Called Quest?",
		"Would you like to combine Who with The Who?",
	}, prompt.asked)
	assert.True(t, exists(t, fsys, "The Beatles/Help/01.mp3"))
	assert.False(t, exists(t, fsys, "Beatles"))
	assert.True(t, exists(t, fsys, "A Tribe Called Quest/x.mp3"))
	assert.False(t, exists(t, fsys, "Tribe Called Quest"))
	assert.True(t, exists(t, fsys, "Who"))
	assert.Contains(t, out.String(), "Done")
}

func TestCombineIgnoringPrefixesAbort(t *testing.T) {
	t.Parallel()
	fsys := library(t, "Beatles/", "The Beatles/", "Who/", "The Who/")
	c, _ := testCleaner(t, fsys, similarity.ExactCanonical{})
	prompt := &fakePrompt{answers: []merge.Answer{merge.AnswerAbort}}

	outcome, err := c.CombineIgnoringPrefixes(prompt)

	require.NoError(t, err)
	assert.Equal(t, Abort, outcome)
	assert.Len(t, prompt.asked, 1)
	assert.True(t, exists(t, fsys, "Beatles"))
	assert.True(t, exists(t, fsys, "Who"))
}

// failingRemoveFs refuses to remove one particular path.
type failingRemoveFs struct {
	afero.Fs
	path string
}

func (f failingRemoveFs) Remove(name string) error {
	if filepath.Clean(name) == f.path {
		return os.ErrPermission
	}
	return f.Fs.Remove(name)
}

func TestCombineIgnoringPrefixesWarnsAboutHalfMerged(t *testing.T) {
	t.Parallel()
	fsys := failingRemoveFs{Fs: library(t, "Beatles/Help/01.mp3", "The Beatles/"), path: "/music/Beatles"}
	c, out := testCleaner(t, fsys, similarity.ExactCanonical{})

	outcome, err := c.CombineIgnoringPrefixes(&fakePrompt{answers: []merge.Answer{merge.AnswerYes}})

	require.NoError(t, err)
	assert.Equal(t, Continue, outcome)
	assert.True(t, exists(t, fsys, "The Beatles/Help/01.mp3"))
	assert.Contains(t, out.String(), "WARNING: /music/Beatles is left half-merged")
}
