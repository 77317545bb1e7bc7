package merge

import (
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

// fakePrompt replays scripted answers. Running out of answers counts as an abort.
type fakePrompt struct {
	texts   []string
	answers []Answer
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

func (f *fakePrompt) AskYesNoAbort(request string) Answer {
	f.asked = append(f.asked, request)
	if len(f.answers) == 0 {
		return AnswerAbort
	}
	next := f.answers[0]
	f.answers = f.answers[1:]
	return next
}

// library builds a filesystem from relative paths below /music; names ending in "/" are directories.
func library(t *testing.T, paths ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/music", 0o755))
	for _, p := range paths {
		full := filepath.Join("/music", p)
		if p[len(p)-1] == '/' {
			require.NoError(t, fsys.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, afero.WriteFile(fsys, full, []byte(p), 0o644))
	}
	return fsys
}

func exists(t *testing.T, fsys afero.Fs, path string) bool {
	t.Helper()
	found, err := afero.Exists(fsys, path)
	require.NoError(t, err)
	return found
}

func content(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}
