package merge

import (
	"github.com/musikpolice/musiccleanup/internal/output"
	"github.com/musikpolice/musiccleanup/internal/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestSessionMergesBeatles(t *testing.T) {
	t.Parallel()
	fsys := library(t, "Beatles/Help/01.mp3", "The Beatles/Abbey Road/01.mp3", "Rolling Stones/Aftermath/01.mp3")
	prompt := &fakePrompt{texts: []string{"", "2"}}
	session := NewSession(fsys, similarity.ExactCanonical{}, prompt, output.Discard())

	outcome, err := session.CombineLevel("/music")

	require.NoError(t, err)
	assert.Equal(t, Continue, outcome)
	assert.Equal(t, Done, session.State())
	assert.True(t, exists(t, fsys, "/music/The Beatles/Help/01.mp3"))
	assert.True(t, exists(t, fsys, "/music/The Beatles/Abbey Road/01.mp3"))
	assert.False(t, exists(t, fsys, "/music/Beatles"))
	assert.True(t, exists(t, fsys, "/music/Rolling Stones"))
	assert.Equal(t, Stats{Groups: 1, Merged: 1}, session.Stats())
	assert.Equal(t, []State{Scanning, PresentingGroup, AwaitingInput, Merging, ScanningNextGroup, Done}, session.Trace())
}

func TestSessionAbortAtFirstOfThreeGroups(t *testing.T) {
	t.Parallel()
	fsys := library(t, "ABBA/", "Abba!/", "Beatles/", "The Beatles/", "Queen/", "Queen (UK)/")
	prompt := &fakePrompt{texts: []string{"a", "", "1", "", "1"}}
	session := NewSession(fsys, similarity.ExactCanonical{}, prompt, output.Discard())

	outcome, err := session.CombineLevel("/music")

	require.NoError(t, err)
	assert.Equal(t, Abort, outcome)
	assert.Equal(t, Aborted, session.State())
	assert.Len(t, prompt.asked, 1, "remaining groups must not be presented")
	assert.Equal(t, 3, session.Stats().Groups)
	assert.Zero(t, session.Stats().Merged)
	for _, dir := range []string{"ABBA", "Abba!", "Beatles", "The Beatles", "Queen", "Queen (UK)"} {
		assert.True(t, exists(t, fsys, "/music/"+dir), dir)
	}
}

func TestSessionSkipProceedsToNextGroup(t *testing.T) {
	t.Parallel()
	fsys := library(t, "ABBA/", "Abba!/x.mp3", "Beatles/", "The Beatles/y.mp3")
	prompt := &fakePrompt{texts: []string{"s", "", "1"}}
	session := NewSession(fsys, similarity.ExactCanonical{}, prompt, output.Discard())

	outcome, err := session.CombineLevel("/music")

	require.NoError(t, err)
	assert.Equal(t, Continue, outcome)
	assert.True(t, exists(t, fsys, "/music/Abba!"))
	assert.True(t, exists(t, fsys, "/music/Beatles/y.mp3"))
	assert.Equal(t, Stats{Groups: 2, Skipped: 1, Merged: 1}, session.Stats())
}

func TestSessionFreeformDestination(t *testing.T) {
	t.Parallel()
	fsys := library(t, "Beatles/a.mp3", "The Beatles/b.mp3")
	prompt := &fakePrompt{texts: []string{"", "Merged Artist"}}
	session := NewSession(fsys, similarity.ExactCanonical{}, prompt, output.Discard())

	_, err := session.CombineLevel("/music")

	require.NoError(t, err)
	assert.True(t, exists(t, fsys, "/music/Merged Artist/a.mp3"))
	assert.True(t, exists(t, fsys, "/music/Merged Artist/b.mp3"))
	assert.False(t, exists(t, fsys, "/music/Beatles"))
	assert.False(t, exists(t, fsys, "/music/The Beatles"))
	assert.Equal(t, 1, session.Stats().Created)
}

func TestSessionCombineTree(t *testing.T) {
	t.Parallel()
	fsys := library(t,
		"Beatles/Abbey Road/01.mp3",
		"Beatles/Abbey Road (1969)/02.mp3",
		"The Beatles/Help/01.mp3",
	)
	//first the album level below Beatles, then the artist level
	prompt := &fakePrompt{texts: []string{"", "1", "", "1"}}
	session := NewSession(fsys, similarity.ExactCanonical{}, prompt, output.Discard())

	outcome, err := session.CombineTree("/music")

	require.NoError(t, err)
	assert.Equal(t, Continue, outcome)
	assert.True(t, exists(t, fsys, "/music/Beatles/Abbey Road/01.mp3"))
	assert.True(t, exists(t, fsys, "/music/Beatles/Abbey Road/02.mp3"))
	assert.True(t, exists(t, fsys, "/music/Beatles/Help/01.mp3"))
	assert.False(t, exists(t, fsys, "/music/The Beatles"))
	assert.Equal(t, Stats{Groups: 2, Merged: 2}, session.Stats())
	assert.Empty(t, prompt.texts)
}

func TestSessionFuzzyStrategy(t *testing.T) {
	t.Parallel()
	fsys := library(t, "Radiohead/a.mp3", "Radiohed/b.mp3")
	prompt := &fakePrompt{texts: []string{"", "1"}}
	session := NewSession(fsys, similarity.FuzzyPartialRatio{Threshold: 80}, prompt, output.Discard())

	_, err := session.CombineLevel("/music")

	require.NoError(t, err)
	assert.True(t, exists(t, fsys, "/music/Radiohead/b.mp3"))
	assert.False(t, exists(t, fsys, "/music/Radiohed"))
}

func TestSessionMissingLevel(t *testing.T) {
	t.Parallel()
	session := NewSession(library(t), similarity.ExactCanonical{}, &fakePrompt{}, output.Discard())
	_, err := session.CombineLevel("/music/none")
	require.Error(t, err)
}
