package logging

import (
	"bytes"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

//global logger state is shared, so these tests do not run in parallel

func TestInitWritesFileAndExtraWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", LogFile)
	var extra bytes.Buffer

	closer := Init(path, false, &extra)
	log.Info().Str("root", "/music").Msg("library opened")
	log.Debug().Msg("hidden below info")
	require.NoError(t, closer.Close())
	t.Cleanup(Disable)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"library opened"`)
	assert.Contains(t, string(data), `"root":"/music"`)
	assert.NotContains(t, string(data), "hidden below info")
	assert.Equal(t, string(data), extra.String())
}

func TestInitDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), LogFile)
	var extra bytes.Buffer

	closer := Init(path, true, &extra)
	log.Debug().Msg("session state")
	require.NoError(t, closer.Close())
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		Disable()
	})

	assert.Contains(t, extra.String(), `"level":"debug"`)
	assert.Contains(t, extra.String(), `"caller":`)
}
