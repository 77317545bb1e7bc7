package logging

import (
	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
	"io"
	"path/filepath"
)

const LogFile = "musiccleanup.log"

// DefaultPath places the log below the XDG state directory, creating parent directories as needed.
func DefaultPath() (string, error) {
	return xdg.StateFile(filepath.Join("musiccleanup", LogFile))
}

// Init routes the global logger to a rotated file at path plus any extra writers.
// The returned closer releases the log file.
func Init(path string, debug bool, writers ...io.Writer) io.Closer {
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1,
		MaxBackups: 2,
	}
	logWriters := append([]io.Writer{file}, writers...)

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(io.MultiWriter(logWriters...)).
		With().Timestamp().Caller().Logger()
	return file
}

// Disable silences the global logger, e.g. when no log location is available.
func Disable() {
	log.Logger = zerolog.Nop()
}
