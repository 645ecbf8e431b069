// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the level and the optional rotating log file.
type Options struct {
	Level string
	// File enables JSON logs rotated by size next to the console output.
	File string
}

// Setup installs the console logger on stderr, plus a rotating JSON file
// writer when opts.File is set. The returned closer flushes the file.
func Setup(opts Options) io.Closer {
	return setup(opts, os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))
}

func setup(opts Options, stderr io.Writer, colour bool) io.Closer {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(parseLevel(opts.Level))
	zerolog.DefaultContextLogger = &log.Logger

	console := zerolog.ConsoleWriter{Out: stderr, NoColor: !colour}

	if strings.TrimSpace(opts.File) == "" {
		log.Logger = log.Output(console)
		return nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	log.Logger = log.Output(zerolog.MultiLevelWriter(console, file))
	return file
}

func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
