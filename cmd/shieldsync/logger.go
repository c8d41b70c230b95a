package main

import (
	"os"

	"github.com/rs/zerolog"
)

// newLogger builds a console-writer zerolog.Logger at the given level,
// adapted from the teacher binary's level-name switch (cmd/auctiond/logger.go)
// but producing a zerolog.Logger instead of a hand-rolled logger type, since
// the scanner and the rest of this module's ambient logging already standardize
// on zerolog (pkg/scanner).
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Str("component", "shieldsync").
		Logger()
}
