// Package logz holds the process-wide console logger used by the commands.
package logz

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
	With().
	Timestamp().
	Logger()

// SetLevel parses level ("trace", "debug", "info", ...) and applies it to every
// zerolog logger in the process, including ones derived from Logger before the call.
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
