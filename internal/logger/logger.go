package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init configures the default logger. Caller reporting is only enabled at
// debug level.
func Init(level string, noColor bool) error {
	return InitWriter(os.Stderr, level, noColor)
}

// InitWriter is Init with an explicit destination
func InitWriter(w io.Writer, level string, noColor bool) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	l := log.NewWithOptions(w,
		log.Options{
			ReportCaller:    lvl == log.DebugLevel,
			ReportTimestamp: false,
			TimeFormat:      time.RFC3339,
			Prefix:          "IPPVM",
			Level:           lvl,
		})

	l.SetColorProfile(termenv.ANSI256)
	if noColor {
		l.SetColorProfile(termenv.Ascii)
	}

	log.SetDefault(l)
	return nil
}
