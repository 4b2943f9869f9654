package obs

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger builds a charmbracelet logger. Unknown levels fall back to info,
// unknown formats to text.
func NewLogger(level, format string, w io.Writer) *log.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}

	formatter := log.TextFormatter
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
		Formatter:       formatter,
	})
}

// SetDefault installs logger as the process-wide logger used by the
// package-level log functions.
func SetDefault(logger *log.Logger) {
	log.SetDefault(logger)
}
