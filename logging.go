package transcache

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// NewLogger returns a logfmt logger writing to w that drops records below
// the named level ("debug", "info", "warn" or "error"; default "info").
func NewLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, levelOption(lvl))
}

func levelOption(lvl string) level.Option {
	switch lvl {
	case "debug", "DEBUG":
		return level.AllowDebug()
	case "warn", "WARN", "warning", "WARNING":
		return level.AllowWarn()
	case "error", "ERROR":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
