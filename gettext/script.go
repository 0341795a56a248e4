package gettext

import (
	"context"
	"encoding/json"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/wearerequired/transcache"
)

// JSONScriptLoader reads JSON script translation files (Jed format) as
// produced by `wp i18n make-json`.
type JSONScriptLoader struct {
	logger log.Logger
}

// NewJSONScriptLoader creates a loader. A nil logger discards output.
func NewJSONScriptLoader(logger log.Logger) *JSONScriptLoader {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &JSONScriptLoader{logger: logger}
}

// LoadScriptTranslations returns the raw contents of file. Handle and
// domain only identify the request; the file already holds the
// translations of exactly one script. A missing file, an unreadable file
// or a file that is not valid JSON yields false.
func (l *JSONScriptLoader) LoadScriptTranslations(_ context.Context, file, handle, domain string) (string, bool) {
	if file == "" || !readable(file) {
		return "", false
	}

	data, err := os.ReadFile(file) // #nosec G304 - translation paths come from the host
	if err != nil {
		level.Warn(l.logger).Log("msg", "reading script translations", "file", file, "err", err)
		return "", false
	}
	if !json.Valid(data) {
		level.Warn(l.logger).Log("msg", "script translations are not valid JSON", "file", file, "handle", handle, "domain", domain)
		return "", false
	}
	return string(data), true
}

// Verify JSONScriptLoader implements ScriptLoader
var _ transcache.ScriptLoader = (*JSONScriptLoader)(nil)
