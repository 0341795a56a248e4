package gettext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONScriptLoader(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "myplugin-de_DE-editor.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"locale_data":{"messages":{"":{"domain":"messages"},"Save":["Speichern"]}}}`), 0o644))
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"locale_data":`), 0o644))

	l := NewJSONScriptLoader(nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		file  string
		found bool
	}{
		{name: "valid file", file: valid, found: true},
		{name: "no file", file: "", found: false},
		{name: "missing file", file: filepath.Join(dir, "missing.json"), found: false},
		{name: "invalid json", file: broken, found: false},
		{name: "directory", file: dir, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, found := l.LoadScriptTranslations(ctx, tt.file, "editor", "myplugin")
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Contains(t, payload, "Speichern")
			} else {
				assert.Empty(t, payload)
			}
		})
	}
}
