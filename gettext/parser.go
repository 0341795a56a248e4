package gettext

import (
	"os"

	"github.com/wearerequired/transcache"
)

// MOParser reads .mo files from the local file system.
type MOParser struct{}

// NewMOParser creates a parser for binary gettext catalogs.
func NewMOParser() *MOParser {
	return &MOParser{}
}

// Readable reports whether path is a regular file that can be opened.
func (p *MOParser) Readable(path string) bool {
	return readable(path)
}

// ParseFile decodes the catalog at path.
func (p *MOParser) ParseFile(path string) (*transcache.Catalog, error) {
	return ParseMOFile(path)
}

func readable(path string) bool {
	if path == "" {
		return false
	}
	f, err := os.Open(path) // #nosec G304 - catalog paths come from the host
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && info.Mode().IsRegular()
}

// Verify MOParser implements CatalogParser
var _ transcache.CatalogParser = (*MOParser)(nil)
