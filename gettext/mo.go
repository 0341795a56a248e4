// Package gettext reads the translation files the adapters cache: binary
// gettext catalogs (.mo) and JSON script translation files.
package gettext

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wearerequired/transcache"
)

const (
	moMagic      = 0x950412de
	moHeaderSize = 28
)

var (
	errBadMagic    = errors.New("not a gettext catalog")
	errBadRevision = errors.New("unsupported catalog revision")
	errTruncated   = errors.New("catalog is truncated")
)

// ParseMO decodes a binary gettext catalog.
func ParseMO(r io.Reader) (*transcache.Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeMO(data)
}

// ParseMOFile decodes the binary gettext catalog at path.
func ParseMOFile(path string) (*transcache.Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 - catalog paths come from the host
	if err != nil {
		return nil, &transcache.CatalogError{Message: "reading file", Cause: err, Path: path}
	}
	catalog, err := decodeMO(data)
	if err != nil {
		return nil, &transcache.CatalogError{Message: "decoding catalog", Cause: err, Path: path}
	}
	return catalog, nil
}

func decodeMO(data []byte) (*transcache.Catalog, error) {
	if len(data) < moHeaderSize {
		return nil, errTruncated
	}

	var order binary.ByteOrder
	switch {
	case binary.LittleEndian.Uint32(data) == moMagic:
		order = binary.LittleEndian
	case binary.BigEndian.Uint32(data) == moMagic:
		order = binary.BigEndian
	default:
		return nil, errBadMagic
	}

	// Only the major revision matters for the layout.
	if major := order.Uint32(data[4:]) >> 16; major > 1 {
		return nil, fmt.Errorf("%w: %d", errBadRevision, major)
	}

	count := order.Uint32(data[8:])
	originals := order.Uint32(data[12:])
	translations := order.Uint32(data[16:])

	catalog := transcache.NewCatalog()
	for i := uint32(0); i < count; i++ {
		original, err := stringAt(data, order, originals, i)
		if err != nil {
			return nil, err
		}
		translation, err := stringAt(data, order, translations, i)
		if err != nil {
			return nil, err
		}

		if len(original) == 0 {
			parseHeaders(catalog.Headers, translation)
			continue
		}

		// "context\x04singular\x00plural": the plural msgid is not part of the key.
		key, _, _ := bytes.Cut(original, []byte{0})
		forms := strings.Split(string(translation), "\x00")
		catalog.Entries[string(key)] = forms
	}

	return catalog, nil
}

// stringAt returns string i of the descriptor table starting at table.
func stringAt(data []byte, order binary.ByteOrder, table, i uint32) ([]byte, error) {
	pos := uint64(table) + uint64(i)*8
	if pos+8 > uint64(len(data)) {
		return nil, errTruncated
	}
	length := uint64(order.Uint32(data[pos:]))
	offset := uint64(order.Uint32(data[pos+4:]))
	if offset+length > uint64(len(data)) {
		return nil, errTruncated
	}
	return data[offset : offset+length], nil
}

func parseHeaders(headers map[string]string, block []byte) {
	for _, line := range strings.Split(string(block), "\n") {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
}
