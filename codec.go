package transcache

import (
	"bytes"
	"encoding/json"
)

// negativeMarker is the cached form of "confirmed absent". Positive values
// are JSON strings or objects, so the bare literal never collides.
var negativeMarker = []byte("false")

func isNegative(b []byte) bool {
	return bytes.Equal(bytes.TrimSpace(b), negativeMarker)
}

func encodeScript(payload string) []byte {
	// marshalling a string cannot fail
	b, _ := json.Marshal(payload)
	return b
}

func decodeScript(b []byte) (string, error) {
	var payload string
	err := json.Unmarshal(b, &payload)
	return payload, err
}

func encodeCatalog(c *Catalog) ([]byte, error) {
	return json.Marshal(c)
}

func decodeCatalog(b []byte) (*Catalog, error) {
	c := NewCatalog()
	if err := json.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}
