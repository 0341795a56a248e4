package gettext

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type moPair struct {
	original    string
	translation string
}

// encodeMO builds a .mo file with the given byte order. gettext sorts
// originals but readers must not rely on it, so pairs are kept as given.
func encodeMO(order binary.ByteOrder, pairs []moPair) []byte {
	n := uint32(len(pairs))
	originals := uint32(moHeaderSize)
	translations := originals + n*8
	strs := translations + n*8

	var table, blob bytes.Buffer
	descriptors := make([]uint32, 0, n*4)
	offset := strs
	for _, p := range pairs {
		descriptors = append(descriptors, uint32(len(p.original)), offset)
		blob.WriteString(p.original)
		blob.WriteByte(0)
		offset += uint32(len(p.original)) + 1
	}
	for _, p := range pairs {
		descriptors = append(descriptors, uint32(len(p.translation)), offset)
		blob.WriteString(p.translation)
		blob.WriteByte(0)
		offset += uint32(len(p.translation)) + 1
	}

	header := []uint32{moMagic, 0, n, originals, translations, 0, strs}
	for _, v := range append(header, descriptors...) {
		_ = binary.Write(&table, order, v)
	}
	table.Write(blob.Bytes())
	return table.Bytes()
}

func writeMO(t *testing.T, dir, name string, pairs []moPair) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, encodeMO(binary.LittleEndian, pairs), 0o644))
	return path
}
