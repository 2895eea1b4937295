package dwarfinfo

import (
	"debug/dwarf"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("not an object file"), 0o600))

	_, err := Open(filepath.Join(dir, "missing"), zerolog.Nop())
	assert.Error(t, err)

	_, err = Open(dir, zerolog.Nop())
	assert.Error(t, err)

	_, err = Open(text, zerolog.Nop())
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

// The test binary carries the Go toolchain's DWARF, which is enough to
// exercise the section-backed container.
func openSelf(t *testing.T) *Binary {
	t.Helper()
	exe, err := os.Executable()
	require.NoError(t, err)

	bin, err := Open(exe, zerolog.Nop())
	if err != nil {
		t.Skipf("test binary has no usable debug info: %v", err)
	}
	t.Cleanup(func() { _ = bin.Close() })
	return bin
}

func TestData_LookupAndEntry(t *testing.T) {
	bin := openSelf(t)
	assert.NotEqual(t, "", bin.Format)

	found := bin.Data.LookupType("uint8")
	if len(found) == 0 {
		t.Skip("no uint8 base type in test binary")
	}

	e := found[0]
	assert.Equal(t, dwarf.TagBaseType, e.Tag())
	assert.Equal(t, "uint8", e.Val(dwarf.AttrName))

	again := bin.Data.Entry(e.ID())
	require.NotNil(t, again)
	assert.Same(t, e, again)

	a := ParseAttributes(e)
	assert.Equal(t, uint64(1), a.ByteSize)
	assert.Equal(t, EncUnsigned, a.Encoding)

	assert.Nil(t, bin.Data.Entry(NoID))
}

func TestData_Walk(t *testing.T) {
	bin := openSelf(t)

	var visited int
	require.NoError(t, bin.Data.Walk(func(e Entry) bool {
		visited++
		return visited < 10
	}))
	assert.Equal(t, 10, visited)
}

func TestBinary_Hash(t *testing.T) {
	bin := openSelf(t)

	h1, err := bin.Hash()
	require.NoError(t, err)
	h2, err := bin.Hash()
	require.NoError(t, err)
	assert.Len(t, h1, 64)
	assert.Equal(t, h1, h2)
}
