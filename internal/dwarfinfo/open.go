package dwarfinfo

import (
	"crypto/sha256"
	"debug/dwarf"
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/coral-mesh/dtypes/internal/safe"
	"github.com/coral-mesh/dtypes/internal/target"
)

var (
	// ErrUnsupportedFormat is returned for files that are not ELF, Mach-O or PE.
	ErrUnsupportedFormat = errors.New("unsupported object file format")
	// ErrNoDWARF is returned for binaries without debug information.
	ErrNoDWARF = errors.New("binary has no DWARF debug info")
)

// Binary is an opened object file together with its debug information.
type Binary struct {
	Path   string
	Format string
	Target target.Target
	Data   *Data

	closer io.Closer
}

// Open opens the object file at path, detects its format and target, and
// loads its DWARF sections.
func Open(path string, logger zerolog.Logger) (*Binary, error) {
	if _, err := safe.Stat(path, &safe.FileOptions{AllowSymlinks: true}); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	b := &Binary{Path: path}

	var (
		dwarfData *dwarf.Data
		dwarfErr  error
	)

	if f, err := elf.Open(path); err == nil {
		b.Format, b.Target, b.closer = "elf", target.FromELF(f), f
		dwarfData, dwarfErr = f.DWARF()
	} else if f, err := macho.Open(path); err == nil {
		b.Format, b.Target, b.closer = "macho", target.FromMachO(f), f
		dwarfData, dwarfErr = f.DWARF()
	} else if f, err := pe.Open(path); err == nil {
		b.Format, b.Target, b.closer = "pe", target.FromPE(f), f
		dwarfData, dwarfErr = f.DWARF()
	} else {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	if dwarfErr != nil {
		_ = b.closer.Close()
		return nil, fmt.Errorf("%s: %w: %v", path, ErrNoDWARF, dwarfErr)
	}

	b.Data = NewData(dwarfData, logger)
	logger.Debug().
		Str("binary", path).
		Str("format", b.Format).
		Str("target", b.Target.String()).
		Msg("Opened binary")
	return b, nil
}

// Close releases the underlying file.
func (b *Binary) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// Hash returns the hex SHA-256 of the binary's contents.
func (b *Binary) Hash() (string, error) {
	f, err := safe.Open(b.Path, &safe.FileOptions{AllowSymlinks: true})
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
