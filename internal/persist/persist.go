// Package persist handles battery-backed cartridge RAM snapshots: naming a
// stable save file from the ROM's content hash (so renaming or moving the
// ROM file doesn't orphan its save) and writing/reading the raw SRAM bytes,
// optionally brotli-compressed. None of this is touched by the core; it is
// purely a host-side concern layered on top of (*gameboy.GameBoy).SRAM().
package persist

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
)

// KeyFor derives a stable save-file stem from the ROM's content, so the
// same cartridge always resolves to the same save regardless of the path
// it was loaded from.
func KeyFor(rom []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(rom))
}

// Save writes sram verbatim to path: no header, no framing, matching
// spec.md §6's documented SRAM contract.
func Save(path string, sram []byte) error {
	return os.WriteFile(path, sram, 0o644)
}

// Load reads a previously-saved SRAM blob back, for gameboy.WithSRAM.
func Load(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// SaveCompressed brotli-compresses sram before writing, for front-ends
// that want smaller save files on disk.
func SaveCompressed(path string, sram []byte) error {
	encoded, err := cbrotli.Encode(sram, cbrotli.WriterOptions{Quality: 9})
	if err != nil {
		return fmt.Errorf("persist: brotli encode: %w", err)
	}
	return os.WriteFile(path, encoded, 0o644)
}

// LoadCompressed reads and brotli-decompresses a save written by
// SaveCompressed.
func LoadCompressed(path string) ([]byte, error) {
	encoded, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, err := cbrotli.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("persist: brotli decode: %w", err)
	}
	return decoded, nil
}
