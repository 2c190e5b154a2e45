// Package romfile loads a Game Boy ROM image from a plain .gb/.gbc file or
// from a .zip/.7z archive, picking the first entry that looks like a ROM.
// This mirrors the archive-aware loading a ROM-collection front-end needs
// before it ever hands bytes to gameboy.New.
package romfile

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrNoROMEntry is returned when an archive contains no file with a
// recognised ROM extension.
var ErrNoROMEntry = errors.New("romfile: archive contains no .gb/.gbc/.bin entry")

// romExtensions lists the file extensions Load treats as ROM images,
// whether found directly or inside an archive.
var romExtensions = map[string]bool{
	".gb":  true,
	".gbc": true,
	".bin": true,
}

// Load reads a ROM image from path. If path's extension is .zip or .7z,
// the first archive entry with a recognised ROM extension is extracted;
// otherwise path is read directly.
func Load(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return loadZip(path)
	case ".7z":
		return loadSevenZip(path)
	default:
		return os.ReadFile(path)
	}
}

func loadZip(path string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("romfile: open zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !romExtensions[strings.ToLower(filepath.Ext(f.Name))] {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("romfile: open zip entry %q: %w", f.Name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, ErrNoROMEntry
}

func loadSevenZip(path string) ([]byte, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("romfile: open 7z: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !romExtensions[strings.ToLower(filepath.Ext(f.Name))] {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("romfile: open 7z entry %q: %w", f.Name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, ErrNoROMEntry
}
