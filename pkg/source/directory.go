package source

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"vizex/pkg/common"
)

func (System) Directory(path string) ([]common.DirEntry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, unavailable("directory", err)
	}
	items, err := os.ReadDir(abs)
	if err != nil {
		return nil, unavailable("directory", fmt.Errorf("reading %s: %w", abs, err))
	}

	entries := make([]common.DirEntry, 0, len(items))
	for _, item := range items {
		info, err := item.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			slog.Debug("Skipping entry", "name", item.Name(), "error", err)
			continue
		}

		e := common.DirEntry{
			Name:     item.Name(),
			Path:     filepath.Join(abs, item.Name()),
			Modified: info.ModTime(),
		}
		switch {
		case item.Type()&fs.ModeSymlink != 0:
			e.Kind = common.KindSymlink
			e.Size = uint64(info.Size())
		case item.IsDir():
			e.Kind = common.KindDir
			e.Size = dirSize(e.Path)
		default:
			e.Kind = common.KindFile
			e.Size = uint64(info.Size())
		}
		entries = append(entries, e)
	}

	slog.Debug("Sampled directory", "path", abs, "count", len(entries))
	return entries, nil
}

// dirSize returns the total size of the regular files below path.
// Unreadable subtrees are skipped.
func dirSize(path string) uint64 {
	var size uint64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				size += uint64(info.Size())
			}
		}
		return nil
	})
	return size
}
