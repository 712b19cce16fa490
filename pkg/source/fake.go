package source

import (
	"vizex/pkg/common"
)

// Fake is an in-memory Source for tests. Each call returns a copy of the
// configured entries, or the configured error.
type Fake struct {
	Partitions []common.Partition
	Dirs       map[string][]common.DirEntry
	Batteries  []common.Battery
	Cores      []common.CPUCore

	DiskErr    error
	BatteryErr error
	CPUErr     error
}

var _ Source = (*Fake)(nil)

func (f *Fake) Disks(every bool) ([]common.Partition, error) {
	if f.DiskErr != nil {
		return nil, f.DiskErr
	}
	var out []common.Partition
	for _, p := range f.Partitions {
		if !every && p.Pseudo() {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *Fake) Directory(path string) ([]common.DirEntry, error) {
	entries, ok := f.Dirs[path]
	if !ok {
		return nil, unavailable("directory", &NotFoundError{Path: path})
	}
	return append([]common.DirEntry(nil), entries...), nil
}

func (f *Fake) Battery() ([]common.Battery, error) {
	if f.BatteryErr != nil {
		return nil, f.BatteryErr
	}
	if len(f.Batteries) == 0 {
		return nil, unavailable("battery", common.ErrNoBattery)
	}
	return append([]common.Battery(nil), f.Batteries...), nil
}

func (f *Fake) CPUCores() ([]common.CPUCore, error) {
	if f.CPUErr != nil {
		return nil, f.CPUErr
	}
	return append([]common.CPUCore(nil), f.Cores...), nil
}

type NotFoundError struct{ Path string }

func (e *NotFoundError) Error() string { return "directory not found: " + e.Path }
