// Package source samples the local machine: mounted partitions, directory
// listings, batteries and CPU core frequencies.
package source

import (
	"vizex/pkg/common"
)

// Source returns freshly sampled entries on every call. Failures are
// reported as *common.SourceError naming the source.
type Source interface {
	// Disks returns mounted partitions. Pseudo filesystems are included
	// only when every is set.
	Disks(every bool) ([]common.Partition, error)
	// Directory returns the items directly inside path.
	Directory(path string) ([]common.DirEntry, error)
	// Battery returns every battery, or an error wrapping
	// common.ErrNoBattery when there is none.
	Battery() ([]common.Battery, error)
	// CPUCores returns the frequency of every logical CPU.
	CPUCores() ([]common.CPUCore, error)
}

// System is the Source backed by the running operating system.
type System struct{}

var _ Source = System{}

// NewSystem returns the OS-backed Source.
func NewSystem() System {
	return System{}
}

func unavailable(source string, err error) error {
	return &common.SourceError{Source: source, Err: err}
}
