// Package common provides shared types used across vizex.
// It includes the sampled entry kinds (partitions, directory items,
// batteries, CPU cores), the report subject variant and the error taxonomy
// used for communication between components.
package common

import (
	"fmt"
	"strings"
	"time"
)

// Field is one named raw value of an entry, in export column order.
type Field struct {
	Name  string
	Value any
}

// Entry is one reportable unit. Entries are created fresh by the stat
// source on every invocation and never modified afterwards.
type Entry interface {
	// Identity is the mount point for partitions and the path for
	// directory items.
	Identity() string
	// Fields returns the raw, unstyled values in column order.
	Fields() []Field
}

// Partition is a mounted filesystem and its usage.
type Partition struct {
	Device     string `json:"device"`
	MountPoint string `json:"mountpoint"`
	FSType     string `json:"fstype"`
	Total      uint64 `json:"total"`
	Used       uint64 `json:"used"`
	Free       uint64 `json:"free"`
}

// PartitionColumns are the export columns of a Partition.
var PartitionColumns = []string{"device", "mountpoint", "fstype", "total", "used", "free", "percent"}

func (p Partition) Identity() string { return p.MountPoint }

// Percent returns the used share of the partition in [0, 100].
func (p Partition) Percent() float64 { return Percent(float64(p.Used), float64(p.Total)) }

func (p Partition) Fields() []Field {
	return []Field{
		{"device", p.Device},
		{"mountpoint", p.MountPoint},
		{"fstype", p.FSType},
		{"total", p.Total},
		{"used", p.Used},
		{"free", p.Free},
		{"percent", roundPercent(p.Percent())},
	}
}

func (p Partition) SortName() string        { return p.MountPoint }
func (p Partition) SortSize() uint64        { return p.Total }
func (p Partition) SortModified() time.Time { return time.Time{} }

// SortType groups partitions by filesystem type.
func (p Partition) SortType() (int, string) { return 0, p.FSType }

// Hidden is always false: partitions are only filtered by explicit
// include/exclude lists.
func (p Partition) Hidden() bool { return false }

// Pseudo reports whether the partition is a virtual or loop filesystem
// that is normally left out of the disk report.
func (p Partition) Pseudo() bool {
	if pseudoFS[p.FSType] {
		return true
	}
	return strings.HasPrefix(p.MountPoint, "/snap/") || strings.HasPrefix(p.Device, "/dev/loop")
}

var pseudoFS = map[string]bool{
	"autofs":      true,
	"binfmt_misc": true,
	"cgroup":      true,
	"cgroup2":     true,
	"configfs":    true,
	"debugfs":     true,
	"devfs":       true,
	"devpts":      true,
	"devtmpfs":    true,
	"fusectl":     true,
	"hugetlbfs":   true,
	"mqueue":      true,
	"nsfs":        true,
	"overlay":     true,
	"proc":        true,
	"pstore":      true,
	"securityfs":  true,
	"squashfs":    true,
	"sysfs":       true,
	"tmpfs":       true,
	"tracefs":     true,
}

// Kind is the type tag of a directory item.
type Kind string

const (
	// KindDir is a directory.
	KindDir Kind = "dir"
	// KindFile is a regular file (or any non-directory, non-link item).
	KindFile Kind = "file"
	// KindSymlink is a symbolic link; it is never followed.
	KindSymlink Kind = "symlink"
)

// rank orders kinds for the type sort key: directories, files, symlinks.
func (k Kind) rank() int {
	switch k {
	case KindDir:
		return 0
	case KindFile:
		return 1
	case KindSymlink:
		return 2
	default:
		return 3
	}
}

// DirEntry is one item of a directory listing.
type DirEntry struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Kind     Kind      `json:"type"`
	Size     uint64    `json:"size"`
	Modified time.Time `json:"modified"`
}

// DirEntryColumns are the export columns of a DirEntry.
var DirEntryColumns = []string{"name", "path", "type", "size", "modified"}

func (d DirEntry) Identity() string { return d.Path }

func (d DirEntry) Fields() []Field {
	return []Field{
		{"name", d.Name},
		{"path", d.Path},
		{"type", string(d.Kind)},
		{"size", d.Size},
		{"modified", d.Modified.UTC().Format(time.RFC3339Nano)},
	}
}

func (d DirEntry) SortName() string        { return d.Name }
func (d DirEntry) SortSize() uint64        { return d.Size }
func (d DirEntry) SortModified() time.Time { return d.Modified }
func (d DirEntry) SortType() (int, string) { return d.Kind.rank(), "" }
func (d DirEntry) Hidden() bool            { return strings.HasPrefix(d.Name, ".") }

// Battery is the charge state of one battery. SecondsLeft is the estimated
// remaining runtime, -1 when unknown.
type Battery struct {
	Index        int     `json:"index"`
	Percent      float64 `json:"percent"`
	State        string  `json:"state"`
	PowerPlugged bool    `json:"plugged"`
	SecondsLeft  int64   `json:"seconds_left"`
}

// BatteryColumns are the export columns of a Battery.
var BatteryColumns = []string{"index", "percent", "state", "plugged", "seconds_left"}

func (b Battery) Identity() string { return fmt.Sprintf("battery%d", b.Index) }

func (b Battery) Fields() []Field {
	return []Field{
		{"index", b.Index},
		{"percent", roundPercent(b.Percent)},
		{"state", b.State},
		{"plugged", b.PowerPlugged},
		{"seconds_left", b.SecondsLeft},
	}
}

// CPUCore is the frequency of one logical CPU.
type CPUCore struct {
	Index      int     `json:"core"`
	CurrentMHz float64 `json:"current_mhz"`
	MaxMHz     float64 `json:"max_mhz"`
}

// CPUCoreColumns are the export columns of a CPUCore.
var CPUCoreColumns = []string{"core", "current_mhz", "max_mhz", "percent"}

func (c CPUCore) Identity() string { return fmt.Sprintf("cpu%d", c.Index) }

// Percent returns the current frequency as a share of the maximum.
func (c CPUCore) Percent() float64 { return Percent(c.CurrentMHz, c.MaxMHz) }

func (c CPUCore) Fields() []Field {
	return []Field{
		{"core", c.Index},
		{"current_mhz", c.CurrentMHz},
		{"max_mhz", c.MaxMHz},
		{"percent", roundPercent(c.Percent())},
	}
}

// Percent returns used/total*100 clamped to [0, 100]. A non-positive total
// yields 0.
func Percent(used, total float64) float64 {
	if total <= 0 || used <= 0 {
		return 0
	}
	p := used / total * 100
	if p > 100 {
		return 100
	}
	return p
}

func roundPercent(p float64) float64 {
	return float64(int64(p*10+0.5)) / 10
}
