package common

import "strings"

// Subject selects what a report is about.
type Subject string

const (
	// SubjectDisk reports mounted partitions. It is the default.
	SubjectDisk Subject = "disk"
	// SubjectBattery reports battery charge.
	SubjectBattery Subject = "battery"
	// SubjectCPU reports per-core CPU frequency.
	SubjectCPU Subject = "cpu"
	// SubjectFiles reports the items of one directory. It is selected by
	// the files command, never by the subject argument.
	SubjectFiles Subject = "files"
)

// ParseSubject converts the free-form subject argument into a Subject.
// An empty argument selects the disk report; anything outside
// disk/battery/cpu is a configuration error.
func ParseSubject(s string) (Subject, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "disk":
		return SubjectDisk, nil
	case "battery":
		return SubjectBattery, nil
	case "cpu":
		return SubjectCPU, nil
	default:
		return "", &ConfigError{Field: "subject", Value: s, Reason: "expected disk, battery or cpu"}
	}
}

// Columns returns the export column names for entries of the subject.
func (s Subject) Columns() []string {
	switch s {
	case SubjectDisk:
		return PartitionColumns
	case SubjectBattery:
		return BatteryColumns
	case SubjectCPU:
		return CPUCoreColumns
	case SubjectFiles:
		return DirEntryColumns
	default:
		return nil
	}
}

// String returns the string representation of the Subject.
func (s Subject) String() string {
	return string(s)
}
