// Package report builds printable snapshots: it samples a stat source,
// filters and orders the entries and renders one bar chart per entry.
//
// Building a snapshot performs no output. Callers print Lines() and may
// hand the snapshot to the exporter.
package report

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"vizex/pkg/chart"
	"vizex/pkg/common"
	"vizex/pkg/order"
	"vizex/pkg/source"
	"vizex/pkg/theme"
)

// Request is everything a report build depends on.
type Request struct {
	Subject common.Subject
	Spec    order.SortSpec
	Theme   theme.Theme
	// Include keeps only entries whose identity is listed, when non-empty.
	Include []string
	// Exclude drops entries whose identity is listed. Applied after Include.
	Exclude []string
	// Every bypasses Include/Exclude and shows pseudo filesystems.
	Every bool
	// Details adds filesystem type and mount point to disk lines.
	Details bool
	// Width is the number of bar segments.
	Width int
	// Dir is the directory listed by the files report.
	Dir string
	// Now is the reference for relative times; zero means time.Now().
	Now time.Time
}

// Row is one entry with its rendered bar and lines.
type Row struct {
	Entry common.Entry
	Bar   chart.Bar
	Lines []string
}

// Snapshot is the immutable result of one build.
type Snapshot struct {
	id      uuid.UUID
	subject common.Subject
	takenAt time.Time
	theme   theme.Theme
	spec    order.SortSpec
	header  []string
	rows    []Row
}

// reporter builds the rows of one subject.
type reporter interface {
	rows(src source.Source, req Request) (header []string, rows []Row, err error)
}

var reporters = map[common.Subject]reporter{
	common.SubjectDisk:    diskReport{},
	common.SubjectFiles:   filesReport{},
	common.SubjectBattery: batteryReport{},
	common.SubjectCPU:     cpuReport{},
}

// Build samples src and assembles the snapshot for req.Subject. It either
// returns a complete snapshot or the specific failure.
func Build(src source.Source, req Request) (*Snapshot, error) {
	rep, ok := reporters[req.Subject]
	if !ok {
		return nil, &common.ConfigError{Field: "subject", Value: string(req.Subject), Reason: "unknown report"}
	}
	if req.Width <= 0 {
		return nil, &common.ConfigError{Field: "width", Value: fmt.Sprint(req.Width), Reason: "must be positive"}
	}
	if req.Now.IsZero() {
		req.Now = time.Now()
	}

	header, rows, err := rep.rows(src, req)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		id:      uuid.New(),
		subject: req.Subject,
		takenAt: req.Now,
		theme:   req.Theme,
		spec:    req.Spec,
		header:  header,
		rows:    rows,
	}
	slog.Debug("Built report", "id", snap.id, "subject", req.Subject, "rows", len(rows))
	return snap, nil
}

// filter applies the include list, then the exclude list, by identity.
func filter[T common.Entry](entries []T, include, exclude []string) []T {
	in := toSet(include)
	ex := toSet(exclude)
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		id := filepath.Clean(e.Identity())
		if len(in) > 0 && !in[id] {
			slog.Debug("Not included", "entry", id)
			continue
		}
		if ex[id] {
			slog.Debug("Excluded", "entry", id)
			continue
		}
		out = append(out, e)
	}
	return out
}

func toSet(paths []string) map[string]bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p != "" {
			set[filepath.Clean(p)] = true
		}
	}
	return set
}

func (s *Snapshot) ID() uuid.UUID           { return s.id }
func (s *Snapshot) Subject() common.Subject { return s.subject }
func (s *Snapshot) TakenAt() time.Time      { return s.takenAt }
func (s *Snapshot) Theme() theme.Theme      { return s.theme }
func (s *Snapshot) Spec() order.SortSpec    { return s.spec }
func (s *Snapshot) Len() int                { return len(s.rows) }

// Columns returns the export column names of the snapshot's entries.
func (s *Snapshot) Columns() []string { return s.subject.Columns() }

// Rows returns a copy of the rows in final order.
func (s *Snapshot) Rows() []Row {
	return append([]Row(nil), s.rows...)
}

// Entries returns the raw entries in final order.
func (s *Snapshot) Entries() []common.Entry {
	out := make([]common.Entry, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.Entry
	}
	return out
}

// Lines returns the printable report.
func (s *Snapshot) Lines() []string {
	lines := append([]string(nil), s.header...)
	for _, r := range s.rows {
		lines = append(lines, r.Lines...)
	}
	return lines
}
