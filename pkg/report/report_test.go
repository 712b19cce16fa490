package report

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"

	"vizex/pkg/common"
	"vizex/pkg/order"
	"vizex/pkg/source"
	"vizex/pkg/theme"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func plain() theme.Theme { return theme.Default(termenv.Ascii) }

func fakeDisks() *source.Fake {
	return &source.Fake{
		Partitions: []common.Partition{
			{Device: "/dev/sda2", MountPoint: "/home", FSType: "ext4", Total: 200, Used: 50, Free: 150},
			{Device: "/dev/sda1", MountPoint: "/", FSType: "ext4", Total: 100, Used: 50, Free: 50},
			{Device: "/dev/sda3", MountPoint: "/boot", FSType: "vfat", Total: 10, Used: 10},
			{Device: "tmpfs", MountPoint: "/run", FSType: "tmpfs", Total: 8, Used: 1, Free: 7},
		},
	}
}

func diskRequest() Request {
	return Request{
		Subject: common.SubjectDisk,
		Spec:    order.SortSpec{Key: order.KeyName, Direction: order.Ascending},
		Theme:   plain(),
		Width:   10,
		Now:     now,
	}
}

func mountPoints(s *Snapshot) []string {
	var out []string
	for _, e := range s.Entries() {
		out = append(out, e.Identity())
	}
	return out
}

func TestDiskReport(t *testing.T) {
	snap, err := Build(fakeDisks(), diskRequest())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if want := []string{"/", "/boot", "/home"}; !slices.Equal(mountPoints(snap), want) {
		t.Errorf("entries = %v, want %v", mountPoints(snap), want)
	}
	if snap.Subject() != common.SubjectDisk {
		t.Errorf("subject = %s", snap.Subject())
	}
	if !snap.TakenAt().Equal(now) {
		t.Errorf("TakenAt = %v, want %v", snap.TakenAt(), now)
	}

	lines := snap.Lines()
	if len(lines) != 4*snap.Len() {
		t.Fatalf("got %d lines for %d rows", len(lines), snap.Len())
	}
	if lines[0] != "/" {
		t.Errorf("title = %q", lines[0])
	}
	if want := "▒▒▒▒▒      50.0%"; lines[1] != want {
		t.Errorf("bar = %q, want %q", lines[1], want)
	}
	if !strings.Contains(lines[2], "Total: 100 B") {
		t.Errorf("usage line = %q", lines[2])
	}
	if rows := snap.Rows(); rows[2].Bar.Filled != 2 || rows[2].Bar.Percent != 25 {
		t.Errorf("/home bar = %+v", rows[2].Bar)
	}
}

func TestDiskIncludeExclude(t *testing.T) {
	req := diskRequest()
	req.Include = []string{"/", "/home/"}
	req.Exclude = []string{"/home"}

	snap, err := Build(fakeDisks(), req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if want := []string{"/"}; !slices.Equal(mountPoints(snap), want) {
		t.Errorf("entries = %v, want %v", mountPoints(snap), want)
	}

	req.Every = true
	snap, err = Build(fakeDisks(), req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if want := []string{"/", "/boot", "/home", "/run"}; !slices.Equal(mountPoints(snap), want) {
		t.Errorf("every: entries = %v, want %v", mountPoints(snap), want)
	}
}

func TestDiskDetails(t *testing.T) {
	req := diskRequest()
	req.Details = true
	snap, err := Build(fakeDisks(), req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := snap.Lines()[4]; !strings.Contains(got, "fstype: vfat") || !strings.Contains(got, "mountpoint: /boot") {
		t.Errorf("details title = %q", got)
	}
}

func TestDiskSortDescending(t *testing.T) {
	req := diskRequest()
	req.Spec = order.SortSpec{Key: order.KeySize, Direction: order.Descending}
	snap, err := Build(fakeDisks(), req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if want := []string{"/home", "/", "/boot"}; !slices.Equal(mountPoints(snap), want) {
		t.Errorf("entries = %v, want %v", mountPoints(snap), want)
	}
}

func TestFilesReport(t *testing.T) {
	src := &source.Fake{Dirs: map[string][]common.DirEntry{
		"/data": {
			{Name: "b.txt", Path: "/data/b.txt", Kind: common.KindFile, Size: 300, Modified: now.Add(-2 * time.Hour)},
			{Name: "a", Path: "/data/a", Kind: common.KindDir, Size: 100, Modified: now.Add(-time.Minute)},
			{Name: ".hidden", Path: "/data/.hidden", Kind: common.KindFile, Size: 600},
			{Name: "link", Path: "/data/link", Kind: common.KindSymlink},
		},
	}}
	req := Request{
		Subject: common.SubjectFiles,
		Spec:    order.SortSpec{Key: order.KeySize, Direction: order.Descending},
		Theme:   plain(),
		Width:   40,
		Dir:     "/data",
		Now:     now,
	}

	snap, err := Build(src, req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if want := []string{"/data/b.txt", "/data/a", "/data/link"}; !slices.Equal(mountPoints(snap), want) {
		t.Errorf("entries = %v, want %v", mountPoints(snap), want)
	}

	lines := snap.Lines()
	if len(lines) != 2+snap.Len() {
		t.Fatalf("got %d lines, want header, separator and %d rows", len(lines), snap.Len())
	}
	for _, col := range []string{"Type", "Name", "Size", "Modified", "Share"} {
		if !strings.Contains(lines[0], col) {
			t.Errorf("header %q lacks %s", lines[0], col)
		}
	}
	if !strings.HasPrefix(lines[1], "---") {
		t.Errorf("separator = %q", lines[1])
	}
	if !strings.Contains(lines[2], "b.txt") || !strings.Contains(lines[2], "2 hours ago") {
		t.Errorf("first row = %q", lines[2])
	}

	// Share bars are capped at 20 segments and relative to the listed total.
	bar := snap.Rows()[0].Bar
	if bar.Total != 20 || bar.Filled != 15 || bar.Percent != 75 {
		t.Errorf("share bar = %+v", bar)
	}

	req.Spec.ShowHidden = true
	snap, err = Build(src, req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if snap.Len() != 4 || snap.Entries()[0].Identity() != "/data/.hidden" {
		t.Errorf("show hidden: entries = %v", mountPoints(snap))
	}
}

func TestFilesEmptyDirectory(t *testing.T) {
	src := &source.Fake{Dirs: map[string][]common.DirEntry{".": nil}}
	snap, err := Build(src, Request{
		Subject: common.SubjectFiles,
		Spec:    order.SortSpec{Key: order.KeyName, Direction: order.Ascending},
		Theme:   plain(),
		Width:   10,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if snap.Len() != 0 || len(snap.Lines()) != 2 {
		t.Errorf("empty listing: %d rows, lines %q", snap.Len(), snap.Lines())
	}
}

func TestFilesMissingDirectory(t *testing.T) {
	_, err := Build(&source.Fake{}, Request{
		Subject: common.SubjectFiles,
		Spec:    order.SortSpec{Key: order.KeyName, Direction: order.Ascending},
		Theme:   plain(),
		Width:   10,
		Dir:     "/nope",
	})
	if !errors.Is(err, common.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestBatteryReport(t *testing.T) {
	req := Request{Subject: common.SubjectBattery, Theme: plain(), Width: 10, Now: now}

	_, err := Build(&source.Fake{}, req)
	if !errors.Is(err, common.ErrNoBattery) {
		t.Errorf("expected ErrNoBattery, got %v", err)
	}

	src := &source.Fake{Batteries: []common.Battery{
		{Index: 0, Percent: 80, State: "Discharging", SecondsLeft: 2 * 3600},
	}}
	snap, err := Build(src, req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	lines := snap.Lines()
	if lines[0] != "Battery" {
		t.Errorf("title = %q", lines[0])
	}
	if want := "▒▒▒▒▒▒▒▒   80.0%"; lines[1] != want {
		t.Errorf("bar = %q, want %q", lines[1], want)
	}
	for _, part := range []string{"State: Discharging", "Plugged in: no", "2 hours left"} {
		if !strings.Contains(lines[2], part) {
			t.Errorf("status %q lacks %q", lines[2], part)
		}
	}

	src.Batteries[0].SecondsLeft = -1
	snap, _ = Build(src, req)
	if !strings.Contains(snap.Lines()[2], "Time left: unknown") {
		t.Errorf("status = %q", snap.Lines()[2])
	}
}

func TestCPUReport(t *testing.T) {
	src := &source.Fake{Cores: []common.CPUCore{
		{Index: 0, CurrentMHz: 1200, MaxMHz: 2400},
		{Index: 1, CurrentMHz: 2400, MaxMHz: 2400},
	}}
	snap, err := Build(src, Request{Subject: common.SubjectCPU, Theme: plain(), Width: 10, Now: now})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	lines := snap.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want one per core", len(lines))
	}
	if want := "Core 0  ▒▒▒▒▒      50.0%  1200 / 2400 MHz"; lines[0] != want {
		t.Errorf("line = %q, want %q", lines[0], want)
	}
	if snap.Rows()[1].Bar.Filled != 10 {
		t.Errorf("full core bar = %+v", snap.Rows()[1].Bar)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  source.Source
		req  Request
		want error
	}{
		{
			name: "unknown subject",
			src:  fakeDisks(),
			req:  Request{Subject: "gpu", Width: 10},
			want: common.ErrConfig,
		},
		{
			name: "zero width",
			src:  fakeDisks(),
			req:  Request{Subject: common.SubjectDisk, Spec: diskRequest().Spec},
			want: common.ErrConfig,
		},
		{
			name: "unknown sort key",
			src:  fakeDisks(),
			req:  Request{Subject: common.SubjectDisk, Spec: order.SortSpec{Key: "colour", Direction: order.Ascending}, Width: 10},
			want: common.ErrConfig,
		},
		{
			name: "disk source failure",
			src:  &source.Fake{DiskErr: &common.SourceError{Source: "disk", Err: errors.New("boom")}},
			req:  diskRequest(),
			want: common.ErrSourceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Build(tt.src, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if snap != nil {
				t.Errorf("expected no snapshot on failure")
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a, err := Build(fakeDisks(), diskRequest())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	b, _ := Build(fakeDisks(), diskRequest())
	if !slices.Equal(a.Lines(), b.Lines()) {
		t.Errorf("lines differ:\n%q\n%q", a.Lines(), b.Lines())
	}
	if a.ID() == b.ID() {
		t.Errorf("snapshots share an id")
	}
}
