package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"vizex/pkg/chart"
	"vizex/pkg/display"
	"vizex/pkg/order"
	"vizex/pkg/source"
)

const (
	maxNameWidth  = 40
	maxShareWidth = 20
)

type diskReport struct{}

func (diskReport) rows(src source.Source, req Request) ([]string, []Row, error) {
	parts, err := src.Disks(req.Every)
	if err != nil {
		return nil, nil, err
	}
	if !req.Every {
		parts = filter(parts, req.Include, req.Exclude)
	}
	parts, err = order.Order(parts, req.Spec)
	if err != nil {
		return nil, nil, err
	}

	th := req.Theme
	rows := make([]Row, 0, len(parts))
	for _, p := range parts {
		bar, graph := chart.Render(float64(p.Used), float64(p.Total), req.Width, th)
		title := chart.Header(p.MountPoint, th)
		if req.Details {
			title += "  " + th.Text(fmt.Sprintf("fstype: %s  mountpoint: %s", p.FSType, p.MountPoint))
		}
		usage := th.Text(fmt.Sprintf("Total: %s  Used: %s  Free: %s",
			humanize.IBytes(p.Total), humanize.IBytes(p.Used), humanize.IBytes(p.Free)))
		rows = append(rows, Row{
			Entry: p,
			Bar:   bar,
			Lines: []string{title, graph, usage, ""},
		})
	}
	return nil, rows, nil
}

type filesReport struct{}

func (filesReport) rows(src source.Source, req Request) ([]string, []Row, error) {
	dir := req.Dir
	if dir == "" {
		dir = "."
	}
	entries, err := src.Directory(dir)
	if err != nil {
		return nil, nil, err
	}
	if !req.Every {
		entries = filter(entries, req.Include, req.Exclude)
	}
	entries, err = order.Order(entries, req.Spec)
	if err != nil {
		return nil, nil, err
	}

	var total uint64
	for _, e := range entries {
		total += e.Size
	}

	th := req.Theme
	width := min(req.Width, maxShareWidth)
	table := &display.Table{
		Header: []string{
			th.Header("Type"), th.Header("Name"), th.Header("Size"), th.Header("Modified"), th.Header("Share"),
		},
	}
	bars := make([]chart.Bar, len(entries))
	for i, e := range entries {
		bar, graph := chart.Render(float64(e.Size), float64(total), width, th)
		bars[i] = bar
		table.Rows = append(table.Rows, []string{
			th.Text(string(e.Kind)),
			th.Text(fitName(e.Name)),
			th.Text(humanize.IBytes(e.Size)),
			th.Text(humanize.RelTime(e.Modified, req.Now, "ago", "from now")),
			graph,
		})
	}

	lines := display.FormatTable(table)
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{Entry: e, Bar: bars[i], Lines: []string{lines[i+2]}}
	}
	return lines[:2], rows, nil
}

// fitName truncates a name to the name column's display width.
func fitName(name string) string {
	return runewidth.Truncate(name, maxNameWidth, "…")
}

type batteryReport struct{}

func (batteryReport) rows(src source.Source, req Request) ([]string, []Row, error) {
	bats, err := src.Battery()
	if err != nil {
		return nil, nil, err
	}

	th := req.Theme
	rows := make([]Row, 0, len(bats))
	for _, b := range bats {
		bar, graph := chart.Render(b.Percent, 100, req.Width, th)
		name := "Battery"
		if len(bats) > 1 {
			name = fmt.Sprintf("Battery %d", b.Index)
		}
		plugged := "no"
		if b.PowerPlugged {
			plugged = "yes"
		}
		left := "unknown"
		if b.SecondsLeft >= 0 {
			left = humanize.RelTime(req.Now, req.Now.Add(secondsToDuration(b.SecondsLeft)), "left", "left")
		}
		status := th.Text(fmt.Sprintf("State: %s  Plugged in: %s  Time left: %s", b.State, plugged, left))
		rows = append(rows, Row{
			Entry: b,
			Bar:   bar,
			Lines: []string{chart.Header(name, th), graph, status, ""},
		})
	}
	return nil, rows, nil
}

func secondsToDuration(s int64) time.Duration {
	return time.Duration(s) * time.Second
}

type cpuReport struct{}

func (cpuReport) rows(src source.Source, req Request) ([]string, []Row, error) {
	cores, err := src.CPUCores()
	if err != nil {
		return nil, nil, err
	}

	th := req.Theme
	digits := len(fmt.Sprint(max(len(cores)-1, 0)))
	rows := make([]Row, 0, len(cores))
	for _, c := range cores {
		bar, graph := chart.Render(c.CurrentMHz, c.MaxMHz, req.Width, th)
		name := chart.Header(fmt.Sprintf("Core %*d", digits, c.Index), th)
		freq := th.Text(fmt.Sprintf("%.0f / %.0f MHz", c.CurrentMHz, c.MaxMHz))
		rows = append(rows, Row{
			Entry: c,
			Bar:   bar,
			Lines: []string{strings.Join([]string{name, graph, freq}, "  ")},
		})
	}
	return nil, rows, nil
}
