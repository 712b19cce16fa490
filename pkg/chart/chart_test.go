package chart

import (
	"math"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"vizex/pkg/theme"
)

func TestRenderQuarter(t *testing.T) {
	th := theme.Default(termenv.Ascii)
	bar, s := Render(50, 200, 10, th)
	if bar.Filled != 2 {
		t.Errorf("Filled = %d, want 2", bar.Filled)
	}
	if bar.Total != 10 {
		t.Errorf("Total = %d, want 10", bar.Total)
	}
	if Label(bar.Percent) != "25.0%" {
		t.Errorf("label = %q, want 25.0%%", Label(bar.Percent))
	}
	want := "▒▒" + strings.Repeat(" ", 8) + " 25.0%"
	if s != want {
		t.Errorf("Render() = %q, want %q", s, want)
	}
}

func TestRenderZeroTotal(t *testing.T) {
	for _, used := range []float64{0, 1, 1e12} {
		b := Compute(used, 0, 20)
		if b.Percent != 0 || b.Filled != 0 {
			t.Errorf("Compute(%v, 0) = %+v, want empty bar", used, b)
		}
	}
}

func TestComputeBounds(t *testing.T) {
	tests := []struct {
		used, total float64
		width       int
	}{
		{0, 100, 10},
		{1, 3, 7},
		{2, 3, 40},
		{99.9, 100, 5},
		{100, 100, 13},
		{250, 100, 10},
		{12345, 67890, 1},
	}

	for _, tt := range tests {
		b := Compute(tt.used, tt.total, tt.width)
		if b.Filled < 0 || b.Filled > tt.width {
			t.Errorf("Compute(%v, %v, %d).Filled = %d out of range", tt.used, tt.total, tt.width, b.Filled)
		}
		want := int(math.RoundToEven(math.Min(tt.used/tt.total, 1) * float64(tt.width)))
		if b.Filled != want {
			t.Errorf("Compute(%v, %v, %d).Filled = %d, want %d", tt.used, tt.total, tt.width, b.Filled, want)
		}
		if b.Percent < 0 || b.Percent > 100 {
			t.Errorf("Compute(%v, %v, %d).Percent = %v out of range", tt.used, tt.total, tt.width, b.Percent)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	th, err := theme.New(theme.WithProfile(termenv.ANSI256), theme.WithGraphColor("green"), theme.WithSymbol("#"))
	if err != nil {
		t.Fatalf("theme.New failed: %v", err)
	}
	_, a := Render(733, 1000, 30, th)
	_, b := Render(733, 1000, 30, th)
	if a != b {
		t.Errorf("Render is not deterministic:\n%q\n%q", a, b)
	}
	if !strings.Contains(a, "#") || !strings.Contains(a, "73.3%") {
		t.Errorf("Render() = %q, missing symbol or label", a)
	}
}

func TestRenderFullAndEmpty(t *testing.T) {
	th := theme.Default(termenv.Ascii)
	_, full := Render(10, 10, 4, th)
	if full != "▒▒▒▒ 100.0%" {
		t.Errorf("full bar = %q", full)
	}
	_, empty := Render(0, 10, 4, th)
	if empty != "     0.0%" {
		t.Errorf("empty bar = %q", empty)
	}
}
