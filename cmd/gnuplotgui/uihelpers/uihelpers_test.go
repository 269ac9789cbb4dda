package uihelpers

import "testing"

func TestComputePlotDimensions(t *testing.T) {
	cases := []struct {
		inW, inH     int
		wantW, wantH int
	}{
		{100, 100, 320, 240},
		{320, 240, 320, 240},
		{900, 600, 900, 600},
		{9000, 9000, 4096, 4096},
	}
	for _, c := range cases {
		w, h := ComputePlotDimensions(c.inW, c.inH)
		if w != c.wantW || h != c.wantH {
			t.Fatalf("ComputePlotDimensions(%d,%d) = %d,%d want %d,%d", c.inW, c.inH, w, h, c.wantW, c.wantH)
		}
	}
}

func TestDefaultTabTitle(t *testing.T) {
	if got := DefaultTabTitle(3); got != "Plot 3" {
		t.Fatalf("DefaultTabTitle = %q", got)
	}
}

func TestNextColumnTitle(t *testing.T) {
	cases := []struct {
		title string
		col   int
		want  string
	}{
		{"Ux", 4, "Ux (col 4)"},
		{"Ux (col 3)", 4, "Ux (col 4)"},
		{"forces (col 2)", 3, "forces (col 3)"},
		{"", 2, " (col 2)"},
	}
	for _, c := range cases {
		if got := NextColumnTitle(c.title, c.col); got != c.want {
			t.Fatalf("NextColumnTitle(%q,%d) = %q want %q", c.title, c.col, got, c.want)
		}
	}
}

func TestDatasetSummary(t *testing.T) {
	got := DatasetSummary("residuals.dat", 1, 2, "y2", "lines", "p")
	if got != "residuals.dat  1:2  Y2  lines  p" {
		t.Fatalf("DatasetSummary = %q", got)
	}
	got = DatasetSummary("residuals.dat", 1, 2, "y1", "points", "p")
	if got != "residuals.dat  1:2  Y1  points  p" {
		t.Fatalf("DatasetSummary = %q", got)
	}
}
