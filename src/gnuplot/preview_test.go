package gnuplot

import (
	"testing"
)

func TestPreviewRendersImage(t *testing.T) {
	p := writeData(t, "residuals.dat", "# Time p Ux\n1 0.5 0.1\n2 0.25 0.05\n3 0.12 0.02\n")
	opt := DefaultOptions()
	opt.XLabel = "Time"
	opt.YLabel = "Residual"
	ds := []Dataset{
		{File: p, XCol: 1, YCol: 2, Axis: "y1", Style: "lines", Title: "p", Visible: true},
		{File: p, XCol: 1, YCol: 3, Axis: "y2", Style: "points", Title: "Ux", Visible: true},
	}
	img, err := Preview(ds, opt, 400, 300)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("preview size = %dx%d want 400x300", b.Dx(), b.Dy())
	}
}

func TestPreviewLogScale(t *testing.T) {
	p := writeData(t, "residuals.dat", "1 0.5\n2 0.05\n3 0.005\n")
	opt := DefaultOptions()
	opt.YLog = true
	ds := []Dataset{{File: p, XCol: 1, YCol: 2, Style: "lines", Title: "p", Visible: true}}
	if _, err := Preview(ds, opt, 320, 240); err != nil {
		t.Fatalf("Preview with log Y: %v", err)
	}
}

func TestPreviewY2ManualRange(t *testing.T) {
	p := writeData(t, "forces.dat", "1 0.5 10\n2 0.25 20\n3 0.12 40\n")
	opt := DefaultOptions()
	opt.Y2Range = AxisRange{Manual: true, Min: "0", Max: "50"}
	ds := []Dataset{
		{File: p, XCol: 1, YCol: 2, Axis: "y1", Style: "lines", Title: "p", Visible: true},
		{File: p, XCol: 1, YCol: 3, Axis: "y2", Style: "lines", Title: "F", Visible: true},
	}
	// exercise both the plain and the log-merge paths
	if _, err := Preview(ds, opt, 320, 240); err != nil {
		t.Fatalf("Preview with manual Y2 range: %v", err)
	}
	opt.Y2Log = true
	opt.Y2Range = AxisRange{Manual: true, Min: "1", Max: "100"}
	if _, err := Preview(ds, opt, 320, 240); err != nil {
		t.Fatalf("Preview with log+manual Y2 range: %v", err)
	}
}

func TestPreviewNoVisible(t *testing.T) {
	if _, err := Preview(nil, DefaultOptions(), 320, 240); err == nil {
		t.Fatalf("expected error with no datasets")
	}
}

func TestPreviewSinglePointPadded(t *testing.T) {
	p := writeData(t, "one.dat", "1 2\n")
	ds := []Dataset{{File: p, XCol: 1, YCol: 2, Style: "points", Title: "pt", Visible: true}}
	if _, err := Preview(ds, DefaultOptions(), 320, 240); err != nil {
		t.Fatalf("Preview single point: %v", err)
	}
}
