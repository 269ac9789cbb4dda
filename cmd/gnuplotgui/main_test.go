package main

import (
	"strings"
	"testing"

	"github.com/vijay-owncfd/gnuplot-gui/src/transient"
)

func TestTruncatePath(t *testing.T) {
	short := "/tmp/session.json"
	if got := truncatePath(short, 60); got != short {
		t.Fatalf("short path altered: %q", got)
	}
	long := "/home/user/some/deeply/nested/project/runs/2026-08/postProcessing/forces/0/session.json"
	got := truncatePath(long, 40)
	if len(got) > 44 {
		t.Fatalf("truncated path too long: %d %q", len(got), got)
	}
	if !strings.HasSuffix(got, "session.json") {
		t.Fatalf("base name lost: %q", got)
	}
	if !strings.Contains(got, "...") {
		t.Fatalf("no ellipsis marker: %q", got)
	}
}

func TestDefaultTabConfig(t *testing.T) {
	state := &uiState{}
	cfg := defaultTabConfig(state, "")
	if cfg.Title != "Plot 1" {
		t.Fatalf("title = %q", cfg.Title)
	}
	if len(cfg.Datasets) != 0 {
		t.Fatalf("unexpected datasets: %v", cfg.Datasets)
	}
	if cfg.RefreshMS != transient.DefaultIntervalMS {
		t.Fatalf("refresh = %d", cfg.RefreshMS)
	}
	if !cfg.Options.Grid || cfg.Options.GridStyle != "Medium" {
		t.Fatalf("options defaults wrong: %+v", cfg.Options)
	}
}

func TestDefaultTabConfigPreloadsFile(t *testing.T) {
	state := &uiState{tabCounter: 2}
	cfg := defaultTabConfig(state, "/data/forces.dat")
	if cfg.Title != "Plot 3" {
		t.Fatalf("title = %q", cfg.Title)
	}
	if len(cfg.Datasets) != 1 {
		t.Fatalf("want one preloaded dataset, got %d", len(cfg.Datasets))
	}
	d := cfg.Datasets[0]
	if d.File != "/data/forces.dat" || d.XCol != 1 || d.YCol != 2 || !d.Visible {
		t.Fatalf("preloaded dataset wrong: %+v", d)
	}
	if d.Title != "forces.dat" {
		t.Fatalf("title not basename: %q", d.Title)
	}
}
