package main

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/vijay-owncfd/gnuplot-gui/src/gnuplot"
	"github.com/vijay-owncfd/gnuplot-gui/src/session"
)

// The refresher goroutine reads snapshots while the UI thread rewrites them
// after each render; both paths must be safe to run at once.
func TestSnapshotAccessConcurrent(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "residuals.dat")
	p2 := filepath.Join(dir, "forces.dat")
	os.WriteFile(p1, []byte("1 0.5\n2 0.25\n"), 0o644)
	os.WriteFile(p2, []byte("1 10\n2 20\n"), 0o644)

	tab := &plotTab{datasets: []gnuplot.Dataset{
		{File: p1, XCol: 1, YCol: 2, Visible: true},
		{File: p2, XCol: 1, YCol: 2, Visible: true},
	}}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			tab.updateSnapshots()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			tab.filesChanged()
		}
	}()
	wg.Wait()

	if tab.filesChanged() {
		t.Fatalf("unchanged files reported as changed after snapshot")
	}
	os.WriteFile(p2, []byte("1 10\n2 20\n3 30\n"), 0o644)
	if !tab.filesChanged() {
		t.Fatalf("grown file not reported as changed")
	}
}

func TestApplyConfigTransientFlag(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	state := &uiState{}
	cfg := defaultTabConfig(state, "")
	cfg.Transient = true
	cfg.RefreshMS = 250
	p := newPlotTab(state, cfg)
	defer p.teardown()

	// saved-as-running only highlights Start, it never starts the timer
	if p.refresher.Running() {
		t.Fatalf("loading a transient tab must not start its timer")
	}
	if p.startBtn.Importance != widget.HighImportance {
		t.Fatalf("start button not highlighted for a saved transient tab")
	}
	if p.intervalEntry.Text != "250" {
		t.Fatalf("interval not restored: %q", p.intervalEntry.Text)
	}

	plain := newPlotTab(state, defaultTabConfig(state, ""))
	defer plain.teardown()
	if plain.startBtn.Importance != widget.MediumImportance {
		t.Fatalf("start button highlighted for a non-transient tab")
	}
}

func TestTabConfigRoundTripTransient(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	state := &uiState{}
	cfg := session.TabConfig{
		Title:     "Residuals",
		Options:   gnuplot.DefaultOptions(),
		RefreshMS: 500,
		Transient: true,
	}
	p := newPlotTab(state, cfg)
	defer p.teardown()
	got := p.config()
	if got.RefreshMS != 500 {
		t.Fatalf("refresh round-trip: %d", got.RefreshMS)
	}
	if got.Transient {
		t.Fatalf("stopped tab must save Transient=false")
	}
}
