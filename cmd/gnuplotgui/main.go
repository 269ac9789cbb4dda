package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/vijay-owncfd/gnuplot-gui/cmd/gnuplotgui/uihelpers"
	"github.com/vijay-owncfd/gnuplot-gui/src/applog"
	"github.com/vijay-owncfd/gnuplot-gui/src/gnuplot"
	"github.com/vijay-owncfd/gnuplot-gui/src/session"
	"github.com/vijay-owncfd/gnuplot-gui/src/transient"
)

type uiState struct {
	app    fyne.App
	window fyne.Window
	tabs   *container.DocTabs

	plots      map[*container.TabItem]*plotTab
	tabCounter int
	tmpDir     string // per-run scratch dir for rendered PNGs

	sessionPath string // last session file saved or opened
}

func main() {
	var sessionFlag string
	var dataFlag string
	var logLevel string
	flag.StringVar(&sessionFlag, "session", "", "Session file to open at startup")
	flag.StringVar(&dataFlag, "file", "", "Data file to preload into the first tab")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()
	applog.SetLogLevel(logLevel)

	a := app.NewWithID("com.owncfd.gnuplotgui")
	w := a.NewWindow("Gnuplot GUI")
	w.Resize(fyne.NewSize(1200, 800))

	tmpDir, err := os.MkdirTemp("", "gnuplot-gui-*")
	if err != nil {
		applog.Errorf("temp dir: %v", err)
		tmpDir = os.TempDir()
	}

	state := &uiState{
		app:    a,
		window: w,
		plots:  map[*container.TabItem]*plotTab{},
		tmpDir: tmpDir,
	}
	if !gnuplot.Available() {
		applog.Warnf("gnuplot not found on PATH; falling back to inline preview rendering")
	}

	state.tabs = container.NewDocTabs()
	state.tabs.SetTabLocation(container.TabLocationTop)
	// '+' button appends a fresh tab
	state.tabs.CreateTab = func() *container.TabItem {
		p := newPlotTab(state, defaultTabConfig(state, ""))
		state.plots[p.item] = p
		return p.item
	}
	state.tabs.CloseIntercept = func(item *container.TabItem) {
		if len(state.tabs.Items) <= 1 {
			dialog.ShowInformation("Action Blocked", "Cannot close the last plot tab.", w)
			return
		}
		if p, ok := state.plots[item]; ok {
			p.teardown()
			delete(state.plots, item)
		}
		state.tabs.Remove(item)
	}

	// first tab, preloading -file when given
	first := newPlotTab(state, defaultTabConfig(state, dataFlag))
	state.plots[first.item] = first
	state.tabs.Append(first.item)

	w.SetContent(state.tabs)
	buildMenus(state)

	w.SetOnClosed(func() {
		for _, p := range state.plots {
			p.teardown()
		}
		os.RemoveAll(state.tmpDir)
	})

	// Re-render the active tab when the window is resized so the gnuplot
	// terminal follows the panel size.
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		prevW, prevH := 0, 0
		for range t.C {
			c := w.Canvas()
			if c == nil {
				continue
			}
			sz := c.Size()
			cw, chh := int(sz.Width), int(sz.Height)
			if cw != prevW || chh != prevH {
				if prevW != 0 {
					fyne.Do(func() {
						if p := state.activeTab(); p != nil {
							p.replot()
						}
					})
				}
				prevW, prevH = cw, chh
			}
		}
	}()

	if sessionFlag == "" {
		sessionFlag = a.Preferences().StringWithFallback("lastSession", "")
		// only auto-reopen a remembered session that still exists
		if sessionFlag != "" {
			if _, err := os.Stat(sessionFlag); err != nil {
				sessionFlag = ""
			}
		}
	}
	if sessionFlag != "" {
		if err := state.openSession(sessionFlag); err != nil {
			applog.Warnf("startup session %s: %v", sessionFlag, err)
		}
	}

	w.ShowAndRun()
}

// defaultTabConfig is the state of a brand-new tab.
func defaultTabConfig(state *uiState, dataFile string) session.TabConfig {
	cfg := session.TabConfig{
		Title:     uihelpers.DefaultTabTitle(state.tabCounter + 1),
		Options:   gnuplot.DefaultOptions(),
		RefreshMS: transient.DefaultIntervalMS,
	}
	if dataFile != "" {
		cfg.Datasets = []gnuplot.Dataset{{
			File: dataFile, XCol: 1, YCol: 2, Axis: "y1", Style: "lines",
			Title: filepath.Base(dataFile), Visible: true,
		}}
	}
	return cfg
}

func (s *uiState) activeTab() *plotTab {
	if s.tabs == nil {
		return nil
	}
	return s.plots[s.tabs.Selected()]
}

// menus

func buildMenus(state *uiState) {
	var items []*fyne.MenuItem
	for _, f := range recentSessions(state) {
		f := f
		items = append(items, fyne.NewMenuItem(truncatePath(f, 60), func() {
			if err := state.openSession(f); err != nil {
				dialog.ShowError(err, state.window)
			}
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() {
		state.app.Preferences().SetString("recentSessions", "")
		buildMenus(state)
	})
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Session…", func() { state.openSessionDialog() }),
		fyne.NewMenuItem("Save Session…", func() { state.saveSessionDialog() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	tabMenu := fyne.NewMenu("Tab",
		fyne.NewMenuItem("New Tab", func() { state.addTab() }),
		fyne.NewMenuItem("Rename Tab…", func() { state.renameTabDialog() }),
		fyne.NewMenuItem("Close Tab", func() {
			if item := state.tabs.Selected(); item != nil {
				state.tabs.CloseIntercept(item)
			}
		}),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, tabMenu, recentMenu))

	canv := state.window.Canvas()
	if canv != nil {
		for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
			mod := mod
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: mod}, func(fyne.Shortcut) { state.openSessionDialog() })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: mod}, func(fyne.Shortcut) { state.saveSessionDialog() })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) {
				if p := state.activeTab(); p != nil {
					p.replot()
				}
			})
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyT, Modifier: mod}, func(fyne.Shortcut) { state.addTab() })
		}
	}
}

func (s *uiState) addTab() {
	p := newPlotTab(s, defaultTabConfig(s, ""))
	s.plots[p.item] = p
	s.tabs.Append(p.item)
	s.tabs.Select(p.item)
}

func (s *uiState) renameTabDialog() {
	item := s.tabs.Selected()
	if item == nil {
		return
	}
	entry := widget.NewEntry()
	entry.SetText(item.Text)
	dialog.ShowCustomConfirm("Rename Tab", "OK", "Cancel", entry, func(ok bool) {
		name := strings.TrimSpace(entry.Text)
		if !ok || name == "" {
			return
		}
		item.Text = name
		s.tabs.Refresh()
	}, s.window)
}

// sessions

// captureSession snapshots every tab in display order.
func (s *uiState) captureSession() *session.Session {
	out := &session.Session{}
	for _, item := range s.tabs.Items {
		if p, ok := s.plots[item]; ok {
			out.Tabs = append(out.Tabs, p.config())
		}
	}
	return out
}

// restoreSession replaces all current tabs with the stored set. Timers are
// restored stopped; a saved transient flag only re-arms the Start button.
func (s *uiState) restoreSession(sess *session.Session) {
	for _, p := range s.plots {
		p.teardown()
	}
	s.plots = map[*container.TabItem]*plotTab{}
	s.tabs.SetItems(nil)
	for _, cfg := range sess.Tabs {
		p := newPlotTab(s, cfg)
		s.plots[p.item] = p
		s.tabs.Append(p.item)
	}
	if len(s.tabs.Items) > 0 {
		s.tabs.SelectIndex(0)
	}
	if p := s.activeTab(); p != nil {
		p.replot()
	}
}

func (s *uiState) openSession(path string) error {
	sess, err := session.Load(path)
	if err != nil {
		return err
	}
	s.restoreSession(sess)
	s.sessionPath = path
	addRecentSession(s, path)
	s.app.Preferences().SetString("lastSession", path)
	buildMenus(s)
	return nil
}

func (s *uiState) openSessionDialog() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		if err := s.openSession(path); err != nil {
			dialog.ShowError(err, s.window)
		}
	}, s.window)
	d.Show()
}

func (s *uiState) saveSessionDialog() {
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()
		if err := session.Save(path, s.captureSession()); err != nil {
			dialog.ShowError(err, s.window)
			return
		}
		s.sessionPath = path
		addRecentSession(s, path)
		s.app.Preferences().SetString("lastSession", path)
		buildMenus(s)
	}, s.window)
	name := "session.json"
	if s.sessionPath != "" {
		name = filepath.Base(s.sessionPath)
	}
	fs.SetFileName(name)
	fs.Show()
}

// recent session helpers

func recentSessions(state *uiState) []string {
	raw := state.app.Preferences().StringWithFallback("recentSessions", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentSession(state *uiState, path string) {
	list := recentSessions(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	state.app.Preferences().SetString("recentSessions", strings.Join(filtered, "\n"))
}

// utils

func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
