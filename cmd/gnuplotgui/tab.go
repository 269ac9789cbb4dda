package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	png "image/png"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/vijay-owncfd/gnuplot-gui/cmd/gnuplotgui/uihelpers"
	"github.com/vijay-owncfd/gnuplot-gui/src/applog"
	"github.com/vijay-owncfd/gnuplot-gui/src/datafile"
	"github.com/vijay-owncfd/gnuplot-gui/src/gnuplot"
	"github.com/vijay-owncfd/gnuplot-gui/src/session"
	"github.com/vijay-owncfd/gnuplot-gui/src/transient"
)

const renderTimeout = 30 * time.Second

// plotTab owns the widgets and state of one plot tab.
type plotTab struct {
	state *uiState
	item  *container.TabItem
	key   string // stable id used for temp render filenames
	ready bool   // suppresses replots fired by widget callbacks during construction

	datasets  []gnuplot.Dataset
	selected  int // index into datasets; -1 when nothing selected
	refresher *transient.Refresher

	// snapshots is written by replot on the UI thread and read by the
	// refresher goroutine, so every access goes through snapMu.
	snapMu    sync.Mutex
	snapshots []*datafile.Table

	// dataset editor
	list      *widget.List
	filePath  *widget.Entry
	xColEntry *widget.Entry
	yColEntry *widget.Entry
	axisSel   *widget.Select
	styleSel  *widget.Select
	titleEnt  *widget.Entry
	cleanChk  *widget.Check
	detectChk *widget.Check
	updateBtn *widget.Button
	dupBtn    *widget.Button
	removeBtn *widget.Button

	// axes settings
	xLabel, yLabel, y2Label *widget.Entry
	xLog, yLog, y2Log       *widget.Check
	gridChk                 *widget.Check
	gridStyleSel            *widget.Select
	xRangeMode              *widget.RadioGroup
	yRangeMode              *widget.RadioGroup
	y2RangeMode             *widget.RadioGroup
	xMin, xMax              *widget.Entry
	yMin, yMax              *widget.Entry
	y2Min, y2Max            *widget.Entry

	// layout & margins
	marginsChk     *widget.Check
	lm, rm, tm, bm *widget.Entry
	aspectChk      *widget.Check
	aspectEntry    *widget.Entry

	// transient controls
	intervalEntry *widget.Entry
	startBtn      *widget.Button
	stopBtn       *widget.Button

	plotImg *canvas.Image
}

func numEntry(placeholder string) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder(placeholder)
	return e
}

// newPlotTab builds a tab from a config (a fresh default one for new tabs).
func newPlotTab(state *uiState, cfg session.TabConfig) *plotTab {
	state.tabCounter++
	p := &plotTab{
		state:    state,
		key:      fmt.Sprintf("tab%d", state.tabCounter),
		selected: -1,
	}
	p.refresher = transient.New(p.transientTick)
	p.buildWidgets()
	p.applyConfig(cfg)
	p.item = container.NewTabItem(cfg.Title, p.buildLayout())
	p.ready = true
	return p
}

func (p *plotTab) buildWidgets() {
	// dataset list
	p.list = widget.NewList(
		func() int { return len(p.datasets) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewCheck("", nil), widget.NewLabel(""))
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			row := o.(*fyne.Container)
			chk := row.Objects[0].(*widget.Check)
			lbl := row.Objects[1].(*widget.Label)
			if id < 0 || id >= len(p.datasets) {
				return
			}
			d := p.datasets[id]
			chk.OnChanged = nil
			chk.SetChecked(d.Visible)
			chk.OnChanged = func(b bool) {
				if id < len(p.datasets) {
					p.datasets[id].Visible = b
					p.replot()
				}
			}
			lbl.SetText(uihelpers.DatasetSummary(filepath.Base(d.File), d.XCol, d.YCol, d.Axis, d.Style, d.Title))
		},
	)
	p.list.OnSelected = func(id widget.ListItemID) { p.onSelect(int(id)) }
	p.list.OnUnselected = func(widget.ListItemID) { p.onSelect(-1) }

	// editor
	p.filePath = widget.NewEntry()
	p.filePath.SetPlaceHolder("path/to/data file")
	p.filePath.OnSubmitted = func(string) { p.replot() }
	p.xColEntry = numEntry("1")
	p.xColEntry.SetText("1")
	p.yColEntry = numEntry("2")
	p.yColEntry.SetText("2")
	p.axisSel = widget.NewSelect([]string{"Y1", "Y2"}, nil)
	p.axisSel.SetSelected("Y1")
	p.styleSel = widget.NewSelect(gnuplot.PlotStyles, nil)
	p.styleSel.SetSelected("lines")
	p.titleEnt = widget.NewEntry()
	p.titleEnt.OnSubmitted = func(string) { p.replot() }
	p.detectChk = widget.NewCheck("Detect Column Headers", nil)
	p.detectChk.SetChecked(true)
	p.cleanChk = widget.NewCheck("Clean Vector Data ( )", func(on bool) {
		// cleaned data loses its header line, so detection is pointless
		if on {
			p.detectChk.SetChecked(false)
			p.detectChk.Disable()
		} else {
			p.detectChk.SetChecked(true)
			p.detectChk.Enable()
		}
	})

	p.updateBtn = widget.NewButton("Update Selected", p.updateSelected)
	p.dupBtn = widget.NewButton("Duplicate Selected", p.duplicateSelected)
	p.removeBtn = widget.NewButton("Remove Selected", p.removeSelected)
	p.updateBtn.Disable()
	p.dupBtn.Disable()
	p.removeBtn.Disable()

	// axes
	p.xLabel = widget.NewEntry()
	p.yLabel = widget.NewEntry()
	p.y2Label = widget.NewEntry()
	for _, e := range []*widget.Entry{p.xLabel, p.yLabel, p.y2Label} {
		e.OnSubmitted = func(string) { p.replot() }
	}
	p.xLog = widget.NewCheck("X Log", func(bool) { p.replot() })
	p.yLog = widget.NewCheck("Y1 Log", func(bool) { p.replot() })
	p.y2Log = widget.NewCheck("Y2 Log", func(bool) { p.replot() })
	p.gridStyleSel = widget.NewSelect(gnuplot.GridStyles, func(string) { p.replot() })
	p.gridStyleSel.SetSelected("Medium")
	p.gridChk = widget.NewCheck("Grid", func(on bool) {
		if on {
			p.gridStyleSel.Enable()
		} else {
			p.gridStyleSel.Disable()
		}
		p.replot()
	})
	p.gridChk.SetChecked(true)

	p.xMin, p.xMax = numEntry("min"), numEntry("max")
	p.yMin, p.yMax = numEntry("min"), numEntry("max")
	p.y2Min, p.y2Max = numEntry("min"), numEntry("max")
	for _, e := range []*widget.Entry{p.xMin, p.xMax, p.yMin, p.yMax, p.y2Min, p.y2Max} {
		e.OnSubmitted = func(string) { p.replot() }
	}
	p.xRangeMode = rangeModeRadio(p.xMin, p.xMax)
	p.yRangeMode = rangeModeRadio(p.yMin, p.yMax)
	p.y2RangeMode = rangeModeRadio(p.y2Min, p.y2Max)

	// layout & margins
	p.lm, p.rm = numEntry("left"), numEntry("right")
	p.tm, p.bm = numEntry("top"), numEntry("bottom")
	for _, e := range []*widget.Entry{p.lm, p.rm, p.tm, p.bm} {
		e.Disable()
		e.OnSubmitted = func(string) { p.replot() }
	}
	p.marginsChk = widget.NewCheck("Set Custom Margins", func(on bool) {
		for _, e := range []*widget.Entry{p.lm, p.rm, p.tm, p.bm} {
			if on {
				e.Enable()
			} else {
				e.Disable()
			}
		}
	})
	p.aspectEntry = numEntry("0.75")
	p.aspectEntry.SetText("0.75")
	p.aspectEntry.OnSubmitted = func(string) { p.replot() }
	p.aspectChk = widget.NewCheck("Lock Aspect Ratio", func(on bool) {
		if on {
			p.aspectEntry.Enable()
		} else {
			p.aspectEntry.Disable()
		}
	})
	p.aspectChk.SetChecked(true)

	// transient
	p.intervalEntry = numEntry("ms")
	p.intervalEntry.SetText(strconv.Itoa(transient.DefaultIntervalMS))
	p.startBtn = widget.NewButton("Start", p.startTransient)
	p.stopBtn = widget.NewButton("Stop", p.stopTransient)
	p.stopBtn.Disable()

	p.plotImg = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	p.plotImg.FillMode = canvas.ImageFillContain
	p.plotImg.SetMinSize(fyne.NewSize(480, 360))
}

// rangeModeRadio builds the Auto/Manual selector controlling two bound entries.
func rangeModeRadio(min, max *widget.Entry) *widget.RadioGroup {
	rg := widget.NewRadioGroup([]string{"Auto", "Manual"}, func(v string) {
		if v == "Manual" {
			min.Enable()
			max.Enable()
		} else {
			min.Disable()
			max.Disable()
		}
	})
	rg.Horizontal = true
	rg.SetSelected("Auto")
	return rg
}

func (p *plotTab) buildLayout() fyne.CanvasObject {
	browseBtn := widget.NewButton("Browse…", p.browseFile)
	editor := widget.NewCard("", "Dataset Editor", container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Data File:"), browseBtn, p.filePath),
		container.NewHBox(
			widget.NewLabel("X Col:"), p.xColEntry,
			widget.NewLabel("Y Col:"), p.yColEntry,
			widget.NewLabel("Axis:"), p.axisSel,
		),
		container.NewBorder(nil, nil, widget.NewLabel("Plot Style:"), nil, p.styleSel),
		container.NewBorder(nil, nil, widget.NewLabel("Title:"), nil, p.titleEnt),
		container.NewHBox(p.cleanChk, p.detectChk),
		container.NewHBox(widget.NewButton("Add Dataset", p.addDataset), p.updateBtn, p.dupBtn, p.removeBtn),
	))

	rangeRow := func(name string, rg *widget.RadioGroup, min, max *widget.Entry) fyne.CanvasObject {
		return container.NewHBox(widget.NewLabel(name), rg, min, widget.NewLabel("to"), max)
	}
	axes := widget.NewCard("", "Axes Settings", container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("X-Axis Title:"), nil, p.xLabel),
		container.NewBorder(nil, nil, widget.NewLabel("Y1-Axis Title:"), nil, p.yLabel),
		container.NewBorder(nil, nil, widget.NewLabel("Y2-Axis Title:"), nil, p.y2Label),
		container.NewHBox(p.xLog, p.yLog, p.y2Log, p.gridChk, p.gridStyleSel),
		widget.NewSeparator(),
		rangeRow("X-Axis Range:", p.xRangeMode, p.xMin, p.xMax),
		rangeRow("Y1-Axis Range:", p.yRangeMode, p.yMin, p.yMax),
		rangeRow("Y2-Axis Range:", p.y2RangeMode, p.y2Min, p.y2Max),
	))

	layoutCard := widget.NewCard("", "Plot Layout & Margins", container.NewVBox(
		p.marginsChk,
		container.NewHBox(
			widget.NewLabel("Left (+):"), p.lm,
			widget.NewLabel("Right (-):"), p.rm,
		),
		container.NewHBox(
			widget.NewLabel("Top (-):"), p.tm,
			widget.NewLabel("Bottom (+):"), p.bm,
		),
		widget.NewSeparator(),
		container.NewHBox(p.aspectChk, p.aspectEntry),
	))

	actions := container.NewVBox(
		widget.NewButton("Plot / Refresh", p.replot),
		container.NewHBox(widget.NewLabel("Auto (ms):"), p.intervalEntry, p.startBtn, p.stopBtn),
	)

	listScroll := container.NewVScroll(p.list)
	listScroll.SetMinSize(fyne.NewSize(0, 140))
	controls := container.NewVScroll(container.NewVBox(
		widget.NewCard("", "Datasets", listScroll),
		editor,
		axes,
		layoutCard,
		actions,
	))
	controls.SetMinSize(fyne.NewSize(420, 600))

	exportRow := container.NewHBox(
		widget.NewButton("Save Plot…", p.savePlotDialog),
		widget.NewButton("Copy to Clipboard", p.copyToClipboard),
	)
	plotSide := container.NewBorder(nil, exportRow, nil, nil, p.plotImg)

	split := container.NewHSplit(controls, plotSide)
	split.SetOffset(0.38)
	return split
}

// options collects the per-tab settings out of the widgets.
func (p *plotTab) options() gnuplot.Options {
	opt := gnuplot.Options{
		XLabel:    p.xLabel.Text,
		YLabel:    p.yLabel.Text,
		Y2Label:   p.y2Label.Text,
		XLog:      p.xLog.Checked,
		YLog:      p.yLog.Checked,
		Y2Log:     p.y2Log.Checked,
		Grid:      p.gridChk.Checked,
		GridStyle: p.gridStyleSel.Selected,
		XRange:    gnuplot.AxisRange{Manual: p.xRangeMode.Selected == "Manual", Min: p.xMin.Text, Max: p.xMax.Text},
		YRange:    gnuplot.AxisRange{Manual: p.yRangeMode.Selected == "Manual", Min: p.yMin.Text, Max: p.yMax.Text},
		Y2Range:   gnuplot.AxisRange{Manual: p.y2RangeMode.Selected == "Manual", Min: p.y2Min.Text, Max: p.y2Max.Text},

		CustomMargins: p.marginsChk.Checked,
		LMargin:       p.lm.Text,
		RMargin:       p.rm.Text,
		TMargin:       p.tm.Text,
		BMargin:       p.bm.Text,

		LockAspect:  p.aspectChk.Checked,
		AspectRatio: p.aspectEntry.Text,
		Font:        "Verdana,10",
	}
	return opt
}

// config captures this tab for session persistence.
func (p *plotTab) config() session.TabConfig {
	refresh := transient.DefaultIntervalMS
	if d, err := transient.ParseInterval(p.intervalEntry.Text); err == nil {
		refresh = int(d / time.Millisecond)
	}
	ds := make([]gnuplot.Dataset, len(p.datasets))
	copy(ds, p.datasets)
	return session.TabConfig{
		Title:     p.item.Text,
		Datasets:  ds,
		Options:   p.options(),
		RefreshMS: refresh,
		Transient: p.refresher.Running(),
	}
}

// applyConfig pushes a stored config into the widgets.
func (p *plotTab) applyConfig(cfg session.TabConfig) {
	p.datasets = make([]gnuplot.Dataset, len(cfg.Datasets))
	copy(p.datasets, cfg.Datasets)
	opt := cfg.Options
	p.xLabel.SetText(opt.XLabel)
	p.yLabel.SetText(opt.YLabel)
	p.y2Label.SetText(opt.Y2Label)
	p.xLog.SetChecked(opt.XLog)
	p.yLog.SetChecked(opt.YLog)
	p.y2Log.SetChecked(opt.Y2Log)
	p.gridChk.SetChecked(opt.Grid)
	if opt.GridStyle != "" {
		p.gridStyleSel.SetSelected(opt.GridStyle)
	}
	setRange := func(rg *widget.RadioGroup, min, max *widget.Entry, r gnuplot.AxisRange) {
		min.SetText(r.Min)
		max.SetText(r.Max)
		if r.Manual {
			rg.SetSelected("Manual")
		} else {
			rg.SetSelected("Auto")
		}
	}
	setRange(p.xRangeMode, p.xMin, p.xMax, opt.XRange)
	setRange(p.yRangeMode, p.yMin, p.yMax, opt.YRange)
	setRange(p.y2RangeMode, p.y2Min, p.y2Max, opt.Y2Range)
	p.marginsChk.SetChecked(opt.CustomMargins)
	p.lm.SetText(opt.LMargin)
	p.rm.SetText(opt.RMargin)
	p.tm.SetText(opt.TMargin)
	p.bm.SetText(opt.BMargin)
	p.aspectChk.SetChecked(opt.LockAspect)
	if opt.AspectRatio != "" {
		p.aspectEntry.SetText(opt.AspectRatio)
	}
	if cfg.RefreshMS > 0 {
		p.intervalEntry.SetText(strconv.Itoa(cfg.RefreshMS))
	}
	// A tab saved mid-transient never restarts its timer on load; the flag
	// only highlights Start so the user can resume deliberately.
	if cfg.Transient {
		p.startBtn.Importance = widget.HighImportance
	} else {
		p.startBtn.Importance = widget.MediumImportance
	}
	p.startBtn.Refresh()
	p.list.Refresh()
}

// editor helpers

func (p *plotTab) browseFile() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		path := rc.URI().Path()
		p.filePath.SetText(path)
		p.titleEnt.SetText(filepath.Base(path))
	}, p.state.window)
	d.Show()
}

// editorDataset assembles a Dataset from the editor fields; title resolution
// consults the file header when detection is on.
func (p *plotTab) editorDataset() (gnuplot.Dataset, error) {
	file := strings.TrimSpace(p.filePath.Text)
	if file == "" {
		return gnuplot.Dataset{}, fmt.Errorf("no data file given")
	}
	xCol, err := strconv.Atoi(strings.TrimSpace(p.xColEntry.Text))
	if err != nil || xCol < 1 {
		return gnuplot.Dataset{}, fmt.Errorf("X column must be a positive integer: %q", p.xColEntry.Text)
	}
	yCol, err := strconv.Atoi(strings.TrimSpace(p.yColEntry.Text))
	if err != nil || yCol < 1 {
		return gnuplot.Dataset{}, fmt.Errorf("Y column must be a positive integer: %q", p.yColEntry.Text)
	}
	title := p.titleEnt.Text
	if p.detectChk.Checked {
		if h := datafile.HeaderName(file, yCol); h != "" {
			title = h
			p.titleEnt.SetText(h)
		}
	}
	axis := "y1"
	if p.axisSel.Selected == "Y2" {
		axis = "y2"
	}
	return gnuplot.Dataset{
		File:    file,
		XCol:    xCol,
		YCol:    yCol,
		Axis:    axis,
		Style:   p.styleSel.Selected,
		Title:   title,
		Clean:   p.cleanChk.Checked,
		Visible: true,
	}, nil
}

func (p *plotTab) addDataset() {
	ds, err := p.editorDataset()
	if err != nil {
		dialog.ShowError(err, p.state.window)
		return
	}
	p.datasets = append(p.datasets, ds)
	p.list.Refresh()
	p.replot()
}

func (p *plotTab) updateSelected() {
	if p.selected < 0 || p.selected >= len(p.datasets) {
		return
	}
	ds, err := p.editorDataset()
	if err != nil {
		dialog.ShowError(err, p.state.window)
		return
	}
	ds.Visible = p.datasets[p.selected].Visible
	p.datasets[p.selected] = ds
	p.list.Refresh()
	p.replot()
}

func (p *plotTab) duplicateSelected() {
	if p.selected < 0 || p.selected >= len(p.datasets) {
		return
	}
	ds := p.datasets[p.selected]
	ds.YCol++
	title := ""
	if p.detectChk.Checked {
		title = datafile.HeaderName(ds.File, ds.YCol)
	}
	if title == "" {
		title = uihelpers.NextColumnTitle(ds.Title, ds.YCol)
	}
	ds.Title = title
	ds.Visible = true
	p.datasets = append(p.datasets, ds)
	p.list.Refresh()
	p.replot()
}

func (p *plotTab) removeSelected() {
	if p.selected < 0 || p.selected >= len(p.datasets) {
		return
	}
	p.datasets = append(p.datasets[:p.selected], p.datasets[p.selected+1:]...)
	p.selected = -1
	p.list.UnselectAll()
	p.setSelectionButtons(false)
	p.list.Refresh()
	p.replot()
}

func (p *plotTab) setSelectionButtons(enabled bool) {
	if enabled {
		p.updateBtn.Enable()
		p.dupBtn.Enable()
		p.removeBtn.Enable()
	} else {
		p.updateBtn.Disable()
		p.dupBtn.Disable()
		p.removeBtn.Disable()
	}
}

// onSelect loads the selected dataset back into the editor.
func (p *plotTab) onSelect(idx int) {
	p.selected = idx
	if idx < 0 || idx >= len(p.datasets) {
		p.setSelectionButtons(false)
		return
	}
	p.setSelectionButtons(true)
	d := p.datasets[idx]
	p.filePath.SetText(d.File)
	p.xColEntry.SetText(strconv.Itoa(d.XCol))
	p.yColEntry.SetText(strconv.Itoa(d.YCol))
	if d.Axis == "y2" {
		p.axisSel.SetSelected("Y2")
	} else {
		p.axisSel.SetSelected("Y1")
	}
	p.styleSel.SetSelected(d.Style)
	p.titleEnt.SetText(d.Title)
	p.cleanChk.SetChecked(d.Clean)
}

// rendering

// plotSize derives the gnuplot terminal size from the current panel size.
func (p *plotTab) plotSize() (int, int) {
	sz := p.plotImg.Size()
	return uihelpers.ComputePlotDimensions(int(sz.Width), int(sz.Height))
}

// replot renders the current configuration into the plot panel. A validation
// or gnuplot failure pops a dialog; an empty dataset list is simply a no-op.
func (p *plotTab) replot() {
	if !p.ready {
		return
	}
	w, h := p.plotSize()
	var img image.Image
	var err error
	if gnuplot.Available() {
		img, err = p.renderExternal(w, h)
	} else {
		img, err = gnuplot.Preview(p.datasets, p.options(), w, h)
	}
	if err != nil {
		if errors.Is(err, gnuplot.ErrNoVisibleDatasets) {
			return
		}
		dialog.ShowError(err, p.state.window)
		return
	}
	p.plotImg.Image = img
	p.plotImg.Refresh()
	p.updateSnapshots()
}

// renderExternal runs gnuplot into a per-tab temp PNG and decodes it.
func (p *plotTab) renderExternal(w, h int) (image.Image, error) {
	out := filepath.Join(p.state.tmpDir, p.key+".png")
	term := gnuplot.Terminal{Name: "pngcairo", Width: w, Height: h, Output: out}
	ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()
	if err := gnuplot.Render(ctx, p.datasets, p.options(), term); err != nil {
		return nil, err
	}
	f, err := os.Open(out)
	if err != nil {
		return nil, fmt.Errorf("opening rendered plot: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding rendered plot: %w", err)
	}
	return img, nil
}

// updateSnapshots records size/mtime of every visible file after a render.
func (p *plotTab) updateSnapshots() {
	seen := map[string]bool{}
	var snaps []*datafile.Table
	for _, d := range p.datasets {
		if !d.Visible || seen[d.File] {
			continue
		}
		seen[d.File] = true
		if s, err := datafile.Snapshot(d.File); err == nil {
			snaps = append(snaps, s)
		}
	}
	p.snapMu.Lock()
	p.snapshots = snaps
	p.snapMu.Unlock()
}

// filesChanged reports whether any plotted file moved since the last render.
// The stat calls run outside the lock; only the slice handoff is guarded.
func (p *plotTab) filesChanged() bool {
	p.snapMu.Lock()
	snaps := p.snapshots
	p.snapMu.Unlock()
	if len(snaps) == 0 {
		return true
	}
	for _, s := range snaps {
		if s.Changed() {
			return true
		}
	}
	return false
}

// transient plotting

func (p *plotTab) startTransient() {
	interval, err := transient.ParseInterval(p.intervalEntry.Text)
	if err != nil {
		dialog.ShowError(err, p.state.window)
		return
	}
	p.refresher.Start(interval)
	p.startBtn.Importance = widget.MediumImportance
	p.startBtn.Disable()
	p.stopBtn.Enable()
	applog.Infof("transient plot started for %q every %s", p.item.Text, interval)
}

func (p *plotTab) stopTransient() {
	p.refresher.Stop()
	p.startBtn.Enable()
	p.stopBtn.Disable()
}

// transientTick runs on the refresher goroutine. The tab is identified by its
// immutable key here; the title lives in a widget owned by the UI thread.
func (p *plotTab) transientTick() {
	if !p.filesChanged() {
		applog.Debugf("transient tick for %s: files unchanged, skipping", p.key)
		return
	}
	fyne.Do(p.replot)
}

// teardown stops timers when the tab or window goes away.
func (p *plotTab) teardown() {
	p.refresher.Stop()
}

// export

func (p *plotTab) savePlotDialog() {
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()
		if err := p.savePlot(path); err != nil {
			dialog.ShowError(err, p.state.window)
			return
		}
		dialog.ShowInformation("Success", "Plot saved to:\n"+path, p.state.window)
	}, p.state.window)
	fs.SetFileName("plot.png")
	fs.Show()
}

// savePlot renders the tab at export resolution to the given path. Without a
// gnuplot binary only PNG (via the preview renderer) is possible.
func (p *plotTab) savePlot(path string) error {
	ext := filepath.Ext(path)
	if gnuplot.Available() {
		termName, err := gnuplot.TerminalForExt(ext)
		if err != nil {
			return err
		}
		term := gnuplot.Terminal{Name: termName, Width: 1024, Height: 768, Output: path}
		ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
		defer cancel()
		return gnuplot.Render(ctx, p.datasets, p.options(), term)
	}
	if !strings.EqualFold(ext, ".png") {
		return fmt.Errorf("saving %s requires gnuplot; only .png is available in preview mode", ext)
	}
	img, err := gnuplot.Preview(p.datasets, p.options(), 1024, 768)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
