package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vijay-owncfd/gnuplot-gui/src/applog"
	"github.com/vijay-owncfd/gnuplot-gui/src/datafile"
	"github.com/vijay-owncfd/gnuplot-gui/src/gnuplot"
)

// parseCols turns "2,3,4" into column indexes.
func parseCols(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad column %q (columns are 1-based)", p)
		}
		out = append(out, n)
	}
	return out, nil
}

// parseRange turns "min:max" into a manual AxisRange.
func parseRange(s string) (gnuplot.AxisRange, error) {
	if strings.TrimSpace(s) == "" {
		return gnuplot.AxisRange{}, nil
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return gnuplot.AxisRange{}, fmt.Errorf("range must be min:max, got %q", s)
	}
	return gnuplot.AxisRange{Manual: true, Min: strings.TrimSpace(parts[0]), Max: strings.TrimSpace(parts[1])}, nil
}

// parseSize turns "800x600" into width/height.
func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("size must be WxH, got %q", s)
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil || w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("size must be WxH, got %q", s)
	}
	return w, h, nil
}

// buildDatasets resolves Y columns into datasets, auto-titling from the file
// header when one covers the column. A non-empty titleOverride wins: used as-is
// for a single series, suffixed with the column for several.
func buildDatasets(file string, xCol int, yCols, y2Cols []int, style string, clean bool, titleOverride string) []gnuplot.Dataset {
	tab, err := datafile.Scan(file)
	if err != nil {
		applog.Warnf("header detection skipped: %v", err)
		tab = nil
	}
	single := len(yCols)+len(y2Cols) == 1
	title := func(col int) string {
		if titleOverride != "" {
			if single {
				return titleOverride
			}
			return fmt.Sprintf("%s (col %d)", titleOverride, col)
		}
		if t := tab.ColumnName(col); t != "" {
			return t
		}
		return fmt.Sprintf("%s (col %d)", filepath.Base(file), col)
	}
	var ds []gnuplot.Dataset
	for _, c := range yCols {
		ds = append(ds, gnuplot.Dataset{File: file, XCol: xCol, YCol: c, Axis: "y1", Style: style, Title: title(c), Clean: clean, Visible: true})
	}
	for _, c := range y2Cols {
		ds = append(ds, gnuplot.Dataset{File: file, XCol: xCol, YCol: c, Axis: "y2", Style: style, Title: title(c), Clean: clean, Visible: true})
	}
	return ds
}

func main() {
	var (
		file      string
		xCol      int
		yList     string
		y2List    string
		style     string
		clean     bool
		title     string
		xLabel    string
		yLabel    string
		y2Label   string
		logX      bool
		logY      bool
		logY2     bool
		xRange    string
		yRange    string
		size      string
		out       string
		scriptOut bool
		logLevel  string
	)
	flag.StringVar(&file, "file", "", "Path to a whitespace- or comma-delimited data file")
	flag.IntVar(&xCol, "x", 1, "X column (1-based)")
	flag.StringVar(&yList, "y", "2", "Comma-separated Y columns for the primary axis")
	flag.StringVar(&y2List, "y2", "", "Comma-separated Y columns for the secondary axis")
	flag.StringVar(&style, "style", "lines", "Plot style: lines, points, linespoints, dots, impulses")
	flag.BoolVar(&clean, "clean", false, "Strip vector parentheses from the data before plotting")
	flag.StringVar(&title, "title", "", "Series title override (headers are used when empty)")
	flag.StringVar(&xLabel, "xlabel", "", "X axis label")
	flag.StringVar(&yLabel, "ylabel", "", "Y1 axis label")
	flag.StringVar(&y2Label, "y2label", "", "Y2 axis label")
	flag.BoolVar(&logX, "logx", false, "Logarithmic X axis")
	flag.BoolVar(&logY, "logy", false, "Logarithmic Y1 axis")
	flag.BoolVar(&logY2, "logy2", false, "Logarithmic Y2 axis")
	flag.StringVar(&xRange, "xrange", "", "Manual X range as min:max")
	flag.StringVar(&yRange, "yrange", "", "Manual Y1 range as min:max")
	flag.StringVar(&size, "size", "1024x768", "Output size as WxH")
	flag.StringVar(&out, "o", "plot.png", "Output file (.png, .svg, .pdf, .eps)")
	flag.BoolVar(&scriptOut, "script", false, "Print the generated gnuplot script instead of rendering")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()
	applog.SetLogLevel(logLevel)

	if file == "" {
		fmt.Fprintln(os.Stderr, "error: -file is required")
		flag.Usage()
		os.Exit(2)
	}
	yCols, err := parseCols(yList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	y2Cols, err := parseCols(y2List)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if len(yCols)+len(y2Cols) == 0 {
		fmt.Fprintln(os.Stderr, "error: nothing to plot, give -y and/or -y2")
		os.Exit(2)
	}

	opt := gnuplot.DefaultOptions()
	opt.XLabel = xLabel
	opt.YLabel = yLabel
	opt.Y2Label = y2Label
	opt.XLog = logX
	opt.YLog = logY
	opt.Y2Log = logY2
	if opt.XRange, err = parseRange(xRange); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if opt.YRange, err = parseRange(yRange); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	w, h, err := parseSize(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	termName, err := gnuplot.TerminalForExt(filepath.Ext(out))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	term := gnuplot.Terminal{Name: termName, Width: w, Height: h, Output: out}

	ds := buildDatasets(file, xCol, yCols, y2Cols, style, clean, title)

	if scriptOut {
		script, pipe, err := gnuplot.BuildScript(ds, opt, term)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(script)
		if pipe != "" {
			fmt.Println()
			fmt.Print(pipe)
		}
		return
	}

	if err := gnuplot.Render(context.Background(), ds, opt, term); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", out)
}
