package gnuplot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vijay-owncfd/gnuplot-gui/src/datafile"
)

// ErrNoVisibleDatasets means there was nothing to plot; the UI treats this as
// "skip the render" rather than an error dialog.
var ErrNoVisibleDatasets = errors.New("no visible datasets to plot")

// Plot styles accepted by the dataset editor, in menu order.
var PlotStyles = []string{"lines", "points", "linespoints", "dots", "impulses"}

// Grid styles and their gnuplot line colors.
var GridStyles = []string{"Light", "Medium", "Dark"}

// Dataset is one plotted series: a file, a column pair and its presentation.
type Dataset struct {
	File    string `json:"file"`
	XCol    int    `json:"x_col"`
	YCol    int    `json:"y_col"`
	Axis    string `json:"axis"`  // "y1" or "y2"
	Style   string `json:"style"` // one of PlotStyles
	Title   string `json:"title"`
	Clean   bool   `json:"clean"` // pipe paren-stripped content via inline '-'
	Visible bool   `json:"visible"`
}

// AxisRange holds one axis range selection. Min/Max stay as the raw entry
// text: empty fields fall back to autoscale even in manual mode, matching the
// original front-end.
type AxisRange struct {
	Manual bool   `json:"manual"`
	Min    string `json:"min"`
	Max    string `json:"max"`
}

// Options carries every per-tab plot setting that translates into script text.
type Options struct {
	XLabel  string `json:"x_label"`
	YLabel  string `json:"y_label"`
	Y2Label string `json:"y2_label"`

	XLog  bool `json:"x_log"`
	YLog  bool `json:"y_log"`
	Y2Log bool `json:"y2_log"`

	Grid      bool   `json:"grid"`
	GridStyle string `json:"grid_style"` // Light | Medium | Dark

	XRange  AxisRange `json:"x_range"`
	YRange  AxisRange `json:"y_range"`
	Y2Range AxisRange `json:"y2_range"`

	CustomMargins bool   `json:"custom_margins"`
	LMargin       string `json:"lmargin"`
	RMargin       string `json:"rmargin"`
	TMargin       string `json:"tmargin"`
	BMargin       string `json:"bmargin"`

	LockAspect  bool   `json:"lock_aspect"`
	AspectRatio string `json:"aspect_ratio"`

	Font string `json:"font"` // terminal font, e.g. "Verdana,10"
}

// DefaultOptions mirrors the front-end's initial control states.
func DefaultOptions() Options {
	return Options{
		Grid:        true,
		GridStyle:   "Medium",
		LockAspect:  true,
		AspectRatio: "0.75",
		Font:        "Verdana,10",
	}
}

// Terminal selects the gnuplot output driver for one render.
type Terminal struct {
	Name   string // pngcairo, svg, pdfcairo, ...
	Width  int
	Height int
	Output string
	Crop   bool // trim surrounding whitespace (clipboard copies)
}

// TerminalForExt maps an output file extension to its gnuplot terminal.
func TerminalForExt(ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return "pngcairo", nil
	case ".svg":
		return "svg", nil
	case ".pdf":
		return "pdfcairo", nil
	case ".eps":
		return "postscript eps enhanced color", nil
	}
	return "", fmt.Errorf("unsupported output format %q", ext)
}

// gridColor maps the grid style name to a gnuplot gray.
func gridColor(style string) string {
	switch style {
	case "Light":
		return "gray40"
	case "Dark":
		return "gray0"
	default:
		return "gray20"
	}
}

// checkNumeric validates an entry field: empty is allowed (falls back to
// autoscale / skipped margin), anything else must parse as a float.
func checkNumeric(value, field string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return fmt.Errorf("invalid number for %s: %q", field, value)
	}
	return nil
}

// Validate checks every manual numeric entry before script generation so a
// typo surfaces as one error instead of a gnuplot stderr dump.
func (o *Options) Validate() error {
	if o.XRange.Manual {
		if err := checkNumeric(o.XRange.Min, "X-Axis Min"); err != nil {
			return err
		}
		if err := checkNumeric(o.XRange.Max, "X-Axis Max"); err != nil {
			return err
		}
	}
	if o.YRange.Manual {
		if err := checkNumeric(o.YRange.Min, "Y1-Axis Min"); err != nil {
			return err
		}
		if err := checkNumeric(o.YRange.Max, "Y1-Axis Max"); err != nil {
			return err
		}
	}
	if o.Y2Range.Manual {
		if err := checkNumeric(o.Y2Range.Min, "Y2-Axis Min"); err != nil {
			return err
		}
		if err := checkNumeric(o.Y2Range.Max, "Y2-Axis Max"); err != nil {
			return err
		}
	}
	if o.LockAspect {
		if err := checkNumeric(o.AspectRatio, "Aspect Ratio"); err != nil {
			return err
		}
	}
	if o.CustomMargins {
		for _, m := range []struct{ v, name string }{
			{o.LMargin, "Left Margin"},
			{o.RMargin, "Right Margin"},
			{o.TMargin, "Top Margin"},
			{o.BMargin, "Bottom Margin"},
		} {
			if err := checkNumeric(m.v, m.name); err != nil {
				return err
			}
		}
	}
	return nil
}

// rangeSetting emits either a fixed range or autoscale for one axis.
func rangeSetting(axis string, r AxisRange) string {
	if r.Manual && strings.TrimSpace(r.Min) != "" && strings.TrimSpace(r.Max) != "" {
		return fmt.Sprintf("set %srange [%s:%s]\n", axis, strings.TrimSpace(r.Min), strings.TrimSpace(r.Max))
	}
	return fmt.Sprintf("set autoscale %s\n", axis)
}

func logSetting(axis string, on bool) string {
	if on {
		return "set logscale " + axis + "\n"
	}
	return "unset logscale " + axis + "\n"
}

// marginValue filters entries gnuplot would choke on: empty and bare signs.
func marginValue(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || v == "+" || v == "-" {
		return "", false
	}
	return v, true
}

// BuildScript renders the full gnuplot command stream for the given datasets,
// options and terminal, plus the inline data blocks for Clean datasets. Hidden
// datasets are skipped; zero visible datasets is an error.
func BuildScript(datasets []Dataset, opt Options, term Terminal) (script string, pipe string, err error) {
	if err := opt.Validate(); err != nil {
		return "", "", err
	}

	var y1Clauses, y2Clauses []string
	var pipeBuf strings.Builder
	cleaned := map[string]string{}

	for _, ds := range datasets {
		if !ds.Visible {
			continue
		}
		if ds.Clean {
			if _, ok := cleaned[ds.File]; !ok {
				content, err := datafile.CleanContent(ds.File)
				if err != nil {
					return "", "", err
				}
				cleaned[ds.File] = content
			}
		}
	}

	for _, ds := range datasets {
		if !ds.Visible {
			continue
		}
		source := "'" + ds.File + "'"
		if ds.Clean {
			source = "'-'"
			pipeBuf.WriteString(cleaned[ds.File])
			pipeBuf.WriteString("\ne\n")
		}
		clause := fmt.Sprintf("%s using %d:%d with %s title '%s'", source, ds.XCol, ds.YCol, ds.Style, ds.Title)
		if ds.Axis == "y2" {
			y2Clauses = append(y2Clauses, clause+" axes x1y2")
		} else {
			y1Clauses = append(y1Clauses, clause+" axes x1y1")
		}
	}
	if len(y1Clauses)+len(y2Clauses) == 0 {
		return "", "", ErrNoVisibleDatasets
	}
	plotCmd := "plot " + strings.Join(append(y1Clauses, y2Clauses...), ", ")

	var y2Settings string
	if len(y2Clauses) > 0 {
		y2Settings = "set ytics nomirror\nset y2tics\n"
		y2Settings += fmt.Sprintf("set y2label \"%s\"\n", opt.Y2Label)
		y2Settings += logSetting("y2", opt.Y2Log)
		y2Settings += rangeSetting("y2", opt.Y2Range)
	} else {
		y2Settings = "unset y2tics\nunset y2label\n"
	}

	var gridSettings string
	if opt.Grid {
		gridSettings = fmt.Sprintf("set grid back linetype 0 linecolor \"%s\"\n", gridColor(opt.GridStyle))
	} else {
		gridSettings = "unset grid\n"
	}

	logSettings := logSetting("x", opt.XLog) + logSetting("y", opt.YLog)
	rangeSettings := rangeSetting("x", opt.XRange) + rangeSetting("y", opt.YRange)

	var marginSettings string
	if opt.CustomMargins {
		for _, m := range []struct{ v, name string }{
			{opt.LMargin, "lmargin"},
			{opt.RMargin, "rmargin"},
			{opt.TMargin, "tmargin"},
			{opt.BMargin, "bmargin"},
		} {
			if v, ok := marginValue(m.v); ok {
				marginSettings += fmt.Sprintf("set %s %s\n", m.name, v)
			}
		}
	} else {
		marginSettings = "unset lmargin; unset rmargin; unset tmargin; unset bmargin\n"
	}

	aspectSettings := "set size noratio\n"
	if opt.LockAspect && strings.TrimSpace(opt.AspectRatio) != "" {
		aspectSettings = fmt.Sprintf("set size ratio %s\n", strings.TrimSpace(opt.AspectRatio))
	}

	font := opt.Font
	if font == "" {
		font = "Verdana,10"
	}

	termName := term.Name
	if term.Crop {
		termName += " crop"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "set terminal %s size %d,%d enhanced font '%s'\n", termName, term.Width, term.Height, font)
	fmt.Fprintf(&b, "set output '%s'\n", term.Output)
	b.WriteString(marginSettings)
	b.WriteString(aspectSettings)
	fmt.Fprintf(&b, "set xlabel \"%s\"\n", opt.XLabel)
	fmt.Fprintf(&b, "set ylabel \"%s\"\n", opt.YLabel)
	b.WriteString(logSettings)
	b.WriteString(gridSettings)
	b.WriteString(rangeSettings)
	b.WriteString(y2Settings)
	b.WriteString(plotCmd)
	b.WriteString("\nunset output\n")

	return b.String(), pipeBuf.String(), nil
}
