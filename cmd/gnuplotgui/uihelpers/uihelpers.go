package uihelpers

import (
	"fmt"
	"strings"
)

// ComputePlotDimensions applies the width/height clamp rules used for the
// rendered plot panel. Input: desired raw width/height (e.g., canvas size).
// Returns clamped width & height handed to the gnuplot terminal.
func ComputePlotDimensions(rawW, rawH int) (int, int) {
	w := rawW
	if w < 320 {
		w = 320
	}
	h := rawH
	if h < 240 {
		h = 240
	}
	// keep terminals from exploding on pathological canvas sizes
	if w > 4096 {
		w = 4096
	}
	if h > 4096 {
		h = 4096
	}
	return w, h
}

// DefaultTabTitle names the n-th created tab.
func DefaultTabTitle(n int) string {
	return fmt.Sprintf("Plot %d", n)
}

// NextColumnTitle derives a duplicate's series title when header detection
// yields nothing: strip a previous "(col N)" suffix and append the new column.
func NextColumnTitle(title string, col int) string {
	base := title
	if idx := strings.Index(title, " (col"); idx >= 0 {
		base = title[:idx]
	}
	return fmt.Sprintf("%s (col %d)", base, col)
}

// DatasetSummary is the one-line description shown in the dataset list.
func DatasetSummary(file string, xCol, yCol int, axis, style, title string) string {
	ax := "Y1"
	if strings.EqualFold(axis, "y2") {
		ax = "Y2"
	}
	return fmt.Sprintf("%s  %d:%d  %s  %s  %s", file, xCol, yCol, ax, style, title)
}
