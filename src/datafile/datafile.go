package datafile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vijay-owncfd/gnuplot-gui/src/applog"
)

// Delimiter identifies the field separator of a data table.
type Delimiter int

const (
	DelimWhitespace Delimiter = iota
	DelimComma
)

func (d Delimiter) String() string {
	if d == DelimComma {
		return "comma"
	}
	return "whitespace"
}

// Table describes a delimited text log file at the moment it was scanned.
// Size/ModTime form the growth snapshot used by transient replotting.
type Table struct {
	Path    string
	Delim   Delimiter
	Columns []string // cleaned header names; column i (1-based) is Columns[i-1]
	NumCols int
	Rows    int // data lines seen at scan time
	Size    int64
	ModTime time.Time
}

// parenReplacer strips the vector-quantity convention: a header (or data) field
// like "forces(pressure viscous porous)" splits into its component names.
var parenReplacer = strings.NewReplacer("(", " ", ")", " ")

// splitFields splits a raw line according to the delimiter, dropping empties.
func splitFields(line string, d Delimiter) []string {
	if d == DelimComma {
		parts := strings.Split(line, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return strings.Fields(line)
}

// CleanHeaderFields strips vector parentheses from a header line and returns
// its individual field names. The leading comment marker is removed first.
func CleanHeaderFields(line string, d Delimiter) []string {
	line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
	line = parenReplacer.Replace(line)
	return splitFields(line, d)
}

// allNumeric reports whether every field parses as a float.
func allNumeric(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return false
		}
	}
	return true
}

// DetectDelimiter inspects a line and picks comma when present, else whitespace.
// The two delimiters here are the only supported formats.
func DetectDelimiter(line string) Delimiter {
	if strings.Contains(line, ",") {
		return DelimComma
	}
	return DelimWhitespace
}

// Scan reads the file once and returns its Table description: delimiter,
// cleaned header names, column count, row count and the growth snapshot.
//
// Header discovery: the last '#'-comment line before the first data line wins
// (OpenFOAM writes several comment lines; the column header is the final one).
// For comment-free comma files, a first row that is not all-numeric is taken
// as the header.
func Scan(path string) (*Table, error) {
	start := time.Now()
	defer applog.TimeTrack(start, "datafile scan "+path)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}

	t := &Table{Path: path, Size: st.Size(), ModTime: st.ModTime()}
	var lastComment string
	sawData := false

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if !sawData {
				lastComment = line
			}
			continue
		}
		if !sawData {
			t.Delim = DetectDelimiter(line)
			fields := splitFields(parenReplacer.Replace(line), t.Delim)
			if lastComment != "" {
				t.Columns = CleanHeaderFields(lastComment, t.Delim)
			} else if !allNumeric(splitFields(line, t.Delim)) {
				// Comment-free file whose first row is textual: header row.
				t.Columns = CleanHeaderFields(line, t.Delim)
				sawData = true
				continue
			}
			t.NumCols = len(fields)
			sawData = true
		}
		t.Rows++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	if !sawData && len(t.Columns) == 0 {
		return nil, fmt.Errorf("no data or header found in %s", path)
	}
	if t.NumCols == 0 {
		t.NumCols = len(t.Columns)
	}
	applog.Debugf("scanned %s: delim=%s cols=%d rows=%d", path, t.Delim, t.NumCols, t.Rows)
	return t, nil
}

// ColumnName returns the cleaned header name for a 1-based column index, or
// "" when no header covers that column.
func (t *Table) ColumnName(col int) string {
	if t == nil || col < 1 || col > len(t.Columns) {
		return ""
	}
	return t.Columns[col-1]
}

// HeaderName scans a file and resolves a 1-based column to its header name.
// Convenience used when auto-titling datasets; errors collapse to "".
func HeaderName(path string, col int) string {
	t, err := Scan(path)
	if err != nil {
		return ""
	}
	return t.ColumnName(col)
}

// CleanContent returns the file content with vector parentheses replaced by
// spaces, ready to be piped to gnuplot as an inline '-' data block.
func CleanContent(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s for cleaning: %w", path, err)
	}
	return parenReplacer.Replace(string(b)), nil
}

// Snapshot records just the growth-tracking fields without parsing the file.
// Transient replots stat against this to skip renders of unchanged files.
func Snapshot(path string) (*Table, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &Table{Path: path, Size: st.Size(), ModTime: st.ModTime()}, nil
}

// Changed reports whether the file grew or was rewritten since the snapshot.
// A stat failure counts as changed so the caller re-reads and surfaces the error.
func (t *Table) Changed() bool {
	if t == nil {
		return true
	}
	st, err := os.Stat(t.Path)
	if err != nil {
		return true
	}
	return st.Size() != t.Size || !st.ModTime().Equal(t.ModTime)
}

// ReadColumns extracts two numeric columns (1-based) from the file, skipping
// comments, headers and rows whose fields fail to parse. When clean is set,
// vector parentheses are stripped before splitting, matching what gnuplot
// would see from CleanContent.
func ReadColumns(path string, xCol, yCol int, clean bool) (xs, ys []float64, err error) {
	if xCol < 1 || yCol < 1 {
		return nil, nil, fmt.Errorf("column indexes are 1-based: x=%d y=%d", xCol, yCol)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var delim Delimiter
	delimSet := false
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if clean {
			line = parenReplacer.Replace(line)
		}
		if !delimSet {
			delim = DetectDelimiter(line)
			delimSet = true
		}
		fields := splitFields(line, delim)
		if xCol > len(fields) || yCol > len(fields) {
			continue
		}
		x, errX := strconv.ParseFloat(fields[xCol-1], 64)
		y, errY := strconv.ParseFloat(fields[yCol-1], 64)
		if errX != nil || errY != nil {
			// header row or malformed line
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading columns from %s: %w", path, err)
	}
	return xs, ys, nil
}
