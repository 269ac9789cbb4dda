package gnuplot

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/vijay-owncfd/gnuplot-gui/src/applog"
)

// Binary is the executable looked up on PATH. Overridable for tests.
var Binary = "gnuplot"

// Available reports whether the gnuplot executable can be found.
func Available() bool {
	_, err := exec.LookPath(Binary)
	return err == nil
}

// Run feeds the script (and any inline data blocks) to a gnuplot process and
// waits for it. A non-zero exit surfaces gnuplot's stderr as the error text,
// since that is where gnuplot explains what it disliked about the script.
func Run(ctx context.Context, script, pipe string) error {
	start := time.Now()
	defer applog.TimeTrack(start, "gnuplot run")

	input := script
	if pipe != "" {
		input += "\n" + pipe
	}
	cmd := exec.CommandContext(ctx, Binary)
	cmd.Stdin = strings.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("gnuplot: %s", msg)
	}
	return nil
}

// Render builds the script for the datasets/options/terminal and runs it.
func Render(ctx context.Context, datasets []Dataset, opt Options, term Terminal) error {
	script, pipe, err := BuildScript(datasets, opt, term)
	if err != nil {
		return err
	}
	applog.Debugf("rendering %d-byte script to %s (%s)", len(script), term.Output, term.Name)
	return Run(ctx, script, pipe)
}
