package applog

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	// Swap the base logger to capture output
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	defer func() { baseLogger = saved }()

	SetLogLevel("info")

	msg := "replot tab=Plot 2 file=postProcessing/residuals.dat rows=1841 (100% of visible) took 41ms"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "(100% of visible)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!o(MISSING)") || strings.Contains(out, "%!v(MISSING)") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	defer func() { baseLogger = saved }()

	SetLogLevel("warn")
	Debugf("hidden debug")
	Infof("hidden info")
	Warnf("shown warn")
	Errorf("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("below-level messages leaked: %s", out)
	}
	if !strings.Contains(out, "[WARN] shown warn") || !strings.Contains(out, "[ERROR] shown error") {
		t.Fatalf("expected warn+error lines, got: %s", out)
	}

	// Unknown level strings leave the current level untouched.
	SetLogLevel("verbose")
	if level() != LevelWarn {
		t.Fatalf("unknown level changed state: %v", level())
	}
	SetLogLevel("info")
}
