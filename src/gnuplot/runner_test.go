package gnuplot

import (
	"context"
	"testing"
)

func TestAvailableWithBogusBinary(t *testing.T) {
	saved := Binary
	Binary = "gnuplot-definitely-not-installed"
	defer func() { Binary = saved }()
	if Available() {
		t.Fatalf("bogus binary reported available")
	}
	if err := Run(context.Background(), "plot sin(x)\n", ""); err == nil {
		t.Fatalf("expected error running missing binary")
	}
}

func TestRenderPropagatesBuildErrors(t *testing.T) {
	// No visible datasets fails before any process is started.
	err := Render(context.Background(), nil, DefaultOptions(), term())
	if err == nil {
		t.Fatalf("expected build error")
	}
}
