package transient

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vijay-owncfd/gnuplot-gui/src/applog"
)

// DefaultIntervalMS is the interval the UI pre-fills for new tabs.
const DefaultIntervalMS = 1000

// ParseInterval validates the auto-replot interval entry: a positive whole
// number of milliseconds.
func ParseInterval(s string) (time.Duration, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("interval must be a whole number of milliseconds: %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("interval must be positive, got %d", n)
	}
	return time.Duration(n) * time.Millisecond, nil
}

// Refresher re-fires a callback at a fixed interval until stopped. Each plot
// tab owns at most one; Start on a running refresher restarts it.
type Refresher struct {
	mu     sync.Mutex
	stop   chan struct{}
	onTick func()
}

// New returns a stopped Refresher for the given callback.
func New(onTick func()) *Refresher {
	return &Refresher{onTick: onTick}
}

// Running reports whether the ticker goroutine is live.
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

// Start begins ticking at the interval. A running refresher is stopped first
// so an interval change takes effect immediately. The stop-and-replace happens
// under one lock acquisition; concurrent Starts cannot strand a goroutine.
func (r *Refresher) Start(interval time.Duration) {
	r.mu.Lock()
	if r.stop != nil {
		close(r.stop)
	}
	stop := make(chan struct{})
	r.stop = stop
	r.mu.Unlock()
	applog.Debugf("transient refresh started, interval=%s", interval)
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				r.onTick()
			}
		}
	}()
}

// Stop halts the ticker. Safe to call when already stopped.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
		applog.Debugf("transient refresh stopped")
	}
}
