package session

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/vijay-owncfd/gnuplot-gui/src/applog"
	"github.com/vijay-owncfd/gnuplot-gui/src/gnuplot"
)

// SchemaVersion is bumped whenever the session file layout changes in a way
// older binaries cannot read.
const SchemaVersion = 1

// TabConfig is everything needed to rebuild one plot tab.
type TabConfig struct {
	Title     string            `json:"title"`
	Datasets  []gnuplot.Dataset `json:"datasets"`
	Options   gnuplot.Options   `json:"options"`
	RefreshMS int               `json:"refresh_ms"`
	Transient bool              `json:"transient"` // timer was running when saved
}

// Session is the persisted set of tabs, in display order.
type Session struct {
	SchemaVersion int         `json:"schema_version"`
	SavedAt       time.Time   `json:"saved_at"`
	Tabs          []TabConfig `json:"tabs"`
}

// Save writes the session as indented JSON. The schema version and timestamp
// are stamped here, not by the caller.
func Save(path string, s *Session) error {
	if s == nil || len(s.Tabs) == 0 {
		return fmt.Errorf("refusing to save an empty session")
	}
	s.SchemaVersion = SchemaVersion
	s.SavedAt = time.Now()
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing session %s: %w", path, err)
	}
	applog.Infof("saved session with %d tab(s) to %s", len(s.Tabs), path)
	return nil
}

// Load reads and checks a session file. Files written by a newer binary are
// rejected rather than half-understood.
func Load(path string) (*Session, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", path, err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", path, err)
	}
	if s.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("session %s has schema version %d, this build understands up to %d", path, s.SchemaVersion, SchemaVersion)
	}
	if len(s.Tabs) == 0 {
		return nil, fmt.Errorf("session %s contains no tabs", path)
	}
	applog.Infof("loaded session with %d tab(s) from %s", len(s.Tabs), path)
	return &s, nil
}
