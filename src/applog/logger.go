package applog

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// LogLevel orders message severities; messages below the active level are
// dropped.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelByName = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

// The level is a process-wide atomic so widget callbacks and render
// goroutines can log without coordination.
var activeLevel int32 = int32(LevelInfo)

var baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)

// SetLogLevel applies a level by name (debug, info, warn, error). Unknown
// names leave the current level untouched.
func SetLogLevel(s string) {
	l, ok := levelByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	atomic.StoreInt32(&activeLevel, int32(l))
}

func level() LogLevel { return LogLevel(atomic.LoadInt32(&activeLevel)) }

func prefix(l LogLevel) string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "INFO"
}

// logf prints a call with no args as a plain message: a pre-assembled string
// containing literal % must not go back through fmt.
func logf(l LogLevel, format string, args ...interface{}) {
	if level() > l {
		return
	}
	if len(args) == 0 {
		baseLogger.Printf("[%s] %s", prefix(l), format)
		return
	}
	baseLogger.Printf("[%s] %s", prefix(l), fmt.Sprintf(format, args...))
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the time since start at debug level, for deferred use at the
// top of a slow call.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
