package domain

import (
	"fmt"
	"strings"
)

// Level is a syslog severity as used by GELF.
// Lower values are more severe.
type Level int

const (
	LevelEmergency Level = iota
	LevelAlert
	LevelCritical
	LevelError
	LevelWarning
	LevelNotice
	LevelInformational
	LevelDebug
)

var levelNames = [...]string{
	LevelEmergency:     "emergency",
	LevelAlert:         "alert",
	LevelCritical:      "critical",
	LevelError:         "error",
	LevelWarning:       "warning",
	LevelNotice:        "notice",
	LevelInformational: "info",
	LevelDebug:         "debug",
}

// String returns the lowercase level name.
func (l Level) String() string {
	if l < LevelEmergency || l > LevelDebug {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// Enabled reports whether a record at level l passes a minimum level of min.
func (l Level) Enabled(min Level) bool {
	return l <= min
}

// ParseLevel converts a level name or common alias to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "emergency", "emerg", "panic":
		return LevelEmergency, nil
	case "alert":
		return LevelAlert, nil
	case "critical", "crit", "fatal":
		return LevelCritical, nil
	case "error", "err":
		return LevelError, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "notice":
		return LevelNotice, nil
	case "info", "informational":
		return LevelInformational, nil
	case "debug", "trace":
		return LevelDebug, nil
	}
	return LevelDebug, fmt.Errorf("unknown level %q", s)
}
