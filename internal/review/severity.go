package review

import "fmt"

// Severity is the urgency level attached to an Issue.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError

	numSeverities
)

var severityNames = [numSeverities]string{
	SeverityInfo:    "info",
	SeverityWarning: "warning",
	SeverityError:   "error",
}

// Rank returns the priority base value for s. Lower means more urgent:
// error=1, warning=3, info=5. Severities outside the enum rank 10 so they
// sort after everything recognized.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 1
	case SeverityWarning:
		return 3
	case SeverityInfo:
		return 5
	default:
		return 10
	}
}

// Valid reports whether s is a recognized severity.
func (s Severity) Valid() bool {
	return s >= 0 && s < numSeverities
}

func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid severity %d", int(s))
	}
	return []byte(severityNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q", string(text))
	}
	*s = sev
	return nil
}

// ParseSeverity resolves a severity name. The second return is false for
// unrecognized names.
func ParseSeverity(name string) (Severity, bool) {
	for i, n := range severityNames {
		if n == name {
			return Severity(i), true
		}
	}
	return 0, false
}

// MeetsThreshold returns true if s is at or above the named threshold
// severity. A threshold of "none" or "" never matches.
func MeetsThreshold(s Severity, threshold string) bool {
	if threshold == "none" || threshold == "" {
		return false
	}
	t, ok := ParseSeverity(threshold)
	if !ok {
		return false
	}
	return s.Rank() <= t.Rank()
}
