package diag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSeverity is returned by ParseSeverity for names outside LOW..CRITICAL.
var ErrUnknownSeverity = errors.New("unknown severity")

// Severity defines the importance of an issue. The zero value is the lowest level,
// so comparisons are plain integer comparisons.
type Severity uint8

const (
	SevLow Severity = iota
	SevMedium
	SevHigh
	// SevCritical marks a defect that fails the run.
	SevCritical
)

// Severities lists every level, highest first (display order).
var Severities = [...]Severity{SevCritical, SevHigh, SevMedium, SevLow}

func (s Severity) String() string {
	switch s {
	case SevLow:
		return "LOW"
	case SevMedium:
		return "MEDIUM"
	case SevHigh:
		return "HIGH"
	case SevCritical:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// ParseSeverity accepts a level name in any case.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return SevLow, nil
	case "MEDIUM":
		return SevMedium, nil
	case "HIGH":
		return SevHigh, nil
	case "CRITICAL":
		return SevCritical, nil
	}
	return 0, fmt.Errorf("%w: %q (want LOW, MEDIUM, HIGH or CRITICAL)", ErrUnknownSeverity, s)
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
