package curve

import "fmt"

// StatusCode identifies an advisory problem found during precalculation.
type StatusCode int

const (
	// StatusNaNDetected means an fx produced NaN; the samples were replaced by 0.
	StatusNaNDetected StatusCode = iota + 1
	// StatusFxDefinitionNotFound means a section references an unknown definition.
	StatusFxDefinitionNotFound
	// StatusFxLengthNotPositive means a section covers no samples.
	StatusFxLengthNotPositive
)

func (c StatusCode) String() string {
	switch c {
	case StatusNaNDetected:
		return "curve has NaN"
	case StatusFxDefinitionNotFound:
		return "fx definition not found"
	case StatusFxLengthNotPositive:
		return "fx section length is non-positive"
	default:
		return fmt.Sprintf("StatusCode(%d)", int(c))
	}
}

// StatusLevel grades a status.
type StatusLevel int

const (
	LevelWarning StatusLevel = iota
	LevelError
)

func (l StatusLevel) String() string {
	if l == LevelError {
		return "error"
	}
	return "warning"
}

// Status is one advisory diagnostic attached to a curve.
type Status struct {
	Code  StatusCode
	Level StatusLevel
	// Section is the index of the fx section concerned.
	Section int
	Message string
}

func (s Status) String() string {
	return fmt.Sprintf("%s: %s (section %d): %s", s.Level, s.Code, s.Section, s.Message)
}
