package sid

import "fmt"

// ConfigErrorKind enumerates the ways a Config can fail validation.
// Modeled as a small closed enum so callers can switch on the kind rather
// than string-matching an error, the way the teacher's sid_parser.go
// distinguishes format errors from I/O errors.
type ConfigErrorKind int

const (
	ErrInvalidSampleRate ConfigErrorKind = iota
	ErrInvalidPassband
	ErrKernelAllocation
)

func (k ConfigErrorKind) String() string {
	switch k {
	case ErrInvalidSampleRate:
		return "invalid sample rate"
	case ErrInvalidPassband:
		return "invalid passband"
	case ErrKernelAllocation:
		return "resampling kernel allocation failed"
	default:
		return "unknown config error"
	}
}

// ConfigError reports why Configure/NewChip rejected a Config. On a
// ConfigError the chip's existing configuration and all derived tables are
// left untouched: validation happens on a copy before anything is swapped in.
type ConfigError struct {
	Kind ConfigErrorKind
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func configErr(kind ConfigErrorKind, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
