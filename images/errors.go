package images

import "github.com/pkg/errors"

// Error taxonomy shared by every package in the module. Callers match with
// errors.Is; the wrapped message carries the offending value.
var (
	// ErrInvalidArgument reports a contract violation by the caller: a negative
	// radius, malformed geometry or mismatched images. It is always returned
	// before any destination sample is written.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedType reports a sample type outside the supported set.
	ErrUnsupportedType = errors.New("unsupported sample type")
)

// invalidf wraps ErrInvalidArgument with a formatted message.
func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
