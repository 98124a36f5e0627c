package imaging

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Error kinds. Every error returned by this package wraps exactly one of these,
// so callers can branch with errors.Is(err, imaging.ErrBounds).
var (
	// ErrDecode reports unrecognized or structurally invalid encoded bytes.
	ErrDecode = errors.New("decode error")

	// ErrEncode reports an encoder rejecting the pixel buffer/format combination.
	ErrEncode = errors.New("encode error")

	// ErrBounds reports a region request outside the source dimensions.
	ErrBounds = errors.New("bounds error")

	// ErrAnimation reports an animation-only operation on a source with at most one frame.
	ErrAnimation = errors.New("animation error")

	// ErrIO reports a file-system failure while loading or saving.
	ErrIO = errors.New("io error")

	// ErrInput reports invalid arguments, such as an empty image list.
	ErrInput = errors.New("input error")
)

// Error is the concrete error type returned by every operation in this package.
type Error struct {
	// Op is the operation that failed, e.g. "crop" or "merge_gif".
	Op string

	// Kind is one of the ErrXxx sentinels above.
	Kind error

	// Err is the underlying cause. It carries a stack trace; format with %+v to see it.
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Format prints the cause's stack trace for %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') && e.Err != nil {
		fmt.Fprintf(s, "%s: %v: %+v", e.Op, e.Kind, e.Err)
		return
	}
	fmt.Fprint(s, e.Error())
}

// KindName returns a short lowercase name for the error family of err,
// or "internal" if err did not originate in this package.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrEncode):
		return "encode"
	case errors.Is(err, ErrBounds):
		return "bounds"
	case errors.Is(err, ErrAnimation):
		return "animation"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrInput):
		return "input"
	default:
		return "internal"
	}
}

func wrapErr(op string, kind, err error) error {
	var ie *Error
	if errors.As(err, &ie) {
		return err
	}
	return &Error{Op: op, Kind: kind, Err: pkgerrors.WithStack(err)}
}

func newErr(op string, kind error, format string, args ...interface{}) error {
	return &Error{Op: op, Kind: kind, Err: pkgerrors.Errorf(format, args...)}
}
