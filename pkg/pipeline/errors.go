package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPNG is returned when a file does not carry the PNG signature.
	ErrNotPNG = errors.New("not recognized as a PNG file")

	// ErrRGBWithoutAlpha is returned for truecolor input that lacks the alpha channel.
	ErrRGBWithoutAlpha = errors.New("input file is RGB but must be RGBA (lacks the alpha channel)")

	// ErrNotRGBA is returned for any other non-RGBA channel layout.
	ErrNotRGBA = errors.New("channel layout of input file must be RGBA")

	// ErrNotDirectory is returned when a frame directory names a regular file.
	ErrNotDirectory = errors.New("not a directory")

	// ErrShapeMismatch is returned when a frame differs in size or pixel format from frame 0.
	ErrShapeMismatch = errors.New("frame does not match the size and layout of the first frame")
)

// ErrorKind classifies a run failure.
type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindFormat
	KindValidation
	KindUsage
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	case KindValidation:
		return "validation"
	case KindUsage:
		return "usage"
	default:
		return "unknown"
	}
}

// Error is a fatal run failure naming the operation and the offending path or value.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Op, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UsageError wraps err as a KindUsage failure of op on path.
func UsageError(op, path string, err error) error {
	return &Error{Kind: KindUsage, Op: op, Path: path, Err: err}
}

// IOError wraps err as a KindIO failure of op on path.
func IOError(op, path string, err error) error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

// FormatError wraps err as a KindFormat failure of op on path.
func FormatError(op, path string, err error) error {
	return &Error{Kind: KindFormat, Op: op, Path: path, Err: err}
}

// ValidationError wraps err as a KindValidation failure of op on path.
func ValidationError(op, path string, err error) error {
	return &Error{Kind: KindValidation, Op: op, Path: path, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
