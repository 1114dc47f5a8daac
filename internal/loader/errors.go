package loader

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrArgCount       = errors.New("wrong number of arguments")
	ErrBadNumber      = errors.New("invalid number")
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadPath        = errors.New("expected \" enclosed file path")
	ErrMissingFile    = errors.New("file does not exist")
	ErrMalformedMesh  = errors.New("malformed mesh")
	ErrTruncated      = errors.New("ran out of lines")
	ErrIndexRange     = errors.New("vertex index out of range")
)

// ParseError locates a load failure. Line is 1-based; zero means the error
// concerns the file as a whole.
type ParseError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s:%d: %q: %v", e.Path, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
