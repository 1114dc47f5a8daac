package scene

import "github.com/pkg/errors"

var (
	ErrUndefinedVariable    = errors.New("undefined variable")
	ErrNoMatchingAnimation  = errors.New("no matching animation")
	ErrOverlappingAnimation = errors.New("overlapping animation")
	ErrInvalidAnimation     = errors.New("animation ends before it starts")
	ErrUnsupportedCommand   = errors.New("unsupported command")
)
