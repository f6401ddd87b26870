package softrast

import "errors"

// Sentinel errors returned by New and NewTarget. They are wrapped with
// context; match them with errors.Is.
var (
	// ErrNilProgram is returned when New receives a nil program.
	ErrNilProgram = errors.New("softrast: nil program")

	// ErrUnsupportedTopology is returned for topologies other than line
	// and triangle lists.
	ErrUnsupportedTopology = errors.New("softrast: unsupported primitive topology")

	// ErrUnsupportedState is returned for state combinations the pipeline
	// cannot execute, such as lines with smooth interpolation.
	ErrUnsupportedState = errors.New("softrast: unsupported pipeline state")

	// ErrMultisample is returned when more than one sample per pixel is
	// requested.
	ErrMultisample = errors.New("softrast: multisampling is not supported")

	// ErrLayout is returned when a program declares more attributes or
	// derivatives than the pipeline carries.
	ErrLayout = errors.New("softrast: invalid program layout")

	// ErrInvalidSize is returned by NewTarget for unusable dimensions.
	ErrInvalidSize = errors.New("softrast: invalid framebuffer size")
)
