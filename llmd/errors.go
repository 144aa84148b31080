package llmd

import "errors"

// Sentinel errors returned at the package's I/O boundary. [Compile] itself
// never errors: the core is tolerant of any input string by design.
var (
	// ErrReadInput indicates a source file or stream could not be read.
	ErrReadInput = errors.New("read input")
	// ErrWriteOutput indicates compiled output could not be written.
	ErrWriteOutput = errors.New("write output")
	// ErrInvalidOption indicates an invalid configuration value.
	ErrInvalidOption = errors.New("invalid option")
)
