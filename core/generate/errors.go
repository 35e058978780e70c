// Package generate holds the pieces shared by the per-instance generators:
// error kinds of the batch policy and the tabular output format.
package generate

import "errors"

var (
	// ErrMissingInput marks a required input file that could not be
	// opened. The instance is abandoned and the batch continues.
	ErrMissingInput = errors.New("missing input")

	// ErrWriteFailure marks an unwritable output destination. The
	// instance is abandoned and the batch continues.
	ErrWriteFailure = errors.New("write failure")

	// ErrAbortBatch wraps a failure that stops the remaining batch, not
	// just the current instance. The original tool chain dies on a
	// missing base registry in the availability and credit generators
	// while the other generators skip the instance; whether that was
	// intended is unknown, so the behavior is kept and tested as is.
	ErrAbortBatch = errors.New("abort batch")
)
