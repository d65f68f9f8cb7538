package engine

import "errors"

var (
	// ErrInvalidBuffer reports an unusable input buffer: empty, non-finite
	// samples, or an out-of-range sample rate.
	ErrInvalidBuffer = errors.New("engine: invalid buffer")

	// ErrDeviceUnavailable reports that a configured compute accelerator
	// could not serve a request.
	ErrDeviceUnavailable = errors.New("engine: device unavailable")

	// ErrCancelled reports that the caller's context ended before the
	// request completed. No partial output is produced.
	ErrCancelled = errors.New("engine: cancelled")

	// ErrProcessingFailed reports a failure inside chain execution, such
	// as a stage emitting non-finite samples.
	ErrProcessingFailed = errors.New("engine: processing failed")
)
