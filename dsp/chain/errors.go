package chain

import "errors"

var (
	// ErrInvalidParameter is returned when a stage configuration carries an
	// out-of-range or non-finite parameter. It is detected during chain
	// construction, before any buffer is touched.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnknownStage is returned when an operation references a stage type
	// that is not registered.
	ErrUnknownStage = errors.New("unknown stage type")

	// ErrNonFiniteOutput is returned when a stage produces NaN or Inf
	// samples. The chain treats this as a failure of the whole execution,
	// never as a value to silently absorb.
	ErrNonFiniteOutput = errors.New("non-finite stage output")
)
