package document

import "errors"

// Sentinel errors returned by document operations.
var (
	// ErrPosOutOfRange indicates a line or column outside the
	// addressable range of the document.
	ErrPosOutOfRange = errors.New("position out of range")

	// ErrRangeInvalid indicates a range whose start comes after its end.
	ErrRangeInvalid = errors.New("invalid range: start after end")

	// ErrBatchUnbalanced indicates an EndBatchEdit call with no open
	// batch-edit scope.
	ErrBatchUnbalanced = errors.New("unbalanced batch edit")
)
