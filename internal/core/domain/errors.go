package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown setting key or output format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrExtractionInProgress indicates a batch is already running for a directory.
	ErrExtractionInProgress = errors.New("extraction in progress")

	// ErrNotConfigured indicates an optional collaborator was not provided.
	ErrNotConfigured = errors.New("not configured")

	// ErrOutputExists indicates a different video already exists at the
	// output path and overwriting is disabled.
	ErrOutputExists = errors.New("output file exists")

	// Classification Errors.
	// Each maps to exactly one non-success Outcome.

	// ErrNotAJpeg indicates the buffer has no JPEG end-of-image marker.
	ErrNotAJpeg = errors.New("not a jpeg: no end-of-image marker")

	// ErrNotFlaggedAsMotion indicates the motion check was requested
	// and no motion marker was found in the XMP metadata.
	ErrNotFlaggedAsMotion = errors.New("not flagged as motion photo")

	// ErrNoContainerFound indicates no appended video container was located
	// after the image, or the candidate failed the sanity checks.
	ErrNoContainerFound = errors.New("no appended video container found")

	// Frame Sampling Errors.

	// ErrExecutableNotFound indicates the external media executable is missing.
	ErrExecutableNotFound = errors.New("media executable not found")

	// ErrFrameSampling indicates the external media executable exited non-zero.
	ErrFrameSampling = errors.New("frame sampling failed")
)
