// Package domain defines the core business entities for motionsplit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Outcome: The closed set of classification results for one file
//   - Candidate: A JPEG file found by a candidate source
//   - ExtractionRecord: The result of processing one candidate
//   - BatchSummary: Counts and records for one extraction run
//   - AppSettings: Persisted extraction, frame sampling and watch settings
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
