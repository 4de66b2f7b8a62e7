// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CandidateSource: Finds JPEG files in a directory
//   - MediaStore: Reads candidates and writes extracted videos
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Extraction history. Without it, nothing is recorded.
//   - CandidateWatcher: Watch mode. Without it, watch is unavailable.
//   - FrameSampler: Frame sampling. Without it, sampling fails with ErrNotConfigured.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
