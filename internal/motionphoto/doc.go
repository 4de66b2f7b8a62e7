// Package motionphoto locates the video container appended to a motion photo JPEG.
//
// Every function in this package is pure: it takes an immutable byte buffer,
// performs no I/O and holds no state, so callers may classify many files
// concurrently without coordination.
//
// # Pipeline
//
//   - LocateBoundary finds the byte just past the first JPEG end-of-image marker.
//   - ScanMetadata walks marker segments up to start-of-scan and returns XMP payloads.
//   - IsMotionFlagged substring-tests those payloads for known motion tags.
//   - LocateContainer finds an ISO-BMFF "ftyp" box at or after the boundary.
//
// Classify chains the four steps and reports a domain.Outcome.
//
// The container's declared box size is never compared with the bytes that
// follow it. Cameras write inaccurate sizes in the leading box of the
// appended video and those files still play.
package motionphoto
