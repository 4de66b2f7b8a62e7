package motionphoto

import (
	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

// Options controls a classification pass.
type Options struct {
	// CheckMotionFlag requires an XMP motion marker before locating the container.
	CheckMotionFlag bool

	// TailWindow bounds the container search to the last N bytes.
	// domain.Unbounded searches the whole tail.
	TailWindow int
}

// Result is the outcome of classifying one buffer.
type Result struct {
	// Outcome is the classification result.
	Outcome domain.Outcome

	// Boundary is the offset just past the end-of-image marker.
	// Zero when Outcome is OutcomeNotAJpeg.
	Boundary int

	// ContainerOffset is the start of the appended container.
	// Only meaningful when Outcome is OutcomeSuccess.
	ContainerOffset int

	// XMPPackets is the number of XMP packets found. Zero unless the
	// motion check ran.
	XMPPackets int
}

// Err returns the domain sentinel for a non-success outcome.
func (r Result) Err() error {
	return r.Outcome.Err()
}

// Container returns the container bytes of buf, or nil unless Outcome is
// OutcomeSuccess. The slice aliases buf.
func (r Result) Container(buf []byte) []byte {
	if r.Outcome != domain.OutcomeSuccess || r.ContainerOffset > len(buf) {
		return nil
	}
	return buf[r.ContainerOffset:]
}

// Classify locates the boundary, optionally checks the motion flag and
// locates the appended container.
func Classify(buf []byte, opts Options) Result {
	boundary, ok := LocateBoundary(buf)
	if !ok {
		return Result{Outcome: domain.OutcomeNotAJpeg}
	}

	res := Result{Boundary: boundary}
	if opts.CheckMotionFlag {
		packets := ScanMetadata(buf)
		res.XMPPackets = len(packets)
		if !IsMotionFlagged(packets) {
			res.Outcome = domain.OutcomeNotFlaggedAsMotion
			return res
		}
	}

	offset, ok := LocateContainer(buf, boundary, opts.TailWindow)
	if !ok {
		res.Outcome = domain.OutcomeNoContainerFound
		return res
	}
	res.Outcome = domain.OutcomeSuccess
	res.ContainerOffset = offset
	return res
}
