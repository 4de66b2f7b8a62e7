package domain

import "fmt"

// Outcome is the closed set of results of classifying one file.
// Every non-success outcome is an expected, recoverable result.
type Outcome int

const (
	// OutcomeUnclassified is the zero value. A record keeps it when the file
	// could not be read, so it is never mistaken for a success.
	OutcomeUnclassified Outcome = iota

	// OutcomeSuccess means an appended container was located.
	OutcomeSuccess

	// OutcomeNotAJpeg means no end-of-image marker was found.
	OutcomeNotAJpeg

	// OutcomeNotFlaggedAsMotion means the motion check was enabled
	// and the metadata carried no motion marker.
	OutcomeNotFlaggedAsMotion

	// OutcomeNoContainerFound means no container signature passed the checks.
	OutcomeNoContainerFound
)

// String returns the string representation.
func (o Outcome) String() string {
	switch o {
	case OutcomeUnclassified:
		return "unclassified"
	case OutcomeSuccess:
		return "success"
	case OutcomeNotAJpeg:
		return "not_a_jpeg"
	case OutcomeNotFlaggedAsMotion:
		return "not_flagged_as_motion"
	case OutcomeNoContainerFound:
		return "no_container_found"
	default:
		return "unknown"
	}
}

// IsValid returns true if the outcome is a classification result.
// OutcomeUnclassified is not one.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeSuccess, OutcomeNotAJpeg, OutcomeNotFlaggedAsMotion, OutcomeNoContainerFound:
		return true
	default:
		return false
	}
}

// Err returns the sentinel error for a non-success outcome, or nil on success.
func (o Outcome) Err() error {
	switch o {
	case OutcomeNotAJpeg:
		return ErrNotAJpeg
	case OutcomeNotFlaggedAsMotion:
		return ErrNotFlaggedAsMotion
	case OutcomeNoContainerFound:
		return ErrNoContainerFound
	default:
		return nil
	}
}

// Description returns a human-readable description of the outcome.
func (o Outcome) Description() string {
	switch o {
	case OutcomeUnclassified:
		return "Not classified"
	case OutcomeSuccess:
		return "Motion video extracted"
	case OutcomeNotAJpeg:
		return "Not a valid JPEG (no EOI marker found)"
	case OutcomeNotFlaggedAsMotion:
		return "No motion photo XMP tags found"
	case OutcomeNoContainerFound:
		return "No MP4 data found after JPEG"
	default:
		return unknownDescription
	}
}

// ParseOutcome converts a string produced by Outcome.String back to an Outcome.
func ParseOutcome(s string) (Outcome, bool) {
	if s == OutcomeUnclassified.String() {
		return OutcomeUnclassified, true
	}
	for _, o := range AllOutcomes() {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// AllOutcomes returns every classification outcome in declaration order.
func AllOutcomes() []Outcome {
	return []Outcome{
		OutcomeSuccess,
		OutcomeNotAJpeg,
		OutcomeNotFlaggedAsMotion,
		OutcomeNoContainerFound,
	}
}

// MarshalText encodes the outcome as its string form.
func (o Outcome) MarshalText() ([]byte, error) {
	if !o.IsValid() && o != OutcomeUnclassified {
		return nil, fmt.Errorf("%w: outcome %d", ErrInvalidInput, int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText decodes an outcome from its string form.
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, ok := ParseOutcome(string(text))
	if !ok {
		return fmt.Errorf("%w: outcome %q", ErrInvalidInput, text)
	}
	*o = parsed
	return nil
}
