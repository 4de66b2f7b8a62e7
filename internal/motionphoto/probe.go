package motionphoto

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ProbeSignatures are ISO-BMFF box types looked for when diagnosing a tail.
var ProbeSignatures = []string{"ftyp", "moov", "mdat", "mvhd"}

// previewLen is how much of an XMP packet Preview shows.
const previewLen = 200

// SignatureHit records where a box type first occurs in the tail.
type SignatureHit struct {
	// Signature is the box type.
	Signature string `json:"signature" yaml:"signature"`

	// Offset is relative to the boundary.
	Offset int `json:"offset" yaml:"offset"`
}

// TailProbe describes the bytes appended after the image.
type TailProbe struct {
	// Remaining is the number of bytes after the boundary.
	Remaining int `json:"remaining" yaml:"remaining"`

	// Head is up to the first 50 bytes of the tail.
	Head []byte `json:"-" yaml:"-"`

	// Hits lists the first occurrence of each signature found, in
	// ProbeSignatures order.
	Hits []SignatureHit `json:"hits,omitempty" yaml:"hits,omitempty"`
}

// ProbeTail reports which container box types appear after boundary.
// It is used to explain why LocateContainer rejected a file.
func ProbeTail(buf []byte, boundary int) TailProbe {
	if boundary < 0 || boundary > len(buf) {
		return TailProbe{}
	}
	tail := buf[boundary:]
	probe := TailProbe{
		Remaining: len(tail),
		Head:      tail[:min(len(tail), 50)],
	}
	for _, sig := range ProbeSignatures {
		if i := bytes.Index(tail, []byte(sig)); i >= 0 {
			probe.Hits = append(probe.Hits, SignatureHit{Signature: sig, Offset: i})
		}
	}
	return probe
}

// Preview returns the first 200 bytes of an XMP packet as text,
// dropping invalid UTF-8.
func Preview(packet []byte) string {
	p := packet[:min(len(packet), previewLen)]
	if utf8.Valid(p) {
		return string(p)
	}
	return strings.ToValidUTF8(string(p), "")
}
