package motionphoto

import (
	"bytes"
	"encoding/binary"
)

// ContainerSignature is the box type of the leading box of an ISO-BMFF file.
const ContainerSignature = "ftyp"

// MinBoxSize is the smallest plausible size of a leading "ftyp" box.
const MinBoxSize = 16

// boxHeaderSize is the 4-byte size field plus the 4-byte box type.
const boxHeaderSize = 8

var ftyp = []byte(ContainerSignature)

// LocateContainer returns the absolute offset of the video container
// appended after boundary.
//
// The search region starts at boundary, or at len(buf)-window when window is
// positive and that is later. Only the first "ftyp" in the region is
// considered; the candidate starts 4 bytes earlier at its size field. The
// candidate is rejected when it starts before boundary, when fewer than 8
// bytes remain for the box header, or when the size field is below
// MinBoxSize.
func LocateContainer(buf []byte, boundary, window int) (int, bool) {
	if boundary < 0 || boundary > len(buf) {
		return 0, false
	}

	from := searchStart(len(buf), boundary, window)
	i := bytes.Index(buf[from:], ftyp)
	if i < 0 {
		return 0, false
	}

	start := from + i - 4
	if start < boundary {
		return 0, false
	}
	if start+boxHeaderSize > len(buf) {
		return 0, false
	}
	if binary.BigEndian.Uint32(buf[start:start+4]) < MinBoxSize {
		return 0, false
	}
	return start, true
}

// searchStart returns where the container search begins.
func searchStart(n, boundary, window int) int {
	if window <= 0 {
		return boundary
	}
	if tail := n - window; tail > boundary {
		return tail
	}
	return boundary
}
