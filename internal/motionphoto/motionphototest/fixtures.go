// Package motionphototest builds synthetic motion photo files for tests.
package motionphototest

import (
	"bytes"
	"encoding/binary"
)

// xmpNamespace prefixes every XMP APP1 payload.
const xmpNamespace = "http://ns.adobe.com/xap/1.0/"

// MotionXMP is a minimal XMP packet carrying a motion marker.
const MotionXMP = `<x:xmpmeta xmlns:x="adobe:ns:meta/"><rdf:Description GCamera:MotionPhoto="1" GCamera:MotionPhotoVersion="1"/></x:xmpmeta>`

// PlainXMP is an XMP packet without any motion marker.
const PlainXMP = `<x:xmpmeta xmlns:x="adobe:ns:meta/"><rdf:Description xmp:CreatorTool="Camera"/></x:xmpmeta>`

// Segment builds a JPEG marker segment with the given payload.
func Segment(marker byte, payload []byte) []byte {
	var b bytes.Buffer
	b.Write([]byte{0xFF, marker})
	var length [2]byte
	binary.BigEndian.PutUint16(length[:], uint16(len(payload)+2))
	b.Write(length[:])
	b.Write(payload)
	return b.Bytes()
}

// XMPSegment builds an APP1 segment carrying an XMP packet.
func XMPSegment(packet string) []byte {
	payload := append([]byte(xmpNamespace), 0)
	payload = append(payload, packet...)
	return Segment(0xE1, payload)
}

// JPEG assembles a minimal JPEG: SOI, the given header segments,
// a quantisation table, a start-of-scan with fake scan data, and EOI.
func JPEG(headers ...[]byte) []byte {
	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8})
	for _, h := range headers {
		b.Write(h)
	}
	b.Write(Segment(0xDB, []byte{0x00, 0x01, 0x02, 0x03}))
	b.Write(Segment(0xDA, []byte{0x01, 0x01, 0x00, 0x00, 0x3F, 0x00}))
	b.Write([]byte{0x12, 0x34, 0xFF, 0x00, 0x56, 0x78, 0x9A})
	b.Write([]byte{0xFF, 0xD9})
	return b.Bytes()
}

// Container assembles a 44-byte container whose leading box declares size.
func Container(size uint32) []byte {
	var b bytes.Buffer
	var sz [4]byte
	binary.BigEndian.PutUint32(sz[:], size)
	b.Write(sz[:])
	b.WriteString("ftypisom")
	b.Write([]byte{0x00, 0x00, 0x02, 0x00})
	b.WriteString("isomiso2mp41")
	b.Write([]byte{0x00, 0x00, 0x00, 0x10})
	b.WriteString("mdat")
	b.Write([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03, 0x04})
	return b.Bytes()
}

// MotionPhoto returns a flagged JPEG with a valid container appended,
// and the container bytes.
func MotionPhoto() (file, video []byte) {
	video = Container(32)
	return Concat(JPEG(XMPSegment(MotionXMP)), video), video
}

// UnflaggedMotionPhoto returns a JPEG without motion XMP but with a
// valid container appended, and the container bytes.
func UnflaggedMotionPhoto() (file, video []byte) {
	video = Container(32)
	return Concat(JPEG(XMPSegment(PlainXMP)), video), video
}

// StillPhoto returns a JPEG with nothing appended.
func StillPhoto() []byte {
	return JPEG(XMPSegment(PlainXMP))
}

// Concat joins byte slices.
func Concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}
