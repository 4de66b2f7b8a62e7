package motionphoto

import (
	"bytes"
	"encoding/binary"
)

// JPEG marker codes, the byte following 0xFF.
const (
	markerPrefix = 0xFF
	markerSOI    = 0xD8
	markerEOI    = 0xD9
	markerSOS    = 0xDA
)

// XMPNamespace prefixes the payload of an APP1 segment carrying XMP.
const XMPNamespace = "http://ns.adobe.com/xap/1.0/"

var (
	soi = []byte{markerPrefix, markerSOI}
	eoi = []byte{markerPrefix, markerEOI}

	xmpSignature = []byte(XMPNamespace)
)

// LocateBoundary returns the offset immediately after the first 0xFFD9 in buf,
// so buf[offset:] is everything appended after the image. The second result
// is false when the marker is absent.
//
// A coincidental 0xFFD9 inside entropy-coded scan data wins over the real
// end marker; scan data is never decoded.
func LocateBoundary(buf []byte) (int, bool) {
	i := bytes.Index(buf, eoi)
	if i < 0 {
		return 0, false
	}
	return i + len(eoi), true
}

// ScanMetadata walks the marker segments of buf from offset 2 up to the
// start-of-scan or end-of-image marker and returns the XMP packets it finds,
// in file order. Each returned slice aliases buf.
//
// A buffer that does not start with the start-of-image marker has no
// metadata. Any malformed marker or length ends the scan.
func ScanMetadata(buf []byte) [][]byte {
	if !bytes.HasPrefix(buf, soi) {
		return nil
	}

	var packets [][]byte
	n := len(buf)
	pos := len(soi)
	for pos < n-1 {
		if buf[pos] != markerPrefix {
			break
		}
		marker := buf[pos+1]
		pos += 2
		if marker == markerEOI || marker == markerSOS {
			break
		}
		if pos+2 > n {
			break
		}
		length := int(binary.BigEndian.Uint16(buf[pos : pos+2]))
		if length < 2 {
			break
		}
		start := pos + 2
		end := start + length - 2
		if end > n {
			break
		}

		if payload := buf[start:end]; bytes.HasPrefix(payload, xmpSignature) {
			packets = append(packets, xmpPacket(payload))
		}
		pos = end
	}
	return packets
}

// xmpPacket strips the namespace and its zero terminator from an XMP payload.
// Payloads without a terminator are returned unchanged.
func xmpPacket(payload []byte) []byte {
	if z := bytes.IndexByte(payload, 0); z >= 0 {
		return payload[z+1:]
	}
	return payload
}
