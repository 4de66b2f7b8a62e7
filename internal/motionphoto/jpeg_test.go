package motionphoto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateBoundary(t *testing.T) {
	tests := []struct {
		name     string
		buf      []byte
		expected int
		found    bool
	}{
		{"empty buffer", nil, 0, false},
		{"no marker", []byte{0xFF, 0xD8, 0x00, 0x01}, 0, false},
		{"lone 0xFF at end", []byte{0x00, 0xFF}, 0, false},
		{"marker only", []byte{0xFF, 0xD9}, 2, true},
		{"marker in middle", []byte{0xFF, 0xD8, 0xAA, 0xFF, 0xD9, 0x00, 0x00}, 5, true},
		{"first match wins", []byte{0xFF, 0xD9, 0x01, 0xFF, 0xD9}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, ok := LocateBoundary(tt.buf)

			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, offset)
		})
	}
}

func TestLocateBoundary_TailStartsAfterMarker(t *testing.T) {
	jpeg := buildJPEG()
	tail := []byte("appended")
	buf := concat(jpeg, tail)

	offset, ok := LocateBoundary(buf)

	require.True(t, ok)
	assert.Equal(t, len(jpeg), offset)
	assert.Equal(t, tail, buf[offset:])
}

func TestScanMetadata_NotJPEG(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"nil", nil},
		{"single byte", []byte{0xFF}},
		{"wrong magic", []byte{0x89, 'P', 'N', 'G'}},
		{"eoi without soi", []byte{0xFF, 0xD9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ScanMetadata(tt.buf))
		})
	}
}

func TestScanMetadata_ExtractsPacketAfterTerminator(t *testing.T) {
	packet := `<x:xmpmeta><GCamera:MotionPhoto>1</GCamera:MotionPhoto></x:xmpmeta>`
	buf := buildJPEG(segment(0xE0, []byte("JFIF\x00\x01\x02")), xmpSegment(packet))

	packets := ScanMetadata(buf)

	require.Len(t, packets, 1)
	assert.Equal(t, packet, string(packets[0]))
}

func TestScanMetadata_NoTerminatorReturnsRawPayload(t *testing.T) {
	payload := []byte(XMPNamespace + "<MicroVideo>1</MicroVideo>")
	buf := buildJPEG(segment(0xE1, payload))

	packets := ScanMetadata(buf)

	require.Len(t, packets, 1)
	assert.Equal(t, payload, packets[0])
}

func TestScanMetadata_PreservesOrder(t *testing.T) {
	buf := buildJPEG(
		xmpSegment("first"),
		segment(0xE1, []byte("Exif\x00\x00MM")),
		xmpSegment("second"),
	)

	packets := ScanMetadata(buf)

	require.Len(t, packets, 2)
	assert.Equal(t, "first", string(packets[0]))
	assert.Equal(t, "second", string(packets[1]))
}

func TestScanMetadata_IgnoresOtherSegments(t *testing.T) {
	buf := buildJPEG(
		segment(0xE0, []byte("JFIF\x00")),
		segment(0xE1, []byte("Exif\x00\x00")),
		segment(0xFE, []byte("comment mentioning http://ns.adobe.com/xap/1.0/")),
	)

	assert.Empty(t, ScanMetadata(buf))
}

func TestScanMetadata_StopsAtStartOfScan(t *testing.T) {
	// An XMP segment after SOS sits in entropy-coded data and is never seen.
	buf := concat(
		[]byte{0xFF, 0xD8},
		segment(0xDA, []byte{0x01, 0x00}),
		xmpSegment("hidden"),
		[]byte{0xFF, 0xD9},
	)

	assert.Empty(t, ScanMetadata(buf))
}

func TestScanMetadata_StopsOnMalformedStream(t *testing.T) {
	good := xmpSegment("kept")

	tests := []struct {
		name     string
		buf      []byte
		expected int
	}{
		{
			name:     "missing marker prefix",
			buf:      concat([]byte{0xFF, 0xD8}, good, []byte{0x00, 0xE1}, xmpSegment("lost")),
			expected: 1,
		},
		{
			name:     "length below two",
			buf:      concat([]byte{0xFF, 0xD8}, good, []byte{0xFF, 0xE1, 0x00, 0x01}, xmpSegment("lost")),
			expected: 1,
		},
		{
			name:     "length past end of buffer",
			buf:      concat([]byte{0xFF, 0xD8}, good, []byte{0xFF, 0xE1, 0x7F, 0xFF, 'h', 't'}),
			expected: 1,
		},
		{
			name:     "truncated length field",
			buf:      concat([]byte{0xFF, 0xD8}, good, []byte{0xFF, 0xE1, 0x00}),
			expected: 1,
		},
		{
			name:     "end of image",
			buf:      concat([]byte{0xFF, 0xD8}, good, []byte{0xFF, 0xD9}, xmpSegment("lost")),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packets := ScanMetadata(tt.buf)

			require.Len(t, packets, tt.expected)
			assert.Equal(t, "kept", string(packets[0]))
		})
	}
}

func TestScanMetadata_TruncatedPrefixesNeverPanic(t *testing.T) {
	buf := concat(buildJPEG(xmpSegment("<MotionPhoto>1</MotionPhoto>")), buildContainer(24))

	for n := 0; n <= len(buf); n++ {
		assert.NotPanics(t, func() { ScanMetadata(buf[:n]) }, "prefix length %d", n)
	}
}

func TestScanMetadata_AliasesBuffer(t *testing.T) {
	buf := buildJPEG(xmpSegment("abc"))

	packets := ScanMetadata(buf)
	require.Len(t, packets, 1)

	packets[0][0] = 'X'
	assert.Contains(t, string(buf), "Xbc")
}
