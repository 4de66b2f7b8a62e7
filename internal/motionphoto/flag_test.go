package motionphoto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMotionFlagged(t *testing.T) {
	tests := []struct {
		name     string
		payloads [][]byte
		expected bool
	}{
		{"nil payloads", nil, false},
		{"empty payload", [][]byte{{}}, false},
		{"google camera", [][]byte{[]byte(`<GCamera:MotionPhoto>1</GCamera:MotionPhoto>`)}, true},
		{"samsung camera", [][]byte{[]byte(`Camera:MotionPhoto="1"`)}, true},
		{"bare tag", [][]byte{[]byte(`<MotionPhoto>1</MotionPhoto>`)}, true},
		{"micro video", [][]byte{[]byte(`GCamera:MicroVideo="1"`)}, true},
		{"marker split across payloads", [][]byte{[]byte(`<rdf:Description GCamera:Motion`), []byte(`Photo`)}, false},
		{"truncated packet with marker", [][]byte{[]byte(`<rdf:Description GCamera:MotionPhoto="1`)}, true},
		{"unrelated metadata", [][]byte{[]byte(`<xmp:CreatorTool>Camera</xmp:CreatorTool>`)}, false},
		{"match in second payload", [][]byte{[]byte("nothing"), []byte("xMicroVideox")}, true},
		{"case sensitive", [][]byte{[]byte("motionphoto microvideo")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMotionFlagged(tt.payloads))
		})
	}
}

func TestMotionMarkers(t *testing.T) {
	assert.ElementsMatch(t, []string{
		"MotionPhoto",
		"MicroVideo",
		"GCamera:MotionPhoto",
		"Camera:MotionPhoto",
	}, MotionMarkers)
}
