package motionphoto

import "bytes"

// MotionMarkers are the XMP tag names that flag a motion photo.
// Samsung and Google cameras write one of:
//
//	<GCamera:MotionPhoto>1</GCamera:MotionPhoto>
//	<Camera:MotionPhoto>1</Camera:MotionPhoto>
//	<GCamera:MicroVideo>1</GCamera:MicroVideo>
var MotionMarkers = []string{
	"MotionPhoto",
	"MicroVideo",
	"GCamera:MotionPhoto",
	"Camera:MotionPhoto",
}

var motionNeedles = func() [][]byte {
	needles := make([][]byte, len(MotionMarkers))
	for i, m := range MotionMarkers {
		needles[i] = []byte(m)
	}
	return needles
}()

// IsMotionFlagged reports whether any payload contains any motion marker.
// No XML parsing is done, so truncated or malformed packets still match
// as long as the literal tag text is present.
func IsMotionFlagged(payloads [][]byte) bool {
	for _, p := range payloads {
		for _, needle := range motionNeedles {
			if bytes.Contains(p, needle) {
				return true
			}
		}
	}
	return false
}
