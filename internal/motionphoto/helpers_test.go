package motionphoto

import "github.com/custodia-labs/motionsplit/internal/motionphoto/motionphototest"

var (
	segment        = motionphototest.Segment
	xmpSegment     = motionphototest.XMPSegment
	buildJPEG      = motionphototest.JPEG
	buildContainer = motionphototest.Container
	concat         = motionphototest.Concat
)
