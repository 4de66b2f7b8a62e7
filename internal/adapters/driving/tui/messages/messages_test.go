package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordProcessed_Fraction(t *testing.T) {
	tests := []struct {
		name     string
		done     int
		total    int
		expected float64
	}{
		{"empty batch", 0, 0, 0},
		{"half way", 2, 4, 0.5},
		{"complete", 3, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := RecordProcessed{Done: tt.done, Total: tt.total}
			assert.InDelta(t, tt.expected, msg.Fraction(), 1e-9)
		})
	}
}
