package timewindow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOpeningHours(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantOpen  string
		wantClose string
	}{
		{"well formed", "10:00–17:30", "10:00", "17:30"},
		{"surrounding whitespace", " 08:30 – 16:00 ", "08:30", "16:00"},
		{"empty input", "", "09:00", "18:00"},
		{"garbage", "garbage", "09:00", "18:00"},
		{"plain hyphen is not the separator", "10:00-17:30", "09:00", "18:00"},
		{"too many parts", "09:00–12:00–18:00", "09:00", "18:00"},
		{"separator only", "–", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, close := ParseOpeningHours(tt.raw)
			assert.Equal(t, tt.wantOpen, open)
			assert.Equal(t, tt.wantClose, close)
		})
	}
}

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name  string
		clock string
		want  int
	}{
		{"morning", "09:00", 540},
		{"afternoon", "17:45", 1065},
		{"midnight", "00:00", 0},
		{"no colon", "0900", 540},
		{"non numeric hours", "ab:30", 540},
		{"non numeric minutes", "10:xx", 540},
		{"empty", "", 540},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMinutes(tt.clock))
		})
	}
}

func TestToClock(t *testing.T) {
	assert.Equal(t, "09:00", ToClock(540))
	assert.Equal(t, "18:00", ToClock(1080))
	assert.Equal(t, "00:05", ToClock(5))
	assert.Equal(t, "23:59", ToClock(1439))
}

func TestToClockRoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 59, 60, 540, 1079, 1439} {
		assert.Equal(t, m, ToMinutes(ToClock(m)))
	}
}
