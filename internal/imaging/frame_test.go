package imaging

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelayConstructors(t *testing.T) {
	tests := []struct {
		name      string
		delay     Delay
		wantNumer uint32
		wantDenom uint32
	}{
		{"millis", DelayFromMillis(40), 40, 1},
		{"ratio reduced", DelayFromRatio(10, 4), 5, 2},
		{"ratio zero denominator", DelayFromRatio(7, 0), 7, 1},
		{"duration whole millis", DelayFromDuration(20 * time.Millisecond), 20, 1},
		{"duration fractional", DelayFromDuration(1500 * time.Microsecond), 3, 2},
		{"duration negative", DelayFromDuration(-time.Second), 0, 1},
		{"duration saturates", DelayFromDuration(time.Duration(math.MaxInt64)), math.MaxUint32, 1},
		{"zero value", Delay{}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, d := tt.delay.NumerDenomMs()
			assert.Equal(t, tt.wantNumer, n)
			assert.Equal(t, tt.wantDenom, d)
		})
	}
}

func TestDelayConversions(t *testing.T) {
	d := DelayFromRatio(3, 2)
	assert.Equal(t, 1.5, d.Milliseconds())
	assert.Equal(t, 1500*time.Microsecond, d.Duration())

	tests := []struct {
		ms   uint32
		want int
	}{
		{0, 0},
		{20, 2},
		{24, 2},
		{25, 3},
		{1000, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DelayFromMillis(tt.ms).Centiseconds(), "%d ms", tt.ms)
	}
	assert.Equal(t, math.MaxUint16, DelayFromMillis(math.MaxUint32).Centiseconds())
}

func TestNewAnimationInfo(t *testing.T) {
	t.Run("multiple frames", func(t *testing.T) {
		info := NewAnimationInfo([]Frame{
			{Delay: DelayFromMillis(100)},
			{Delay: DelayFromMillis(200)},
		})
		assert.Equal(t, 2, info.FrameCount)
		assert.InDelta(t, 0.15, info.AverageDelay, 1e-9)
		assert.True(t, info.IsAnimation())
	})

	t.Run("single frame", func(t *testing.T) {
		info := NewAnimationInfo([]Frame{{Delay: DelayFromMillis(100)}})
		assert.Equal(t, 1, info.FrameCount)
		assert.Equal(t, 0.0, info.AverageDelay)
		assert.False(t, info.IsAnimation())
	})

	t.Run("empty", func(t *testing.T) {
		info := NewAnimationInfo(nil)
		assert.Equal(t, 0, info.FrameCount)
		assert.False(t, info.IsAnimation())
	})
}
