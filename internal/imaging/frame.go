package imaging

import (
	"image"
	"math"
	"time"
)

// Delay is a frame display duration in milliseconds, stored as the ratio
// numer/denom so that repeated retiming does not accumulate rounding error.
// The zero value is a zero delay.
type Delay struct {
	numer uint32
	denom uint32
}

// DelayFromMillis returns a delay of exactly ms milliseconds.
func DelayFromMillis(ms uint32) Delay {
	return Delay{numer: ms, denom: 1}
}

// DelayFromRatio returns a delay of numer/denom milliseconds, reduced.
// A zero denominator is treated as 1.
func DelayFromRatio(numer, denom uint32) Delay {
	if denom == 0 {
		denom = 1
	}
	g := gcd(uint64(numer), uint64(denom))
	if g > 1 {
		numer /= uint32(g)
		denom /= uint32(g)
	}
	return Delay{numer: numer, denom: denom}
}

// DelayFromDuration converts d with microsecond resolution, saturating at the
// largest representable delay. Negative durations become zero.
func DelayFromDuration(d time.Duration) Delay {
	if d <= 0 {
		return Delay{denom: 1}
	}
	if d >= time.Duration(math.MaxUint32)*time.Millisecond {
		return Delay{numer: math.MaxUint32, denom: 1}
	}
	micros := uint64(d / time.Microsecond)
	numer, denom := micros, uint64(1000)
	if g := gcd(numer, denom); g > 1 {
		numer /= g
		denom /= g
	}
	if numer > math.MaxUint32 {
		// Whole milliseconds always fit below the saturation bound.
		return Delay{numer: uint32((micros + 500) / 1000), denom: 1}
	}
	return Delay{numer: uint32(numer), denom: uint32(denom)}
}

// NumerDenomMs returns the delay as a (numerator, denominator) pair of milliseconds.
func (d Delay) NumerDenomMs() (uint32, uint32) {
	if d.denom == 0 {
		return d.numer, 1
	}
	return d.numer, d.denom
}

// Milliseconds returns the delay as fractional milliseconds.
func (d Delay) Milliseconds() float64 {
	n, dd := d.NumerDenomMs()
	return float64(n) / float64(dd)
}

// Duration returns the delay rounded to the nearest nanosecond.
func (d Delay) Duration() time.Duration {
	n, dd := d.NumerDenomMs()
	return time.Duration(math.Round(float64(n) * float64(time.Millisecond) / float64(dd)))
}

// Centiseconds returns the delay in GIF units (1/100 s), rounded to nearest.
func (d Delay) Centiseconds() int {
	n, dd := d.NumerDenomMs()
	cs := (uint64(n) + 5*uint64(dd)) / (10 * uint64(dd))
	if cs > math.MaxUint16 {
		return math.MaxUint16
	}
	return int(cs)
}

// Frame is one decoded animation frame: its pixels, its placement on the
// logical screen, and how long it is displayed.
type Frame struct {
	Image *image.NRGBA
	Left  int
	Top   int
	Delay Delay
}

// AnimationInfo summarizes a decoded frame sequence.
type AnimationInfo struct {
	// FrameCount is the number of frames. One or zero means not an animation.
	FrameCount int

	// AverageDelay is the mean frame delay in seconds when FrameCount > 1,
	// and zero otherwise.
	AverageDelay float64
}

// NewAnimationInfo computes frame count and mean delay for frames.
func NewAnimationInfo(frames []Frame) AnimationInfo {
	info := AnimationInfo{FrameCount: len(frames)}
	if len(frames) > 1 {
		var totalMs float64
		for _, f := range frames {
			totalMs += f.Delay.Milliseconds()
		}
		info.AverageDelay = totalMs / 1000 / float64(len(frames))
	}
	return info
}

// IsAnimation reports whether the sequence has more than one frame.
func (a AnimationInfo) IsAnimation() bool {
	return a.FrameCount > 1
}
