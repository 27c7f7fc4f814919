package session

import "time"

// Speed slider mapping: delay = MaxDelay - slider, clamped to [MinDelay, MaxDelay].
const (
	MaxDelay      = 210 * time.Millisecond
	MinDelay      = 10 * time.Millisecond
	SliderMin     = 0
	SliderMax     = 200
	DefaultSlider = 160
)

// DelayForSlider maps a speed slider value to the per-step delay.
func DelayForSlider(v int) time.Duration {
	v = min(max(v, SliderMin), SliderMax)
	d := MaxDelay - time.Duration(v)*time.Millisecond
	return min(max(d, MinDelay), MaxDelay)
}
