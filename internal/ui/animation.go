package ui

import (
	"math"
	"time"
)

const (
	spinPeriod   = 3 * time.Second
	strobePeriod = 4 * time.Second
	armSwing     = 1500 * time.Millisecond
	armEngaged   = 25.0

	tokenStagger = 100 * time.Millisecond
	tokenGrow    = 400 * time.Millisecond

	marqueeSpeed = 14.0 // lcd pixels per second
)

// AnimState is derived from playback, never the other way round. Nothing
// in here decides whether music plays.
type AnimState struct {
	Spin         float64 // record rotation, degrees
	Strobe       float64 // platter dots, degrees
	ArmProgress  float64 // 0 at rest, 1 on the record
	Marquee      float64 // lcd scroll offset, pixels
	SinceResults time.Duration
	Ticks        int
}

func (a *AnimState) Update(dt time.Duration, playing bool) {
	if dt < 0 {
		dt = 0
	}
	a.Ticks++

	if playing {
		a.Spin = math.Mod(a.Spin+360*dt.Seconds()/spinPeriod.Seconds(), 360)
	}
	a.Strobe = math.Mod(a.Strobe+360*dt.Seconds()/strobePeriod.Seconds(), 360)

	step := dt.Seconds() / armSwing.Seconds()
	if playing {
		a.ArmProgress = math.Min(1, a.ArmProgress+step)
	} else {
		a.ArmProgress = math.Max(0, a.ArmProgress-step)
	}

	a.Marquee += marqueeSpeed * dt.Seconds()
	a.SinceResults += dt
}

// ArmAngle is the tonearm's swing in degrees towards the platter.
func (a *AnimState) ArmAngle() float64 {
	return armEngaged * easeInOut(a.ArmProgress)
}

func (a *AnimState) RestartEntrance() {
	a.SinceResults = 0
}

func (a *AnimState) RestartMarquee() {
	a.Marquee = 0
}

// TokenScale is how far token i has grown into view, 0 to slightly over 1.
func (a *AnimState) TokenScale(i int) float64 {
	elapsed := a.SinceResults - time.Duration(i)*tokenStagger
	if elapsed <= 0 {
		return 0
	}
	t := float64(elapsed) / float64(tokenGrow)
	return easeOutBack(clamp(t, 0, 1))
}

func easeInOut(t float64) float64 {
	t = clamp(t, 0, 1)
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// easeOutBack overshoots a little before settling, like a spring.
func easeOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

func clamp(val float64, min float64, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
