package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(t float64) float64

// Power1Out decelerates quadratically.
func Power1Out(t float64) float64 { return 1 - (1-t)*(1-t) }

// Linear is the identity ease.
func Linear(t float64) float64 { return t }

// ScaleTween interpolates a scale vector from From to To over Duration.
type ScaleTween struct {
	From     mgl32.Vec3
	To       mgl32.Vec3
	Duration time.Duration
	Ease     Ease
}

// IntroTween grows from nothing to full size in one second.
func IntroTween() *ScaleTween {
	return &ScaleTween{
		From:     mgl32.Vec3{0, 0, 0},
		To:       mgl32.Vec3{1, 1, 1},
		Duration: time.Second,
		Ease:     Power1Out,
	}
}

// Progress returns eased progress at elapsed.
func (t *ScaleTween) Progress(elapsed time.Duration) float64 {
	if t.Duration <= 0 || elapsed >= t.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(t.Duration)
	if t.Ease != nil {
		p = t.Ease(p)
	}
	return p
}

// At returns the scale at elapsed.
func (t *ScaleTween) At(elapsed time.Duration) mgl32.Vec3 {
	p := float32(t.Progress(elapsed))
	return t.From.Add(t.To.Sub(t.From).Mul(p))
}

// Done reports whether the tween has finished at elapsed.
func (t *ScaleTween) Done(elapsed time.Duration) bool { return elapsed >= t.Duration }
