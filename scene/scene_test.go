package scene

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshalkoli/3d-sphere/material"
	"github.com/harshalkoli/3d-sphere/volume"
)

func TestSphereGeometry_Topology(t *testing.T) {
	g, err := SphereGeometry(3, 64, 64)
	require.NoError(t, err)
	assert.Len(t, g.Vertices, 65*65)
	// 64 pole quads at each end emit one triangle, the rest two
	assert.Len(t, g.Indices, (64*62*2+64*2)*3)
	for _, i := range g.Indices {
		require.Less(t, int(i), len(g.Vertices))
	}
}

func TestSphereGeometry_OnSurface(t *testing.T) {
	g, err := SphereGeometry(2.5, 12, 8)
	require.NoError(t, err)
	for _, v := range g.Vertices {
		p := mgl32.Vec3(v.Position)
		n := mgl32.Vec3(v.Normal)
		assert.InDelta(t, 2.5, p.Len(), 1e-4)
		assert.InDelta(t, 1, n.Len(), 1e-4)
		assert.True(t, p.Normalize().ApproxEqualThreshold(n, 1e-4))
	}
	min, max := g.Bounds()
	assert.InDelta(t, -2.5, min[1], 1e-4)
	assert.InDelta(t, 2.5, max[1], 1e-4)
}

func TestSphereGeometry_Invalid(t *testing.T) {
	_, err := SphereGeometry(0, 8, 8)
	assert.Error(t, err)
	_, err = SphereGeometry(1, 2, 8)
	assert.Error(t, err)
	_, err = SphereGeometry(1, 8, 1)
	assert.Error(t, err)
}

func TestDefaultScene(t *testing.T) {
	s := Default()
	assert.Equal(t, "physical", s.Mesh.Material.Name())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, s.Mesh.Scale)
	assert.Equal(t, mgl32.Vec3{1, 10, 10}, s.Light.Position)
	assert.Equal(t, float32(100), s.Light.Distance)
	assert.Equal(t, mgl32.Vec3{0, 0, 20}, s.Camera.Position)
	assert.Equal(t, float32(45), s.Camera.FOV)
	assert.InDelta(t, 1280.0/720.0, s.Camera.Aspect, 1e-6)
	w, h := s.Viewport.DrawingBufferSize()
	assert.Equal(t, 2560, w)
	assert.Equal(t, 1440, h)
}

func TestNew_Errors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Material = "volume"
	_, err := New(cfg, nil)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Material = "toon"
	_, err = New(cfg, nil)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Sphere.Color = "green"
	_, err = New(cfg, nil)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Viewport.Height = 0
	_, err = New(cfg, nil)
	assert.Error(t, err)
}

func TestNew_VolumeMaterial(t *testing.T) {
	tex, err := volume.Build(4, 4, 4)
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Material = "volume"
	s, err := New(cfg, tex)
	require.NoError(t, err)
	vm, ok := s.Mesh.Material.(*material.VolumeMaterial)
	require.True(t, ok)
	assert.Same(t, tex, vm.Texture)
}

func TestResize_UpdatesAspectThenProjection(t *testing.T) {
	s := Default()
	require.NoError(t, s.Resize(800, 800))
	assert.Equal(t, float32(1), s.Camera.Aspect)
	want := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 2000)
	assert.True(t, s.Camera.Projection().ApproxEqual(want))
	assert.Error(t, s.Resize(0, 10))
	assert.Equal(t, 800, s.Viewport.Width)
}

func TestTween_Intro(t *testing.T) {
	tw := IntroTween()
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, tw.At(0))
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, tw.At(time.Second))
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, tw.At(5*time.Second))
	mid := tw.At(500 * time.Millisecond)
	assert.InDelta(t, 0.75, mid.X(), 1e-6)
	assert.False(t, tw.Done(999*time.Millisecond))
	assert.True(t, tw.Done(time.Second))

	lin := &ScaleTween{To: mgl32.Vec3{2, 2, 2}, Duration: time.Second, Ease: Linear}
	assert.InDelta(t, 0.5, lin.At(250*time.Millisecond).Y(), 1e-6)
}

func TestOrbitControls_AutoRotate(t *testing.T) {
	cam := NewPerspectiveCamera(45, 1, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 0, 20}
	c := NewOrbitControls(cam, mgl32.Vec3{})
	c.AutoRotate = true
	c.AutoRotateSpeed = 6

	assert.InDelta(t, 2*math.Pi/10, c.AutoRotationAngle(1), 1e-9)
	moved := c.Update(1)
	assert.True(t, moved)
	theta, phi := c.Angles()
	assert.InDelta(t, -2*math.Pi/10, theta, 1e-9)
	assert.InDelta(t, math.Pi/2, phi, 1e-9)
	assert.InDelta(t, 20, cam.Position.Len(), 1e-4)
	assert.Less(t, cam.Position.X(), float32(0))
}

func TestOrbitControls_Damping(t *testing.T) {
	cam := NewPerspectiveCamera(45, 1, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 0, 20}
	c := NewOrbitControls(cam, mgl32.Vec3{})
	c.EnableDamping = true
	c.DampingFactor = 0.5
	c.Rotate(1, 0)

	c.Update(0)
	theta, _ := c.Angles()
	assert.InDelta(t, 0.5, theta, 1e-9)
	c.Update(0)
	theta, _ = c.Angles()
	assert.InDelta(t, 0.75, theta, 1e-9)
}

func TestOrbitControls_ClampsPolar(t *testing.T) {
	cam := NewPerspectiveCamera(45, 1, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 0, 5}
	c := NewOrbitControls(cam, mgl32.Vec3{})
	c.Rotate(0, 10)
	c.Update(0)
	_, phi := c.Angles()
	assert.Less(t, phi, math.Pi)
	assert.Greater(t, phi, math.Pi-1e-3)
}

func TestFrame(t *testing.T) {
	s := Default()
	start := s.Camera.Position
	var st FrameState
	for i := 0; i < 20; i++ {
		st = s.Frame(50 * time.Millisecond)
	}
	assert.InDelta(t, 1, st.Elapsed.Seconds(), 1e-9)
	assert.True(t, st.IntroDone)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, st.MeshScale)
	assert.False(t, start.ApproxEqual(st.CameraPosition))
	assert.InDelta(t, 20, st.CameraPosition.Len(), 1e-3)
	assert.Equal(t, s.Elapsed(), st.Elapsed)
}
