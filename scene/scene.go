// Package scene holds the objects of the sphere demo as explicit values:
// mesh, material, light, camera, orbit controls and intro animation. A Scene
// is advanced with Frame and exported with EncodeGLB; nothing here draws.
package scene

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/harshalkoli/3d-sphere/material"
	"github.com/harshalkoli/3d-sphere/volume"
)

type SphereConfig struct {
	Radius         float32 `yaml:"radius"`
	WidthSegments  int     `yaml:"width_segments"`
	HeightSegments int     `yaml:"height_segments"`
	Color          string  `yaml:"color"`
}

type LightConfig struct {
	Color     string     `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Distance  float32    `yaml:"distance"`
	Position  [3]float32 `yaml:"position"`
}

type CameraConfig struct {
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
}

type ViewportConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	PixelRatio float32 `yaml:"pixel_ratio"`
}

type ControlsConfig struct {
	EnableDamping   bool    `yaml:"enable_damping"`
	DampingFactor   float32 `yaml:"damping_factor"`
	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`
}

type IntroConfig struct {
	Duration time.Duration `yaml:"duration"`
}

// Config describes a whole scene. Material is "physical" or "volume".
type Config struct {
	Material string         `yaml:"material"`
	Sphere   SphereConfig   `yaml:"sphere"`
	Light    LightConfig    `yaml:"light"`
	Camera   CameraConfig   `yaml:"camera"`
	Viewport ViewportConfig `yaml:"viewport"`
	Controls ControlsConfig `yaml:"controls"`
	Intro    IntroConfig    `yaml:"intro"`
}

// DefaultConfig is the reference demo: a radius-3 green sphere lit by a white
// point light, seen from z=20 through a 45 degree lens, auto-rotating.
func DefaultConfig() Config {
	return Config{
		Material: "physical",
		Sphere:   SphereConfig{Radius: 3, WidthSegments: 64, HeightSegments: 64, Color: material.DefaultColor},
		Light:    LightConfig{Color: "#ffffff", Intensity: 1, Distance: 100, Position: [3]float32{1, 10, 10}},
		Camera:   CameraConfig{FOV: 45, Near: 0.1, Far: 2000, Position: [3]float32{0, 0, 20}},
		Viewport: ViewportConfig{Width: 1280, Height: 720, PixelRatio: 2},
		Controls: ControlsConfig{EnableDamping: true, DampingFactor: 0.05, AutoRotate: true, AutoRotateSpeed: 6},
		Intro:    IntroConfig{Duration: time.Second},
	}
}

// MeshNode places a geometry with a material in the scene.
type MeshNode struct {
	Name     string
	Geometry *Geometry
	Material material.Material
	Scale    mgl32.Vec3
}

// Scene owns every object of the demo.
type Scene struct {
	Mesh     *MeshNode
	Light    *PointLight
	Camera   *PerspectiveCamera
	Controls *OrbitControls
	Viewport Viewport
	Intro    *ScaleTween

	elapsed time.Duration
}

// FrameState is what a renderer needs after a Frame call.
type FrameState struct {
	Elapsed        time.Duration
	MeshScale      mgl32.Vec3
	CameraPosition mgl32.Vec3
	IntroDone      bool
}

// New builds a scene from cfg. tex is only used, and then required, when
// cfg.Material is "volume".
func New(cfg Config, tex *volume.Volume) (*Scene, error) {
	vp := Viewport{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height, PixelRatio: cfg.Viewport.PixelRatio}
	if err := vp.validate(); err != nil {
		return nil, err
	}
	geom, err := SphereGeometry(cfg.Sphere.Radius, cfg.Sphere.WidthSegments, cfg.Sphere.HeightSegments)
	if err != nil {
		return nil, err
	}

	var mat material.Material
	switch cfg.Material {
	case "", "physical":
		if _, err := material.ParseHexColor(cfg.Sphere.Color); err != nil {
			return nil, err
		}
		mat = material.NewPhysical(cfg.Sphere.Color)
	case "volume":
		if tex == nil {
			return nil, fmt.Errorf("volume material needs a texture")
		}
		mat = material.NewVolume(tex)
	default:
		return nil, fmt.Errorf("unknown material %q", cfg.Material)
	}
	if _, err := material.ParseHexColor(cfg.Light.Color); err != nil {
		return nil, fmt.Errorf("light: %w", err)
	}

	cam := NewPerspectiveCamera(cfg.Camera.FOV, vp.Aspect(), cfg.Camera.Near, cfg.Camera.Far)
	cam.Position = mgl32.Vec3(cfg.Camera.Position)

	controls := NewOrbitControls(cam, mgl32.Vec3{})
	controls.EnableDamping = cfg.Controls.EnableDamping
	controls.DampingFactor = cfg.Controls.DampingFactor
	controls.AutoRotate = cfg.Controls.AutoRotate
	controls.AutoRotateSpeed = cfg.Controls.AutoRotateSpeed

	intro := IntroTween()
	intro.Duration = cfg.Intro.Duration

	s := &Scene{
		Mesh: &MeshNode{Name: "Sphere", Geometry: geom, Material: mat, Scale: intro.At(0)},
		Light: &PointLight{
			Color:     cfg.Light.Color,
			Intensity: cfg.Light.Intensity,
			Distance:  cfg.Light.Distance,
			Position:  mgl32.Vec3(cfg.Light.Position),
		},
		Camera:   cam,
		Controls: controls,
		Viewport: vp,
		Intro:    intro,
	}
	return s, nil
}

// Default builds the reference scene.
func Default() *Scene {
	s, err := New(DefaultConfig(), nil)
	if err != nil {
		panic(err)
	}
	return s
}

// Resize applies a new viewport size, updating the camera aspect before the
// projection.
func (s *Scene) Resize(width, height int) error {
	vp := Viewport{Width: width, Height: height, PixelRatio: s.Viewport.PixelRatio}
	if err := vp.validate(); err != nil {
		return err
	}
	s.Viewport = vp
	s.Camera.Aspect = vp.Aspect()
	s.Camera.UpdateProjectionMatrix()
	return nil
}

// Frame advances the scene clock by dt.
func (s *Scene) Frame(dt time.Duration) FrameState {
	s.elapsed += dt
	s.Mesh.Scale = s.Intro.At(s.elapsed)
	s.Controls.Update(dt.Seconds())
	return FrameState{
		Elapsed:        s.elapsed,
		MeshScale:      s.Mesh.Scale,
		CameraPosition: s.Camera.Position,
		IntroDone:      s.Intro.Done(s.elapsed),
	}
}

// Elapsed returns the total time passed to Frame.
func (s *Scene) Elapsed() time.Duration { return s.elapsed }
