package scene

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/qmuntal/gltf/modeler"

	"github.com/harshalkoli/3d-sphere/material"
)

const (
	introKeyframes     = 16
	turntableKeyframes = 32
)

// EncodeGLB writes s as a binary glTF document. The intro tween and the
// auto-rotation become animations; the light uses KHR_lights_punctual.
func EncodeGLB(s *Scene, w io.Writer) error {
	doc, err := Document(s)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}

// Document converts s into a glTF document.
func Document(s *Scene) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "3d-sphere"

	matIdx, err := writeMaterial(doc, s.Mesh.Material)
	if err != nil {
		return nil, err
	}
	meshIdx := writeGeometry(doc, s.Mesh.Name, s.Mesh.Geometry, matIdx)

	sphere := addNode(doc, &gltf.Node{
		Name:     s.Mesh.Name,
		Mesh:     gltf.Index(meshIdx),
		Rotation: [4]float64{0, 0, 0, 1},
		Scale:    [3]float64{1, 1, 1},
	})

	light, err := writeLight(doc, s.Light)
	if err != nil {
		return nil, err
	}

	cam := s.Camera
	doc.Cameras = append(doc.Cameras, &gltf.Camera{
		Name: "Camera",
		Perspective: &gltf.Perspective{
			Yfov:        float64(mgl32.DegToRad(cam.FOV)),
			AspectRatio: gltf.Float(float64(cam.Aspect)),
			Znear:       float64(cam.Near),
			Zfar:        gltf.Float(float64(cam.Far)),
		},
	})
	target := s.Controls.Target
	local := cam.Position.Sub(target)
	look := mgl32.QuatLookAtV(local, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	camNode := addNode(doc, &gltf.Node{
		Name:        "Camera",
		Camera:      gltf.Index(len(doc.Cameras) - 1),
		Translation: vec3(local),
		Rotation:    quat64(look),
		Scale:       [3]float64{1, 1, 1},
	})
	pivot := addNode(doc, &gltf.Node{
		Name:        "CameraPivot",
		Children:    []int{camNode},
		Translation: vec3(target),
		Rotation:    [4]float64{0, 0, 0, 1},
		Scale:       [3]float64{1, 1, 1},
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, sphere, light, pivot)

	writeIntroAnimation(doc, sphere, s.Intro)
	if s.Controls.AutoRotate && s.Controls.AutoRotateSpeed != 0 {
		writeTurntableAnimation(doc, pivot, s.Controls)
	}
	return doc, nil
}

func addNode(doc *gltf.Document, n *gltf.Node) int {
	doc.Nodes = append(doc.Nodes, n)
	return len(doc.Nodes) - 1
}

func vec3(v mgl32.Vec3) [3]float64 {
	return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
}

func quatArray(q mgl32.Quat) [4]float32 {
	return [4]float32{q.V[0], q.V[1], q.V[2], q.W}
}

func quat64(q mgl32.Quat) [4]float64 {
	return [4]float64{float64(q.V[0]), float64(q.V[1]), float64(q.V[2]), float64(q.W)}
}

func writeGeometry(doc *gltf.Document, name string, g *Geometry, matIdx int) int {
	positions := make([][3]float32, len(g.Vertices))
	normals := make([][3]float32, len(g.Vertices))
	uvs := make([][2]float32, len(g.Vertices))
	for i, v := range g.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		// glTF puts the UV origin at the top-left of the image
		uvs[i] = [2]float32{v.UV[0], 1 - v.UV[1]}
	}
	indices := make([]uint32, len(g.Indices))
	copy(indices, g.Indices)

	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	uvAccessor := modeler.WriteTextureCoord(doc, uvs)
	indicesAccessor := modeler.WriteIndices(doc, indices)
	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION:   posAccessor,
			gltf.NORMAL:     normalAccessor,
			gltf.TEXCOORD_0: uvAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(matIdx),
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	return len(doc.Meshes) - 1
}

func writeMaterial(doc *gltf.Document, m material.Material) (int, error) {
	var out *gltf.Material
	switch m := m.(type) {
	case *material.PhysicalMaterial:
		c, err := m.LinearColor()
		if err != nil {
			return 0, err
		}
		out = &gltf.Material{
			Name: m.Name(),
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3])},
				MetallicFactor:  gltf.Float(float64(m.Metalness)),
				RoughnessFactor: gltf.Float(float64(m.Roughness)),
			},
			AlphaMode: gltf.AlphaOpaque,
		}
	case *material.VolumeMaterial:
		// glTF has no 3D textures; bake the plane the fragment shader samples.
		var buf bytes.Buffer
		if err := png.Encode(&buf, m.Texture.Slice(m.SliceDepth)); err != nil {
			return 0, err
		}
		img, err := modeler.WriteImage(doc, "volume-slice", "image/png", &buf)
		if err != nil {
			return 0, err
		}
		doc.Samplers = append(doc.Samplers, &gltf.Sampler{
			MagFilter: gltf.MagNearest,
			MinFilter: gltf.MinNearest,
			WrapS:     gltf.WrapClampToEdge,
			WrapT:     gltf.WrapClampToEdge,
		})
		doc.Textures = append(doc.Textures, &gltf.Texture{
			Sampler: gltf.Index(len(doc.Samplers) - 1),
			Source:  gltf.Index(img),
		})
		out = &gltf.Material{
			Name: m.Name(),
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor:  &[4]float64{1, 1, 1, 1},
				BaseColorTexture: &gltf.TextureInfo{Index: len(doc.Textures) - 1},
				MetallicFactor:   gltf.Float(0),
				RoughnessFactor:  gltf.Float(1),
			},
			AlphaMode: gltf.AlphaOpaque,
		}
	default:
		return 0, fmt.Errorf("unsupported material %T", m)
	}
	doc.Materials = append(doc.Materials, out)
	return len(doc.Materials) - 1, nil
}

func writeLight(doc *gltf.Document, l *PointLight) (int, error) {
	c, err := material.ParseHexColor(l.Color)
	if err != nil {
		return 0, err
	}
	pl := &lightspunctual.Light{
		Name:      "PointLight",
		Type:      lightspunctual.TypePoint,
		Color:     &[3]float64{float64(c[0]), float64(c[1]), float64(c[2])},
		Intensity: gltf.Float(float64(l.Intensity)),
	}
	if l.Distance > 0 {
		pl.Range = gltf.Float(float64(l.Distance))
	}
	if doc.Extensions == nil {
		doc.Extensions = make(gltf.Extensions)
	}
	doc.Extensions[lightspunctual.ExtensionName] = lightspunctual.Lights{pl}
	doc.ExtensionsUsed = append(doc.ExtensionsUsed, lightspunctual.ExtensionName)

	return addNode(doc, &gltf.Node{
		Name:        "PointLight",
		Translation: vec3(l.Position),
		Rotation:    [4]float64{0, 0, 0, 1},
		Scale:       [3]float64{1, 1, 1},
		Extensions:  gltf.Extensions{lightspunctual.ExtensionName: lightspunctual.LightIndex(0)},
	}), nil
}

func writeIntroAnimation(doc *gltf.Document, node int, t *ScaleTween) {
	if t.Duration <= 0 {
		return
	}
	times := make([]float32, introKeyframes+1)
	scales := make([][3]float32, introKeyframes+1)
	for i := range times {
		at := time.Duration(int64(t.Duration) * int64(i) / introKeyframes)
		times[i] = float32(at.Seconds())
		scales[i] = [3]float32(t.At(at))
	}
	addAnimation(doc, "Intro", node, gltf.TRSScale, times, scales)
}

// writeTurntableAnimation loops one full revolution of the camera pivot at
// the controls' auto-rotate speed.
func writeTurntableAnimation(doc *gltf.Document, node int, c *OrbitControls) {
	period := math.Abs(2 * math.Pi / c.AutoRotationAngle(1))
	sign := -1.0
	if c.AutoRotateSpeed < 0 {
		sign = 1
	}
	times := make([]float32, turntableKeyframes+1)
	rots := make([][4]float32, turntableKeyframes+1)
	for i := range times {
		f := float64(i) / turntableKeyframes
		times[i] = float32(f * period)
		q := mgl32.QuatRotate(float32(sign*f*2*math.Pi), mgl32.Vec3{0, 1, 0})
		rots[i] = quatArray(q)
	}
	addAnimation(doc, "Turntable", node, gltf.TRSRotation, times, rots)
}

func addAnimation(doc *gltf.Document, name string, node int, path gltf.TRSProperty, times []float32, values any) {
	in := modeler.WriteAccessor(doc, gltf.TargetNone, times)
	out := modeler.WriteAccessor(doc, gltf.TargetNone, values)
	doc.Animations = append(doc.Animations, &gltf.Animation{
		Name: name,
		Samplers: []*gltf.AnimationSampler{{
			Input:         in,
			Output:        out,
			Interpolation: gltf.InterpolationLinear,
		}},
		Channels: []*gltf.AnimationChannel{{
			Sampler: 0,
			Target:  gltf.AnimationChannelTarget{Node: gltf.Index(node), Path: path},
		}},
	})
}
