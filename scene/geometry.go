package scene

import (
	"fmt"
	"math"
)

// Vertex is one sphere vertex. UV follows the GL convention (v=1 at the top).
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Geometry is an indexed triangle list.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
}

// SphereGeometry builds a UV sphere centred at the origin with
// (widthSegments+1)*(heightSegments+1) vertices. Quads touching a pole emit a
// single triangle.
func SphereGeometry(radius float32, widthSegments, heightSegments int) (*Geometry, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, got %v", radius)
	}
	if widthSegments < 3 || heightSegments < 2 {
		return nil, fmt.Errorf("sphere needs at least 3x2 segments, got %dx%d", widthSegments, heightSegments)
	}
	g := &Geometry{
		Vertices: make([]Vertex, 0, (widthSegments+1)*(heightSegments+1)),
	}
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		// nudge the pole UVs to the centre of the adjacent quad
		uOffset := 0.0
		if iy == 0 {
			uOffset = 0.5 / float64(widthSegments)
		} else if iy == heightSegments {
			uOffset = -0.5 / float64(widthSegments)
		}
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			nx := -math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi)
			ny := math.Cos(v * math.Pi)
			nz := math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi)
			r := float64(radius)
			row[ix] = uint32(len(g.Vertices))
			g.Vertices = append(g.Vertices, Vertex{
				Position: [3]float32{float32(r * nx), float32(r * ny), float32(r * nz)},
				Normal:   [3]float32{float32(nx), float32(ny), float32(nz)},
				UV:       [2]float32{float32(u + uOffset), float32(1 - v)},
			})
		}
		grid[iy] = row
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g, nil
}

// Bounds returns the axis-aligned min and max corners.
func (g *Geometry) Bounds() (min, max [3]float32) {
	if len(g.Vertices) == 0 {
		return
	}
	min, max = g.Vertices[0].Position, g.Vertices[0].Position
	for _, v := range g.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	return
}
