package advanced

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
)

// Debug rendering: rasterize the mesh, save it to /tmp and cat it to the
// terminal. Tests dump the mesh this way when a property assertion fails.

const dbgDrawPadding = 20

func (m *Mesh2) DebugDraw(scale float64) {
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for _, p := range m.points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + dbgDrawPadding*2
	height := int(scale*(maxY-minY)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(1)
	c.SetRGB(0, 1, 1)
	for t := range m.verts {
		if !m.alive[t] {
			continue
		}
		v := m.verts[t]
		c.MoveTo(m.points[v[0]].X, m.points[v[0]].Y)
		c.LineTo(m.points[v[1]].X, m.points[v[1]].Y)
		c.LineTo(m.points[v[2]].X, m.points[v[2]].Y)
		c.ClosePath()
	}
	c.Stroke()

	c.SetRGB(1, 0.5, 0)
	for _, p := range m.points {
		c.DrawCircle(p.X, p.Y, 2/scale)
	}
	c.Fill()

	c.SavePNG("/tmp/delaunay_mesh.png")
	imgcat.CatFile("/tmp/delaunay_mesh.png", os.Stdout)
}
