// Package scene draws a single wireframe mesh onto a monochrome canvas.
package scene

import (
	"github.com/taigrr/monowire/pkg/models"
	"github.com/taigrr/monowire/pkg/render"
)

// ModelView binds a mesh to the projector and canvas it is drawn with.
type ModelView struct {
	Mesh      *models.Mesh
	Projector *render.Projector
	Canvas    *render.Canvas
	Spinner   *Spinner // nil means the mesh does not turn

	// AutoClear clears the canvas on every Compute, to lit when Erase is set.
	AutoClear bool

	// Caption is drawn in the top-left corner after the last face.
	Caption string

	// Erase draws edges by clearing pixels, for use on a lit background.
	Erase bool

	// scratch holds projected points of the face being drawn
	scratch [][2]float64
}

// NewModelView creates a view with auto-clear enabled. The mesh may be set
// later, once loading is finished.
func NewModelView(mesh *models.Mesh, projector *render.Projector, canvas *render.Canvas, spinner *Spinner) *ModelView {
	return &ModelView{
		Mesh:      mesh,
		Projector: projector,
		Canvas:    canvas,
		Spinner:   spinner,
		AutoClear: true,
	}
}

// Compute advances the mesh rotation by one tick and clears the canvas.
func (v *ModelView) Compute() {
	if v.Mesh != nil && v.Spinner != nil {
		r := v.Spinner.Next()
		v.Mesh.Rotate(r.Yaw, r.Pitch, r.Roll)
	}
	if v.AutoClear {
		v.Canvas.Clear(v.Erase)
	}
}

// Draw draws every face and returns the number of vertex projections.
func (v *ModelView) Draw() int {
	if v.Mesh == nil {
		return 0
	}
	return v.DrawRange(0, v.Mesh.FaceCount())
}

// DrawRange draws faces [lo, hi), clamped to the face list, and returns the
// number of vertex projections. Reaching the last face also draws the
// caption.
func (v *ModelView) DrawRange(lo, hi int) int {
	if v.Mesh == nil {
		return 0
	}
	n := v.Mesh.FaceCount()
	lo, hi = max(lo, 0), min(hi, n)

	work := 0
	for i := lo; i < hi; i++ {
		work += v.DrawFace(i)
	}
	if hi == n && v.Caption != "" {
		v.Canvas.DrawText(1, 1, v.Caption, v.Erase, true)
	}
	return work
}

// DrawFace projects every vertex of face i and draws the closed loop
// through them. It returns the number of vertices projected. Edges are
// clipped to the canvas, so vertices projected far off screen cost no more
// than ones on it.
func (v *ModelView) DrawFace(i int) int {
	if v.Mesh == nil || i < 0 || i >= v.Mesh.FaceCount() {
		return 0
	}
	face := v.Mesh.Faces[i]

	pts := v.scratch[:0]
	for _, idx := range face.V {
		x, y := v.Projector.Project(v.Mesh.Vertices[idx], v.Mesh.Position)
		pts = append(pts, [2]float64{x, y})
	}
	v.scratch = pts

	lit := !v.Erase
	for j := range pts {
		a, b := pts[j], pts[(j+1)%len(pts)]
		v.Canvas.DrawLineF(a[0], a[1], b[0], b[1], lit)
	}
	return len(pts)
}
