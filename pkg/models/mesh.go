// Package models provides wireframe mesh storage and loading for monowire.
package models

import (
	"github.com/taigrr/monowire/pkg/math3d"
)

// Mesh is a finalized wireframe mesh. Vertices live in a single arena and
// faces refer to them by index, so transforming a vertex moves every face
// that shares it.
//
// A Mesh is obtained from Builder.Build once loading, recentering and
// normalization are done. It only exposes transforms that do not depend on
// the load-time bounding box.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Position is the model-to-world offset applied at render time. It is
	// never baked into vertex coordinates.
	Position math3d.Vec3

	// Bounding box frozen at load time
	boundsNeg math3d.Vec3
	boundsPos math3d.Vec3
}

// Face is a closed polygon of three or more vertex indices into Mesh.Vertices.
type Face struct {
	V []int
}

// Arity returns the number of vertices in the face.
func (f Face) Arity() int {
	return len(f.V)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// EdgeCount returns the number of edges drawn per frame, counting shared
// edges once per face.
func (m *Mesh) EdgeCount() int {
	n := 0
	for _, f := range m.Faces {
		n += len(f.V)
	}
	return n
}

// Bounds returns the bounding box as it stood when the mesh was built. It is
// not recomputed after rotation.
func (m *Mesh) Bounds() (neg, pos math3d.Vec3) {
	return m.boundsNeg, m.boundsPos
}

// Transform applies an affine transformation to every vertex in place.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulPoint(m.Vertices[i])
	}
}

// Rotate rotates all vertices by yaw, pitch and roll (radians).
func (m *Mesh) Rotate(yaw, pitch, roll float64) {
	if yaw == 0 && pitch == 0 && roll == 0 {
		return
	}
	m.Transform(math3d.RotationYawPitchRoll(yaw, pitch, roll))
}

// Translate moves all vertices by (dx, dy, dz).
func (m *Mesh) Translate(dx, dy, dz float64) {
	m.Transform(math3d.Translate(math3d.V3(dx, dy, dz)))
}

// Scale scales all vertices uniformly about the origin.
func (m *Mesh) Scale(factor float64) {
	m.Transform(math3d.ScaleUniform(factor))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Position:  m.Position,
		boundsNeg: m.boundsNeg,
		boundsPos: m.boundsPos,
	}
	copy(clone.Vertices, m.Vertices)
	for i, f := range m.Faces {
		clone.Faces[i] = Face{V: append([]int(nil), f.V...)}
	}
	return clone
}
