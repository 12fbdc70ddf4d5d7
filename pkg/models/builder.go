package models

import (
	"fmt"

	"github.com/taigrr/monowire/pkg/math3d"
)

// Builder accumulates geometry for a mesh that is still loading. Recenter and
// Normalize rely on the bounding box tracked while vertices are added, so they
// are only available here, before Build hands out a rotatable Mesh.
type Builder struct {
	mesh      *Mesh
	hasBounds bool
	built     bool
}

// NewBuilder creates a builder for an empty mesh.
func NewBuilder(name string) *Builder {
	return &Builder{
		mesh: &Mesh{
			Name:     name,
			Vertices: make([]math3d.Vec3, 0),
			Faces:    make([]Face, 0),
		},
	}
}

// AddVertex appends a vertex and grows the bounding box to contain it.
func (b *Builder) AddVertex(x, y, z float64) {
	v := math3d.V3(x, y, z)
	m := b.mesh
	m.Vertices = append(m.Vertices, v)

	if !b.hasBounds {
		m.boundsNeg, m.boundsPos = v, v
		b.hasBounds = true
		return
	}
	m.boundsNeg = m.boundsNeg.Min(v)
	m.boundsPos = m.boundsPos.Max(v)
}

// AddFace appends a face over already added vertices (0-based indices).
func (b *Builder) AddFace(indices ...int) error {
	if len(indices) < 3 {
		return fmt.Errorf("%w: %d indices, need at least 3", ErrInvalidFace, len(indices))
	}
	n := len(b.mesh.Vertices)
	for _, i := range indices {
		if i < 0 || i >= n {
			return fmt.Errorf("%w: vertex index %d out of range [0,%d)", ErrInvalidFace, i, n)
		}
	}
	b.mesh.Faces = append(b.mesh.Faces, Face{V: append([]int(nil), indices...)})
	return nil
}

// VertexCount returns the number of vertices added so far.
func (b *Builder) VertexCount() int {
	return len(b.mesh.Vertices)
}

// FaceCount returns the number of faces added so far.
func (b *Builder) FaceCount() int {
	return len(b.mesh.Faces)
}

// Bounds returns the negative and positive corners of the bounding box.
func (b *Builder) Bounds() (neg, pos math3d.Vec3) {
	return b.mesh.boundsNeg, b.mesh.boundsPos
}

// Recenter translates the mesh so its bounding box is centered on the origin.
func (b *Builder) Recenter() {
	m := b.mesh
	size := m.boundsPos.Sub(m.boundsNeg)
	correction := m.boundsNeg.Add(size.Scale(0.5)).Negate()
	if correction == math3d.Zero3() {
		return
	}

	m.Transform(math3d.Translate(correction))
	m.boundsNeg = m.boundsNeg.Add(correction)
	m.boundsPos = m.boundsPos.Add(correction)
}

// Normalize uniformly shrinks the mesh so its largest bounding box dimension
// is at most maxSize. Meshes already within bounds are left untouched. Call it
// after Recenter so the scale happens about the box center.
func (b *Builder) Normalize(maxSize float64) {
	m := b.mesh
	maxDim := m.boundsPos.Sub(m.boundsNeg).MaxComponent()
	if maxDim <= maxSize || maxDim == 0 {
		return
	}

	factor := maxSize / maxDim
	m.Transform(math3d.ScaleUniform(factor))
	m.boundsNeg = m.boundsNeg.Scale(factor)
	m.boundsPos = m.boundsPos.Scale(factor)
}

// Build finishes loading and returns the mesh. The builder must not be used
// afterwards.
func (b *Builder) Build() *Mesh {
	b.built = true
	return b.mesh
}

// Built reports whether Build has been called.
func (b *Builder) Built() bool {
	return b.built
}
