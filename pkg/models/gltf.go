package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
)

// LoadGLB loads the triangle geometry of a binary glTF file into a new
// builder. Only positions and indices are read; every triangle becomes one
// wireframe face.
func LoadGLB(path string) (*Builder, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	b := NewBuilder(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := addGLTFMesh(doc, m, b); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	return b, nil
}

// addGLTFMesh appends the triangle primitives of m to b.
func addGLTFMesh(doc *gltf.Document, m *gltf.Mesh, b *Builder) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Lines and points have no faces to draw
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := b.VertexCount()
		for _, p := range positions {
			b.AddVertex(float64(p[0]), float64(p[1]), float64(p[2]))
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// Unindexed primitives are sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			err := b.AddFace(base+indices[i], base+indices[i+1], base+indices[i+2])
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidGeometry, err)
			}
		}
	}
	return nil
}

// accessorBytes resolves the embedded buffer slice backing an accessor along
// with its element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.URI != "" {
		return nil, 0, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	start := view.ByteOffset + accessor.ByteOffset
	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if accessor.Count > 0 && start+(accessor.Count-1)*stride+elemSize > len(buffer.Data) {
		return nil, 0, 0, fmt.Errorf("accessor exceeds buffer length %d", len(buffer.Data))
	}
	return buffer.Data, start, stride, nil
}

// readPositions reads a VEC3 float accessor.
func readPositions(doc *gltf.Document, accessorIdx int) ([][3]float32, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	out := make([][3]float32, accessor.Count)
	for i := range out {
		offset := start + i*stride
		for j := range 3 {
			bits := binary.LittleEndian.Uint32(data[offset+j*4:])
			out[i][j] = math.Float32frombits(bits)
		}
	}
	return out, nil
}

// readIndices reads a scalar unsigned index accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	out := make([]int, accessor.Count)
	for i := range out {
		offset := start + i*stride
		switch size {
		case 1:
			out[i] = int(data[offset])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return out, nil
}
