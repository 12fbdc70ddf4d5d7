package models

import (
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

// writeQuadGLB saves a two-triangle quad with the given indices.
func writeQuadGLB(t *testing.T, indices []uint16) string {
	t.Helper()

	positions := [][3]float32{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0}}
	var data []byte
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}
	indexLen := len(data)
	for len(data)%4 != 0 {
		data = append(data, 0)
	}
	posOffset := len(data)
	for _, p := range positions {
		for _, c := range p {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(c))
		}
	}

	doc := &gltf.Document{
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentUshort, Count: len(indices), Type: gltf.AccessorScalar},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentFloat, Count: len(positions), Type: gltf.AccessorVec3},
		},
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: indexLen},
			{Buffer: 0, ByteOffset: posOffset, ByteLength: len(data) - posOffset},
		},
		Meshes: []*gltf.Mesh{{
			Name: "quad",
			Primitives: []*gltf.Primitive{{
				Indices:    gltf.Index(0),
				Attributes: map[string]int{gltf.POSITION: 1},
			}},
		}},
	}

	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	return path
}

func TestLoadGLB(t *testing.T) {
	b, err := LoadGLB(writeQuadGLB(t, []uint16{0, 1, 2, 0, 2, 3}))
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	if b.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want 4", b.VertexCount())
	}
	if b.FaceCount() != 2 {
		t.Errorf("FaceCount() = %d, want 2", b.FaceCount())
	}

	neg, pos := b.Bounds()
	if neg.X != 0 || neg.Y != 0 || pos.X != 2 || pos.Y != 2 {
		t.Errorf("Bounds() = %v, %v", neg, pos)
	}

	mesh := b.Build()
	if mesh.Name != "quad.glb" {
		t.Errorf("Name = %q", mesh.Name)
	}
	if got := mesh.Faces[1].V; len(got) != 3 || got[0] != 0 || got[1] != 2 || got[2] != 3 {
		t.Errorf("face 1 = %v", got)
	}
}

func TestLoadGLBDanglingIndex(t *testing.T) {
	_, err := LoadGLB(writeQuadGLB(t, []uint16{0, 1, 9}))
	if !errors.Is(err, ErrInvalidFace) || !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("err = %v, want invalid face", err)
	}
}
