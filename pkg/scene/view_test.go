package scene

import (
	"math"
	"testing"
	"time"

	"github.com/taigrr/monowire/pkg/math3d"
	"github.com/taigrr/monowire/pkg/models"
	"github.com/taigrr/monowire/pkg/render"
)

func loadTriangle(t *testing.T) *models.Mesh {
	t.Helper()
	b := models.NewBuilder("triangle")
	lines := models.SplitLines("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	if err := models.ParseRange(lines, b, 0, len(lines)-1); err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	return b.Build()
}

func TestTriangleEndToEnd(t *testing.T) {
	mesh := loadTriangle(t)
	if mesh.VertexCount() != 3 || mesh.FaceCount() != 1 || mesh.Faces[0].Arity() != 3 {
		t.Fatalf("got %d vertices, %d faces", mesh.VertexCount(), mesh.FaceCount())
	}
	mesh.Position = math3d.V3(0, 0, 5)

	canvas := render.NewCanvas(10, 10)
	proj := render.NewProjector(10, 10)
	view := NewModelView(mesh, proj, canvas, NewSpinner(Rotation{}, 60, false))

	view.Compute()
	if work := view.Draw(); work != 3 {
		t.Errorf("Draw() work = %d, want 3", work)
	}

	// At z=5 one world unit spans 10/2^2.5 ≈ 1.77 pixels, so the corners land
	// on (5,5), (7,5) and (5,3).
	want := map[[2]int]bool{
		{5, 5}: true, {6, 5}: true, {7, 5}: true, // bottom edge
		{6, 4}: true, // hypotenuse
		{5, 3}: true, {5, 4}: true, // left edge
	}
	for y := range 10 {
		for x := range 10 {
			if got := canvas.Pixel(x, y); got != want[[2]int{x, y}] {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want[[2]int{x, y}])
			}
		}
	}
	if canvas.Count() != len(want) {
		t.Errorf("Count() = %d, want %d", canvas.Count(), len(want))
	}
}

func TestDrawFarVertexStaysBounded(t *testing.T) {
	b := models.NewBuilder("far")
	lines := models.SplitLines("v 0 0 0\nv 1 0 -40\nv 0 1 0\nf 1 2 3\n")
	if err := models.ParseRange(lines, b, 0, len(lines)-1); err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	mesh := b.Build()
	mesh.Position = math3d.V3(0, 0, 4)

	canvas := render.NewCanvas(10, 10)
	view := NewModelView(mesh, render.NewProjector(10, 10), canvas, nil)

	done := make(chan int)
	go func() { done <- view.Draw() }()
	select {
	case work := <-done:
		if work != 3 {
			t.Errorf("Draw() work = %d, want 3", work)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Draw did not finish")
	}

	// The on-screen edge between the near corners is still drawn
	if !canvas.Pixel(5, 5) || canvas.Count() == 0 {
		t.Errorf("near corner missing, Count() = %d", canvas.Count())
	}
}

func TestComputeClears(t *testing.T) {
	canvas := render.NewCanvas(8, 8)
	canvas.Clear(true)
	view := NewModelView(nil, render.NewProjector(8, 8), canvas, nil)

	view.Compute()
	if canvas.Count() != 0 {
		t.Errorf("Count() = %d after Compute, want 0", canvas.Count())
	}

	canvas.SetPixel(1, 1, true)
	view.AutoClear = false
	view.Compute()
	if !canvas.Pixel(1, 1) {
		t.Error("Compute cleared canvas with AutoClear off")
	}
}

func TestComputeRotates(t *testing.T) {
	mesh := loadTriangle(t)
	view := NewModelView(mesh, render.NewProjector(8, 8), render.NewCanvas(8, 8),
		NewSpinner(Rotation{Yaw: math.Pi / 2}, 60, false))

	view.Compute()

	// Yaw a quarter turn about Y takes +X to -Z or +Z; X must vanish
	v := mesh.Vertices[1]
	if math.Abs(v.X) > 1e-9 || math.Abs(math.Abs(v.Z)-1) > 1e-9 {
		t.Errorf("vertex 1 after yaw = %v", v)
	}
	if mesh.Vertices[2] != math3d.V3(0, 1, 0) {
		t.Errorf("vertex on the yaw axis moved: %v", mesh.Vertices[2])
	}
}

func TestDrawRangeSplitMatchesDraw(t *testing.T) {
	b := models.NewBuilder("cube")
	for _, c := range [][3]float64{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	} {
		b.AddVertex(c[0], c[1], c[2])
	}
	for _, f := range [][]int{
		{0, 1, 2, 3}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{2, 3, 7, 6}, {0, 3, 7, 4}, {1, 2, 6, 5},
	} {
		if err := b.AddFace(f...); err != nil {
			t.Fatal(err)
		}
	}
	mesh := b.Build()
	mesh.Position = math3d.V3(0, 0, 4)
	mesh.Rotate(0.3, 0.2, 0.1)

	whole := render.NewCanvas(32, 32)
	NewModelView(mesh, render.NewProjector(32, 32), whole, nil).Draw()

	split := render.NewCanvas(32, 32)
	view := NewModelView(mesh, render.NewProjector(32, 32), split, nil)
	work := 0
	for _, r := range [][2]int{{0, 2}, {2, 5}, {5, 6}, {6, 100}, {-3, 0}} {
		work += view.DrawRange(r[0], r[1])
	}

	if work != mesh.EdgeCount() {
		t.Errorf("work = %d, want %d", work, mesh.EdgeCount())
	}
	for y := range 32 {
		for x := range 32 {
			if whole.Pixel(x, y) != split.Pixel(x, y) {
				t.Fatalf("pixel (%d, %d) differs", x, y)
			}
		}
	}
}

func TestDrawFaceOutOfRange(t *testing.T) {
	view := NewModelView(loadTriangle(t), render.NewProjector(8, 8), render.NewCanvas(8, 8), nil)
	for _, i := range []int{-1, 1, 50} {
		if got := view.DrawFace(i); got != 0 {
			t.Errorf("DrawFace(%d) = %d, want 0", i, got)
		}
	}
	if view.Canvas.Count() != 0 {
		t.Error("out of range faces drew pixels")
	}
}

func TestDrawWithoutMesh(t *testing.T) {
	view := NewModelView(nil, render.NewProjector(8, 8), render.NewCanvas(8, 8), nil)
	if view.Draw() != 0 || view.DrawRange(0, 10) != 0 {
		t.Error("Draw without mesh reported work")
	}
}

func TestEraseMode(t *testing.T) {
	mesh := loadTriangle(t)
	mesh.Position = math3d.V3(0, 0, 5)
	canvas := render.NewCanvas(10, 10)
	view := NewModelView(mesh, render.NewProjector(10, 10), canvas, nil)
	view.Erase = true

	view.Compute()
	view.Draw()

	lit := canvas.Count()
	if lit == 100 || lit < 90 {
		t.Errorf("Count() = %d, want a few dark edge pixels on a lit canvas", lit)
	}
}

func TestCaption(t *testing.T) {
	mesh := loadTriangle(t)
	mesh.Position = math3d.V3(0, 0, 5)

	plain := render.NewCanvas(64, 32)
	NewModelView(mesh, render.NewProjector(64, 32), plain, nil).Draw()

	captioned := render.NewCanvas(64, 32)
	view := NewModelView(mesh, render.NewProjector(64, 32), captioned, nil)
	view.Caption = "HI"
	view.DrawRange(0, 0)
	if captioned.Count() != 0 {
		t.Error("caption drawn before the last face")
	}
	view.Draw()

	if captioned.Count() <= plain.Count() {
		t.Errorf("caption added no pixels: %d <= %d", captioned.Count(), plain.Count())
	}
}
