package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestTranslateLastRow(t *testing.T) {
	m := Translate(V3(1, -2, 3))

	if m[12] != 1 || m[13] != -2 || m[14] != 3 {
		t.Errorf("translation should live in the bottom row, got %v", m)
	}

	p := m.MulPoint(V3(1, 1, 1))
	if p != V3(2, -1, 4) {
		t.Errorf("MulPoint = %v, want (2, -1, 4)", p)
	}
}

func TestScale(t *testing.T) {
	p := ScaleUniform(2).MulPoint(V3(1, -2, 0.5))
	if p != V3(2, -4, 1) {
		t.Errorf("ScaleUniform(2) = %v, want (2, -4, 1)", p)
	}
}

func TestRotateAxes(t *testing.T) {
	quarter := math.Pi / 2

	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"yaw moves +X to -Z", RotateY(quarter), V3(1, 0, 0), V3(0, 0, -1)},
		{"yaw keeps Y", RotateY(quarter), V3(0, 1, 0), V3(0, 1, 0)},
		{"pitch moves +Y to +Z", RotateX(quarter), V3(0, 1, 0), V3(0, 0, 1)},
		{"roll moves +X to +Y", RotateZ(quarter), V3(1, 0, 0), V3(0, 1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.m.MulPoint(tc.in)
			if !got.ApproxEqual(tc.want, eps) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRotationYawPitchRollOrder(t *testing.T) {
	yaw, pitch, roll := 0.3, -0.7, 1.1
	m := RotationYawPitchRoll(yaw, pitch, roll)
	p := V3(1, 2, 3)

	stepwise := RotateY(yaw).MulPoint(RotateX(pitch).MulPoint(RotateZ(roll).MulPoint(p)))
	if got := m.MulPoint(p); !got.ApproxEqual(stepwise, eps) {
		t.Errorf("combined = %v, stepwise = %v", got, stepwise)
	}
}

func TestRotationReversible(t *testing.T) {
	angles := [][3]float64{
		{0, 0, 0},
		{0.1, 0.2, 0.3},
		{math.Pi, -math.Pi / 3, 2.5},
		{-4, 7, -0.001},
	}
	points := []Vec3{V3(1, 0, 0), V3(-3, 2.5, 7), V3(0.001, -1e3, 42)}

	for _, a := range angles {
		fwd := RotationYawPitchRoll(a[0], a[1], a[2])
		inv := RotateY(-a[0]).Mul(RotateX(-a[1])).Mul(RotateZ(-a[2]))

		for _, p := range points {
			back := inv.MulPoint(fwd.MulPoint(p))
			if !back.ApproxEqual(p, 1e-9*math.Max(1, p.Len())) {
				t.Errorf("angles %v: %v -> %v", a, p, back)
			}
			viaTranspose := fwd.Transpose().MulPoint(fwd.MulPoint(p))
			if !viaTranspose.ApproxEqual(p, 1e-9*math.Max(1, p.Len())) {
				t.Errorf("angles %v: transpose inverse %v -> %v", a, p, viaTranspose)
			}
		}
	}
}

func TestMulIdentity(t *testing.T) {
	m := RotationYawPitchRoll(0.4, 0.5, 0.6).Mul(Translate(V3(1, 2, 3)))
	if m.Mul(Identity()) != m {
		t.Error("m * I should equal m")
	}
	if Identity().Mul(m) != m {
		t.Error("I * m should equal m")
	}
}

func TestMulComposesInOrder(t *testing.T) {
	// Scale then translate
	m := ScaleUniform(2).Mul(Translate(V3(1, 0, 0)))
	if got := m.MulPoint(V3(1, 1, 1)); got != V3(3, 2, 2) {
		t.Errorf("got %v, want (3, 2, 2)", got)
	}
}

func TestDeterministic(t *testing.T) {
	a := RotationYawPitchRoll(0.123, 0.456, 0.789).MulPoint(V3(1.5, -2.5, 3.5))
	b := RotationYawPitchRoll(0.123, 0.456, 0.789).MulPoint(V3(1.5, -2.5, 3.5))
	if a != b {
		t.Errorf("same inputs gave %v and %v", a, b)
	}
}
