package render

import (
	"fmt"
	"math"

	"github.com/taigrr/monowire/pkg/math3d"
)

// Projection selects the depth scaling used by a Projector.
type Projection int

const (
	ProjectionExponential Projection = iota // unit = BaseUnit * 2^(z/2)
	ProjectionLinear                        // divide by z, plus horizontal drift
)

func (p Projection) String() string {
	switch p {
	case ProjectionExponential:
		return "exponential"
	case ProjectionLinear:
		return "linear"
	default:
		return fmt.Sprintf("Projection(%d)", int(p))
	}
}

// ParseProjection converts a configuration name to a Projection.
func ParseProjection(s string) (Projection, error) {
	switch s {
	case "", "exponential":
		return ProjectionExponential, nil
	case "linear":
		return ProjectionLinear, nil
	default:
		return 0, fmt.Errorf("unknown projection %q", s)
	}
}

// Projector maps model-space vertices to canvas pixels with a simple
// scale-by-depth pseudo-perspective. It is not a true perspective projection.
type Projector struct {
	CenterX, CenterY float64 // Screen center in pixels
	ScaleX, ScaleY   float64 // Pixels per world unit
	Mode             Projection
	BaseUnit         float64 // Exponential mode: world units per pixel step at z=0
	Drift            float64 // Linear mode: depth-dependent horizontal drift
}

// NewProjector creates an exponential projector centered on a width×height
// canvas.
func NewProjector(width, height int) *Projector {
	scale := float64(min(width, height))
	return &Projector{
		CenterX:  float64(width) / 2,
		CenterY:  float64(height) / 2,
		ScaleX:   scale,
		ScaleY:   scale,
		Mode:     ProjectionExponential,
		BaseUnit: 1,
	}
}

// Project returns the screen position of v offset by the model position.
// A world depth of exactly zero is treated as 1. Screen Y grows downward, so
// world +Y points up.
func (p *Projector) Project(v, offset math3d.Vec3) (x, y float64) {
	wx, wy, z := v.X+offset.X, v.Y+offset.Y, v.Z+offset.Z
	if z == 0 {
		z = 1
	}

	switch p.Mode {
	case ProjectionLinear:
		x = p.CenterX + (wx/z)*p.ScaleX + z*p.Drift/p.ScaleX
		y = p.CenterY - (wy/z)*p.ScaleY
	default:
		unit := p.BaseUnit * math.Exp2(z/2)
		x = p.CenterX + (wx/unit)*p.ScaleX
		y = p.CenterY - (wy/unit)*p.ScaleY
	}
	return x, y
}
