package scheduler

import "fmt"

// Phase is a scheduler state. Each Tick performs exactly one phase step.
type Phase int

const (
	PhaseLoading         Phase = iota // Parse one slice of the model text
	PhaseRecenter                     // Center the bounding box on the origin
	PhaseNormalize                    // Shrink the model to the configured size
	PhaseInitialRotation              // Finalize the mesh and apply the start pose
	PhaseInit                         // Derive draw ticks and run the init hook
	PhaseCompute                      // Rotate and clear
	PhaseDraw                         // Rasterize a slice of faces
	PhaseFlush                        // Emit a band of rows to the display
)

var phaseNames = [...]string{
	PhaseLoading:         "loading",
	PhaseRecenter:        "recenter",
	PhaseNormalize:       "normalize",
	PhaseInitialRotation: "initial-rotation",
	PhaseInit:            "init",
	PhaseCompute:         "compute",
	PhaseDraw:            "draw",
	PhaseFlush:           "flush",
}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Steady reports whether p belongs to the repeating render cycle.
func (p Phase) Steady() bool {
	return p >= PhaseCompute
}
