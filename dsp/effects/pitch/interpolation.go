package pitch

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-remix/dsp/core"
)

// Interpolation selects the resampler used to restore the original duration.
type Interpolation int

const (
	// InterpPolyphase uses a windowed-sinc polyphase FIR with group delay
	// compensation.
	InterpPolyphase Interpolation = iota
	// InterpCubic uses 4-point Hermite interpolation.
	InterpCubic
	// InterpLinear uses 2-point linear interpolation.
	InterpLinear
)

func (i Interpolation) String() string {
	switch i {
	case InterpPolyphase:
		return "polyphase"
	case InterpCubic:
		return "cubic"
	case InterpLinear:
		return "linear"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation maps a config name to an Interpolation. The empty string
// selects the default.
func ParseInterpolation(name string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "polyphase":
		return InterpPolyphase, nil
	case "cubic", "hermite":
		return InterpCubic, nil
	case "linear":
		return InterpLinear, nil
	default:
		return 0, fmt.Errorf("pitch: unknown interpolation %q: %w", name, core.ErrInvalidParameter)
	}
}
