package httpapi

import (
	"fmt"

	"github.com/arybakin/routeweave/instructions"
)

// renderInstruction formats a single Instruction into the rendered
// sentence spec.md §6 specifies. Distance is omitted below 1 meter.
func renderInstruction(instr instructions.Instruction) string {
	switch instr.Maneuver {
	case instructions.Start:
		return fmt.Sprintf("Start on %s", instr.StreetName)
	case instructions.Continue:
		return withDistance(fmt.Sprintf("Continue on %s", instr.StreetName), instr.DistanceMeters)
	case instructions.Left:
		return withDistance(fmt.Sprintf("Turn left onto %s", instr.StreetName), instr.DistanceMeters)
	case instructions.Right:
		return withDistance(fmt.Sprintf("Turn right onto %s", instr.StreetName), instr.DistanceMeters)
	case instructions.KeepLeft:
		return withDistance(fmt.Sprintf("Keep left on %s", instr.StreetName), instr.DistanceMeters)
	case instructions.KeepRight:
		return withDistance(fmt.Sprintf("Keep right on %s", instr.StreetName), instr.DistanceMeters)
	case instructions.Arrive:
		return "You have arrived"
	default:
		return string(instr.Maneuver)
	}
}

func withDistance(base string, meters float64) string {
	if meters < 1 {
		return base
	}
	return fmt.Sprintf("%s for %.0f m", base, meters)
}

// renderInstructions formats a full instruction stream into the
// ordered sentences carried in the GeoJSON response's
// properties.instructions array.
func renderInstructions(instrs []instructions.Instruction) []string {
	out := make([]string, len(instrs))
	for i, instr := range instrs {
		out[i] = renderInstruction(instr)
	}
	return out
}
