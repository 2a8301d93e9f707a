package serialize

import (
	"encoding/json"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/diagram"
)

// DiagramJSON pretty-prints a compiled Diagram tree.
func DiagramJSON(d *diagram.Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
