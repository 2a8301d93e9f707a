// Package serialize implements the three pure output consumers a compiled
// design can be handed to: a KiCad s-expression netlist, a Graphviz DOT
// rendering, and a diagram JSON tree. Each is a single function from its
// own input type to bytes; none mutates or retains its input.
package serialize

import (
	"fmt"
	"strings"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/circuit"
)

// KiCad renders circuit as a KiCad D-version netlist. The sheet path
// attached to each component is derived by walking the design's
// ComponentGroup tree for the group that owns its reference.
func KiCad(circ *circuit.Circuit) ([]byte, error) {
	var out string
	out += "(export (version D)\n"
	out += "  (design\n"
	out += "    (source \"netmuncher_generated\")\n"
	out += "    (tool \"netmuncher (0.1)\")\n"
	out += sheetList(circ.RootGroup)
	out += "  )\n"
	out += "  (components\n"
	for _, instance := range circ.Instances {
		out += fmt.Sprintf("    (comp (ref %s)\n", instance.Reference)
		out += fmt.Sprintf("      (value %s)\n", instance.Value)
		out += fmt.Sprintf("      (footprint %s)\n", instance.Footprint)
		out += fmt.Sprintf("      (sheetpath (names \"%s\")))\n", sheetPath(circ.RootGroup, instance.Reference))
	}
	out += "  )\n"
	out += "  (nets\n"
	for index, net := range circ.Nets {
		out += fmt.Sprintf("    (net (code %d) (name \"%s\")\n", index, net.Name)
		for _, node := range net.Nodes {
			out += fmt.Sprintf("      (node (ref %s) (pin %d))\n", node.Reference, node.PinNumber)
		}
		out += "    )\n"
	}
	out += "  )\n"
	out += ")\n"
	return []byte(out), nil
}

// sheetList enumerates the group tree depth-first, one (sheet ...) entry
// per group. The root group renders as "/", nested groups as
// "/<group>/<subgroup>/".
func sheetList(root *circuit.ComponentGroup) string {
	var out strings.Builder
	number := 0
	var walk func(group *circuit.ComponentGroup, path string)
	walk = func(group *circuit.ComponentGroup, path string) {
		number++
		fmt.Fprintf(&out, "    (sheet (number %d) (name \"%s\") (tstamps \"%s\"))\n", number, path, path)
		for _, sub := range group.SubGroups {
			walk(sub, path+sub.Name+"/")
		}
	}
	walk(root, "/")
	return out.String()
}

// sheetPath walks the group tree down to the group owning reference and
// joins the group names (skipping the synthetic "root") with "/".
func sheetPath(root *circuit.ComponentGroup, reference string) string {
	path := root.Path(reference)
	if len(path) == 0 {
		return "/"
	}
	names := path[1:] // drop the synthetic "root" entry
	if len(names) == 0 {
		return "/"
	}
	return "/" + strings.Join(names, "/") + "/"
}
