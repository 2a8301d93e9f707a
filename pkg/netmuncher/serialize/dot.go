package serialize

import (
	"fmt"
	"strings"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/circuit"
)

const dotIndentSize = 2

// Dot renders circuit as a Graphviz DOT digraph: rankdir=LR, record-shaped
// component nodes, one nested "cluster_*" subgraph per non-root
// ComponentGroup, and one labelled edge chain per net.
func Dot(circ *circuit.Circuit) ([]byte, error) {
	var out strings.Builder
	fmt.Fprintln(&out, "digraph G {")
	fmt.Fprintf(&out, "%*sgraph[rankdir=LR];\n", dotIndentSize, "")
	fmt.Fprintf(&out, "%*snode[shape=record];\n", dotIndentSize, "")

	for _, sub := range circ.RootGroup.SubGroups {
		writeDotGroup(&out, circ, sub, dotIndentSize)
	}
	for _, reference := range circ.RootGroup.Components {
		writeDotComponent(&out, circ, reference, dotIndentSize)
	}
	for _, net := range circ.Nets {
		nodeRefs := make([]string, len(net.Nodes))
		for i, n := range net.Nodes {
			nodeRefs[i] = fmt.Sprintf("%s:%s", n.Reference, n.PinName)
		}
		fmt.Fprintf(&out, "%*s%s [arrowhead=\"none\",label=\"%s\"];\n",
			dotIndentSize, "", strings.Join(nodeRefs, " -> "), net.Name)
	}

	fmt.Fprintln(&out, "}")
	return []byte(out.String()), nil
}

func writeDotGroup(out *strings.Builder, circ *circuit.Circuit, group *circuit.ComponentGroup, indent int) {
	fmt.Fprintf(out, "%*ssubgraph \"cluster_%s\" {\n", indent, "", group.Name)
	indent += dotIndentSize

	fmt.Fprintf(out, "%*slabel = \"%s\";\n", indent, "", group.Name)
	fmt.Fprintf(out, "%*sstyle = \"dashed\";\n", indent, "")

	for _, sub := range group.SubGroups {
		writeDotGroup(out, circ, sub, indent)
	}
	for _, reference := range group.Components {
		writeDotComponent(out, circ, reference, indent)
	}

	indent -= dotIndentSize
	fmt.Fprintf(out, "%*s}\n", indent, "")
}

func writeDotComponent(out *strings.Builder, circ *circuit.Circuit, reference string, indent int) {
	var instance *circuit.ComponentInstance
	for _, i := range circ.Instances {
		if i.Reference == reference {
			instance = i
			break
		}
	}
	if instance == nil {
		return
	}

	var pins []string
	for _, net := range circ.Nets {
		for _, node := range net.Nodes {
			if node.Reference == reference {
				pins = append(pins, fmt.Sprintf("<%s>%s", node.PinName, node.PinName))
			}
		}
	}

	if len(pins) > 1 {
		pivot := len(pins) / 2
		left := strings.Join(pins[:pivot], "|")
		right := strings.Join(pins[pivot:], "|")
		fmt.Fprintf(out, "%*s%s[label=\"{ {%s}|%s\\n%s|{%s} }\"];\n",
			indent, "", reference, left, reference, instance.Value, right)
	} else {
		fmt.Fprintf(out, "%*s%s[label=\"{ %s\\n%s|{%s} }\"];\n",
			indent, "", reference, reference, instance.Value, strings.Join(pins, "|"))
	}
}
