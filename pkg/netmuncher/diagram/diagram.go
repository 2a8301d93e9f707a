// Package diagram builds a nested, human-readable view of a design's
// instance tree, distinct from circuit.Circuit's flat netlist output.
// Rather than flattening abstract components away, it keeps every
// instantiation (abstract or concrete) as its own Node, so a downstream
// viewer can render the design the way it was written.
package diagram

// Point identifies one endpoint of a Connection: either a named global
// net, or a named pin on a specific child Node. The two variants share a
// single struct with omitted-when-empty fields, so the JSON shape stays
// {"typ":"Global","net":"..."} or {"typ":"Node","node":"...","pin":"..."}.
type Point struct {
	Typ  string `json:"typ"`
	Net  string `json:"net,omitempty"`
	Node string `json:"node,omitempty"`
	Pin  string `json:"pin,omitempty"`
}

// GlobalPoint builds a Point referring to a global net.
func GlobalPoint(net string) Point {
	return Point{Typ: "Global", Net: net}
}

// NodePoint builds a Point referring to a pin on a named child node.
func NodePoint(node, pin string) Point {
	return Point{Typ: "Node", Node: node, Pin: pin}
}

// Connection is one wire drawn between two Points, named after the net or
// pin it represents.
type Connection struct {
	Name string `json:"name"`
	From Point  `json:"from"`
	To   Point  `json:"to"`
}

// Node is one instantiation in the design tree: either of an abstract
// component (in which case ChildNodes and Connections describe its body)
// or of a concrete one (a leaf with no children or internal connections).
type Node struct {
	Name  string  `json:"name"`
	Value *string `json:"value,omitempty"`

	InputPins  []string `json:"input_pins"`
	OutputPins []string `json:"output_pins"`
	OtherPins  []string `json:"other_pins"`

	ChildNodes  []*Node      `json:"child_nodes"`
	Connections []Connection `json:"connections"`
}

// Diagram is the root of a compiled design tree.
type Diagram struct {
	GlobalNets []string `json:"global_nets"`
	Main       *Node    `json:"main"`
}
