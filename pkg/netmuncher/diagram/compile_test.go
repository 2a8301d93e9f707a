package diagram

import (
	"testing"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/component"
)

func diagramResistor() *component.Component {
	c := &component.Component{
		Name: "Resistor", Kind: component.Concrete,
		Footprint: "R_0603", Prefix: "R", DefaultValue: "10k",
		SharedPins: []component.Pin{
			{Name: "A", Type: component.Passive, Number: 1},
			{Name: "B", Type: component.Passive, Number: 2},
		},
	}
	c.BuildUnits()
	return c
}

func TestCompileLeafPinClassification(t *testing.T) {
	r := diagramResistor()
	main := &component.Component{
		Name: "Main", Kind: component.Abstract,
		Instances: []component.Instance{
			{TargetName: "Resistor", Connections: []component.Connection{
				{PinName: "A", TargetName: "VCC"},
				{PinName: "B", TargetName: "GND"},
			}},
		},
	}

	compiler := NewCompiler([]*component.Component{main, r}, []string{"VCC", "GND"})
	diagram, err := compiler.Compile()
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if diagram.Main.Name != "Main_1" {
		t.Fatalf("expected root node named Main_1, got %s", diagram.Main.Name)
	}
	if len(diagram.Main.ChildNodes) != 1 {
		t.Fatalf("expected 1 child node, got %d", len(diagram.Main.ChildNodes))
	}
	child := diagram.Main.ChildNodes[0]
	if child.Name != "Resistor_1" {
		t.Fatalf("expected child named Resistor_1, got %s", child.Name)
	}
	if len(child.OtherPins) != 2 {
		t.Fatalf("expected both passive pins classified as other, got %+v", child)
	}
	if len(diagram.Main.Connections) != 2 {
		t.Fatalf("expected 2 global-net connections, got %d", len(diagram.Main.Connections))
	}
	for _, conn := range diagram.Main.Connections {
		if conn.From.Typ != "Global" {
			t.Fatalf("expected global-net connection, got %+v", conn)
		}
	}
}

func TestCompileLocalNetChainsTwoChildren(t *testing.T) {
	r := diagramResistor()
	main := &component.Component{
		Name: "Main", Kind: component.Abstract,
		Nets: []string{"MID"},
		Instances: []component.Instance{
			{TargetName: "Resistor", Connections: []component.Connection{
				{PinName: "A", TargetName: "VCC"},
				{PinName: "B", TargetName: "MID"},
			}},
			{TargetName: "Resistor", Connections: []component.Connection{
				{PinName: "A", TargetName: "MID"},
				{PinName: "B", TargetName: "GND"},
			}},
		},
	}

	compiler := NewCompiler([]*component.Component{main, r}, []string{"VCC", "GND"})
	diagram, err := compiler.Compile()
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(diagram.Main.ChildNodes) != 2 {
		t.Fatalf("expected 2 children, got %d", len(diagram.Main.ChildNodes))
	}

	var chainConn *Connection
	for i := range diagram.Main.Connections {
		if diagram.Main.Connections[i].Name == "MID" {
			chainConn = &diagram.Main.Connections[i]
		}
	}
	if chainConn == nil {
		t.Fatalf("expected a MID chain connection, got %+v", diagram.Main.Connections)
	}
	if chainConn.From.Typ != "Node" || chainConn.To.Typ != "Node" {
		t.Fatalf("expected a node-to-node chain connection, got %+v", chainConn)
	}
}

func TestCompileMissingMainFails(t *testing.T) {
	compiler := NewCompiler(nil, nil)
	if _, err := compiler.Compile(); err == nil {
		t.Fatal("expected a missing-Main error")
	}
}

func TestCompileNestedAbstractComponent(t *testing.T) {
	r := diagramResistor()
	divider := &component.Component{
		Name: "Divider", Kind: component.Abstract,
		AbstractPins: []component.AbstractPin{
			{Name: "TOP", Type: component.Passive},
			{Name: "BOTTOM", Type: component.Passive},
		},
		Nets: []string{"MID"},
		Instances: []component.Instance{
			{TargetName: "Resistor", Connections: []component.Connection{
				{PinName: "A", TargetName: "TOP"},
				{PinName: "B", TargetName: "MID"},
			}},
			{TargetName: "Resistor", Connections: []component.Connection{
				{PinName: "A", TargetName: "MID"},
				{PinName: "B", TargetName: "BOTTOM"},
			}},
		},
	}
	main := &component.Component{
		Name: "Main", Kind: component.Abstract,
		Instances: []component.Instance{
			{TargetName: "Divider", Connections: []component.Connection{
				{PinName: "TOP", TargetName: "VCC"},
				{PinName: "BOTTOM", TargetName: "GND"},
			}},
		},
	}

	compiler := NewCompiler([]*component.Component{main, divider, r}, []string{"VCC", "GND"})
	diagram, err := compiler.Compile()
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(diagram.Main.ChildNodes) != 1 {
		t.Fatalf("expected 1 child (the Divider instance), got %d", len(diagram.Main.ChildNodes))
	}
	dividerNode := diagram.Main.ChildNodes[0]
	if dividerNode.Name != "Divider_1" {
		t.Fatalf("expected child named Divider_1, got %s", dividerNode.Name)
	}
	if len(dividerNode.ChildNodes) != 2 {
		t.Fatalf("expected the divider to itself have 2 resistor children, got %d", len(dividerNode.ChildNodes))
	}
}
