package serialize

import (
	"strings"
	"testing"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/circuit"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/component"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/diagram"
)

func sampleCircuit() *circuit.Circuit {
	root := &circuit.ComponentGroup{Name: "root", Components: []string{"R1"}}
	return &circuit.Circuit{
		Instances: []*circuit.ComponentInstance{
			{Reference: "R1", Value: "10k", Footprint: "R_0603"},
		},
		Nets: []*circuit.Net{
			{Name: "VCC", Nodes: []circuit.Node{
				{Reference: "R1", PinNumber: 1, PinName: "A", PinType: component.Passive},
				{Reference: "R1", PinNumber: 2, PinName: "B", PinType: component.Passive},
			}},
		},
		RootGroup: root,
	}
}

func TestKiCadIncludesComponentsAndNets(t *testing.T) {
	out, err := KiCad(sampleCircuit())
	if err != nil {
		t.Fatalf("KiCad failed: %v", err)
	}
	s := string(out)
	for _, want := range []string{"(export (version D)", "(sheet (number 1) (name \"/\")", "(comp (ref R1)", "(value 10k)", "(footprint R_0603)", "(net (code 0) (name \"VCC\")", "(node (ref R1) (pin 1))", "(sheetpath (names \"/\"))"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected KiCad output to contain %q, got:\n%s", want, s)
		}
	}
}

func TestKiCadSheetPathForNestedGroup(t *testing.T) {
	circ := sampleCircuit()
	circ.RootGroup = &circuit.ComponentGroup{
		Name: "root",
		SubGroups: []*circuit.ComponentGroup{
			{Name: "Divider1", Components: []string{"R1"}},
		},
	}
	out, err := KiCad(circ)
	if err != nil {
		t.Fatalf("KiCad failed: %v", err)
	}
	if !strings.Contains(string(out), "(sheetpath (names \"/Divider1/\"))") {
		t.Errorf("expected nested sheetpath, got:\n%s", out)
	}
	if !strings.Contains(string(out), "(sheet (number 2) (name \"/Divider1/\")") {
		t.Errorf("expected a sheet entry for the nested group, got:\n%s", out)
	}
}

func TestDotIncludesRankdirAndNets(t *testing.T) {
	out, err := Dot(sampleCircuit())
	if err != nil {
		t.Fatalf("Dot failed: %v", err)
	}
	s := string(out)
	for _, want := range []string{"digraph G {", "rankdir=LR", "node[shape=record]", "R1:A -> R1:B", "label=\"VCC\""} {
		if !strings.Contains(s, want) {
			t.Errorf("expected Dot output to contain %q, got:\n%s", want, s)
		}
	}
}

func TestDotWrapsNonRootGroupsInClusters(t *testing.T) {
	circ := sampleCircuit()
	circ.RootGroup = &circuit.ComponentGroup{
		Name: "root",
		SubGroups: []*circuit.ComponentGroup{
			{Name: "Divider1", Components: []string{"R1"}},
		},
	}
	out, err := Dot(circ)
	if err != nil {
		t.Fatalf("Dot failed: %v", err)
	}
	if !strings.Contains(string(out), "subgraph \"cluster_Divider1\" {") {
		t.Errorf("expected a cluster_Divider1 subgraph, got:\n%s", out)
	}
}

func TestDiagramJSONShape(t *testing.T) {
	d := &diagram.Diagram{
		GlobalNets: []string{"GND", "VCC"},
		Main: &diagram.Node{
			Name:       "Main_1",
			InputPins:  []string{"A"},
			OutputPins: []string{"Y"},
			Connections: []diagram.Connection{
				{Name: "VCC", From: diagram.GlobalPoint("VCC"), To: diagram.NodePoint("R1_1", "A")},
			},
		},
	}
	out, err := DiagramJSON(d)
	if err != nil {
		t.Fatalf("DiagramJSON failed: %v", err)
	}
	s := string(out)
	for _, want := range []string{"\"global_nets\"", "\"main\"", "\"Main_1\"", "\"typ\": \"Global\"", "\"net\": \"VCC\""} {
		if !strings.Contains(s, want) {
			t.Errorf("expected diagram JSON to contain %q, got:\n%s", want, s)
		}
	}
}
