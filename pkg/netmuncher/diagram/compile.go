package diagram

import (
	"sort"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/component"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/errs"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/refgen"
)

const noConnect = "noconnect"

// childRef names one child node's pin, used while grouping local-net
// connections into a chain of pairwise wires: two or more children sharing
// a local net are drawn as a chain.
type childRef struct {
	node string
	pin  string
}

// Compiler walks the abstract instance tree rooted at Main and builds a
// Diagram. Unlike circuit.Instantiator it never flattens abstract
// components away: every instantiation, abstract or concrete, becomes its
// own Node.
type Compiler struct {
	components map[string]*component.Component
	globalNets map[string]bool

	refs *refgen.Generator
}

// NewCompiler builds a Compiler over a validated design.
func NewCompiler(components []*component.Component, globalNets []string) *Compiler {
	byName := make(map[string]*component.Component, len(components))
	for _, c := range components {
		byName[c.Name] = c
	}
	nets := make(map[string]bool, len(globalNets))
	for _, n := range globalNets {
		nets[n] = true
	}
	return &Compiler{
		components: byName,
		globalNets: nets,
		refs:       refgen.New("_"),
	}
}

// Compile builds the Diagram for the design's Main component.
func (c *Compiler) Compile() (*Diagram, error) {
	main, ok := c.components["Main"]
	if !ok {
		return nil, errs.New(errs.KindInstantiation, "missing component Main")
	}
	mainInstance := &component.Instance{TargetName: "Main"}
	node, err := c.instantiate(main, mainInstance)
	if err != nil {
		return nil, err
	}

	globalNets := append([]string(nil), netsSorted(c.globalNets)...)
	return &Diagram{GlobalNets: globalNets, Main: node}, nil
}

func (c *Compiler) instantiate(comp *component.Component, inst *component.Instance) (*Node, error) {
	node := &Node{Name: c.refs.Next(inst.TargetName), Value: inst.Value}

	for _, pin := range comp.InstancePins() {
		switch pin.Type {
		case component.Input, component.PowerIn:
			node.InputPins = append(node.InputPins, pin.Name)
		case component.Output, component.PowerOut:
			node.OutputPins = append(node.OutputPins, pin.Name)
		default:
			node.OtherPins = append(node.OtherPins, pin.Name)
		}
	}

	netPins := make(map[string][]childRef)
	var netOrder []string

	for i := range comp.Instances {
		childInst := &comp.Instances[i]
		childComp, ok := c.components[childInst.TargetName]
		if !ok {
			return nil, errs.Atf(errs.KindInstantiation, childInst.Tag,
				"unreachable: cannot find component definition for %s", childInst.TargetName)
		}
		childNode, err := c.instantiate(childComp, childInst)
		if err != nil {
			return nil, err
		}

		for _, pin := range childComp.InstancePins() {
			if c.globalNets[pin.Name] {
				node.Connections = append(node.Connections, Connection{
					Name: pin.Name, From: GlobalPoint(pin.Name), To: NodePoint(childNode.Name, pin.Name),
				})
				continue
			}

			target, ok := childInst.FindConnection(pin.Name)
			if !ok {
				if pin.Type != component.NoConnect {
					return nil, errs.Atf(errs.KindInstantiation, childInst.Tag,
						"unreachable: no connection for pin %s of component %s (should have been caught by validation)",
						pin.Name, childComp.Name)
				}
				continue
			}

			if c.globalNets[target] {
				node.Connections = append(node.Connections, Connection{
					Name: pin.Name, From: GlobalPoint(target), To: NodePoint(childNode.Name, pin.Name),
				})
				continue
			}
			if target == noConnect {
				continue
			}

			if comp.NetExists(target) {
				if _, seen := netPins[target]; !seen {
					netOrder = append(netOrder, target)
				}
				netPins[target] = append(netPins[target], childRef{node: childNode.Name, pin: pin.Name})
			} else {
				node.Connections = append(node.Connections, Connection{
					Name: target, From: NodePoint(node.Name, target), To: NodePoint(childNode.Name, pin.Name),
				})
			}
		}

		node.ChildNodes = append(node.ChildNodes, childNode)
	}

	sort.Strings(netOrder)
	for _, netName := range netOrder {
		pins := netPins[netName]
		for i := 0; i < len(pins)-1; i++ {
			left, right := pins[i], pins[i+1]
			node.Connections = append(node.Connections, Connection{
				Name: netName, From: NodePoint(left.node, left.pin), To: NodePoint(right.node, right.pin),
			})
		}
	}

	return node, nil
}

func netsSorted(nets map[string]bool) []string {
	out := make([]string, 0, len(nets))
	for n := range nets {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
