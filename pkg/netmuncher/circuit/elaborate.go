package circuit

import (
	"fmt"
	"strings"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/component"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/erc"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/errs"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/refgen"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/source"
)

const noConnect = "noconnect"

// unitEntry is one not-yet-consumed logical unit of a multi-unit physical
// component, still sharing the reference it was allocated under.
type unitEntry struct {
	reference string
	unit      component.Unit
}

// Instantiator recursively expands the abstract tree rooted at Main into a
// flat Circuit. It owns the reference generator, the
// in-progress net table (with connect-declaration aliasing), and the
// per-component-name unit tracker queues.
type Instantiator struct {
	sources    *source.Sources
	components map[string]*component.Component
	globalNets map[string]bool

	refs *refgen.Generator

	nets      []*Net
	netIndex  map[string]*Net
	netAlias  map[string]string
	unitQueue map[string][]unitEntry

	instances []*ComponentInstance
}

// NewInstantiator builds an Instantiator over a validated design.
func NewInstantiator(sources *source.Sources, components []*component.Component, globalNets []string) *Instantiator {
	byName := make(map[string]*component.Component, len(components))
	for _, c := range components {
		byName[c.Name] = c
	}
	nets := make(map[string]bool, len(globalNets))
	for _, n := range globalNets {
		nets[n] = true
	}
	return &Instantiator{
		sources:    sources,
		components: byName,
		globalNets: nets,
		refs:       refgen.New(""),
		netIndex:   make(map[string]*Net),
		netAlias:   make(map[string]string),
		unitQueue:  make(map[string][]unitEntry),
	}
}

// Instantiate elaborates main into a flat Circuit, then checks the
// post-elaboration invariants: a non-empty circuit, and every net having
// at least two nodes.
func (ins *Instantiator) Instantiate(main *component.Component, globalNetOrder []string) (*Circuit, error) {
	for _, name := range globalNetOrder {
		ins.addNet(name)
	}

	root := &ComponentGroup{Name: "root"}
	mainRef := ins.refs.Next(main.Name)
	if err := ins.elaborateAbstractBody(main, nil, mainRef, map[string]string{}, root); err != nil {
		return nil, err
	}

	if len(ins.instances) == 0 {
		return nil, errs.New(errs.KindInstantiation, "empty circuit: no concrete components")
	}
	for _, n := range ins.nets {
		if len(n.Nodes) < 2 {
			return nil, errs.Newf(errs.KindInstantiation, "net named %s needs to have more than one connection", n.Name)
		}
	}

	return &Circuit{Instances: ins.instances, Nets: ins.nets, RootGroup: root}, nil
}

// elaborateAbstractBody expands an abstract component's nets, its own
// pins (resolved against inst's connections in the enclosing scope, or
// skipped entirely when inst is nil, i.e. for Main), and its instances.
// group is the ComponentGroup this component's contents belong to; for
// Main that's the circuit's root group, for a nested abstract instance
// it's the child group allocated by the caller. ref is the anonymous
// reference already allocated for this expansion, used to suffix this
// scope's local net names.
func (ins *Instantiator) elaborateAbstractBody(comp *component.Component, inst *component.Instance, ref string, outerNetMap map[string]string, group *ComponentGroup) error {
	newNetMap := make(map[string]string, len(comp.Nets)+len(comp.AbstractPins))

	for _, n := range comp.Nets {
		canonical := n + "." + ref
		ins.addNet(canonical)
		newNetMap[n] = canonical
	}

	for _, pin := range comp.AbstractPins {
		if ins.globalNets[pin.Name] {
			newNetMap[pin.Name] = pin.Name
			continue
		}
		target, ok := inst.FindConnection(pin.Name)
		if !ok {
			return errs.Newf(errs.KindInstantiation, "unreachable: no connection for pin %s of component %s (should have been caught by validation)", pin.Name, comp.Name)
		}
		if target == noConnect {
			newNetMap[pin.Name] = noConnect
			continue
		}
		if resolved, ok := outerNetMap[target]; ok {
			newNetMap[pin.Name] = resolved
		} else if ins.globalNets[target] {
			newNetMap[pin.Name] = target
		} else {
			return errs.Newf(errs.KindInstantiation, "unreachable: cannot resolve connection target %s for pin %s of component %s", target, pin.Name, comp.Name)
		}
	}

	for i := range comp.Instances {
		if err := ins.elaborateInstance(&comp.Instances[i], newNetMap, group); err != nil {
			return err
		}
	}

	for _, cp := range comp.Connects {
		for i := range cp.Left {
			leftCanon, ok := ins.resolveConnectSymbol(newNetMap, cp.Left[i])
			if !ok {
				return errs.At(errs.KindInstantiation, cp.Tag, fmt.Sprintf("could not find pin named '%s' to connect to '%s'", cp.Left[i], cp.Right[i]))
			}
			rightCanon, ok := ins.resolveConnectSymbol(newNetMap, cp.Right[i])
			if !ok {
				return errs.At(errs.KindInstantiation, cp.Tag, fmt.Sprintf("could not find pin named '%s' to connect to '%s'", cp.Right[i], cp.Left[i]))
			}
			ins.alias(rightCanon, leftCanon)
		}
	}

	return nil
}

func (ins *Instantiator) resolveConnectSymbol(netMap map[string]string, sym string) (string, bool) {
	if v, ok := netMap[sym]; ok {
		return v, true
	}
	if ins.globalNets[sym] {
		return sym, true
	}
	return "", false
}

func (ins *Instantiator) elaborateInstance(inst *component.Instance, outerNetMap map[string]string, group *ComponentGroup) error {
	target, ok := ins.components[inst.TargetName]
	if !ok {
		return errs.Atf(errs.KindInstantiation, inst.Tag, "unreachable: cannot find component definition for %s", inst.TargetName)
	}

	if target.IsAbstract() {
		ref := ins.refs.Next(target.Name)
		child := &ComponentGroup{Name: ref}
		group.SubGroups = append(group.SubGroups, child)
		return ins.elaborateAbstractBody(target, inst, ref, outerNetMap, child)
	}
	if target.HasUnits() {
		return ins.elaborateUnitInstance(inst, target, outerNetMap, group)
	}
	return ins.elaborateConcreteInstance(inst, target, outerNetMap, group)
}

func (ins *Instantiator) resolveValue(inst *component.Instance, target *component.Component) string {
	if inst.Value != nil {
		return *inst.Value
	}
	return target.DefaultValue
}

func (ins *Instantiator) elaborateUnitInstance(inst *component.Instance, target *component.Component, outerNetMap map[string]string, group *ComponentGroup) error {
	queue := ins.unitQueue[target.Name]
	if len(queue) == 0 {
		ref := ins.refs.Next(target.Prefix)
		ins.instances = append(ins.instances, &ComponentInstance{
			Reference: ref, Value: ins.resolveValue(inst, target), Footprint: target.Footprint,
		})
		group.Components = append(group.Components, ref)
		for _, u := range target.Units {
			queue = append(queue, unitEntry{reference: ref, unit: u})
		}
	}

	entry := queue[0]
	ins.unitQueue[target.Name] = queue[1:]

	return ins.wireInstancePins(inst, target.Name, entry.reference, entry.unit.Pins, outerNetMap)
}

func (ins *Instantiator) elaborateConcreteInstance(inst *component.Instance, target *component.Component, outerNetMap map[string]string, group *ComponentGroup) error {
	ref := ins.refs.Next(target.Prefix)
	ins.instances = append(ins.instances, &ComponentInstance{
		Reference: ref, Value: ins.resolveValue(inst, target), Footprint: target.Footprint,
	})
	group.Components = append(group.Components, ref)

	return ins.wireInstancePins(inst, target.Name, ref, target.FirstUnit().Pins, outerNetMap)
}

func (ins *Instantiator) wireInstancePins(inst *component.Instance, componentName, reference string, pins []component.Pin, netMap map[string]string) error {
	for _, pin := range pins {
		if pin.Type == component.NoConnect {
			continue
		}
		node := Node{Reference: reference, PinNumber: pin.Number, PinName: pin.Name, PinType: pin.Type}

		if ins.globalNets[pin.Name] {
			if err := ins.addNode(pin.Name, node); err != nil {
				return err
			}
			continue
		}

		target, ok := inst.FindConnection(pin.Name)
		if !ok {
			return errs.Atf(errs.KindInstantiation, inst.Tag,
				"no connection stated for pin %s on component %s", pin.Name, componentName)
		}
		if target == noConnect {
			continue
		}

		resolved, ok := netMap[target]
		if !ok {
			if ins.globalNets[target] {
				resolved = target
			} else {
				return errs.Atf(errs.KindInstantiation, inst.Tag,
					"cannot find connection named %s on component %s", target, componentName)
			}
		}
		if resolved == noConnect {
			continue
		}
		if err := ins.addNode(resolved, node); err != nil {
			return err
		}
	}
	return nil
}

func (ins *Instantiator) addNet(name string) *Net {
	if existing, ok := ins.netIndex[name]; ok {
		return existing
	}
	n := &Net{Name: name}
	ins.nets = append(ins.nets, n)
	ins.netIndex[name] = n
	return n
}

func (ins *Instantiator) resolveAlias(name string) string {
	for {
		next, ok := ins.netAlias[name]
		if !ok {
			return name
		}
		name = next
	}
}

func (ins *Instantiator) addNode(netName string, node Node) error {
	canonical := ins.resolveAlias(netName)
	net, ok := ins.netIndex[canonical]
	if !ok {
		return errs.Newf(errs.KindInstantiation, "unreachable: net %s not found", canonical)
	}
	for _, existing := range net.Nodes {
		result := erc.CheckElectrical(existing.PinType, node.PinType)
		if result == erc.Valid {
			continue
		}
		message := fmt.Sprintf("in instantiation of %s, pin %s (%s) is connected by net %s to pin %s (%s) of instantiation %s",
			node.Reference, node.PinName, node.PinType, canonical, existing.PinName, existing.PinType, existing.Reference)
		if result == erc.Warning {
			fmt.Println("WARN: " + message)
			continue
		}
		return errs.New(errs.KindERC, message)
	}
	net.Nodes = append(net.Nodes, node)
	return nil
}

// alias fuses rightName's net into leftName's net: rightName's nodes are
// appended to leftName's net, the right net is removed from the circuit's
// net list, and a forward alias is recorded so later lookups of rightName
// (or anything that used to resolve to it) land on leftName instead.
func (ins *Instantiator) alias(rightName, leftName string) {
	right := ins.resolveAlias(rightName)
	left := ins.resolveAlias(leftName)
	if right == left {
		return
	}
	rightNet, ok := ins.netIndex[right]
	if !ok {
		return
	}
	leftNet := ins.addNet(left)
	leftNet.Nodes = append(leftNet.Nodes, rightNet.Nodes...)

	delete(ins.netIndex, right)
	for i, n := range ins.nets {
		if n == rightNet {
			ins.nets = append(ins.nets[:i], ins.nets[i+1:]...)
			break
		}
	}
	ins.netAlias[right] = left
}

// Simplify strips the dot-suffix added to a scoped net's canonical name
// when the bare prefix doesn't collide with another net's name, in exactly
// one pass over a snapshot of existing names. A net freed up by an earlier
// rename in the same pass is not reconsidered.
func Simplify(circuit *Circuit) {
	names := make(map[string]bool, len(circuit.Nets))
	for _, n := range circuit.Nets {
		names[n.Name] = true
	}
	for _, n := range circuit.Nets {
		idx := strings.IndexByte(n.Name, '.')
		if idx < 0 {
			continue
		}
		base := n.Name[:idx]
		if !names[base] {
			n.Name = base
		}
	}
}
