// Package circuit holds the flat, post-elaboration output of the compiler
// and the elaborator that builds it by recursively expanding the abstract
// component tree rooted at Main.
package circuit

import "github.com/circuitkit/netmuncher/pkg/netmuncher/component"

// ComponentInstance is one physical, referenced component in the flattened
// design.
type ComponentInstance struct {
	Reference string
	Value     string
	Footprint string
}

// Node is one pin participating in a Net.
type Node struct {
	Reference string
	PinNumber int
	PinName   string
	PinType   component.PinType
}

// Net is a named set of electrically connected pins.
type Net struct {
	Name  string
	Nodes []Node
}

// ComponentGroup mirrors the abstract-instance hierarchy; serializers use it
// to derive "sheet" paths. The root group (conventionally named "root")
// represents Main's own scope.
type ComponentGroup struct {
	Name       string
	Components []string
	SubGroups  []*ComponentGroup
}

// Circuit is the flat, immutable result of elaboration, ready to be handed
// to exactly one serializer.
type Circuit struct {
	Instances []*ComponentInstance
	Nets      []*Net
	RootGroup *ComponentGroup
}

// FindGroupContaining returns the group in the tree rooted at g that lists
// reference directly among its Components, or nil if no group in the tree
// lists it. (The KiCad serializer derives sheet paths with Path instead.)
func (g *ComponentGroup) FindGroupContaining(reference string) *ComponentGroup {
	for _, c := range g.Components {
		if c == reference {
			return g
		}
	}
	for _, sub := range g.SubGroups {
		if found := sub.FindGroupContaining(reference); found != nil {
			return found
		}
	}
	return nil
}

// Path returns the sequence of group names from the root down to the group
// returned by FindGroupContaining, or nil if no ancestor on this path was
// recorded (callers walk from the known root).
func (g *ComponentGroup) Path(reference string) []string {
	if g == nil {
		return nil
	}
	for _, c := range g.Components {
		if c == reference {
			return []string{g.Name}
		}
	}
	for _, sub := range g.SubGroups {
		if p := sub.Path(reference); p != nil {
			return append([]string{g.Name}, p...)
		}
	}
	return nil
}
