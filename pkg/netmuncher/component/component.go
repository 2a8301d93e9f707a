// Package component holds the parse-time circuit model: the Component
// table entries produced by the AST reducer, before elaboration flattens
// them into a circuit.Circuit.
package component

import (
	"fmt"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/source"
)

// PinType is the electrical class of a pin.
type PinType int

const (
	Input PinType = iota
	Output
	Passive
	PowerIn
	PowerOut
	Tristate
	Bidirectional
	NoConnect
)

// All enumerates every PinType, used by the ERC property tests.
var All = []PinType{Input, Output, Passive, PowerIn, PowerOut, Tristate, Bidirectional, NoConnect}

func (t PinType) String() string {
	switch t {
	case Input:
		return "Input"
	case Output:
		return "Output"
	case Passive:
		return "Passive"
	case PowerIn:
		return "PowerIn"
	case PowerOut:
		return "PowerOut"
	case Tristate:
		return "Tristate"
	case Bidirectional:
		return "Bidirectional"
	case NoConnect:
		return "NoConnect"
	default:
		return "Unknown"
	}
}

// ParsePinType maps a source-language pin type keyword to a PinType.
func ParsePinType(s string) (PinType, bool) {
	switch s {
	case "input":
		return Input, true
	case "output":
		return Output, true
	case "passive":
		return Passive, true
	case "power_in":
		return PowerIn, true
	case "power_out":
		return PowerOut, true
	case "tristate":
		return Tristate, true
	case "bidirectional":
		return Bidirectional, true
	case "noconnect":
		return NoConnect, true
	default:
		return 0, false
	}
}

// Pin is a concrete, physically-numbered pin belonging to a Unit.
type Pin struct {
	Tag    source.Tag
	Name   string
	Type   PinType
	Number int
}

// AbstractPin is a pin of an abstract component: it carries a type for ERC
// purposes but never a physical number.
type AbstractPin struct {
	Tag  source.Tag
	Name string
	Type PinType
}

// UnitPin is a pin declared inside a "unit { ... }" block: it exists once
// per logical unit but maps to a different physical pin number per unit
// sharing the same package.
type UnitPin struct {
	Tag     source.Tag
	Name    string
	Type    PinType
	Numbers []int
}

// Unit is one physical-package slice of a concrete component: the pins it
// exposes are the component's shared (non-unit) pins plus, for each
// declared UnitPin, that pin resolved to this unit's physical number.
// A component with no explicit "unit" blocks has exactly one Unit whose
// Pins are just its shared pins.
type Unit struct {
	Tag  source.Tag
	Pins []Pin
}

// FindByName returns the pin with the given name, if any.
func (u *Unit) FindByName(name string) (Pin, bool) {
	for _, p := range u.Pins {
		if p.Name == name {
			return p, true
		}
	}
	return Pin{}, false
}

// Connection is one "pin = target" mapping inside an Instance.
type Connection struct {
	Tag        source.Tag
	PinName    string
	TargetName string
}

// Instance is one instantiation of a target component inside an abstract
// component's body.
type Instance struct {
	Tag         source.Tag
	TargetName  string
	Value       *string
	Connections []Connection
}

// FindConnection returns the first connection mapping pinName. Duplicate
// mappings are not checked; the first match wins.
func (i *Instance) FindConnection(pinName string) (string, bool) {
	for _, c := range i.Connections {
		if c.PinName == pinName {
			return c.TargetName, true
		}
	}
	return "", false
}

// ConnectPair is one "left_names = right_names" connect declaration inside
// an abstract component.
type ConnectPair struct {
	Tag   source.Tag
	Left  []string
	Right []string
}

// Kind distinguishes abstract components (with instances/nets/connects)
// from concrete ones (with a footprint, prefix, and physical pins).
type Kind int

const (
	Abstract Kind = iota
	Concrete
)

// Component is one entry of the process-wide component table.
type Component struct {
	Tag  source.Tag
	Name string
	Kind Kind

	// Concrete-only fields.
	Footprint    string
	Prefix       string
	DefaultValue string

	// SharedPins are the pins declared directly in the component body,
	// shared identically by every unit. UnitPins are the pins declared
	// inside "unit { ... }" blocks, one physical number per unit. Units
	// is built from these by BuildUnits once both are known.
	SharedPins []Pin
	UnitPins   []UnitPin
	Units      []Unit

	// Abstract-only fields.
	AbstractPins []AbstractPin
	Instances    []Instance
	Nets         []string
	Connects     []ConnectPair
}

// IsAbstract reports whether this is an abstract component.
func (c *Component) IsAbstract() bool {
	return c.Kind == Abstract
}

// FirstUnit returns the component's first (and, for single-unit
// components, only) unit.
func (c *Component) FirstUnit() *Unit {
	return &c.Units[0]
}

// HasUnits reports whether this concrete component packs more than one
// logical unit into a single physical instance.
func (c *Component) HasUnits() bool {
	return c.Kind == Concrete && len(c.Units) > 1
}

// NumUnits returns how many per-unit physical numbers each UnitPin
// declares, i.e. the component's unit count. A component with no "unit"
// blocks has exactly one (synthesized) unit.
func (c *Component) NumUnits() int {
	if len(c.UnitPins) == 0 {
		return 1
	}
	return len(c.UnitPins[0].Numbers)
}

// BuildUnits resolves SharedPins and UnitPins into the flattened per-unit
// Pin lists consumed by the rest of the compiler. It is called once the
// component's parameters are fully reduced (pkg/netmuncher/ast) and again
// is safe to call idempotently.
func (c *Component) BuildUnits() {
	n := c.NumUnits()
	units := make([]Unit, n)
	for i := 0; i < n; i++ {
		var pins []Pin
		pins = append(pins, c.SharedPins...)
		for _, up := range c.UnitPins {
			pins = append(pins, Pin{
				Tag:    up.Tag,
				Name:   up.Name,
				Type:   up.Type,
				Number: up.Numbers[i],
			})
		}
		units[i] = Unit{Tag: c.Tag, Pins: pins}
	}
	c.Units = units
}

// NetExists reports whether name is one of this abstract component's
// locally declared nets.
func (c *Component) NetExists(name string) bool {
	for _, n := range c.Nets {
		if n == name {
			return true
		}
	}
	return false
}

// FindAbstractPin returns the abstract pin with the given name, if any.
func (c *Component) FindAbstractPin(name string) (AbstractPin, bool) {
	for _, p := range c.AbstractPins {
		if p.Name == name {
			return p, true
		}
	}
	return AbstractPin{}, false
}

// AllPhysicalPins returns every distinct physical pin on the package: the
// shared pins once each, plus every unit pin's per-unit physical number.
// This is the set the contiguous-numbering invariant is checked against.
func (c *Component) AllPhysicalPins() []Pin {
	pins := append([]Pin(nil), c.SharedPins...)
	for _, up := range c.UnitPins {
		for _, num := range up.Numbers {
			pins = append(pins, Pin{Tag: up.Tag, Name: up.Name, Type: up.Type, Number: num})
		}
	}
	return pins
}

// PinNumString renders a pin number the way diagnostics expect it (bare
// decimal).
func PinNumString(n int) string {
	return fmt.Sprintf("%d", n)
}

// InstancePin is a (name, type) pair as seen from outside a component: the
// surface presented to an instantiation site, independent of whether the
// component is abstract or concrete.
type InstancePin struct {
	Name string
	Type PinType
}

// InstancePins returns the pins an instance of this component presents to
// its enclosing component: the abstract pins for an abstract component, or
// the first unit's physical pins for a concrete one.
func (c *Component) InstancePins() []InstancePin {
	if c.IsAbstract() {
		pins := make([]InstancePin, len(c.AbstractPins))
		for i, p := range c.AbstractPins {
			pins[i] = InstancePin{Name: p.Name, Type: p.Type}
		}
		return pins
	}
	unit := c.FirstUnit()
	pins := make([]InstancePin, len(unit.Pins))
	for i, p := range unit.Pins {
		pins[i] = InstancePin{Name: p.Name, Type: p.Type}
	}
	return pins
}
