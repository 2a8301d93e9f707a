// Package validate runs the cross-module checks that can't be made from a
// single file alone: duplicate component names, the Main component's
// shape, pin-numbering completeness, instantiation-site pin accounting,
// and both electrical-rules-check matrices.
package validate

import (
	"fmt"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/component"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/erc"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/errs"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/source"
)

// netPin is one concrete pin seen on a net during ERC grouping, identified
// by the instance that owns it (for diagnostics) and the pin itself.
type netPin struct {
	instanceTag  source.Tag
	instanceName string
	pin          component.InstancePin
}

// Validator holds the state accumulated while checking a loaded design.
type Validator struct {
	sources    *source.Sources
	components map[string]*component.Component
	globalNets map[string]bool

	globalNetPins map[string][]netPin
}

// New builds a Validator over a loaded design's merged component table and
// global net list.
func New(sources *source.Sources, components []*component.Component, globalNets []string) *Validator {
	byName := make(map[string]*component.Component, len(components))
	for _, c := range components {
		byName[c.Name] = c
	}
	nets := make(map[string]bool, len(globalNets))
	for _, n := range globalNets {
		nets[n] = true
	}
	return &Validator{
		sources:       sources,
		components:    byName,
		globalNets:    nets,
		globalNetPins: make(map[string][]netPin),
	}
}

// Validate runs every cross-module check, aborting on the first failure.
func (v *Validator) Validate(components []*component.Component) error {
	seen := make(map[string]bool)
	var main *component.Component

	for _, c := range components {
		if seen[c.Name] {
			return errs.Atf(errs.KindValidation, c.Tag, "component %s is defined more than once", c.Name)
		}
		seen[c.Name] = true
		if c.Name == "Main" {
			main = c
		}

		if err := v.validateUnits(c); err != nil {
			return err
		}
		if err := v.validateComponent(c); err != nil {
			return err
		}
	}

	if err := v.validateNets(v.globalNetPins); err != nil {
		return err
	}
	return v.validateMain(main)
}

func (v *Validator) validateMain(main *component.Component) error {
	if main == nil {
		return errs.New(errs.KindValidation, "missing component Main")
	}
	if !main.IsAbstract() {
		return errs.At(errs.KindValidation, main.Tag, "component Main must be abstract")
	}
	if len(main.AbstractPins) != 0 {
		return errs.At(errs.KindValidation, main.Tag, "component Main cannot have pins")
	}
	return nil
}

// validateUnits checks that a concrete component's physical pin numbers
// form the contiguous set {1, ..., N}.
func (v *Validator) validateUnits(c *component.Component) error {
	if c.IsAbstract() {
		return nil
	}
	pins := c.AllPhysicalPins()
	if len(pins) == 0 {
		return nil
	}
	for i := 1; i <= len(pins); i++ {
		found := false
		for _, p := range pins {
			if p.Number == i {
				found = true
				break
			}
		}
		if !found {
			return errs.Atf(errs.KindComponent, c.Tag,
				"component %s is missing some pins (take a look at pin %d)", c.Name, i)
		}
	}
	return nil
}

func (v *Validator) validateComponent(c *component.Component) error {
	if !c.IsAbstract() {
		return nil
	}

	localNetPins := make(map[string][]netPin)
	for _, inst := range c.Instances {
		roundPins := make(map[string][]netPin)
		if err := v.validateInstance(c, &inst, roundPins); err != nil {
			return err
		}
		for name, pins := range roundPins {
			localNetPins[name] = append(localNetPins[name], pins...)
		}
	}
	return v.validateNets(localNetPins)
}

func (v *Validator) validateInstance(parent *component.Component, inst *component.Instance, localNetPins map[string][]netPin) error {
	target, ok := v.components[inst.TargetName]
	if !ok {
		return errs.Atf(errs.KindValidation, inst.Tag, "cannot find component definition for %s", inst.TargetName)
	}

	for _, pin := range target.InstancePins() {
		if v.globalNets[pin.Name] {
			if !target.IsAbstract() {
				v.addGlobalNetPin(pin.Name, inst, pin)
			}
			continue
		}

		mapping, hasMapping := inst.FindConnection(pin.Name)
		if !hasMapping {
			if pin.Type != component.NoConnect {
				return errs.Atf(errs.KindValidation, inst.Tag,
					"no connection stated for pin %s on component %s", pin.Name, target.Name)
			}
			continue
		}

		if pin.Type == component.NoConnect && mapping != "noconnect" {
			return errs.Atf(errs.KindValidation, inst.Tag,
				"cannot connect noconnect pin named %s in instantiation of component %s", pin.Name, target.Name)
		}

		if v.globalNets[mapping] {
			if !target.IsAbstract() {
				v.addGlobalNetPin(mapping, inst, pin)
			}
			continue
		}

		if mapping == "noconnect" {
			continue
		}

		if connected, ok := parent.FindAbstractPin(mapping); ok {
			if err := v.parameterRulesCheck(inst, component.InstancePin{Name: connected.Name, Type: connected.Type}, pin); err != nil {
				return err
			}
			continue
		}

		if parent.NetExists(mapping) {
			if !target.IsAbstract() {
				localNetPins[mapping] = append(localNetPins[mapping], netPin{
					instanceTag: inst.Tag, instanceName: inst.TargetName, pin: pin,
				})
			}
			continue
		}

		return errs.Atf(errs.KindValidation, inst.Tag,
			"cannot find pin or net named %s in instantiation of component %s", mapping, target.Name)
	}

	return nil
}

func (v *Validator) addGlobalNetPin(net string, inst *component.Instance, pin component.InstancePin) {
	v.globalNetPins[net] = append(v.globalNetPins[net], netPin{
		instanceTag: inst.Tag, instanceName: inst.TargetName, pin: pin,
	})
}

func (v *Validator) parameterRulesCheck(inst *component.Instance, instancePin, otherPin component.InstancePin) error {
	result := erc.CheckParameter(instancePin.Type, otherPin.Type)
	if result == erc.Valid {
		return nil
	}
	message := fmt.Sprintf("in instantiation of %s, pin %s (%s) mapped to %s (%s)",
		inst.TargetName, instancePin.Name, instancePin.Type, otherPin.Name, otherPin.Type)
	if result == erc.Warning {
		fmt.Println("WARN: " + v.sources.Locate(inst.Tag) + ": " + message)
		return nil
	}
	return errs.At(errs.KindERC, inst.Tag, message)
}

func (v *Validator) validateNets(netPins map[string][]netPin) error {
	for netName, pins := range netPins {
		for i, first := range pins {
			for j, second := range pins {
				if i == j {
					continue
				}
				if err := v.electricalRulesCheck(netName, first, second); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (v *Validator) electricalRulesCheck(netName string, first, second netPin) error {
	result := erc.CheckElectrical(first.pin.Type, second.pin.Type)
	if result == erc.Valid {
		return nil
	}
	message := fmt.Sprintf("in instantiation of %s, pin %s (%s) is connected by net %s to pin %s (%s) of instantiation %s at %s",
		first.instanceName, first.pin.Name, first.pin.Type, netName,
		second.pin.Name, second.pin.Type, second.instanceName, v.sources.Locate(second.instanceTag))
	if result == erc.Warning {
		fmt.Println("WARN: " + v.sources.Locate(first.instanceTag) + ": " + message)
		return nil
	}
	return errs.At(errs.KindERC, first.instanceTag, message)
}
