package ast

import (
	"regexp"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/component"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/errs"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/source"
)

// ParseFileResult is the per-file output of reducing one SourceFile: the
// require directives it names, the components it defines, and the global
// nets it declares.
type ParseFileResult struct {
	Requires   []RequireRef
	Components []*component.Component
	GlobalNets []GlobalNetRef
}

// RequireRef is one `require "<path>";` directive, tagged for diagnostics.
type RequireRef struct {
	Tag  source.Tag
	Path string
}

// GlobalNetRef is one name from a top-level `net ...;` declaration, tagged
// for diagnostics.
type GlobalNetRef struct {
	Tag  source.Tag
	Name string
}

var identRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

func checkSymbol(loc *source.Locator, tag source.Tag, s Sym) (string, error) {
	if !identRe.MatchString(s.Value) {
		return "", errs.At(errs.KindParse, tag, "invalid symbol \""+s.Value+"\": symbols must be alphanumeric with underscores and start with a letter")
	}
	return s.Value, nil
}

func checkSymbols(loc *source.Locator, tag source.Tag, syms []Sym) ([]string, error) {
	out := make([]string, 0, len(syms))
	for _, s := range syms {
		v, err := checkSymbol(loc, tag, s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Reduce walks a parsed SourceFile once and produces a ParseFileResult,
// running every per-file well-formedness check that doesn't require
// cross-module lookup: duplicate pin names, multiple/empty unit blocks,
// uneven unit pin-number cardinalities, duplicate local nets, connect
// arity mismatches, duplicate instance values, footprint/prefix rules, and
// concrete-vs-abstract parameter legality.
func Reduce(loc *source.Locator, file *SourceFile) (*ParseFileResult, error) {
	if len(file.Items) == 0 {
		return nil, errs.AtName(errs.KindParse, loc.Name(), "unexpected end of file")
	}

	result := &ParseFileResult{}

	for _, item := range file.Items {
		switch {
		case item.Require != nil:
			tag := loc.Tag(item.Require.Pos.Offset)
			path, err := checkSymbolLikePath(loc, tag, item.Require.Path.Value)
			if err != nil {
				return nil, err
			}
			result.Requires = append(result.Requires, RequireRef{Tag: tag, Path: path})

		case item.GlobalNet != nil:
			tag := loc.Tag(item.GlobalNet.Pos.Offset)
			names, err := checkSymbols(loc, tag, item.GlobalNet.Names)
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				result.GlobalNets = append(result.GlobalNets, GlobalNetRef{Tag: tag, Name: n})
			}

		case item.Component != nil:
			c, err := reduceComponent(loc, item.Component)
			if err != nil {
				return nil, err
			}
			result.Components = append(result.Components, c)
		}
	}

	return result, nil
}

// checkSymbolLikePath validates a require path isn't itself subject to the
// bare-identifier rule (paths may contain '.', '/', etc.) -- only its
// non-emptiness is required here; the loader resolves and verifies
// existence.
func checkSymbolLikePath(loc *source.Locator, tag source.Tag, path string) (string, error) {
	if path == "" {
		return "", errs.At(errs.KindParse, tag, "require path must not be empty")
	}
	return path, nil
}

func reduceComponent(loc *source.Locator, decl *ComponentDecl) (*component.Component, error) {
	tag := loc.Tag(decl.Pos.Offset)
	name, err := checkSymbol(loc, tag, decl.Name)
	if err != nil {
		return nil, err
	}

	c := &component.Component{
		Tag:          tag,
		Name:         name,
		DefaultValue: name,
	}
	if decl.Abstract {
		c.Kind = component.Abstract
	} else {
		c.Kind = component.Concrete
	}

	var (
		footprintSet bool
		prefixSet    bool
		valueSet     bool
		unitSeen     bool
	)

	wrapComponentErr := func(cause error) error {
		return errs.Wrap(errs.KindComponent, tag, "error in component "+name, cause)
	}

	for _, p := range decl.Params {
		switch {
		case p.Pin != nil:
			pin, err := reducePin(loc, p.Pin)
			if err != nil {
				return nil, wrapComponentErr(err)
			}
			if decl.Abstract {
				if len(p.Pin.Numbers) != 0 {
					return nil, wrapComponentErr(errs.At(errs.KindComponent, loc.Tag(p.Pin.Pos.Offset),
						"abstract component "+name+" cannot assign pin numbers"))
				}
				c.AbstractPins = append(c.AbstractPins, component.AbstractPin{
					Tag: pin.Tag, Name: pin.Name, Type: pin.Type,
				})
			} else {
				if len(p.Pin.Numbers) == 0 {
					return nil, wrapComponentErr(errs.At(errs.KindComponent, loc.Tag(p.Pin.Pos.Offset),
						"concrete component "+name+" must assign a pin number to pin "+pin.Name))
				}
				if len(p.Pin.Numbers) != 1 {
					return nil, wrapComponentErr(errs.At(errs.KindComponent, loc.Tag(p.Pin.Pos.Offset),
						"pin "+pin.Name+" outside a unit block must have exactly one pin number"))
				}
				if err := addSharedPin(c, pin.Tag, pin.Name, pin.Type, p.Pin.Numbers[0]); err != nil {
					return nil, wrapComponentErr(err)
				}
			}

		case p.Footprint != nil:
			ptag := loc.Tag(p.Footprint.Pos.Offset)
			if decl.Abstract {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "abstract component "+name+" cannot have a footprint"))
			}
			if footprintSet {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "footprint already set on component "+name))
			}
			if p.Footprint.Value.Value == "" {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "component "+name+" must specify a footprint"))
			}
			c.Footprint = p.Footprint.Value.Value
			footprintSet = true

		case p.Prefix != nil:
			ptag := loc.Tag(p.Prefix.Pos.Offset)
			if decl.Abstract {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "abstract component "+name+" cannot have a reference prefix"))
			}
			if prefixSet {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "prefix already set on component "+name))
			}
			if p.Prefix.Value.Value == "" {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "component "+name+" must specify a reference prefix"))
			}
			c.Prefix = p.Prefix.Value.Value
			prefixSet = true

		case p.Value != nil:
			ptag := loc.Tag(p.Value.Pos.Offset)
			if decl.Abstract {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "abstract component "+name+" cannot have a value"))
			}
			if valueSet {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "value already set on component "+name))
			}
			c.DefaultValue = p.Value.Value.Value
			valueSet = true

		case p.Net != nil:
			ptag := loc.Tag(p.Net.Pos.Offset)
			if !decl.Abstract {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "concrete component "+name+" cannot declare nets"))
			}
			names, err := checkSymbols(loc, ptag, p.Net.Names)
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				if c.NetExists(n) {
					return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "duplicate net named "+n))
				}
				c.Nets = append(c.Nets, n)
			}

		case p.Connect != nil:
			ptag := loc.Tag(p.Connect.Pos.Offset)
			if !decl.Abstract {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "concrete component "+name+" cannot declare connect"))
			}
			left, err := checkSymbols(loc, ptag, p.Connect.Left)
			if err != nil {
				return nil, err
			}
			right, err := checkSymbols(loc, ptag, p.Connect.Right)
			if err != nil {
				return nil, err
			}
			if len(left) != len(right) {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag,
					"connect declaration has mismatched arity between its two sides"))
			}
			c.Connects = append(c.Connects, component.ConnectPair{Tag: ptag, Left: left, Right: right})

		case p.Unit != nil:
			ptag := loc.Tag(p.Unit.Pos.Offset)
			if decl.Abstract {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "abstract component "+name+" cannot declare a unit"))
			}
			if unitSeen {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "component "+name+" cannot have more than one unit block"))
			}
			unitSeen = true
			if len(p.Unit.Pins) == 0 {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, ptag, "unit block in component "+name+" has no pins"))
			}
			count := -1
			for _, up := range p.Unit.Pins {
				pin, err := reducePin(loc, up)
				if err != nil {
					return nil, wrapComponentErr(err)
				}
				if len(up.Numbers) == 0 {
					return nil, wrapComponentErr(errs.At(errs.KindComponent, loc.Tag(up.Pos.Offset),
						"pin "+pin.Name+" inside a unit block must assign pin numbers"))
				}
				if count == -1 {
					count = len(up.Numbers)
				} else if len(up.Numbers) != count {
					return nil, wrapComponentErr(errs.At(errs.KindComponent, loc.Tag(up.Pos.Offset),
						"pin "+pin.Name+" doesn't have an equal number of pin numbers for each pin"))
				}
				if err := addUnitPin(c, pin.Tag, pin.Name, pin.Type, up.Numbers); err != nil {
					return nil, wrapComponentErr(err)
				}
			}

		case p.Instance != nil:
			if !decl.Abstract {
				itag := loc.Tag(p.Instance.Pos.Offset)
				return nil, wrapComponentErr(errs.At(errs.KindComponent, itag, "concrete component "+name+" cannot have instances"))
			}
			inst, err := reduceInstance(loc, p.Instance)
			if err != nil {
				return nil, wrapComponentErr(err)
			}
			c.Instances = append(c.Instances, *inst)
		}
	}

	if !decl.Abstract {
		if !footprintSet || !prefixSet {
			// Presence is checked only once the full param list has been
			// walked, footprint first.
			if !footprintSet {
				return nil, wrapComponentErr(errs.At(errs.KindComponent, tag, "component "+name+" must specify a footprint"))
			}
			return nil, wrapComponentErr(errs.At(errs.KindComponent, tag, "component "+name+" must specify a reference prefix"))
		}
		c.BuildUnits()
	}

	return c, nil
}

func addSharedPin(c *component.Component, tag source.Tag, name string, typ component.PinType, num int) error {
	if num < 1 {
		return errs.At(errs.KindComponent, tag, "pin numbers must start at 1")
	}
	if _, ok := findPinByName(c, name); ok {
		return errs.At(errs.KindComponent, tag, "duplicate pin named "+name)
	}
	if other, ok := findPinByNumber(c, num); ok {
		return errs.At(errs.KindComponent, tag, pinNumberConflictMsg(num, name, other))
	}
	c.SharedPins = append(c.SharedPins, component.Pin{Tag: tag, Name: name, Type: typ, Number: num})
	return nil
}

func addUnitPin(c *component.Component, tag source.Tag, name string, typ component.PinType, numbers []int) error {
	if _, ok := findPinByName(c, name); ok {
		return errs.At(errs.KindComponent, tag, "duplicate pin named "+name)
	}
	for _, num := range numbers {
		if num < 1 {
			return errs.At(errs.KindComponent, tag, "pin numbers must start at 1")
		}
		if other, ok := findPinByNumber(c, num); ok {
			return errs.At(errs.KindComponent, tag, pinNumberConflictMsg(num, name, other))
		}
	}
	c.UnitPins = append(c.UnitPins, component.UnitPin{Tag: tag, Name: name, Type: typ, Numbers: numbers})
	return nil
}

func pinNumberConflictMsg(num int, name, other string) string {
	return "pin number " + component.PinNumString(num) + " assigned to multiple names: " + name + ", " + other
}

func findPinByName(c *component.Component, name string) (string, bool) {
	for _, p := range c.SharedPins {
		if p.Name == name {
			return p.Name, true
		}
	}
	for _, up := range c.UnitPins {
		if up.Name == name {
			return up.Name, true
		}
	}
	return "", false
}

func findPinByNumber(c *component.Component, num int) (string, bool) {
	for _, p := range c.SharedPins {
		if p.Number == num {
			return p.Name, true
		}
	}
	for _, up := range c.UnitPins {
		for _, n := range up.Numbers {
			if n == num {
				return up.Name, true
			}
		}
	}
	return "", false
}

type reducedPin struct {
	Tag  source.Tag
	Name string
	Type component.PinType
}

func reducePin(loc *source.Locator, decl *PinDecl) (reducedPin, error) {
	tag := loc.Tag(decl.Pos.Offset)
	name, err := checkSymbol(loc, tag, decl.Name)
	if err != nil {
		return reducedPin{}, err
	}
	typ, ok := component.ParsePinType(decl.Type)
	if !ok {
		return reducedPin{}, errs.At(errs.KindComponent, tag, "unknown pin type "+decl.Type)
	}
	return reducedPin{Tag: tag, Name: name, Type: typ}, nil
}

func reduceInstance(loc *source.Locator, decl *InstanceDecl) (*component.Instance, error) {
	tag := loc.Tag(decl.Pos.Offset)
	target, err := checkSymbol(loc, tag, decl.Name)
	if err != nil {
		return nil, err
	}

	inst := &component.Instance{Tag: tag, TargetName: target}
	valueSeen := false

	for _, p := range decl.Params {
		switch {
		case p.Value != nil:
			if valueSeen {
				return nil, errs.At(errs.KindComponent, loc.Tag(p.Value.Pos.Offset), "duplicate value declaration on instance of "+target)
			}
			valueSeen = true
			v := p.Value.Value.Value
			inst.Value = &v

		case p.Connection != nil:
			ctag := loc.Tag(p.Connection.Pos.Offset)
			pinName, err := checkSymbol(loc, ctag, p.Connection.Pin)
			if err != nil {
				return nil, err
			}
			targetName, err := checkSymbol(loc, ctag, p.Connection.Target)
			if err != nil {
				return nil, err
			}
			inst.Connections = append(inst.Connections, component.Connection{
				Tag: ctag, PinName: pinName, TargetName: targetName,
			})
		}
	}

	return inst, nil
}
