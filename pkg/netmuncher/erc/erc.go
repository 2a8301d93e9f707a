// Package erc implements the two electrical-rules-check classifiers used by
// the validator and the elaborator: the "electrical" matrix for two
// concrete pins sharing a net, and the "parameter" matrix for a connection
// across an instantiation boundary.
package erc

import "github.com/circuitkit/netmuncher/pkg/netmuncher/component"

// Result is the outcome of classifying a pair of pin types.
type Result int

const (
	Valid Result = iota
	Warning
	Error
)

func (r Result) String() string {
	switch r {
	case Valid:
		return "Valid"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// CheckElectrical classifies two concrete pins meeting on the same copper
// net. It is symmetric: CheckElectrical(a, b) == CheckElectrical(b, a) for
// every pair, verified by a property test in erc_test.go.
func CheckElectrical(first, second component.PinType) Result {
	switch first {
	case component.Input:
		switch second {
		case component.NoConnect:
			return Error
		default:
			return Valid
		}
	case component.Output:
		switch second {
		case component.Input, component.Passive, component.PowerIn, component.Bidirectional:
			return Valid
		case component.Tristate:
			return Warning
		default: // NoConnect, PowerOut, Output
			return Error
		}
	case component.Passive:
		switch second {
		case component.NoConnect:
			return Error
		default:
			return Valid
		}
	case component.PowerIn:
		switch second {
		case component.Input, component.Output, component.Passive, component.PowerIn, component.PowerOut, component.Bidirectional:
			return Valid
		case component.Tristate:
			return Warning
		default: // NoConnect
			return Error
		}
	case component.PowerOut:
		switch second {
		case component.Input, component.Passive, component.PowerIn:
			return Valid
		case component.Bidirectional, component.Tristate:
			return Warning
		default: // NoConnect, Output, PowerOut
			return Error
		}
	case component.Tristate:
		switch second {
		case component.Input, component.Tristate, component.Passive, component.Bidirectional:
			return Valid
		case component.Output, component.PowerIn, component.PowerOut:
			return Warning
		default: // NoConnect
			return Error
		}
	case component.Bidirectional:
		switch second {
		case component.Bidirectional, component.Input, component.Output, component.Passive, component.PowerIn, component.Tristate:
			return Valid
		case component.PowerOut:
			return Warning
		default: // NoConnect
			return Error
		}
	default: // NoConnect
		return Error
	}
}

// CheckParameter classifies a connection from an abstract component's own
// pin ("parent") to a pin of an instantiated child component ("child") at
// an instantiation boundary. Unlike the electrical matrix this one is
// directional: the parent is promising one role and the child the
// complementary one, so CheckParameter(a, b) need not equal
// CheckParameter(b, a).
func CheckParameter(parent, child component.PinType) Result {
	switch parent {
	case component.Input:
		switch child {
		case component.Input, component.Passive, component.Bidirectional:
			return Valid
		case component.Tristate, component.PowerIn:
			return Warning
		default: // PowerOut, Output, NoConnect
			return Error
		}
	case component.Output:
		switch child {
		case component.Input, component.Output, component.Passive, component.PowerOut, component.Bidirectional:
			return Valid
		case component.Tristate, component.PowerIn:
			return Warning
		default: // NoConnect
			return Error
		}
	case component.Passive:
		switch child {
		case component.NoConnect:
			return Error
		default:
			return Valid
		}
	case component.PowerIn:
		switch child {
		case component.Input, component.Passive, component.PowerIn, component.Bidirectional:
			return Valid
		default: // Tristate, PowerOut, Output, NoConnect
			return Error
		}
	case component.PowerOut:
		switch child {
		case component.PowerIn, component.Input, component.Passive, component.PowerOut, component.Output:
			return Valid
		case component.Bidirectional:
			return Warning
		default: // Tristate, NoConnect
			return Error
		}
	case component.Tristate:
		switch child {
		case component.Tristate, component.Input, component.Passive, component.Bidirectional:
			return Valid
		case component.PowerIn, component.Output:
			return Warning
		default: // PowerOut, NoConnect
			return Error
		}
	case component.Bidirectional:
		switch child {
		case component.Bidirectional, component.Input, component.Output, component.Passive, component.PowerIn, component.Tristate:
			return Valid
		case component.PowerOut:
			return Warning
		default: // NoConnect
			return Error
		}
	default: // NoConnect
		return Error
	}
}
