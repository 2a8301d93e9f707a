// Package compile glues the front-end and elaborator together into the
// single entry point the CLI calls: load, validate, instantiate, simplify.
package compile

import (
	"github.com/circuitkit/netmuncher/pkg/netmuncher/ast"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/circuit"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/component"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/loader"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/source"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/validate"
)

// Result is everything a serializer needs: the flattened circuit, the
// loaded component table and global nets (for the diagram compiler, which
// works from the pre-elaboration design rather than the flat Circuit), and
// the source registry (for rendering any late-discovered diagnostics).
type Result struct {
	Circuit    *circuit.Circuit
	Components []*component.Component
	GlobalNets []string
	Sources    *source.Sources
}

// Compile runs the full pipeline against the file at path: load every
// transitively required module, validate the merged design, elaborate
// Main into a flat Circuit, and simplify its net names.
//
// The returned Result is never nil, even on error: its Sources field is
// always populated so callers can render a diagnostic with errs.Render
// regardless of which stage failed.
func Compile(path string) (*Result, error) {
	sources := source.New()
	result := &Result{Sources: sources}

	parser, err := ast.NewParser()
	if err != nil {
		return result, err
	}

	loaded, err := loader.Load(sources, parser, path)
	if err != nil {
		return result, err
	}
	result.Components = loaded.Components
	result.GlobalNets = loaded.GlobalNets

	v := validate.New(sources, loaded.Components, loaded.GlobalNets)
	if err := v.Validate(loaded.Components); err != nil {
		return result, err
	}

	var main *component.Component
	for _, c := range loaded.Components {
		if c.Name == "Main" {
			main = c
		}
	}

	instantiator := circuit.NewInstantiator(sources, loaded.Components, loaded.GlobalNets)
	circ, err := instantiator.Instantiate(main, loaded.GlobalNets)
	if err != nil {
		return result, err
	}
	circuit.Simplify(circ)
	result.Circuit = circ

	return result, nil
}
