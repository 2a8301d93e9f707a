package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/ast"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/compile"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/diagram"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/errs"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/loader"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/serialize"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/source"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/validate"
)

const (
	formatKiCad       = "kicad"
	formatDot         = "dot"
	formatDiagramJSON = "diagram_json"
)

func runCompile(cmd *cobra.Command, args []string) error {
	input := args[0]

	switch format {
	case formatKiCad, formatDot, formatDiagramJSON:
	default:
		return fmt.Errorf("unknown format %q: expected one of kicad, dot, diagram_json", format)
	}

	out := outputPath
	if out == "" {
		out = defaultOutputPath(input, format)
	}

	var (
		contents []byte
		sources  *source.Sources
		err      error
	)

	if format == formatDiagramJSON {
		contents, sources, err = compileDiagramJSON(input)
	} else {
		contents, sources, err = compileCircuit(input, format)
	}

	if err != nil {
		return fmt.Errorf("%s", errs.Render(sources, err))
	}

	if err := os.WriteFile(out, contents, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	return nil
}

// compileCircuit runs the full load→validate→instantiate→simplify pipeline
// and serializes the flattened Circuit it produces.
func compileCircuit(input, format string) ([]byte, *source.Sources, error) {
	result, err := compile.Compile(input)
	if err != nil {
		return nil, result.Sources, err
	}

	var contents []byte
	switch format {
	case formatKiCad:
		contents, err = serialize.KiCad(result.Circuit)
	case formatDot:
		contents, err = serialize.Dot(result.Circuit)
	}
	return contents, result.Sources, err
}

// compileDiagramJSON builds a Diagram from the pre-elaboration component
// table rather than the flattened Circuit: the diagram tree mirrors the
// abstract instance hierarchy, which elaboration discards.
func compileDiagramJSON(input string) ([]byte, *source.Sources, error) {
	sources := source.New()
	parser, err := ast.NewParser()
	if err != nil {
		return nil, sources, err
	}

	loaded, err := loader.Load(sources, parser, input)
	if err != nil {
		return nil, sources, err
	}

	v := validate.New(sources, loaded.Components, loaded.GlobalNets)
	if err := v.Validate(loaded.Components); err != nil {
		return nil, sources, err
	}

	d, err := diagram.NewCompiler(loaded.Components, loaded.GlobalNets).Compile()
	if err != nil {
		return nil, sources, err
	}

	contents, err := serialize.DiagramJSON(d)
	return contents, sources, err
}

func defaultOutputPath(input, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if format == formatDiagramJSON {
		return base + ".json"
	}
	return base + ".net"
}
