// Package loader drives the tokenize, parse, reduce loop across a root
// file and every file it transitively requires, cycle-safe and
// depth-first.
package loader

import (
	"os"
	"path/filepath"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/ast"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/component"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/errs"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/source"
)

// Result is the merged output of loading a root file and everything it
// requires: every component table entry across every loaded file, plus the
// deduplicated set of global net names.
type Result struct {
	Components []*component.Component
	GlobalNets []string
}

// pending is one path still waiting to be loaded, tagged with the require
// directive that named it (source.Invalid for the root file).
type pending struct {
	path string
	tag  source.Tag
}

// Load reads rootPath and every file it (transitively) requires, in
// depth-first LIFO order, and returns the merged component table and global
// net list. Paths are resolved relative to the parent directory of the file
// that names them, not relative to rootPath.
func Load(sources *source.Sources, parser *ast.Parser, rootPath string) (*Result, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, errs.New(errs.KindIO, "cannot resolve path \""+rootPath+"\"")
	}

	stack := []pending{{path: abs, tag: source.Invalid}}
	required := make(map[string]bool)

	result := &Result{}
	var globalNetRefs []ast.GlobalNetRef

	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]

		if required[cur.path] {
			continue
		}
		required[cur.path] = true

		text, err := os.ReadFile(cur.path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errs.At(errs.KindIO, cur.tag, "cannot find file named \""+cur.path+"\"")
			}
			return nil, errs.At(errs.KindIO, cur.tag, "cannot read file \""+cur.path+"\": "+err.Error())
		}

		sourceID := sources.Push(cur.path, string(text))
		loc := source.NewLocator(sources, sourceID)

		file, err := parser.ParseString(loc, string(text))
		if err != nil {
			return nil, err
		}

		reduced, err := ast.Reduce(loc, file)
		if err != nil {
			return nil, err
		}

		result.Components = append(result.Components, reduced.Components...)
		globalNetRefs = append(globalNetRefs, reduced.GlobalNets...)

		dir := filepath.Dir(cur.path)
		for _, req := range reduced.Requires {
			resolved := filepath.Join(dir, req.Path)
			info, err := os.Stat(resolved)
			if err != nil || info.IsDir() {
				return nil, errs.At(errs.KindIO, req.Tag, "cannot find file named \""+req.Path+"\"")
			}
			stack = append(stack, pending{path: resolved, tag: req.Tag})
		}
	}

	seen := make(map[string]source.Tag)
	for _, ref := range globalNetRefs {
		if _, ok := seen[ref.Name]; ok {
			return nil, errs.At(errs.KindValidation, ref.Tag, "detected duplicate global nets")
		}
		seen[ref.Name] = ref.Tag
		result.GlobalNets = append(result.GlobalNets, ref.Name)
	}

	return result, nil
}
