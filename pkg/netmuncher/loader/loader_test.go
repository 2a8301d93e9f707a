package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/ast"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/source"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", name, err)
	}
	return path
}

func TestLoadSingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "main.nm", `
component Main abstract {
}
`)

	sources := source.New()
	parser, err := ast.NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}

	result, err := Load(sources, parser, filepath.Join(tmpDir, "main.nm"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(result.Components) != 1 || result.Components[0].Name != "Main" {
		t.Fatalf("expected a single Main component, got %+v", result.Components)
	}
}

func TestLoadTransitiveRequire(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "leaf.nm", `
component Resistor {
	pin A: passive = 1;
	pin B: passive = 2;
	footprint "R_0603";
	prefix "R";
}
`)
	writeFile(t, tmpDir, "main.nm", `
require "leaf.nm";

component Main abstract {
}
`)

	sources := source.New()
	parser, err := ast.NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}

	result, err := Load(sources, parser, filepath.Join(tmpDir, "main.nm"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(result.Components) != 2 {
		t.Fatalf("expected 2 components (Resistor, Main), got %d", len(result.Components))
	}
}

func TestLoadMissingRequireFails(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "main.nm", `
require "nope.nm";

component Main abstract {
}
`)

	sources := source.New()
	parser, err := ast.NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}

	_, err = Load(sources, parser, filepath.Join(tmpDir, "main.nm"))
	if err == nil {
		t.Fatal("expected an error for a missing require target")
	}
}

func TestLoadDuplicateGlobalNetsFails(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "a.nm", `net VCC;`)
	writeFile(t, tmpDir, "main.nm", `
require "a.nm";

net VCC;

component Main abstract {
}
`)

	sources := source.New()
	parser, err := ast.NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}

	_, err = Load(sources, parser, filepath.Join(tmpDir, "main.nm"))
	if err == nil {
		t.Fatal("expected a duplicate global net error")
	}
}

func TestLoadCycleSafe(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "a.nm", `
require "main.nm";

component Helper {
	pin A: passive = 1;
	footprint "X";
	prefix "H";
}
`)
	writeFile(t, tmpDir, "main.nm", `
require "a.nm";

component Main abstract {
}
`)

	sources := source.New()
	parser, err := ast.NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}

	result, err := Load(sources, parser, filepath.Join(tmpDir, "main.nm"))
	if err != nil {
		t.Fatalf("Load failed on a require cycle: %v", err)
	}
	if len(result.Components) != 2 {
		t.Fatalf("expected each file to be loaded exactly once, got %d components", len(result.Components))
	}
}
