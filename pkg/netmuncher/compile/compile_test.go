package compile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestCompileSimpleDivider(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.nm", `
net VCC, GND;

component Resistor {
  pin A : passive = 1;
  pin B : passive = 2;
  footprint "R_0603";
  prefix "R";
}

component Main abstract {
  net MID;

  Resistor {
    A = VCC;
    B = MID;
  }
  Resistor {
    A = MID;
    B = GND;
  }
}
`)

	result, err := Compile(main)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(result.Circuit.Instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(result.Circuit.Instances))
	}

	var midNet bool
	for _, n := range result.Circuit.Nets {
		if n.Name == "MID" {
			midNet = true
			if len(n.Nodes) != 2 {
				t.Fatalf("expected MID net to have 2 nodes, got %d", len(n.Nodes))
			}
		}
	}
	if !midNet {
		t.Fatalf("expected a simplified MID net, nets: %+v", result.Circuit.Nets)
	}
}

func TestCompileNoConnectPins(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.nm", `
component Thing {
  pin A : passive = 1;
  pin B : passive = 2;
  pin NC : noconnect = 3;
  footprint "X";
  prefix "U";
}

component Main abstract {
  net N;

  Thing {
    A = N;
    B = noconnect;
    NC = noconnect;
  }
  Thing {
    A = N;
    B = noconnect;
    NC = noconnect;
  }
}
`)

	result, err := Compile(main)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(result.Circuit.Instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(result.Circuit.Instances))
	}
	for _, n := range result.Circuit.Nets {
		for _, node := range n.Nodes {
			if node.PinNumber != 1 {
				t.Errorf("expected only pin 1 of each Thing to be wired, found pin %d on net %s", node.PinNumber, n.Name)
			}
		}
	}
}

func TestCompileGlobalNetAutoConnect(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.nm", `
net VCC, GND;

component Decap {
  pin VCC : passive = 1;
  pin GND : passive = 2;
  footprint "C_0402";
  prefix "C";
}

component Main abstract {
  Decap {}
  Decap {}
}
`)

	result, err := Compile(main)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	for _, want := range []string{"VCC", "GND"} {
		found := false
		for _, n := range result.Circuit.Nets {
			if n.Name == want {
				found = true
				if len(n.Nodes) != 2 {
					t.Errorf("expected net %s to auto-connect both capacitors, got %d nodes", want, len(n.Nodes))
				}
			}
		}
		if !found {
			t.Errorf("expected a global net %s, nets: %+v", want, result.Circuit.Nets)
		}
	}
}

func TestCompileUnitPacking(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.nm", `
net VCC, GND;

component Inverter {
  pin VCC : power_in = 13;
  pin GND : power_in = 14;
  unit {
    pin A : input = 1, 3, 5, 7, 9, 11;
    pin Y : output = 2, 4, 6, 8, 10, 12;
  }
  footprint "SOIC14";
  prefix "U";
}

component Main abstract {
  net A, B;

  Inverter {
    A = A;
    Y = B;
  }
  Inverter {
    A = B;
    Y = A;
  }
}
`)

	result, err := Compile(main)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(result.Circuit.Instances) != 1 {
		t.Fatalf("expected both inverter units to pack into one physical package, got %d instances", len(result.Circuit.Instances))
	}
	inst := result.Circuit.Instances[0]
	if inst.Reference != "U1" {
		t.Errorf("expected reference U1, got %s", inst.Reference)
	}
	if !strings.HasPrefix(inst.Reference, "U") {
		t.Errorf("reference %s does not begin with its component's prefix", inst.Reference)
	}
}

func TestCompileMissingMainFails(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.nm", `
component Resistor {
  pin A : passive = 1;
  footprint "R_0603";
  prefix "R";
}
`)

	if _, err := Compile(main); err == nil {
		t.Fatal("expected an error for a design with no Main component")
	}
}

func TestCompileMissingFileFails(t *testing.T) {
	if _, err := Compile("/nonexistent/does-not-exist.nm"); err == nil {
		t.Fatal("expected an error for a missing root file")
	}
}
