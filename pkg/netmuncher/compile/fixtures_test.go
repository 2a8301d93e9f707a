package compile

import (
	"strings"
	"testing"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/errs"
)

// Each of these asserts the exact user-facing wording of one failure mode,
// not just that an error occurred, so a wording regression fails a test by
// name.

func TestFixtureDuplicatePin(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.nm", `
component Main {
  pin FOO : passive = 1;
  pin FOO : passive = 2;
}
`)

	result, err := Compile(main)
	if err == nil {
		t.Fatal("expected a duplicate-pin error")
	}
	rendered := errs.Render(result.Sources, err)
	if !strings.Contains(rendered, "error in component Main") {
		t.Fatalf("expected chain to mention \"error in component Main\", got %q", rendered)
	}
	if !strings.Contains(rendered, "Caused by: duplicate pin named FOO") {
		t.Fatalf("expected chain to be caused by \"duplicate pin named FOO\", got %q", rendered)
	}
}

func TestFixtureErcGlobalNetError(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.nm", `
net VCC;

component Foo {
  pin VCC : power_out = 1;
  footprint "X";
  prefix "U";
}

component Main abstract {
  Foo {}
  Foo {}
}
`)

	result, err := Compile(main)
	if err == nil {
		t.Fatal("expected an ERC error from two PowerOut pins sharing global net VCC")
	}
	rendered := errs.Render(result.Sources, err)
	want := "in instantiation of Foo, pin VCC (PowerOut) is connected by net VCC to pin VCC (PowerOut) of instantiation Foo at "
	if !strings.Contains(rendered, want) {
		t.Fatalf("expected message containing %q, got %q", want, rendered)
	}
}

func TestFixtureErcPinToPinError(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.nm", `
component ConcreteThing {
  pin OUT : output = 1;
  footprint "X";
  prefix "U";
}

component Wrapper abstract {
  pin ABSTRACT_IN : input;

  ConcreteThing {
    OUT = ABSTRACT_IN;
  }
}

component Main abstract {
  net N;

  Wrapper {
    ABSTRACT_IN = N;
  }
}
`)

	result, err := Compile(main)
	if err == nil {
		t.Fatal("expected a parameter-ERC error mapping an Input parent pin to an Output child pin")
	}
	rendered := errs.Render(result.Sources, err)
	want := "in instantiation of ConcreteThing, pin ABSTRACT_IN (Input) mapped to OUT (Output)"
	if !strings.Contains(rendered, want) {
		t.Fatalf("expected message containing %q, got %q", want, rendered)
	}
}

func TestFixtureMissingMappedNet(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.nm", `
component Foo {
  pin X : passive = 1;
  footprint "F";
  prefix "U";
}

component Main abstract {
  Foo {
    X = C;
  }
}
`)

	result, err := Compile(main)
	if err == nil {
		t.Fatal("expected a cannot-find-pin-or-net error")
	}
	rendered := errs.Render(result.Sources, err)
	want := "cannot find pin or net named C in instantiation of component Foo"
	if !strings.Contains(rendered, want) {
		t.Fatalf("expected message containing %q, got %q", want, rendered)
	}
}

func TestFixtureSingleNodeInNet(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.nm", `
component Foo {
  pin A : passive = 1;
  footprint "F";
  prefix "U";
}

component Main abstract {
  net SOLO;

  Foo {
    A = SOLO;
  }
}
`)

	result, err := Compile(main)
	if err == nil {
		t.Fatal("expected a single-node-net error")
	}
	rendered := errs.Render(result.Sources, err)
	want := "net named SOLO.Main1 needs to have more than one connection"
	if !strings.Contains(rendered, want) {
		t.Fatalf("expected message containing %q, got %q", want, rendered)
	}
}

func TestFixtureConnectNets(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.nm", `
component Main abstract {
  net A;

  connect A = C;
}
`)

	result, err := Compile(main)
	if err == nil {
		t.Fatal("expected a could-not-find-pin-to-connect error")
	}
	rendered := errs.Render(result.Sources, err)
	want := "could not find pin named 'C' to connect to 'A'"
	if !strings.Contains(rendered, want) {
		t.Fatalf("expected message containing %q, got %q", want, rendered)
	}
}
