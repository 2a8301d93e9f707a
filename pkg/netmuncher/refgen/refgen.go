// Package refgen hands out unique designators of the form
// "<prefix><separator><counter>" per prefix family.
package refgen

import "strconv"

// Generator assigns unique designators per prefix family. The elaborator
// uses one Generator with separator "" for physical references (R1, C2,
// U3); the diagram compiler uses its own with separator "_" for node
// names (Main_1, Resistor_1).
type Generator struct {
	separator string
	counters  map[string]uint32
}

// New returns a Generator that joins prefix and counter with separator.
func New(separator string) *Generator {
	return &Generator{separator: separator, counters: make(map[string]uint32)}
}

// Next returns the next designator for prefix, starting at 1.
func (g *Generator) Next(prefix string) string {
	g.counters[prefix]++
	return prefix + g.separator + strconv.FormatUint(uint64(g.counters[prefix]), 10)
}
