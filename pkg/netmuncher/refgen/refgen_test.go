package refgen

import "testing"

func TestNextIncrementsPerPrefix(t *testing.T) {
	g := New("")
	if got := g.Next("R"); got != "R1" {
		t.Errorf("first Next(R) = %s, want R1", got)
	}
	if got := g.Next("R"); got != "R2" {
		t.Errorf("second Next(R) = %s, want R2", got)
	}
	if got := g.Next("C"); got != "C1" {
		t.Errorf("first Next(C) = %s, want C1", got)
	}
}

func TestNextWithSeparator(t *testing.T) {
	g := New("_")
	if got := g.Next("group"); got != "group_1" {
		t.Errorf("Next(group) = %s, want group_1", got)
	}
}
