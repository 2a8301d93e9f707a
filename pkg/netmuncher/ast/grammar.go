// Package ast holds the participle grammar for netmuncher source files and
// the reducer that folds a parsed SourceFile into a ParseFileResult of
// components, global nets, and require directives: a lexer.MustSimple rule
// table (pkg/netmuncher/lex) feeding a participle.Build[SourceFile] parser
// whose struct tags mirror the language grammar.
package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Sym is a symbol reference that can come from either a bare identifier or
// a quoted string. Its Capture strips surrounding quotes so downstream
// code never has to care which spelling was used.
type Sym struct {
	Value string
}

// Capture implements participle's capture interface.
func (s *Sym) Capture(values []string) error {
	v := values[0]
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
	}
	s.Value = v
	return nil
}

// SourceFile is the root grammar production: a sequence of requires,
// global net declarations, and component definitions, in any order.
type SourceFile struct {
	Items []*Item `@@*`
}

// Item is one top-level declaration.
type Item struct {
	Require   *RequireDecl   `  @@`
	GlobalNet *NetDecl       `| @@`
	Component *ComponentDecl `| @@`
}

// RequireDecl is `require "<path>";`.
type RequireDecl struct {
	Pos  lexer.Position
	Path Sym `KwRequire @String Semicolon`
}

// NetDecl is `net <sym>[, <sym>]*;`, used both as a top-level global net
// declaration and as a component-body local net declaration.
type NetDecl struct {
	Pos   lexer.Position
	Names []Sym `KwNet @(Ident|String) (Comma @(Ident|String))* Semicolon`
}

// ComponentDecl is `component <Name> [abstract] { <param>* }`.
type ComponentDecl struct {
	Pos      lexer.Position
	Name     Sym      `KwComponent @(Ident|String)`
	Abstract bool     `@KwAbstract?`
	Params   []*Param `LBrace @@* RBrace`
}

// Param is one component-body parameter.
type Param struct {
	Pin       *PinDecl       `  @@`
	Footprint *FootprintDecl `| @@`
	Prefix    *PrefixDecl    `| @@`
	Value     *ValueDecl     `| @@`
	Net       *NetDecl       `| @@`
	Connect   *ConnectDecl   `| @@`
	Unit      *UnitDecl      `| @@`
	Instance  *InstanceDecl  `| @@`
}

// PinDecl is `pin <sym> : <type> [= <num>[, <num>]*];`. Numbers is empty
// for an abstract pin declaration (no "=" clause) and non-empty for a
// concrete one; in a unit block with more than one number, Numbers holds
// one physical pin number per logical unit.
type PinDecl struct {
	Pos     lexer.Position
	Name    Sym    `KwPin @(Ident|String) Colon`
	Type    string `@(KwInput|KwOutput|KwPassive|KwPowerIn|KwPowerOut|KwTristate|KwBidirectional|KwNoConnect)`
	Numbers []int  `(Equals @Int (Comma @Int)*)? Semicolon`
}

// FootprintDecl is `footprint "<s>";`.
type FootprintDecl struct {
	Pos   lexer.Position
	Value Sym `KwFootprint @String Semicolon`
}

// PrefixDecl is `prefix "<s>";`.
type PrefixDecl struct {
	Pos   lexer.Position
	Value Sym `KwPrefix @String Semicolon`
}

// ValueDecl is `value "<s>";`, used both as a component-body default value
// and as an instance-body value override.
type ValueDecl struct {
	Pos   lexer.Position
	Value Sym `KwValue @String Semicolon`
}

// ConnectDecl is `connect <symList> = <symList>;`.
type ConnectDecl struct {
	Pos   lexer.Position
	Left  []Sym `KwConnect @(Ident|String) (Comma @(Ident|String))*`
	Right []Sym `Equals @(Ident|String) (Comma @(Ident|String))* Semicolon`
}

// UnitDecl is `unit { <pin>* }`.
type UnitDecl struct {
	Pos  lexer.Position
	Pins []*PinDecl `KwUnit LBrace @@* RBrace`
}

// InstanceDecl is `<Name> { <instParam>* }`: instantiates a component
// inside an abstract component's body.
type InstanceDecl struct {
	Pos    lexer.Position
	Name   Sym              `@(Ident|String)`
	Params []*InstanceParam `LBrace @@* RBrace`
}

// InstanceParam is one instance-body parameter: either a value override or
// a `<pin> = <target>;` connection mapping.
type InstanceParam struct {
	Value      *ValueDecl       `  @@`
	Connection *ConnectionParam `| @@`
}

// ConnectionParam is `<sym> = <sym>;` inside an instance body. The target
// additionally admits the literal `noconnect`, which the lexer hands us as
// a keyword token rather than an identifier.
type ConnectionParam struct {
	Pos    lexer.Position
	Pin    Sym `@(Ident|String) Equals`
	Target Sym `@(Ident|String|KwNoConnect) Semicolon`
}
