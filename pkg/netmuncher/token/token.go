// Package token defines the lexical token kinds of the netmuncher source
// language, shared with the participle lexer rules that implement them
// (pkg/netmuncher/lex).
package token

// Kind identifies the lexical class of a token.
type Kind string

const (
	LBrace    Kind = "LBrace"
	RBrace    Kind = "RBrace"
	LParen    Kind = "LParen"
	RParen    Kind = "RParen"
	LBracket  Kind = "LBracket"
	RBracket  Kind = "RBracket"
	Equals    Kind = "Equals"
	DotDot    Kind = "DotDot"
	Comma     Kind = "Comma"
	Colon     Kind = "Colon"
	Semicolon Kind = "Semicolon"

	Int    Kind = "Int"
	String Kind = "String"
	Ident  Kind = "Ident"

	KwComponent     Kind = "KwComponent"
	KwAbstract      Kind = "KwAbstract"
	KwFootprint     Kind = "KwFootprint"
	KwInput         Kind = "KwInput"
	KwOutput        Kind = "KwOutput"
	KwPassive       Kind = "KwPassive"
	KwPowerIn       Kind = "KwPowerIn"
	KwPowerOut      Kind = "KwPowerOut"
	KwTristate      Kind = "KwTristate"
	KwBidirectional Kind = "KwBidirectional"
	KwNoConnect     Kind = "KwNoConnect"
	KwPin           Kind = "KwPin"
	KwNet           Kind = "KwNet"
	KwPrefix        Kind = "KwPrefix"
	KwRequire       Kind = "KwRequire"
	KwValue         Kind = "KwValue"
	KwConnect       Kind = "KwConnect"
	KwUnit          Kind = "KwUnit"
)

// ReservedWords maps every reserved identifier spelling to its token kind.
// An identifier that matches one of these spellings is never an Ident
// token, even in a quoted-string symbol position.
var ReservedWords = map[string]Kind{
	"component":     KwComponent,
	"abstract":      KwAbstract,
	"footprint":     KwFootprint,
	"input":         KwInput,
	"output":        KwOutput,
	"passive":       KwPassive,
	"power_in":      KwPowerIn,
	"power_out":     KwPowerOut,
	"tristate":      KwTristate,
	"bidirectional": KwBidirectional,
	"noconnect":     KwNoConnect,
	"pin":           KwPin,
	"net":           KwNet,
	"prefix":        KwPrefix,
	"require":       KwRequire,
	"value":         KwValue,
	"connect":       KwConnect,
	"unit":          KwUnit,
}
