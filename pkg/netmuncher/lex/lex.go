// Package lex defines the participle lexer rules for the netmuncher source
// language: a lexer.MustSimple rule table with the reserved words from
// pkg/netmuncher/token spelled out as word-bounded patterns ahead of the
// general identifier rule, so a keyword spelling never tokenizes as a
// plain identifier.
//
// Keywords are case-sensitive, and two rules need careful ordering:
//   - ".." must tokenize as DotDot; a lone "." has no matching rule at all,
//     so participle's lexer itself reports "invalid input text" there,
//     which the ast package's tokenize pass reports as an
//     errs.KindTokenization error at that offset.
//   - "//" opens a line comment, elided before parsing.
package lex

import (
	"sort"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/token"
)

// Lexer is the shared token rule table for netmuncher source files.
var Lexer = lexer.MustSimple(rules())

func rules() []lexer.SimpleRule {
	out := []lexer.SimpleRule{
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	}

	// Longest spelling first, so power_in and power_out are tried before
	// input and output.
	words := make([]string, 0, len(token.ReservedWords))
	for w := range token.ReservedWords {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	for _, w := range words {
		out = append(out, lexer.SimpleRule{Name: string(token.ReservedWords[w]), Pattern: `\b` + w + `\b`})
	}

	return append(out, []lexer.SimpleRule{
		{Name: "DotDot", Pattern: `\.\.`},

		{Name: "LBrace", Pattern: `\{`},
		{Name: "RBrace", Pattern: `\}`},
		{Name: "LParen", Pattern: `\(`},
		{Name: "RParen", Pattern: `\)`},
		{Name: "LBracket", Pattern: `\[`},
		{Name: "RBracket", Pattern: `\]`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Colon", Pattern: `:`},
		{Name: "Semicolon", Pattern: `;`},

		{Name: "String", Pattern: `"[^"]*"`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_]*`},
	}...)
}
