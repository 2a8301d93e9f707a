package ast

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/errs"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/lex"
	"github.com/circuitkit/netmuncher/pkg/netmuncher/source"
)

// Parser parses netmuncher source text into a SourceFile.
type Parser struct {
	parser *participle.Parser[SourceFile]
}

// NewParser builds a netmuncher source parser.
func NewParser() (*Parser, error) {
	p, err := participle.Build[SourceFile](
		participle.Lexer(lex.Lexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, errs.Newf(errs.KindParse, "failed to build netmuncher parser: %s", err)
	}
	return &Parser{parser: p}, nil
}

// ParseString parses one loaded file's text into a SourceFile. Tokenizing
// and grammar-parsing are run as two explicit phases: the input is lexed
// to completion first, and any character with no matching token rule (a
// lone ".", or any other unrecognized byte) is reported as
// errs.KindTokenization at the offset the lexer stopped on. Only once the
// full token stream lexes cleanly does the grammar run; any failure past
// that point, an unexpected token or a missing production, is
// errs.KindParse.
func (p *Parser) ParseString(loc *source.Locator, input string) (*SourceFile, error) {
	if err := tokenizeOnly(loc, input); err != nil {
		return nil, err
	}

	file, err := p.parser.ParseString(loc.Name(), input)
	if err != nil {
		return nil, errs.At(errs.KindParse, loc.Tag(0), err.Error())
	}
	return file, nil
}

// tokenizeOnly runs the shared lexer rule table to completion without
// invoking the grammar, so an unlexable character surfaces as a
// KindTokenization error rather than being folded into the grammar's own
// (KindParse) failure mode.
func tokenizeOnly(loc *source.Locator, input string) error {
	lx, err := lex.Lexer.Lex(loc.Name(), strings.NewReader(input))
	if err != nil {
		return errs.At(errs.KindTokenization, loc.Tag(0), err.Error())
	}
	for {
		tok, err := lx.Next()
		if err != nil {
			offset := tok.Pos.Offset
			var perr participle.Error
			if errors.As(err, &perr) {
				offset = perr.Position().Offset
			}
			return errs.At(errs.KindTokenization, loc.Tag(offset), err.Error())
		}
		if tok.EOF() {
			return nil
		}
	}
}
