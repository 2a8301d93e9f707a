// Package errs defines netmuncher's closed error-kind enumeration and the
// chained-diagnostic error type the CLI prints.
package errs

import (
	"errors"
	"fmt"

	"github.com/circuitkit/netmuncher/pkg/netmuncher/source"
)

// Kind is the closed set of reasons a compile can fail.
type Kind int

const (
	KindIO Kind = iota
	KindTokenization
	KindParse
	KindComponent
	KindValidation
	KindInstantiation
	KindERC
	KindSerialization
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindTokenization:
		return "tokenization"
	case KindParse:
		return "parse"
	case KindComponent:
		return "component"
	case KindValidation:
		return "validation"
	case KindInstantiation:
		return "instantiation"
	case KindERC:
		return "erc"
	case KindSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// CompileError is a located, kinded error that can wrap an underlying
// cause, forming "error in component Foo" -> "duplicate pin named BAR"
// diagnostic chains.
type CompileError struct {
	Kind    Kind
	Tag     source.Tag
	Message string
	Cause   error
}

// New builds a CompileError with no location.
func New(kind Kind, message string) *CompileError {
	return &CompileError{Kind: kind, Tag: source.Invalid, Message: message}
}

// Newf builds a CompileError with no location from a format string.
func Newf(kind Kind, format string, args ...interface{}) *CompileError {
	return New(kind, fmt.Sprintf(format, args...))
}

// At builds a CompileError tagged with a source location.
func At(kind Kind, tag source.Tag, message string) *CompileError {
	return &CompileError{Kind: kind, Tag: tag, Message: message}
}

// AtName builds a CompileError prefixed with a bare file name rather than a
// resolved file:row:col, for diagnostics like "unexpected end of file" that
// have no token position to point at.
func AtName(kind Kind, name, message string) *CompileError {
	return &CompileError{Kind: kind, Tag: source.Invalid, Message: name + ": " + message}
}

// Atf builds a located CompileError from a format string.
func Atf(kind Kind, tag source.Tag, format string, args ...interface{}) *CompileError {
	return At(kind, tag, fmt.Sprintf(format, args...))
}

// Wrap attaches an underlying cause to a located error, producing the
// "error in component Foo" -> "Caused by: ..." chain shape.
func Wrap(kind Kind, tag source.Tag, message string, cause error) *CompileError {
	return &CompileError{Kind: kind, Tag: tag, Message: message, Cause: cause}
}

// Error satisfies the error interface without resolving e.Tag to a
// file:row:col (that requires a *source.Sources; use Render for the
// user-facing form). It is still useful for %v/%s logging in contexts that
// don't have a Sources handy.
func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s\nCaused by: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/errors.As.
func (e *CompileError) Unwrap() error {
	return e.Cause
}

// Render renders the full diagnostic chain using sources to resolve every
// tag along the chain to "file:row:col", top-level cause first.
func Render(sources *source.Sources, err error) string {
	var ce *CompileError
	if !errors.As(err, &ce) {
		return err.Error()
	}
	return ce.render(sources)
}

func (e *CompileError) render(sources *source.Sources) string {
	head := e.Message
	if e.Tag.IsValid() {
		head = fmt.Sprintf("%s: %s", sources.Locate(e.Tag), e.Message)
	}
	if e.Cause == nil {
		return head
	}
	var next *CompileError
	if errors.As(e.Cause, &next) {
		return head + "\nCaused by: " + next.render(sources)
	}
	return head + "\nCaused by: " + e.Cause.Error()
}
