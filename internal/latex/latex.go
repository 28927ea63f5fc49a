// Package latex parses the editor's source syntax into node trees and
// holds the control-sequence registry. Serialization is the inverse walk,
// implemented by each node's WriteLatex.
package latex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/mathtext/internal/text"
	"github.com/dshills/mathtext/internal/tree"
)

// Errors returned by parsing.
var (
	// ErrUnknownCommand indicates a control sequence with no registered
	// handler.
	ErrUnknownCommand = errors.New("unknown control sequence")

	// ErrUnterminatedMath indicates an inline math bridge with no
	// closing dollar.
	ErrUnterminatedMath = errors.New("unterminated inline math")

	// ErrMissingBrace indicates a text-mode command without a braced
	// literal.
	ErrMissingBrace = errors.New("missing braced literal")
)

// Registry maps control sequences to region variants. It is built once
// at startup and immutable thereafter; nothing mutates it after New.
type Registry struct {
	variants map[string]text.Variant
}

// NewRegistry builds the registry from the static variant table.
func NewRegistry() *Registry {
	r := &Registry{variants: make(map[string]text.Variant)}
	for _, v := range text.Builtins() {
		r.variants[v.CtrlSeq] = v
	}
	return r
}

// Lookup returns the variant registered for ctrlSeq.
func (r *Registry) Lookup(ctrlSeq string) (text.Variant, bool) {
	v, ok := r.variants[ctrlSeq]
	return v, ok
}

// Parser parses source strings against one registry.
type Parser struct {
	reg *Registry
}

// NewParser creates a parser over reg.
func NewParser(reg *Registry) *Parser {
	return &Parser{reg: reg}
}

// ParseTextInto parses text-field source into root: literal characters,
// escaped literals, and `$…$` math bridges.
func (p *Parser) ParseTextInto(root tree.Node, src string) error {
	s := &scanner{src: src}
	for !s.eof() {
		switch {
		case s.peek() == '$':
			s.next()
			cmd := text.NewRootMathCommand()
			if err := p.parseMathSeq(cmd.Block(), s, true); err != nil {
				return err
			}
			tree.AppendChild(root, cmd)
		case s.peek() == '\\':
			sym, err := p.parseEscape(s)
			if err != nil {
				return err
			}
			tree.AppendChild(root, sym)
		default:
			tree.AppendChild(root, text.NewCharSymbol(s.nextCluster()))
		}
	}
	return nil
}

// ParseMathInto parses math-field source into root: text-mode commands,
// escaped literals, and plain symbols. Whitespace is not content in math
// mode and is skipped.
func (p *Parser) ParseMathInto(root tree.Node, src string) error {
	s := &scanner{src: src}
	return p.parseMathSeq(root, s, false)
}

// parseMathSeq parses math-mode tokens into block until end of input, or
// until a closing dollar when bridged is set.
func (p *Parser) parseMathSeq(block tree.Node, s *scanner, bridged bool) error {
	for {
		s.skipSpace()
		if s.eof() {
			if bridged {
				return fmt.Errorf("at offset %d: %w", s.pos, ErrUnterminatedMath)
			}
			return nil
		}
		switch {
		case s.peek() == '$':
			if bridged {
				s.next()
				return nil
			}
			s.next()
			tree.AppendChild(block, text.NewDollarSymbol())
		case s.peek() == '\\':
			n, err := p.parseCommand(s)
			if err != nil {
				return err
			}
			tree.AppendChild(block, n)
		default:
			tree.AppendChild(block, text.NewCharSymbol(s.nextCluster()))
		}
	}
}

// parseCommand parses a control sequence in math mode, at a `\`.
func (p *Parser) parseCommand(s *scanner) (tree.Node, error) {
	start := s.pos
	ctrlSeq := s.controlSeq()
	if v, ok := p.reg.Lookup(ctrlSeq); ok {
		literal, err := p.bracedLiteral(s)
		if err != nil {
			return nil, err
		}
		return text.NewParsedBlock(v, literal), nil
	}
	switch ctrlSeq {
	case `\$`:
		return text.NewDollarSymbol(), nil
	case `\{`, `\}`:
		return text.NewSymbol(ctrlSeq, ctrlSeq[1:]), nil
	case `\backslash`:
		return text.NewSymbol(`\backslash `, `\`), nil
	}
	return nil, fmt.Errorf("%q at offset %d: %w", ctrlSeq, start, ErrUnknownCommand)
}

// parseEscape parses a `\`-escape in text mode: the escaped character is
// inserted literally.
func (p *Parser) parseEscape(s *scanner) (tree.Node, error) {
	ctrlSeq := s.controlSeq()
	switch ctrlSeq {
	case `\$`:
		return text.NewDollarSymbol(), nil
	case `\\`:
		return text.NewSymbol(`\\`, `\`), nil
	}
	if len(ctrlSeq) == 2 {
		return text.NewCharSymbol(ctrlSeq[1:]), nil
	}
	return nil, fmt.Errorf("%q in text mode: %w", ctrlSeq, ErrUnknownCommand)
}

// bracedLiteral reads a `{…}` literal, tolerating leading whitespace and
// decoding the escapes serialization emits for braces and backslashes.
// The literal may be empty.
func (p *Parser) bracedLiteral(s *scanner) (string, error) {
	s.skipSpace()
	if s.eof() || s.peek() != '{' {
		return "", fmt.Errorf("at offset %d: %w", s.pos, ErrMissingBrace)
	}
	s.next()
	start := s.pos
	var sb strings.Builder
	for !s.eof() && s.peek() != '}' {
		if s.peek() != '\\' {
			sb.WriteString(s.nextCluster())
			continue
		}
		ctrlSeq := s.controlSeq()
		switch ctrlSeq {
		case `\{`, `\}`:
			sb.WriteString(ctrlSeq[1:])
		case `\$`:
			sb.WriteByte('$')
		case `\backslash`:
			sb.WriteByte('\\')
			// the control word's separating space is not content
			if !s.eof() && s.peek() == ' ' {
				s.next()
			}
		default:
			return "", fmt.Errorf("%q in literal: %w", ctrlSeq, ErrUnknownCommand)
		}
	}
	if s.eof() {
		return "", fmt.Errorf("at offset %d: %w", start, ErrMissingBrace)
	}
	s.next()
	return sb.String(), nil
}
