// Package parser implements a validating parser for public suffix list
// files.
package parser

import (
	"strings"

	"github.com/networkgear/tools/internal/domain"
)

// SuffixOptions are the validity options PSL rules are checked with.
//
// Rules are kept in Unicode form, so that matching can work on names
// with their punycode removed. The Bidi Rule is not applied, as some
// ICANN suffixes predate it.
const SuffixOptions = domain.UseSTD3ASCIIRules |
	domain.CheckHyphens |
	domain.CheckJoiners |
	domain.CheckOtherContextualRules |
	domain.VerifyDNSLength

// Parse parses bs as a PSL file.
//
// The parser keeps going when it encounters errors, and returns all of
// them along with the parts of the file that could be parsed. Rules
// that are not valid domain names are left out of the returned List.
func Parse(bs []byte) (*List, []error) {
	lines, errs := normalizeToUTF8Lines(bs)
	p := &parser{
		input: lines,
		errs:  errs,
	}
	return p.parseTopLevel(), p.errs
}

// parser is the state for a single PSL file parse.
type parser struct {
	// input is the remaining unparsed source text.
	input []string
	// inputLine is the line number of input[0].
	inputLine int
	// peekBuf is zero or one lookahead token.
	peekBuf any
	errs    []error
}

func (p *parser) addError(err error) {
	p.errs = append(p.errs, err)
}

// The lexer turns each input line into one token. normalizeToUTF8Lines
// has already dealt with encodings and whitespace, so classifying a
// line only needs to look at its prefix.

const (
	sectionStartPrefix = "// ===BEGIN "
	sectionEndPrefix   = "// ===END "
	sectionPrefix      = "// ==="
	sectionSuffix      = "==="
	commentPrefix      = "//"
	wildcardPrefix     = "*."
	exceptionPrefix    = "!"
)

type line struct {
	SourceRange
	Text string
}

type (
	tokenEOF            struct{}
	tokenBlank          struct{ line }
	tokenComment        struct{ line }
	tokenSectionUnknown struct{ line }
	tokenSectionStart   struct {
		line
		Name string
	}
	tokenSectionEnd struct {
		line
		Name string
	}
	tokenSuffix    struct{ line }
	tokenWildcard  struct{ line }
	tokenException struct{ line }
)

// next lexes and consumes the next token.
func (p *parser) next() any {
	if tok := p.peekBuf; tok != nil {
		p.peekBuf = nil
		return tok
	}
	if len(p.input) == 0 {
		return tokenEOF{}
	}

	src := line{lineRange(p.inputLine), p.input[0]}
	p.input = p.input[1:]
	p.inputLine++

	switch text := src.Text; {
	case text == "":
		return tokenBlank{src}
	case strings.HasPrefix(text, sectionStartPrefix):
		if name, ok := sectionName(text, sectionStartPrefix); ok {
			return tokenSectionStart{src, name}
		}
		return tokenSectionUnknown{src}
	case strings.HasPrefix(text, sectionEndPrefix):
		if name, ok := sectionName(text, sectionEndPrefix); ok {
			return tokenSectionEnd{src, name}
		}
		return tokenSectionUnknown{src}
	case strings.HasPrefix(text, sectionPrefix):
		return tokenSectionUnknown{src}
	case strings.HasPrefix(text, commentPrefix):
		src.Text = strings.TrimPrefix(strings.TrimPrefix(text, commentPrefix), " ")
		return tokenComment{src}
	case strings.HasPrefix(text, wildcardPrefix):
		src.Text = strings.TrimPrefix(text, wildcardPrefix)
		return tokenWildcard{src}
	case strings.HasPrefix(text, exceptionPrefix):
		src.Text = strings.TrimPrefix(text, exceptionPrefix)
		return tokenException{src}
	}
	return tokenSuffix{src}
}

func sectionName(text, prefix string) (string, bool) {
	return strings.CutSuffix(strings.TrimPrefix(text, prefix), sectionSuffix)
}

// peek returns the next token without consuming it.
func (p *parser) peek() any {
	if p.peekBuf == nil {
		p.peekBuf = p.next()
	}
	return p.peekBuf
}

// blockEmitter returns a function that appends blocks to out, and
// widens srcRange (if not nil) to cover them. Nil blocks are skipped,
// sub-parsers return nil for input they rejected.
func blockEmitter(out *[]Block, srcRange *SourceRange) func(...Block) {
	return func(bs ...Block) {
		for _, b := range bs {
			if b == nil {
				continue
			}
			*out = append(*out, b)
			switch {
			case srcRange == nil:
			case *srcRange == (SourceRange{}):
				*srcRange = b.SrcRange()
			default:
				*srcRange = srcRange.merge(b.SrcRange())
			}
		}
	}
}

// parseTopLevel parses the top level of a PSL file.
func (p *parser) parseTopLevel() *List {
	ret := &List{}
	emit := blockEmitter(&ret.Blocks, &ret.SourceRange)

	for {
		switch tok := p.peek().(type) {
		case tokenEOF:
			return ret
		case tokenBlank:
			p.next()
		case tokenComment:
			emit(p.parseCommentOrSuffixBlock())
		case tokenSectionStart:
			emit(p.parseSection())
		case tokenSectionEnd:
			p.next()
			p.addError(ErrUnstartedSection{tok.SourceRange, tok.Name})
		case tokenSectionUnknown:
			p.next()
			p.addError(ErrUnknownSectionMarker{tok.SourceRange})
		case tokenSuffix, tokenWildcard, tokenException:
			emit(p.parseSuffixBlock(nil))
		default:
			panic("unhandled token")
		}
	}
}

// parseSection parses a section, from its start marker to its end
// marker.
func (p *parser) parseSection() *Section {
	start := p.next().(tokenSectionStart)
	ret := &Section{
		blockInfo: blockInfo{start.SourceRange},
		Name:      start.Name,
	}
	emit := blockEmitter(&ret.Blocks, &ret.SourceRange)

	for {
		switch tok := p.peek().(type) {
		case tokenEOF:
			p.addError(ErrUnclosedSection{ret})
			return ret
		case tokenBlank:
			p.next()
		case tokenComment:
			emit(p.parseCommentOrSuffixBlock())
		case tokenSectionStart:
			// Sections do not nest. The inner section's blocks are
			// adopted by the outer one.
			inner := p.parseSection()
			emit(inner.Blocks...)
			p.addError(ErrNestedSection{inner.SourceRange, inner.Name, ret})
		case tokenSectionEnd:
			p.next()
			if tok.Name != ret.Name {
				p.addError(ErrMismatchedSection{tok.SourceRange, tok.Name, ret})
			}
			ret.SourceRange = ret.SourceRange.merge(tok.SourceRange)
			return ret
		case tokenSectionUnknown:
			p.next()
			p.addError(ErrUnknownSectionMarker{tok.SourceRange})
		case tokenSuffix, tokenWildcard, tokenException:
			emit(p.parseSuffixBlock(nil))
		default:
			panic("unhandled token")
		}
	}
}

// parseCommentOrSuffixBlock parses a comment, and then either returns
// it as a standalone comment, or as the header of the suffix block
// that immediately follows it.
func (p *parser) parseCommentOrSuffixBlock() Block {
	comment := p.parseComment()
	switch p.peek().(type) {
	case tokenSuffix, tokenWildcard, tokenException:
		return p.parseSuffixBlock(comment)
	}
	return comment
}

// parseSuffixBlock parses a suffix block, up to the next blank line.
func (p *parser) parseSuffixBlock(header *Comment) *Suffixes {
	ret := &Suffixes{
		Owner: extractOwner(header),
	}
	emit := blockEmitter(&ret.Blocks, &ret.SourceRange)
	if header != nil {
		emit(header)
	}

	for {
		switch tok := p.peek().(type) {
		case tokenEOF, tokenBlank:
			return ret
		case tokenComment:
			emit(p.parseComment())
		case tokenSectionUnknown:
			p.next()
			p.addError(ErrUnknownSectionMarker{tok.SourceRange})
		case tokenSectionStart:
			// Section markers end the block, and are left for the
			// caller to deal with.
			p.addError(ErrSectionInSuffixBlock{tok.SourceRange})
			return ret
		case tokenSectionEnd:
			p.addError(ErrSectionInSuffixBlock{tok.SourceRange})
			return ret
		case tokenSuffix:
			emit(p.parseSuffix())
		case tokenWildcard:
			emit(p.parseWildcard())
		case tokenException:
			// Exceptions attach to their wildcard instead of being
			// blocks of their own.
			p.parseException(ret.Blocks)
		default:
			panic("unhandled token")
		}
	}
}

// parseRule validates the text of a rule as a domain name.
func (p *parser) parseRule(tok line) (domain.Name, bool) {
	d, ok := domain.ParseWith(tok.Text, SuffixOptions)
	if !ok {
		p.addError(ErrInvalidSuffix{tok.SourceRange, tok.Text, explainInvalid(tok.Text)})
		return domain.Name{}, false
	}
	if d.TerminatedByDot() {
		p.addError(ErrInvalidSuffix{tok.SourceRange, tok.Text, errTrailingDot})
		return domain.Name{}, false
	}
	if d.String() != tok.Text {
		p.addError(ErrInvalidSuffix{tok.SourceRange, tok.Text, errNotCanonical{d.String()}})
		return domain.Name{}, false
	}
	return d, true
}

// explainInvalid returns why text, which domain.ParseWith rejected,
// is not a valid rule.
func explainInvalid(text string) error {
	_, err := domain.FromLabels(strings.Split(text, "."), false, SuffixOptions)
	if err == nil {
		return errInvalidName
	}
	return err
}

// parseSuffix parses a normal rule, such as "co.uk".
func (p *parser) parseSuffix() Block {
	tok := p.next().(tokenSuffix)
	d, ok := p.parseRule(tok.line)
	if !ok {
		return nil
	}
	return &Suffix{
		blockInfo: blockInfo{tok.SourceRange},
		Domain:    d,
	}
}

// parseWildcard parses a wildcard rule, such as "*.kawasaki.jp".
func (p *parser) parseWildcard() Block {
	tok := p.next().(tokenWildcard)
	d, ok := p.parseRule(tok.line)
	if !ok {
		return nil
	}
	return &Wildcard{
		blockInfo: blockInfo{tok.SourceRange},
		Domain:    d,
	}
}

// parseException parses an exception rule, such as
// "!city.kawasaki.jp", and attaches it to the wildcard it belongs to
// in previous. The exception must be exactly one label longer than
// the wildcard's base.
func (p *parser) parseException(previous []Block) {
	tok := p.next().(tokenException)
	d, ok := p.parseRule(tok.line)
	if !ok {
		return
	}

	if n := d.NumLabels(); n >= 2 {
		base := d.Suffix(n - 1)
		for _, block := range previous {
			w, ok := block.(*Wildcard)
			if !ok || !w.Domain.Equal(base) {
				continue
			}
			if exc := d.Label(0); !w.hasException(exc) {
				w.Exceptions = append(w.Exceptions, exc)
			}
			return
		}
	}
	p.addError(ErrUnmatchedException{tok.SourceRange, tok.Text})
}

// parseComment parses a run of comment lines.
func (p *parser) parseComment() *Comment {
	tok := p.next().(tokenComment)
	ret := &Comment{
		blockInfo: blockInfo{tok.SourceRange},
		Text:      []string{tok.Text},
	}
	for {
		tok, ok := p.peek().(tokenComment)
		if !ok {
			return ret
		}
		p.next()
		ret.SourceRange = ret.SourceRange.merge(tok.SourceRange)
		ret.Text = append(ret.Text, tok.Text)
	}
}
