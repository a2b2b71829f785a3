package parser

import (
	"net/mail"
	"net/url"
	"slices"

	"github.com/networkgear/tools/internal/domain"
)

// The names of the two sections of a well-formed PSL file.
const (
	SectionICANN   = "ICANN DOMAINS"
	SectionPrivate = "PRIVATE DOMAINS"
)

// A Block is a parsed chunk of a PSL file. Each block is one of the
// concrete types List, Comment, Section, Suffixes, Suffix, or
// Wildcard.
type Block interface {
	// SrcRange returns the block's SourceRange.
	SrcRange() SourceRange
	// Children returns the block's direct children, if any.
	Children() []Block
}

// BlocksOfType recursively collects and returns all blocks of
// concrete type T in the given parse tree.
//
// For example, BlocksOfType[*parser.Comment](ast) returns all comment
// nodes in ast.
func BlocksOfType[T Block](tree Block) []T {
	var ret []T
	blocksOfTypeRec(tree, &ret)
	return ret
}

func blocksOfTypeRec[T Block](tree Block, out *[]T) {
	if v, ok := tree.(T); ok {
		*out = append(*out, v)
	}
	for _, child := range tree.Children() {
		blocksOfTypeRec(child, out)
	}
}

// blockInfo is common information shared by all Block types.
type blockInfo struct {
	SourceRange
}

func (b blockInfo) SrcRange() SourceRange { return b.SourceRange }

// List is a parsed public suffix list.
type List struct {
	blockInfo

	// Blocks are the top-level elements of the list, in the order
	// they appear.
	Blocks []Block
}

func (l *List) Children() []Block { return l.Blocks }

// Comment is a comment block, consisting of one or more contiguous
// lines of commented text.
type Comment struct {
	blockInfo
	// Text is the content of the comment lines, with the leading
	// comment syntax removed.
	Text []string
}

func (c *Comment) Children() []Block { return nil }

// Section is a named part of a PSL file. In a well-formed file there
// are exactly two, SectionICANN and SectionPrivate.
type Section struct {
	blockInfo

	Name   string
	Blocks []Block
}

func (s *Section) Children() []Block { return s.Blocks }

// Suffixes is a block of rules under one owner: a header comment
// followed by rules, possibly interleaved with more comments.
type Suffixes struct {
	blockInfo

	// Owner is what could be read from the header comment.
	Owner Owner

	Blocks []Block
}

func (s *Suffixes) Children() []Block { return s.Blocks }

// Owner describes the entity responsible for a block of suffixes.
type Owner struct {
	// Name is the TLD operator for ICANN suffixes, and the legal
	// entity owning the domains for private ones.
	Name string
	// URLs link to further information about the owner.
	URLs []*url.URL
	// Contacts are the maintainers' addresses.
	Contacts []*mail.Address
}

// Suffix is a normal public suffix rule, such as "co.uk".
type Suffix struct {
	blockInfo

	// Domain is the rule, validated with SuffixOptions.
	Domain domain.Name
}

func (s *Suffix) Children() []Block { return nil }

// Wildcard is a wildcard rule such as "*.kawasaki.jp", along with its
// exception rules.
type Wildcard struct {
	blockInfo

	// Domain is the base of the wildcard, without the leading "*".
	Domain domain.Name
	// Exceptions are the labels that, in the wildcard position,
	// make a name not a public suffix. For "!city.kawasaki.jp" the
	// exception is "city".
	Exceptions []domain.Label
}

func (w *Wildcard) Children() []Block { return nil }

// RuleKind is the kind of a PSL rule.
type RuleKind int

const (
	NormalRule RuleKind = iota
	WildcardRule
	ExceptionRule
)

// Rule is a single PSL rule, flattened out of the parse tree.
type Rule struct {
	Kind RuleKind
	// Labels are the rule's labels in Unicode form, leftmost first,
	// without the "*" or "!" marker. The rule "*.kawasaki.jp" has
	// labels ["kawasaki", "jp"], and "!city.kawasaki.jp" has labels
	// ["city", "kawasaki", "jp"].
	Labels []string
	// Private is set for rules of the private domains section.
	Private bool
	SourceRange
}

// Rules returns all the rules of l in file order.
func (l *List) Rules() []Rule {
	var ret []Rule
	for _, b := range l.Blocks {
		s, ok := b.(*Section)
		private := ok && s.Name == SectionPrivate
		ret = appendRules(ret, b, private)
	}
	return ret
}

func appendRules(out []Rule, b Block, private bool) []Rule {
	switch v := b.(type) {
	case *Suffix:
		return append(out, Rule{NormalRule, labelStrings(v.Domain), private, v.SourceRange})
	case *Wildcard:
		base := labelStrings(v.Domain)
		out = append(out, Rule{WildcardRule, base, private, v.SourceRange})
		for _, exc := range v.Exceptions {
			labels := append([]string{exc.String()}, base...)
			out = append(out, Rule{ExceptionRule, labels, private, v.SourceRange})
		}
		return out
	}
	for _, child := range b.Children() {
		out = appendRules(out, child, private)
	}
	return out
}

func labelStrings(d domain.Name) []string {
	labels := d.Labels()
	ret := make([]string, len(labels))
	for i, l := range labels {
		ret[i] = l.String()
	}
	return ret
}

// hasException reports whether label is one of w's exceptions.
func (w *Wildcard) hasException(label domain.Label) bool {
	return slices.ContainsFunc(w.Exceptions, label.Equal)
}
