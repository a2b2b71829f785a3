// Package publicsuffix answers public suffix questions about domain
// names, using rules from the Public Suffix List.
//
// The rules are compiled into two trees. The positive tree holds the
// normal and wildcard rules, plus the implicit "*" rule that makes
// every unknown top-level domain a public suffix. The negative tree
// holds the exception rules. A name is a public suffix if the positive
// tree accepts it and the negative tree does not, or if it is the
// parent of an exception.
package publicsuffix

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/networkgear/tools/internal/domain"
	"github.com/networkgear/tools/internal/parser"
)

// Matcher is a compiled set of public suffix rules. A Matcher is
// immutable and safe for concurrent use.
type Matcher struct {
	positive Node
	negative Node
	// rules counts the rules compiled in, not counting the implicit
	// "*" rule.
	rules int
}

// Option configures Compile.
type Option func(*compileOptions)

type compileOptions struct {
	icannOnly bool
}

// ICANNOnly makes Compile skip the rules of the private domains
// section.
func ICANNOnly() Option {
	return func(o *compileOptions) { o.icannOnly = true }
}

// Compile builds a Matcher from the rules of l.
func Compile(l *parser.List, opts ...Option) *Matcher {
	var o compileOptions
	for _, opt := range opts {
		opt(&o)
	}

	m := &Matcher{}
	m.positive.Insert([]string{Wildcard})
	for _, r := range l.Rules() {
		if o.icannOnly && r.Private {
			continue
		}
		switch r.Kind {
		case parser.NormalRule:
			m.positive.Insert(r.Labels)
		case parser.WildcardRule:
			m.positive.Insert(append([]string{Wildcard}, r.Labels...))
		case parser.ExceptionRule:
			m.negative.Insert(r.Labels)
		}
		m.rules++
	}
	return m
}

// Load parses bs as a PSL file and compiles it. Any parse error fails
// the load, as a list with errors may have lost rules.
func Load(bs []byte, opts ...Option) (*Matcher, error) {
	l, errs := parser.Parse(bs)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid public suffix list: %w", errors.Join(errs...))
	}
	return Compile(l, opts...), nil
}

// NumRules returns the number of rules m was compiled from.
func (m *Matcher) NumRules() int { return m.rules }

//go:embed data/public_suffix_list.dat
var embeddedList []byte

var (
	defaultOnce    sync.Once
	defaultMatcher *Matcher
)

// LoadEmbedded compiles the list embedded in the program with opts.
// Use Default for the shared Matcher with no options.
func LoadEmbedded(opts ...Option) (*Matcher, error) {
	return Load(embeddedList, opts...)
}

// Default returns the Matcher for the list embedded in the program.
// It is compiled on first use.
func Default() *Matcher {
	defaultOnce.Do(func() {
		m, err := LoadEmbedded()
		if err != nil {
			panic(fmt.Sprintf("embedded public suffix list: %v", err))
		}
		defaultMatcher = m
	})
	return defaultMatcher
}

// matchLabels returns the labels of d in the form rules are stored
// in.
func matchLabels(d domain.Name) []string {
	labels := d.WithoutPunycode().Labels()
	ret := make([]string, len(labels))
	for i, l := range labels {
		ret[i] = l.String()
	}
	return ret
}

func (m *Matcher) isPublicSuffix(labels []string) bool {
	if m.positive.Accepts(labels) && !m.negative.Accepts(labels) {
		return true
	}
	return m.negative.AcceptsChild(labels)
}

// IsPublicSuffix reports whether d is a public suffix.
func (m *Matcher) IsPublicSuffix(d domain.Name) bool {
	if d.NumLabels() == 0 {
		return false
	}
	return m.isPublicSuffix(matchLabels(d))
}

// PublicSuffix returns the longest suffix of d that is a public
// suffix, sliced from d so that it keeps the encoding of d. It
// reports false if there is none.
func (m *Matcher) PublicSuffix(d domain.Name) (domain.Name, bool) {
	labels := matchLabels(d)
	for drop := range labels {
		if m.isPublicSuffix(labels[drop:]) {
			return d.Slice(drop, len(labels)), true
		}
	}
	return domain.Name{}, false
}

// RegisteredDomain returns the public suffix of d plus one more label,
// the part of d that can be registered. It reports false if d is a
// public suffix itself, or has none.
func (m *Matcher) RegisteredDomain(d domain.Name) (domain.Name, bool) {
	ps, ok := m.PublicSuffix(d)
	if !ok || ps.NumLabels() == d.NumLabels() {
		return domain.Name{}, false
	}
	return d.Suffix(ps.NumLabels() + 1), true
}

// DropPublicSuffix returns the labels of d left of its public suffix.
// It reports false if d is a public suffix itself, or has none.
func (m *Matcher) DropPublicSuffix(d domain.Name) (domain.Name, bool) {
	ps, ok := m.PublicSuffix(d)
	if !ok || ps.NumLabels() == d.NumLabels() {
		return domain.Name{}, false
	}
	return d.Prefix(d.NumLabels() - ps.NumLabels()), true
}

// IsPublicSuffix reports whether d is a public suffix of the embedded
// list.
func IsPublicSuffix(d domain.Name) bool { return Default().IsPublicSuffix(d) }

// PublicSuffix returns the public suffix of d according to the
// embedded list.
func PublicSuffix(d domain.Name) (domain.Name, bool) { return Default().PublicSuffix(d) }

// RegisteredDomain returns the registered domain of d according to
// the embedded list.
func RegisteredDomain(d domain.Name) (domain.Name, bool) { return Default().RegisteredDomain(d) }

// DropPublicSuffix returns d without its public suffix according to
// the embedded list.
func DropPublicSuffix(d domain.Name) (domain.Name, bool) { return Default().DropPublicSuffix(d) }
