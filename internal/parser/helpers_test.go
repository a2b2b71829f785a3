package parser

import (
	"net/mail"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/networkgear/tools/internal/domain"
)

// The helpers below build parse trees for tests. Source ranges are
// given explicitly, so that expected trees read like the input.

func list(first, last int, blocks ...Block) *List {
	return &List{blockInfo{mkSrc(first, last)}, blocks}
}

func comment(first int, lines ...string) *Comment {
	return &Comment{blockInfo{mkSrc(first, first+len(lines))}, lines}
}

func section(first, last int, name string, blocks ...Block) *Section {
	return &Section{blockInfo{mkSrc(first, last)}, name, blocks}
}

func suffixes(first, last int, owner Owner, blocks ...Block) *Suffixes {
	return &Suffixes{blockInfo{mkSrc(first, last)}, owner, blocks}
}

func suffix(line int, name string) *Suffix {
	return &Suffix{blockInfo{lineRange(line)}, mustRule(name)}
}

func wildcard(line int, base string, exceptions ...string) *Wildcard {
	ret := &Wildcard{blockInfo: blockInfo{lineRange(line)}, Domain: mustRule(base)}
	for _, exc := range exceptions {
		l, err := domain.ParseLabelWith(exc, SuffixOptions)
		if err != nil {
			panic(err)
		}
		ret.Exceptions = append(ret.Exceptions, l)
	}
	return ret
}

func mustRule(s string) domain.Name {
	d, ok := domain.ParseWith(s, SuffixOptions)
	if !ok {
		panic("invalid rule " + s)
	}
	return d
}

func mustURL(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func mustEmail(s string) *mail.Address {
	a, err := mail.ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// treeOpts lets cmp compare parse trees, whose blocks embed the
// unexported blockInfo and whose domain names have no exported fields.
var treeOpts = cmp.Options{
	cmp.AllowUnexported(blockInfo{}),
	cmp.Comparer(func(a, b *url.URL) bool { return a.String() == b.String() }),
	cmp.Comparer(func(a, b domain.Name) bool {
		return a.Equal(b) && a.TerminatedByDot() == b.TerminatedByDot()
	}),
	cmp.Comparer(func(a, b domain.Label) bool { return a.Equal(b) }),
}

func checkTree(t *testing.T, what string, got, want any) {
	t.Helper()
	if diff := cmp.Diff(got, want, treeOpts); diff != "" {
		t.Errorf("%s is wrong (-got+want):\n%s", what, diff)
	}
}

func errStrings(errs []error) []string {
	var ret []string
	for _, err := range errs {
		ret = append(ret, err.Error())
	}
	return ret
}

// zeroSourceRange clears the source ranges of all blocks in b.
func zeroSourceRange(b Block) {
	switch v := b.(type) {
	case *List:
		v.SourceRange = SourceRange{}
	case *Section:
		v.SourceRange = SourceRange{}
	case *Suffixes:
		v.SourceRange = SourceRange{}
	case *Suffix:
		v.SourceRange = SourceRange{}
	case *Wildcard:
		v.SourceRange = SourceRange{}
	case *Comment:
		v.SourceRange = SourceRange{}
	}
	for _, child := range b.Children() {
		zeroSourceRange(child)
	}
}
