package parser

import (
	"fmt"
	"slices"

	"github.com/networkgear/tools/internal/domain"
)

// Clean puts the list in canonical order: the rules of each suffix
// block are sorted with domain.Name.Compare, and the exceptions of
// each wildcard with domain.Label.Compare. Duplicate rules that sort
// next to each other are dropped.
//
// Clean does not change which suffixes the list defines. Comments
// inside a suffix block act as barriers that rules are not moved
// across. Clean sorts what it can between them, and returns an error
// for every barrier that leaves rules out of order.
func (l *List) Clean() []error {
	return cleanBlock(l)
}

func cleanBlock(b Block) []error {
	var ret []error

	switch v := b.(type) {
	case *List, *Section:
		for _, child := range v.Children() {
			ret = append(ret, cleanBlock(child)...)
		}
	case *Suffixes:
		for _, child := range v.Blocks {
			ret = append(ret, cleanBlock(child)...)
		}
		ret = append(ret, sortSuffixes(v)...)
	case *Wildcard:
		cleanWildcard(v)
	case *Comment, *Suffix:
	default:
		panic("unknown ast node")
	}

	return ret
}

func cleanWildcard(w *Wildcard) {
	slices.SortFunc(w.Exceptions, domain.Label.Compare)
	w.Exceptions = slices.CompactFunc(w.Exceptions, domain.Label.Equal)
}

// sortSuffixes sorts the runs of rules between the comments of s.
func sortSuffixes(s *Suffixes) []error {
	var (
		errs           []error
		prevGroupEnd   Block    // last rule of the previous run
		prevComment    *Comment // comment before the current run
		thisGroupStart int
		// Deduplication can shrink runs, so the result goes into a
		// fresh slice.
		out = make([]Block, 0, len(s.Blocks))
	)

	sortAndCheck := func(group []Block) {
		if len(group) == 0 {
			return
		}

		slices.SortFunc(group, compareRules)
		group = dedupRules(group)
		out = append(out, group...)

		if prevGroupEnd != nil && compareRules(prevGroupEnd, group[0]) > 0 {
			// Keep prevGroupEnd, later runs should still sort after
			// it.
			errs = append(errs, ErrCommentPreventsSuffixSort{prevComment.SourceRange})
			return
		}
		prevGroupEnd = group[len(group)-1]
	}

	for i, b := range s.Blocks {
		switch v := b.(type) {
		case *Suffix, *Wildcard:
			continue
		case *Comment:
			if group := s.Blocks[thisGroupStart:i]; len(group) > 0 {
				sortAndCheck(group)
				prevComment = v
			}
			out = append(out, v)
			thisGroupStart = i + 1
		default:
			panic("unknown ast node")
		}
	}
	sortAndCheck(s.Blocks[thisGroupStart:])

	s.Blocks = out
	return errs
}

// dedupRules drops rules of the sorted group that repeat the rule
// before them. Exceptions of dropped wildcards move to the one that
// is kept.
func dedupRules(group []Block) []Block {
	ret := group[:1]
	for _, b := range group[1:] {
		last := ret[len(ret)-1]
		if compareRules(last, b) != 0 {
			ret = append(ret, b)
			continue
		}
		if w, ok := last.(*Wildcard); ok {
			w.Exceptions = append(w.Exceptions, b.(*Wildcard).Exceptions...)
			cleanWildcard(w)
		}
	}
	return ret
}

// compareRules compares two rules, each a *Suffix or a *Wildcard. A
// wildcard sorts right after the suffix with the same base.
func compareRules(a, b Block) int {
	da, wilda := ruleName(a)
	db, wildb := ruleName(b)
	if ret := da.Compare(db); ret != 0 {
		return ret
	}
	switch {
	case wilda == wildb:
		return 0
	case wilda:
		return +1
	}
	return -1
}

func ruleName(b Block) (d domain.Name, wildcard bool) {
	switch v := b.(type) {
	case *Suffix:
		return v.Domain, false
	case *Wildcard:
		return v.Domain, true
	}
	panic(fmt.Sprintf("can't compare non-rule type %T", b))
}
