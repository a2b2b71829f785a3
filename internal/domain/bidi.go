package domain

import (
	"github.com/networkgear/tools/internal/uniprop"
	"golang.org/x/text/unicode/bidi"
)

// bidiClassSet is a set of bidi classes, as a bitmask indexed by class.
type bidiClassSet uint32

func classes(cs ...uniprop.BidiClass) bidiClassSet {
	var ret bidiClassSet
	for _, c := range cs {
		ret |= 1 << c
	}
	return ret
}

func (s bidiClassSet) has(c uniprop.BidiClass) bool {
	return c < 32 && s&(1<<c) != 0
}

// Class sets of RFC 5893 section 2, for labels whose first character
// is right-to-left (R or AL) and left-to-right (L) respectively.
var (
	// Rule 2.
	rtlAllowed = classes(bidi.R, bidi.AL, bidi.AN, bidi.EN, bidi.ES, bidi.CS, bidi.ET, bidi.ON, bidi.BN, bidi.NSM)
	// Rule 3.
	rtlTerminal = classes(bidi.R, bidi.AL, bidi.EN, bidi.AN)
	// Rule 5.
	ltrAllowed = classes(bidi.L, bidi.EN, bidi.ES, bidi.CS, bidi.ET, bidi.ON, bidi.BN, bidi.NSM)
	// Rule 6.
	ltrTerminal = classes(bidi.L, bidi.EN)
)

// satisfiesBidiRule reports whether label satisfies the Bidi Rule of
// RFC 5893. label must not be empty.
func satisfiesBidiRule(p uniprop.Provider, label []rune) bool {
	// Rule 1.
	var allowed, terminal bidiClassSet
	rtl := false
	switch p.BidiClass(label[0]) {
	case bidi.L:
		allowed, terminal = ltrAllowed, ltrTerminal
	case bidi.R, bidi.AL:
		allowed, terminal = rtlAllowed, rtlTerminal
		rtl = true
	default:
		return false
	}

	// Scan backwards, so that the trailing run of NSM is skipped
	// before the terminal class is checked.
	endOK := false
	hasAN, hasEN := false, false
	for i := len(label) - 1; i >= 0; i-- {
		c := p.BidiClass(label[i])
		if !allowed.has(c) {
			return false
		}

		if !endOK {
			if c == bidi.NSM {
				continue
			}
			if !terminal.has(c) {
				return false
			}
			endOK = true
		}

		// Rule 4.
		if rtl {
			switch c {
			case bidi.AN:
				if hasEN {
					return false
				}
				hasAN = true
			case bidi.EN:
				if hasAN {
					return false
				}
				hasEN = true
			}
		}
	}
	return endOK
}
