package uniprop

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// x/net/idna does not export its per-rune mapping table, so statuses
// are derived by running single scalars through lookup profiles that
// apply nothing but the UTS #46 mapping and rune validity checks.
//
// Indexed by [useSTD3ASCIIRules][transitional].
var statusProfiles = [2][2]*idna.Profile{
	{newStatusProfile(false, false), newStatusProfile(false, true)},
	{newStatusProfile(true, false), newStatusProfile(true, true)},
}

func newStatusProfile(std3, transitional bool) *idna.Profile {
	return idna.New(
		idna.MapForLookup(),
		idna.Transitional(transitional),
		idna.StrictDomainName(std3),
		// Only the mapping and rune validity are wanted here, the
		// label level rules are implemented by package domain.
		idna.CheckHyphens(false),
		idna.CheckJoiners(false),
		idna.VerifyDNSLength(false),
		idna.RemoveLeadingDots(false),
	)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// lookupStatus returns the UTS #46 status of r.
func lookupStatus(r rune, useSTD3ASCIIRules bool) Status {
	if !utf8.ValidRune(r) {
		return Status{Kind: Disallowed}
	}
	in := string(r)
	profiles := statusProfiles[b2i(useSTD3ASCIIRules)]

	nonTransitional, err := profiles[0].ToUnicode(in)
	switch {
	case err != nil:
		return Status{Kind: Disallowed}
	case nonTransitional == "":
		return Status{Kind: Ignored}
	case strings.ContainsRune(nonTransitional, utf8.RuneError):
		// Unassigned scalars come back as U+FFFD without an error.
		return Status{Kind: Disallowed}
	case nonTransitional != in:
		return Status{Kind: Mapped, Mapping: nonTransitional}
	}

	// Deviations are the scalars that are kept as-is by nontransitional
	// processing, but rewritten by transitional processing.
	if transitional, ok := transitionalMapping(profiles[1], in); ok && transitional != in {
		return Status{Kind: Deviation, Mapping: transitional}
	}
	return Status{Kind: Valid}
}

// transitionalMapping maps s with the transitional profile p.
// Profile.ToUnicode always processes nontransitionally, so the
// mapping goes through ToASCII and any A-label is decoded again.
func transitionalMapping(p *idna.Profile, s string) (string, bool) {
	out, err := p.ToASCII(s)
	if err != nil {
		return "", false
	}
	if strings.HasPrefix(out, "xn--") {
		if out, err = idna.Punycode.ToUnicode(out); err != nil {
			return "", false
		}
	}
	return out, true
}

// validInIDNA2008 reports whether a UTS #46 valid scalar is also
// valid under the IDNA2008 derived properties of RFC 5892, leaving
// out the scalars UTS #46 only keeps for IDNA2003 compatibility.
func (t tables) validInIDNA2008(r rune) bool {
	switch {
	case r < utf8.RuneSelf:
		// UTS #46 and IDNA2008 agree on ASCII.
		return true
	case isIDNA2008Exception(r):
		return idna2008Exceptions[r]
	case IsContextJoiner(r), IsContextOther(r):
		return true
	}
	return t.Category(r).IsLetterDigit()
}

// idna2008Exceptions are the scalars of RFC 5892 section 2.6 that are
// not contextual, mapped to whether they are PVALID.
var idna2008Exceptions = map[rune]bool{
	0x00DF: true, // LATIN SMALL LETTER SHARP S
	0x03C2: true, // GREEK SMALL LETTER FINAL SIGMA
	0x06FD: true, // ARABIC SIGN SINDHI AMPERSAND
	0x06FE: true, // ARABIC SIGN SINDHI POSTPOSITION MEN
	0x0F0B: true, // TIBETAN MARK INTERSYLLABIC TSHEG
	0x3007: true, // IDEOGRAPHIC NUMBER ZERO

	0x0640: false, // ARABIC TATWEEL
	0x07FA: false, // NKO LAJANYALAN
	0x302E: false, // HANGUL SINGLE DOT TONE MARK
	0x302F: false, // HANGUL DOUBLE DOT TONE MARK
	0x3031: false, // VERTICAL KANA REPEAT MARK
	0x3032: false,
	0x3033: false,
	0x3034: false,
	0x3035: false,
	0x303B: false, // VERTICAL IDEOGRAPHIC ITERATION MARK
}

func isIDNA2008Exception(r rune) bool {
	_, ok := idna2008Exceptions[r]
	return ok
}

// IsContextJoiner reports whether r is one of the join controls that
// the ContextJ rules of RFC 5892 apply to.
func IsContextJoiner(r rune) bool {
	return r == 0x200C || r == 0x200D
}

// IsContextOther reports whether r is one of the scalars that the
// ContextO rules of RFC 5892 apply to.
func IsContextOther(r rune) bool {
	switch {
	case r == 0x00B7, // MIDDLE DOT
		r == 0x0375, // GREEK LOWER NUMERAL SIGN (KERAIA)
		r == 0x05F3, // HEBREW PUNCTUATION GERESH
		r == 0x05F4, // HEBREW PUNCTUATION GERSHAYIM
		r == 0x30FB: // KATAKANA MIDDLE DOT
		return true
	case 0x0660 <= r && r <= 0x0669: // ARABIC-INDIC DIGITS
		return true
	case 0x06F0 <= r && r <= 0x06F9: // EXTENDED ARABIC-INDIC DIGITS
		return true
	}
	return false
}
