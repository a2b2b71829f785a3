package domain

import "github.com/networkgear/tools/internal/uniprop"

// satisfiesContextJ reports whether the join control at label[i]
// satisfies the ContextJ rules of RFC 5892 appendix A.1 and A.2.
func satisfiesContextJ(p uniprop.Provider, label []rune, i int) bool {
	if i == 0 || !uniprop.IsContextJoiner(label[i]) {
		return false
	}
	if p.CombiningClass(label[i-1]) == uniprop.Virama {
		return true
	}

	// (Joining_Type:{L,D})(Joining_Type:T)* before the joiner.
	found := false
	for j := i - 1; j >= 0 && !found; j-- {
		switch p.JoiningType(label[j]) {
		case uniprop.LeftJoining, uniprop.DualJoining:
			found = true
		case uniprop.Transparent:
		default:
			return false
		}
	}
	if !found {
		return false
	}

	// (Joining_Type:T)*(Joining_Type:{R,D}) after the joiner.
	for j := i + 1; j < len(label); j++ {
		switch p.JoiningType(label[j]) {
		case uniprop.RightJoining, uniprop.DualJoining:
			return true
		case uniprop.Transparent:
		default:
			return false
		}
	}
	return false
}

// satisfiesContextO reports whether label[i] satisfies the ContextO
// rules of RFC 5892 appendix A.3 to A.9.
func satisfiesContextO(p uniprop.Provider, label []rune, i int) bool {
	r := label[i]
	switch {
	case r == 0x00B7:
		// MIDDLE DOT, only allowed in "l·l" (Catalan).
		return i > 0 && i+1 < len(label) && label[i-1] == 'l' && label[i+1] == 'l'
	case r == 0x0375:
		// GREEK LOWER NUMERAL SIGN (KERAIA)
		return i+1 < len(label) && p.Script(label[i+1]) == uniprop.ScriptGreek
	case r == 0x05F3, r == 0x05F4:
		// HEBREW PUNCTUATION GERESH and GERSHAYIM
		return i > 0 && p.Script(label[i-1]) == uniprop.ScriptHebrew
	case r == 0x30FB:
		// KATAKANA MIDDLE DOT. The dot itself has script Common.
		for _, c := range label {
			if c == 0x30FB {
				continue
			}
			switch p.Script(c) {
			case uniprop.ScriptHiragana, uniprop.ScriptKatakana, uniprop.ScriptHan:
			default:
				return false
			}
		}
		return true
	case 0x0660 <= r && r <= 0x0669:
		// ARABIC-INDIC DIGITS cannot be mixed with the extended ones.
		return !containsRange(label, 0x06F0, 0x06F9)
	case 0x06F0 <= r && r <= 0x06F9:
		// EXTENDED ARABIC-INDIC DIGITS
		return !containsRange(label, 0x0660, 0x0669)
	}
	return false
}

func containsRange(label []rune, lo, hi rune) bool {
	for _, r := range label {
		if lo <= r && r <= hi {
			return true
		}
	}
	return false
}
