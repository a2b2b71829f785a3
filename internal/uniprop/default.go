package uniprop

import (
	"unicode"

	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"
)

// Default is the Provider and Normalizer backed by the Unicode tables
// compiled into golang.org/x/text, golang.org/x/net/idna and the
// standard library.
var Default = tables{}

type tables struct{}

var (
	_ Provider   = tables{}
	_ Normalizer = tables{}
)

// categoryTables lists the general category tables in lookup
// order. Letters and marks come first because they are by far the
// most common in domain labels.
var categoryTables = []struct {
	cat   Category
	table *unicode.RangeTable
}{
	{LowercaseLetter, unicode.Ll},
	{UppercaseLetter, unicode.Lu},
	{OtherLetter, unicode.Lo},
	{DecimalNumber, unicode.Nd},
	{NonspacingMark, unicode.Mn},
	{SpacingMark, unicode.Mc},
	{EnclosingMark, unicode.Me},
	{ModifierLetter, unicode.Lm},
	{TitlecaseLetter, unicode.Lt},
	{LetterNumber, unicode.Nl},
	{OtherNumber, unicode.No},
	{Punctuation, unicode.P},
	{Symbol, unicode.S},
	{Separator, unicode.Z},
	{Control, unicode.Cc},
	{Format, unicode.Cf},
	{PrivateUse, unicode.Co},
	{Surrogate, unicode.Cs},
}

func (tables) Category(r rune) Category {
	for _, c := range categoryTables {
		if unicode.Is(c.table, r) {
			return c.cat
		}
	}
	return CategoryUnassigned
}

func (tables) BidiClass(r rune) BidiClass {
	p, _ := bidi.LookupRune(r)
	return p.Class()
}

func (t tables) JoiningType(r rune) JoiningType {
	if jt, ok := lookupJoiningType(r); ok {
		return jt
	}
	// Characters not listed explicitly in ArabicShaping.txt are
	// Transparent if they are Mn, Me or Cf, and Non_Joining otherwise.
	switch t.Category(r) {
	case NonspacingMark, EnclosingMark, Format:
		return Transparent
	}
	return NonJoining
}

func (tables) CombiningClass(r rune) CombiningClass {
	return CombiningClass(norm.NFD.PropertiesString(string(r)).CCC())
}

var scriptTables = []struct {
	script Script
	table  *unicode.RangeTable
}{
	{ScriptLatin, unicode.Latin},
	{ScriptCommon, unicode.Common},
	{ScriptInherited, unicode.Inherited},
	{ScriptHan, unicode.Han},
	{ScriptHiragana, unicode.Hiragana},
	{ScriptKatakana, unicode.Katakana},
	{ScriptGreek, unicode.Greek},
	{ScriptCyrillic, unicode.Cyrillic},
	{ScriptHebrew, unicode.Hebrew},
	{ScriptArabic, unicode.Arabic},
}

func (tables) Script(r rune) Script {
	for _, s := range scriptTables {
		if unicode.Is(s.table, r) {
			return s.script
		}
	}
	return ScriptOther
}

func (t tables) IDNAStatus(r rune, useSTD3ASCIIRules, idna2008 bool) Status {
	st := lookupStatus(r, useSTD3ASCIIRules)
	if idna2008 && st.Kind == Valid && !t.validInIDNA2008(r) {
		return Status{Kind: Disallowed}
	}
	return st
}

func (tables) NFC(s string) string {
	return norm.NFC.String(s)
}

func (tables) IsNFC(s string) bool {
	return norm.NFC.IsNormalString(s)
}
