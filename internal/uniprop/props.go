// Package uniprop provides the per-scalar Unicode properties that IDNA
// label validation depends on.
//
// The rule engine in package domain only talks to the Provider and
// Normalizer interfaces, so that it can be exercised against small
// hand-written tables in tests. Default is backed by the Unicode
// tables shipped with golang.org/x/text, golang.org/x/net/idna and the
// standard library.
package uniprop

import (
	"golang.org/x/text/unicode/bidi"
)

// Provider is a read-only source of Unicode character properties.
type Provider interface {
	// Category returns the general category of r.
	Category(r rune) Category
	// BidiClass returns the bidirectional class of r.
	BidiClass(r rune) BidiClass
	// JoiningType returns the Arabic joining type of r.
	JoiningType(r rune) JoiningType
	// CombiningClass returns the canonical combining class of r.
	CombiningClass(r rune) CombiningClass
	// Script returns the script of r.
	Script(r rune) Script
	// IDNAStatus returns the UTS #46 IDNA mapping status of r.
	//
	// useSTD3ASCIIRules restricts ASCII to letters, digits and
	// hyphen. idna2008 additionally disallows scalars that are only
	// valid for IDNA2003 compatibility.
	IDNAStatus(r rune, useSTD3ASCIIRules, idna2008 bool) Status
}

// Normalizer performs Unicode Normalization Form C.
type Normalizer interface {
	// NFC returns s in Normalization Form C.
	NFC(s string) string
	// IsNFC reports whether s is already in Normalization Form C.
	IsNFC(s string) bool
}

// Category is a Unicode general category.
type Category uint8

const (
	CategoryUnassigned Category = iota // Cn
	UppercaseLetter                    // Lu
	LowercaseLetter                    // Ll
	TitlecaseLetter                    // Lt
	ModifierLetter                     // Lm
	OtherLetter                        // Lo
	NonspacingMark                     // Mn
	SpacingMark                        // Mc
	EnclosingMark                      // Me
	DecimalNumber                      // Nd
	LetterNumber                       // Nl
	OtherNumber                        // No
	Punctuation                        // P*
	Symbol                             // S*
	Separator                          // Z*
	Control                            // Cc
	Format                             // Cf
	PrivateUse                         // Co
	Surrogate                          // Cs
)

// IsMark reports whether c is one of the mark categories (Mn, Mc, Me).
func (c Category) IsMark() bool {
	return c == NonspacingMark || c == SpacingMark || c == EnclosingMark
}

// IsLetterDigit reports whether c is one of the categories that
// RFC 5892 section 2.1 groups as LetterDigits.
func (c Category) IsLetterDigit() bool {
	switch c {
	case LowercaseLetter, UppercaseLetter, OtherLetter, DecimalNumber, ModifierLetter, NonspacingMark, SpacingMark:
		return true
	}
	return false
}

// BidiClass is a Unicode bidirectional character type. The values
// are those of golang.org/x/text/unicode/bidi.
type BidiClass = bidi.Class

// JoiningType is an Arabic joining type, as defined in
// ArabicShaping.txt of the Unicode Character Database.
type JoiningType uint8

const (
	NonJoining   JoiningType = iota // U
	JoinCausing                     // C
	DualJoining                     // D
	LeftJoining                     // L
	RightJoining                    // R
	Transparent                     // T
)

// CombiningClass is a canonical combining class.
type CombiningClass uint8

// Virama is the canonical combining class of virama signs.
const Virama CombiningClass = 9

// Script is a Unicode script. Only the scripts that IDNA contextual
// rules refer to are distinguished, everything else is ScriptOther.
type Script uint8

const (
	ScriptOther Script = iota
	ScriptCommon
	ScriptInherited
	ScriptLatin
	ScriptGreek
	ScriptCyrillic
	ScriptHebrew
	ScriptArabic
	ScriptHiragana
	ScriptKatakana
	ScriptHan
)

var scriptNames = [...]string{
	ScriptOther:     "Other",
	ScriptCommon:    "Common",
	ScriptInherited: "Inherited",
	ScriptLatin:     "Latin",
	ScriptGreek:     "Greek",
	ScriptCyrillic:  "Cyrillic",
	ScriptHebrew:    "Hebrew",
	ScriptArabic:    "Arabic",
	ScriptHiragana:  "Hiragana",
	ScriptKatakana:  "Katakana",
	ScriptHan:       "Han",
}

func (s Script) String() string {
	if int(s) < len(scriptNames) {
		return scriptNames[s]
	}
	return "Other"
}

// StatusKind is the kind of a UTS #46 IDNA mapping status.
type StatusKind uint8

const (
	Disallowed StatusKind = iota
	Valid
	Ignored
	Mapped
	Deviation
)

var statusNames = [...]string{
	Disallowed: "disallowed",
	Valid:      "valid",
	Ignored:    "ignored",
	Mapped:     "mapped",
	Deviation:  "deviation",
}

func (k StatusKind) String() string {
	if int(k) < len(statusNames) {
		return statusNames[k]
	}
	return "unknown"
}

// Status is the IDNA mapping status of a scalar. Mapping holds the
// replacement for Mapped and Deviation scalars, and may be empty (a
// deviation that maps to nothing, such as U+200C in transitional
// processing).
type Status struct {
	Kind    StatusKind
	Mapping string
}
