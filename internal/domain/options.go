package domain

import (
	"fmt"
	"strings"
)

// Options is a set of UTS #46 validity flags, controlling how labels
// and domain names are mapped and validated.
type Options uint32

const (
	// TransitionalProcessing maps deviation characters (such as "ß")
	// to their IDNA2003 replacements, and rejects them in labels.
	TransitionalProcessing Options = 1 << 0
	// UseSTD3ASCIIRules restricts ASCII to letters, digits and hyphen.
	UseSTD3ASCIIRules Options = 1 << 1

	// CheckHyphens rejects labels that start or end with a hyphen, or
	// that have hyphens in both the third and fourth position.
	CheckHyphens Options = 1 << 10
	// CheckBidirectionality applies the Bidi Rule of RFC 5893.
	CheckBidirectionality Options = 1 << 11
	// CheckJoiners applies the ContextJ rules of RFC 5892.
	CheckJoiners Options = 1 << 12
	// CheckOtherContextualRules applies the ContextO rules of RFC 5892.
	CheckOtherContextualRules Options = 1 << 13

	// AddPunycodeEncoding stores non-ASCII labels in their "xn--" form.
	AddPunycodeEncoding Options = 1 << 20
	// VerifyDNSLength enforces the label and name length limits of
	// RFC 1035.
	VerifyDNSLength Options = 1 << 21

	// idna2008 disallows characters that UTS #46 only keeps for
	// IDNA2003 compatibility.
	idna2008 Options = 1 << 30
)

// Presets.
const (
	Loose = UseSTD3ASCIIRules | AddPunycodeEncoding

	Default = UseSTD3ASCIIRules |
		CheckHyphens |
		CheckBidirectionality |
		CheckJoiners |
		CheckOtherContextualRules |
		AddPunycodeEncoding |
		VerifyDNSLength

	IDNA2008 = TransitionalProcessing |
		UseSTD3ASCIIRules |
		CheckHyphens |
		CheckBidirectionality |
		CheckJoiners |
		CheckOtherContextualRules |
		idna2008
)

// Has reports whether all of flags are set in o.
func (o Options) Has(flags Options) bool { return o&flags == flags }

// Union returns o with all of flags set.
func (o Options) Union(flags ...Options) Options {
	for _, f := range flags {
		o |= f
	}
	return o
}

// Without returns o with all of flags cleared.
func (o Options) Without(flags Options) Options { return o &^ flags }

var flagNames = []struct {
	flag Options
	name string
}{
	{TransitionalProcessing, "transitional"},
	{UseSTD3ASCIIRules, "std3"},
	{CheckHyphens, "hyphens"},
	{CheckBidirectionality, "bidi"},
	{CheckJoiners, "joiners"},
	{CheckOtherContextualRules, "contexto"},
	{AddPunycodeEncoding, "punycode"},
	{VerifyDNSLength, "dnslength"},
	{idna2008, "idna2008"},
}

var presets = map[string]Options{
	"none":     0,
	"loose":    Loose,
	"default":  Default,
	"idna2008": IDNA2008,
}

// String returns the flags set in o, separated by "|".
func (o Options) String() string {
	if o == 0 {
		return "none"
	}
	var parts []string
	for _, f := range flagNames {
		if o.Has(f.flag) {
			parts = append(parts, f.name)
			o = o.Without(f.flag)
		}
	}
	if o != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(o)))
	}
	return strings.Join(parts, "|")
}

// ParseOptions returns the preset with the given name: "none",
// "loose", "default" or "idna2008".
func ParseOptions(name string) (Options, error) {
	if o, ok := presets[strings.ToLower(name)]; ok {
		return o, nil
	}
	return 0, fmt.Errorf("unknown options preset %q", name)
}

// ParseFlag returns the single flag with the given name, as printed by
// Options.String. The internal idna2008 marker can only be set through
// the IDNA2008 preset.
func ParseFlag(name string) (Options, error) {
	name = strings.ToLower(name)
	for _, f := range flagNames {
		if f.name == name && f.flag != idna2008 {
			return f.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown option flag %q", name)
}
