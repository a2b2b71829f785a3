package domain

import (
	"cmp"
	"strings"
	"unicode/utf8"

	"github.com/networkgear/tools/internal/ace"
	"github.com/networkgear/tools/internal/uniprop"
)

// Label is a validated domain name label.
//
// A Label only exists in a state that passed every check enabled by
// the Options it was built with.
type Label struct {
	// label is the canonical form, in "xn--" form if the label was
	// built with AddPunycodeEncoding and is not plain ASCII.
	label string
	// length is the number of Unicode scalars in label.
	length int
	opts   Options
}

// ParseLabel parses and validates a domain name label with the
// Default options.
func ParseLabel(s string) (Label, error) {
	return defaultValidator.ParseLabel(s, Default)
}

// ParseLabelWith parses and validates a domain name label with opts.
func ParseLabelWith(s string, opts Options) (Label, error) {
	return defaultValidator.ParseLabel(s, opts)
}

func (l Label) String() string { return l.label }

// Len returns the number of Unicode scalars in the label.
func (l Label) Len() int { return l.length }

// Options returns the options l was validated with.
func (l Label) Options() Options { return l.opts }

// IsPunycode reports whether l is stored in its "xn--" form.
func (l Label) IsPunycode() bool { return strings.HasPrefix(l.label, ace.Prefix) }

// Equal reports whether l and m have the same canonical form.
func (l Label) Equal(m Label) bool { return l.label == m.label }

// EqualString reports whether s, validated with the options of l, is
// equal to l. Invalid strings are never equal to a label.
func (l Label) EqualString(s string) bool {
	m, err := ParseLabelWith(s, l.opts)
	return err == nil && l.Equal(m)
}

// Compare compares domain labels. It returns -1 if l < m, +1 if l > m,
// and 0 if l == m.
//
// Compare returns 0 for labels that are Equal. Unequal labels are
// ordered with the English collation, falling back to byte order.
func (l Label) Compare(m Label) int {
	bytewiseCmp := cmp.Compare(l.label, m.label)
	if bytewiseCmp == 0 {
		return 0
	}
	if res := collateLabels(l.label, m.label); res != 0 {
		return res
	}
	// The collator reported equivalent but not bit-identical
	// strings. Break the tie with byte order, so that Compare stays
	// consistent with Equal.
	return bytewiseCmp
}

// Validator validates labels and domain names against a set of
// Unicode tables and an ACE codec.
//
// The zero Validator is not usable. Most callers want the package
// level functions, which use the tables compiled into the program.
type Validator struct {
	Props uniprop.Provider
	Norm  uniprop.Normalizer
	Codec ace.Codec
}

var defaultValidator = &Validator{
	Props: uniprop.Default,
	Norm:  uniprop.Default,
	Codec: ace.Punycode,
}

// ParseLabel validates s as a single label with opts.
//
// Unlike Parse, ParseLabel does not map its input: s must already be
// in canonical form. Errors are *LabelError values.
func (v *Validator) ParseLabel(s string, opts Options) (Label, error) {
	label := s

	if rest, ok := strings.CutPrefix(label, ace.Prefix); ok {
		dec, ok := v.Codec.Decode(rest)
		if !ok || isASCII(dec) {
			return Label{}, labelErr(s, ErrInvalidIDNLabel)
		}
		label = dec
	}

	if label == "" {
		return Label{}, labelErr(s, ErrEmptyString)
	}
	if !v.Norm.IsNFC(label) {
		return Label{}, labelErr(s, ErrInvalidNormalization)
	}

	scalars := []rune(label)

	if v.Props.Category(scalars[0]).IsMark() {
		return Label{}, labelErr(s, ErrFirstScalarIsMark)
	}

	if opts.Has(CheckHyphens) {
		if scalars[0] == '-' || scalars[len(scalars)-1] == '-' {
			return Label{}, labelErr(s, ErrInappropriateHyphen)
		}
		if len(scalars) >= 4 && scalars[2] == '-' && scalars[3] == '-' {
			return Label{}, labelErr(s, ErrInappropriateHyphen)
		}
	}

	if opts.Has(CheckBidirectionality) && !satisfiesBidiRule(v.Props, scalars) {
		return Label{}, labelErr(s, ErrViolatingBidiRule)
	}

	if err := v.scan(s, scalars, opts); err != nil {
		return Label{}, err
	}

	if opts.Has(AddPunycodeEncoding) && !isASCII(label) {
		enc, ok := v.Codec.Encode(label)
		if !ok {
			return Label{}, labelErr(s, ErrInvalidIDNLabel)
		}
		label = ace.Prefix + enc
	}

	length := utf8.RuneCountInString(label)
	if opts.Has(VerifyDNSLength) && (length < 1 || length > 63) {
		return Label{}, labelErr(s, ErrInvalidLength)
	}

	return Label{label: label, length: length, opts: opts}, nil
}

// scan checks every scalar of the label for its IDNA status and
// contextual rules.
func (v *Validator) scan(s string, scalars []rune, opts Options) error {
	std3, strict := opts.Has(UseSTD3ASCIIRules), opts.Has(idna2008)
	for i, r := range scalars {
		if r == '.' {
			return labelErr(s, ErrContainingFullStop)
		}

		switch st := v.Props.IDNAStatus(r, std3, strict); st.Kind {
		case uniprop.Valid:
		case uniprop.Deviation:
			if opts.Has(TransitionalProcessing) {
				return labelErr(s, ErrInvalidIDNAStatus)
			}
		default:
			return labelErr(s, ErrInvalidIDNAStatus)
		}

		if opts.Has(CheckJoiners) && uniprop.IsContextJoiner(r) && !satisfiesContextJ(v.Props, scalars, i) {
			return labelErr(s, ErrViolatingContextJRules)
		}
		if opts.Has(CheckOtherContextualRules) && uniprop.IsContextOther(r) && !satisfiesContextO(v.Props, scalars, i) {
			return labelErr(s, ErrViolatingContextORules)
		}
	}
	return nil
}

// relabel returns l validated with opts, reusing l if it was built
// with the same options.
func (v *Validator) relabel(l Label, opts Options) (Label, error) {
	if l.opts == opts {
		return l, nil
	}
	return v.ParseLabel(l.label, opts)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
