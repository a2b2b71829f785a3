package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/networkgear/tools/internal/uniprop"
)

// Parse maps s with the UTS #46 mapping table, splits it into labels
// and validates each label with opts.
//
// Parse is meant for input of unknown origin, so failures are not
// explained: it reports false if any scalar is disallowed, any label
// is invalid, or the name is too long. Use Explain to find out why.
func (v *Validator) Parse(s string, opts Options) (Name, bool) {
	ret, err := v.parse(s, opts)
	return ret, err == nil
}

// Explain returns why s is not a valid domain name under opts, or nil
// if Parse would accept it. Errors are *LabelError values naming the
// first offending label, as it appears after mapping where mapping
// succeeded.
func (v *Validator) Explain(s string, opts Options) error {
	_, err := v.parse(s, opts)
	return err
}

func (v *Validator) parse(s string, opts Options) (Name, error) {
	mapped, bad := v.mapString(s, opts)
	if bad >= 0 {
		return Name{}, labelErr(labelAt(s, bad), ErrInvalidIDNAStatus)
	}

	// Mapping turns the other full stops (such as U+3002) into ".", so
	// splitting has to happen afterwards.
	parts := strings.Split(v.Norm.NFC(mapped), ".")
	terminatedByDot := false
	if last := len(parts) - 1; parts[last] == "" {
		terminatedByDot = true
		parts = parts[:last]
	}
	if len(parts) == 0 {
		return Name{}, labelErr("", ErrEmptyString)
	}

	labels := make([]Label, 0, len(parts))
	for _, p := range parts {
		l, err := v.ParseLabel(p, opts)
		if err != nil {
			return Name{}, err
		}
		labels = append(labels, l)
	}
	return v.newName(labels, terminatedByDot, opts)
}

// mapString applies the IDNA mapping status of each scalar of s. If a
// scalar is disallowed, it returns the byte offset of that scalar,
// otherwise -1.
func (v *Validator) mapString(s string, opts Options) (string, int) {
	std3, strict := opts.Has(UseSTD3ASCIIRules), opts.Has(idna2008)
	transitional := opts.Has(TransitionalProcessing)

	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		st := v.Props.IDNAStatus(r, std3, strict)
		switch st.Kind {
		case uniprop.Valid:
			b.WriteRune(r)
		case uniprop.Ignored:
		case uniprop.Mapped:
			b.WriteString(st.Mapping)
		case uniprop.Deviation:
			if transitional {
				b.WriteString(st.Mapping)
			} else {
				b.WriteRune(r)
			}
		default:
			return "", i
		}
	}
	return b.String(), -1
}

// labelAt returns the part of s between the full stops around byte
// offset i.
func labelAt(s string, i int) string {
	start, end := 0, len(s)
	if j := strings.LastIndexFunc(s[:i], isFullStop); j >= 0 {
		_, size := utf8.DecodeRuneInString(s[j:])
		start = j + size
	}
	if j := strings.IndexFunc(s[i:], isFullStop); j >= 0 {
		end = i + j
	}
	return s[start:end]
}

// isFullStop reports whether r separates labels before mapping.
func isFullStop(r rune) bool {
	switch r {
	case '.', '\u3002', '\uff0e', '\uff61':
		return true
	}
	return false
}
