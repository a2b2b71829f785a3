// Package domain provides parsing and validation of internationalized
// domain names and DNS labels, following Unicode Technical Standard
// #46 and IDNA2008 (RFC 5891 to 5893).
package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Name is a validated domain name.
//
// A Name is an immutable, non-empty sequence of labels. Names obtained
// by slicing share their labels with the name they were sliced from.
type Name struct {
	buf        *labelBuffer
	start, end int
	// terminatedByDot is set for names written with a trailing dot,
	// such as "example.com.".
	terminatedByDot bool
}

// labelBuffer is the storage shared by a name and all of its slices.
// It is never modified after construction.
type labelBuffer struct {
	// labels are in the conventional leaf-first order.
	labels []Label
	// lengths[i] is the total scalar length of labels[:i].
	lengths []int
	opts    Options
	// v is the validator the labels were built with.
	v *Validator
}

func newLabelBuffer(v *Validator, labels []Label, opts Options) *labelBuffer {
	b := &labelBuffer{
		labels:  labels,
		lengths: make([]int, len(labels)+1),
		opts:    opts,
		v:       v,
	}
	for i, l := range labels {
		b.lengths[i+1] = b.lengths[i] + l.Len()
	}
	return b
}

// Maximum length of a domain name, in scalars and not counting the
// trailing dot, as given by RFC 1035 section 2.3.4 for the
// presentation format.
const maxNameLength = 253

func lengthLimit(terminatedByDot bool) int {
	if terminatedByDot {
		return maxNameLength + 1
	}
	return maxNameLength
}

// Parse maps, validates and canonicalizes s with the Default options.
// It reports false if s is not a valid domain name.
func Parse(s string) (Name, bool) {
	return defaultValidator.Parse(s, Default)
}

// ParseWith is like Parse, with explicit options.
func ParseWith(s string, opts Options) (Name, bool) {
	return defaultValidator.Parse(s, opts)
}

// Explain returns why ParseWith rejects s, or nil if it accepts it.
func Explain(s string, opts Options) error {
	return defaultValidator.Explain(s, opts)
}

// MustParse is like Parse, but panics if s is not a valid domain name.
func MustParse(s string) Name {
	d, ok := Parse(s)
	if !ok {
		panic(fmt.Sprintf("invalid domain name %q", s))
	}
	return d
}

// Localhost returns the name "localhost".
func Localhost() Name { return MustParse("localhost") }

// FromLabels builds a domain name from already split labels, which are
// validated with opts but not mapped. The first validation error is
// returned as a *LabelError.
//
// FromLabels panics if labels is empty.
func FromLabels(labels []string, terminatedByDot bool, opts Options) (Name, error) {
	return defaultValidator.FromLabels(labels, terminatedByDot, opts)
}

// FromLabels builds a domain name from already split labels, see the
// package level FromLabels.
func (v *Validator) FromLabels(labels []string, terminatedByDot bool, opts Options) (Name, error) {
	if len(labels) == 0 {
		panic("domain.FromLabels called with zero labels")
	}
	built := make([]Label, 0, len(labels))
	for _, s := range labels {
		l, err := v.ParseLabel(s, opts)
		if err != nil {
			return Name{}, err
		}
		built = append(built, l)
	}
	return v.newName(built, terminatedByDot, opts)
}

// newName assembles validated labels into a Name, checking the total
// length if opts asks for it.
func (v *Validator) newName(labels []Label, terminatedByDot bool, opts Options) (Name, error) {
	ret := Name{
		buf:             newLabelBuffer(v, labels, opts),
		start:           0,
		end:             len(labels),
		terminatedByDot: terminatedByDot,
	}
	if opts.Has(VerifyDNSLength) && ret.Length() > lengthLimit(terminatedByDot) {
		return Name{}, labelErr(ret.String(), ErrInvalidLength)
	}
	return ret, nil
}

// String returns the canonical form of d, with non-ASCII labels in
// "xn--" form if d was built with AddPunycodeEncoding.
func (d Name) String() string {
	var b strings.Builder
	for i, l := range d.labels() {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(l.String())
	}
	if d.terminatedByDot {
		b.WriteByte('.')
	}
	return b.String()
}

func (d Name) labels() []Label {
	if d.buf == nil {
		return nil
	}
	return d.buf.labels[d.start:d.end]
}

// NumLabels returns the number of labels in d.
func (d Name) NumLabels() int { return d.end - d.start }

// Label returns the i'th label of d, counting from the leftmost.
func (d Name) Label(i int) Label {
	return d.labels()[i]
}

// Labels returns the labels of d, leftmost first.
func (d Name) Labels() []Label {
	// Return a copy, the buffer is shared with other names.
	return slices.Clone(d.labels())
}

// TerminatedByDot reports whether d was written with a trailing dot.
func (d Name) TerminatedByDot() bool { return d.terminatedByDot }

// Options returns the options d was validated with.
func (d Name) Options() Options {
	if d.buf == nil {
		return 0
	}
	return d.buf.opts
}

// Length returns the length of d in scalars: the lengths of all labels
// plus the separators between them.
func (d Name) Length() int {
	if d.NumLabels() == 0 {
		return 0
	}
	return d.buf.lengths[d.end] - d.buf.lengths[d.start] + d.NumLabels() - 1
}

// Slice returns the labels d[i:j] as a domain name. The result is
// terminated by a dot only if d is and j is the number of labels in d.
//
// Slice panics if the range is empty or out of bounds.
func (d Name) Slice(i, j int) Name {
	n := d.NumLabels()
	if i < 0 || j > n || i >= j {
		panic(fmt.Sprintf("domain.Name.Slice: invalid range [%d:%d] of %d labels", i, j, n))
	}
	return Name{
		buf:             d.buf,
		start:           d.start + i,
		end:             d.start + j,
		terminatedByDot: d.terminatedByDot && j == n,
	}
}

// Prefix returns the leftmost n labels of d.
func (d Name) Prefix(n int) Name { return d.Slice(0, n) }

// Suffix returns the rightmost n labels of d.
func (d Name) Suffix(n int) Name { return d.Slice(d.NumLabels()-n, d.NumLabels()) }

// Parent returns d without its leftmost label, and false if d has a
// single label.
func (d Name) Parent() (Name, bool) {
	if d.NumLabels() < 2 {
		return Name{}, false
	}
	return d.Slice(1, d.NumLabels()), true
}

// Equal reports whether d and e have equal labels. The trailing dot is
// not significant.
func (d Name) Equal(e Name) bool {
	return slices.EqualFunc(d.labels(), e.labels(), Label.Equal)
}

// Compare compares domain names. It returns -1 if d < e, +1 if d > e,
// and 0 if d and e are Equal.
//
// Unequal names are ordered by Label.Compare of their first unequal
// label, starting from the rightmost label.
func (d Name) Compare(e Name) int {
	dl, el := d.labels(), e.labels()
	for i := 1; i <= len(dl) && i <= len(el); i++ {
		if c := dl[len(dl)-i].Compare(el[len(el)-i]); c != 0 {
			return c
		}
	}
	switch {
	case len(dl) < len(el):
		return -1
	case len(dl) > len(el):
		return +1
	}
	return 0
}

// WithoutPunycode returns d with "xn--" labels decoded to Unicode.
func (d Name) WithoutPunycode() Name {
	ret, err := d.withOptions(d.Options().Without(AddPunycodeEncoding))
	if err != nil {
		// Decoding only makes labels shorter, and does not change
		// which scalars they contain.
		panic(fmt.Sprintf("impossible: decoding %q failed: %v", d, err))
	}
	return ret
}

// WithPunycode returns d with non-ASCII labels in "xn--" form. It
// fails if d was built with VerifyDNSLength and the encoded form is
// too long.
func (d Name) WithPunycode() (Name, error) {
	return d.withOptions(d.Options().Union(AddPunycodeEncoding))
}

func (d Name) withOptions(opts Options) (Name, error) {
	if d.buf == nil || opts == d.Options() {
		return d, nil
	}
	v := d.buf.v
	labels := make([]Label, 0, d.NumLabels())
	for _, l := range d.labels() {
		nl, err := v.relabel(l, opts)
		if err != nil {
			return Name{}, err
		}
		labels = append(labels, nl)
	}
	return v.newName(labels, d.terminatedByDot, opts)
}
