package parser

import (
	"github.com/creachadair/mds/mapset"
)

// ValidateOffline checks a parsed list for problems that the parser
// cannot see one line at a time: missing, unknown or duplicated
// sections, duplicated rules, suffixes that conflict with wildcard
// exceptions, and private suffix blocks with no owner name.
func ValidateOffline(l *List) []error {
	var ret []error
	ret = append(ret, validateExpectedSections(l)...)
	ret = append(ret, validateSuffixUniqueness(l)...)
	for _, section := range BlocksOfType[*Section](l) {
		if section.Name == SectionPrivate {
			ret = append(ret, validateEntityMetadata(section)...)
		}
	}
	return ret
}

// validateEntityMetadata verifies that all suffix blocks under block
// name their owner.
func validateEntityMetadata(block Block) []error {
	var ret []error
	for _, suffixes := range BlocksOfType[*Suffixes](block) {
		if suffixes.Owner.Name == "" {
			ret = append(ret, ErrMissingEntityName{suffixes})
		}
	}
	return ret
}

// validateExpectedSections verifies that the ICANN and private
// sections exist exactly once, and that there are no others.
func validateExpectedSections(block Block) (errs []error) {
	wanted := mapset.New(SectionICANN, SectionPrivate)
	found := map[string]*Section{}
	for _, section := range BlocksOfType[*Section](block) {
		if !wanted.Has(section.Name) {
			errs = append(errs, ErrUnknownSection{section})
		} else if other, ok := found[section.Name]; ok {
			errs = append(errs, ErrDuplicateSection{section, other})
		} else {
			found[section.Name] = section
		}
	}

	// Report in a fixed order, not set iteration order.
	for _, name := range []string{SectionICANN, SectionPrivate} {
		if _, ok := found[name]; !ok {
			errs = append(errs, ErrMissingSection{name})
		}
	}
	return errs
}

// validateSuffixUniqueness verifies that rules appear only once, and
// that no suffix is also an exception to a wildcard.
func validateSuffixUniqueness(block Block) (errs []error) {
	suffixes := map[string]*Suffix{}    // Suffix.Domain.String() -> Suffix
	wildcards := map[string]*Wildcard{} // Wildcard.Domain.String() -> Wildcard

	for _, suffix := range BlocksOfType[*Suffix](block) {
		name := suffix.Domain.String()
		if other, ok := suffixes[name]; ok {
			errs = append(errs, ErrDuplicateSuffix{name, suffix, other})
		} else {
			suffixes[name] = suffix
		}
	}

	for _, wildcard := range BlocksOfType[*Wildcard](block) {
		base := wildcard.Domain.String()
		if other, ok := wildcards[base]; ok {
			errs = append(errs, ErrDuplicateSuffix{"*." + base, wildcard, other})
		} else {
			wildcards[base] = wildcard
		}

		for _, exc := range wildcard.Exceptions {
			if suffix, ok := suffixes[exc.String()+"."+base]; ok {
				errs = append(errs, ErrConflictingSuffixAndException{suffix, wildcard})
			}
		}
	}
	return errs
}
