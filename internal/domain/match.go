package domain

// DomainMatches reports whether d domain-matches e, as defined for
// cookies by RFC 6265 section 5.1.3: d is e, or a subdomain of e.
//
// Labels are compared in their canonical form, so the comparison is
// case insensitive. Both names should be built with the same options,
// a punycode label never matches its Unicode form.
func (d Name) DomainMatches(e Name) bool {
	dl, el := d.labels(), e.labels()
	if len(dl) < len(el) {
		return false
	}
	for i := 1; i <= len(el); i++ {
		if !dl[len(dl)-i].Equal(el[len(el)-i]) {
			return false
		}
	}
	return true
}
