package parser

import (
	"net/mail"
	"net/url"
	"strings"
)

// submittedBy introduces contact information in suffix block headers.
// A few entries spell it in lowercase.
const submittedBy = "submitted by"

// extractOwner reads owner information from the header comment of a
// suffix block. Headers conventionally look like:
//
//	// Example Corp : https://example.com
//	// Submitted by Alice <alice@example.com>
//
// The first line names the owner, optionally followed by a URL or a
// contact address after a colon, or by a URL in parentheses. Later
// lines may hold more URLs and contacts. Anything else is ignored.
func extractOwner(header *Comment) Owner {
	var ret Owner
	if header == nil || len(header.Text) == 0 {
		return ret
	}

	lines := header.Text
	if name, rest, ok := splitOwnerLine(lines[0]); ok {
		ret.Name = name
		ret.addDetail(rest)
		lines = lines[1:]
	}
	for i, line := range lines {
		if !ret.addDetail(line) && i == 0 && ret.Name == "" {
			ret.Name = line
		}
	}
	return ret
}

// addDetail records line if it is a URL or a contact line, and reports
// whether it was.
func (o *Owner) addDetail(line string) bool {
	if line == "" {
		return false
	}
	if u := parseURL(line); u != nil {
		o.URLs = append(o.URLs, u)
		return true
	}
	if addrs := parseContacts(line); len(addrs) > 0 {
		o.Contacts = append(o.Contacts, addrs...)
		return true
	}
	return false
}

// splitOwnerLine splits the first line of a header into the owner name
// and the remaining detail, in the forms "name: detail" and
// "name (url)".
func splitOwnerLine(line string) (name, detail string, ok bool) {
	if strings.HasPrefix(strings.ToLower(line), submittedBy) {
		return "", "", false
	}
	if strings.HasSuffix(line, ")") {
		if i := strings.LastIndexByte(line, '('); i > 0 {
			inner := line[i+1 : len(line)-1]
			if parseURL(inner) != nil {
				return strings.TrimSpace(line[:i]), inner, true
			}
		}
	}
	name, detail, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	name, detail = strings.TrimSpace(name), strings.TrimSpace(detail)
	if parseURL(detail) == nil && len(parseContacts(detail)) == 0 {
		return "", "", false
	}
	return name, detail, true
}

// parseURL returns line as an absolute http(s) URL, or nil if it is
// anything else.
func parseURL(line string) *url.URL {
	u, err := url.Parse(strings.TrimSpace(line))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil
	}
	return u
}

// parseContacts parses contact lines, such as
//
//	Submitted by Alice <alice@example.com> and Bob <bob@example.com>
//
// A bare address is accepted as well.
func parseContacts(line string) []*mail.Address {
	if strings.HasPrefix(strings.ToLower(line), submittedBy) {
		line = line[len(submittedBy):]
	}
	line = strings.TrimSpace(strings.TrimLeft(line, ":"))

	var ret []*mail.Address
	for _, s := range strings.Split(line, " and ") {
		addr, err := mail.ParseAddress(s)
		if err != nil {
			return nil
		}
		ret = append(ret, addr)
	}
	return ret
}
