// Package ace converts between Unicode labels and their ASCII
// Compatible Encoding (punycode, RFC 3492).
//
// Codecs work on bare labels, without the "xn--" prefix.
package ace

import (
	"strings"

	"golang.org/x/net/idna"
)

// Prefix is the ACE prefix that marks punycode encoded labels.
const Prefix = "xn--"

// Codec encodes and decodes single labels.
type Codec interface {
	// Encode returns the punycode encoding of s, without Prefix.
	Encode(s string) (string, bool)
	// Decode returns the Unicode label encoded by s, which must not
	// carry Prefix.
	Decode(s string) (string, bool)
}

// Punycode is the Codec of RFC 3492, backed by golang.org/x/net/idna.
var Punycode Codec = punycode{}

type punycode struct{}

func (punycode) Encode(s string) (string, bool) {
	if s == "" || strings.Contains(s, ".") {
		return "", false
	}
	enc, err := idna.Punycode.ToASCII(s)
	if err != nil {
		return "", false
	}
	enc, ok := strings.CutPrefix(enc, Prefix)
	if !ok {
		// ASCII input, nothing was encoded.
		return "", false
	}
	return enc, true
}

func (punycode) Decode(s string) (string, bool) {
	if s == "" || strings.Contains(s, ".") {
		return "", false
	}
	dec, err := idna.Punycode.ToUnicode(Prefix + s)
	if err != nil || dec == Prefix+s {
		return "", false
	}
	return dec, true
}

// HasPrefix reports whether label starts with Prefix, ignoring ASCII
// case.
func HasPrefix(label string) bool {
	return len(label) >= len(Prefix) && strings.EqualFold(label[:len(Prefix)], Prefix)
}
