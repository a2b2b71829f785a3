package domain

import (
	"bytes"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// IDNA does not define an order for unequal labels. Nothing in DNS
// cares, but humans reading sorted lists do, especially for non-latin
// scripts where byte order is meaningless.
//
// The collator MUST NOT be used by itself to establish equality,
// Label.Compare breaks its ties with byte order. collate.Force would
// do the same, but is silently ignored in some cases
// (https://github.com/golang/go/issues/68379).
var (
	labelCollatorMu sync.Mutex
	labelCollator   = collate.New(language.English)
)

func collateLabels(a, b string) int {
	// Collators are not safe for concurrent use.
	labelCollatorMu.Lock()
	defer labelCollatorMu.Unlock()
	var buf collate.Buffer
	ka := labelCollator.KeyFromString(&buf, a)
	kb := labelCollator.KeyFromString(&buf, b)
	return bytes.Compare(ka, kb)
}
