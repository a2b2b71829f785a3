package main

import (
	"errors"
	"fmt"

	"github.com/creachadair/taskgroup"
	"github.com/miekg/dns"
	"github.com/networkgear/tools/internal/domain"
)

var errInvalidName = errors.New("not a valid domain name")

// checkResult is the outcome of validating one input name.
type checkResult struct {
	Input string
	// Name and ASCII are the name in Unicode and punycode form. They
	// are zero if Err is set.
	Name  domain.Name
	ASCII domain.Name
	// WireLabels is the label count reported by the DNS library for
	// the ASCII form, or 0 if it is not a valid wire format name.
	WireLabels int
	// Loopback is set for localhost and the names under it.
	Loopback bool
	Err      error
}

func (r checkResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s\tinvalid\t%v", r.Input, r.Err)
	}
	status := "ok"
	switch {
	case r.WireLabels == 0:
		status = "not-dns"
	case r.Loopback:
		status = "loopback"
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s", r.Input, status, r.Name, r.ASCII)
}

// checkName validates s under opts.
func checkName(s string, opts domain.Options) checkResult {
	ret := checkResult{Input: s}

	unicodeOpts := opts.Without(domain.AddPunycodeEncoding)
	d, ok := domain.ParseWith(s, unicodeOpts)
	if !ok {
		ret.Err = explainInvalid(s, unicodeOpts)
		return ret
	}
	ascii, err := d.WithPunycode()
	if err != nil {
		ret.Err = err
		return ret
	}
	ret.Name, ret.ASCII = d, ascii
	ret.Loopback = isLoopback(d)

	if n, ok := dns.IsDomainName(ascii.String()); ok {
		ret.WireLabels = n
	}
	return ret
}

// explainInvalid returns the first label error of s, which failed to
// parse under opts. Names the domain package cannot explain get
// errInvalidName.
func explainInvalid(s string, opts domain.Options) error {
	if err := domain.Explain(s, opts); err != nil {
		return err
	}
	return errInvalidName
}

// isLoopback reports whether d is localhost or a name under it, which
// always resolve to a loopback address (RFC 6761, section 6.3).
func isLoopback(d domain.Name) bool {
	localhost := domain.Localhost()
	for p, ok := d, true; ok; p, ok = p.Parent() {
		if p.Equal(localhost) {
			return true
		}
	}
	return false
}

// labelForms validates s as a single label and returns its Unicode
// and ASCII forms. The ASCII form must convert back to the Unicode
// form.
func labelForms(s string, opts domain.Options) (u, a domain.Label, err error) {
	u, err = domain.ParseLabelWith(s, opts.Without(domain.AddPunycodeEncoding))
	if err != nil {
		return domain.Label{}, domain.Label{}, err
	}
	a, err = domain.ParseLabelWith(s, opts.Union(domain.AddPunycodeEncoding))
	if err != nil {
		return domain.Label{}, domain.Label{}, err
	}
	if !u.EqualString(a.String()) {
		return domain.Label{}, domain.Label{}, fmt.Errorf("%s does not convert back to %s", a, u)
	}
	return u, a, nil
}

// checkNames validates names concurrently, with at most workers
// running at once. Results are in the order of names.
func checkNames(names []string, opts domain.Options, workers int) []checkResult {
	ret := make([]checkResult, len(names))
	collect := taskgroup.NewCollector(func(r indexedResult) {
		ret[r.index] = r.checkResult
	})
	group, start := taskgroup.New(nil).Limit(workers)
	for i, name := range names {
		start(collect.NoError(func() indexedResult {
			return indexedResult{i, checkName(name, opts)}
		}))
	}
	group.Wait()
	return ret
}

type indexedResult struct {
	index int
	checkResult
}
