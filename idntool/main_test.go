package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/networkgear/tools/internal/domain"
	"github.com/networkgear/tools/internal/parser"
	"github.com/networkgear/tools/internal/publicsuffix"
)

func TestCheckName(t *testing.T) {
	tests := []struct {
		in       string
		opts     domain.Options
		want     string
		wantKind domain.Kind // zero if valid
	}{
		{"example.com", domain.Default, "example.com\tok\texample.com\texample.com", 0},
		{"xn--1lqs71d.jp", domain.Default, "xn--1lqs71d.jp\tok\t東京.jp\txn--1lqs71d.jp", 0},
		{"東京.JP", domain.Default, "東京.JP\tok\t東京.jp\txn--1lqs71d.jp", 0},
		{"-bad.com", domain.Default, "", domain.ErrInappropriateHyphen},
		{"-bad.com", domain.Loose, "-bad.com\tok\t-bad.com\t-bad.com", 0},
		{"a..com", domain.Default, "", domain.ErrEmptyString},
		{"a。-b.com", domain.Default, "", domain.ErrInappropriateHyphen},
		{"localhost", domain.Default, "localhost\tloopback\tlocalhost\tlocalhost", 0},
		{"app.localhost.", domain.Default, "app.localhost.\tloopback\tapp.localhost.\tapp.localhost.", 0},
		{"localhost.example", domain.Default, "localhost.example\tok\tlocalhost.example\tlocalhost.example", 0},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s/%s", tc.in, tc.opts), func(t *testing.T) {
			got := checkName(tc.in, tc.opts)
			if tc.wantKind != 0 {
				if !errors.Is(got.Err, tc.wantKind) {
					t.Errorf("checkName(%q).Err = %v, want %v", tc.in, got.Err, tc.wantKind)
				}
				return
			}
			if got.Err != nil {
				t.Fatalf("checkName(%q) failed: %v", tc.in, got.Err)
			}
			if s := got.String(); s != tc.want {
				t.Errorf("checkName(%q) = %q, want %q", tc.in, s, tc.want)
			}
		})
	}
}

func TestExplainInvalid(t *testing.T) {
	tests := []struct {
		in        string
		wantLabel string
		wantKind  domain.Kind
	}{
		{"-bad.com", "-bad", domain.ErrInappropriateHyphen},
		// Ideographic full stops split labels like ".".
		{"a。-b.com", "-b", domain.ErrInappropriateHyphen},
		{"foo.a_b。com", "a_b", domain.ErrInvalidIDNAStatus},
		{"ＥＸ_ＡＭＰＬＥ.com", "ＥＸ_ＡＭＰＬＥ", domain.ErrInvalidIDNAStatus},
	}
	for _, tc := range tests {
		err := explainInvalid(tc.in, domain.Default)
		var le *domain.LabelError
		if !errors.As(err, &le) {
			t.Errorf("explainInvalid(%q) = %v, want a label error", tc.in, err)
			continue
		}
		if le.Label != tc.wantLabel || le.Kind != tc.wantKind {
			t.Errorf("explainInvalid(%q) = %q/%v, want %q/%v", tc.in, le.Label, le.Kind, tc.wantLabel, tc.wantKind)
		}
	}
}

func TestLabelForms(t *testing.T) {
	tests := []struct {
		in, wantU, wantA string
		wantKind         domain.Kind // zero if valid
	}{
		{in: "com", wantU: "com", wantA: "com"},
		{in: "bücher", wantU: "bücher", wantA: "xn--bcher-kva"},
		{in: "xn--bcher-kva", wantU: "bücher", wantA: "xn--bcher-kva"},
		{in: "-a", wantKind: domain.ErrInappropriateHyphen},
	}
	for _, tc := range tests {
		u, a, err := labelForms(tc.in, domain.Default)
		if tc.wantKind != 0 {
			if !errors.Is(err, tc.wantKind) {
				t.Errorf("labelForms(%q) err = %v, want %v", tc.in, err, tc.wantKind)
			}
			continue
		}
		if err != nil {
			t.Errorf("labelForms(%q) failed: %v", tc.in, err)
			continue
		}
		if u.String() != tc.wantU || a.String() != tc.wantA {
			t.Errorf("labelForms(%q) = %q, %q, want %q, %q", tc.in, u, a, tc.wantU, tc.wantA)
		}
	}
}

func TestCheckNamesKeepsOrder(t *testing.T) {
	names := []string{"a.com", "-b.com", "c.org", "d.net", "e--.io", "f.jp"}
	results := checkNames(names, domain.Default, 3)
	if len(results) != len(names) {
		t.Fatalf("checkNames returned %d results, want %d", len(results), len(names))
	}
	for i, r := range results {
		if r.Input != names[i] {
			t.Errorf("result %d is for %q, want %q", i, r.Input, names[i])
		}
	}
	var invalid []string
	for _, r := range results {
		if r.Err != nil {
			invalid = append(invalid, r.Input)
		}
	}
	if diff := cmp.Diff(invalid, []string{"-b.com", "e--.io"}); diff != "" {
		t.Errorf("invalid names are wrong (-got+want):\n%s", diff)
	}
}

func TestCookieMatches(t *testing.T) {
	tests := []struct {
		host, cookie string
		want         bool
	}{
		{"www.example.com", "example.com", true},
		{"example.com", "example.com", true},
		{"EXAMPLE.com", "example.COM", true},
		{"example.com", "www.example.com", false},
		{"example.org", "example.com", false},
		{"notexample.com", "example.com", false},
		{"example.com", "com", false},
		{"www.example.co.uk", "co.uk", false},
		{"co.uk", "co.uk", true},
		{"user.github.io", "github.io", false},
	}
	m := publicsuffix.Default()
	for _, tc := range tests {
		host, cookie := domain.MustParse(tc.host), domain.MustParse(tc.cookie)
		got, reason := cookieMatches(m, host, cookie)
		if got != tc.want {
			t.Errorf("cookieMatches(%q, %q) = %v (%s), want %v", tc.host, tc.cookie, got, reason, tc.want)
		}
		if !got && reason == "" {
			t.Errorf("cookieMatches(%q, %q) gave no reason", tc.host, tc.cookie)
		}
	}
}

func TestDescribeSuffix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"www.example.co.uk", "www.example.co.uk\tco.uk\texample.co.uk"},
		{"co.uk", "co.uk\tco.uk\t-"},
		{"user.github.io", "user.github.io\tgithub.io\tuser.github.io"},
	}
	for _, tc := range tests {
		got := describeSuffix(publicsuffix.Default(), domain.MustParse(tc.in))
		if got != tc.want {
			t.Errorf("describeSuffix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestErrorTag(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&domain.LabelError{Label: "a‍b", Kind: domain.ErrViolatingContextJRules}, tagContext},
		{&domain.LabelError{Label: "ab", Kind: domain.ErrViolatingBidiRule}, tagBidi},
		{parser.ErrInvalidSuffix{Suffix: "-a.com", Err: &domain.LabelError{Label: "-a", Kind: domain.ErrInappropriateHyphen}}, tagSyntax},
		{parser.ErrInvalidSuffix{Suffix: "COM", Err: errors.New("not canonical")}, tagRule},
		{parser.ErrMissingSection{Name: parser.SectionICANN}, tagStructure},
		{fmt.Errorf("line 3: %w", parser.ErrDOSNewline{}), tagEncoding},
		{ErrReformat, tagFormat},
		{ErrUnsorted, tagFormat},
		{parser.ErrCommentPreventsSuffixSort{}, tagFormat},
		{errInvalidName, tagName},
		{fmt.Errorf("%q: %w", "a.com", errInvalidName), tagName},
		// Sentinels match by identity, not by type.
		{errors.New("something else"), tagOther},
		{errors.New(ErrReformat.Error()), tagOther},
	}
	for _, tc := range tests {
		if got := errorTag(tc.err); got != tc.want {
			t.Errorf("errorTag(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestValidatePSL(t *testing.T) {
	embedded, err := os.ReadFile("../internal/publicsuffix/data/public_suffix_list.dat")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		psl  string
		want tagCounts
	}{
		{"embedded", string(embedded), tagCounts{}},
		{"no_sections", "com\n", tagCounts{tagStructure: 2}},
		{"needs_fmt", "com\n\n\nnet\n", tagCounts{tagStructure: 2, tagFormat: 1}},
		{"unsorted", strings.Replace(string(embedded), "ac.jp\nco.jp\n", "co.jp\nac.jp\n", 1), tagCounts{tagFormat: 1}},
		{"duplicate", strings.Replace(string(embedded), "\nnet\n", "\nnet\nnet\n", 1), tagCounts{tagPolicy: 1, tagFormat: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := countTags(validatePSL([]byte(tc.psl)))
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("validation errors are wrong (-got+want):\n%s", diff)
			}
		})
	}
}

func TestTagCountsKeyvals(t *testing.T) {
	got := tagCounts{tagSyntax: 2, tagBidi: 1}.keyvals()
	want := []any{tagBidi, 1, tagSyntax, 2}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("keyvals() is wrong (-got+want):\n%s", diff)
	}
}
