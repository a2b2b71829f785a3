package parser

import (
	"errors"
	"net/mail"
	"net/url"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/networkgear/tools/internal/domain"
)

// TestParser runs a battery of synthetic parse tests. The expected
// trees are spelled out in full, even where that repeats itself, so
// that a failing case can be read without chasing helpers.
func TestParser(t *testing.T) {
	jprs := Owner{
		Name:     "jp",
		URLs:     []*url.URL{mustURL("https://jprs.jp/")},
		Contacts: []*mail.Address{mustEmail("JPRS <info@jprs.jp>")},
	}

	icannNested := section(1, 6, SectionICANN)
	icannUnclosed := section(0, 2, SectionICANN,
		suffixes(1, 2, Owner{}, suffix(1, "com")),
	)

	tests := []struct {
		name     string
		psl      []byte
		want     *List
		wantErrs []error
	}{
		{
			name: "empty",
			psl:  byteLines(""),
			want: &List{},
		},

		{
			name: "just_comments",
			psl: byteLines(
				"// This is an empty PSL file.",
				"",
				"// Here is a second comment.",
				"//",
				"//   indented",
			),
			want: list(0, 5,
				comment(0, "This is an empty PSL file."),
				comment(2, "Here is a second comment.", "", "  indented"),
			),
		},

		{
			name: "suffix_block",
			psl: byteLines(
				"// ===BEGIN ICANN DOMAINS===",
				"",
				"// jp : https://jprs.jp/",
				"// Submitted by JPRS <info@jprs.jp>",
				"jp",
				"*.kawasaki.jp",
				"!city.kawasaki.jp",
				"東京.jp",
				"",
				"// ===END ICANN DOMAINS===",
			),
			want: list(0, 10,
				section(0, 10, SectionICANN,
					suffixes(2, 8, jprs,
						comment(2, "jp : https://jprs.jp/", "Submitted by JPRS <info@jprs.jp>"),
						suffix(4, "jp"),
						wildcard(5, "kawasaki.jp", "city"),
						suffix(7, "東京.jp"),
					),
				),
			),
		},

		{
			name: "headerless_blocks",
			psl: byteLines(
				"com",
				"net",
				"",
				"org",
			),
			want: list(0, 4,
				suffixes(0, 2, Owner{}, suffix(0, "com"), suffix(1, "net")),
				suffixes(3, 4, Owner{}, suffix(3, "org")),
			),
		},

		{
			name: "invalid_rules",
			psl: byteLines(
				"com",
				"COM",
				"-bad.com",
				"net.",
				"!www.example.org",
				"*.ck",
				"!www.ck",
				"!www.ck",
			),
			want: list(0, 6,
				suffixes(0, 6, Owner{}, suffix(0, "com"), wildcard(5, "ck", "www")),
			),
			wantErrs: []error{
				ErrInvalidSuffix{mkSrc(1, 2), "COM", errNotCanonical{"com"}},
				ErrInvalidSuffix{mkSrc(2, 3), "-bad.com", &domain.LabelError{Label: "-bad", Kind: domain.ErrInappropriateHyphen}},
				ErrInvalidSuffix{mkSrc(3, 4), "net.", errTrailingDot},
				ErrUnmatchedException{mkSrc(4, 5), "www.example.org"},
			},
		},

		{
			name: "section_errors",
			psl: byteLines(
				"// ===END PRIVATE DOMAINS===",
				"// ===BEGIN ICANN DOMAINS===",
				"// ===BEGIN PRIVATE DOMAINS===",
				"// ===END PRIVATE DOMAINS===",
				"// ===END ICANN DOMAINS",
				"// ===END OTHER===",
			),
			want: list(1, 6, icannNested),
			wantErrs: []error{
				ErrUnstartedSection{mkSrc(0, 1), SectionPrivate},
				ErrNestedSection{mkSrc(2, 4), SectionPrivate, icannNested},
				ErrUnknownSectionMarker{mkSrc(4, 5)},
				ErrMismatchedSection{mkSrc(5, 6), "OTHER", icannNested},
			},
		},

		{
			name: "unclosed_section",
			psl: byteLines(
				"// ===BEGIN ICANN DOMAINS===",
				"com",
			),
			want:     list(0, 2, icannUnclosed),
			wantErrs: []error{ErrUnclosedSection{icannUnclosed}},
		},

		{
			name: "section_marker_ends_suffix_block",
			psl: byteLines(
				"// ===BEGIN ICANN DOMAINS===",
				"com",
				"// ===END ICANN DOMAINS===",
			),
			want: list(0, 3,
				section(0, 3, SectionICANN,
					suffixes(1, 2, Owner{}, suffix(1, "com")),
				),
			),
			wantErrs: []error{ErrSectionInSuffixBlock{mkSrc(2, 3)}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, errs := Parse(tc.psl)
			checkTree(t, "parse result", got, tc.want)
			if diff := cmp.Diff(errStrings(errs), errStrings(tc.wantErrs)); diff != "" {
				t.Errorf("parse errors are wrong (-got+want):\n%s", diff)
			}
		})
	}
}

func TestInvalidSuffixUnwraps(t *testing.T) {
	_, errs := Parse(byteLines("a--b.com"))
	if len(errs) != 1 {
		t.Fatalf("Parse returned %d errors, want 1: %v", len(errs), errs)
	}
	if !errors.Is(errs[0], domain.ErrInappropriateHyphen) {
		t.Errorf("error %v does not wrap ErrInappropriateHyphen", errs[0])
	}
}

func TestRules(t *testing.T) {
	psl := byteLines(
		"// ===BEGIN ICANN DOMAINS===",
		"",
		"jp",
		"*.kawasaki.jp",
		"!city.kawasaki.jp",
		"",
		"// ===END ICANN DOMAINS===",
		"",
		"// ===BEGIN PRIVATE DOMAINS===",
		"",
		"// GitHub, Inc.",
		"github.io",
		"",
		"// ===END PRIVATE DOMAINS===",
	)
	l, errs := Parse(psl)
	for _, err := range errs {
		t.Error(err)
	}

	want := []Rule{
		{NormalRule, []string{"jp"}, false, mkSrc(2, 3)},
		{WildcardRule, []string{"kawasaki", "jp"}, false, mkSrc(3, 4)},
		{ExceptionRule, []string{"city", "kawasaki", "jp"}, false, mkSrc(3, 4)},
		{NormalRule, []string{"github", "io"}, true, mkSrc(11, 12)},
	}
	checkDiff(t, "Rules()", l.Rules(), want)
}

func TestParseEmbeddedList(t *testing.T) {
	bs, err := os.ReadFile("../publicsuffix/data/public_suffix_list.dat")
	if err != nil {
		t.Fatal(err)
	}

	l, errs := Parse(bs)
	errs = append(errs, ValidateOffline(l)...)
	errs = append(errs, l.Clean()...)
	for _, err := range errs {
		t.Error(err)
	}

	if got, wantMin := len(BlocksOfType[*Suffix](l)), 20; got < wantMin {
		t.Errorf("list has %d suffixes, want at least %d", got, wantMin)
	}
	if got, wantMin := len(BlocksOfType[*Wildcard](l)), 3; got < wantMin {
		t.Errorf("list has %d wildcards, want at least %d", got, wantMin)
	}

	// The embedded list is kept in canonical form and order.
	checkDiff(t, "MarshalPSL of the embedded list", string(l.MarshalPSL()), string(bs))
}

func TestTreeOptsSeeSourceRanges(t *testing.T) {
	a := list(0, 1, suffixes(0, 1, Owner{}, suffix(0, "com")))
	b := list(0, 2, suffixes(0, 2, Owner{}, suffix(1, "com")))
	if diff := cmp.Diff(a, b, treeOpts); diff == "" {
		t.Error("trees with different source ranges compare equal")
	}
	if diff := cmp.Diff(a, a, treeOpts); diff != "" {
		t.Errorf("tree differs from itself:\n%s", diff)
	}
}
