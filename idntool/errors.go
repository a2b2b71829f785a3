package main

import (
	"errors"
	"reflect"
	"sort"

	"github.com/networkgear/tools/internal/domain"
	"github.com/networkgear/tools/internal/parser"
)

const (
	tagEncoding  = "encoding"
	tagStructure = "structure"
	tagRule      = "rule"
	tagPolicy    = "policy"
	tagFormat    = "format"

	tagSyntax  = "syntax"
	tagBidi    = "bidi"
	tagContext = "context"
	tagLength  = "length"
	tagName    = "name"

	tagOther = "other"
)

var kindToTag = map[domain.Kind]string{
	domain.ErrEmptyString:            tagSyntax,
	domain.ErrInvalidNormalization:   tagSyntax,
	domain.ErrFirstScalarIsMark:      tagSyntax,
	domain.ErrInvalidIDNLabel:        tagSyntax,
	domain.ErrInappropriateHyphen:    tagSyntax,
	domain.ErrContainingFullStop:     tagSyntax,
	domain.ErrInvalidIDNAStatus:      tagSyntax,
	domain.ErrViolatingBidiRule:      tagBidi,
	domain.ErrViolatingContextJRules: tagContext,
	domain.ErrViolatingContextORules: tagContext,
	domain.ErrInvalidLength:          tagLength,
}

// errTags maps error templates to tags. Errors match a struct template
// if they have the same type, and a sentinel template if errors.Is
// reports a match.
var errTags = []struct {
	tpl error
	tag string
}{
	// parser errors, sorted alphabetically
	{parser.ErrCommentPreventsSuffixSort{}, tagFormat},
	{parser.ErrConflictingSuffixAndException{}, tagPolicy},
	{parser.ErrDOSNewline{}, tagEncoding},
	{parser.ErrDuplicateSection{}, tagStructure},
	{parser.ErrDuplicateSuffix{}, tagPolicy},
	{parser.ErrInvalidEncoding{}, tagEncoding},
	{parser.ErrInvalidSuffix{}, tagRule},
	{parser.ErrInvalidUnicode{}, tagEncoding},
	{parser.ErrLeadingWhitespace{}, tagEncoding},
	{parser.ErrMismatchedSection{}, tagStructure},
	{parser.ErrMissingEntityName{}, tagPolicy},
	{parser.ErrMissingSection{}, tagStructure},
	{parser.ErrNestedSection{}, tagStructure},
	{parser.ErrSectionInSuffixBlock{}, tagStructure},
	{parser.ErrTrailingWhitespace{}, tagEncoding},
	{parser.ErrUTF8BOM{}, tagEncoding},
	{parser.ErrUnclosedSection{}, tagStructure},
	{parser.ErrUnknownSection{}, tagStructure},
	{parser.ErrUnknownSectionMarker{}, tagStructure},
	{parser.ErrUnmatchedException{}, tagRule},
	{parser.ErrUnstartedSection{}, tagStructure},

	// all other errors
	{ErrReformat, tagFormat},
	{ErrUnsorted, tagFormat},
	{errInvalidName, tagName},
}

var (
	ErrReformat = errors.New("file needs reformatting, run 'idntool psl fmt' to fix")
	ErrUnsorted = errors.New("suffixes are not sorted, run 'idntool psl fmt' to fix")
)

// errorTag returns a short tag describing the class of err. Label
// validation failures are tagged by the rule they violate, even when
// wrapped in a parser error.
func errorTag(err error) string {
	var le *domain.LabelError
	if errors.As(err, &le) {
		if tag, ok := kindToTag[le.Kind]; ok {
			return tag
		}
	}
	for _, et := range errTags {
		if isType(err, et.tpl) {
			return et.tag
		}
	}
	return tagOther
}

// tagCounts is a count of errors by tag.
type tagCounts map[string]int

func countTags(errs []error) tagCounts {
	ret := tagCounts{}
	for _, err := range errs {
		ret[errorTag(err)]++
	}
	return ret
}

// keyvals returns c as alternating tag and count, sorted by tag, for
// structured logging.
func (c tagCounts) keyvals() []any {
	tags := make([]string, 0, len(c))
	for tag := range c {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	ret := make([]any, 0, 2*len(tags))
	for _, tag := range tags {
		ret = append(ret, tag, c[tag])
	}
	return ret
}

// isType reports whether err matches tpl. Struct templates match any
// error of their type, other templates are sentinels that only match
// themselves.
func isType(err error, tpl error) bool {
	if errors.Is(err, tpl) {
		return true
	}
	if reflect.TypeOf(tpl).Kind() != reflect.Struct {
		return false
	}
	if reflect.TypeOf(err) == reflect.TypeOf(tpl) {
		return true
	}
	if wrapped, ok := err.(interface{ Unwrap() error }); ok {
		return isType(wrapped.Unwrap(), tpl)
	}
	return false
}
