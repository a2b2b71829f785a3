package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidEncoding reports that the input is encoded with
// something other than UTF-8.
type ErrInvalidEncoding struct {
	Encoding string
}

func (e ErrInvalidEncoding) Error() string {
	return fmt.Sprintf("invalid character encoding %s", e.Encoding)
}

// ErrUTF8BOM reports that the input starts with a byte order mark.
type ErrUTF8BOM struct{}

func (ErrUTF8BOM) Error() string { return "file starts with an unnecessary UTF-8 BOM" }

// ErrInvalidUnicode reports that a line contains byte sequences that
// are not valid UTF-8.
type ErrInvalidUnicode struct {
	SourceRange
}

func (e ErrInvalidUnicode) Error() string {
	return fmt.Sprintf("%s: invalid Unicode character(s)", e.LocationString())
}

// ErrDOSNewline reports a line that ends in "\r\n".
type ErrDOSNewline struct {
	SourceRange
}

func (e ErrDOSNewline) Error() string {
	return fmt.Sprintf("%s: found DOS line ending (\\r\\n instead of just \\n)", e.LocationString())
}

// ErrTrailingWhitespace reports a line with trailing whitespace.
type ErrTrailingWhitespace struct {
	SourceRange
}

func (e ErrTrailingWhitespace) Error() string {
	return fmt.Sprintf("%s: trailing whitespace", e.LocationString())
}

// ErrLeadingWhitespace reports a line with leading whitespace.
type ErrLeadingWhitespace struct {
	SourceRange
}

func (e ErrLeadingWhitespace) Error() string {
	return fmt.Sprintf("%s: leading whitespace", e.LocationString())
}

// ErrSectionInSuffixBlock reports a section marker in the middle of
// a suffix block.
type ErrSectionInSuffixBlock struct {
	SourceRange
}

func (e ErrSectionInSuffixBlock) Error() string {
	return fmt.Sprintf("%s: section delimiter not allowed in suffix block", e.LocationString())
}

// ErrUnclosedSection reports that a section was not closed before the
// end of the file.
type ErrUnclosedSection struct {
	Section *Section
}

func (e ErrUnclosedSection) Error() string {
	return fmt.Sprintf("%s: section %q is missing its closing marker", e.Section.LocationString(), e.Section.Name)
}

// ErrNestedSection reports a section started inside another section.
type ErrNestedSection struct {
	SourceRange
	Name    string
	Section *Section
}

func (e ErrNestedSection) Error() string {
	return fmt.Sprintf("%s: section %q is nested inside section %q (%s)", e.LocationString(), e.Name, e.Section.Name, e.Section.LocationString())
}

// ErrUnstartedSection reports a section end marker without a
// matching start.
type ErrUnstartedSection struct {
	SourceRange
	Name string
}

func (e ErrUnstartedSection) Error() string {
	return fmt.Sprintf("%s: end marker for non-existent section %q", e.LocationString(), e.Name)
}

// ErrMismatchedSection reports a section closed under another name.
type ErrMismatchedSection struct {
	SourceRange
	EndName string
	Section *Section
}

func (e ErrMismatchedSection) Error() string {
	return fmt.Sprintf("%s: section %q (%s) closed with wrong name %q", e.LocationString(), e.Section.Name, e.Section.LocationString(), e.EndName)
}

// ErrUnknownSectionMarker reports a line that looks like a section
// marker but is not a well-formed BEGIN or END marker.
type ErrUnknownSectionMarker struct {
	SourceRange
}

func (e ErrUnknownSectionMarker) Error() string {
	return fmt.Sprintf("%s: unknown kind of section marker", e.LocationString())
}

// ErrInvalidSuffix reports a rule that is not a valid domain name
// under SuffixOptions.
type ErrInvalidSuffix struct {
	SourceRange
	Suffix string
	Err    error
}

func (e ErrInvalidSuffix) Error() string {
	return fmt.Sprintf("%s: invalid suffix %q: %v", e.LocationString(), e.Suffix, e.Err)
}

func (e ErrInvalidSuffix) Unwrap() error { return e.Err }

// ErrUnmatchedException reports an exception rule that does not
// belong to any wildcard of its suffix block.
type ErrUnmatchedException struct {
	SourceRange
	Exception string
}

func (e ErrUnmatchedException) Error() string {
	return fmt.Sprintf("%s: exception %q does not match any wildcard", e.LocationString(), e.Exception)
}

// ErrCommentPreventsSuffixSort reports that a comment inside a suffix
// block separates rules that are out of order, so that Clean cannot
// sort them without moving rules across the comment.
type ErrCommentPreventsSuffixSort struct {
	SourceRange
}

func (e ErrCommentPreventsSuffixSort) Error() string {
	return fmt.Sprintf("%s: comment prevents full sorting of suffixes", e.LocationString())
}

// ErrMissingEntityName reports a private suffix block without an owner
// name in its header comment.
type ErrMissingEntityName struct {
	Suffixes *Suffixes
}

func (e ErrMissingEntityName) Error() string {
	return fmt.Sprintf("%s: suffix block has no owner name", e.Suffixes.LocationString())
}

// ErrDuplicateSection reports a section that appears twice.
type ErrDuplicateSection struct {
	*Section
	FirstDefinition *Section
}

func (e ErrDuplicateSection) Error() string {
	return fmt.Sprintf("%s: duplicate section %q, first definition at %s", e.LocationString(), e.Name, e.FirstDefinition.LocationString())
}

// ErrUnknownSection reports a section other than the ICANN and
// private ones.
type ErrUnknownSection struct {
	*Section
}

func (e ErrUnknownSection) Error() string {
	return fmt.Sprintf("%s: unknown section %q, allowed sections are %q and %q", e.LocationString(), e.Name, SectionICANN, SectionPrivate)
}

// ErrMissingSection reports that one of the required sections is
// absent.
type ErrMissingSection struct {
	Name string
}

func (e ErrMissingSection) Error() string {
	return fmt.Sprintf("missing required section %q", e.Name)
}

// ErrDuplicateSuffix reports a rule that is listed more than once.
type ErrDuplicateSuffix struct {
	Name            string
	Block                 // Suffix or Wildcard
	FirstDefinition Block // Suffix or Wildcard
}

func (e ErrDuplicateSuffix) Error() string {
	return fmt.Sprintf("%s: duplicate suffix definition for %q, first definition at %s", e.SrcRange().LocationString(), e.Name, e.FirstDefinition.SrcRange().LocationString())
}

// ErrConflictingSuffixAndException reports a suffix that is also
// listed as a wildcard exception.
type ErrConflictingSuffixAndException struct {
	*Suffix
	Wildcard *Wildcard
}

func (e ErrConflictingSuffixAndException) Error() string {
	return fmt.Sprintf("%s: suffix %s conflicts with exception in wildcard at %s", e.LocationString(), e.Domain, e.Wildcard.LocationString())
}

var (
	errInvalidName = errors.New("not a valid domain name")
	errTrailingDot = errors.New("rules cannot end with a dot")
)

// errNotCanonical reports a rule that is valid, but not written in
// its canonical form.
type errNotCanonical struct {
	want string
}

func (e errNotCanonical) Error() string {
	return fmt.Sprintf("not in canonical form, want %q", e.want)
}
