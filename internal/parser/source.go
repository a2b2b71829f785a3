package parser

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	xunicode "golang.org/x/text/encoding/unicode"
)

// SourceRange is a range of lines of the input file. FirstLine is
// inclusive and LastLine exclusive, both are zero-based.
type SourceRange struct {
	FirstLine int
	LastLine  int
}

// LocationString returns a short human-readable description of the
// range, with one-based line numbers.
func (s SourceRange) LocationString() string {
	switch {
	case s.LastLine <= s.FirstLine:
		return fmt.Sprintf("<empty range before line %d>", s.FirstLine+1)
	case s.LastLine == s.FirstLine+1:
		return fmt.Sprintf("line %d", s.FirstLine+1)
	}
	return fmt.Sprintf("lines %d-%d", s.FirstLine+1, s.LastLine)
}

// merge returns the smallest range that covers both s and other.
func (s SourceRange) merge(other SourceRange) SourceRange {
	return SourceRange{
		FirstLine: min(s.FirstLine, other.FirstLine),
		LastLine:  max(s.LastLine, other.LastLine),
	}
}

func lineRange(n int) SourceRange { return SourceRange{n, n + 1} }

const (
	bomUTF8    = "\xEF\xBB\xBF"
	bomUTF16BE = "\xFE\xFF"
	bomUTF16LE = "\xFF\xFE"
)

var (
	utf8Encoding    = xunicode.UTF8BOM
	utf16BEEncoding = xunicode.UTF16(xunicode.BigEndian, xunicode.UseBOM)
	utf16LEEncoding = xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM)
)

// normalizeToUTF8Lines decodes bs and splits it into lines.
//
// The canonical PSL file is plain UTF-8 with Unix newlines and no
// stray whitespace. Input that deviates from that (a BOM, UTF-16,
// CRLF newlines, invalid byte sequences, surrounding whitespace) is
// still decoded as well as possible, and every deviation is reported
// as an error. Invalid bytes come out as U+FFFD.
func normalizeToUTF8Lines(bs []byte) ([]string, []error) {
	enc, errs := detectEncoding(bs)

	bs, err := enc.NewDecoder().Bytes(bs)
	if err != nil {
		return []string{}, append(errs, err)
	}
	if len(bs) == 0 {
		return []string{}, errs
	}

	lines := strings.Split(string(bs), "\n")
	for i, line := range lines {
		var lineErrs []error
		lines[i], lineErrs = cleanLine(i, line)
		errs = append(errs, lineErrs...)
	}
	return lines, errs
}

// detectEncoding returns the encoding to decode bs with, along with an
// error if that encoding is not canonical.
func detectEncoding(bs []byte) (encoding.Encoding, []error) {
	switch {
	case bytes.HasPrefix(bs, []byte(bomUTF8)):
		return utf8Encoding, []error{ErrUTF8BOM{}}
	case bytes.HasPrefix(bs, []byte(bomUTF16BE)):
		return utf16BEEncoding, []error{ErrInvalidEncoding{"UTF-16BE"}}
	case bytes.HasPrefix(bs, []byte(bomUTF16LE)):
		return utf16LEEncoding, []error{ErrInvalidEncoding{"UTF-16LE"}}
	}

	switch guessUTF16(bs) {
	case utf16BEEncoding:
		return utf16BEEncoding, []error{ErrInvalidEncoding{"UTF-16BE (guessed)"}}
	case utf16LEEncoding:
		return utf16LEEncoding, []error{ErrInvalidEncoding{"UTF-16LE (guessed)"}}
	}
	return utf8Encoding, nil
}

// guessUTF16 looks for BOM-less UTF-16 in the first bytes of bs.
//
// Mostly-ASCII text in UTF-16 has a zero byte in every code unit, on
// the even offsets for big endian and the odd ones for little endian.
// UTF-8 only produces zero bytes for U+0000. It returns utf8Encoding
// when there is no clear bias.
func guessUTF16(bs []byte) encoding.Encoding {
	const (
		scanLimit = 200
		minZeros  = 20
		bias      = 15
	)
	if len(bs) > scanLimit {
		bs = bs[:scanLimit]
	}

	var even, odd int
	for i, b := range bs {
		if b != 0 {
			continue
		}
		if i%2 == 0 {
			even++
		} else {
			odd++
		}
	}
	switch {
	case even+odd < minZeros:
		return utf8Encoding
	case even > bias && even > odd:
		return utf16BEEncoding
	case odd > bias && odd > even:
		return utf16LEEncoding
	}
	return utf8Encoding
}

// cleanLine strips the n'th input line of its line ending and
// surrounding whitespace.
func cleanLine(n int, line string) (string, []error) {
	var (
		src  = lineRange(n)
		errs []error
	)
	if strings.ContainsRune(line, utf8.RuneError) {
		errs = append(errs, ErrInvalidUnicode{src})
	}
	if l, ok := strings.CutSuffix(line, "\r"); ok {
		line = l
		errs = append(errs, ErrDOSNewline{src})
	}
	if l := strings.TrimRightFunc(line, unicode.IsSpace); l != line {
		line = l
		errs = append(errs, ErrTrailingWhitespace{src})
	}
	if l := strings.TrimLeftFunc(line, unicode.IsSpace); l != line {
		line = l
		errs = append(errs, ErrLeadingWhitespace{src})
	}
	return line, errs
}
