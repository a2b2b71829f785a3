package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// MarshalPSL returns the list serialized to standard PSL text format.
func (l *List) MarshalPSL() []byte {
	var ret bytes.Buffer
	writeBlockPSL(&ret, l)
	return ret.Bytes()
}

func writeBlockPSL(w io.Writer, b Block) {
	f := func(msg string, args ...any) {
		fmt.Fprintf(w, msg+"\n", args...)
	}

	switch v := b.(type) {
	case *List:
		for i, child := range v.Blocks {
			if i > 0 {
				f("")
			}
			writeBlockPSL(w, child)
		}
	case *Section:
		f("%s%s%s", sectionStartPrefix, v.Name, sectionSuffix)
		for _, child := range v.Blocks {
			f("")
			writeBlockPSL(w, child)
		}
		f("")
		f("%s%s%s", sectionEndPrefix, v.Name, sectionSuffix)
	case *Suffixes:
		for _, child := range v.Blocks {
			writeBlockPSL(w, child)
		}
	case *Suffix:
		f("%s", v.Domain)
	case *Wildcard:
		f("%s%s", wildcardPrefix, v.Domain)
		for _, exc := range v.Exceptions {
			f("%s%s.%s", exceptionPrefix, exc, v.Domain)
		}
	case *Comment:
		for _, line := range v.Text {
			if line == "" {
				f("%s", commentPrefix)
			} else {
				f("%s %s", commentPrefix, line)
			}
		}
	default:
		panic("unknown ast node")
	}
}

// MarshalDebug returns the list serialized to a verbose debugging
// format, one block per line with its source location. The format is
// meant for people and may change.
func (l *List) MarshalDebug() []byte {
	var ret bytes.Buffer
	writeBlockDebug(&ret, l, "")
	return ret.Bytes()
}

func writeBlockDebug(w io.Writer, b Block, indent string) {
	f := func(msg string, args ...any) {
		fmt.Fprintf(w, indent+msg+"\n", args...)
	}

	loc := b.SrcRange().LocationString()
	const extraIndent = "   "
	nextIndent := indent + extraIndent

	switch v := b.(type) {
	case *List:
		f("List(%s) {", loc)
		for _, child := range v.Blocks {
			writeBlockDebug(w, child, nextIndent)
		}
		f("} // List")
	case *Section:
		f("Section(%s, name=%q) {", loc, v.Name)
		for _, child := range v.Blocks {
			writeBlockDebug(w, child, nextIndent)
		}
		f("} // Section(name=%q)", v.Name)
	case *Suffixes:
		items := []string{loc}
		if v.Owner.Name != "" {
			items = append(items, fmt.Sprintf("owner=%q", v.Owner.Name))
		}
		for _, u := range v.Owner.URLs {
			items = append(items, fmt.Sprintf("url=%q", u))
		}
		for _, c := range v.Owner.Contacts {
			items = append(items, fmt.Sprintf("contact=%q", c.Address))
		}
		f("SuffixBlock(%s) {", strings.Join(items, ", "))
		for _, child := range v.Blocks {
			writeBlockDebug(w, child, nextIndent)
		}
		f("} // SuffixBlock(owner=%q)", v.Owner.Name)
	case *Suffix:
		f("Suffix(%s, %q)", loc, v.Domain)
	case *Wildcard:
		name := wildcardPrefix + v.Domain.String()
		if len(v.Exceptions) > 0 {
			f("Wildcard(%s, %q, except=%v)", loc, name, v.Exceptions)
		} else {
			f("Wildcard(%s, %q)", loc, name)
		}
	case *Comment:
		f("Comment(%s) {", loc)
		for _, line := range v.Text {
			f("%s%s", extraIndent, line)
		}
		f("}")
	default:
		panic("unknown ast node")
	}
}
