package esi

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	xmlHeader  = `<?xml version="1.0" ?>`
	indentUnit = "  "
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	`"`, "&quot;",
	">", "&gt;",
)

// isXMLChar reports whether r is allowed by the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}

// cleanText drops characters that cannot appear in an XML document,
// including bytes that are not valid UTF-8.
func cleanText(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, func(r rune) bool { return !isXMLChar(r) }) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if isXMLChar(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeText(s string) string {
	return escaper.Replace(cleanText(s))
}

// commentText makes s safe inside <!-- -->: no "--" and no trailing "-".
func commentText(s string) string {
	s = cleanText(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	if strings.HasSuffix(s, "-") {
		s += " "
	}
	return s
}

// Serialize renders the tree as indented XML text. Elements holding only
// text stay on one line, empty elements are self-closed and every comment
// gets its own line.
func Serialize(root *Element) []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes never fail.
	_ = Encode(&buf, root)
	return buf.Bytes()
}

// Encode writes the serialized tree to w.
func Encode(w io.Writer, root *Element) error {
	enc := &encoder{w: w}
	enc.writeString(xmlHeader + "\n")
	enc.element(root, "")
	return enc.err
}

type encoder struct {
	w   io.Writer
	err error
}

func (enc *encoder) writeString(s string) {
	if enc.err != nil {
		return
	}
	_, enc.err = io.WriteString(enc.w, s)
}

func (enc *encoder) node(n Node, indent string) {
	switch v := n.(type) {
	case *Element:
		enc.element(v, indent)
	case Comment:
		enc.writeString(indent + "<!--" + commentText(string(v)) + "-->\n")
	}
}

func (enc *encoder) element(e *Element, indent string) {
	enc.writeString(indent + "<" + e.Tag)
	for _, a := range e.Attrs {
		enc.writeString(" " + a.Name + `="` + escapeText(a.Value) + `"`)
	}

	switch {
	case len(e.Children) > 0:
		enc.writeString(">\n")
		for _, c := range e.Children {
			enc.node(c, indent+indentUnit)
		}
		enc.writeString(indent + "</" + e.Tag + ">\n")
	case e.Text != "":
		enc.writeString(">" + escapeText(e.Text) + "</" + e.Tag + ">\n")
	default:
		enc.writeString("/>\n")
	}
}
