package dom

import (
	"bytes"
	"encoding/xml"
	"io"
)

// Encode writes the subtree rooted at e as XML. When indent is true child
// elements are placed on their own lines; text content is never reflowed.
func Encode(w io.Writer, e *Element, indent bool) error {
	enc := xml.NewEncoder(w)
	if indent {
		enc.Indent("", "  ")
	}
	if err := encodeElement(enc, e); err != nil {
		return err
	}
	return enc.Flush()
}

// String returns the XML serialization of e without indentation.
func (e *Element) String() string {
	var buf bytes.Buffer
	if err := Encode(&buf, e, false); err != nil {
		return ""
	}
	return buf.String()
}

func encodeElement(enc *xml.Encoder, e *Element) error {
	if e.IsText() {
		return enc.EncodeToken(xml.CharData(e.Data))
	}
	start := xml.StartElement{Name: xml.Name{Local: e.Name}}
	for _, a := range e.attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range e.children {
		if err := encodeElement(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
