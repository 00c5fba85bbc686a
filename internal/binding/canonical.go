package binding

import (
	"cmp"
	"encoding/xml"
	"slices"
	"strconv"
	"strings"

	"aqwari.net/xml/xmltree"
)

// Canonical renders a document in a normalized form for comparison:
// attributes sorted, namespace declarations dropped, text trimmed, and
// whitespace-only text removed.
func Canonical(data []byte) (string, error) {
	el, err := xmltree.Parse(data)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	err = writeCanonical(&b, el, 0)
	if err != nil {
		return "", err
	}

	return b.String(), nil
}

func writeCanonical(b *strings.Builder, el *xmltree.Element, depth int) error {
	indent := strings.Repeat("  ", depth)

	b.WriteString(indent + "<" + canonicalName(el.Name))

	attrs := slices.Clone(el.StartElement.Attr)
	attrs = slices.DeleteFunc(attrs, func(a xml.Attr) bool { return isNamespaceDecl(a.Name) })
	slices.SortFunc(attrs, func(a, c xml.Attr) int {
		return cmp.Compare(canonicalName(a.Name), canonicalName(c.Name))
	})

	for _, a := range attrs {
		b.WriteString(" " + canonicalName(a.Name) + "=" + strconv.Quote(a.Value))
	}

	b.WriteString(">\n")

	chunks, err := textChunks(el.Content)
	if err != nil {
		return err
	}

	for i, chunk := range chunks {
		if text := strings.TrimSpace(chunk); text != "" {
			b.WriteString(indent + "  " + strconv.Quote(text) + "\n")
		}

		if i < len(el.Children) {
			err = writeCanonical(b, &el.Children[i], depth+1)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func canonicalName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}

	return "{" + n.Space + "}" + n.Local
}
