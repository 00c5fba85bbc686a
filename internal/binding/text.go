package binding

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// textChunks splits the raw content of an element into the character data
// around its children: chunk i precedes child i and the last chunk trails.
func textChunks(content []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	chunks := []string{""}
	depth := 0

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			return chunks, nil
		}

		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				chunks = append(chunks, "")
			}
		case xml.CharData:
			if depth == 0 {
				chunks[len(chunks)-1] += string(t)
			}
		}
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}
