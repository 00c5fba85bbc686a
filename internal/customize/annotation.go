package customize

import (
	"bytes"
	"encoding/xml"
	"errors"

	"aqwari.net/xml/xmltree"

	"wrapper-generator/internal/control"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/model"
)

// Namespace is the XML namespace of wrapper customization annotations.
const Namespace = "http://github.com/jaxb-xew-plugin"

// prefix is the conventional prefix, accepted even when not declared.
const prefix = "xew"

// ParseAnnotations reads the wrapper customizations from raw annotation
// snippets such as
//
//	<xew:xew xmlns:xew="http://github.com/jaxb-xew-plugin" collection="LinkedList" plural="true"/>
//
// Foreign elements are ignored. Later snippets override earlier ones.
// path names the annotated component in errors.
func ParseAnnotations(path string, raw []string) (control.Settings, bool, error) {
	var (
		out   control.Settings
		found bool
	)

	for _, snippet := range raw {
		root, err := parseSnippet(snippet)
		if err != nil {
			return control.Settings{}, false, &diagnostic.ConfigurationError{
				Source: "annotation",
				Path:   path,
				Reason: "malformed annotation",
				Err:    err,
			}
		}

		for i := range root.Children {
			el := &root.Children[i]
			if !isWrapperElement(el.Name) {
				continue
			}

			found = true

			err := applyAttrs(&out, el.StartElement.Attr)
			if err != nil {
				return control.Settings{}, false, annotationError(path, err)
			}
		}
	}

	return out, found, nil
}

// parseSnippet parses a snippet inside a root that declares the xew prefix,
// so annotations relying on an outer declaration still resolve.
// ValidateAnnotations parses the annotations of every class and property of
// m, candidates or not, and returns the first error.
func ValidateAnnotations(m *model.Model) error {
	for _, c := range m.Classes {
		_, _, err := ParseAnnotations(c.QualifiedName(), c.Annotations)
		if err != nil {
			return err
		}

		for _, p := range c.Properties {
			_, _, err = ParseAnnotations(p.Path(), p.Annotations)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func parseSnippet(snippet string) (*xmltree.Element, error) {
	var buf bytes.Buffer

	buf.WriteString(`<annotation xmlns:` + prefix + `="` + Namespace + `">`)
	buf.WriteString(snippet)
	buf.WriteString(`</annotation>`)

	return xmltree.Parse(buf.Bytes())
}

func isWrapperElement(name xml.Name) bool {
	return name.Local == prefix && (name.Space == Namespace || name.Space == prefix)
}

type attrError struct {
	name  string
	value string
	err   error
}

func (e *attrError) Error() string {
	return e.err.Error()
}

func applyAttrs(s *control.Settings, attrs []xml.Attr) error {
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}

		err := s.Set(a.Name.Local, a.Value)
		if err != nil {
			return &attrError{name: a.Name.Local, value: a.Value, err: err}
		}
	}

	return nil
}

func annotationError(path string, err error) error {
	ce := &diagnostic.ConfigurationError{Source: "annotation", Path: path, Err: err}

	var ae *attrError
	if errors.As(err, &ae) {
		ce.Option = ae.name
		ce.Value = ae.value
		ce.Err = ae.err
	}

	return ce
}
