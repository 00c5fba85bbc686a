package control

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/naming"
)

const filePerm = 0o644

// LoadFile loads a control file, choosing the format by extension.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &diagnostic.ConfigurationError{
			Source: path,
			Option: "control",
			Value:  path,
			Reason: "failed to read control file",
			Err:    err,
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	default:
		return ParseLines(path, data)
	}
}

// ParseLines parses the line format. source names the file in errors.
func ParseLines(source string, data []byte) (*File, error) {
	f := &File{Source: source, Version: "1"}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		entry, err := parseLine(source, lineNo, line)
		if err != nil {
			return nil, err
		}

		f.Entries = append(f.Entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, &diagnostic.ConfigurationError{Source: source, Line: lineNo, Reason: "failed to read control file", Err: err}
	}

	return f, nil
}

func parseLine(source string, lineNo int, line string) (Entry, error) {
	fail := func(path, option, value, reason string, err error) (Entry, error) {
		return Entry{}, &diagnostic.ConfigurationError{
			Source: source, Line: lineNo, Path: path, Option: option, Value: value, Reason: reason, Err: err,
		}
	}

	lhs, rhs, ok := strings.Cut(line, "=")
	if !ok {
		return fail("", "", "", "expected \"<path> = <directive> [key=value ...]\"", nil)
	}

	pattern, err := ParsePattern(lhs)
	if err != nil {
		return fail(strings.TrimSpace(lhs), "", "", "malformed path", err)
	}

	fields := strings.Fields(rhs)
	if len(fields) == 0 {
		return fail(pattern.String(), "", "", "missing directive", nil)
	}

	action, err := ParseAction(fields[0])
	if err != nil {
		return fail(pattern.String(), "", "", "", err)
	}

	entry := Entry{Pattern: pattern, Action: action, Source: source, Line: lineNo}
	applyAction(&entry)

	for _, kv := range fields[1:] {
		key, value, _ := strings.Cut(kv, "=")

		err := entry.Settings.Set(key, value)
		if err != nil {
			return fail(pattern.String(), key, value, "", err)
		}
	}

	return entry, nil
}

func applyAction(e *Entry) {
	switch e.Action {
	case ActionWrap:
		v := true
		e.Settings.Wrap = &v
	case ActionNoWrap:
		v := false
		e.Settings.Wrap = &v
	case ActionCustomize:
	}
}

// yamlFile is the YAML form of a control file.
type yamlFile struct {
	Version    string              `yaml:"version"`
	Properties []yaml.Node         `yaml:"properties"`
	Plurals    *naming.PluralRules `yaml:"plurals,omitempty"`
}

// ParseYAML parses the YAML format. source names the file in errors.
func ParseYAML(source string, data []byte) (*File, error) {
	var yf yamlFile

	err := yaml.Unmarshal(data, &yf)
	if err != nil {
		return nil, &diagnostic.ConfigurationError{Source: source, Reason: "failed to parse control YAML", Err: err}
	}

	f := &File{Source: source, Version: yf.Version, Plurals: yf.Plurals}
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range yf.Properties {
		entry, err := parseNode(source, &yf.Properties[i])
		if err != nil {
			return nil, err
		}

		f.Entries = append(f.Entries, entry)
	}

	return f, nil
}

type setting struct {
	key   string
	value string
	line  int
}

// parseNode converts one item of the properties list. Keys other than path
// and action are settings.
func parseNode(source string, node *yaml.Node) (Entry, error) {
	entry := Entry{Source: source, Line: node.Line}

	if node.Kind != yaml.MappingNode {
		return Entry{}, &diagnostic.ConfigurationError{Source: source, Line: node.Line, Reason: "property entry must be a mapping"}
	}

	var path, action string

	var settings []setting

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return Entry{}, &diagnostic.ConfigurationError{
				Source: source, Line: value.Line, Option: key.Value, Reason: "value must be a scalar",
			}
		}

		switch key.Value {
		case "path":
			path = value.Value
		case "action", "directive":
			action = value.Value
		default:
			settings = append(settings, setting{key: key.Value, value: value.Value, line: value.Line})
		}
	}

	pattern, err := ParsePattern(path)
	if err != nil {
		return Entry{}, &diagnostic.ConfigurationError{Source: source, Line: node.Line, Path: path, Reason: "malformed path", Err: err}
	}

	entry.Pattern = pattern

	if action != "" {
		entry.Action, err = ParseAction(action)
		if err != nil {
			return Entry{}, &diagnostic.ConfigurationError{Source: source, Line: node.Line, Path: path, Err: err}
		}
	}

	applyAction(&entry)

	for _, s := range settings {
		err := entry.Settings.Set(s.key, s.value)
		if err != nil {
			return Entry{}, &diagnostic.ConfigurationError{
				Source: source, Line: s.line, Path: path, Option: s.key, Value: s.value, Err: err,
			}
		}
	}

	return entry, nil
}

// Marshal serializes a control file to YAML.
func Marshal(f *File) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	appendScalar(doc, "version", f.Version)

	props := &yaml.Node{Kind: yaml.SequenceNode}
	for _, e := range f.Entries {
		item := &yaml.Node{Kind: yaml.MappingNode}
		appendScalar(item, "path", e.Pattern.String())
		appendScalar(item, "action", e.Action.String())

		for _, kv := range e.Settings.Pairs() {
			if kv[0] == KeyWrap && e.Action != ActionCustomize {
				continue
			}

			appendScalar(item, kv[0], kv[1])
		}

		props.Content = append(props.Content, item)
	}

	doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "properties"}, props)

	if f.Plurals != nil {
		var plurals yaml.Node

		err := plurals.Encode(f.Plurals)
		if err != nil {
			return nil, fmt.Errorf("failed to encode plural rules: %w", err)
		}

		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "plurals"}, &plurals)
	}

	return yaml.Marshal(doc)
}

func appendScalar(n *yaml.Node, key, value string) {
	n.Content = append(n.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}

// WriteFile writes a control file as YAML to path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal control file: %w", err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write control file %s: %w", path, err)
	}

	return nil
}
