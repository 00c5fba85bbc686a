package plan

import (
	"wrapper-generator/internal/control"
)

// ExportControl turns the resolved directives of a run into a control file.
// Wrapped candidates carry their final class, field, and reference names so
// the file reproduces the run.
func ExportControl(result *Result) (*control.File, error) {
	f := &control.File{Version: "1"}

	for _, c := range result.Candidates {
		pattern, err := control.ParsePattern(c.Path)
		if err != nil {
			return nil, err
		}

		entry := control.Entry{Pattern: pattern, Action: control.ActionNoWrap}

		if !c.Wrapped() {
			f.Entries = append(f.Entries, entry)
			continue
		}

		entry.Action = control.ActionWrap
		entry.Settings = c.Directive.Settings()

		if c.Wrapper != nil {
			className := c.Wrapper.ID.Name
			fieldName := c.Property.Name
			entry.Settings.ClassName = &className
			entry.Settings.FieldName = &fieldName
		}

		if c.Reference != nil {
			refName := c.Reference.Name
			entry.Settings.Property = &refName
		}

		f.Entries = append(f.Entries, entry)
	}

	return f, nil
}

// ExportControlYAML generates the exported control file as YAML.
func ExportControlYAML(result *Result) ([]byte, error) {
	f, err := ExportControl(result)
	if err != nil {
		return nil, err
	}

	return control.Marshal(f)
}
