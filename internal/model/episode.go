package model

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Episode is the ordered set of class references reusable across runs.
// WriteEpisode and ReadEpisode persist it as YAML.
type Episode struct {
	refs []string
}

// NewEpisode creates an empty episode.
func NewEpisode() *Episode {
	return &Episode{}
}

// Add registers ref. Returns false if it was already present.
func (e *Episode) Add(ref string) bool {
	if e.Contains(ref) {
		return false
	}

	e.refs = append(e.refs, ref)

	return true
}

// Remove deregisters ref. Returns false if it was not present.
func (e *Episode) Remove(ref string) bool {
	idx := e.index(ref)
	if idx < 0 {
		return false
	}

	e.refs = slices.Delete(e.refs, idx, idx+1)
	if len(e.refs) == 0 {
		e.refs = nil
	}

	return true
}

// Contains returns true if ref is registered.
func (e *Episode) Contains(ref string) bool {
	return e.index(ref) >= 0
}

// Refs returns a copy of the registered references in registration order.
func (e *Episode) Refs() []string {
	return slices.Clone(e.refs)
}

// Len returns the number of registered references.
func (e *Episode) Len() int {
	return len(e.refs)
}

func (e *Episode) index(ref string) int {
	return slices.Index(e.refs, ref)
}

// episodeFile is the persisted form of an episode.
type episodeFile struct {
	Classes []string `yaml:"classes"`
}

// WriteEpisode writes the episode as YAML to path.
func WriteEpisode(path string, e *Episode) error {
	data, err := yaml.Marshal(episodeFile{Classes: e.Refs()})
	if err != nil {
		return fmt.Errorf("failed to encode episode: %w", err)
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write episode: %w", err)
	}

	return nil
}

// ReadEpisode reads the class references of an episode written by WriteEpisode.
func ReadEpisode(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read episode: %w", err)
	}

	var f episodeFile

	err = yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse episode %s: %w", path, err)
	}

	return f.Classes, nil
}
