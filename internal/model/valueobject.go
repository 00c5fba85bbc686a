package model

import "strings"

// ImplFor derives the implementation name of class name from the value object
// of a sibling class: "impl.PublisherImpl" for Publisher gives
// "impl.ArticlesImpl" for Articles.
func (v *ValueObject) ImplFor(sibling, name string) string {
	return implName(v.Impl, sibling, name)
}

func implName(impl, oldName, newName string) string {
	if idx := strings.LastIndex(impl, oldName); idx >= 0 {
		return impl[:idx] + newName + impl[idx+len(oldName):]
	}

	prefix := ""
	if idx := strings.LastIndex(impl, "."); idx >= 0 {
		prefix = impl[:idx+1]
	}

	return prefix + newName + "Impl"
}
