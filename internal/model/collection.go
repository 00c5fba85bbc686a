package model

import (
	"fmt"
	"strings"

	"wrapper-generator/internal/common"
)

// CollectionKind is the kind of container a repeated property is exposed as.
type CollectionKind int

const (
	CollectionUnset  CollectionKind = iota // not decided yet
	CollectionList                         // ordered, duplicates allowed
	CollectionSet                          // unordered, unique
	CollectionSorted                       // sorted, unique
)

// String returns the canonical interface name of the kind.
func (k CollectionKind) String() string {
	switch k {
	case CollectionUnset:
		return "unset"
	case CollectionList:
		return "List"
	case CollectionSet:
		return "Set"
	case CollectionSorted:
		return "SortedSet"
	default:
		return common.UnknownStr
	}
}

// Generic collection interface accepted for every kind.
const InterfaceCollection = "Collection"

// CollectionType is a collection kind plus the implementation requested for it.
type CollectionType struct {
	Kind CollectionKind
	Impl string // e.g., "ArrayList", "LinkedList", "TreeSet"
}

// String returns "Kind(Impl)".
func (c CollectionType) String() string {
	if c.Impl == "" {
		return c.Kind.String()
	}

	return c.Kind.String() + "(" + c.Impl + ")"
}

// collectionNames maps accepted spellings (lower case, package stripped) to types.
var collectionNames = map[string]CollectionType{
	"list":          {Kind: CollectionList, Impl: "ArrayList"},
	"arraylist":     {Kind: CollectionList, Impl: "ArrayList"},
	"linkedlist":    {Kind: CollectionList, Impl: "LinkedList"},
	"set":           {Kind: CollectionSet, Impl: "LinkedHashSet"},
	"hashset":       {Kind: CollectionSet, Impl: "HashSet"},
	"linkedhashset": {Kind: CollectionSet, Impl: "LinkedHashSet"},
	"sortedset":     {Kind: CollectionSorted, Impl: "TreeSet"},
	"sorted":        {Kind: CollectionSorted, Impl: "TreeSet"},
	"treeset":       {Kind: CollectionSorted, Impl: "TreeSet"},
}

// DefaultCollection is the built-in collection: an ordered list.
func DefaultCollection() CollectionType {
	return collectionNames["list"]
}

// ParseCollectionType parses a collection name such as "List", "SortedSet" or
// "java.util.LinkedList". Package qualifiers are ignored.
func ParseCollectionType(s string) (CollectionType, error) {
	name := strings.ToLower(strings.TrimSpace(common.PkgAlias(strings.TrimSpace(s))))
	if ct, ok := collectionNames[name]; ok {
		return ct, nil
	}

	return CollectionType{}, fmt.Errorf("unsupported collection type %q (want List, Set, SortedSet or one of their implementations)", s)
}

// DefaultInterface returns the interface a collection kind is exposed as.
func DefaultInterface(kind CollectionKind) string {
	if kind == CollectionUnset {
		return CollectionList.String()
	}

	return kind.String()
}

// ParseInterface validates a collection interface name and returns its canonical spelling.
func ParseInterface(s string) (string, error) {
	name := strings.ToLower(common.PkgAlias(strings.TrimSpace(s)))
	switch name {
	case "collection":
		return InterfaceCollection, nil
	case "list":
		return CollectionList.String(), nil
	case "set":
		return CollectionSet.String(), nil
	case "sortedset":
		return CollectionSorted.String(), nil
	default:
		return "", fmt.Errorf("unsupported collection interface %q (want Collection, List, Set or SortedSet)", s)
	}
}

// InterfaceAccepts returns true if a value of kind can be exposed through iface.
func InterfaceAccepts(iface string, kind CollectionKind) bool {
	switch iface {
	case InterfaceCollection:
		return true
	case CollectionList.String():
		return kind == CollectionList
	case CollectionSet.String():
		return kind == CollectionSet || kind == CollectionSorted
	case CollectionSorted.String():
		return kind == CollectionSorted
	default:
		return false
	}
}

// InstantiationMode is the policy for when a wrapper's container is allocated.
type InstantiationMode int

const (
	InstantiateUnset InstantiationMode = iota // not decided yet
	InstantiateEager                          // allocated at construction
	InstantiateLazy                           // allocated on first access
	InstantiateNone                           // never allocated by the accessor
)

// String returns the option spelling of the mode.
func (m InstantiationMode) String() string {
	switch m {
	case InstantiateUnset:
		return "unset"
	case InstantiateEager:
		return "eager"
	case InstantiateLazy:
		return "lazy"
	case InstantiateNone:
		return "none"
	default:
		return common.UnknownStr
	}
}

// ParseInstantiationMode parses "eager" (alias "early"), "lazy" or "none".
func ParseInstantiationMode(s string) (InstantiationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eager", "early":
		return InstantiateEager, nil
	case "lazy":
		return InstantiateLazy, nil
	case "none":
		return InstantiateNone, nil
	default:
		return InstantiateUnset, fmt.Errorf("unsupported instantiation mode %q (want eager, lazy or none)", s)
	}
}

// ParseContentKind parses the lower-case spelling used in model descriptions.
func ParseContentKind(s string) (ContentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "element":
		return ContentElement, nil
	case "any", "anytype":
		return ContentAny, nil
	case "mixed":
		return ContentMixed, nil
	case "reference", "ref":
		return ContentReference, nil
	case "text":
		return ContentText, nil
	default:
		return ContentElement, fmt.Errorf("unknown content kind %q", s)
	}
}
