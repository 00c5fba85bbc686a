package control

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cast"

	"wrapper-generator/internal/model"
	"wrapper-generator/internal/naming"
)

// Action is the directive token of a control entry.
type Action int

const (
	ActionCustomize Action = iota // only adjust settings
	ActionWrap                    // wrap the property
	ActionNoWrap                  // leave the property alone
)

// String returns the canonical token of the action.
func (a Action) String() string {
	switch a {
	case ActionCustomize:
		return "customize"
	case ActionWrap:
		return "wrap"
	case ActionNoWrap:
		return "nowrap"
	default:
		return "unknown"
	}
}

// ParseAction parses a directive token. "include" and "exclude" are accepted
// as aliases of wrap and nowrap.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customize", "default":
		return ActionCustomize, nil
	case "wrap", "include":
		return ActionWrap, nil
	case "nowrap", "exclude":
		return ActionNoWrap, nil
	default:
		return ActionCustomize, fmt.Errorf("unknown directive %q (want wrap, nowrap, include, exclude or customize)", s)
	}
}

// Settings is a partial wrapping directive. Nil fields are not set at this
// layer and fall through to the next one.
type Settings struct {
	Wrap        *bool
	Collection  *model.CollectionType
	Interface   *string
	Instantiate *model.InstantiationMode
	Plural      *bool
	ClassName   *string
	FieldName   *string
	Property    *string
	Nested      *bool
}

// Keys accepted by Settings.Set, in canonical spelling.
const (
	KeyWrap        = "wrap"
	KeyCollection  = "collection"
	KeyInterface   = "collectionInterface"
	KeyInstantiate = "instantiate"
	KeyPlural      = "plural"
	KeyClassName   = "class"
	KeyFieldName   = "field"
	KeyProperty    = "property"
	KeyNested      = "nested"
)

// Keys returns the canonical setting keys.
func Keys() []string {
	return []string{
		KeyWrap, KeyCollection, KeyInterface, KeyInstantiate, KeyPlural,
		KeyClassName, KeyFieldName, KeyProperty, KeyNested,
	}
}

// ErrUnknownKey is returned by Settings.Set for keys it does not know.
var ErrUnknownKey = errors.New("unknown setting")

// CanonicalKey maps accepted spellings of a setting to its canonical key.
// Returns "" for unknown keys.
func CanonicalKey(key string) string {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "wrap":
		return KeyWrap
	case "collection", "collectiontype":
		return KeyCollection
	case "collectioninterface", "interface":
		return KeyInterface
	case "instantiate", "instantiation":
		return KeyInstantiate
	case "plural":
		return KeyPlural
	case "class", "classname", "name":
		return KeyClassName
	case "field", "fieldname":
		return KeyFieldName
	case "property", "propertyname":
		return KeyProperty
	case "nested":
		return KeyNested
	default:
		return ""
	}
}

// Set parses value for key and stores it. An empty value for a boolean key
// means true.
func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch CanonicalKey(key) {
	case KeyWrap:
		return setBool(&s.Wrap, value)
	case KeyPlural:
		return setBool(&s.Plural, value)
	case KeyNested:
		return setBool(&s.Nested, value)
	case KeyCollection:
		ct, err := model.ParseCollectionType(value)
		if err != nil {
			return err
		}

		s.Collection = &ct
	case KeyInterface:
		iface, err := model.ParseInterface(value)
		if err != nil {
			return err
		}

		s.Interface = &iface
	case KeyInstantiate:
		mode, err := model.ParseInstantiationMode(value)
		if err != nil {
			return err
		}

		s.Instantiate = &mode
	case KeyClassName:
		return setIdent(&s.ClassName, value)
	case KeyFieldName:
		return setIdent(&s.FieldName, value)
	case KeyProperty:
		return setIdent(&s.Property, value)
	default:
		return fmt.Errorf("%w %q%s", ErrUnknownKey, key, naming.DidYouMean(key, Keys()))
	}

	return nil
}

// IsEmpty returns true if no field is set.
func (s *Settings) IsEmpty() bool {
	return s.Wrap == nil && s.Collection == nil && s.Interface == nil && s.Instantiate == nil &&
		s.Plural == nil && s.ClassName == nil && s.FieldName == nil && s.Property == nil && s.Nested == nil
}

// Pairs returns the set fields as canonical key/value pairs in a fixed order.
func (s *Settings) Pairs() [][2]string {
	var out [][2]string

	add := func(key, value string) {
		out = append(out, [2]string{key, value})
	}

	if s.Wrap != nil {
		add(KeyWrap, cast.ToString(*s.Wrap))
	}

	if s.Collection != nil {
		add(KeyCollection, s.Collection.Impl)
	}

	if s.Interface != nil {
		add(KeyInterface, *s.Interface)
	}

	if s.Instantiate != nil {
		add(KeyInstantiate, s.Instantiate.String())
	}

	if s.Plural != nil {
		add(KeyPlural, cast.ToString(*s.Plural))
	}

	if s.ClassName != nil {
		add(KeyClassName, *s.ClassName)
	}

	if s.FieldName != nil {
		add(KeyFieldName, *s.FieldName)
	}

	if s.Property != nil {
		add(KeyProperty, *s.Property)
	}

	if s.Nested != nil {
		add(KeyNested, cast.ToString(*s.Nested))
	}

	return out
}

func setBool(dst **bool, value string) error {
	if value == "" {
		v := true
		*dst = &v

		return nil
	}

	v, err := cast.ToBoolE(value)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", value)
	}

	*dst = &v

	return nil
}

func setIdent(dst **string, value string) error {
	if !isValidIdent(value) {
		return fmt.Errorf("invalid identifier %q", value)
	}

	*dst = &value

	return nil
}

// isValidIdent checks if a string is a valid identifier.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}

		return false
	}

	return true
}

// Entry is one control file line or YAML item.
type Entry struct {
	Pattern  Pattern
	Action   Action
	Settings Settings
	Source   string
	Line     int
}

// File is a parsed control file.
type File struct {
	Source  string
	Version string
	Entries []Entry
	// Plurals extends the built-in pluralization tables.
	Plurals *naming.PluralRules
}
