package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollectionType(t *testing.T) {
	tests := []struct {
		in   string
		want CollectionType
	}{
		{"List", CollectionType{Kind: CollectionList, Impl: "ArrayList"}},
		{"java.util.LinkedList", CollectionType{Kind: CollectionList, Impl: "LinkedList"}},
		{"Set", CollectionType{Kind: CollectionSet, Impl: "LinkedHashSet"}},
		{"HashSet", CollectionType{Kind: CollectionSet, Impl: "HashSet"}},
		{"SortedSet", CollectionType{Kind: CollectionSorted, Impl: "TreeSet"}},
		{"java.util.TreeSet", CollectionType{Kind: CollectionSorted, Impl: "TreeSet"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCollectionType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCollectionType("badvalue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "badvalue")
}

func TestParseInstantiationMode(t *testing.T) {
	for in, want := range map[string]InstantiationMode{
		"eager": InstantiateEager,
		"early": InstantiateEager,
		"LAZY":  InstantiateLazy,
		"none":  InstantiateNone,
	} {
		got, err := ParseInstantiationMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseInstantiationMode("invalid")
	require.Error(t, err)
}

func TestInterfaceAccepts(t *testing.T) {
	assert.True(t, InterfaceAccepts(InterfaceCollection, CollectionSorted))
	assert.True(t, InterfaceAccepts("List", CollectionList))
	assert.False(t, InterfaceAccepts("List", CollectionSet))
	assert.True(t, InterfaceAccepts("Set", CollectionSorted))
	assert.False(t, InterfaceAccepts("SortedSet", CollectionSet))

	iface, err := ParseInterface("java.util.Collection")
	require.NoError(t, err)
	assert.Equal(t, InterfaceCollection, iface)

	_, err = ParseInterface("Map")
	require.Error(t, err)
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "Mixed", ContentMixed.String())
	assert.Equal(t, "ContentKind(9)", ContentKind(9).String())
	assert.Equal(t, "SortedSet", CollectionSorted.String())
	assert.Equal(t, "unknown", CollectionKind(9).String())
	assert.Equal(t, "lazy", InstantiateLazy.String())
	assert.Equal(t, "0..*", Occurs{Min: 0, Max: Unbounded}.String())
	assert.Equal(t, "p.A", ClassID{Package: "p", Name: "A"}.String())
}
