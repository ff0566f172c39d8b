package directive

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lex00/nghint/attr"
)

func TestCanonicalIsSortedAndDashed(t *testing.T) {
	assert.True(t, sort.StringsAreSorted(Canonical), "Canonical must stay sorted")
	for _, name := range Canonical {
		assert.True(t, strings.HasPrefix(name, "ng-"), name)
		assert.Equal(t, name, attr.Denormalize(attr.Normalize(name)), "%s must survive a round trip", name)
	}
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical("ng-repeat"))
	assert.False(t, IsCanonical("ngRepeat"))
	assert.False(t, IsCanonical("ng-claass"))
}

func TestTablesUseNormalizedKeys(t *testing.T) {
	check := func(key string) {
		assert.Equal(t, key, attr.Normalize(attr.Denormalize(key)), key)
	}
	for old, repl := range Deprecated {
		check(old)
		check(repl)
	}
	for key := range AllowedEmpty {
		check(key)
		assert.True(t, IsCanonical(attr.Denormalize(key)), key)
	}
	for _, key := range Events {
		check(key)
		assert.True(t, IsCanonical(attr.Denormalize(key)), key)
	}
	for _, groups := range [][][]string{Exclusive, NativePairs, AliasPairs} {
		for _, group := range groups {
			for _, key := range group {
				check(key)
			}
		}
	}
	for _, req := range Requirements {
		for _, key := range append(append([]string{}, req.Keys...), req.Parents...) {
			assert.True(t, IsCanonical(attr.Denormalize(key)), key)
		}
	}
}
