package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRepeat(t *testing.T) {
	tests := []struct {
		name string
		expr string
		kind Kind // empty means valid
	}{
		{"identifier", "item in items", ""},
		{"track by", "item in items track by item.id", ""},
		{"key value", "(key, val) in items", ""},
		{"key value tight", "(k,v) in obj", ""},
		{"alias", "item in items | filter:q as results", ""},
		{"alias and track by", "item in items as results track by $index", ""},
		{"padding", "  item in items  ", ""},
		{"multiline", "item\n in\n items", ""},
		{"missing in", "item of items", KindSyntax},
		{"empty", "", KindSyntax},
		{"bad lhs", "a.b in items", KindLHS},
		{"bad pair", "(a, b, c) in items", KindLHS},
		{"track by twice", "item in items track by item.id track by item.name", KindTrackByLast},
		{"alias after track by", "item in items track by item.id as list", KindTrackByLast},
		{"reserved alias", "item in items as $index", KindAlias},
		{"reserved word alias", "item in items as this", KindAlias},
		{"invalid alias", "item in items as 1abc", KindAlias},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRepeat(tt.expr)
			if tt.kind == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.kind, err.Kind)
			assert.NotEmpty(t, err.Error())
		})
	}
}

func TestValidateRepeatQuotesOffendingText(t *testing.T) {
	err := ValidateRepeat("item of items")
	require.NotNil(t, err)
	assert.Equal(t, "item of items", err.Text)
	assert.Contains(t, err.Message, "'item of items'")

	err = ValidateRepeat("a.b in items")
	require.NotNil(t, err)
	assert.Equal(t, "a.b", err.Text)
}

func TestParseRepeat(t *testing.T) {
	r, err := ParseRepeat("(id, user) in users | orderBy:'name' as shown track by id")
	require.Nil(t, err)
	assert.Equal(t, "id", r.Key)
	assert.Equal(t, "user", r.Value)
	assert.Equal(t, "users | orderBy:'name'", r.Collection)
	assert.Equal(t, "shown", r.Alias)
	assert.Equal(t, "id", r.TrackBy)

	r, err = ParseRepeat("x in xs")
	require.Nil(t, err)
	assert.Equal(t, "x", r.Value)
	assert.Empty(t, r.Key)
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name string
		expr string
		kind Kind
	}{
		{"label for value", "item.name for item in items", ""},
		{"select as", "item.id as item.name for item in items", ""},
		{"group by", "item.name group by item.group for item in items", ""},
		{"disable when", "item.name disable when item.off for item in items", ""},
		{"key value", "value for (key, value) in obj", ""},
		{"track by", "item.name for item in items track by item.id", ""},
		{"all clauses", "i.name group by i.g disable when i.d for i in list track by i.id", ""},
		{"missing for", "item.name in items", KindSyntax},
		{"empty", "", KindSyntax},
		{"select as with track by", "item.id as item.name for item in items track by item.id", KindSelectAsTrackBy},
		{"select as with track by, malformed", "a as b track by c", KindSelectAsTrackBy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOptions(tt.expr)
			if tt.kind == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.kind, err.Kind)
		})
	}
}

func TestParseOptions(t *testing.T) {
	o, err := ParseOptions("c.id as c.label group by c.kind disable when c.off for (k, c) in choices track by k")
	require.Nil(t, err)
	assert.Equal(t, "c.id", o.Select)
	assert.Equal(t, "c.label", o.Label)
	assert.Equal(t, "c.kind", o.GroupBy)
	assert.Equal(t, "c.off", o.DisableWhen)
	assert.Equal(t, "k", o.Key)
	assert.Equal(t, "c", o.Value)
	assert.Equal(t, "choices", o.Collection)
	assert.Equal(t, "k", o.TrackBy)
}
