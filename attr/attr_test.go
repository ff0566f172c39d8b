package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"dashed", "ng-repeat", "ngRepeat"},
		{"data prefix", "data-ng-repeat", "ngRepeat"},
		{"x prefix", "x-ng-repeat", "ngRepeat"},
		{"upper-case prefix", "DATA-ng-repeat", "ngRepeat"},
		{"x with colon", "x:ng:repeat", "ngRepeat"},
		{"colon", "ng:repeat", "ngRepeat"},
		{"underscore", "ng_repeat", "ngRepeat"},
		{"mixed separators", "ng-bind_html:unsafe", "ngBindHtmlUnsafe"},
		{"separator run", "ng--show", "ngShow"},
		{"leading separator", "-ng-show", "ngShow"},
		{"single trailing separator", "ng-", "ng-"},
		{"trailing separator run", "ng--", "ng-"},
		{"native attribute", "href", "href"},
		{"moz hack", "moz-box-sizing", "MozBoxSizing"},
		{"moz without boundary", "mozilla", "mozilla"},
		{"prefix only once", "data-data-foo", "dataFoo"},
		{"empty", "", ""},
		{"prefix without name", "data-", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, raw := range []string{"x-ng-repeat", "data-ng-repeat", "ng:repeat", "ng_repeat", "ng-repeat", "ng-class-even"} {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), raw)
	}
}

func TestDenormalize(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"ngRepeat", "ng-repeat"},
		{"ngBindHtmlUnsafe", "ng-bind-html-unsafe"},
		{"href", "href"},
		{"MozBoxSizing", "moz-box-sizing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Denormalize(tt.key))
		})
	}
}

func TestDenormalizeRoundTrip(t *testing.T) {
	for _, raw := range []string{"ng-repeat", "ng-class-odd", "ng-model-options"} {
		assert.Equal(t, raw, Denormalize(Normalize(raw)))
	}
}

func TestIsLegacy(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"ng-repeat", false},
		{"data-ng-repeat", false},
		{"x-ng-repeat", true},
		{"X-ng-repeat", true},
		{"ng:repeat", true},
		{"ng_repeat", true},
		{"xml", false},
		{"x", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLegacy(tt.raw))
		})
	}
}

func TestIsDirective(t *testing.T) {
	assert.True(t, IsDirective("ngRepeat"))
	assert.True(t, IsDirective(Normalize("data-ng-show")))
	assert.False(t, IsDirective("ng"))
	assert.False(t, IsDirective("ngrepeat"))
	assert.False(t, IsDirective("href"))
	assert.False(t, IsDirective("angularThing"))
}
