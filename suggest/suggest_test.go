package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/nghint/directive"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // expected candidate, empty for none
	}{
		{"doubled letter", "ng-claass", "ng-class"},
		{"transposed", "ng-mdoel", "ng-model"},
		{"missing letter", "ng-reeat", "ng-repeat"},
		{"distant name", "ng-zzzzzzz", ""},
		{"custom directive", "ng-my-widget-thing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(tt.in, directive.Canonical)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestSuggestKeepsListOrder(t *testing.T) {
	list := []string{"ng-sho", "ng-hide", "ng-show"}
	assert.Equal(t, []string{"ng-sho", "ng-show"}, Suggest("ng-shw", list))
}

func TestSuggestSkipsExactMatch(t *testing.T) {
	assert.NotContains(t, Suggest("ng-show", directive.Canonical), "ng-show")
}

func TestSuggestLengthBound(t *testing.T) {
	// shares every character but is four longer
	assert.Empty(t, Suggest("ng-if", []string{"ng-ifffff"}))
}

func TestComplete(t *testing.T) {
	got := Complete("ng-cl", directive.Canonical)
	require.NotEmpty(t, got)
	assert.Contains(t, got, "ng-class")
	assert.Contains(t, got, "ng-click")
	assert.True(t, strings.HasPrefix(got[0], "ng-cl"))

	seenTail := false
	for _, c := range got {
		if !strings.HasPrefix(c, "ng-cl") {
			seenTail = true
			continue
		}
		assert.False(t, seenTail, "prefix match %q listed after a fuzzy match", c)
	}
}

func TestCompleteIsCaseInsensitive(t *testing.T) {
	assert.Contains(t, Complete("NG-REP", directive.Canonical), "ng-repeat")
}

func TestCompleteEmptyPrefix(t *testing.T) {
	assert.Equal(t, directive.Canonical, Complete("", directive.Canonical))
}

func TestSuggestSingleDeletion(t *testing.T) {
	// dropping any one inner character of a canonical name still finds it
	for _, name := range directive.Canonical {
		for i := 3; i < len(name)-1; i++ {
			typo := name[:i] + name[i+1:]
			assert.Contains(t, Suggest(typo, directive.Canonical), name, "typo %q", typo)
		}
	}
}

func TestSharedChars(t *testing.T) {
	assert.Equal(t, 7, sharedChars("ng-nit", "ng-init"), "repeated letters count each time")
	assert.Equal(t, 4, sharedChars("ng-shw", "ng-hide"))
}
