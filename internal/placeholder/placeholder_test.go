package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "Hello there.", nil},
		{"printf", "You got %d coins, %s!", []string{"%d", "%s"}},
		{"indexed", "{1} meets {0}", []string{"{1}", "{0}"}},
		{"named", "Hi ${name}.", []string{"${name}"}},
		{"percent literal", "100%% sure", []string{"%%"}},
		{"width", "%2d left", []string{"%2d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Find(tt.text))
		})
	}
}

func TestDiff(t *testing.T) {
	missing, extra := Diff("%s has %d items, %s", "%s tiene %d")
	assert.Equal(t, []string{"%s"}, missing)
	assert.Empty(t, extra)

	missing, extra = Diff("{0}", "{0} {1}")
	assert.Empty(t, missing)
	assert.Equal(t, []string{"{1}"}, extra)

	missing, extra = Diff("plain", "simple")
	assert.Empty(t, missing)
	assert.Empty(t, extra)
}
