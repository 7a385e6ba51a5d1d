package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVenueCount(t *testing.T) {
	cases := []struct {
		label string
		want  int
		ok    bool
	}{
		{"Show 42 venues", 42, true},
		{"show 1 venue", 1, true},
		{"128 venues near you", 128, true},
		{"Show 0 venues", 0, false},
		{"Show venues", 0, false},
		{"", 0, false},
		{"venues: many", 0, false},
	}
	for _, tc := range cases {
		n, err := ParseVenueCount(tc.label)
		if !tc.ok {
			assert.Error(t, err, "label %q", tc.label)
			continue
		}
		require.NoError(t, err, "label %q", tc.label)
		assert.Equal(t, tc.want, n, "label %q", tc.label)
	}
}

func TestRootRelative(t *testing.T) {
	assert.True(t, RootRelative("/join"))
	assert.True(t, RootRelative("/venues?area=coast"))
	assert.False(t, RootRelative(""))
	assert.False(t, RootRelative("#"))
	assert.False(t, RootRelative("https://elsewhere.example/join"))
	assert.False(t, RootRelative("//cdn.example/asset"))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "core_elements", sanitizeName("core elements"))
	assert.Equal(t, "filter_toggling", sanitizeName(" filter toggling "))
	assert.Equal(t, "a_b_c", sanitizeName("a/b\\c"))
}
