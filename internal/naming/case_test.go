package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"user_profile", []string{"user", "profile"}},
		{"getUserById", []string{"get", "User", "By", "Id"}},
		{"APIClient", []string{"API", "Client"}},
		{"userIDs", []string{"user", "IDs"}},
		{"v2beta", []string{"v2", "beta"}},
		{"pet-store.v1", []string{"pet", "store", "v1"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.in))
		})
	}
}

func TestToCase(t *testing.T) {
	tests := []struct {
		in     string
		casing Casing
		want   string
	}{
		{"user_profile", PascalCase, "UserProfile"},
		{"user_profile", CamelCase, "userProfile"},
		{"UserProfile", SnakeCase, "user_profile"},
		{"UserProfile", ScreamingSnakeCase, "USER_PROFILE"},
		{"APIClient", PascalCase, "ApiClient"},
		{"user_profile", Preserve, "user_profile"},
		{"  spaced  ", Preserve, "spaced"},
		{"ÉtatCivil", SnakeCase, "état_civil"},
	}
	for _, tt := range tests {
		t.Run(string(tt.casing)+"/"+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCase(tt.in, tt.casing))
		})
	}
}

func TestParseCasing(t *testing.T) {
	c, ok := ParseCasing("camelCase")
	assert.True(t, ok)
	assert.Equal(t, CamelCase, c)

	c, ok = ParseCasing("")
	assert.True(t, ok)
	assert.Equal(t, Preserve, c)

	_, ok = ParseCasing("kebab-case")
	assert.False(t, ok)
}
