package naming

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/oaserrors"
)

func TestPolicyApply(t *testing.T) {
	tests := []struct {
		name     string
		template string
		casing   Casing
		raw      string
		want     string
	}{
		{"default pascal", "", PascalCase, "user_profile", "UserProfile"},
		{"zod prefix", "z{{name}}", CamelCase, "user_profile", "zUserProfile"},
		{"valibot prefix", "v{{name}}", CamelCase, "Pet", "vPet"},
		{"request data", "{{name}}Data", PascalCase, "getUser", "GetUserData"},
		{"transformer", "{{name}}SchemaResponseTransformer", CamelCase, "Pet", "petSchemaResponseTransformer"},
		{"preserve keeps raw", "{{name}}", Preserve, "my_type", "my_type"},
		{"template func", "{{pascalCase .Name}}Dto", Preserve, "pet_store", "PetStoreDto"},
		{"leading digit", "{{name}}", PascalCase, "2fa", "_2Fa"},
		{"reserved word", "{{name}}", CamelCase, "Delete", "delete_"},
		{"invalid chars", "{{name}}", Preserve, "a.b", "a_b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPolicy(tt.template, tt.casing)
			require.NoError(t, err)
			got, err := p.Apply(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPolicy_Errors(t *testing.T) {
	_, err := NewPolicy("{{name", PascalCase)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	_, err = NewPolicy("Fixed", PascalCase)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	_, err = NewPolicy("{{name}}", Casing("kebab"))
	var cfgErr *oaserrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "casing", cfgErr.Option)
}

func TestZeroPolicy(t *testing.T) {
	got, err := Policy{}.Apply("Pet")
	require.NoError(t, err)
	assert.Equal(t, "Pet", got)
}

func TestSafeIdentifier(t *testing.T) {
	assert.Equal(t, "_", SafeIdentifier(""))
	assert.Equal(t, "Pet", SafeIdentifier("Pet"))
	assert.Equal(t, "string_", SafeIdentifier("string"))
	assert.True(t, IsIdentifier("$ref_1"))
	assert.False(t, IsIdentifier("1a"))
	assert.True(t, IsReservedWord("interface"))
}
