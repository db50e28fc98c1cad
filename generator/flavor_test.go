package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/oaserrors"
)

func TestParseFlavor(t *testing.T) {
	tests := []struct {
		in   string
		want Flavor
	}{
		{"typescript", FlavorTypeScript},
		{"ZOD", FlavorZod},
		{" zod-mini ", FlavorZodMini},
		{"Valibot", FlavorValibot},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFlavor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFlavor("io-ts")
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
	assert.Contains(t, err.Error(), "io-ts")
}

func TestParseFlavors(t *testing.T) {
	got, err := ParseFlavors("typescript,zod", "transformers", "")
	require.NoError(t, err)
	assert.Equal(t, []Flavor{FlavorTypeScript, FlavorZod, FlavorTransformers}, got)

	_, err = ParseFlavors("zod,nope")
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestFlavorFileName(t *testing.T) {
	assert.Equal(t, "types.gen.ts", FlavorTypeScript.FileName())
	assert.Equal(t, "zod.gen.ts", FlavorZod.FileName())
	assert.Equal(t, "zod.gen.ts", FlavorZodV3.FileName())
	assert.Equal(t, "zod.gen.ts", FlavorZodMini.FileName())
	assert.Equal(t, "valibot.gen.ts", FlavorValibot.FileName())
	assert.Equal(t, "transformers.gen.ts", FlavorTransformers.FileName())
}

func TestNormalizeFlavors(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		got, err := normalizeFlavors(nil)
		require.NoError(t, err)
		assert.Equal(t, []Flavor{FlavorTypeScript}, got)
	})

	t.Run("ordered and deduped", func(t *testing.T) {
		got, err := normalizeFlavors([]Flavor{FlavorTransformers, FlavorValibot, FlavorTypeScript, FlavorValibot})
		require.NoError(t, err)
		assert.Equal(t, []Flavor{FlavorTypeScript, FlavorValibot, FlavorTransformers}, got)
	})

	t.Run("zod conflict", func(t *testing.T) {
		_, err := normalizeFlavors([]Flavor{FlavorZodV3, FlavorZod})
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
		assert.Contains(t, err.Error(), "conflicts with zod")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := normalizeFlavors([]Flavor{"elm"})
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})
}

func TestAllFlavorsIsACopy(t *testing.T) {
	all := AllFlavors()
	require.Len(t, all, 6)
	all[0] = "mutated"
	assert.Equal(t, FlavorTypeScript, AllFlavors()[0])
}
