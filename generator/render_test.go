package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/symbols"
)

func TestRender(t *testing.T) {
	f := symbols.NewFile("transformers.gen.ts")
	stub := f.Reference("#/components/schemas/B", symbols.NamespaceValue)
	a, _ := f.Register("#/components/schemas/A", symbols.NamespaceValue, "a", true)
	b, _ := f.Register("#/components/schemas/B", symbols.NamespaceValue, "b", true)
	require.NoError(t, f.Finish(b, "export const b = 1;"))
	require.NoError(t, f.Finish(a, "export const a = "+stub.Ref()+";"))
	f.AddImport(symbols.Import{Module: "./types.gen", Names: []string{"B", "A"}, TypeOnly: true})
	f.AddImport(symbols.Import{Module: "valibot", Namespace: "v"})

	want := Header + "\n\n" +
		"import type { A, B } from './types.gen';\n" +
		"import * as v from 'valibot';\n\n" +
		"export const b = 1;\n\n" +
		"export const a = b;\n"
	assert.Equal(t, want, string(Render(f)))
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, Header+"\n\n", string(Render(symbols.NewFile("types.gen.ts"))))
}

func TestRenderImport(t *testing.T) {
	assert.Equal(t, "import { z } from 'zod';", renderImport(symbols.Import{Module: "zod", Names: []string{"z"}}))
	assert.Equal(t, "import type { Pet } from './types.gen';",
		renderImport(symbols.Import{Module: "./types.gen", Names: []string{"Pet"}, TypeOnly: true}))
	assert.Equal(t, "import * as v from 'valibot';", renderImport(symbols.Import{Module: "valibot", Namespace: "v"}))
}

func TestRenderBufferTiers(t *testing.T) {
	for _, count := range []int{1, 100, 1000} {
		buf := getRenderBuffer(count)
		require.NotNil(t, buf)
		assert.Zero(t, buf.Len())
		buf.WriteString("x")
		putRenderBuffer(buf, count)
	}
	putRenderBuffer(nil, 1)
}

func BenchmarkRender(b *testing.B) {
	f := symbols.NewFile("types.gen.ts")
	for i := range 300 {
		sym, _ := f.Register(fmt.Sprintf("#/components/schemas/T%d", i), symbols.NamespaceType, fmt.Sprintf("T%d", i), true)
		_ = f.Finish(sym, fmt.Sprintf("export type T%d = string;", i))
	}
	b.ResetTimer()
	for b.Loop() {
		_ = Render(f)
	}
}
