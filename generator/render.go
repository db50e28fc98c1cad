package generator

import (
	"bytes"
	"strings"
	"sync"

	"github.com/erraggy/oasgen/symbols"
)

// Header is the comment at the top of every generated file.
const Header = "// This file is auto-generated by oasgen. Do not edit."

// Tiered buffer sizes
const (
	smallBufferSize  = 8 * 1024  // 8KB for <50 declarations
	mediumBufferSize = 32 * 1024 // 32KB for 50-250 declarations
	largeBufferSize  = 64 * 1024 // 64KB for 250+ declarations
)

var smallBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, smallBufferSize))
	},
}

var mediumBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, mediumBufferSize))
	},
}

var largeBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, largeBufferSize))
	},
}

// getRenderBuffer returns a buffer sized for the declaration count.
func getRenderBuffer(count int) *bytes.Buffer {
	var buf *bytes.Buffer
	switch {
	case count < 50:
		buf = smallBufferPool.Get().(*bytes.Buffer)
	case count < 250:
		buf = mediumBufferPool.Get().(*bytes.Buffer)
	default:
		buf = largeBufferPool.Get().(*bytes.Buffer)
	}
	buf.Reset()
	return buf
}

// putRenderBuffer returns a buffer to the appropriate pool.
func putRenderBuffer(buf *bytes.Buffer, count int) {
	if buf == nil {
		return
	}
	// Don't pool oversized buffers
	if buf.Cap() > 1<<20 {
		return
	}
	switch {
	case count < 50:
		smallBufferPool.Put(buf)
	case count < 250:
		mediumBufferPool.Put(buf)
	default:
		largeBufferPool.Put(buf)
	}
}

// Render returns the source text of file: the header, the imports sorted
// by module and the declarations in finish order, with symbol
// placeholders replaced by names.
func Render(file *symbols.File) []byte {
	decls := file.Symbols()
	buf := getRenderBuffer(len(decls))
	defer putRenderBuffer(buf, len(decls))

	buf.WriteString(Header)
	buf.WriteString("\n\n")
	if imports := file.Imports(); len(imports) > 0 {
		for _, imp := range imports {
			buf.WriteString(renderImport(imp))
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}
	for i, sym := range decls {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(file.Render(sym.Value()))
	}
	if len(decls) > 0 {
		buf.WriteByte('\n')
	}
	return bytes.Clone(buf.Bytes())
}

func renderImport(imp symbols.Import) string {
	var b strings.Builder
	b.WriteString("import ")
	if imp.TypeOnly {
		b.WriteString("type ")
	}
	if imp.Namespace != "" {
		b.WriteString("* as " + imp.Namespace)
	} else {
		b.WriteString("{ " + strings.Join(imp.Names, ", ") + " }")
	}
	b.WriteString(" from '" + imp.Module + "';")
	return b.String()
}
