package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUniquePath(t *testing.T) {
	dir := t.TempDir()

	name, err := ResolveUniquePath(dir, "DDP_Foo", ".pptx")
	require.NoError(t, err)
	assert.Equal(t, "DDP_Foo.pptx", name)

	// the probe leaves the chosen file behind, so the next call moves on
	name, err = ResolveUniquePath(dir, "DDP_Foo", ".pptx")
	require.NoError(t, err)
	assert.Equal(t, "DDP_Foo_1.pptx", name)

	name, err = ResolveUniquePath(dir, "DDP_Foo", ".pptx")
	require.NoError(t, err)
	assert.Equal(t, "DDP_Foo_2.pptx", name)
}

func TestResolveUniquePathSkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"DDP_Foo.pptx", "DDP_Foo_1.pptx", "DDP_Foo_3.pptx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	name, err := ResolveUniquePath(dir, "DDP_Foo", ".pptx")
	require.NoError(t, err)
	assert.Equal(t, "DDP_Foo_2.pptx", name)

	// existing files are never touched
	data, err := os.ReadFile(filepath.Join(dir, "DDP_Foo.pptx"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestResolveUniquePathCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "output")

	name, err := ResolveUniquePath(dir, "DDP_Vendas", ".pptx")
	require.NoError(t, err)
	assert.Equal(t, "DDP_Vendas.pptx", name)
	assert.DirExists(t, dir)
}

func TestIsFileInUse(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsFileInUse(filepath.Join(dir, "free.pptx")))
	assert.True(t, IsFileInUse(filepath.Join(dir, "missing", "nested.pptx")))
}

func TestDefaultBaseName(t *testing.T) {
	assert.Equal(t, "DDP_Vendas", DefaultBaseName("DDP_", "Vendas"))
	assert.Equal(t, "DDP_Contas_a_Pagar", DefaultBaseName("DDP_", "Contas a Pagar"))
}

func TestSplitFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantBase string
		wantExt  string
	}{
		{name: "no extension", input: "relatorio", wantBase: "relatorio", wantExt: ".pptx"},
		{name: "default extension", input: "relatorio.pptx", wantBase: "relatorio", wantExt: ".pptx"},
		{name: "caller extension wins", input: "relatorio.potx", wantBase: "relatorio", wantExt: ".potx"},
		{name: "dotted base", input: "v1.2.pptx", wantBase: "v1.2", wantExt: ".pptx"},
		{name: "dot file", input: ".pptx", wantBase: ".pptx", wantExt: ".pptx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, ext := SplitFileName(tt.input, ".pptx")
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestGenerateUUID(t *testing.T) {
	a, err := GenerateUUID()
	require.NoError(t, err)
	b, err := GenerateUUID()
	require.NoError(t, err)
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
