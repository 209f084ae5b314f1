package module_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/module"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadResolvesImportsInDependencyOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.sl", `export fn void foo() {}`)
	rootPath := writeFile(t, dir, "a.sl", `
import b;
fn void main() { b::foo(); }
`)

	sink := diag.NewSink()
	loader := module.NewLoader([]string{dir}, sink)
	g := loader.Load(rootPath)

	require.False(t, sink.HasErrors(), sink.All())
	order := g.Order()
	require.Equal(t, []string{"b", "a"}, order)

	a, ok := g.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, a.Imports)
}

func TestMissingImportIsReported(t *testing.T) {
	dir := t.TempDir()
	rootPath := writeFile(t, dir, "a.sl", `import missing;`)

	sink := diag.NewSink()
	loader := module.NewLoader([]string{dir}, sink)
	loader.Load(rootPath)

	require.True(t, sink.HasErrors())
	found := false
	for _, d := range sink.All() {
		if d.Code == diag.MOD001 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAmbiguousImportIsReported(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	writeFile(t, dir1, "b.sl", `export fn void foo() {}`)
	writeFile(t, dir2, "b.sl", `export fn void foo() {}`)
	rootPath := writeFile(t, dir1, "a.sl", `import b;`)

	sink := diag.NewSink()
	loader := module.NewLoader([]string{dir1, dir2}, sink)
	loader.Load(rootPath)

	found := false
	for _, d := range sink.All() {
		if d.Code == diag.MOD002 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestImportCycleIsReported(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sl", `import b;`)
	rootPath := writeFile(t, dir, "b.sl", `import a;`)

	sink := diag.NewSink()
	loader := module.NewLoader([]string{dir}, sink)
	loader.Load(rootPath)

	found := false
	for _, d := range sink.All() {
		if d.Code == diag.MOD003 {
			found = true
		}
	}
	assert.True(t, found)
}
