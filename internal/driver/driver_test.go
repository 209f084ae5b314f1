package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/driver"
)

func writeModule(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name+".sl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestCompileModulesResolvesImportedExports(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "mathlib", `
export fn i32 square(i32 x) {
	return x * x;
}
`)
	main := writeModule(t, dir, "app", `
import mathlib;

export fn i32 run() {
	return mathlib::square(3);
}
`)

	sink := diag.NewSink()
	res, err := driver.CompileModules(context.Background(), []string{dir}, main, sink, nil)
	require.NoError(t, err)
	require.False(t, sink.HasErrors(), sink.All())
	assert.Equal(t, []string{"mathlib", "app"}, res.Order)
	assert.Contains(t, res.CFGs, "app")
	assert.Contains(t, res.CFGs["app"], "run")
}

func TestCompileModulesReportsUndeclaredIdentifier(t *testing.T) {
	dir := t.TempDir()
	main := writeModule(t, dir, "app", `
export fn i32 run() {
	return missing;
}
`)
	sink := diag.NewSink()
	_, err := driver.CompileModules(context.Background(), []string{dir}, main, sink, nil)
	require.Error(t, err)
	assert.True(t, sink.HasErrors())
}
