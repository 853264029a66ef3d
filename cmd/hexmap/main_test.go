package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBadgerConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "hexmap.yaml")
	body := "store:\n  backend: badger\n  badger_dir: " + filepath.Join(dir, "layouts") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRunClosesStoreOnFailure(t *testing.T) {
	cfgPath := writeBadgerConfig(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-config", cfgPath, "-cmd", "save", "-name", "bad", "-map", "1 q"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "save failed")

	// Хранилище закрыто: каталог BadgerDB снова можно открыть
	stderr.Reset()
	code = run([]string{"-config", cfgPath, "-cmd", "save", "-name", "good", "-map", "7 8", "-metrics"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "good")
	assert.Contains(t, stderr.String(), `hexmap_layout_store_operations_total{backend="badger",op="save",result="ok"} 1`)

	stdout.Reset()
	code = run([]string{"-config", cfgPath, "-cmd", "load", "-name", "good"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "7 8\n", stdout.String())
}

func TestRunExitCodes(t *testing.T) {
	t.Setenv("HEXMAP_CONFIG", "")
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 0, run([]string{"-cmd", "normalize", "-map", "7,8"}, &stdout, &stderr))
	assert.Equal(t, "7 8\n", stdout.String())

	assert.Equal(t, 1, run([]string{"-cmd", "validate", "-map", "x"}, &stdout, &stderr))
	assert.Equal(t, 1, run([]string{"-cmd", "teleport"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Unknown command: teleport")
	assert.Equal(t, 2, run([]string{"-no-such-flag"}, &stdout, &stderr))
	assert.Equal(t, 1, run([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr))
}
