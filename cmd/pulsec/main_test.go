package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vincenthirtz/pulse-js-framework-sub000/compiler"
)

func TestWriteOutputToStdoutWhenNoOutFlag(t *testing.T) {
	result := &compiler.Result{Code: "const x = 1;"}
	require.NoError(t, writeOutput(result, "", ""))
}

func TestWriteOutputWritesCodeAndSiblingCSSFiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "app.js")

	result := &compiler.Result{Code: "const x = 1;", CSS: ".a { color: red; }"}
	require.NoError(t, writeOutput(result, out, ""))

	code, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "const x = 1;", string(code))

	css, err := os.ReadFile(filepath.Join(dir, "app.css"))
	require.NoError(t, err)
	require.Equal(t, ".a { color: red; }", string(css))
}

func TestWriteOutputRespectsExplicitCSSOut(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "app.js")
	cssOut := filepath.Join(dir, "styles.css")

	result := &compiler.Result{Code: "const x = 1;", CSS: ".a {}"}
	require.NoError(t, writeOutput(result, out, cssOut))

	_, err := os.Stat(cssOut)
	require.NoError(t, err)
}

func TestWriteOutputSkipsCSSFileWhenNoCSSGenerated(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "app.js")

	result := &compiler.Result{Code: "const x = 1;"}
	require.NoError(t, writeOutput(result, out, ""))

	_, err := os.Stat(filepath.Join(dir, "app.css"))
	require.True(t, os.IsNotExist(err))
}
