package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testThemeYAML = `version: "1.0"
name: default
prefix: ds
colors:
  primary: "#3b82f6"
spacing:
  baseUnit: 4
`

func writeTheme(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testThemeYAML), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestCompileCommandWritesStdout(t *testing.T) {
	out, err := execute(t, "compile", "--theme", writeTheme(t))
	require.NoError(t, err)

	require.Contains(t, out, ":root {")
	require.Contains(t, out, "--ds-colors-primary-500:")
	require.Contains(t, out, ".m-sm {")
}

func TestCompileCommandWritesFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "theme.css")
	_, err := execute(t, "compile", "--theme", writeTheme(t), "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "--ds-colors-primary-500:")
}

func TestCompileCommandMinify(t *testing.T) {
	out, err := execute(t, "compile", "--theme", writeTheme(t), "--minify")
	require.NoError(t, err)

	require.NotContains(t, out, "\n  ")
	require.Contains(t, out, ":root{")
}

func TestCompileCommandPrefixOverride(t *testing.T) {
	out, err := execute(t, "compile", "--theme", writeTheme(t), "--prefix", "app")
	require.NoError(t, err)

	require.Contains(t, out, "--app-colors-primary-500:")
	require.NotContains(t, out, "--ds-colors-primary-500:")
}

func TestCompileCommandCheckUpToDate(t *testing.T) {
	themePath := writeTheme(t)
	cssPath := filepath.Join(t.TempDir(), "theme.css")
	_, err := execute(t, "compile", "--theme", themePath, "--out", cssPath)
	require.NoError(t, err)

	out, err := execute(t, "compile", "--theme", themePath, "--check", cssPath)
	require.NoError(t, err)
	require.Contains(t, out, "up to date")
}

func TestCompileCommandCheckDrift(t *testing.T) {
	themePath := writeTheme(t)
	cssPath := filepath.Join(t.TempDir(), "theme.css")
	require.NoError(t, os.WriteFile(cssPath, []byte("/* stale */\n"), 0o644))

	out, err := execute(t, "compile", "--theme", themePath, "--check", cssPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "differs")
	require.Contains(t, out, "+++ compiled")
}

func TestCompileCommandRequiresTheme(t *testing.T) {
	_, err := execute(t, "compile")
	require.Error(t, err)
}
