package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n\ngo 1.25\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "user.go"), []byte(`package app

// @table users
type User struct {
	// @var int
	// @column id
	// @id
	ID int
}
`), 0644))
	return root
}

func TestRunRequiresDirectory(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error: At least one directory path is required")
	assert.Contains(t, stderr.String(), "Usage: entitydoc [options] <directory-paths...>")
	assert.Empty(t, stdout.String())
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 0, run([]string{"--help"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "--format")
	assert.Contains(t, stderr.String(), "--class")
}

func TestRunUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"--bogus", "."}, &stdout, &stderr))
}

func TestRunWritesJSON(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	root := writeFixture(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-q", root}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var results []struct {
		ClassName  string `json:"class_name"`
		PrimaryKey string `json:"primary_key"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "example.com/app.User", results[0].ClassName)
	assert.Equal(t, "ID", results[0].PrimaryKey)
	assert.Empty(t, stderr.String())
}

func TestRunVerboseSummary(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	root := writeFixture(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"--verbose", "--format", "yaml", root}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "class_name: example.com/app.User")
	assert.Contains(t, stderr.String(), "Classes resolved: 1")
}

func TestRunFailsForUnknownClass(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	root := writeFixture(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"--class", "Ghost", root}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "cannot resolve class 'Ghost'")
}

func TestRunRejectsBadFormat(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	root := writeFixture(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"--format", "xml", root}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "unsupported output format")
}
