package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/toyz/entitydoc/internal/errors"
	"github.com/toyz/entitydoc/internal/utils"
)

const shopModel = `package model

// @table base
// @schema shop
type Model struct {
	// @var int
	// @column id
	// @id
	ID int
}

// @inherit
// @table users
type User struct {
	Model

	// @var string
	// @column email
	Email string

	// @var widget
	// @column gadget
	Gadget string
}

type Plain struct {
	Name string
}
`

func writeShop(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	modelDir := filepath.Join(root, "model")
	require.NoError(t, os.MkdirAll(modelDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/shop\n\ngo 1.25\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "model.go"), []byte(shopModel), 0644))
	return root
}

func newRunner(t *testing.T, config Config) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var out, log bytes.Buffer
	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticDebug)
	diagnostics.SetOutput(&log)
	return NewRunner(config, diagnostics, &out), &out, &log
}

func TestRunnerResolvesAnnotatedClasses(t *testing.T) {
	root := writeShop(t)
	runner, out, log := newRunner(t, Config{
		Directories: []string{root + "/..."},
		Format:      FormatJSON,
	})

	require.NoError(t, runner.Run())

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "example.com/shop/model.Model", results[0]["class_name"])
	user := results[1]
	assert.Equal(t, "example.com/shop/model.User", user["class_name"])
	assert.Equal(t, map[string]interface{}{
		"inherit": true,
		"table":   "users",
		"schema":  "shop",
	}, user["class"])
	assert.Equal(t, "ID", user["primary_key"])

	props := user["properties"].(map[string]interface{})
	assert.Contains(t, props, "Email")
	assert.Contains(t, props, "ID")
	assert.NotContains(t, props, "Gadget")

	summary := runner.Summary()
	assert.Equal(t, 1, summary.PackagesScanned)
	assert.Equal(t, 2, summary.ClassesResolved)
	assert.Equal(t, 3, summary.PropertiesMapped)
	assert.Zero(t, summary.Failures)

	assert.Contains(t, log.String(), "Gadget: property skipped")
	assert.Contains(t, log.String(), "Cached classes: example.com/shop/model.Model, example.com/shop/model.User")
}

func TestRunnerSelectedClassesAsYAML(t *testing.T) {
	root := writeShop(t)
	runner, out, _ := newRunner(t, Config{
		Directories: []string{filepath.Join(root, "model")},
		Classes:     []string{"User"},
		Format:      FormatYAML,
		Types:       []string{"string"},
	})

	require.NoError(t, runner.Run())

	var results []struct {
		ClassName  string                 `yaml:"class_name"`
		Class      map[string]interface{} `yaml:"class"`
		Properties map[string]interface{} `yaml:"properties"`
		PrimaryKey string                 `yaml:"primary_key"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 1)

	assert.Equal(t, "User", results[0].ClassName)
	assert.Equal(t, "users", results[0].Class["table"])
	assert.Len(t, results[0].Properties, 1)
	assert.Contains(t, results[0].Properties, "Email")
	assert.Empty(t, results[0].PrimaryKey)
}

func TestRunnerModuleOverride(t *testing.T) {
	root := writeShop(t)
	runner, out, _ := newRunner(t, Config{
		Directories: []string{filepath.Join(root, "model")},
		Classes:     []string{"example.org/fork/model.User"},
		Format:      FormatJSON,
		ModuleName:  "example.org/fork",
	})

	require.NoError(t, runner.Run())
	assert.Contains(t, out.String(), `"class_name": "example.org/fork/model.User"`)
}

func TestRunnerReportsUnresolvableClasses(t *testing.T) {
	root := writeShop(t)
	runner, out, log := newRunner(t, Config{
		Directories: []string{filepath.Join(root, "model")},
		Classes:     []string{"Ghost", "User"},
		Format:      FormatJSON,
	})

	err := runner.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrClassNotFound)

	var unresolvable *errors.UnresolvableClassError
	require.ErrorAs(t, err, &unresolvable)
	assert.Equal(t, "Ghost", unresolvable.ClassID)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	assert.Len(t, results, 1)

	assert.Equal(t, 1, runner.Summary().Failures)
	assert.Contains(t, log.String(), "[ERROR]")
}

func TestRunnerWithoutGoFiles(t *testing.T) {
	runner, _, _ := newRunner(t, Config{
		Directories: []string{t.TempDir()},
		Format:      FormatJSON,
	})

	err := runner.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Go files found")
}

func TestRunnerRejectsInvalidConfig(t *testing.T) {
	runner, out, _ := newRunner(t, Config{Format: FormatJSON})

	require.Error(t, runner.Run())
	assert.Empty(t, out.String())
}
