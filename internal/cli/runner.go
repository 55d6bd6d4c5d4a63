package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toyz/entitydoc/internal/annotations"
	"github.com/toyz/entitydoc/internal/cache"
	"github.com/toyz/entitydoc/internal/entity"
	"github.com/toyz/entitydoc/internal/errors"
	"github.com/toyz/entitydoc/internal/goast"
	"github.com/toyz/entitydoc/internal/utils"
)

// Summary contains statistics about a run
type Summary struct {
	PackagesScanned  int
	ClassesResolved  int
	PropertiesMapped int
	Failures         int
}

// Runner loads Go packages, resolves their entity annotations and writes
// the result
type Runner struct {
	config      Config
	diagnostics *utils.DiagnosticSystem
	scanner     *DirectoryScanner
	gomod       *utils.GoModParser
	out         io.Writer
	summary     Summary
}

// NewRunner creates a runner writing resolved metadata to out
func NewRunner(config Config, diagnostics *utils.DiagnosticSystem, out io.Writer) *Runner {
	return &Runner{
		config:      config,
		diagnostics: diagnostics,
		scanner:     NewDirectoryScanner(),
		gomod:       utils.NewGoModParser(),
		out:         out,
	}
}

// Summary returns statistics about the last run
func (r *Runner) Summary() Summary {
	return r.summary
}

// Run executes the configured scan. Classes that fail to resolve are
// reported together after every other class has been written.
func (r *Runner) Run() error {
	r.summary = Summary{}

	if err := r.config.Validate(); err != nil {
		return err
	}

	introspector, err := r.load()
	if err != nil {
		return err
	}

	opts := []entity.Option{entity.WithLogger(r.diagnostics)}
	if len(r.config.Types) > 0 {
		opts = append(opts, entity.WithTypeWhitelist(r.config.Types...))
	}
	reader := cache.NewReader(entity.NewReader(introspector, opts...))

	var (
		results  []*entity.EntityAnnotations
		failures *errors.MultipleErrors
	)
	for _, classID := range r.targets(introspector) {
		result, err := reader.Resolve(classID)
		if err != nil {
			r.diagnostics.Error("%v", err)
			r.summary.Failures++
			if entityErr, ok := err.(errors.EntityError); ok {
				errors.AddToMultiple(&failures, entityErr)
			} else {
				errors.AddToMultiple(&failures, errors.Wrapf(errors.ResolutionErrorCode, err, "cannot resolve class '%s'", classID))
			}
			continue
		}

		r.diagnostics.Verbose("Resolved %s (%d properties)", classID, len(result.Properties))
		r.summary.ClassesResolved++
		r.summary.PropertiesMapped += len(result.Properties)
		results = append(results, result)
	}

	if cached := reader.Classes(); len(cached) > 0 {
		r.diagnostics.Verbose("Cached classes: %s", strings.Join(cached, ", "))
	}

	if err := r.encode(results); err != nil {
		return err
	}
	return failures.ErrorOrNil()
}

func (r *Runner) load() (*goast.Introspector, error) {
	dirs, err := r.scanner.ScanDirectories(r.config.Directories)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, errors.ConfigurationError("directories", "no Go files found in the given directories")
	}

	introspector := goast.NewIntrospector()
	for _, dir := range dirs {
		importPath, err := r.gomod.ImportPath(dir, r.config.ModuleName)
		if err != nil {
			r.diagnostics.Debug("No module path for %s: %v", dir, err)
			importPath = ""
		}

		r.diagnostics.Verbose("Loading %s", dir)
		if err := introspector.LoadDir(dir, importPath); err != nil {
			return nil, err
		}
		r.summary.PackagesScanned++
	}
	return introspector, nil
}

// targets lists the classes to resolve, in a stable order
func (r *Runner) targets(introspector *goast.Introspector) []string {
	if len(r.config.Classes) > 0 {
		return r.config.Classes
	}

	var ids []string
	for _, id := range introspector.Classes() {
		class, err := introspector.Class(id)
		if err != nil {
			continue
		}
		if isAnnotated(class) {
			ids = append(ids, id)
		}
	}
	return ids
}

func isAnnotated(class *goast.Class) bool {
	if annotations.ParseMap(class.Comment).Len() > 0 {
		return true
	}
	for _, field := range class.Fields {
		if annotations.ParseMap(field.Comment).Len() > 0 {
			return true
		}
	}
	return false
}

func (r *Runner) encode(results []*entity.EntityAnnotations) error {
	if results == nil {
		results = []*entity.EntityAnnotations{}
	}

	switch r.config.Format {
	case FormatYAML:
		encoder := yaml.NewEncoder(r.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(results); err != nil {
			return errors.Wrap(errors.UnknownErrorCode, "failed to encode yaml output", err)
		}
		return encoder.Close()
	default:
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return errors.Wrap(errors.UnknownErrorCode, "failed to encode json output", err)
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	}
}
