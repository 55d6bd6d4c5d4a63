package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/toyz/entitydoc/internal/cli"
	"github.com/toyz/entitydoc/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	config := cli.Config{}
	var (
		debug bool
		help  bool
	)

	flags := pflag.NewFlagSet("entitydoc", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringSliceVar(&config.Classes, "class", nil, "Only resolve these classes (import-path qualified id or bare type name)")
	flags.StringVarP(&config.Format, "format", "f", cli.FormatJSON, "Output format: json or yaml")
	flags.StringVar(&config.ModuleName, "module", "", "Module path used to qualify class ids (defaults to go.mod module)")
	flags.StringSliceVar(&config.Types, "types", nil, "Accepted @var types (defaults to array,bool,int,integer,string,float,null)")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVarP(&config.Quiet, "quiet", "q", false, "Only show errors")
	flags.BoolVar(&debug, "debug", false, "Trace skipped properties and malformed tags")
	flags.BoolVarP(&help, "help", "h", false, "Show help information")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: entitydoc [options] <directory-paths...>\n\n")
		fmt.Fprintf(stderr, "Entity Annotation Reader\n")
		fmt.Fprintf(stderr, "Reads @tag annotations from struct doc comments and prints the resolved entity mapping metadata.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fmt.Fprint(stderr, flags.FlagUsages())
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  entitydoc ./...                          # Every annotated struct, recursively\n")
		fmt.Fprintf(stderr, "  entitydoc --class User ./internal/models # A single class\n")
		fmt.Fprintf(stderr, "  entitydoc --format yaml ./models/...     # YAML output\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if help {
		flags.Usage()
		return 0
	}

	config.Directories = flags.Args()
	if len(config.Directories) == 0 {
		fmt.Fprintf(stderr, "Error: At least one directory path is required\n\n")
		flags.Usage()
		return 1
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case debug:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticDebug)
	case config.Quiet:
		diagnostics = utils.NewQuietDiagnostics()
	case config.Verbose:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticWarn)
	}
	diagnostics.SetOutput(stderr)

	diagnostics.Verbose("Target directories: %s", strings.Join(config.Directories, ", "))

	runner := cli.NewRunner(config, diagnostics, stdout)
	err := runner.Run()

	summary := runner.Summary()
	diagnostics.Summary("Entity annotations", []string{"Packages scanned", "Classes resolved", "Properties mapped", "Failures"},
		map[string]interface{}{
			"Packages scanned":  summary.PackagesScanned,
			"Classes resolved":  summary.ClassesResolved,
			"Properties mapped": summary.PropertiesMapped,
			"Failures":          summary.Failures,
		})

	if err != nil {
		if summary.Failures == 0 {
			diagnostics.Error("%v", err)
		}
		return 1
	}
	return 0
}
