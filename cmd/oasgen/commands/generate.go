package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/oasgen/generator"
	"github.com/erraggy/oasgen/internal/cliutil"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Config     string
	Collection string
	All        bool
	Format     string
	Output     string
	Dedupe     bool
	Verbose    bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Config, "c", "", "configuration file (default: ./oasgen.yaml when present)")
	fs.StringVar(&flags.Config, "config", "", "configuration file (default: ./oasgen.yaml when present)")
	fs.StringVar(&flags.Collection, "collection", "", "collection to generate (default: the default collection)")
	fs.BoolVar(&flags.All, "all", false, "generate every collection into the --output directory")
	fs.StringVar(&flags.Format, "f", "", "output format: json or yaml (default: from the output extension, else json)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: from the output extension, else json)")
	fs.StringVar(&flags.Output, "o", "", "output file, or directory with --all (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file, or directory with --all (default: stdout)")
	fs.BoolVar(&flags.Dedupe, "dedupe", false, "fold structurally identical schemas")
	fs.BoolVar(&flags.Verbose, "v", false, "log discovery and generation details to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log discovery and generation details to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasgen generate [flags]\n\n")
		cliutil.Writef(fs.Output(), "Generate OpenAPI documents from the markers and routes of a project.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasgen generate\n")
		cliutil.Writef(fs.Output(), "  oasgen generate -c api/oasgen.yaml -o openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasgen generate --collection admin -f yaml\n")
		cliutil.Writef(fs.Output(), "  oasgen generate --all -o ./docs -f json\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - --all writes one <collection>.<format> file per collection\n")
		cliutil.Writef(fs.Output(), "  - Routes are read from the route files listed under routes: in the configuration\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	return runGenerate(context.Background(), args, os.Stderr)
}

func runGenerate(ctx context.Context, args []string, stderr io.Writer) error {
	fs, flags := SetupGenerateFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("generate command takes no arguments")
	}
	if flags.All && flags.Collection != "" {
		return fmt.Errorf("--all and --collection are mutually exclusive")
	}
	if flags.All && (flags.Output == "" || flags.Output == StdoutPath) {
		return fmt.Errorf("--all requires an output directory (use -o or --output)")
	}

	format := cliutil.FormatJSON
	switch {
	case flags.Format != "":
		f, err := cliutil.ParseFormat(flags.Format)
		if err != nil {
			return err
		}
		format = f
	case flags.Output != "" && !flags.All:
		format = cliutil.FormatFromPath(flags.Output)
	}

	cfg, err := LoadConfig(flags.Config)
	if err != nil {
		return err
	}
	opts := []generator.Option{generator.WithLogger(NewLogger(stderr, flags.Verbose))}
	if flags.Dedupe {
		opts = append(opts, generator.WithSchemaDeduplication(true))
	}
	gen, err := generator.NewProject(cfg, opts...)
	if err != nil {
		return err
	}

	var results []*generator.Result
	if flags.All {
		results, err = gen.GenerateAll(ctx)
	} else {
		var res *generator.Result
		res, err = gen.GenerateResult(ctx, flags.Collection)
		results = []*generator.Result{res}
	}
	if err != nil {
		return err
	}

	for _, res := range results {
		data, err := cliutil.Encode(res.Document, format)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", res.Collection, err)
		}
		path := flags.Output
		if flags.All {
			path = filepath.Join(flags.Output, res.Collection+format.Extension())
		}
		if err := WriteOutput(path, data); err != nil {
			return err
		}
		cliutil.Writef(stderr, "Generated %s: %d paths, %d operations, %d components in %v\n",
			res.Collection, len(res.Document.Paths), res.Operations, res.Components, res.GenerateTime)
		if res.RemovedSchemas > 0 {
			cliutil.Writef(stderr, "  folded %d duplicate schemas\n", res.RemovedSchemas)
		}
	}
	return nil
}
