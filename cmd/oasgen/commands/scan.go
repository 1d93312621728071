package commands

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/erraggy/oasgen/internal/cliutil"
	"github.com/erraggy/oasgen/scan"
)

// ScanFlags contains flags for the scan command
type ScanFlags struct {
	Dir        string
	Output     string
	Package    string
	ImportPath string
	Verbose    bool
}

// SetupScanFlags creates and configures a FlagSet for the scan command.
// Returns the FlagSet and a ScanFlags struct with bound flag variables.
func SetupScanFlags() (*flag.FlagSet, *ScanFlags) {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	flags := &ScanFlags{}

	fs.StringVar(&flags.Dir, "dir", ".", "directory the package patterns are resolved in")
	fs.StringVar(&flags.Output, "o", "", "output file (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file (default: stdout)")
	fs.StringVar(&flags.Package, "p", "", "package name of the generated file (required)")
	fs.StringVar(&flags.Package, "package", "", "package name of the generated file (required)")
	fs.StringVar(&flags.ImportPath, "import-path", "", "import path of the generated package, so its own types stay unqualified")
	fs.BoolVar(&flags.Verbose, "v", false, "log scanned packages to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log scanned packages to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasgen scan [flags] [packages]\n\n")
		cliutil.Writef(fs.Output(), "Scan Go packages for //openapi: directives and write a Go file that\n")
		cliutil.Writef(fs.Output(), "registers the declarations, handler markers, and routes it finds.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasgen scan -p apidoc -o internal/apidoc/markers_gen.go ./...\n")
		cliutil.Writef(fs.Output(), "  oasgen scan --dir ./service -p main ./handlers ./models\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Packages default to ./...\n")
		cliutil.Writef(fs.Output(), "  - Definition types named in package main cannot be referenced from generated code\n")
	}

	return fs, flags
}

// HandleScan executes the scan command
func HandleScan(args []string) error {
	return runScan(context.Background(), args, os.Stderr)
}

func runScan(ctx context.Context, args []string, stderr io.Writer) error {
	fs, flags := SetupScanFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if flags.Package == "" {
		fs.Usage()
		return errors.New("scan command requires a package name (use -p or --package)")
	}

	scanner := scan.New(scan.WithDir(flags.Dir), scan.WithLogger(NewLogger(stderr, flags.Verbose)))
	res, err := scanner.Scan(ctx, fs.Args()...)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := scan.Render(&buf, res, scan.Target{Package: flags.Package, ImportPath: flags.ImportPath}); err != nil {
		return err
	}
	if err := WriteOutput(flags.Output, buf.Bytes()); err != nil {
		return err
	}
	cliutil.Writef(stderr, "Scanned %d definitions, %d handler markers, %d routes\n",
		len(res.Definitions), len(res.Markers), len(res.Routes))
	return nil
}
