package commands

import (
	"errors"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/internal/cliutil"
)

// CollectionsFlags contains flags for the collections command
type CollectionsFlags struct {
	Config string
	Format string
}

// CollectionInfo summarizes one collection of a project.
type CollectionInfo struct {
	Name         string   `json:"name" yaml:"name"`
	Default      bool     `json:"default,omitempty" yaml:"default,omitempty"`
	Title        string   `json:"title,omitempty" yaml:"title,omitempty"`
	Version      string   `json:"version,omitempty" yaml:"version,omitempty"`
	IncludePaths []string `json:"include_paths,omitempty" yaml:"include_paths,omitempty"`
	ExcludePaths []string `json:"exclude_paths,omitempty" yaml:"exclude_paths,omitempty"`
	IncludeTags  []string `json:"include_tags,omitempty" yaml:"include_tags,omitempty"`
}

// SetupCollectionsFlags creates and configures a FlagSet for the collections command.
// Returns the FlagSet and a CollectionsFlags struct with bound flag variables.
func SetupCollectionsFlags() (*flag.FlagSet, *CollectionsFlags) {
	fs := flag.NewFlagSet("collections", flag.ContinueOnError)
	flags := &CollectionsFlags{}

	fs.StringVar(&flags.Config, "c", "", "configuration file (default: ./oasgen.yaml when present)")
	fs.StringVar(&flags.Config, "config", "", "configuration file (default: ./oasgen.yaml when present)")
	fs.StringVar(&flags.Format, "f", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasgen collections [flags]\n\n")
		cliutil.Writef(fs.Output(), "List the document collections of a project.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// HandleCollections executes the collections command
func HandleCollections(args []string) error {
	return runCollections(args, os.Stdout, os.Stderr)
}

func runCollections(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupCollectionsFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateListFormat(flags.Format); err != nil {
		return err
	}

	cfg, err := LoadConfig(flags.Config)
	if err != nil {
		return err
	}
	infos := ListCollections(cfg)

	if flags.Format != FormatText {
		format, _ := cliutil.ParseFormat(flags.Format)
		data, err := cliutil.Encode(infos, format)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	for _, info := range infos {
		marker := " "
		if info.Default {
			marker = "*"
		}
		cliutil.Writef(stdout, "%s %s", marker, info.Name)
		if info.Title != "" {
			cliutil.Writef(stdout, "\t%s %s", info.Title, info.Version)
		}
		cliutil.Writef(stdout, "\n")
		if len(info.IncludePaths) > 0 {
			cliutil.Writef(stdout, "    include: %s\n", strings.Join(info.IncludePaths, ", "))
		}
		if len(info.ExcludePaths) > 0 {
			cliutil.Writef(stdout, "    exclude: %s\n", strings.Join(info.ExcludePaths, ", "))
		}
		if len(info.IncludeTags) > 0 {
			cliutil.Writef(stdout, "    tags: %s\n", strings.Join(info.IncludeTags, ", "))
		}
	}
	return nil
}

// ListCollections returns a summary of every collection of cfg, sorted by name.
func ListCollections(cfg *config.Config) []CollectionInfo {
	names := cfg.CollectionNames()
	infos := make([]CollectionInfo, 0, len(names))
	for _, name := range names {
		coll, _ := cfg.Collection(name)
		info := config.MergeInfo(cfg.Info, coll.Info)
		infos = append(infos, CollectionInfo{
			Name:         name,
			Default:      name == cfg.DefaultCollection,
			Title:        info.Title,
			Version:      info.Version,
			IncludePaths: coll.IncludePaths,
			ExcludePaths: coll.ExcludePaths,
			IncludeTags:  coll.IncludeTags,
		})
	}
	return infos
}
