package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/runmark/internal/config"
	"github.com/kk-code-lab/runmark/internal/highlight"
	"github.com/kk-code-lab/runmark/internal/layout"
	"github.com/kk-code-lab/runmark/internal/logging"
	"github.com/kk-code-lab/runmark/internal/search"
)

// flagValues holds the flags shared by every command.
type flagValues struct {
	configPath    string
	queries       []string
	caseSensitive bool
	noFlex        bool
	fuzzy         bool
	threshold     float64
	noScroll      bool
	width         int
	runLength     int
	zoom          int
	debug         bool
}

// session is a loaded document plus everything resolved from config and
// flags.
type session struct {
	cfg      config.Config
	name     string
	layouter layout.Layouter
	options  search.Options
	contexts []highlight.Context
	zoom     int
	closeLog func() error
}

func (s *session) Close() error {
	if s.closeLog == nil {
		return nil
	}
	return s.closeLog()
}

func newRootCmd() *cobra.Command {
	flags := &flagValues{}

	root := &cobra.Command{
		Use:   "runmark [FILE]",
		Short: "Search and highlight text split into runs",
		Long: `runmark finds literal, whitespace-tolerant or approximate matches in a
document whose text is split into runs, and highlights them in place.

Example usage:
  runmark notes.txt                    # Open the viewer
  runmark view notes.txt -q invoice    # Open with a query applied
  runmark print dump.json -q a -q b    # Print with two highlighted contexts
  runmark count notes.txt -q total --fuzzy --json`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runView(cmd, flags, args[0])
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/runmark/config.yaml)")
	pf.StringArrayVarP(&flags.queries, "query", "q", nil, "query to highlight; repeat for a multi-context search")
	pf.BoolVar(&flags.caseSensitive, "case-sensitive", false, "match case exactly")
	pf.BoolVar(&flags.noFlex, "no-flex", false, "disable whitespace-tolerant matching")
	pf.BoolVar(&flags.fuzzy, "fuzzy", false, "use approximate matching")
	pf.Float64Var(&flags.threshold, "threshold", search.DefaultFuzzyThreshold, "minimum similarity for fuzzy matches, in [0, 1]")
	pf.BoolVar(&flags.noScroll, "no-scroll", false, "do not scroll to the active match")
	pf.IntVar(&flags.width, "width", 0, "wrap plain text at this many columns (0 uses the config or terminal width)")
	pf.IntVar(&flags.runLength, "run-length", 0, "maximum runes per run for plain text")
	pf.IntVar(&flags.zoom, "zoom", 0, fmt.Sprintf("zoom percent in [%d, %d]", layout.MinZoom, layout.MaxZoom))
	pf.BoolVar(&flags.debug, "debug", false, "write debug records (see "+logging.EnvDebugFile+")")

	root.AddCommand(
		newViewCmd(flags),
		newPrintCmd(flags),
		newCountCmd(flags),
		newExportCmd(flags),
	)
	return root
}

// openSession layers config, environment and flags, installs logging and
// loads path. quiet keeps warnings off stderr for the full-screen viewer.
// fitWidth, when positive, is the wrap width used if nothing sets one.
func openSession(cmd *cobra.Command, flags *flagValues, path string, quiet bool, fitWidth int) (*session, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := applyFlags(cmd, flags, &cfg); err != nil {
		return nil, err
	}

	logOpts := cfg.LoggingOptions()
	logOpts.Quiet = quiet
	logOpts.Stderr = cmd.ErrOrStderr()
	closeLog, err := logging.Setup(logOpts)
	if err != nil {
		return nil, err
	}

	layoutOpts := cfg.LayoutOptions()
	if layoutOpts.Width == 0 && fitWidth > 0 {
		layoutOpts.Width = fitWidth
	}
	layouter, err := layout.Load(path, layoutOpts)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	contexts := cfg.SearchContexts()
	if cmd.Flags().Changed("query") {
		contexts = contextsFromQueries(flags.queries)
	}

	logging.For("cli").Debug("session opened",
		"command", cmd.Name(),
		"file", path,
		"config", cfg.Path,
		"contexts", len(contexts))

	return &session{
		cfg:      cfg,
		name:     filepath.Base(path),
		layouter: layouter,
		options:  cfg.SearchOptions(),
		contexts: contexts,
		zoom:     cfg.ZoomLevel(),
		closeLog: closeLog,
	}, nil
}

// applyFlags overrides cfg with every flag the user set explicitly.
func applyFlags(cmd *cobra.Command, flags *flagValues, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("case-sensitive") {
		cfg.CaseSensitive = flags.caseSensitive
	}
	if changed("no-flex") {
		cfg.FlexibleWhitespace = !flags.noFlex
	}
	if changed("fuzzy") {
		cfg.Fuzzy = flags.fuzzy
	}
	if changed("threshold") {
		cfg.FuzzyThreshold = flags.threshold
	}
	if changed("no-scroll") {
		cfg.AutoScroll = !flags.noScroll
	}
	if changed("width") {
		cfg.Layout.Width = flags.width
	}
	if changed("run-length") {
		cfg.Layout.RunLength = flags.runLength
	}
	if changed("zoom") {
		cfg.Layout.Zoom = flags.zoom
	}
	if changed("debug") {
		cfg.Debug = flags.debug
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func contextsFromQueries(queries []string) []highlight.Context {
	out := make([]highlight.Context, 0, len(queries))
	for _, q := range queries {
		out = append(out, highlight.Context{Query: q})
	}
	return out
}

// searchDocument lays the session out at its zoom and runs its contexts.
func searchDocument(s *session) (*highlight.Engine, *highlight.MemorySurface, highlight.MultiResult) {
	doc := s.layouter.Layout(s.zoom)
	surface := highlight.NewMemorySurface(doc)
	engine := highlight.New(surface)
	engine.SetDocument(doc)
	result := engine.Apply(s.contexts, s.options)
	return engine, surface, result
}
