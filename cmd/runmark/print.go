package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/runmark/internal/ui/ansi"
)

func newPrintCmd(flags *flagValues) *cobra.Command {
	var colorFlag string

	cmd := &cobra.Command{
		Use:   "print FILE",
		Short: "Write the document with matches highlighted",
		Long: `Write FILE to stdout with every match highlighted and the first match
marked active. Without color, matches are wrapped in [ ] and the active
match in { }. A summary goes to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := ansi.ParseColorMode(colorFlag)
			if err != nil {
				return err
			}

			s, err := openSession(cmd, flags, args[0], false, 0)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			engine, surface, result := searchDocument(s)
			defer func() { _ = engine.Close() }()

			out := cmd.OutOrStdout()
			printer := ansi.NewPrinter(mode.Enabled(out), s.cfg.PaletteColors())
			if err := printer.Write(out, surface.Document(), surface); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			writeSummary(cmd.ErrOrStderr(), s, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&colorFlag, "color", "auto", "highlight with color: auto, always or never")
	return cmd
}
