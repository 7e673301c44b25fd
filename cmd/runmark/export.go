package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/runmark/internal/layout"
)

func newExportCmd(flags *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the run layout as JSON",
		Long: `Lay FILE out with the current width, run length and zoom, and write the
runs as {"pages":[{"items":[{"id","str","hasEOL"}]}]}. The output can be
read back as input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags, args[0], false, 0)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			data, err := layout.ExportTextContent(s.layouter.Layout(s.zoom))
			if err != nil {
				return fmt.Errorf("exporting layout: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
			return err
		},
	}
}
