package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kk-code-lab/runmark/internal/app"
	renderui "github.com/kk-code-lab/runmark/internal/ui/render"
)

func newViewCmd(flags *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "view FILE",
		Short: "Open the interactive viewer",
		Long: `Open FILE in a full-screen viewer. Press / to search, n and N to move
between matches, + and - to zoom, and ? for all keys.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, flags, args[0])
		},
	}
}

func runView(cmd *cobra.Command, flags *flagValues, path string) error {
	s, err := openSession(cmd, flags, path, true, terminalWidth())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	application, err := app.NewApplication(app.Options{
		Name:     s.name,
		Layouter: s.layouter,
		Zoom:     s.zoom,
		Search:   s.options,
		Contexts: s.contexts,
		Theme:    renderui.GetColorTheme().WithPalette(s.cfg.PaletteColors()),
	})
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	application.Run()
	return nil
}

// terminalWidth is the column count of stdout, or 0 when it is not a
// terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
