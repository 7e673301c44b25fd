package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/kk-code-lab/runmark/internal/highlight"
)

func newCountCmd(flags *flagValues) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "count FILE",
		Short: "Report match counts",
		Long: `Search FILE and report the total number of matches followed by the
count of each query.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags, args[0], false, 0)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()
			if len(s.contexts) == 0 {
				return fmt.Errorf("count needs at least one query (-q)")
			}

			engine, _, result := searchDocument(s)
			defer func() { _ = engine.Close() }()

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := countJSON(s.name, s.contexts, result)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "%s\n", data)
				return err
			}
			writeCounts(out, s.contexts, result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "write counts as JSON")
	return cmd
}

func writeCounts(w io.Writer, contexts []highlight.Context, result highlight.MultiResult) {
	fmt.Fprintf(w, "total\t%d\n", result.Total)
	for i, c := range contexts {
		fmt.Fprintf(w, "%s\t%d\n", c.Query, countAt(result, i))
	}
}

func countJSON(name string, contexts []highlight.Context, result highlight.MultiResult) ([]byte, error) {
	data := []byte(`{"contexts":[]}`)
	var err error
	if data, err = sjson.SetBytes(data, "file", name); err != nil {
		return nil, err
	}
	if data, err = sjson.SetBytes(data, "total", result.Total); err != nil {
		return nil, err
	}
	for i, c := range contexts {
		if data, err = sjson.SetBytes(data, fmt.Sprintf("contexts.%d.query", i), c.Query); err != nil {
			return nil, err
		}
		if data, err = sjson.SetBytes(data, fmt.Sprintf("contexts.%d.count", i), countAt(result, i)); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// writeSummary reports counts on one line, e.g. `3 matches (a: 2, b: 1)`.
func writeSummary(w io.Writer, s *session, result highlight.MultiResult) {
	noun := "matches"
	if result.Total == 1 {
		noun = "match"
	}
	if len(s.contexts) < 2 {
		fmt.Fprintf(w, "%s: %d %s\n", s.name, result.Total, noun)
		return
	}
	parts := make([]string, len(s.contexts))
	for i, c := range s.contexts {
		parts[i] = fmt.Sprintf("%s: %d", c.Query, countAt(result, i))
	}
	fmt.Fprintf(w, "%s: %d %s (%s)\n", s.name, result.Total, noun, strings.Join(parts, ", "))
}

func countAt(result highlight.MultiResult, i int) int {
	if i < len(result.PerContext) {
		return result.PerContext[i]
	}
	return 0
}
