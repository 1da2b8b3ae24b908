package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/elcap-firsts/internal/mountainproject"
	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
	"github.com/spf13/cobra"
)

func (a *app) newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [attribution...]",
		Short: "Split and clean attribution strings",
		Long: `Run the name extraction on attribution strings without fetching anything.
Each argument is one attribution; with no arguments, each line of stdin is.`,
		Example: `  elcap-firsts extract "Warren Harding, Wayne Merry, George Whitmore, 1958"
  cat attributions.txt | elcap-firsts extract --format json`,
		RunE: a.runExtract,
	}
}

func (a *app) runExtract(cmd *cobra.Command, args []string) error {
	format, err := a.format()
	if err != nil {
		return err
	}

	raws := args
	if len(raws) == 0 {
		if raws, err = readLines(cmd.InOrStdin()); err != nil {
			return err
		}
	}

	results := make([]pipeline.RouteResult, len(raws))
	for i, raw := range raws {
		results[i] = pipeline.Analyze(i, mountainproject.Route{}, raw)
	}

	return WriteOutput(cmd.OutOrStdout(), results, format, func(w io.Writer) error {
		return writeExtractText(w, results)
	})
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

func writeExtractText(w io.Writer, results []pipeline.RouteResult) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Raw:        %s\n", r.Raw)
		fmt.Fprintf(w, "Tokens:     %s\n", quoteAll(r.Tokens))
		fmt.Fprintf(w, "Names:      %s\n", quoteAll(r.Cleaned))
		if len(r.Dropped) > 0 {
			fmt.Fprintf(w, "Dropped:    %s\n", quoteAll(r.Dropped))
		}
		if _, err := fmt.Fprintf(w, "Confidence: %s\n", r.Confidence); err != nil {
			return err
		}
	}
	return nil
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
