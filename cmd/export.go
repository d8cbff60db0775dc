package cmd

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"revwhoix-cli/internal/render"
	"revwhoix-cli/internal/search"
)

var (
	exportFilter  string
	exportOutFile string
)

var exportCmd = &cobra.Command{
	Use:   "export [keyword]",
	Short: "Search and save the matching domains as a CSV file",
	Long: `Runs a search, applies the optional filter and writes every matching domain,
one per line, to a CSV file in the result directory. The default file name is
revwhoix-domains-YYYY-MM-DD.csv.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession(cmd.ErrOrStderr())

		outcome, err := sess.Search(cmd.Context(), args[0])
		if err != nil {
			return errReported
		}
		switch o := outcome.(type) {
		case search.Failure:
			return errReported
		case search.Empty:
			fmt.Fprintln(cmd.ErrOrStderr(), render.NoResults(o.Keyword))
			return nil
		}
		if exportFilter != "" {
			sess.Filter(exportFilter)
		}

		path, err := sess.ExportCSV(exportFileName(exportOutFile))
		if err != nil {
			return errReported
		}
		abs, _ := filepath.Abs(path)
		fmt.Fprintln(cmd.OutOrStdout(), abs)
		return nil
	},
}

// exportFileName sanitizes the base name of a user supplied file and makes
// sure it ends in .csv. An empty name selects the dated default.
func exportFileName(name string) string {
	if name == "" {
		return ""
	}
	dir, base := filepath.Split(name)
	base = sanitizeFilename(base)
	if !strings.EqualFold(filepath.Ext(base), ".csv") {
		base += ".csv"
	}
	return filepath.Join(dir, base)
}

// sanitizeFilename replaces characters that are illegal/unsafe in filenames
func sanitizeFilename(name string) string {
	// Replace directory separators and common illegal chars
	reg := regexp.MustCompile(`[\\/:*?"<>|]`)
	safe := reg.ReplaceAllString(name, "_")
	// Trim spaces and dots from ends
	safe = strings.Trim(safe, " .")
	if safe == "" {
		return "search_result"
	}
	return safe
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFilter, "filter", "", "Only export domains containing this text (case-insensitive)")
	exportCmd.Flags().StringVarP(&exportOutFile, "file", "f", "", "Output file (default saved to the result directory)")
}
