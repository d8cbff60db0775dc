package cmd

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"revwhoix-cli/internal/render"
	"revwhoix-cli/internal/results"
	"revwhoix-cli/internal/search"
	"revwhoix-cli/internal/session"
)

var (
	searchFilter  string
	searchPage    int
	searchAll     bool
	searchOutput  string
	searchCopy    bool
	searchExport  bool
	searchOutFile string
	searchSilent  bool
)

// errReported marks a failure the user has already been told about.
var errReported = errors.New("reported")

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Find domains whose registration data matches a keyword",
	Long: `Searches the backend for domains matching the keyword. When the first attempt
finds nothing, one retry with the alternative strategy is made automatically.

Results are shown 30 per page; use --page to pick a page, --all for the whole
(filtered) list, --filter to narrow it down.`,
	Example: `  revwhoix search shop
  revwhoix search shop --filter store --page 2
  revwhoix search shop --all -o csv > shop.csv
  revwhoix search shop --export`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var notices io.Writer = cmd.ErrOrStderr()
		if searchSilent {
			notices = nil
		}
		sess := newSession(notices)
		if err := runSearch(cmd, sess, args[0]); err != nil {
			return err
		}
		if searchSilent {
			return nil
		}
		return printResults(cmd.OutOrStdout(), sess.Store, searchOutput, searchAll)
	},
}

// runSearch performs the search and prepares the store: filter, page, and the
// copy/export side actions requested by flags.
func runSearch(cmd *cobra.Command, sess *session.Session, keyword string) error {
	if !searchSilent {
		fmt.Fprintf(cmd.ErrOrStderr(), "Searching for '%s'...\n", strings.TrimSpace(keyword))
	}
	outcome, err := sess.Search(cmd.Context(), keyword)
	if err != nil {
		if errors.Is(err, search.ErrEmptyKeyword) {
			return errReported
		}
		return err
	}

	switch o := outcome.(type) {
	case search.Failure:
		return errReported
	case search.Empty:
		if !searchSilent {
			fmt.Fprintln(cmd.ErrOrStderr(), render.NoResults(o.Keyword))
		}
		return nil
	}

	if searchFilter != "" {
		sess.Filter(searchFilter)
	}
	for i := 1; i < searchPage && sess.Store.Next(); i++ {
	}

	if searchCopy {
		_ = sess.CopyAll()
	}
	if searchExport {
		path, err := sess.ExportCSV(exportFileName(searchOutFile))
		switch {
		case errors.Is(err, results.ErrNothingToExport):
			// warned already; an empty filtered set is not a failure
		case err != nil:
			return errReported
		case searchSilent:
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
	}
	return nil
}

type searchResult struct {
	Keyword    string   `json:"keyword"`
	Count      int      `json:"count"`
	Filter     string   `json:"filter,omitempty"`
	Matched    int      `json:"matched"`
	Page       int      `json:"page,omitempty"`
	TotalPages int      `json:"total_pages,omitempty"`
	Domains    []string `json:"domains"`
}

func printResults(w io.Writer, store *results.Store, format string, all bool) error {
	if len(store.All()) == 0 {
		return nil
	}

	domains := store.CurrentPageItems()
	if all {
		domains = store.Filtered()
	}

	switch strings.ToLower(format) {
	case "json":
		p := store.Pagination()
		out := searchResult{
			Keyword: store.Keyword(),
			Count:   store.Count(),
			Filter:  store.FilterText(),
			Matched: p.Filtered,
			Domains: domains,
		}
		if !all {
			out.Page, out.TotalPages = p.Page, p.TotalPages
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "csv":
		writer := csv.NewWriter(w)
		_ = writer.Write([]string{"Domain"})
		for _, d := range domains {
			_ = writer.Write([]string{d})
		}
		writer.Flush()
		return writer.Error()
	case "text":
		if all {
			for _, d := range domains {
				fmt.Fprintln(w, d)
			}
			return nil
		}
		fmt.Fprintln(w, render.Header(store))
		fmt.Fprintln(w)
		fmt.Fprintln(w, render.Page(store, -1))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use text, json or csv)", format)
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchFilter, "filter", "", "Only keep domains containing this text (case-insensitive)")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Page to show (30 domains per page)")
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "Print every matching domain instead of one page")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "text", "Output format: text, json, csv")
	searchCmd.Flags().BoolVar(&searchCopy, "copy", false, "Copy the matching domains to the clipboard")
	searchCmd.Flags().BoolVar(&searchExport, "export", false, "Save the matching domains as CSV (default saved to the result directory)")
	searchCmd.Flags().StringVarP(&searchOutFile, "file", "f", "", "CSV file for --export (default revwhoix-domains-YYYY-MM-DD.csv)")
	searchCmd.Flags().BoolVar(&searchSilent, "silent", false, "Suppress notifications and console output")
}
