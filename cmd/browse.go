package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"revwhoix-cli/internal/config"
	"revwhoix-cli/internal/tui"
	"revwhoix-cli/internal/whois"
)

var browseCmd = &cobra.Command{
	Use:   "browse [keyword]",
	Short: "Search and explore results interactively",
	Long: `Opens the interactive browser. Type a keyword and press enter to search, then
page with n/p, filter with /, open a domain with enter, switch detail tabs with
tab, toggle raw WHOIS text with r, copy with c/C and export with e.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// notifications go to the status bar, not the terminal
		sess := newSession(nil)
		return tui.Run(cmd.Context(), sess, whois.NewClient(config.GetTimeout()), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
