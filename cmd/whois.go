package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"revwhoix-cli/internal/config"
	"revwhoix-cli/internal/ui"
	"revwhoix-cli/internal/whois"
)

var whoisBrief bool

var whoisCmd = &cobra.Command{
	Use:   "whois [domain]",
	Short: "Run a live WHOIS lookup for a domain",
	Long: `Queries the WHOIS servers directly (not the backend) and prints the raw answer,
followed by a guess whether the domain is registered or available.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain := strings.ToLower(strings.TrimSpace(args[0]))
		res, err := whois.NewClient(config.GetTimeout()).Lookup(cmd.Context(), domain)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !whoisBrief {
			fmt.Fprintln(out, strings.TrimRight(res.Raw, "\n"))
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s %s\n", domain, availabilityLabel(res.Availability))
		return nil
	},
}

func availabilityLabel(a whois.Availability) string {
	switch a {
	case whois.Registered:
		return ui.StyleWarning.Render("is registered")
	case whois.Available:
		return ui.StyleSuccess.Render("looks available")
	default:
		return ui.StyleMuted.Render("status unknown")
	}
}

func init() {
	rootCmd.AddCommand(whoisCmd)
	whoisCmd.Flags().BoolVar(&whoisBrief, "brief", false, "Only print the availability verdict")
}
