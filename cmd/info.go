package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"revwhoix-cli/internal/detail"
	"revwhoix-cli/internal/render"
)

// maxParallelInfo bounds concurrent detail requests.
const maxParallelInfo = 4

var (
	infoTab    string
	infoRaw    bool
	infoOutput string
)

var infoCmd = &cobra.Command{
	Use:   "info [domain]...",
	Short: "Show registration and DNS details of one or more domains",
	Long: `Fetches the registration record of each domain and prints it as the detail
view: summary, one tab (or all of them with --tab all) and optionally the raw
WHOIS text. A domain that cannot be fetched is shown as unavailable without
affecting the others.

Tabs: registrant, admin, tech, nameservers, status, location, dns.`,
	Example: `  revwhoix info example.com
  revwhoix info example.com --tab dns --raw
  revwhoix info a.com b.com c.com -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, all, err := parseTabFlag(infoTab)
		if err != nil {
			return err
		}
		fetcher := detail.NewFetcher(newClient())
		views := fetchViews(cmd.Context(), fetcher, args)

		switch strings.ToLower(infoOutput) {
		case "json":
			return printInfoJSON(cmd.OutOrStdout(), views)
		case "text":
			for i, v := range views {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if !all && !v.Fallback() {
					_ = v.Select(tab)
				}
				if infoRaw {
					v.ToggleRaw()
				}
				fmt.Fprint(cmd.OutOrStdout(), render.Detail(v, render.DetailOptions{AllTabs: all}))
			}
			return nil
		default:
			return fmt.Errorf("unknown output format %q (use text or json)", infoOutput)
		}
	},
}

func parseTabFlag(s string) (detail.TabID, bool, error) {
	if strings.EqualFold(s, "all") {
		return "", true, nil
	}
	id, err := detail.ParseTab(s)
	return id, false, err
}

// fetchViews fetches every domain with bounded concurrency. Views come back
// in argument order; failures become fallback views.
func fetchViews(ctx context.Context, fetcher *detail.Fetcher, domains []string) []*detail.View {
	views := make([]*detail.View, len(domains))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelInfo)
	for i, d := range domains {
		g.Go(func() error {
			domain := strings.ToLower(strings.TrimSpace(d))
			log.WithField("domain", domain).Debug("fetching details")
			views[i] = fetcher.View(ctx, domain)
			return nil
		})
	}
	_ = g.Wait()
	return views
}

type infoResult struct {
	Domain string         `json:"domain"`
	Status string         `json:"status"`
	Error  string         `json:"error,omitempty"`
	Record *detail.Record `json:"record,omitempty"`
}

func printInfoJSON(w io.Writer, views []*detail.View) error {
	out := make([]infoResult, 0, len(views))
	for _, v := range views {
		r := infoResult{Domain: v.Domain, Status: "ok", Record: v.Record}
		if v.Fallback() {
			r.Status = detail.UnavailableStatus
			r.Error = v.Error
		} else if !infoRaw {
			rec := *v.Record
			rec.RawText = ""
			r.Record = &rec
		}
		out = append(out, r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoTab, "tab", string(detail.TabRegistrant), "Tab to show: registrant, admin, tech, nameservers, status, location, dns or all")
	infoCmd.Flags().BoolVar(&infoRaw, "raw", false, "Include the raw WHOIS text")
	infoCmd.Flags().StringVarP(&infoOutput, "output", "o", "text", "Output format: text, json")
}
