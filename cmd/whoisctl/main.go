package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vit0-9/whois_api/config"
	"github.com/vit0-9/whois_api/models"
	"github.com/vit0-9/whois_api/pkg/lookup"
	"github.com/vit0-9/whois_api/pkg/utils/domain"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

var (
	lookupFormat  string
	lookupSort    string
	lookupNoWhois bool
	lookupTimeout time.Duration
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "whoisctl",
	Short:         "Domain registration lookups from the command line",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <domain>[,<domain>...] [domain...]",
	Short: "Look up registration data for one or more domains",
	Long: `Lookup queries RDAP for each domain, falling back to WHOIS, and prints the
results. Domains may be given as separate arguments or comma-separated:

  whoisctl lookup example.com,itea.dev
  whoisctl lookup --sort expiresAsc google.com github.com cloudflare.com`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the whoisctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "whoisctl", version)
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupFormat, "format", "text", "Output format: text or json")
	lookupCmd.Flags().StringVar(&lookupSort, "sort", string(lookup.SortByDomain), "Sort order: domain, expiresAsc or expiresDesc")
	lookupCmd.Flags().BoolVar(&lookupNoWhois, "no-whois", false, "Disable the WHOIS fallback and use RDAP only")
	lookupCmd.Flags().DurationVar(&lookupTimeout, "timeout", 0, "Per-protocol request timeout (default from config)")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(versionCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	sortBy, err := lookup.ParseSortBy(lookupSort)
	if err != nil {
		return err
	}
	if lookupFormat != "text" && lookupFormat != "json" {
		return fmt.Errorf("unknown format %q", lookupFormat)
	}

	domains, err := lookup.ParseDomains(strings.Join(args, ","), true)
	if err != nil {
		return err
	}

	cfg, err := config.Load(viper.New())
	if err != nil {
		return err
	}

	rcfg := domain.ResolverConfig{
		HTTPTimeout:   cfg.Resolver.HTTPTimeout,
		WhoisTimeout:  cfg.Resolver.WhoisTimeout,
		WhoisFallback: cfg.Resolver.WhoisFallback && !lookupNoWhois,
		UserAgent:     cfg.Resolver.UserAgent,
	}
	if lookupTimeout > 0 {
		rcfg.HTTPTimeout = lookupTimeout
		rcfg.WhoisTimeout = lookupTimeout
	}

	logger := zap.NewNop()
	agg := lookup.NewAggregator(domain.NewResolver(rcfg, logger), lookup.Config{
		MaxConcurrency: cfg.Lookup.MaxConcurrency,
	}, logger)

	results, err := agg.ResolveAll(context.Background(), domains)
	if err != nil {
		return err
	}

	order := lookup.SortedDomains(results, sortBy)
	out := cmd.OutOrStdout()
	if lookupFormat == "json" {
		return printLookupJSON(out, results)
	}
	return printLookupText(out, results, order, time.Now())
}

func printLookupJSON(w io.Writer, results models.BatchResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func printLookupText(w io.Writer, results models.BatchResponse, order []string, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DOMAIN\tFOUND\tREGISTRAR\tEXPIRES\tDAYS\tSTATUS\tERROR")
	for _, d := range order {
		r := results[d]
		if !r.Succeeded() {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%s\t%s\n", d, lookup.ExpirationUnknown, r.Error)
			continue
		}

		registrar := "-"
		if r.Record.Registrar != nil && r.Record.Registrar.Name != "" {
			registrar = r.Record.Registrar.Name
		}
		expires, days := "-", "-"
		if r.Record.Ts.Expires != "" {
			expires = r.Record.Ts.Expires
			if len(expires) > 10 {
				expires = expires[:10]
			}
			if n, ok := lookup.DaysUntil(r.Record.Ts.Expires, now); ok {
				days = fmt.Sprint(n)
			}
		}
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\t%s\t%s\t\n",
			d, r.Record.Found, registrar, expires, days, lookup.StatusFor(r, now))
	}
	return tw.Flush()
}
