package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nvoss/dirscout/internal/config"
	"github.com/nvoss/dirscout/internal/runner"
	"github.com/nvoss/dirscout/pkg/version"
)

var opts config.Options

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"url", "wordlist"}},
	{"PROBING", []string{"threads", "max-retry", "timeout", "rate"}},
	{"CLASSIFICATION", []string{"similarity-threshold", "include-status", "exclude-status", "dedupe"}},
	{"NOTIFICATION", []string{"webhook", "on-result"}},
	{"HTTP", []string{"user-agent", "proxy", "follow-redirects"}},
	{"OUTPUT", []string{"output", "format", "quiet", "no-color"}},
}

var rootCmd = &cobra.Command{
	Use:     "dirscout -u <url> [flags]",
	Short:   "Unlinked-resource scanner with baseline false-positive suppression",
	Version: version.Version,
	Long: `dirscout probes a web server for accessible-but-unlinked resources
(exposed configuration, backups, admin panels) by testing a wordlist of
candidate paths. It fingerprints the site's index and 404 pages first
and suppresses responses that merely echo them, so catch-all and
soft-404 servers don't flood the results.`,
	Example: `  dirscout -u https://example.com
  dirscout -u https://example.com -w paths.txt -t 10
  dirscout -u https://example.com --webhook https://discord.com/api/webhooks/...
  dirscout -u https://example.com --max-retry 5 --timeout 15s
  dirscout -u https://example.com --format json -o findings.json
  dirscout -u https://example.com --on-result "notify-send {url}"`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if opts.URL == "" {
			_ = cmd.Help()
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("target required: use -u")
		}
		if !strings.HasPrefix(opts.URL, "http://") && !strings.HasPrefix(opts.URL, "https://") {
			opts.URL = "http://" + opts.URL
		}
		opts.URL = strings.TrimRight(opts.URL, "/")
		if len(opts.IncludeStatus) > 0 && len(opts.ExcludeStatus) > 0 {
			return fmt.Errorf("--include-status and --exclude-status are mutually exclusive")
		}
		if opts.SimilarityThreshold <= 0 || opts.SimilarityThreshold > 1 {
			return fmt.Errorf("--similarity-threshold must be in (0, 1]")
		}
		if opts.OutputFormat != "text" && opts.OutputFormat != "json" {
			return fmt.Errorf("--format must be one of: text, json")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runner.Run(ctx, &opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()

	// Target
	f.StringVarP(&opts.URL, "url", "u", "", "Target URL")
	f.StringVarP(&opts.WordlistPath, "wordlist", "w", "wl.txt", "Wordlist path (built-in list on read failure)")

	// Probing
	f.IntVarP(&opts.Threads, "threads", "t", 5, "Number of concurrent probes")
	f.IntVar(&opts.MaxRetry, "max-retry", 3, "Extra attempts per request on transport failure")
	f.DurationVar(&opts.Timeout, "timeout", 10*time.Second, "HTTP request timeout")
	f.Float64Var(&opts.Rate, "rate", 0, "Max requests per second across all probes (0 = unlimited)")

	// Classification
	f.Float64Var(&opts.SimilarityThreshold, "similarity-threshold", 0.8, "Token-overlap ratio above which a body matches a baseline")
	f.VarP(&intSliceValue{target: &opts.IncludeStatus}, "include-status", "i", "Only report these success (2xx) status codes (comma-separated)")
	f.VarP(&intSliceValue{target: &opts.ExcludeStatus}, "exclude-status", "x", "Suppress these success (2xx) status codes (comma-separated)")
	f.BoolVar(&opts.Dedupe, "dedupe", false, "Suppress repeated identical responses (catch-all routes)")

	// Notification
	f.StringVar(&opts.WebhookURL, "webhook", "", "Webhook URL notified per finding")
	f.StringVar(&opts.OnResultCmd, "on-result", "", "Shell command to run per finding (receives JSON on stdin)")

	// HTTP
	f.StringVar(&opts.UserAgent, "user-agent", "", "Custom User-Agent string")
	f.StringVar(&opts.Proxy, "proxy", "", "HTTP/SOCKS proxy URL")
	f.BoolVar(&opts.FollowRedirects, "follow-redirects", false, "Follow HTTP redirects")

	// Output
	f.StringVarP(&opts.OutputFile, "output", "o", "", "Output file path")
	f.StringVar(&opts.OutputFormat, "format", "text", "Output format: text, json")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Minimal output")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")

	// Custom help: categorized flags like httpx.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := os.Stderr
		fmt.Fprint(w, helpBanner(cmd.Version))
		fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintln(w)
	})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// intSliceValue implements pflag.Value for comma-separated int slices.
type intSliceValue struct {
	target *[]int
}

func (v *intSliceValue) String() string {
	if v.target == nil || len(*v.target) == 0 {
		return ""
	}
	parts := make([]string, len(*v.target))
	for i, val := range *v.target {
		parts[i] = strconv.Itoa(val)
	}
	return strings.Join(parts, ",")
}

func (v *intSliceValue) Set(s string) error {
	parts := strings.Split(s, ",")
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid status code %q: %w", p, err)
		}
		*v.target = append(*v.target, n)
	}
	return nil
}

func (v *intSliceValue) Type() string { return "ints" }

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 36
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	// Show default for non-zero values.
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "0s" && def != "[]" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}

func helpBanner(ver string) string {
	if ver != "dev" && ver != "" && !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}
	return fmt.Sprintf(`
        ___                          __
   ____/ (_)____________  __  __  __/ /_
  / __  / / ___/ ___/ _ \/ / / / / / __/
 / /_/ / / /  (__  ) /__/ /_/ / /_/ / /_
 \__,_/_/_/  /____/\___/\____/\____/\__/   %s

`, ver)
}
