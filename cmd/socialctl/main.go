// Command socialctl queries the social media test API from the terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vadim/social-pulse/internal/app"
	"github.com/vadim/social-pulse/internal/config"
	checkservice "github.com/vadim/social-pulse/internal/domain/check/service"
	"github.com/vadim/social-pulse/internal/domain/social/entity"
	"github.com/vadim/social-pulse/internal/domain/social/policy"
)

var (
	baseURL string
	timeout time.Duration
	verbose bool
	limit   int
)

// errChecksFailed makes the process exit non-zero when a check did not pass
var errChecksFailed = errors.New("one or more checks failed")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "socialctl",
	Short:         "Query the social media test API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the users with the most posts",
	RunE:  runTop,
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Print posts ordered by comment count",
	RunE:  runTrending,
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Print posts ordered by timestamp, newest first",
	RunE:  runFeed,
}

var numbersCmd = &cobra.Command{
	Use:   "numbers <kind>",
	Short: "Print a number series and its average (p, f, e, r)",
	Args:  cobra.ExactArgs(1),
	RunE:  runNumbers,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the API contract checks",
	Long: `Run the API contract checks against the upstream API and print the report.

Exits non-zero when any check fails.`,
	RunE: runCheck,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Upstream API base URL (default: UPSTREAM_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per request timeout (default: UPSTREAM_TIMEOUT)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log upstream requests to stderr")

	topCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of users to print (default 5)")

	rootCmd.AddCommand(topCmd, trendingCmd, feedCmd, numbersCmd, checkCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// socialPolicy builds the policy stack from the environment and the flags
func socialPolicy() (*policy.Policy, *checkservice.Suite, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if baseURL != "" {
		cfg.Upstream.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.Upstream.Timeout = timeout
	}

	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client, svc := app.NewSocialService(cfg.Upstream, logger)
	suite := checkservice.NewSuite(client, svc, entity.NumberKinds, logger)
	return policy.New(svc), suite, nil
}

func runTop(cmd *cobra.Command, args []string) error {
	p, _, err := socialPolicy()
	if err != nil {
		return err
	}

	users, err := p.TopUsers(cmd.Context(), policy.TopUsersInput{Limit: limit})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), users)
}

func runTrending(cmd *cobra.Command, args []string) error {
	return runPosts(cmd, (*policy.Policy).TrendingPosts)
}

func runFeed(cmd *cobra.Command, args []string) error {
	return runPosts(cmd, (*policy.Policy).Feed)
}

func runPosts(cmd *cobra.Command, view func(*policy.Policy, context.Context) ([]entity.Post, error)) error {
	p, _, err := socialPolicy()
	if err != nil {
		return err
	}

	posts, err := view(p, cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), posts)
}

func runNumbers(cmd *cobra.Command, args []string) error {
	kind, err := entity.ParseNumberKind(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q", err, args[0])
	}

	p, _, err := socialPolicy()
	if err != nil {
		return err
	}

	series, err := p.Numbers(cmd.Context(), kind)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), series)
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, suite, err := socialPolicy()
	if err != nil {
		return err
	}

	report := suite.Run(cmd.Context())
	if err := printJSON(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if !report.Passed {
		return fmt.Errorf("%w: %d of %d", errChecksFailed, len(report.Failed()), len(report.Results))
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
