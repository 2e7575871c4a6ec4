package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	baseURL        string
	timeout        time.Duration
	actorID        string
	role           string
	token          string
	idempotencyKey string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "gotill-cli",
		Short:         "GoTill CLI tool",
		Long:          `A command line interface for running till sessions against the GoTill API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.baseURL, "url", envOr("GOTILL_URL", "http://localhost:8080"), "Base URL of the GoTill API")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	flags.StringVar(&opts.actorID, "actor", os.Getenv("GOTILL_ACTOR"), "Staff member ID sent as X-Actor-ID")
	flags.StringVar(&opts.role, "role", envOr("GOTILL_ROLE", "cashier"), "Staff role sent as X-Actor-Role")
	flags.StringVar(&opts.token, "token", os.Getenv("GOTILL_TOKEN"), "Bearer token; overrides --actor and --role")
	flags.StringVar(&opts.idempotencyKey, "idempotency-key", "", "Idempotency-Key header for commands")

	rootCmd.AddCommand(
		tillCmd(opts),
		ledgerCmd(opts),
		denominationsCmd(opts),
		tokenCmd(),
		salesCmd(),
	)

	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
