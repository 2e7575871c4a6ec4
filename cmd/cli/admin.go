package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/gotill/internal/adapter/http/dto"
	redisRepo "github.com/iho/gotill/internal/adapter/repository/redis"
	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/infrastructure/auth"
)

func ledgerCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check every session against its ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out struct {
				Consistent           bool     `json:"consistent"`
				InconsistentSessions []string `json:"inconsistent_sessions"`
			}
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/ledger/consistency", nil, &out); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Consistent {
				fmt.Fprintf(w, "Consistency check FAILED: %d session(s)\n", len(out.InconsistentSessions))
				for _, id := range out.InconsistentSessions {
					fmt.Fprintf(w, "  %s\n", id)
				}
				return fmt.Errorf("ledger inconsistent")
			}
			fmt.Fprintln(w, "Consistency check PASSED")
			return nil
		},
	}

	var limit, offset int
	posOpsCmd := &cobra.Command{
		Use:   "operations POS_ID",
		Short: "List the operations of a point of sale, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("limit", fmt.Sprint(limit))
			q.Set("offset", fmt.Sprint(offset))
			path := "/api/v1/points-of-sale/" + url.PathEscape(args[0]) + "/operations?" + q.Encode()

			var out []dto.OperationResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path, nil, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	posOpsCmd.Flags().IntVar(&limit, "limit", 50, "Page size")
	posOpsCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	cmd.AddCommand(consistencyCmd, posOpsCmd, sessionsExportCmd(opts))
	return cmd
}

func sessionsExportCmd(opts *globalOptions) *cobra.Command {
	var from, to, output string

	cmd := &cobra.Command{
		Use:   "export POS_ID",
		Short: "Download a point of sale's shift reports as a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if from != "" {
				q.Set("from", from)
			}
			if to != "" {
				q.Set("to", to)
			}
			path := "/api/v1/points-of-sale/" + url.PathEscape(args[0]) + "/sessions/export"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			data, err := newAPIClient(opts).fetch(cmd.Context(), http.MethodGet, path, nil)
			if err != nil {
				return err
			}
			if output == "" {
				output = fmt.Sprintf("shifts-%s.xlsx", args[0])
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, len(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Only sessions opened at or after this RFC3339 time")
	cmd.Flags().StringVar(&to, "to", "", "Only sessions opened before this RFC3339 time")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	return cmd
}

func denominationsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "denominations",
		Short: "List the accepted bill and coin values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []dto.DenominationResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/denominations", nil, &out); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, d := range out {
				fmt.Fprintf(w, "%-8s %s\n", d.Value, d.Kind)
			}
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Bearer token helpers",
	}

	var (
		secret string
		ttl    time.Duration
	)
	issueCmd := &cobra.Command{
		Use:   "issue ACTOR_ID ROLE",
		Short: "Sign a bearer token for a staff member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("--secret or JWT_SECRET is required")
			}
			token, err := auth.NewJWTManager(secret, ttl).Generate(domain.Actor{
				ID:   args[0],
				Role: domain.Role(args[1]),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issueCmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "HMAC signing secret")
	issueCmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "Token lifetime")

	cmd.AddCommand(issueCmd)
	return cmd
}

func salesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Cumulative sales feed helpers",
	}

	var redisURL, cash, card, online string
	setCmd := &cobra.Command{
		Use:   "set POS_ID",
		Short: "Overwrite the cumulative sales of a point of sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			totals, err := parseSalesTotals(cash, card, online)
			if err != nil {
				return err
			}

			redisOpts, err := goredis.ParseURL(redisURL)
			if err != nil {
				return fmt.Errorf("parse redis url: %w", err)
			}
			client := goredis.NewClient(redisOpts)
			defer client.Close()

			if err := redisRepo.NewSalesReader(client).SetCumulativeSales(cmd.Context(), args[0], totals); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sales for %s: cash=%s card=%s online=%s\n",
				args[0], totals.Cash.StringFixed(2), totals.Card.StringFixed(2), totals.Online.StringFixed(2))
			return nil
		},
	}
	setCmd.Flags().StringVar(&redisURL, "redis", envOr("REDIS_URL", "redis://localhost:6379"), "Redis URL")
	setCmd.Flags().StringVar(&cash, "cash", "0", "Cumulative cash sales")
	setCmd.Flags().StringVar(&card, "card", "0", "Cumulative card sales")
	setCmd.Flags().StringVar(&online, "online", "0", "Cumulative online sales")

	cmd.AddCommand(setCmd)
	return cmd
}

func parseSalesTotals(cash, card, online string) (domain.SalesTotals, error) {
	var totals domain.SalesTotals
	for _, f := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"cash", cash, &totals.Cash},
		{"card", card, &totals.Card},
		{"online", online, &totals.Online},
	} {
		v, err := decimal.NewFromString(f.raw)
		if err != nil {
			return domain.SalesTotals{}, fmt.Errorf("invalid %s amount %q: %w", f.name, f.raw, err)
		}
		if v.IsNegative() {
			return domain.SalesTotals{}, fmt.Errorf("%s amount cannot be negative", f.name)
		}
		*f.dst = v
	}
	return totals, nil
}
