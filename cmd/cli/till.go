package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iho/gotill/internal/adapter/http/dto"
)

func tillCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "till",
		Short: "Till session commands",
	}

	cmd.AddCommand(
		tillOpenCmd(opts),
		cashMovementCmd(opts, "withdraw", "Take cash out of the drawer", "withdrawals"),
		cashMovementCmd(opts, "consume", "Record in-house consumption paid from the drawer", "consumptions"),
		tillRefundCmd(opts),
		tillCountCmd(opts, "recount", "Record a mid-shift recount", "recounts"),
		tillCountCmd(opts, "close", "Count the drawer and close the session", "close"),
		tillGetCmd(opts, "get", "Show a session", ""),
		tillGetCmd(opts, "operations", "List a session's ledger", "/operations"),
		tillGetCmd(opts, "report", "Show a session's shift report", "/report"),
		tillGetCmd(opts, "verify", "Replay a session's ledger and compare it to the stored totals", "/verify"),
		tillCurrentCmd(opts),
	)
	return cmd
}

func tillOpenCmd(opts *globalOptions) *cobra.Command {
	var req dto.OpenTillRequest

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a till session for a point of sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out dto.SessionResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/api/v1/tills/", req, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&req.PointOfSaleID, "pos", "", "Point of sale ID")
	cmd.Flags().StringVar(&req.CompanyID, "company", "", "Company ID")
	cmd.Flags().StringVar(&req.ShiftLabel, "shift", "", "Shift label")
	cmd.Flags().StringVar(&req.OpeningFloat, "float", "0", "Opening float")
	_ = cmd.MarkFlagRequired("pos")
	return cmd
}

func cashMovementCmd(opts *globalOptions, use, short, resource string) *cobra.Command {
	var req dto.CashMovementRequest

	cmd := &cobra.Command{
		Use:   use + " SESSION_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out dto.SessionResponse
			path := "/api/v1/tills/" + url.PathEscape(args[0]) + "/" + resource
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, path, req, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&req.Amount, "amount", "", "Amount")
	cmd.Flags().StringVar(&req.Note, "note", "", "Free-form note")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func tillRefundCmd(opts *globalOptions) *cobra.Command {
	var req dto.RefundRequest

	cmd := &cobra.Command{
		Use:   "refund SESSION_ID",
		Short: "Record a refund to a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out dto.SessionResponse
			path := "/api/v1/tills/" + url.PathEscape(args[0]) + "/refunds"
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, path, req, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&req.Amount, "amount", "", "Refunded amount")
	cmd.Flags().StringVar(&req.PaymentMethod, "method", "cash", "Payment method: cash, card or online")
	cmd.Flags().StringVar(&req.OrderRef, "order", "", "Order reference")
	cmd.Flags().StringVar(&req.Note, "note", "", "Free-form note")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func tillCountCmd(opts *globalOptions, use, short, resource string) *cobra.Command {
	var (
		counts []string
		note   string
	)

	cmd := &cobra.Command{
		Use:   use + " SESSION_ID",
		Short: short,
		Long:  short + ". Pass one --count VALUE=QUANTITY per denomination, e.g. --count 50=2 --count 0.5=4.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := parseCounts(counts)
			if err != nil {
				return err
			}
			req := dto.CountRequest{Counts: lines, Note: note}

			var out dto.SessionResponse
			path := "/api/v1/tills/" + url.PathEscape(args[0]) + "/" + resource
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, path, req, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringArrayVar(&counts, "count", nil, "Denomination count as VALUE=QUANTITY (repeatable)")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")
	return cmd
}

func tillGetCmd(opts *globalOptions, use, short, suffix string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SESSION_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out any
			path := "/api/v1/tills/" + url.PathEscape(args[0]) + suffix
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path, nil, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func tillCurrentCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "current POS_ID",
		Short: "Show the open session of a point of sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out dto.SessionResponse
			path := "/api/v1/points-of-sale/" + url.PathEscape(args[0]) + "/open"
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path, nil, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

// parseCounts turns VALUE=QUANTITY pairs into count lines. Value validation
// is left to the server.
func parseCounts(pairs []string) ([]dto.DenominationLine, error) {
	lines := make([]dto.DenominationLine, 0, len(pairs))
	for _, pair := range pairs {
		value, qty, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("invalid count %q: expected VALUE=QUANTITY", pair)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(qty), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", pair, err)
		}
		lines = append(lines, dto.DenominationLine{Value: strings.TrimSpace(value), Quantity: n})
	}
	return lines, nil
}
