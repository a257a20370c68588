package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"bluerhyno/internal/bootstrap/logging"
	"bluerhyno/internal/errs"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative maintenance commands",
}

var adminDeleteCustomerCmd = &cobra.Command{
	Use:   "delete-customer <id>",
	Short: "Delete a customer and every dependent record",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, deps appDeps) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, err := strconv.ParseUint(cmd.Flags().Arg(0), 10, 64)
		if err != nil {
			return errs.Wrap(err, "parse customer id")
		}

		summary, err := deps.Svc.DeleteCustomer(ctx, id)
		if err != nil {
			return err
		}

		for _, table := range summary.Tables() {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows deleted\n", table, summary.RowsDeleted[table]); err != nil {
				return errs.Wrap(err, "write delete output")
			}
		}
		return nil
	}),
}

var adminDeleteQuoteCmd = &cobra.Command{
	Use:   "delete-quote <id>",
	Short: "Delete a quote and its project, invoices, and payments",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, deps appDeps) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, err := strconv.ParseUint(cmd.Flags().Arg(0), 10, 64)
		if err != nil {
			return errs.Wrap(err, "parse quote id")
		}

		summary, err := deps.Svc.DeleteQuote(ctx, id)
		if err != nil {
			return err
		}

		for _, table := range summary.Tables() {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows deleted\n", table, summary.RowsDeleted[table]); err != nil {
				return errs.Wrap(err, "write delete output")
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminDeleteCustomerCmd)
	adminCmd.AddCommand(adminDeleteQuoteCmd)
}
