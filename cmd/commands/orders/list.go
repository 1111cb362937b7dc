package orders

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"bakehouse/zipporder/internal/app"
	"bakehouse/zipporder/internal/orders"
	"bakehouse/zipporder/internal/util"

	"github.com/spf13/cobra"
)

// errNotSignedIn mirrors the app, where orders are only reachable after
// signing in.
var errNotSignedIn = errors.New(`not signed in (run "zipporder auth login")`)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		Long: `List the orders of the signed-in account.

Examples:
  zipporder orders list
  zipporder orders list -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unknown output format %q (valid: table, json)", output)
	}

	a, err := app.Load(cmd.Context(), app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.Session.State().IsAuthenticated {
		return errNotSignedIn
	}

	list, err := a.Orders.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No orders yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tORDER\tDATE\tSTATUS\tAMOUNT")
	fmt.Fprintln(w, "--\t-----\t----\t------\t------")
	for _, o := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.ID, o.Title, o.Date, o.Status, util.FormatCents(o.Amount))
	}
	w.Flush()

	s := orders.Summarize(list)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d orders, %d pending, %s spent\n", s.Count, s.Pending, util.FormatCents(s.TotalSpent))
	return nil
}
