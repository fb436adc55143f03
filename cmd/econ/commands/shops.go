package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/spf13/cobra"
)

// NewShopsCommand creates the shops command group.
func NewShopsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shops",
		Aliases: []string{"shop"},
		Short:   "Query shops",
		Long:    "List and inspect player shops, their current prices and change history",
	}

	cmd.AddCommand(newShopsListCommand())
	cmd.AddCommand(newShopsGetCommand())
	cmd.AddCommand(newShopsItemsCommand())
	cmd.AddCommand(newShopsChangesCommand())

	return cmd
}

func newShopsListCommand() *cobra.Command {
	var (
		flags  listFlags
		owner  string
		item   string
		active bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shops",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &econ.ShopListOptions{
				ListOptions: flags.options(),
				OwnerID:     owner,
				ItemID:      item,
			}

			if cmd.Flags().Changed("active") {
				opts.Active = &active
			}

			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				shops, err := client.Shops().List(ctx, opts)
				if err != nil {
					return fmt.Errorf("failed to list shops: %w", err)
				}

				return listAndRender(cmd.OutOrStdout(), shops, flags.filter, renderShopsTable)
			})
		},
	}

	addListFlags(cmd, &flags)
	cmd.Flags().StringVar(&owner, "owner", "", "only shops owned by this player ID")
	cmd.Flags().StringVar(&item, "item", "", "only shops trading this item ID")
	cmd.Flags().BoolVar(&active, "active", false, "only active (true) or inactive (false) shops")

	return cmd
}

func newShopsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SHOP_ID",
		Short: "Show a shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				shop, err := client.Shops().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get shop: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), shop, func(w io.Writer) error {
					return renderShopsTable(w, []econ.Shop{*shop})
				})
			})
		},
	}
}

func newShopsItemsCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "items SHOP_ID",
		Short: "List the current prices of a shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				prices, err := client.Shops().Items(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to list shop items: %w", err)
				}

				return listAndRender(cmd.OutOrStdout(), prices, filter, renderPricesTable)
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "filter expression applied to the results")

	return cmd
}

func newShopsChangesCommand() *cobra.Command {
	var (
		flags  listFlags
		since  string
		action string
	)

	cmd := &cobra.Command{
		Use:   "changes SHOP_ID",
		Short: "List the change history of a shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &econ.ChangeLogOptions{ListOptions: flags.options(), Action: action}

			if since != "" {
				parsed, err := parseSince(since, time.Now())
				if err != nil {
					return err
				}

				opts.Since = parsed
			}

			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				changes, err := client.Shops().Changes(ctx, args[0], opts)
				if err != nil {
					return fmt.Errorf("failed to list shop changes: %w", err)
				}

				return listAndRender(cmd.OutOrStdout(), changes, flags.filter, renderChangesTable)
			})
		},
	}

	addListFlags(cmd, &flags)
	cmd.Flags().StringVar(&since, "since", "", "RFC3339 timestamp or duration ago, e.g. 24h")
	cmd.Flags().StringVar(&action, "action", "", "only changes of this action (create, update, delete)")

	return cmd
}

// parseSince accepts an RFC3339 timestamp or a duration counted back from now.
func parseSince(value string, now time.Time) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return parsed, nil
	}

	ago, durationErr := time.ParseDuration(value)
	if durationErr != nil {
		return time.Time{}, fmt.Errorf("invalid --since %q: %w", value, err)
	}

	return now.Add(-ago), nil
}

func renderShopsTable(w io.Writer, shops []econ.Shop) error {
	rows := make([][]string, 0, len(shops))
	for _, shop := range shops {
		rows = append(rows, []string{
			shop.ID,
			shop.Name,
			shop.OwnerID,
			formatBool(shop.Active),
			strconv.Itoa(shop.ItemCount),
			formatTime(shop.UpdatedAt),
		})
	}

	return renderTable(w, "No shops found",
		[]string{"ID", "Name", "Owner", "Active", "Items", "Updated"}, rows)
}

func renderPricesTable(w io.Writer, prices []econ.Price) error {
	rows := make([][]string, 0, len(prices))
	for _, price := range prices {
		rows = append(rows, []string{
			price.ShopID,
			price.ItemID,
			price.ItemName,
			formatPrice(price.BuyPrice),
			formatPrice(price.SellPrice),
			strconv.Itoa(price.Quantity),
			strconv.Itoa(price.Stock),
		})
	}

	return renderTable(w, "No prices found",
		[]string{"Shop", "Item", "Name", "Buy", "Sell", "Quantity", "Stock"}, rows)
}

func renderChangesTable(w io.Writer, changes []econ.ChangeLogEntry) error {
	rows := make([][]string, 0, len(changes))
	for _, change := range changes {
		rows = append(rows, []string{
			change.ID,
			change.Action,
			strconv.Itoa(len(change.Changes)),
			change.ActorID,
			formatTime(change.CreatedAt),
		})
	}

	return renderTable(w, "No changes found",
		[]string{"ID", "Action", "Fields", "Actor", "Created"}, rows)
}
