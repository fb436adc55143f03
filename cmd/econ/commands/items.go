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

// NewItemsCommand creates the items command group.
func NewItemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "Query items and prices",
	}

	cmd.AddCommand(newItemsListCommand())
	cmd.AddCommand(newItemsGetCommand())
	cmd.AddCommand(newItemsPricesCommand())
	cmd.AddCommand(newItemsHistoryCommand())

	return cmd
}

func newItemsListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()

			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				items, err := client.Items().List(ctx, &opts)
				if err != nil {
					return fmt.Errorf("failed to list items: %w", err)
				}

				return listAndRender(cmd.OutOrStdout(), items, flags.filter, renderItemsTable)
			})
		},
	}

	addListFlags(cmd, &flags)

	return cmd
}

func newItemsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ITEM_ID",
		Short: "Show an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				item, err := client.Items().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get item: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), item, func(w io.Writer) error {
					return renderItemsTable(w, []econ.Item{*item})
				})
			})
		},
	}
}

func newItemsPricesCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "prices ITEM_ID",
		Short: "List the current prices of an item across shops",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				prices, err := client.Items().Prices(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to list item prices: %w", err)
				}

				return listAndRender(cmd.OutOrStdout(), prices, filter, renderPricesTable)
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "filter expression applied to the results, e.g. 'sellPrice < 10'")

	return cmd
}

func newItemsHistoryCommand() *cobra.Command {
	var from, to, interval string

	cmd := &cobra.Command{
		Use:   "history ITEM_ID",
		Short: "Show the price history of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			opts := &econ.PriceHistoryOptions{Interval: interval}

			if from != "" {
				parsed, err := parseSince(from, now)
				if err != nil {
					return err
				}

				opts.From = parsed
			}

			if to != "" {
				parsed, err := parseSince(to, now)
				if err != nil {
					return err
				}

				opts.To = parsed
			}

			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				points, err := client.Items().PriceHistory(ctx, args[0], opts)
				if err != nil {
					return fmt.Errorf("failed to get price history: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), points, func(w io.Writer) error {
					return renderHistoryTable(w, points)
				})
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start: RFC3339 timestamp or duration ago, e.g. 168h")
	cmd.Flags().StringVar(&to, "to", "", "end: RFC3339 timestamp or duration ago")
	cmd.Flags().StringVar(&interval, "interval", "", "sampling interval, e.g. hour or day")

	return cmd
}

func renderItemsTable(w io.Writer, items []econ.Item) error {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.ID, item.Name, item.Category})
	}

	return renderTable(w, "No items found", []string{"ID", "Name", "Category"}, rows)
}

func renderHistoryTable(w io.Writer, points []econ.PricePoint) error {
	rows := make([][]string, 0, len(points))
	for _, point := range points {
		rows = append(rows, []string{
			formatTime(point.Timestamp),
			formatPrice(point.AvgBuyPrice),
			formatPrice(point.AvgSellPrice),
			strconv.Itoa(point.ShopCount),
		})
	}

	return renderTable(w, "No price history found",
		[]string{"Time", "Avg Buy", "Avg Sell", "Shops"}, rows)
}
