package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/spf13/cobra"
)

// NewReportsCommand creates the reports command group.
func NewReportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"report"},
		Short:   "Show aggregated reports",
	}

	cmd.AddCommand(newReportsMarketCommand())
	cmd.AddCommand(newReportsPlayerCommand())

	return cmd
}

func newReportsMarketCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Show the market-wide report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				report, err := client.Reports().Market(ctx)
				if err != nil {
					return fmt.Errorf("failed to get market report: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), report, func(w io.Writer) error {
					return renderMarketReport(w, report)
				})
			})
		},
	}
}

func newReportsPlayerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "player PLAYER_ID",
		Short: "Show the report of one player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				report, err := client.Reports().Player(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get player report: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), report, func(w io.Writer) error {
					return renderTable(w, "", []string{"Property", "Value"}, [][]string{
						{"Player", report.PlayerID},
						{"Username", report.Username},
						{"Shops", strconv.Itoa(report.ShopCount)},
						{"Items", strconv.Itoa(report.ItemCount)},
						{"Total Stock", strconv.Itoa(report.TotalStock)},
						{"Generated", formatTime(report.GeneratedAt)},
					})
				})
			})
		},
	}
}

func renderMarketReport(w io.Writer, report *econ.MarketReport) error {
	err := renderTable(w, "", []string{"Property", "Value"}, [][]string{
		{"Shops", strconv.Itoa(report.TotalShops)},
		{"Active Shops", strconv.Itoa(report.ActiveShops)},
		{"Players", strconv.Itoa(report.TotalPlayers)},
		{"Items", strconv.Itoa(report.TotalItems)},
		{"Generated", formatTime(report.GeneratedAt)},
	})
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(report.TopItems))
	for _, stat := range report.TopItems {
		rows = append(rows, []string{
			stat.ItemID,
			stat.ItemName,
			formatPrice(stat.AvgBuyPrice),
			formatPrice(stat.AvgSellPrice),
			strconv.Itoa(stat.ShopCount),
		})
	}

	return renderTable(w, "No item statistics",
		[]string{"Item", "Name", "Avg Buy", "Avg Sell", "Shops"}, rows)
}
