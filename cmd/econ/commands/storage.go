package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/spf13/cobra"
)

// NewStorageCommand creates the storage command group.
func NewStorageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Query shop storage units",
	}

	cmd.AddCommand(newStorageListCommand())
	cmd.AddCommand(newStorageGetCommand())

	return cmd
}

func newStorageListCommand() *cobra.Command {
	var (
		flags listFlags
		shop  string
		item  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List storage units",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &econ.StorageListOptions{ListOptions: flags.options(), ShopID: shop, ItemID: item}

			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				units, err := client.Storage().List(ctx, opts)
				if err != nil {
					return fmt.Errorf("failed to list storage: %w", err)
				}

				return listAndRender(cmd.OutOrStdout(), units, flags.filter, renderStorageTable)
			})
		},
	}

	addListFlags(cmd, &flags)
	cmd.Flags().StringVar(&shop, "shop", "", "only storage of this shop ID")
	cmd.Flags().StringVar(&item, "item", "", "only storage holding this item ID")

	return cmd
}

func newStorageGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get STORAGE_ID",
		Short: "Show a storage unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				unit, err := client.Storage().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get storage unit: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), unit, func(w io.Writer) error {
					return renderStorageTable(w, []econ.StorageUnit{*unit})
				})
			})
		},
	}
}

func renderStorageTable(w io.Writer, units []econ.StorageUnit) error {
	rows := make([][]string, 0, len(units))
	for _, unit := range units {
		rows = append(rows, []string{
			unit.ID,
			unit.ShopID,
			unit.ItemID,
			strconv.Itoa(unit.Quantity),
			strconv.Itoa(unit.Capacity),
			formatTime(unit.UpdatedAt),
		})
	}

	return renderTable(w, "No storage units found",
		[]string{"ID", "Shop", "Item", "Quantity", "Capacity", "Updated"}, rows)
}
