package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/spf13/cobra"
)

// NewAddressesCommand creates the addresses command group.
func NewAddressesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "addresses",
		Aliases: []string{"address"},
		Short:   "Query shop addresses",
	}

	cmd.AddCommand(newAddressesListCommand())
	cmd.AddCommand(newAddressesGetCommand())

	return cmd
}

func newAddressesListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()

			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				addresses, err := client.Addresses().List(ctx, &opts)
				if err != nil {
					return fmt.Errorf("failed to list addresses: %w", err)
				}

				return listAndRender(cmd.OutOrStdout(), addresses, flags.filter, renderAddressesTable)
			})
		},
	}

	addListFlags(cmd, &flags)

	return cmd
}

func newAddressesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ADDRESS_ID",
		Short: "Show an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				address, err := client.Addresses().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get address: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), address, func(w io.Writer) error {
					return renderAddressesTable(w, []econ.Address{*address})
				})
			})
		},
	}
}

func renderAddressesTable(w io.Writer, addresses []econ.Address) error {
	rows := make([][]string, 0, len(addresses))
	for _, address := range addresses {
		rows = append(rows, []string{
			address.ID,
			address.ShopID,
			address.World,
			fmt.Sprintf("%d, %d, %d", address.X, address.Y, address.Z),
			address.Label,
		})
	}

	return renderTable(w, "No addresses found",
		[]string{"ID", "Shop", "World", "Coordinates", "Label"}, rows)
}
