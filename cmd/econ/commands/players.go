package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/spf13/cobra"
)

// NewPlayersCommand creates the players command group.
func NewPlayersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "players",
		Aliases: []string{"player"},
		Short:   "Query players",
	}

	cmd.AddCommand(newPlayersListCommand())
	cmd.AddCommand(newPlayersGetCommand())
	cmd.AddCommand(newPlayersShopsCommand())

	return cmd
}

func newPlayersListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()

			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				players, err := client.Players().List(ctx, &opts)
				if err != nil {
					return fmt.Errorf("failed to list players: %w", err)
				}

				return listAndRender(cmd.OutOrStdout(), players, flags.filter, renderPlayersTable)
			})
		},
	}

	addListFlags(cmd, &flags)

	return cmd
}

func newPlayersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PLAYER_ID",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				player, err := client.Players().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get player: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), player, func(w io.Writer) error {
					return renderPlayersTable(w, []econ.Player{*player})
				})
			})
		},
	}
}

func newPlayersShopsCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "shops PLAYER_ID",
		Short: "List the shops owned by a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				shops, err := client.Players().Shops(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to list player shops: %w", err)
				}

				return listAndRender(cmd.OutOrStdout(), shops, filter, renderShopsTable)
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "filter expression applied to the results")

	return cmd
}

func renderPlayersTable(w io.Writer, players []econ.Player) error {
	rows := make([][]string, 0, len(players))
	for _, player := range players {
		rows = append(rows, []string{
			player.ID,
			player.Username,
			fmt.Sprintf("%.2f", player.Balance),
			strconv.Itoa(player.ShopCount),
			formatTime(player.JoinedAt),
			formatOptionalTime(player.LastSeenAt),
		})
	}

	return renderTable(w, "No players found",
		[]string{"ID", "Username", "Balance", "Shops", "Joined", "Last Seen"}, rows)
}
