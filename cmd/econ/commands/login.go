package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivetwenty-io/econ-client/internal/constants"
	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiKey string
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API key",
		Long: `Store an API key in the configuration file.

The key is read from --key or prompted for without echo. Unless --verify=false
is given, one authenticated call checks the key before it is saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiKey == "" {
				prompted, err := promptAPIKey(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}

				apiKey = prompted
			}

			apiKey = strings.TrimSpace(apiKey)
			if apiKey == "" {
				return constants.ErrNoAPIKeyConfigured
			}

			viper.Set("api_key", apiKey)

			if verify {
				err := withClient(cmd, verifyAPIKey)
				if err != nil {
					return fmt.Errorf("failed to verify API key: %w", err)
				}
			}

			persister, err := DefaultConfigPersister()
			if err != nil {
				return err
			}

			return saveLogin(cmd.OutOrStdout(), persister, viper.GetString("api"), apiKey)
		},
	}

	cmd.Flags().StringVar(&apiKey, "key", "", "API key (prompted when omitted)")
	cmd.Flags().BoolVar(&verify, "verify", true, "check the key with an authenticated call before saving")

	return cmd
}

// promptAPIKey reads the key without echo from a terminal, or as one line
// from any other input.
func promptAPIKey(in io.Reader, prompt io.Writer) (string, error) {
	_, _ = fmt.Fprint(prompt, "API key: ")

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		key, err := term.ReadPassword(int(file.Fd()))
		_, _ = fmt.Fprintln(prompt)

		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}

		return string(key), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func verifyAPIKey(ctx context.Context, client econ.Client) error {
	_, err := client.Execute(ctx, "/v1/shops", &econ.RequestOptions{
		Params: econ.NewParams().Add("limit", 1),
	})

	return err
}

func saveLogin(w io.Writer, persister *ConfigPersister, endpoint, apiKey string) error {
	if endpoint != "" {
		err := persister.Set("api", endpoint)
		if err != nil {
			return err
		}
	}

	err := persister.Set("api_key", apiKey)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s API key saved to %s\n", successColor().Sprint("OK"), persister.Path())

	return nil
}
