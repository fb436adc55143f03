package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/spf13/cobra"
)

// NewGetCommand creates the raw API call command.
func NewGetCommand() *cobra.Command {
	var (
		params []string
		query  string
		method string
		data   string
	)

	cmd := &cobra.Command{
		Use:   "get PATH",
		Short: "Issue a raw API call",
		Long: `Issue a raw API call and print the response envelope.

The call goes through the same retry, rate-limit and error handling as every
other command. Use --query to extract a value with a gjson path, e.g.
'data.#.name' or 'meta.rateLimit.remaining'.`,
		Example: `  econ get /v1/shops --param limit=5 --query 'data.#.name'
  econ get /v1/items/diamond/prices --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseParams(params)
			if err != nil {
				return err
			}

			opts := &econ.RequestOptions{
				Method: strings.ToUpper(method),
				Params: parsed,
			}

			if data != "" {
				opts.Body = json.RawMessage(data)
			}

			return withClient(cmd, func(ctx context.Context, client econ.Client) error {
				envelope, err := client.Execute(ctx, args[0], opts)
				if err != nil {
					return err
				}

				return writeEnvelope(cmd.OutOrStdout(), envelope, query)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "gjson path extracted from the response envelope")
	cmd.Flags().StringVarP(&method, "method", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")

	return cmd
}

func writeEnvelope(w io.Writer, envelope *econ.RawEnvelope, query string) error {
	raw, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}

	if query != "" {
		value, err := queryJSON(raw, query)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, value)

		return err
	}

	var decoded econ.Envelope[any]

	err = json.Unmarshal(raw, &decoded)
	if err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return renderOutput(w, decoded, func(w io.Writer) error {
		return renderJSON(w, decoded)
	})
}
