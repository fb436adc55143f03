package commands

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/econ-client/internal/constants"
	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/fivetwenty-io/econ-client/pkg/econclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the CLI configuration.
type Config struct {
	API        string `json:"api"                   yaml:"api"`
	APIKey     string `json:"api_key,omitempty"     yaml:"api_key,omitempty"`
	Timeout    string `json:"timeout,omitempty"     yaml:"timeout,omitempty"`
	MaxRetries int    `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	RetryDelay string `json:"retry_delay,omitempty" yaml:"retry_delay,omitempty"`
	NoRetry    bool   `json:"no_retry"              yaml:"no_retry"`
	Output     string `json:"output"                yaml:"output"`
	NoColor    bool   `json:"no_color"              yaml:"no_color"`
	Verbose    bool   `json:"verbose"               yaml:"verbose"`
	Cache      string `json:"cache"                 yaml:"cache"`
	NATSURL    string `json:"nats_url,omitempty"    yaml:"nats_url,omitempty"`
}

// configKeys maps every settable key to the parser of its value.
var configKeys = map[string]func(string) (any, error){
	"api":         parseEndpoint,
	"api_key":     parseString,
	"timeout":     parseDuration,
	"max_retries": parseRetries,
	"retry_delay": parseDuration,
	"no_retry":    parseBool,
	"output":      parseOutputFormat,
	"no_color":    parseBool,
	"verbose":     parseBool,
	"cache":       parseCache,
	"nats_url":    parseString,
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the econ configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration after flags, environment and file are merged",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = maskSecret(config.APIKey)

			return renderOutput(cmd.OutOrStdout(), config, func(w io.Writer) error {
				return displayConfigTable(w, config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(knownConfigKeys(), ", "),
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			persister, err := DefaultConfigPersister()
			if err != nil {
				return err
			}

			return setConfigValue(cmd.OutOrStdout(), persister, args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			persister, err := DefaultConfigPersister()
			if err != nil {
				return err
			}

			return unsetConfigValue(cmd.OutOrStdout(), persister, args[0])
		},
	}
}

func loadConfig() *Config {
	return &Config{
		API:        viper.GetString("api"),
		APIKey:     viper.GetString("api_key"),
		Timeout:    viper.GetString("timeout"),
		MaxRetries: viper.GetInt("max_retries"),
		RetryDelay: viper.GetString("retry_delay"),
		NoRetry:    viper.GetBool("no_retry"),
		Output:     viper.GetString("output"),
		NoColor:    viper.GetBool("no_color"),
		Verbose:    viper.GetBool("verbose"),
		Cache:      viper.GetString("cache"),
		NATSURL:    viper.GetString("nats_url"),
	}
}

func setConfigValue(w io.Writer, persister *ConfigPersister, key, raw string) error {
	parse, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	value, err := parse(raw)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	err = persister.Set(key, value)
	if err != nil {
		return err
	}

	viper.Set(key, value)

	display := fmt.Sprint(value)
	if key == "api_key" {
		display = maskSecret(raw)
	}

	_, _ = fmt.Fprintf(w, "%s %s = %s\n", successColor().Sprint("Set"), key, display)

	return nil
}

func unsetConfigValue(w io.Writer, persister *ConfigPersister, key string) error {
	if _, ok := configKeys[key]; !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	err := persister.Unset(key)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", successColor().Sprint("Unset"), key)

	return nil
}

func displayConfigTable(w io.Writer, config *Config) error {
	orNA := func(value string) string {
		if value == "" {
			return constants.NotAvailable
		}

		return value
	}

	return renderTable(w, "", []string{"Setting", "Value"}, [][]string{
		{"api", orNA(config.API)},
		{"api_key", orNA(config.APIKey)},
		{"timeout", orNA(config.Timeout)},
		{"max_retries", strconv.Itoa(config.MaxRetries)},
		{"retry_delay", orNA(config.RetryDelay)},
		{"no_retry", strconv.FormatBool(config.NoRetry)},
		{"output", orNA(config.Output)},
		{"no_color", strconv.FormatBool(config.NoColor)},
		{"verbose", strconv.FormatBool(config.Verbose)},
		{"cache", orNA(config.Cache)},
		{"nats_url", orNA(config.NATSURL)},
	})
}

func knownConfigKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for key := range configKeys {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

func parseString(value string) (any, error) {
	return value, nil
}

func parseEndpoint(value string) (any, error) {
	endpoint := econclient.NormalizeEndpoint(value)

	err := (&econ.Config{BaseURL: endpoint}).Validate()
	if err != nil {
		return nil, err
	}

	return endpoint, nil
}

func parseDuration(value string) (any, error) {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return nil, err
	}

	if duration < 0 {
		return nil, econ.ErrNegativeDuration
	}

	return duration.String(), nil
}

func parseRetries(value string) (any, error) {
	retries, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}

	if retries < 0 {
		return nil, econ.ErrNegativeRetries
	}

	return retries, nil
}

func parseBool(value string) (any, error) {
	return strconv.ParseBool(value)
}

func parseOutputFormat(value string) (any, error) {
	switch value {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return value, nil
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, value)
	}
}

func parseCache(value string) (any, error) {
	cacheType, err := econ.ParseCacheType(value)
	if err != nil {
		return nil, err
	}

	return string(cacheType), nil
}
