package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/fatih/color"
	"github.com/fivetwenty-io/econ-client/internal/constants"
	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/fivetwenty-io/econ-client/pkg/econclient"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// SetDefaults registers the default value of every configuration key.
func SetDefaults() {
	viper.SetDefault("api", constants.DefaultBaseURL)
	viper.SetDefault("output", constants.FormatTable)
	viper.SetDefault("cache", string(econ.CacheTypeNone))
	viper.SetDefault("nats_url", "")
}

// ApplyColorSetting disables colors when requested or when out is not a
// terminal.
func ApplyColorSetting(out *os.File) {
	fd := out.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	color.NoColor = viper.GetBool("no_color") || !tty
}

// ErrorColor is used for error prefixes.
func ErrorColor() *color.Color {
	return color.New(color.FgRed, color.Bold)
}

func successColor() *color.Color {
	return color.New(color.FgGreen)
}

func warnColor() *color.Color {
	return color.New(color.FgYellow)
}

// NewLogger returns the CLI logger writing to w; debug level when verbose.
func NewLogger(w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: color.NoColor, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// BuildConfig assembles a client configuration from flags, environment and
// the config file.
func BuildConfig(stderr io.Writer) (*econ.Config, error) {
	cacheType, err := econ.ParseCacheType(viper.GetString("cache"))
	if err != nil {
		return nil, err
	}

	config := &econ.Config{
		BaseURL:      econclient.NormalizeEndpoint(viper.GetString("api")),
		APIKey:       viper.GetString("api_key"),
		Timeout:      viper.GetDuration("timeout"),
		MaxRetries:   viper.GetInt("max_retries"),
		RetryDelay:   viper.GetDuration("retry_delay"),
		DisableRetry: viper.GetBool("no_retry"),
		Logger:       econ.NewZerologLogger(NewLogger(stderr)),
		Debug:        viper.GetBool("verbose"),
		Interceptors: econ.NewInterceptorChain().AddRequestInterceptor(econ.RequestIDInterceptor()),
	}

	if cacheType == econ.CacheTypeNone {
		return config, nil
	}

	cacheConfig := econ.DefaultCacheConfig()
	cacheConfig.Type = cacheType

	if cacheType == econ.CacheTypeNATS {
		natsURL := viper.GetString("nats_url")
		if natsURL == "" {
			return nil, fmt.Errorf("%w: set nats_url", econ.ErrNATSConfigRequired)
		}

		cacheConfig.NATS = &econ.NATSKVConfig{URL: natsURL}
	}

	cache, err := econ.NewCacheFromConfig(cacheConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	config.Cache = cache

	return config, nil
}

// CreateClient builds a client from the current configuration. The returned
// cleanup releases the cache connection, if any.
func CreateClient(ctx context.Context, stderr io.Writer) (econ.Client, func(), error) {
	config, err := BuildConfig(stderr)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if closer, ok := config.Cache.(io.Closer); ok {
			_ = closer.Close()
		}
	}

	client, err := econclient.New(ctx, config)
	if err != nil {
		cleanup()

		return nil, nil, err
	}

	return client, cleanup, nil
}

// withClient runs fn with a configured client and prints the rate-limit
// snapshot afterwards when --rate-limit is set.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, client econ.Client) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, cleanup, err := CreateClient(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer cleanup()

	if viper.GetBool("rate_limit") {
		defer func() {
			printRateLimit(cmd.ErrOrStderr(), client.LastRateLimit())
		}()
	}

	return fn(ctx, client)
}

func printRateLimit(w io.Writer, snapshot *econ.RateLimit) {
	if snapshot == nil {
		_, _ = fmt.Fprintln(w, "Rate limit: no data")

		return
	}

	remaining := successColor()
	if snapshot.Remaining == 0 {
		remaining = warnColor()
	}

	_, _ = fmt.Fprintf(w, "Rate limit: %s/%d remaining, resets at %s\n",
		remaining.Sprint(snapshot.Remaining),
		snapshot.Limit,
		time.Unix(snapshot.Reset, 0).UTC().Format(constants.TimestampLayout))
}

// renderOutput writes data in the configured output format; table renders
// the table form.
func renderOutput[T any](w io.Writer, data T, table func(io.Writer) error) error {
	switch format := viper.GetString("output"); format {
	case constants.FormatJSON:
		return renderJSON(w, data)
	case constants.FormatYAML:
		return renderYAML(w, data)
	case constants.FormatTable, "":
		return table(w)
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, format)
	}
}

func renderJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

func renderYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// renderTable writes rows under headers, or empty when there are no rows.
func renderTable(w io.Writer, empty string, headers []string, rows [][]string) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, empty)

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header(toAny(headers)...)

	for _, row := range rows {
		err := table.Append(toAny(row)...)
		if err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}

	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.UTC().Format(constants.TimestampLayout)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return constants.NotAvailable
	}

	return formatTime(*t)
}

func formatPrice(price *float64) string {
	if price == nil {
		return constants.NotAvailable
	}

	return fmt.Sprintf("%.2f", *price)
}

func formatBool(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	return constants.MaskedSecret
}

// parseParams turns key=value arguments into ordered query parameters.
func parseParams(raw []string) (econ.Params, error) {
	params := econ.NewParams()

	for _, entry := range raw {
		key, value, found := strings.Cut(entry, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidParamFormat, entry)
		}

		params = params.Add(strings.TrimSpace(key), value)
	}

	return params, nil
}

// queryJSON extracts path from a JSON document using gjson syntax.
func queryJSON(data []byte, path string) (string, error) {
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return "", fmt.Errorf("%w: %s", constants.ErrQueryPathNotFound, path)
	}

	if result.Type == gjson.String {
		return result.Str, nil
	}

	return result.Raw, nil
}

// filterRecords keeps the records for which expression is true. Record
// fields are addressed by their JSON names, e.g. `active && itemCount > 5`.
func filterRecords[T any](records []T, expression string) ([]T, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return records, nil
	}

	program, err := expr.Compile(expression, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expression, err)
	}

	filtered := make([]T, 0, len(records))

	for _, record := range records {
		env, err := recordEnv(record)
		if err != nil {
			return nil, err
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("evaluating filter %q: %w", expression, err)
		}

		keep, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %q returned %T", constants.ErrFilterNotBoolean, expression, result)
		}

		if keep {
			filtered = append(filtered, record)
		}
	}

	return filtered, nil
}

func recordEnv(record any) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding record for filter: %w", err)
	}

	env := map[string]any{}

	err = json.Unmarshal(data, &env)
	if err != nil {
		return nil, fmt.Errorf("decoding record for filter: %w", err)
	}

	return env, nil
}

// listFlags are shared by every list command.
type listFlags struct {
	page   int
	limit  int
	search string
	sort   string
	filter string
}

func addListFlags(cmd *cobra.Command, flags *listFlags) {
	cmd.Flags().IntVar(&flags.page, "page", 0, "page number")
	cmd.Flags().IntVar(&flags.limit, "limit", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringVar(&flags.search, "search", "", "search term")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "sort field")
	cmd.Flags().StringVar(&flags.filter, "filter", "", "filter expression applied to the results, e.g. 'active && itemCount > 5'")
}

func (f *listFlags) options() econ.ListOptions {
	return econ.ListOptions{
		Page:   f.page,
		Limit:  f.limit,
		Search: f.search,
		Sort:   f.sort,
	}
}

// listAndRender filters records and writes them in the configured format.
func listAndRender[T any](w io.Writer, records []T, filter string, table func(io.Writer, []T) error) error {
	filtered, err := filterRecords(records, filter)
	if err != nil {
		return err
	}

	return renderOutput(w, filtered, func(w io.Writer) error {
		return table(w, filtered)
	})
}
