package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/meicalc/meicalc/internal/calculation"
	"github.com/meicalc/meicalc/internal/config"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/meicalc/meicalc/internal/logging"
	"github.com/meicalc/meicalc/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const dateLayout = "2006-01-02"

// app holds what every command needs once flags and settings are resolved
type app struct {
	settings config.Settings
	tables   *domain.RegulatoryTables
	engine   *calculation.Engine
	logger   *slog.Logger
	format   string
	now      func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:          "meicalc",
		Short:        "MEI tax and pricing calculator",
		Long:         "Tax, pricing and regime comparison calculator for Brazilian individual micro-entrepreneurs (MEI).",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("tables", "", "regulatory tables YAML (defaults to the embedded tables)")
	flags.StringP("format", "f", "console", "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("env", ".env", "env file with MEICALC_* settings")

	root.AddCommand(
		newTaxCmd(a),
		newDASCmd(a),
		newPriceCmd(a),
		newBreakEvenCmd(a),
		newHourlyRateCmd(a),
		newCompareCmd(a),
		newCrossoverCmd(a),
		newCapCmd(a),
		newDueDateCmd(a),
		newAlertsCmd(a),
		newCashFlowCmd(a),
		newTablesCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// init resolves settings, flags override environment, then loads the tables
func (a *app) init(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env")
	settings, err := config.LoadSettings(envFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("tables") {
		settings.TablesPath, _ = cmd.Flags().GetString("tables")
	}
	if cmd.Flags().Changed("log-level") {
		settings.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	a.settings = settings
	a.format, _ = cmd.Flags().GetString("format")
	a.logger = logging.New(settings.Logging, cmd.ErrOrStderr())

	tables, err := config.NewTablesLoader().Load(settings.TablesPath)
	if err != nil {
		return err
	}
	a.tables = tables
	a.engine = calculation.NewEngine(tables)
	a.engine.SetLogger(logging.NewEngineLogger(a.logger))
	a.logger.Debug("regulatory tables loaded", "version", tables.Metadata.Version, "path", settings.TablesPath)
	return nil
}

func (a *app) write(cmd *cobra.Command, r *output.Report) error {
	return output.WriteFormatted(cmd.OutOrStdout(), a.format, r)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "meicalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// decimalFlag parses a decimal flag; an empty value is zero
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	v, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(v) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, v)
	}
	return d, nil
}

// optionalDecimalFlag returns nil when the flag was not set
func optionalDecimalFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	d, err := decimalFlag(cmd, name)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// decimalList parses a comma separated list of amounts
func decimalList(name, v string) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := decimal.NewFromString(part)
		if err != nil {
			return nil, fmt.Errorf("--%s: %q is not a number", name, part)
		}
		out = append(out, d)
	}
	return out, nil
}

func activityFlag(cmd *cobra.Command) (domain.ActivityType, error) {
	v, _ := cmd.Flags().GetString("activity")
	return domain.ParseActivityType(v)
}

func (a *app) yearFlag(cmd *cobra.Command) int {
	year, _ := cmd.Flags().GetInt("year")
	if year <= 0 {
		return a.now().Year()
	}
	return year
}

func (a *app) todayFlag(cmd *cobra.Command) (time.Time, error) {
	v, _ := cmd.Flags().GetString("today")
	if v == "" {
		return a.now(), nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--today: expected YYYY-MM-DD, got %q", v)
	}
	return t, nil
}

func addActivityFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("activity", "a", string(domain.ActivityCommerce), "activity: commerce, services, mixed, industry, trucker")
	cmd.Flags().IntP("year", "y", 0, "reference year (defaults to the current year)")
}

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
