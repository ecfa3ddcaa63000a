package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/meicalc/meicalc/internal/calculation"
	"github.com/meicalc/meicalc/internal/config"
	"github.com/meicalc/meicalc/internal/logging"
	"github.com/meicalc/meicalc/internal/tui"
)

func newRootCmd() *cobra.Command {
	var (
		tablesPath string
		envFile    string
		logFile    string
		year       int
	)

	cmd := &cobra.Command{
		Use:          "meicalc-tui",
		Short:        "Interactive MEI regime comparison",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tables") {
				settings.TablesPath = tablesPath
			}

			// The alternate screen owns the terminal, so logs go to a file or nowhere.
			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				w = f
			}
			logger := logging.New(settings.Logging, w)

			tables, err := config.NewTablesLoader().Load(settings.TablesPath)
			if err != nil {
				return err
			}
			engine := calculation.NewEngine(tables)
			engine.SetLogger(logging.NewEngineLogger(logger))

			now := time.Now()
			if year == 0 {
				year = now.Year()
			}
			logger.Info("starting tui", "tables_version", tables.Metadata.Version, "year", year)

			p := tea.NewProgram(tui.NewModel(engine, year, now), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tablesPath, "tables", "", "regulatory tables YAML (defaults to the embedded tables)")
	cmd.Flags().StringVar(&envFile, "env", ".env", "env file with MEICALC_* settings")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "reference year (defaults to the current year)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
