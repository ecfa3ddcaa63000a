package main

import (
	"fmt"

	"github.com/meicalc/meicalc/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTablesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Inspect and validate regulatory tables",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the regulatory tables in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.tables)
			if err != nil {
				return fmt.Errorf("failed to encode tables: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	validate := &cobra.Command{
		Use:   "validate [tables-file]",
		Short: "Validate a regulatory tables file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := config.NewTablesLoader().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tables file %s is valid (version %s, reviewed through %d)\n",
				args[0], tables.Metadata.Version, tables.Metadata.ReviewedThrough)
			if year := a.now().Year(); tables.IsOutdated(year) {
				fmt.Fprintf(cmd.OutOrStdout(), "Warning: tables were reviewed through %d and may be outdated for %d\n",
					tables.Metadata.ReviewedThrough, year)
			}
			return nil
		},
	}

	cmd.AddCommand(show, validate)
	return cmd
}
