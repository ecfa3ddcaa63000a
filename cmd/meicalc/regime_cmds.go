package main

import (
	"fmt"

	"github.com/meicalc/meicalc/internal/compare"
	"github.com/meicalc/meicalc/internal/crossover"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare MEI, Simples Nacional and Lucro Presumido at a yearly revenue",
		Long: `Compare the yearly cost of the tax regimes available at a given revenue.

MEI is only offered up to the activity's cap. Ties go to the regime with less
bookkeeping: MEI, then Simples Nacional, then Lucro Presumido.

Examples:
  meicalc compare --revenue 75000 --activity services
  meicalc compare --revenue 300000 --activity commerce --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			revenue, err := decimalFlag(cmd, "revenue")
			if err != nil {
				return err
			}
			activity, err := activityFlag(cmd)
			if err != nil {
				return err
			}

			c, err := compare.NewCompareEngine(a.engine).Compare(revenue, activity, a.yearFlag(cmd))
			if err != nil {
				return err
			}

			compact, _ := cmd.Flags().GetBool("compact")
			var out string
			switch a.format {
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(c)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(c)
			case "console", "text", "table":
				tf := &compare.TableFormatter{}
				if compact {
					out = tf.FormatCompact(c)
				} else {
					out = tf.Format(c)
				}
			default:
				return fmt.Errorf("unsupported format for compare: %s", a.format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("revenue", "", "yearly gross revenue")
	cmd.Flags().Bool("compact", false, "one line per regime")
	addActivityFlags(cmd)
	_ = cmd.MarkFlagRequired("revenue")
	return cmd
}

func newCrossoverCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crossover",
		Short: "Find the revenue at which leaving MEI pays off",
		Long: `Scan yearly revenues upwards and report the first one at which Simples
Nacional or Lucro Presumido costs no more than MEI. Past the cap, MEI is
extrapolated: the excess inside the tolerance band is taxed at the Simples
Nacional rate, beyond it the whole year is.

Without --activity every activity is scanned with default bounds.

Examples:
  meicalc crossover --activity commerce
  meicalc crossover --activity services --from 81000 --to 200000 --step 500
  meicalc crossover --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := crossover.DefaultSolverOptions()
			if cmd.Flags().Changed("max-iterations") {
				opts.MaxIterations, _ = cmd.Flags().GetInt("max-iterations")
			}
			solver := crossover.NewSolver(compare.NewCompareEngine(a.engine), opts)
			year := a.yearFlag(cmd)

			if v, _ := cmd.Flags().GetString("activity"); v == "" {
				multi, err := solver.FindForAllActivities(cmd.Context(), year)
				if err != nil {
					return err
				}
				return writeCrossover(cmd, a.format, nil, multi)
			}

			activity, err := activityFlag(cmd)
			if err != nil {
				return err
			}
			req := crossover.Request{Activity: activity, ReferenceYear: year}
			if req.From, err = optionalDecimalFlag(cmd, "from"); err != nil {
				return err
			}
			if req.To, err = optionalDecimalFlag(cmd, "to"); err != nil {
				return err
			}
			if req.Step, err = optionalDecimalFlag(cmd, "step"); err != nil {
				return err
			}

			res, err := solver.FindCrossover(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeCrossover(cmd, a.format, res, nil)
		},
	}
	cmd.Flags().StringP("activity", "a", "", "activity (all activities when empty)")
	cmd.Flags().IntP("year", "y", 0, "reference year (defaults to the current year)")
	cmd.Flags().String("from", "", "lowest revenue to scan (defaults to the cap)")
	cmd.Flags().String("to", "", "highest revenue to scan (defaults to five times the cap)")
	cmd.Flags().String("step", "", "scan step (defaults to 1000)")
	cmd.Flags().Int("max-iterations", 0, "hard limit on scanned points")
	return cmd
}

func writeCrossover(cmd *cobra.Command, format string, res *crossover.Result, multi *crossover.MultiResult) error {
	var (
		out string
		err error
	)
	switch format {
	case "json":
		jf := &crossover.JSONFormatter{Pretty: true}
		if multi != nil {
			out, err = jf.FormatMulti(multi)
		} else {
			out, err = jf.Format(res)
		}
	case "console", "text", "table":
		tf := &crossover.TableFormatter{}
		if multi != nil {
			out = tf.FormatMulti(multi)
		} else {
			out = tf.Format(res)
		}
	default:
		return fmt.Errorf("unsupported format for crossover: %s (available: console, json)", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
