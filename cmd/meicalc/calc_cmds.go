package main

import (
	"fmt"
	"os"

	"github.com/meicalc/meicalc/internal/calculation"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/meicalc/meicalc/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTaxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Compute the Simples Nacional tax on a yearly revenue",
		Long: `Compute the tax due on a yearly gross revenue using a progressive bracket table.

By default the Simples Nacional annex of the activity is used. --table takes a
YAML file with a custom bracket table instead.

Examples:
  meicalc tax --revenue 200000 --activity commerce
  meicalc tax --revenue 200000 --table my_table.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			revenue, err := decimalFlag(cmd, "revenue")
			if err != nil {
				return err
			}

			if tablePath, _ := cmd.Flags().GetString("table"); tablePath != "" {
				table, err := loadBracketTable(tablePath)
				if err != nil {
					return err
				}
				res, err := calculation.ComputeTax(revenue, table)
				if err != nil {
					return err
				}
				return a.write(cmd, output.TaxReport(res, table.Name))
			}

			activity, err := activityFlag(cmd)
			if err != nil {
				return err
			}
			res, tableYear, err := a.engine.SimplesTax(revenue, activity, a.yearFlag(cmd))
			if err != nil {
				return err
			}
			return a.write(cmd, output.TaxReport(res, fmt.Sprintf("Simples Nacional %d (%s)", tableYear, activity)))
		},
	}
	cmd.Flags().String("revenue", "", "yearly gross revenue")
	cmd.Flags().String("table", "", "YAML file with a custom bracket table")
	addActivityFlags(cmd)
	_ = cmd.MarkFlagRequired("revenue")
	return cmd
}

func loadBracketTable(path string) (domain.BracketTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.BracketTable{}, fmt.Errorf("failed to read table file: %w", err)
	}
	var table domain.BracketTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return domain.BracketTable{}, fmt.Errorf("failed to parse table file: %w", err)
	}
	if table.Name == "" {
		table.Name = path
	}
	return table, nil
}

func newDASCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "das",
		Short: "Show the MEI monthly due (DAS) for an activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			activity, err := activityFlag(cmd)
			if err != nil {
				return err
			}
			due, err := a.engine.ComputeFixedDue(activity, a.yearFlag(cmd))
			if err != nil {
				return err
			}
			return a.write(cmd, output.FixedDueReport(due))
		},
	}
	addActivityFlags(cmd)
	return cmd
}

func newPriceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a product or a service for a target margin",
	}

	product := &cobra.Command{
		Use:     "product",
		Short:   "Selling price of a product unit",
		Example: `  meicalc price product --cost 60 --fixed 20 --variable 20 --margin 0.2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				in  domain.ProductPricingInput
				err error
			)
			if in.ProductCost, err = decimalFlag(cmd, "cost"); err != nil {
				return err
			}
			if in.AllocatedFixedCost, err = decimalFlag(cmd, "fixed"); err != nil {
				return err
			}
			if in.VariableExpenses, err = decimalFlag(cmd, "variable"); err != nil {
				return err
			}
			if in.Margin, err = decimalFlag(cmd, "margin"); err != nil {
				return err
			}
			res, err := calculation.SolveProductPrice(in)
			if err != nil {
				return err
			}
			return a.write(cmd, output.ProductPriceReport(res))
		},
	}
	product.Flags().String("cost", "", "product cost per unit")
	product.Flags().String("fixed", "0", "fixed cost allocated to each unit")
	product.Flags().String("variable", "0", "variable expenses per unit (fees, freight)")
	product.Flags().String("margin", "", "target margin as a fraction of the price, e.g. 0.3")
	_ = product.MarkFlagRequired("cost")
	_ = product.MarkFlagRequired("margin")

	service := &cobra.Command{
		Use:     "service",
		Short:   "Quote for a job billed by the hour",
		Example: `  meicalc price service --hours 10 --rate 50 --materials 100 --margin 0.25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				in  domain.ServicePricingInput
				err error
			)
			if in.Hours, err = decimalFlag(cmd, "hours"); err != nil {
				return err
			}
			if in.HourlyRate, err = decimalFlag(cmd, "rate"); err != nil {
				return err
			}
			if in.MaterialsCost, err = decimalFlag(cmd, "materials"); err != nil {
				return err
			}
			if in.AdditionalExpenses, err = decimalFlag(cmd, "expenses"); err != nil {
				return err
			}
			if in.Margin, err = decimalFlag(cmd, "margin"); err != nil {
				return err
			}
			res, err := calculation.SolveServicePrice(in)
			if err != nil {
				return err
			}
			return a.write(cmd, output.ServicePriceReport(res))
		},
	}
	service.Flags().String("hours", "", "hours of work")
	service.Flags().String("rate", "", "hourly labor cost")
	service.Flags().String("materials", "0", "materials cost")
	service.Flags().String("expenses", "0", "additional expenses")
	service.Flags().String("margin", "", "target margin as a fraction of the price")
	_ = service.MarkFlagRequired("hours")
	_ = service.MarkFlagRequired("rate")
	_ = service.MarkFlagRequired("margin")

	cmd.AddCommand(product, service)
	return cmd
}

func newBreakEvenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "break-even",
		Short:   "Units and revenue needed to cover fixed costs",
		Example: `  meicalc break-even --fixed-cost 3000 --variable-cost 12 --price 30 --units-sold 120`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				in  domain.BreakEvenInput
				err error
			)
			if in.FixedCost, err = decimalFlag(cmd, "fixed-cost"); err != nil {
				return err
			}
			if in.VariableCostPerUnit, err = decimalFlag(cmd, "variable-cost"); err != nil {
				return err
			}
			if in.Price, err = decimalFlag(cmd, "price"); err != nil {
				return err
			}
			if in.CurrentUnitsSold, err = optionalDecimalFlag(cmd, "units-sold"); err != nil {
				return err
			}
			res, err := calculation.ComputeBreakEven(in)
			if err != nil {
				return err
			}
			return a.write(cmd, output.BreakEvenReport(res))
		},
	}
	cmd.Flags().String("fixed-cost", "", "fixed cost for the period")
	cmd.Flags().String("variable-cost", "0", "variable cost per unit")
	cmd.Flags().String("price", "", "selling price per unit")
	cmd.Flags().String("units-sold", "", "units sold so far, to compare with the break-even point")
	_ = cmd.MarkFlagRequired("fixed-cost")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newHourlyRateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hourly-rate",
		Short:   "Minimum hourly rate for an income goal",
		Example: `  meicalc hourly-rate --income 5000 --fixed-costs 1000 --hours 120 --vacation-days 30 --margin 0.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				in  domain.HourlyRateInput
				err error
			)
			if in.DesiredMonthlyIncome, err = decimalFlag(cmd, "income"); err != nil {
				return err
			}
			if in.MonthlyFixedCosts, err = decimalFlag(cmd, "fixed-costs"); err != nil {
				return err
			}
			if in.BillableHoursPerMonth, err = decimalFlag(cmd, "hours"); err != nil {
				return err
			}
			if in.VacationDaysPerYear, err = decimalFlag(cmd, "vacation-days"); err != nil {
				return err
			}
			if in.ProfitMargin, err = decimalFlag(cmd, "margin"); err != nil {
				return err
			}
			res, err := calculation.ComputeHourlyRate(in)
			if err != nil {
				return err
			}
			return a.write(cmd, output.HourlyRateReport(res))
		},
	}
	cmd.Flags().String("income", "", "desired monthly income")
	cmd.Flags().String("fixed-costs", "0", "monthly fixed costs")
	cmd.Flags().String("hours", "", "billable hours per month")
	cmd.Flags().String("vacation-days", "0", "vacation days per year")
	cmd.Flags().String("margin", "0", "profit margin on top of the base rate")
	_ = cmd.MarkFlagRequired("income")
	_ = cmd.MarkFlagRequired("hours")
	return cmd
}

func newCashFlowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Project the monthly cash position",
		Long: `Project the monthly cash position from an opening balance.

Entries come from a YAML file (opening_balance and entries with month, inflow
and outflow) or from --inflows/--outflows, one amount per month starting in January.

Examples:
  meicalc cash-flow --opening 500 --inflows 4000,4200,3900 --outflows 3500,4800,3000
  meicalc cash-flow --file plan.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := cashFlowInput(cmd)
			if err != nil {
				return err
			}
			res, err := calculation.ProjectCashFlow(in)
			if err != nil {
				return err
			}
			return a.write(cmd, output.CashFlowReport(res))
		},
	}
	cmd.Flags().String("file", "", "YAML cash plan")
	cmd.Flags().String("opening", "0", "opening balance")
	cmd.Flags().String("inflows", "", "comma separated monthly inflows")
	cmd.Flags().String("outflows", "", "comma separated monthly outflows")
	return cmd
}

func cashFlowInput(cmd *cobra.Command) (domain.CashFlowInput, error) {
	var in domain.CashFlowInput
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return in, fmt.Errorf("failed to read cash plan: %w", err)
		}
		if err := yaml.Unmarshal(data, &in); err != nil {
			return in, fmt.Errorf("failed to parse cash plan: %w", err)
		}
		if cmd.Flags().Changed("opening") {
			opening, err := decimalFlag(cmd, "opening")
			if err != nil {
				return in, err
			}
			in.OpeningBalance = opening
		}
		return in, nil
	}

	opening, err := decimalFlag(cmd, "opening")
	if err != nil {
		return in, err
	}
	rawIn, _ := cmd.Flags().GetString("inflows")
	rawOut, _ := cmd.Flags().GetString("outflows")
	inflows, err := decimalList("inflows", rawIn)
	if err != nil {
		return in, err
	}
	outflows, err := decimalList("outflows", rawOut)
	if err != nil {
		return in, err
	}
	if len(inflows) == 0 && len(outflows) == 0 {
		return in, fmt.Errorf("either --file or --inflows/--outflows is required")
	}

	in.OpeningBalance = opening
	for m := 0; m < max(len(inflows), len(outflows)); m++ {
		entry := domain.CashFlowEntry{Month: m + 1}
		if m < len(inflows) {
			entry.Inflow = inflows[m]
		}
		if m < len(outflows) {
			entry.Outflow = outflows[m]
		}
		in.Entries = append(in.Entries, entry)
	}
	return in, nil
}
