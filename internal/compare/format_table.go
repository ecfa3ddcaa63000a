package compare

import (
	"fmt"
	"strings"

	"github.com/meicalc/meicalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats a comparison as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing regimes
func (tf *TableFormatter) Format(c *Comparison) string {
	var sb strings.Builder

	sb.WriteString("TAX REGIME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Annual revenue: %s\n", output.FormatCurrency(c.AnnualRevenue)))
	sb.WriteString(fmt.Sprintf("Activity:       %s\n", c.Activity))
	sb.WriteString(fmt.Sprintf("Reference year: %d\n", c.ReferenceYear))
	sb.WriteString("\n")

	nameWidth := 20
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Regime",
		numWidth, "Annual cost",
		numWidth, "Monthly cost",
		numWidth, "% of revenue"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	for _, r := range c.Results {
		name := string(r.Regime)
		if r.Recommended {
			name += " *"
		}
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
			nameWidth, name,
			numWidth, tf.formatDecimal(r.AnnualCost),
			numWidth, tf.formatDecimal(r.MonthlyCost),
			numWidth, output.FormatRate(r.PercentOfRevenue)))
	}
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString("* recommended\n")

	if len(c.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range c.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	sb.WriteString("\n" + output.Disclaimer + "\n")
	return sb.String()
}

func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

// FormatCompact creates a single-line summary of the comparison
func (tf *TableFormatter) FormatCompact(c *Comparison) string {
	parts := make([]string, 0, len(c.Results))
	for _, r := range c.Results {
		mark := ""
		if r.Recommended {
			mark = "*"
		}
		parts = append(parts, fmt.Sprintf("%s%s: %s", r.Regime, mark, tf.formatDecimal(r.AnnualCost)))
	}
	return strings.Join(parts, " | ")
}
