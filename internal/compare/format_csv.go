package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats a comparison as CSV, one row per regime
type CSVFormatter struct{}

// Format generates CSV output for a comparison
func (cf *CSVFormatter) Format(c *Comparison) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Regime",
		"Annual Revenue",
		"Activity",
		"Reference Year",
		"Annual Cost",
		"Monthly Cost",
		"Percent of Revenue",
		"Recommended",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, r := range c.Results {
		row := []string{
			string(r.Regime),
			c.AnnualRevenue.StringFixed(2),
			string(c.Activity),
			strconv.Itoa(c.ReferenceYear),
			r.AnnualCost.StringFixed(2),
			r.MonthlyCost.StringFixed(2),
			r.PercentOfRevenue.StringFixed(6),
			strconv.FormatBool(r.Recommended),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
