package crossover

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meicalc/meicalc/internal/output"
)

// TableFormatter formats crossover results as console text
type TableFormatter struct{}

// Format generates a report for a single scan
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("MEI CROSSOVER SEARCH\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Activity:        %s\n", result.Activity))
	sb.WriteString(fmt.Sprintf("Reference year:  %d\n", result.ReferenceYear))
	sb.WriteString(fmt.Sprintf("Scan range:      %s to %s, step %s\n",
		output.FormatCurrency(result.From), output.FormatCurrency(result.To), output.FormatCurrency(result.Step)))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	sb.WriteString("\n")

	label := "Crossover revenue"
	if !result.Found {
		label = "Upper bound"
	}
	sb.WriteString("COSTS AT " + strings.ToUpper(label) + "\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-22s %s\n", label+":", output.FormatCurrency(result.Revenue)))
	sb.WriteString(fmt.Sprintf("%-22s %s (%s)\n", "MEI (extrapolated):", output.FormatCurrency(result.MEICost), result.Costs.MEIBand))
	sb.WriteString(fmt.Sprintf("%-22s %s\n", "Simples Nacional:", output.FormatCurrency(result.Costs.Simples)))
	sb.WriteString(fmt.Sprintf("%-22s %s\n", "Lucro Presumido:", output.FormatCurrency(result.Costs.LucroPresumido)))
	if result.Found {
		sb.WriteString(fmt.Sprintf("\n%s costs no more than MEI from this revenue on.\n", result.Regime))
	}
	sb.WriteString(fmt.Sprintf("MEI is lost retroactively above %s.\n", output.FormatCurrency(result.ForcedExitRevenue)))

	sb.WriteString("\n" + output.Disclaimer + "\n")
	return sb.String()
}

// FormatMulti generates a summary table with one line per activity
func (tf *TableFormatter) FormatMulti(m *MultiResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("MEI CROSSOVER BY ACTIVITY (%d)\n", m.ReferenceYear))
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-10s %-10s %18s %-18s %10s\n", "Activity", "Status", "Revenue", "Regime", "Points"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, r := range m.Results {
		sb.WriteString(fmt.Sprintf("%-10s %-10s %18s %-18s %10d\n",
			r.Activity, tf.formatStatus(&r), output.FormatCurrency(r.Revenue), r.Regime, r.Iterations))
	}
	if len(m.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range m.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}
	sb.WriteString("\n" + output.Disclaimer + "\n")
	return sb.String()
}

func (tf *TableFormatter) formatStatus(r *Result) string {
	switch {
	case r.Found:
		return "found"
	case r.Truncated:
		return "truncated"
	default:
		return "not found"
	}
}

// JSONFormatter formats crossover results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON for a single scan
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMulti generates JSON for a per-activity scan
func (jf *JSONFormatter) FormatMulti(m *MultiResult) (string, error) {
	return jf.marshal(m)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var (
		data []byte
		err  error
	)
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
