package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildTestReport() *Report {
	r := &Report{Title: "Test report", Data: map[string]string{"answer": "42"}}
	r.AddSection("Totals").Add("Revenue", "R$ 10.00").Add("Tax", "R$ 1.00")
	r.Table = &Table{Header: []string{"Month", "Value"}, Rows: [][]string{{"1", "5.00"}, {"2", "5.00"}}}
	r.Notes = []string{"something to know"}
	return r
}

func TestFormatterFunc(t *testing.T) {
	called := false
	f := FormatterFunc{ID: "test-formatter", F: func(r *Report) ([]byte, error) {
		called = true
		return []byte("test output"), nil
	}}

	out, err := f.Format(buildTestReport())
	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", f.Name())
}

func TestConsoleFormatter_Format(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "TEST REPORT", "Should have header")
	assert.Contains(t, content, "Totals\n------")
	assert.Contains(t, content, "Revenue:  R$ 10.00")
	assert.Contains(t, content, "Month  Value")
	assert.Contains(t, content, "• something to know")
	assert.True(t, strings.HasSuffix(content, Disclaimer+"\n"), "Should end with the disclaimer")
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "42", decoded["answer"])
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	blocks := strings.Split(string(out), "\n\n")
	require.Len(t, blocks, 2)

	summary, err := csv.NewReader(strings.NewReader(blocks[0])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"section", "label", "value"}, summary[0])
	assert.Equal(t, []string{"Totals", "Tax", "R$ 1.00"}, summary[2])

	table, err := csv.NewReader(strings.NewReader(blocks[1])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Month", "Value"}, {"1", "5.00"}, {"2", "5.00"}}, table)
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "console", GetFormatterByName("console").Name())
	assert.Equal(t, "console", GetFormatterByName("TEXT").Name(), "aliases resolve")
	assert.Equal(t, "json", GetFormatterByName(" json ").Name())
	assert.Nil(t, GetFormatterByName("html"))
}

func TestAvailableNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "json"}, AvailableFormatterNames())
	assert.Equal(t, []string{"table", "text"}, AvailableFormatAliases())
}

func TestWriteFormatted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFormatted(&buf, "csv", buildTestReport()))
	assert.Contains(t, buf.String(), "section,label,value")

	err := WriteFormatted(&buf, "pdf", buildTestReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format: pdf")
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatters["broken"] = FormatterFunc{ID: "broken", F: func(*Report) ([]byte, error) {
		return nil, errors.New("formatter error")
	}}
	t.Cleanup(func() { delete(formatters, "broken") })

	err := WriteFormatted(&bytes.Buffer{}, "broken", buildTestReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "R$ 1234.50", FormatCurrency(d("1234.5")))
	assert.Equal(t, "25.93%", FormatPercentage(d("25.925925")))
	assert.Equal(t, "4.00%", FormatRate(d("0.04")))
	assert.Equal(t, "yes", FormatBool(true))
}

func TestFixedDueReport_ReferenceNote(t *testing.T) {
	due := domain.FixedDue{
		Activity:      domain.ActivityCommerce,
		RequestedYear: 2030,
		SourceYear:    2025,
		Total:         d("76.90"),
		Components:    domain.FixedDueComponents{Pension: d("75.90"), StateTax: d("1"), MunicipalTax: d("0")},
	}
	r := FixedDueReport(due)
	require.Len(t, r.Notes, 1)
	assert.Contains(t, r.Notes[0], "showing 2025 as a reference")

	out, err := ConsoleFormatter{}.Format(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "R$ 922.80")
}

func TestCapStatusReport(t *testing.T) {
	r := CapStatusReport(domain.CapStatus{
		Year: 2025, Cap: d("81000"), Accumulated: d("21000"), MonthsWithData: 3,
		MovingAverage: d("7000"), AnnualProjection: d("84000"), PercentOfCap: d("25.925925"),
		MonthsUntilCapped: 9, AtRisk: true, Band: domain.BandWithinCap,
	})
	out, err := ConsoleFormatter{}.Format(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "25.93%")
	assert.Contains(t, string(out), "annual projection exceeds the cap")

	r = CapStatusReport(domain.CapStatus{MonthsUntilCapped: domain.NotAtRisk, Band: domain.BandWithinCap})
	assert.Equal(t, "not at risk", r.Sections[0].Rows[7].Value)
}

func TestAlertsAndCashFlowReports(t *testing.T) {
	dd := domain.DueDate{
		Today:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		NextDueDate:  time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		DaysUntilDue: 5,
	}
	id := uuid.New()
	r := AlertsReport(dd, []int{5, 3, 1}, []domain.AlertSubject{{ID: id, Name: "Ana"}})
	require.NotNil(t, r.Table)
	assert.Equal(t, []string{id.String(), "Ana"}, r.Table.Rows[0])

	cf := CashFlowReport(domain.CashFlowResult{
		Months:         []domain.CashFlowMonth{{Month: 1, Inflow: d("10"), Outflow: d("20"), Net: d("-10"), Balance: d("-10")}},
		NegativeMonths: []int{1},
	})
	assert.Equal(t, []string{"1", "10.00", "20.00", "-10.00", "-10.00"}, cf.Table.Rows[0])
	assert.Contains(t, cf.Notes[0], "[1]")
}
