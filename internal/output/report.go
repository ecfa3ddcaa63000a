package output

import (
	"github.com/shopspring/decimal"
)

// Disclaimer is printed under every console report
const Disclaimer = "Estimates only. Figures follow the published tables and are not legal or accounting advice."

// Report is a format-independent view of one calculation result
type Report struct {
	Title    string
	Sections []Section
	Table    *Table
	Notes    []string
	// Data is the raw result, marshalled as-is by the JSON formatter
	Data any
}

// Section is a titled group of label/value rows
type Section struct {
	Heading string
	Rows    []Row
}

// Row is one labelled value
type Row struct {
	Label string
	Value string
}

// Table is a grid, used for month-by-month results
type Table struct {
	Header []string
	Rows   [][]string
}

// AddSection appends a section and returns it for filling
func (r *Report) AddSection(heading string) *Section {
	r.Sections = append(r.Sections, Section{Heading: heading})
	return &r.Sections[len(r.Sections)-1]
}

// Add appends a row to the section
func (s *Section) Add(label, value string) *Section {
	s.Rows = append(s.Rows, Row{Label: label, Value: value})
	return s
}

// FormatCurrency formats an amount in reais with two decimals
func FormatCurrency(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(2)
}

// FormatPercentage formats a value already expressed in percent
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fraction as a percentage
func FormatRate(fraction decimal.Decimal) string {
	return FormatPercentage(fraction.Mul(decimal.NewFromInt(100)))
}

// FormatBool renders yes/no
func FormatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
