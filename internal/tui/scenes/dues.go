package scenes

import (
	"fmt"
	"strings"
	"time"

	"github.com/meicalc/meicalc/internal/calculation"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/meicalc/meicalc/internal/tui/components"
	"github.com/meicalc/meicalc/internal/tui/tuistyles"
)

// DuesModel lists the monthly DAS of every activity and the next due date
type DuesModel struct {
	engine *calculation.Engine
	year   int
	today  time.Time
}

// NewDuesModel creates the dues scene
func NewDuesModel(engine *calculation.Engine, year int, today time.Time) *DuesModel {
	return &DuesModel{engine: engine, year: year, today: today}
}

// SetYear changes the reference year
func (m *DuesModel) SetYear(year int) {
	m.year = year
}

// View renders the dues scene
func (m *DuesModel) View() string {
	var sb strings.Builder

	due := calculation.NextDueDate(m.today)
	cards := []*components.MetricCard{
		components.NewMetricCard("Next DAS due", due.NextDueDate.Format("2006-01-02")).
			WithDescription(fmt.Sprintf("in %d days", due.DaysUntilDue)).
			WithHighlight(due.DaysUntilDue <= 5),
		components.NewMetricCard("Today", due.Today.Format("2006-01-02")),
	}
	sb.WriteString(components.MetricGrid(cards, 2))
	sb.WriteString("\n\n")

	header := fmt.Sprintf("%-10s %12s %10s %10s %10s %14s", "Activity", "Monthly", "INSS", "ICMS", "ISS", "Yearly")
	sb.WriteString(tuistyles.TableHeaderStyle.Render(header))
	sb.WriteString("\n")

	reference := false
	for _, activity := range domain.AllActivities {
		fd, err := m.engine.ComputeFixedDue(activity, m.year)
		if err != nil {
			sb.WriteString(tuistyles.ErrorStyle.Render(fmt.Sprintf("%-10s %s", activity, err)))
			sb.WriteString("\n")
			continue
		}
		reference = reference || fd.IsReferenceValue()
		sb.WriteString(tuistyles.TableCellStyle.Render(fmt.Sprintf("%-10s %12s %10s %10s %10s %14s",
			activity,
			tuistyles.FormatCurrency(fd.Total),
			tuistyles.FormatCurrency(fd.Components.Pension),
			tuistyles.FormatCurrency(fd.Components.StateTax),
			tuistyles.FormatCurrency(fd.Components.MunicipalTax),
			tuistyles.FormatCurrency(fd.Annual()))))
		sb.WriteString("\n")
	}

	if reference {
		sb.WriteString("\n")
		sb.WriteString(tuistyles.WarningStyle.Render(
			fmt.Sprintf("Values for %d are not published yet; showing the latest known year as reference.", m.year)))
		sb.WriteString("\n")
	}
	return sb.String()
}
