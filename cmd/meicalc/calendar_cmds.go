package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/meicalc/meicalc/internal/calculation"
	"github.com/meicalc/meicalc/internal/config"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/meicalc/meicalc/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newCapCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cap",
		Short: "Track the year's revenue against the MEI cap",
		Long: `Track accumulated revenue against the MEI yearly cap and project the year.

Records come from a YAML or JSON file (a list of month, year and amount) or
from --amounts, one amount per month starting in January of --year.

Examples:
  meicalc cap --amounts 6500,7200,8100 --year 2025
  meicalc cap --records revenue.yaml --activity trucker`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.revenueRecords(cmd)
			if err != nil {
				return err
			}

			legalCap, err := optionalDecimalFlag(cmd, "cap")
			if err != nil {
				return err
			}

			var status domain.CapStatus
			if legalCap != nil {
				status, err = calculation.ComputeCapStatus(records, *legalCap)
			} else {
				var activity domain.ActivityType
				if activity, err = activityFlag(cmd); err != nil {
					return err
				}
				status, err = a.engine.CapStatusFor(activity, records)
			}
			if err != nil {
				return err
			}
			return a.write(cmd, output.CapStatusReport(status))
		},
	}
	cmd.Flags().String("records", "", "YAML or JSON file with monthly revenue records")
	cmd.Flags().String("amounts", "", "comma separated monthly revenue starting in January")
	cmd.Flags().String("cap", "", "override the legal cap")
	addActivityFlags(cmd)
	return cmd
}

func (a *app) revenueRecords(cmd *cobra.Command) ([]domain.RevenueRecord, error) {
	if path, _ := cmd.Flags().GetString("records"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read revenue records: %w", err)
		}
		var records []domain.RevenueRecord
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse revenue records: %w", err)
		}
		return records, nil
	}

	raw, _ := cmd.Flags().GetString("amounts")
	amounts, err := decimalList("amounts", raw)
	if err != nil {
		return nil, err
	}
	if len(amounts) == 0 {
		return nil, fmt.Errorf("either --records or --amounts is required")
	}
	year := a.yearFlag(cmd)
	records := make([]domain.RevenueRecord, len(amounts))
	for i, amount := range amounts {
		records[i] = domain.RevenueRecord{Month: i + 1, Year: year, Amount: amount}
	}
	return records, nil
}

func newDueDateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due-date",
		Short: "Show the next DAS due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := a.todayFlag(cmd)
			if err != nil {
				return err
			}
			return a.write(cmd, output.DueDateReport(calculation.NextDueDate(today)))
		},
	}
	cmd.Flags().String("today", "", "reference date YYYY-MM-DD (defaults to today)")
	return cmd
}

func newAlertsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List who should get a DAS reminder today",
		Long: `Select the subjects that should be reminded of the next DAS due date today.

A reminder goes out when the days left until the due date match one of the
offsets and none was sent to the subject today. Offsets default to
MEICALC_ALERT_OFFSETS or 5,3,1. Subjects without an id get a generated one.

Example subjects file:
  - name: Ana
  - id: 6f1c1c52-8a3e-4d8b-9d55-0b7a1f2e9c02
    name: Bruno
    last_alert_sent: 2025-03-15T08:00:00Z`,
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := a.todayFlag(cmd)
			if err != nil {
				return err
			}

			offsets := a.settings.AlertOffsets
			if raw, _ := cmd.Flags().GetString("offsets"); raw != "" {
				if offsets, err = config.ParseOffsets(raw); err != nil {
					return err
				}
			}
			schedule, err := calculation.NewAlertSchedule(offsets)
			if err != nil {
				return err
			}

			path, _ := cmd.Flags().GetString("subjects")
			subjects, err := loadSubjects(path)
			if err != nil {
				return err
			}

			due := schedule.SelectAlertRecipients(today, subjects)
			a.logger.Debug("alert window evaluated", "subjects", len(subjects), "due", len(due))
			return a.write(cmd, output.AlertsReport(calculation.NextDueDate(today), schedule.Offsets, due))
		},
	}
	cmd.Flags().String("subjects", "", "YAML or JSON file with the subjects to check")
	cmd.Flags().String("offsets", "", "comma separated days before the due date")
	cmd.Flags().String("today", "", "reference date YYYY-MM-DD (defaults to today)")
	_ = cmd.MarkFlagRequired("subjects")
	return cmd
}

func loadSubjects(path string) ([]domain.AlertSubject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subjects: %w", err)
	}
	var subjects []domain.AlertSubject
	if err := yaml.Unmarshal(data, &subjects); err != nil {
		return nil, fmt.Errorf("failed to parse subjects: %w", err)
	}
	for i := range subjects {
		if subjects[i].ID == uuid.Nil {
			subjects[i].ID = uuid.New()
		}
	}
	return subjects, nil
}
