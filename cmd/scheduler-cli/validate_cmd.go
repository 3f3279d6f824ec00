package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/repository"
	"github.com/noah-isme/class-scheduler-api/internal/scheduler"
)

type validateOutput struct {
	Source string               `json:"source" yaml:"source"`
	Counts models.DatasetCounts `json:"counts" yaml:"counts"`
	Tasks  int                  `json:"tasks" yaml:"tasks"`
	Issues []string             `json:"issues" yaml:"issues"`
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the dataset and report counts and dangling references",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := repository.NewCSVDatasetRepository(root.dataDir)
			ds, err := repo.Load(cmd.Context())
			if err != nil {
				return err
			}

			issues := scheduler.CheckReferences(ds)
			report := validateOutput{
				Source: repo.Source(),
				Counts: ds.Counts(),
				Tasks:  len(scheduler.BuildTasks(ds)),
				Issues: make([]string, 0, len(issues)),
			}
			for _, issue := range issues {
				report.Issues = append(report.Issues, issue.String())
			}

			if err := writeStructured(cmd.OutOrStdout(), format, report); err != nil {
				return err
			}
			if len(issues) > 0 {
				return fmt.Errorf("dataset has %d dangling reference(s)", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "Output format: json or yaml")
	return cmd
}
