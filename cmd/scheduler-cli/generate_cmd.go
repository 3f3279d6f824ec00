package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/repository"
	"github.com/noah-isme/class-scheduler-api/internal/scheduler"
	"github.com/noah-isme/class-scheduler-api/internal/service"
	"github.com/noah-isme/class-scheduler-api/pkg/export"
)

type generateOutput struct {
	Windows    string                    `json:"windows" yaml:"windows"`
	DurationMS int64                     `json:"duration_ms" yaml:"duration_ms"`
	Sessions   []models.ScheduledSession `json:"sessions" yaml:"sessions"`
	Unplaced   []models.TaskOutcome      `json:"unplaced" yaml:"unplaced"`
	Passes     []scheduler.PassSummary   `json:"passes" yaml:"passes"`
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var (
		format  string
		windows string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the scheduler and print the timetable",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := root.logger()
			defer log.Sync() //nolint:errcheck

			if format != formatJSON && format != formatYAML && format != formatCSV {
				return fmt.Errorf("invalid --format %q: want json, yaml or csv", format)
			}
			parsed, err := scheduler.ParseWindows(windows)
			if err != nil {
				return fmt.Errorf("invalid --windows: %w", err)
			}
			sched, err := scheduler.New(scheduler.Policy{Windows: parsed, Strategy: scheduler.StrategyFirstFitNoBacktrack})
			if err != nil {
				return err
			}

			ds, err := repository.NewCSVDatasetRepository(root.dataDir).Load(cmd.Context())
			if err != nil {
				return err
			}

			start := time.Now()
			res := sched.Generate(ds)
			elapsed := time.Since(start)
			unplaced := res.Unplaced()
			log.Info("schedule generated",
				zap.Int("tasks", len(res.Outcomes)),
				zap.Int("unplaced", len(unplaced)),
				zap.Int("sessions", len(res.Sessions)),
				zap.Duration("duration", elapsed),
			)

			return withOutput(out, cmd.OutOrStdout(), func(w io.Writer) error {
				if format == formatCSV {
					body, err := export.NewCSVExporter().Render(service.ScheduleTable(res.Sessions))
					if err != nil {
						return err
					}
					_, err = w.Write(body)
					return err
				}
				return writeStructured(w, format, generateOutput{
					Windows:    scheduler.FormatWindows(parsed),
					DurationMS: elapsed.Milliseconds(),
					Sessions:   res.Sessions,
					Unplaced:   unplaced,
					Passes:     res.Passes,
				})
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json, yaml or csv")
	cmd.Flags().StringVar(&windows, "windows", "", `Period windows per pass, e.g. "1,2,3,4,6,7,8;9,10,11,12" (default two-pass day/evening)`)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to file instead of stdout")
	return cmd
}
