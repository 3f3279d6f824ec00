package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/pkg/config"
	"github.com/noah-isme/class-scheduler-api/pkg/logger"
)

type rootOptions struct {
	dataDir string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "scheduler-cli",
		Short:        "Generate class timetables from a CSV dataset",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data", "./data", "Directory holding the dataset CSV files")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	return cmd
}

func (o *rootOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	l, err := logger.Build(config.EnvDevelopment, config.LogConfig{Level: "debug", Format: "console"})
	if err != nil {
		return zap.NewNop()
	}
	return l
}
