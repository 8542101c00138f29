// exportctl renders training-plan exports from the command line. It runs
// against the seeded mock workspace, which makes it a quick way to eyeball
// the CSV and document output without standing up a server or database.
package main

import (
	"context"
	"fmt"
	"os"

	"fitplan/training-planner/internal/repository/memory"
	"fitplan/training-planner/internal/service"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var outputPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "exportctl",
		Short: "Render training-plan exports from the seeded mock workspace",
	}
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(
		exportCommand("csv", "Render the plan as CSV, one row per prescription", service.FormatCSV),
		exportCommand("document", "Render the plan as a print-oriented text document", service.FormatDocument),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func exportCommand(use, short string, format service.ExportFormat) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), format)
		},
	}
}

func runExport(ctx context.Context, format service.ExportFormat) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store := memory.NewStore()
	if err := memory.Seed(store); err != nil {
		return fmt.Errorf("seed mock data: %w", err)
	}
	repos := memory.NewRepositories(store)

	owner, err := repos.Users.GetByEmail(ctx, memory.SeedOwnerEmail)
	if err != nil {
		return fmt.Errorf("resolve seed owner: %w", err)
	}

	plannerService := service.NewPlannerService(repos.Weeks, repos.Trainings, repos.Focuses, repos.Exercises)
	exportService := service.NewExportService(plannerService, nil)

	result, err := exportService.Export(ctx, owner, format, false)
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err = os.Stdout.Write(result.Data)
		return err
	}
	if err := os.WriteFile(outputPath, result.Data, 0o644); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"file":  outputPath,
		"bytes": len(result.Data),
	}).Info("export written")
	return nil
}
