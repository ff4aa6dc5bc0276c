package main

import (
	"fmt"
	"os"

	"spendwise/internal/dto"

	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate (or regenerate) the report for one month",
		Example: `  report generate --user 6f1c6a52-4d4e-4a5e-9d3b-8a3b1e0c2f10 --month 2024-03`,
		RunE:    runGenerate,
	}
	cmd.Flags().String("month", "", "month to report on (YYYY-MM)")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	month, err := cmd.Flags().GetString("month")
	if err != nil {
		return err
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	report, err := e.reports.Generate(cmd.Context(), e.userID, month)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	return printReports(os.Stdout, []dto.ReportResponse{dto.NewReportResponse(report)})
}
