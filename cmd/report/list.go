package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"spendwise/internal/dto"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored reports, newest month first",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	reports, err := e.reports.List(cmd.Context(), e.userID)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	if len(reports) == 0 {
		fmt.Println("No reports yet. Use 'report generate' to create one.")
		return nil
	}

	return printReports(os.Stdout, dto.NewReportResponses(reports))
}

func printReports(out io.Writer, reports []dto.ReportResponse) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tTOTAL\tTOP CATEGORY\tOVER BUDGET")
	for _, r := range reports {
		over := "-"
		if len(r.OverbudgetCategories) > 0 {
			over = strings.Join(r.OverbudgetCategories, ", ")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Month, r.TotalSpent, r.TopCategory, over)
	}
	return w.Flush()
}
