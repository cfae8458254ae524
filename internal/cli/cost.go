package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "costs",
		Aliases: []string{"cost"},
		Short:   "Inspect cloud spend",
	}

	cmd.AddCommand(newCostSummaryCmd())
	cmd.AddCommand(newCostTrendsCmd())
	cmd.AddCommand(newCostBreakdownCmd())
	cmd.AddCommand(newCostProvidersCmd())

	return cmd
}

func newCostSummaryCmd() *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show total, month-to-date and forecasted cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := apiClient.Costs().Summary(context.Background(), accountID)
			if err != nil {
				return fmt.Errorf("failed to get cost summary: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(summary)
			}

			fmt.Printf("Total (last 30 days):  %s\n", formatMoney(summary.TotalCost))
			fmt.Printf("Month to date:         %s\n", formatMoney(summary.MTDCost))
			fmt.Printf("Previous month:        %s\n", formatMoney(summary.PreviousMonthCost))
			fmt.Printf("Forecast (this month): %s\n", formatMoney(summary.ForecastedCost))
			fmt.Printf("Change vs last month:  %+.2f%%\n", summary.PercentageChange)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "limit to one cloud account")
	return cmd
}

func newCostTrendsCmd() *cobra.Command {
	var (
		accountID string
		days      int
	)

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Show daily cost over a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			trends, err := apiClient.Costs().Trends(context.Background(), accountID, days)
			if err != nil {
				return fmt.Errorf("failed to get cost trends: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(trends)
			}

			table := NewTable("DATE", "COST")
			for _, d := range trends {
				table.AddRow(d.Date, formatMoney(d.Cost))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "limit to one cloud account")
	cmd.Flags().IntVar(&days, "days", 30, "window length in days (1-365)")
	return cmd
}

func newCostBreakdownCmd() *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Show the top services by cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := apiClient.Costs().Breakdown(context.Background(), accountID)
			if err != nil {
				return fmt.Errorf("failed to get cost breakdown: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(services)
			}

			table := NewTable("SERVICE", "COST", "SHARE")
			for _, s := range services {
				table.AddRow(s.Service, formatMoney(s.Cost), fmt.Sprintf("%.1f%%", s.Percentage))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "limit to one cloud account")
	return cmd
}

func newCostProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "Show cost per cloud provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			providers, err := apiClient.Costs().Providers(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get provider costs: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(providers)
			}

			table := NewTable("PROVIDER", "COST", "SHARE")
			for _, p := range providers {
				table.AddRow(p.Provider, formatMoney(p.Cost), fmt.Sprintf("%.1f%%", p.Percentage))
			}
			table.Render()
			return nil
		},
	}
}
