package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/cloudcost/pkg/client"
)

func newDeletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deletions",
		Aliases: []string{"deletion", "nuke"},
		Short:   "Track deleted cloud resources",
	}

	cmd.AddCommand(newDeletionListCmd())
	cmd.AddCommand(newDeletionRecordCmd())
	cmd.AddCommand(newDeletionAnalyticsCmd())

	return cmd
}

func newDeletionListCmd() *cobra.Command {
	var opts client.DeletionListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded deletions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			deletions, err := apiClient.Deletions().List(context.Background(), &opts)
			if err != nil {
				return fmt.Errorf("failed to list deletions: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(deletions)
			}

			if len(deletions) == 0 {
				fmt.Println("No deletions recorded.")
				return nil
			}

			table := NewTable("DELETED", "TYPE", "RESOURCE", "METHOD", "BY", "SAVINGS/MO")
			for _, d := range deletions {
				resource := d.ResourceID
				if d.ResourceName != "" {
					resource = d.ResourceName
				}
				savings := "-"
				if d.EstimatedSavings != nil {
					savings = formatMoney(*d.EstimatedSavings)
				}
				table.AddRow(
					d.DeletedAt.Format("2006-01-02 15:04"),
					d.ResourceType,
					truncate(resource, 40),
					d.DeletionMethod,
					truncate(d.DeletedBy, 24),
					savings,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.CloudAccountID, "account", "", "filter by cloud account")
	cmd.Flags().StringVar(&opts.ResourceType, "type", "", "filter by resource type")
	cmd.Flags().StringVar(&opts.StartDate, "since", "", "earliest deletion date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.EndDate, "until", "", "latest deletion date (YYYY-MM-DD, inclusive)")
	return cmd
}

func newDeletionRecordCmd() *cobra.Command {
	var (
		req              client.RecordDeletionRequest
		monthlyCost      float64
		recommendationID string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a deleted resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.DeletionMethod = strings.ToUpper(req.DeletionMethod)
			if cmd.Flags().Changed("monthly-cost") {
				req.MonthlyCostBefore = &monthlyCost
			}
			if recommendationID != "" {
				req.RecommendationID = &recommendationID
			}

			deletion, err := apiClient.Deletions().Record(context.Background(), req)
			if err != nil {
				return fmt.Errorf("failed to record deletion: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(deletion)
			}
			fmt.Printf("Deletion of %s recorded (ID: %s)\n", deletion.ResourceID, deletion.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.CloudAccountID, "account", "", "cloud account (required)")
	cmd.Flags().StringVar(&req.ResourceID, "resource-id", "", "provider resource identifier (required)")
	cmd.Flags().StringVar(&req.ResourceType, "type", "", "resource type, e.g. ec2-instance (required)")
	cmd.Flags().StringVar(&req.DeletionMethod, "method", "MANUAL", "MANUAL, AUTOMATED or RECOMMENDATION")
	cmd.Flags().StringVar(&req.ResourceName, "name", "", "resource display name")
	cmd.Flags().StringVar(&req.DeletedBy, "by", "", "who deleted it")
	cmd.Flags().Float64Var(&monthlyCost, "monthly-cost", 0, "monthly cost before deletion")
	cmd.Flags().StringVar(&req.DeletionReason, "reason", "", "why it was deleted")
	cmd.Flags().StringVar(&recommendationID, "recommendation", "", "recommendation that prompted the deletion")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("resource-id")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newDeletionAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Summarize deletions and realized savings",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := apiClient.Deletions().Analytics(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get deletion analytics: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(stats)
			}

			fmt.Printf("Total deletions:  %d\n", stats.TotalDeletions)
			fmt.Printf("Last 30 days:     %d\n", stats.RecentDeletions)
			fmt.Printf("Monthly savings:  %s\n", formatMoney(stats.TotalSavings))

			if len(stats.ByResourceType) > 0 {
				fmt.Println()
				table := NewTable("TYPE", "COUNT", "SAVINGS/MO")
				for _, s := range stats.ByResourceType {
					table.AddRow(s.ResourceType, fmt.Sprintf("%d", s.Count), formatMoney(s.Savings))
				}
				table.Render()
			}
			return nil
		},
	}
}
