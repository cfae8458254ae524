package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/cloudcost/pkg/client"
)

func newRecommendationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recommendations",
		Aliases: []string{"recommendation", "rec"},
		Short:   "Generate and act on savings recommendations",
	}

	cmd.AddCommand(newRecommendationListCmd())
	cmd.AddCommand(newRecommendationGenerateCmd())
	cmd.AddCommand(newRecommendationSavingsCmd())
	cmd.AddCommand(newRecommendationTransitionCmd("implement", "Mark a recommendation as implemented"))
	cmd.AddCommand(newRecommendationTransitionCmd("dismiss", "Dismiss a recommendation"))

	return cmd
}

func newRecommendationListCmd() *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recommendations, largest savings first",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := apiClient.Recommendations().List(context.Background(), accountID)
			if err != nil {
				return fmt.Errorf("failed to list recommendations: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(recs)
			}

			if len(recs) == 0 {
				fmt.Println("No recommendations. Run 'cloudcost recommendations generate --account <id>'.")
				return nil
			}

			table := NewTable("ID", "TYPE", "PRIORITY", "STATUS", "SAVINGS/MO", "TITLE")
			for _, r := range recs {
				table.AddRow(
					r.ID,
					r.Type,
					formatPriority(r.Priority),
					formatStatus(r.Status),
					formatMoney(r.EstimatedSavings),
					truncate(r.Title, 50),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "limit to one cloud account")
	return cmd
}

func newRecommendationGenerateCmd() *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Analyze an account's costs and create recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Recommendations().Generate(context.Background(), accountID)
			if err != nil {
				return fmt.Errorf("failed to generate recommendations: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}
			fmt.Println(result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "cloud account to analyze (required)")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newRecommendationSavingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "savings",
		Short: "Show potential and realized savings",
		RunE: func(cmd *cobra.Command, args []string) error {
			savings, err := apiClient.Recommendations().Savings(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get savings: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(savings)
			}

			fmt.Printf("Potential savings: %s/mo (%d pending)\n", formatMoney(savings.PotentialSavings), savings.PendingCount)
			fmt.Printf("Actual savings:    %s/mo (%d implemented)\n", formatMoney(savings.ActualSavings), savings.ImplementedCount)
			return nil
		},
	}
}

func newRecommendationTransitionCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " [id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs := apiClient.Recommendations()

			var (
				rec *client.Recommendation
				err error
			)
			if action == "implement" {
				rec, err = recs.Implement(context.Background(), args[0])
			} else {
				rec, err = recs.Dismiss(context.Background(), args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to %s recommendation: %w", action, err)
			}

			if getOutputFormat() != "table" {
				return printOutput(rec)
			}
			fmt.Printf("Recommendation %s is now %s\n", rec.ID, rec.Status)
			return nil
		},
	}
}
