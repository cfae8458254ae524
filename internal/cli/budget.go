package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/cloudcost/pkg/client"
)

func newBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budgets",
		Aliases: []string{"budget"},
		Short:   "Manage spend budgets",
	}

	cmd.AddCommand(newBudgetListCmd())
	cmd.AddCommand(newBudgetCreateCmd())
	cmd.AddCommand(newBudgetUpdateCmd())
	cmd.AddCommand(newBudgetDeleteCmd())

	return cmd
}

func newBudgetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets with current spend",
		RunE: func(cmd *cobra.Command, args []string) error {
			budgets, err := apiClient.Budgets().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list budgets: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(budgets)
			}

			if len(budgets) == 0 {
				fmt.Println("No budgets defined.")
				return nil
			}

			table := NewTable("ID", "NAME", "PERIOD", "AMOUNT", "SPENT", "USED", "STATE")
			for _, b := range budgets {
				table.AddRow(
					b.ID,
					truncate(b.Name, 30),
					b.Period,
					formatMoney(b.Amount),
					formatMoney(b.CurrentSpend),
					fmt.Sprintf("%.1f%%", b.Percentage),
					budgetState(b.IsOverBudget, b.IsNearLimit),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newBudgetCreateCmd() *cobra.Command {
	var (
		req       client.CreateBudgetRequest
		accountID string
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Period = strings.ToUpper(req.Period)
			if accountID != "" {
				req.CloudAccountID = &accountID
			}
			if cmd.Flags().Changed("threshold") {
				req.AlertThreshold = &threshold
			}

			budget, err := apiClient.Budgets().Create(context.Background(), req)
			if err != nil {
				return fmt.Errorf("failed to create budget: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(budget)
			}
			fmt.Printf("Budget %s created (ID: %s)\n", budget.Name, budget.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "budget name (required)")
	cmd.Flags().Float64Var(&req.Amount, "amount", 0, "spend limit in USD (required)")
	cmd.Flags().StringVar(&req.Period, "period", "MONTHLY", "MONTHLY, QUARTERLY or YEARLY")
	cmd.Flags().StringVar(&accountID, "account", "", "scope to one cloud account")
	cmd.Flags().Float64Var(&threshold, "threshold", 80, "alert threshold percentage")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newBudgetUpdateCmd() *cobra.Command {
	var (
		name              string
		amount, threshold float64
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a budget's name, amount or threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req client.UpdateBudgetRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("amount") {
				req.Amount = &amount
			}
			if cmd.Flags().Changed("threshold") {
				req.AlertThreshold = &threshold
			}
			if req.Name == nil && req.Amount == nil && req.AlertThreshold == nil {
				return fmt.Errorf("nothing to update: pass --name, --amount or --threshold")
			}

			budget, err := apiClient.Budgets().Update(context.Background(), args[0], req)
			if err != nil {
				return fmt.Errorf("failed to update budget: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(budget)
			}
			fmt.Printf("Budget %s updated\n", budget.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().Float64Var(&amount, "amount", 0, "new spend limit in USD")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "new alert threshold percentage")

	return cmd
}

func newBudgetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Budgets().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete budget: %w", err)
			}
			fmt.Printf("Budget %s deleted\n", args[0])
			return nil
		},
	}
}
