package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/cloudcost/pkg/client"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account", "acc"},
		Short:   "Manage connected cloud accounts",
	}

	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountCreateCmd())
	cmd.AddCommand(newAccountDeleteCmd())
	cmd.AddCommand(newAccountSyncCmd())

	return cmd
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cloud accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := apiClient.Accounts().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(accounts)
			}

			if len(accounts) == 0 {
				fmt.Println("No cloud accounts connected.")
				return nil
			}

			table := NewTable("ID", "PROVIDER", "NAME", "ACCOUNT ID", "DEMO", "STATUS", "LAST SYNC")
			for _, a := range accounts {
				lastSync := "-"
				if a.LastSyncedAt != nil {
					lastSync = a.LastSyncedAt.Format("2006-01-02 15:04")
				}
				table.AddRow(
					a.ID,
					a.Provider,
					truncate(a.AccountName, 30),
					truncate(a.AccountID, 24),
					fmt.Sprintf("%t", a.IsDemo),
					formatStatus(a.Status),
					lastSync,
				)
			}
			table.Render()
			return nil
		},
	}
}

func newAccountCreateCmd() *cobra.Command {
	var (
		provider, name, accountID string
		live                      bool
		credentials               []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Connect a cloud account",
		Long: `Connect a cloud account. Accounts are demo accounts with synthetic
cost data unless --live is given, in which case --cred key=value pairs
carry the provider credentials.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := parseKeyValues(credentials)
			if err != nil {
				return err
			}

			isDemo := !live
			account, err := apiClient.Accounts().Create(context.Background(), client.CreateAccountRequest{
				Provider:    strings.ToUpper(provider),
				AccountName: name,
				AccountID:   accountID,
				IsDemo:      &isDemo,
				Credentials: creds,
			})
			if err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(account)
			}
			fmt.Printf("Cloud account %s created (ID: %s)\n", account.AccountName, account.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "cloud provider: AWS, AZURE, GCP (required)")
	cmd.Flags().StringVar(&name, "name", "", "account display name (required)")
	cmd.Flags().StringVar(&accountID, "account-id", "", "provider account identifier (required)")
	cmd.Flags().BoolVar(&live, "live", false, "fetch real billing data instead of demo data")
	cmd.Flags().StringArrayVar(&credentials, "cred", nil, "provider credential as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("account-id")

	return cmd
}

func newAccountDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a cloud account and its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Accounts().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}
			fmt.Printf("Cloud account %s deleted\n", args[0])
			return nil
		},
	}
}

func newAccountSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync [id]",
		Short: "Refresh cost data for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := apiClient.Accounts().Sync(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(account)
			}
			fmt.Printf("Sync completed for %s (status: %s)\n", account.AccountName, account.Status)
			return nil
		},
	}
}

// parseKeyValues turns key=value flags into a map
func parseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid credential %q, expected key=value", p)
		}
		out[key] = value
	}
	return out, nil
}
