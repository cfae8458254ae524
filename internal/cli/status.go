package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check server health and login state",
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := apiClient.Health(context.Background())
			if err != nil {
				return fmt.Errorf("server unreachable: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(health)
			}

			fmt.Printf("Server:   %s\n", viper.GetString("server_url"))
			fmt.Printf("Status:   %s\n", health.Status)
			fmt.Printf("Message:  %s\n", health.Message)
			if email := viper.GetString("auth.email"); email != "" {
				fmt.Printf("User:     %s\n", email)
			} else {
				fmt.Println("User:     not logged in")
			}
			return nil
		},
	}
}
