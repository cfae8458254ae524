package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/cloudcost/pkg/client"
)

func newExportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download CSV reports",
	}
	cmd.PersistentFlags().StringVarP(&outDir, "dir", "d", ".", "directory to write the report into")

	var days int
	costs := newExportReportCmd("costs", "Export daily cost records", &outDir, func(ctx context.Context) (*client.Report, error) {
		return apiClient.Export().Costs(ctx, days)
	})
	costs.Flags().IntVar(&days, "days", 30, "window length in days (1-365)")

	cmd.AddCommand(costs)
	cmd.AddCommand(newExportReportCmd("recommendations", "Export recommendations", &outDir, func(ctx context.Context) (*client.Report, error) {
		return apiClient.Export().Recommendations(ctx)
	}))
	cmd.AddCommand(newExportReportCmd("deletions", "Export recorded deletions", &outDir, func(ctx context.Context) (*client.Report, error) {
		return apiClient.Export().Deletions(ctx)
	}))

	return cmd
}

func newExportReportCmd(use, short string, outDir *string, fetch func(context.Context) (*client.Report, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := fetch(context.Background())
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			path, err := writeReport(*outDir, report)
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %s (%d bytes)\n", path, len(report.Content))
			return nil
		},
	}
}

// writeReport saves a report under dir using the server-chosen filename
func writeReport(dir string, report *client.Report) (string, error) {
	name := filepath.Base(report.Filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("server returned no filename")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, report.Content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
