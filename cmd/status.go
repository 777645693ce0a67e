package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/px/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Count projects, pages, elements, features, scenarios and steps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	counts, err := a.svc.Status(context.Background())
	if err != nil {
		return fmt.Errorf("counting records: %w", err)
	}
	ui.StatusCounts(w, counts)
	return nil
}
