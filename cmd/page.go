package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/px/internal/store"
	"github.com/chriserin/px/internal/ui"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Add, rename or remove pages",
}

var pageAddCmd = &cobra.Command{
	Use:   "add <project-id> [name]",
	Short: `Add a page to a project (named "New Page" when no name is given)`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPageAdd(cmd.OutOrStdout(), args[0], strings.Join(args[1:], " "))
	},
}

var pageRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a page",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRename(cmd.OutOrStdout(), store.Pages, args[0], strings.Join(args[1:], " "))
	},
}

var pageRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a page with its elements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRemove(cmd.OutOrStdout(), store.Pages, args[0])
	},
}

func init() {
	pageCmd.AddCommand(pageAddCmd, pageRenameCmd, pageRmCmd)
	rootCmd.AddCommand(pageCmd)
}

func RunPageAdd(w io.Writer, rawProjectID, name string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	projectID, err := a.resolve(ctx, store.Projects, rawProjectID)
	if err != nil {
		return err
	}

	page, err := a.svc.AddPage(ctx, projectID)
	if err == nil && strings.TrimSpace(name) != "" {
		err = a.svc.RenamePage(ctx, page.ID, name)
		page.Name = strings.TrimSpace(name)
	}
	if err != nil {
		return fmt.Errorf("adding page: %w", err)
	}

	ui.NewLine(w, "page", page.Name, page.ID)
	return a.printProjects(ctx, w)
}
