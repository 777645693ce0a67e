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

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Show projects with their pages and elements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunProjects(cmd.OutOrStdout())
	},
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Add, rename or remove projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunProjectAdd(cmd.OutOrStdout(), strings.Join(args, " "))
	},
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a project",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRename(cmd.OutOrStdout(), store.Projects, args[0], strings.Join(args[1:], " "))
	},
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a project with its pages and elements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRemove(cmd.OutOrStdout(), store.Projects, args[0])
	},
}

func init() {
	projectCmd.AddCommand(projectAddCmd, projectRenameCmd, projectRmCmd)
	rootCmd.AddCommand(projectsCmd, projectCmd)
}

func RunProjects(w io.Writer) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return a.printProjects(context.Background(), w)
}

func RunProjectAdd(w io.Writer, name string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	p, err := a.svc.AddProject(ctx, name)
	if err != nil {
		return fmt.Errorf("adding project: %w", err)
	}
	ui.NewLine(w, "project", p.Name, p.ID)
	return a.printProjects(ctx, w)
}

// kinds names each table the way the CLI talks about it.
var kinds = map[store.Table]string{
	store.Projects:         "project",
	store.Pages:            "page",
	store.Elements:         "element",
	store.Features:         "feature",
	store.Scenarios:        "scenario",
	store.ScenarioElements: "step",
}

// RunRename renames a project, page, feature or scenario and prints the
// tree it belongs to.
func RunRename(w io.Writer, table store.Table, rawID, name string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	id, err := a.resolve(ctx, table, rawID)
	if err != nil {
		return err
	}

	switch table {
	case store.Projects:
		err = a.svc.RenameProject(ctx, id, name)
	case store.Pages:
		err = a.svc.RenamePage(ctx, id, name)
	case store.Features:
		err = a.svc.RenameFeature(ctx, id, name)
	case store.Scenarios:
		err = a.svc.RenameScenario(ctx, id, name)
	default:
		return fmt.Errorf("%s cannot be renamed", kinds[table])
	}
	if err != nil {
		return fmt.Errorf("renaming %s: %w", kinds[table], err)
	}

	ui.SetLine(w, kinds[table], strings.TrimSpace(name), id)
	return a.printTreeFor(ctx, w, table)
}

// RunRemove deletes a record with everything beneath it.
func RunRemove(w io.Writer, table store.Table, rawID string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	id, err := a.resolve(ctx, table, rawID)
	if err != nil {
		return err
	}

	switch table {
	case store.Projects:
		err = a.svc.DeleteProject(ctx, id)
	case store.Pages:
		err = a.svc.DeletePage(ctx, id)
	case store.Elements:
		err = a.svc.DeleteElement(ctx, id)
	case store.Features:
		err = a.svc.DeleteFeature(ctx, id)
	case store.Scenarios:
		err = a.svc.DeleteScenario(ctx, id)
	case store.ScenarioElements:
		err = a.svc.RemoveStep(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("removing %s: %w", kinds[table], err)
	}

	ui.DelLine(w, kinds[table], id)
	if table == store.ScenarioElements {
		return nil
	}
	return a.printTreeFor(ctx, w, table)
}

func (a *app) printTreeFor(ctx context.Context, w io.Writer, table store.Table) error {
	switch table {
	case store.Projects, store.Pages, store.Elements:
		return a.printProjects(ctx, w)
	default:
		return a.printFeatures(ctx, w)
	}
}
