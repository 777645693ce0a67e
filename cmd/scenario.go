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

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Add, rename, remove or show scenarios",
}

var scenarioAddCmd = &cobra.Command{
	Use:   "add <feature-id>",
	Short: `Add "New Scenario" to a feature`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunScenarioAdd(cmd.OutOrStdout(), args[0])
	},
}

var scenarioRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a scenario",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRename(cmd.OutOrStdout(), store.Scenarios, args[0], strings.Join(args[1:], " "))
	},
}

var scenarioRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a scenario with its steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRemove(cmd.OutOrStdout(), store.Scenarios, args[0])
	},
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a scenario's steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunScenarioShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	scenarioCmd.AddCommand(scenarioAddCmd, scenarioRenameCmd, scenarioRmCmd, scenarioShowCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func RunScenarioAdd(w io.Writer, rawFeatureID string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	featureID, err := a.resolve(ctx, store.Features, rawFeatureID)
	if err != nil {
		return err
	}
	sc, err := a.svc.AddScenario(ctx, featureID)
	if err != nil {
		return fmt.Errorf("adding scenario: %w", err)
	}
	ui.NewLine(w, "scenario", sc.Name, sc.ID)
	return a.printFeatures(ctx, w)
}

func RunScenarioShow(w io.Writer, rawID string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	id, err := a.resolve(ctx, store.Scenarios, rawID)
	if err != nil {
		return err
	}
	return a.printScenario(ctx, w, id)
}

func (a *app) printScenario(ctx context.Context, w io.Writer, id string) error {
	sc, err := a.svc.Scenario(ctx, id)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	ui.ScenarioDetail(w, sc)
	return nil
}
