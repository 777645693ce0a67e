package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/px/internal/model"
	"github.com/chriserin/px/internal/store"
	"github.com/chriserin/px/internal/ui"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Bind page elements to scenarios as steps",
}

var stepAddCmd = &cobra.Command{
	Use:   "add <scenario-id> <Page>.<Element>",
	Short: "Append a Click step on an element to a scenario",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStepAdd(cmd.OutOrStdout(), args[0], strings.Join(args[1:], " "))
	},
}

var stepSetCmd = &cobra.Command{
	Use:   "set <id> <action> [value]",
	Short: "Change a step's action and value",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value *string
		if len(args) == 3 {
			value = &args[2]
		}
		return RunStepSet(cmd.OutOrStdout(), args[0], args[1], value)
	},
}

var stepRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRemove(cmd.OutOrStdout(), store.ScenarioElements, args[0])
	},
}

func init() {
	var actions []string
	for _, a := range model.StepActions() {
		actions = append(actions, string(a))
	}
	stepSetCmd.Long = "Change a step's action and value.\n\nActions: " + strings.Join(actions, ", ") +
		".\nMulti-word actions must be quoted."

	stepCmd.AddCommand(stepAddCmd, stepSetCmd, stepRmCmd)
	rootCmd.AddCommand(stepCmd)
}

func RunStepAdd(w io.Writer, rawScenarioID, ref string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	scenarioID, err := a.resolve(ctx, store.Scenarios, rawScenarioID)
	if err != nil {
		return err
	}
	st, err := a.svc.AddStep(ctx, scenarioID, ref)
	if err != nil {
		return fmt.Errorf("adding step: %w", err)
	}
	ui.NewLine(w, "step", st.ElementRef, st.ID)
	return a.printScenario(ctx, w, scenarioID)
}

func RunStepSet(w io.Writer, rawID, rawAction string, value *string) error {
	action, err := model.ParseStepAction(rawAction)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	id, err := a.resolve(ctx, store.ScenarioElements, rawID)
	if err != nil {
		return err
	}
	if err := a.svc.UpdateStep(ctx, id, action, value); err != nil {
		return fmt.Errorf("updating step: %w", err)
	}
	if action.NeedsValue() && value == nil {
		ui.WarnLine(w, fmt.Sprintf("%s usually takes a value", action))
	}

	scenarioID, err := a.svc.StepScenario(ctx, id)
	if err != nil {
		return err
	}
	ui.SetLine(w, "step", string(action), id)
	return a.printScenario(ctx, w, scenarioID)
}
