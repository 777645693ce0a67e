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

var featuresFlat bool

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show the feature tree with scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunFeatures(cmd.OutOrStdout(), featuresFlat)
	},
}

var featureCmd = &cobra.Command{
	Use:   "feature",
	Short: "Add, rename or remove features",
}

var featureAddCmd = &cobra.Command{
	Use:   "add [parent-id]",
	Short: `Add "New Feature" at the top level or under a parent`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent := ""
		if len(args) == 1 {
			parent = args[0]
		}
		return RunFeatureAdd(cmd.OutOrStdout(), parent)
	},
}

var featureRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a feature",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRename(cmd.OutOrStdout(), store.Features, args[0], strings.Join(args[1:], " "))
	},
}

var featureRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a feature with everything beneath it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRemove(cmd.OutOrStdout(), store.Features, args[0])
	},
}

func init() {
	featuresCmd.Flags().BoolVar(&featuresFlat, "flat", false, "print one indented line per feature")
	featureCmd.AddCommand(featureAddCmd, featureRenameCmd, featureRmCmd)
	rootCmd.AddCommand(featuresCmd, featureCmd)
}

func RunFeatures(w io.Writer, flat bool) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if !flat {
		return a.printFeatures(ctx, w)
	}

	forest, err := a.svc.FeatureTree(ctx)
	if err != nil && forest == nil {
		return fmt.Errorf("loading features: %w", err)
	}
	model.Walk(forest, func(f model.Feature, depth int) {
		fmt.Fprintf(w, "%s%s  %s\n", strings.Repeat("  ", depth), ui.ShortID(f.ID), f.Name)
	})
	return nil
}

func RunFeatureAdd(w io.Writer, rawParentID string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	var parentID *string
	if rawParentID != "" {
		id, err := a.resolve(ctx, store.Features, rawParentID)
		if err != nil {
			return err
		}
		parentID = &id
	}

	f, err := a.svc.AddFeature(ctx, parentID)
	if err != nil {
		return fmt.Errorf("adding feature: %w", err)
	}
	ui.NewLine(w, "feature", f.Name, f.ID)
	return a.printFeatures(ctx, w)
}
