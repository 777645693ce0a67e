package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/px/internal/explorer"
	"github.com/chriserin/px/internal/model"
	"github.com/chriserin/px/internal/store"
	"github.com/chriserin/px/internal/ui"
)

var elementCmd = &cobra.Command{
	Use:   "element",
	Short: "Add, edit, remove or search page elements",
}

var elementAddCmd = &cobra.Command{
	Use:   "add <page-id>",
	Short: "Add a placeholder element to a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunElementAdd(cmd.OutOrStdout(), args[0])
	},
}

// ElementFlags carries the `element set` flags; nil means not given.
type ElementFlags struct {
	Name         *string
	SelectorType *string
	Selector     *string
	Action       *string
	Value        *string
}

var elementSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Change an element's name, selector or action",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var f ElementFlags
		flags := cmd.Flags()
		for name, dst := range map[string]**string{
			"name":          &f.Name,
			"selector-type": &f.SelectorType,
			"selector":      &f.Selector,
			"action":        &f.Action,
			"value":         &f.Value,
		} {
			if flags.Changed(name) {
				v, _ := flags.GetString(name)
				*dst = &v
			}
		}
		return RunElementSet(cmd.OutOrStdout(), args[0], f)
	},
}

var elementRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an element",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRemove(cmd.OutOrStdout(), store.Elements, args[0])
	},
}

var elementSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Find elements by name, selector value or action",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunElementSearch(cmd.OutOrStdout(), strings.Join(args, " "))
	},
}

func init() {
	elementSetCmd.Flags().String("name", "", "element name")
	var selectorTypes []string
	for _, st := range model.SelectorTypes() {
		selectorTypes = append(selectorTypes, string(st))
	}
	elementSetCmd.Flags().String("selector-type", "", strings.Join(selectorTypes, ", "))
	elementSetCmd.Flags().String("selector", "", "selector value")
	elementSetCmd.Flags().String("action", "", "click, type, hover, clear or select")
	elementSetCmd.Flags().String("value", "", "text to type (kept only for the type action)")

	elementCmd.AddCommand(elementAddCmd, elementSetCmd, elementRmCmd, elementSearchCmd)
	rootCmd.AddCommand(elementCmd)
}

func RunElementAdd(w io.Writer, rawPageID string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	pageID, err := a.resolve(ctx, store.Pages, rawPageID)
	if err != nil {
		return err
	}
	e, err := a.svc.AddElement(ctx, pageID)
	if err != nil {
		return fmt.Errorf("adding element: %w", err)
	}
	ui.NewLine(w, "element", e.Name, e.ID)
	return a.printProjects(ctx, w)
}

func RunElementSet(w io.Writer, rawID string, f ElementFlags) error {
	u := explorer.ElementUpdate{
		Name:          f.Name,
		SelectorValue: f.Selector,
		ActionValue:   f.Value,
	}
	if f.SelectorType != nil {
		st, err := model.ParseSelectorType(*f.SelectorType)
		if err != nil {
			return err
		}
		u.SelectorType = &st
	}
	if f.Action != nil {
		at, err := model.ParseActionType(*f.Action)
		if err != nil {
			return err
		}
		u.ActionType = &at
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	id, err := a.resolve(ctx, store.Elements, rawID)
	if err != nil {
		return err
	}
	e, err := a.svc.UpdateElement(ctx, id, u)
	if err != nil {
		return fmt.Errorf("updating element: %w", err)
	}
	if f.Value != nil && e.ActionValue == "" {
		ui.WarnLine(w, "value ignored: only the type action keeps a value")
	}
	ui.SetLine(w, "element", e.Name, e.ID)
	return a.printProjects(ctx, w)
}

func RunElementSearch(w io.Writer, term string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	found, err := a.svc.SearchElements(context.Background(), term)
	if err != nil {
		return fmt.Errorf("searching elements: %w", err)
	}
	ui.ElementList(w, found)
	return nil
}
