package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/px/internal/importer"
	"github.com/chriserin/px/internal/store"
	"github.com/chriserin/px/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-import page objects or a feature directory",
}

var importJavaCmd = &cobra.Command{
	Use:   "java <project-id> <file.java>...",
	Short: "Create pages and elements from Java page-object classes",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunImportJava(cmd.OutOrStdout(), args[0], args[1:])
	},
}

var importDirParent string

var importDirCmd = &cobra.Command{
	Use:   "dir <directory>",
	Short: "Recreate a directory tree as features, with scenarios from .feature files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunImportDir(cmd.OutOrStdout(), importDirParent, args[0])
	},
}

func init() {
	importDirCmd.Flags().StringVar(&importDirParent, "parent", "", "feature to import under (top level when empty)")
	importCmd.AddCommand(importJavaCmd, importDirCmd)
	rootCmd.AddCommand(importCmd)
}

func RunImportJava(w io.Writer, rawProjectID string, paths []string) error {
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

	report, importErr := a.importer(w).ImportPageObjects(ctx, projectID, importer.FilesFromPaths(paths))
	ui.PageReport(w, report)
	if err := a.printProjects(ctx, w); err != nil {
		return err
	}
	if importErr != nil {
		return fmt.Errorf("import incomplete: %w", importErr)
	}
	return nil
}

func RunImportDir(w io.Writer, rawParentID, dir string) error {
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

	files, err := importer.FilesFromDir(dir, a.cfg.Import.Include, a.cfg.Import.Exclude)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	result, importErr := a.importer(w).ImportDirectory(ctx, parentID, files)
	ui.DirectoryReport(w, result)
	if err := a.printFeatures(ctx, w); err != nil {
		return err
	}
	if importErr != nil {
		return fmt.Errorf("import incomplete: %w", importErr)
	}
	return nil
}
