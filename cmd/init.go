package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chriserin/px/internal/config"
	"github.com/chriserin/px/internal/db"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize px in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	// px/ directory
	_, err := os.Stat(pxDir)
	dirExists := err == nil
	if err := os.MkdirAll(pxDir, 0o755); err != nil {
		return fmt.Errorf("creating px directory: %w", err)
	}
	if dirExists {
		fmt.Fprintln(w, "px/ already exists")
	} else {
		fmt.Fprintln(w, "px/ created")
	}

	// config
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintln(w, configPath+" already exists")
	} else {
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return err
		}
		fmt.Fprintln(w, configPath+" created")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// database
	_, err = os.Stat(cfg.DBPath)
	dbExists := err == nil
	sqlDB, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintln(w, cfg.DBPath+" already exists")
	} else {
		fmt.Fprintln(w, cfg.DBPath+" created")
	}

	// gitignore
	msgs, err := ensureGitignore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore(entry string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
