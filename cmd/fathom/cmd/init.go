package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fathom-search/fathom/configs"
	"github.com/fathom-search/fathom/internal/config"
	"github.com/fathom-search/fathom/internal/output"
)

var flagInitForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Init creates ~/.fathom/fathom.yaml from the annotated template.
Existing files are left untouched unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		path := flagConfig
		if path == "" {
			path = config.DefaultConfigPath()
		}

		if _, err := os.Stat(path); err == nil && !flagInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create config directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(configs.ConfigTemplate), 0o644); err != nil {
			return fmt.Errorf("cannot write config file: %w", err)
		}

		output.New(os.Stdout).Success("wrote %s", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
