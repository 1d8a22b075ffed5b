package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aellingwood/texgen/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "texgen",
	Short: "Generate placeholder block textures",
	Long: "Texgen procedurally generates the wasteland placeholder block textures " +
		"and writes them as PNG files. Run without arguments to regenerate every texture.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "texgen.toml", "path to config file (optional)")
	rootCmd.PersistentFlags().String("project", "", "project root (default: current directory)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")

	addGenerateFlags(rootCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// configPath returns --config resolved against the project root, and whether
// the flag was given explicitly.
func configPath(cmd *cobra.Command) (string, bool, error) {
	flag := cmd.Root().PersistentFlags().Lookup("config")
	path := flag.Value.String()
	if !filepath.IsAbs(path) {
		root, err := projectRoot(cmd)
		if err != nil {
			return "", false, err
		}
		path = filepath.Join(root, path)
	}
	return path, flag.Changed, nil
}

// loadConfig loads the configuration named by --config. A missing file is
// only an error when the flag was given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, explicit, err := configPath(cmd)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if explicit {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOptional(path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// projectRoot returns --project, or the working directory.
func projectRoot(cmd *cobra.Command) (string, error) {
	root, _ := cmd.Root().PersistentFlags().GetString("project")
	if root != "" {
		return root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determining project root: %w", err)
	}
	return wd, nil
}
