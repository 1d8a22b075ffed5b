package main

import (
	"fmt"
	"time"

	"github.com/aellingwood/texgen/internal/build"
	"github.com/spf13/cobra"
)

// reloadHint is printed after every successful build.
const reloadHint = "Done. Press F3+T in Minecraft to reload resources."

var generateCmd = &cobra.Command{
	Use:     "generate [texture...]",
	Aliases: []string{"gen"},
	Short:   "Generate textures",
	Long: "Generate the configured textures. Name textures (or profiles) to " +
		"generate only those; with no arguments every texture is written.",
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

// addGenerateFlags registers the flags shared by the root and generate
// commands.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "override the resources output root")
	cmd.Flags().Int("size", 0, "override the edge length of every texture")
	cmd.Flags().Bool("preview", false, "also write enlarged, tiled preview sheets")
}

// generateOverrides collects explicitly set generate flags as config
// overrides.
func generateOverrides(cmd *cobra.Command) map[string]any {
	overrides := make(map[string]any)
	if cmd.Flags().Changed("out") {
		v, _ := cmd.Flags().GetString("out")
		overrides["outputRoot"] = v
	}
	if cmd.Flags().Changed("size") {
		v, _ := cmd.Flags().GetInt("size")
		overrides["size"] = v
	}
	return overrides
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.WithOverrides(generateOverrides(cmd))
	if err := cfg.Validate(); err != nil {
		return err
	}

	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	withPreview, _ := cmd.Flags().GetBool("preview")
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")

	builder := build.NewBuilder(cfg, build.BuildOptions{
		ProjectRoot: root,
		Only:        args,
		Preview:     withPreview,
		Verbose:     verbose,
	})
	result, err := builder.Build()
	if err != nil {
		return err
	}

	printResult(cmd, result, verbose)
	return nil
}

// printResult writes one line per generated file followed by the reload hint.
func printResult(cmd *cobra.Command, result *build.BuildResult, verbose bool) {
	out := cmd.OutOrStdout()
	for _, t := range result.Textures {
		fmt.Fprintf(out, "Wrote: %s\n", t.Path)
		if verbose {
			fmt.Fprintf(out, "  profile=%s size=%dx%d seed=%d bytes=%d\n", t.Profile, t.Size, t.Size, t.Seed, t.Bytes)
		}
	}
	for _, s := range result.Previews {
		fmt.Fprintf(out, "Preview: %s\n", s.Path)
	}
	if verbose {
		fmt.Fprintf(out, "Built %d textures for %s in %s\n",
			len(result.Textures), result.Namespace, result.Duration.Round(time.Millisecond))
	}
	fmt.Fprintln(out, reloadHint)
}
