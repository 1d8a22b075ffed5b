package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aellingwood/texgen/internal/build"
	"github.com/aellingwood/texgen/internal/texture"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured textures",
	Long:  "List configured textures and whether the files on disk are current, stale, or missing.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		root, err := projectRoot(cmd)
		if err != nil {
			return err
		}

		statuses, err := build.Status(cfg, root)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tPROFILE\tSIZE\tSEED\tSTATUS\tPATH")
		for _, s := range statuses {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
				s.Texture.Name, s.Texture.Profile, s.Texture.Size, s.Texture.Seed, s.Status, s.RelPath)
		}
		return tw.Flush()
	},
}

var listProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List available texture profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, p := range texture.Profiles() {
			fmt.Fprintf(out, "%-8s seed %-6d %s\n", p.Name, p.DefaultSeed, p.Description)
		}
		return nil
	},
}

func init() {
	listCmd.AddCommand(listProfilesCmd)

	rootCmd.AddCommand(listCmd)
}
