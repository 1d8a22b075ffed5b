package main

import (
	"fmt"
	"path/filepath"

	"github.com/aellingwood/texgen/internal/build"
	"github.com/aellingwood/texgen/internal/preview"
	"github.com/aellingwood/texgen/internal/texture"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [texture...]",
	Short: "Write enlarged, tiled preview sheets",
	Long: "Render each texture magnified and tiled 2x2 so seams are easy to spot. " +
		"Texture files themselves are not rewritten.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		root, err := projectRoot(cmd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("scale") {
			n, _ := cmd.Flags().GetInt("scale")
			cfg.WithOverrides(map[string]any{"previewScale": n})
		}
		if cmd.Flags().Changed("format") {
			cfg.Preview.Formats, _ = cmd.Flags().GetStringSlice("format")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		selected, err := cfg.Select(args)
		if err != nil {
			return err
		}

		dir := cfg.Preview.Dir
		if dir == "" {
			dir = filepath.Join(build.StateDir, "preview")
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		opts := preview.Options{Dir: dir, Scale: cfg.Preview.Scale, Formats: cfg.Preview.Formats}

		out := cmd.OutOrStdout()
		for _, tex := range selected {
			p, err := texture.Lookup(tex.Profile)
			if err != nil {
				return fmt.Errorf("texture %s: %w", tex.Name, err)
			}
			img, _, err := build.Render(p, tex)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", tex.Name, err)
			}
			sheets, err := preview.Write(tex.Name, img, opts)
			if err != nil {
				return err
			}
			for _, s := range sheets {
				fmt.Fprintf(out, "Preview: %s (%dx%d)\n", s.Path, s.Width, s.Height)
			}
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().Int("scale", 8, "magnification factor")
	previewCmd.Flags().StringSlice("format", []string{"png"}, "output formats (png, webp)")

	rootCmd.AddCommand(previewCmd)
}
