package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aellingwood/texgen/internal/build"
	"github.com/aellingwood/texgen/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate textures when the config changes",
	Long: "Generate every texture, then watch the config file and regenerate " +
		"whenever it is saved. Stop with Ctrl+C.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load config.
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path, _, err := configPath(cmd)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")

		root, err := projectRoot(cmd)
		if err != nil {
			return err
		}

		// 2. Run initial build.
		builder := build.NewBuilder(cfg, build.BuildOptions{
			ProjectRoot: root,
			Verbose:     verbose,
		})
		result, err := builder.Build()
		if err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}
		printResult(cmd, result, verbose)

		// 3. Rebuild on config changes. A config that fails to load keeps
		// the previous one in effect.
		debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
		watcher := watch.NewWatcher([]string{path}, debounce, func() {
			log.Println("Config changed, regenerating...")
			next, err := loadConfig(cmd)
			if err != nil {
				log.Printf("Keeping previous config: %v", err)
			} else {
				builder.SetConfig(next)
			}
			rebuildResult, err := builder.Build()
			if err != nil {
				log.Printf("Rebuild failed: %v", err)
				return
			}
			printResult(cmd, rebuildResult, verbose)
		})

		// 4. Handle graceful shutdown.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			<-sigCh
			fmt.Fprintln(cmd.OutOrStdout(), "\nStopping...")
			watcher.Stop()
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes\n", path)
		return watcher.Start()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
