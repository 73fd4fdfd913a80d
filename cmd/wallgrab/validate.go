package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"wallgrab/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a config file and show the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := setupLogger()

		if cfgFile == "" {
			return errors.New("validate requires --config")
		}
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		warnings, err := cfg.Validate()
		if err != nil {
			return err
		}
		for _, w := range warnings {
			log.Warn(w)
		}

		fmt.Printf("%s is valid\n", cfgFile)
		fmt.Printf("  output_dir: %s\n", cfg.OutputDir)
		fmt.Printf("  concurrent_downloads: %d\n", cfg.ConcurrentDownloads)
		fmt.Printf("  fetch_timeout: %s\n", cfg.FetchTimeout)
		fmt.Printf("  filter: min %dx%d px, aspect %.2f-%.2f, min size %d bytes\n",
			cfg.Filter.MinWidth, cfg.Filter.MinHeight,
			cfg.Filter.MinAspectRatio, cfg.Filter.MaxAspectRatio, cfg.Filter.MinFileSize)
		fmt.Printf("  categorize: %t\n", cfg.CategorizeEnabled())
		fmt.Printf("  respect_robots: %t\n", cfg.RespectRobots)
		fmt.Printf("  write_manifest: %t\n", cfg.WriteManifest)
		return nil
	},
}
