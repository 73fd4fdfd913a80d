package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	cfgFile  string
)

var rootCmd = &cobra.Command{
	Use:   "wallgrab",
	Short: "Download and organize high-resolution wallpapers",
	Long: `wallgrab fetches images from direct URLs, URL list files, or a scanned web
page, filters them by resolution, aspect ratio, and file size, and files the
keepers into per-category directories.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a yaml config file")
	rootCmd.Version = version

	rootCmd.AddCommand(runCmd, scanCmd, categoriesCmd, validateCmd, versionCmd)
}

// setupLogger configures the process logger from the --log-level flag.
func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", logLevel, err)
	} else {
		log.SetLevel(level)
	}
	return log
}
