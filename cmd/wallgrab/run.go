package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wallgrab/pkg/config"
	"wallgrab/pkg/models"
	"wallgrab/pkg/pipeline"
	"wallgrab/pkg/progress"
	"wallgrab/pkg/source"
)

var (
	runURLs          []string
	runFile          string
	runPage          string
	runOutput        string
	runMinWidth      int
	runMinHeight     int
	runMinAspect     float64
	runMaxAspect     float64
	runMinSizeKB     int
	runConcurrent    int
	runTimeoutSec    int
	runNoCategorize  bool
	runUserAgent     string
	runRespectRobots bool
	runManifest      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Download, filter, and categorize wallpapers",
	Long: `Fetch every candidate image, reject the ones that miss the resolution,
aspect ratio, or file size thresholds, and save the rest into per-category
subdirectories of the output directory.`,
	Example: `  # Download from direct image URLs
  wallgrab run -u https://example.com/image1.jpg -u https://example.com/image2.jpg

  # Download from URLs in a file
  wallgrab run -f urls.txt --concurrent 10

  # Extract and download from a webpage
  wallgrab run -p https://example.com/wallpapers --min-width 2560 --min-height 1440`,
	RunE: runDownload,
}

func init() {
	flags := runCmd.Flags()
	flags.StringSliceVarP(&runURLs, "urls", "u", nil, "Direct image URLs to download")
	flags.StringVarP(&runFile, "file", "f", "", "File containing URLs (one per line)")
	flags.StringVarP(&runPage, "page", "p", "", "Webpage URL to extract images from")
	flags.StringVarP(&runOutput, "output", "o", config.DefaultOutputDir, "Output directory")
	flags.IntVar(&runMinWidth, "min-width", config.DefaultMinWidth, "Minimum width in pixels")
	flags.IntVar(&runMinHeight, "min-height", config.DefaultMinHeight, "Minimum height in pixels")
	flags.Float64Var(&runMinAspect, "min-aspect", config.DefaultMinAspectRatio, "Minimum aspect ratio")
	flags.Float64Var(&runMaxAspect, "max-aspect", config.DefaultMaxAspectRatio, "Maximum aspect ratio")
	flags.IntVar(&runMinSizeKB, "min-size", int(config.DefaultMinFileSize/1024), "Minimum file size in KB")
	flags.IntVar(&runConcurrent, "concurrent", config.DefaultConcurrentDownloads, "Number of concurrent downloads")
	flags.IntVar(&runTimeoutSec, "timeout", int(config.DefaultFetchTimeout/time.Second), "Download timeout in seconds")
	flags.BoolVar(&runNoCategorize, "no-categorize", false, "Disable automatic categorization")
	flags.StringVar(&runUserAgent, "user-agent", "", "Override the request User-Agent")
	flags.BoolVar(&runRespectRobots, "respect-robots", false, "Honor robots.txt rules on target hosts")
	flags.BoolVar(&runManifest, "manifest", false, "Write a manifest.yaml describing the run")

	runCmd.MarkFlagsMutuallyExclusive("urls", "file", "page")
	runCmd.MarkFlagsOneRequired("urls", "file", "page")
}

func runDownload(cmd *cobra.Command, args []string) error {
	log := setupLogger()

	cfg, err := buildConfig(cmd, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// First signal finishes in-flight downloads; second one bails out.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		sig := <-sigChan
		log.Warnf("Received signal %v, finishing in-flight downloads...", sig)
		cancel()
		sig = <-sigChan
		log.Errorf("Received second signal %v, exiting immediately", sig)
		os.Exit(1)
	}()

	stream := progress.NewStream(256)
	p := pipeline.New(*cfg, log, stream)

	candidates, err := gatherCandidates(ctx, p, log)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return errors.New("no images to download")
	}

	printerDone := make(chan struct{})
	go func() {
		defer close(printerDone)
		for e := range stream.Events() {
			switch e.Kind {
			case progress.KindDownloaded:
				fmt.Printf("downloaded  %s -> %s\n", e.URL, e.Detail)
			case progress.KindFiltered:
				fmt.Printf("filtered    %s\n", e.URL)
			case progress.KindFailed:
				fmt.Printf("failed      %s (%s)\n", e.URL, e.Detail)
			}
		}
	}()

	runStats, runErr := p.Run(ctx, candidates)
	stream.Close()
	<-printerDone

	printSummary(os.Stdout, runStats, cfg.OutputDir)
	return runErr
}

// gatherCandidates resolves the mutually exclusive input flags into the
// candidate list.
func gatherCandidates(ctx context.Context, p *pipeline.Pipeline, log *logrus.Logger) ([]models.ImageCandidate, error) {
	switch {
	case len(runURLs) > 0:
		return source.FromURLs(runURLs), nil
	case runFile != "":
		return source.FromFile(runFile)
	default:
		if source.IsDirectImageURL(runPage) {
			log.Warnf("%s looks like a direct image link; pass it with -u to download it directly", runPage)
		}
		fmt.Printf("Extracting images from %s...\n", runPage)
		scanner := source.NewScanner(p.Fetcher(), logrus.NewEntry(log))
		candidates, err := scanner.FromPage(ctx, runPage)
		if err != nil {
			// Scan failures are not fatal: the run proceeds with whatever
			// was extracted, and zero candidates is handled by the caller.
			log.Errorf("Failed to extract images: %v", err)
		}
		fmt.Printf("Found %d images\n", len(candidates))
		return candidates, nil
	}
}

// buildConfig layers the effective configuration: config file values first,
// then explicitly set flags, then validation defaults for whatever is left.
func buildConfig(cmd *cobra.Command, log *logrus.Logger) (*config.Config, error) {
	cfg := &config.Config{}
	if cfgFile != "" {
		log.Infof("Loading configuration from %s", cfgFile)
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = runOutput
	}
	if flags.Changed("min-width") {
		cfg.Filter.MinWidth = runMinWidth
	}
	if flags.Changed("min-height") {
		cfg.Filter.MinHeight = runMinHeight
	}
	if flags.Changed("min-aspect") {
		cfg.Filter.MinAspectRatio = runMinAspect
	}
	if flags.Changed("max-aspect") {
		cfg.Filter.MaxAspectRatio = runMaxAspect
	}
	if flags.Changed("min-size") {
		cfg.Filter.MinFileSize = int64(runMinSizeKB) * 1024
	}
	if flags.Changed("concurrent") {
		cfg.ConcurrentDownloads = runConcurrent
	}
	if flags.Changed("timeout") {
		cfg.FetchTimeout = time.Duration(runTimeoutSec) * time.Second
	}
	if runNoCategorize {
		off := false
		cfg.Categorize = &off
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = runUserAgent
	}
	if flags.Changed("respect-robots") {
		cfg.RespectRobots = runRespectRobots
	}
	if flags.Changed("manifest") {
		cfg.WriteManifest = runManifest
	}

	warnings, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn(w)
	}
	return cfg, nil
}

// printSummary writes the end-of-run block with counters, the sorted
// category breakdown, and the output location.
func printSummary(w io.Writer, s models.Stats, outputDir string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, "Download Summary")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Total images processed: %d\n", s.Total)
	fmt.Fprintf(w, "Successfully downloaded: %d\n", s.Downloaded)
	fmt.Fprintf(w, "Filtered out: %d\n", s.Filtered)
	fmt.Fprintf(w, "Failed: %d\n", s.Failed)

	if len(s.Categories) > 0 {
		fmt.Fprintln(w, "\nCategories:")
		labels := make([]string, 0, len(s.Categories))
		for label := range s.Categories {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			fmt.Fprintf(w, "  %s: %d\n", label, s.Categories[label])
		}
	}

	fmt.Fprintf(w, "\nImages saved to: %s/\n", outputDir)
}
