package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wallgrab/pkg/fetch"
	"wallgrab/pkg/source"
)

var scanCmd = &cobra.Command{
	Use:   "scan [page-url]",
	Short: "List image candidates on a page without downloading",
	Long: `Fetch a page, extract its image URLs, and print them one per line.
Useful for building a url file to feed into 'wallgrab run -f'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := setupLogger()

		cfg, err := buildConfig(cmd, log)
		if err != nil {
			return err
		}

		client := fetch.NewClient(cfg.HTTPClientSettings, cfg.FetchTimeout, log)
		fetcher := fetch.NewFetcher(client, cfg.UserAgent, logrus.NewEntry(log))
		scanner := source.NewScanner(fetcher, logrus.NewEntry(log))

		candidates, err := scanner.FromPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		for _, c := range candidates {
			fmt.Println(c.URL)
		}
		log.Infof("Found %d image candidates", len(candidates))
		return nil
	},
}
