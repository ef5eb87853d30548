// SPDX-License-Identifier: MIT

package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"epgweaver/internal/app"
	"epgweaver/internal/config"
	xwlog "epgweaver/internal/log"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCommand() *cobra.Command {
	var (
		configPath    string
		m3uSource     string
		epgSource     string
		outPath       string
		playlistOut   string
		overridesFile string
		minRatio      float64
		blockCount    int
		blockHours    int
		logLevel      string
	)

	cmd := &cobra.Command{
		Use:   "epgweaver",
		Short: "Reconcile an M3U playlist with an XMLTV guide",
		Long: `epgweaver matches the channels of an M3U playlist against an XMLTV
EPG document, re-keys the guide's programmes to the playlist's channel
identifiers, and synthesizes placeholder schedules for channels without
a credible match. The result is a single guide whose ids agree with the
playlist.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			// Flags beat config file and environment.
			flags := cmd.Flags()
			if flags.Changed("m3u") {
				cfg.PlaylistSource = m3uSource
			}
			if flags.Changed("epg") {
				cfg.EPGSource = epgSource
			}
			if flags.Changed("out") {
				cfg.OutputPath = outPath
			}
			if flags.Changed("out-m3u") {
				cfg.PlaylistOut = playlistOut
			}
			if flags.Changed("overrides") {
				cfg.OverridesFile = overridesFile
			}
			if flags.Changed("min-ratio") {
				cfg.MinRatio = minRatio
			}
			if flags.Changed("blocks") {
				cfg.BlockCount = blockCount
			}
			if flags.Changed("block-hours") {
				cfg.BlockHours = blockHours
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			xwlog.Configure(xwlog.Config{Level: cfg.LogLevel, Service: "epgweaver"})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			_, err = app.Run(ctx, cfg)
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&m3uSource, "m3u", "", "M3U playlist URL or file path (required unless set in config)")
	cmd.Flags().StringVar(&epgSource, "epg", "", "source XMLTV EPG URL or file path (optional)")
	cmd.Flags().StringVar(&outPath, "out", "epg.xml", "output XMLTV file")
	cmd.Flags().StringVar(&playlistOut, "out-m3u", "", "optionally write the playlist back with reconciled tvg-ids")
	cmd.Flags().StringVar(&overridesFile, "overrides", "", "JSON file with manual channel overrides (channel_map.json format)")
	cmd.Flags().Float64Var(&minRatio, "min-ratio", 0.72, "fuzzy match acceptance threshold in [0,1]")
	cmd.Flags().IntVar(&blockCount, "blocks", 48, "placeholder blocks per unmatched channel")
	cmd.Flags().IntVar(&blockHours, "block-hours", 1, "width of each placeholder block in hours")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("epgweaver %s (commit %s)\n", version, commit)
		},
	}
}
