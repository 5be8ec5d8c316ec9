package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berktools/berk/internal/config"
	"github.com/berktools/berk/internal/logging"
	"github.com/berktools/berk/internal/logtail"
)

func (c *cli) logsCmd() *cobra.Command {
	var (
		lines int
		level string
		raw   bool
		plain bool
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the end of the berk log",
		Long: `Show the end of the berk log file. The TUI owns the terminal while it
runs, so request and workflow logs are written to <log_dir>/berk.log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			minLevel, err := logging.ParseLevel(level)
			if err != nil {
				return err
			}
			tail, err := logtail.Read(cfg.LogPath(), lines)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				for _, line := range tail {
					fmt.Fprintln(out, line)
				}
				return nil
			}
			palette := logtail.DefaultPalette()
			if plain {
				palette = logtail.PlainPalette()
			}
			for _, line := range palette.FormatLines(tail, minLevel) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 200, "number of lines to read from the end (0 for all)")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level to show: debug, info, warn, error")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the JSON records unchanged")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	return cmd
}
