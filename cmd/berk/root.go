package main

import (
	"github.com/spf13/cobra"

	"github.com/berktools/berk/internal/app"
)

// cli carries the persistent flags into every command.
type cli struct {
	opts app.Options
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	c.opts.Version = version

	root := &cobra.Command{
		Use:   "berk",
		Short: "Berk Tools in your terminal",
		Long: `Berk Tools in your terminal.

Run without a command to open the interactive launcher. The commands below
reach the same backend non-interactively and share the stored sign-in.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), c.opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.ConfigPath, "config", "", "config file (default ~/.config/berk/config.toml)")
	flags.StringVar(&c.opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/berk/prefs.toml)")
	flags.StringVar(&c.opts.BackendURL, "backend", "", "backend URL (overrides backend_url and $BERK_BACKEND_URL)")
	flags.StringVar(&c.opts.Scheme, "scheme", "", "auth scheme: bearer or basic (overrides auth_scheme)")
	flags.BoolVar(&c.opts.Ephemeral, "ephemeral", false, "keep the sign-in and saved-words mirror in memory only")
	flags.BoolVar(&c.opts.Debug, "debug", false, "log at debug level; commands log to stderr")

	root.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.lookupCmd(),
		c.savedCmd(),
		c.showCmd(),
		c.saveCmd(),
		c.deleteCmd(),
		c.logsCmd(),
	)
	return root
}

// withDeps builds the shared components for one command and closes them after.
// Commands write their results to stdout, so logs stay in the log file unless
// --debug sends them to stderr.
func (c *cli) withDeps(fn func(*app.Deps) error) error {
	opts := c.opts
	opts.LogStderr = opts.Debug
	deps, err := app.Build(opts)
	if err != nil {
		return err
	}
	defer deps.Close()
	return fn(deps)
}
