package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const version = "1.0.0"

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "insight-agent",
		Short: "Insight-Agent text analysis service",
		Long: `Insight-Agent serves a small JSON API that counts the words and
non-whitespace characters of submitted text. Running the command without a
subcommand starts the HTTP server.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configFile)
		},
	}

	cmd.SetVersionTemplate("Insight-Agent version {{.Version}}\n")
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (yaml, json or toml)")
	addServeFlags(cmd.Flags())

	cmd.AddCommand(newServeCmd(&configFile), newAnalyzeCmd())
	return cmd
}

// addServeFlags registers the flags config.LoadConfig binds by name.
func addServeFlags(fs *pflag.FlagSet) {
	fs.String("host", "", "address to bind to (default 0.0.0.0)")
	fs.String("port", "", "port to listen on (default 8000)")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.String("log-format", "", "log format: text or json")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
