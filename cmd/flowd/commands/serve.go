package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/flowd/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pipeline analysis HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			listen, _ := cmd.Flags().GetString("listen")
			textLogs, _ := cmd.Flags().GetBool("text-logs")
			return c.app.Serve(cmd.Context(), app.ServeOptions{
				ConfigPath: configPath,
				ListenAddr: listen,
				TextLogs:   textLogs,
			})
		},
	}
	cmd.Flags().StringP("config", "c", "flowd.yaml", "Path to configuration file")
	cmd.Flags().StringP("listen", "l", "", "Listen address, overrides the configured one")
	cmd.Flags().Bool("text-logs", false, "Log in human-readable text instead of JSON")
	return cmd
}
