package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	onboardmcp "github.com/valter-silva-au/onboard/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the onboard MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the onboard MCP server on stdio",
	Long: `Start the onboard MCP server on stdio transport.

The server exposes the onboarding pipeline as MCP tools that AI coding
assistants can call: scan_repository, generate_guide.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if GuideStore == nil {
			return fmt.Errorf("guide store not initialized")
		}

		session, err := setupSession(false, false, "")
		if err != nil {
			return fmt.Errorf("setting up session: %w", err)
		}

		srv := onboardmcp.NewServer(session, GuideStore, sessionTimeout(), appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
