// Package cli implements the onboard command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "onboard",
	Short: "AI-powered repository onboarding guide generator",
	Long: `onboard interrogates an AI chat session (optionally backed by MCP
data-source servers) about a GitHub repository, the team that owns it, and
relevant learning resources, then stitches the results into one Markdown
onboarding guide for a new team member.

When the real chat backend is not configured, onboard falls back to an
offline demo session so every command still produces a complete guide.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("onboard %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
