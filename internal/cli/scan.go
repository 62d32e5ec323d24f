package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/onboard/internal/core"
)

var scanModel string

var scanCmd = &cobra.Command{
	Use:   "scan <owner> <repo>",
	Short: "Analyze a repository without generating a guide",
	Long: `Run only the repository collector: structure listing, tech-stack
detection, documentation summaries, PRs, issues, and discussions. The
resulting analysis record is printed as JSON.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, repo := args[0], args[1]

		session, err := setupSession(false, false, scanModel)
		if err != nil {
			return err
		}

		collector := core.NewRepoCollector(session, sessionTimeout())
		analysis, err := collector.Collect(cmd.Context(), owner, repo)
		if err != nil {
			return fmt.Errorf("scanning %s/%s: %w", owner, repo, err)
		}

		out, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling analysis: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanModel, "model", "", "override the configured chat model")
	rootCmd.AddCommand(scanCmd)
}
