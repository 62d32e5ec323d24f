package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/onboard/internal/core"
	"github.com/valter-silva-au/onboard/pkg/models"
)

var (
	generateTeam  string
	generateName  string
	generateModel string
	skipTeams     bool
	skipDocs      bool
	generatePlain bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <owner> <repo>",
	Short: "Generate an onboarding guide for a repository",
	Long: `Generate a Markdown onboarding guide for the given GitHub repository.

The pipeline analyzes the repository, searches learning resources for the
detected tech stack, and gathers team context, all concurrently, then
synthesizes one guide from the combined data. Stages that fail are recorded
and replaced by empty defaults; the run always completes.

Example:
  onboard generate microsoft vscode --team platform --name "Ada"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, repo := args[0], args[1]

		params := core.Params{
			Owner:     owner,
			Repo:      repo,
			Team:      generateTeam,
			Recipient: generateName,
		}
		if params.Team == "" {
			params.Team = Config.Defaults.Team
		}
		if params.Team == "" {
			params.Team = "engineering"
		}
		if params.Recipient == "" {
			params.Recipient = Config.Defaults.Recipient
		}

		session, err := setupSession(skipTeams, skipDocs, generateModel)
		if err != nil {
			return err
		}

		build := func(observer core.StageObserver) *core.Pipeline {
			return core.NewPipeline(session, GuideStore, sessionTimeout(),
				combineObservers(observer, eventLogObserver()))
		}

		var result *models.PipelineRunResult
		if generatePlain {
			pipeline := build(plainObserver())
			result = pipeline.Run(cmd.Context(), params)
		} else {
			title := fmt.Sprintf("Onboarding %s → %s/%s", params.Recipient, owner, repo)
			result, err = runWithProgress(cmd.Context(), title, build, params)
			if err != nil {
				return err
			}
		}

		printRunSummary(result)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateTeam, "team", "", "team name for organizational context")
	generateCmd.Flags().StringVar(&generateName, "name", "", "name of the new team member")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "override the configured chat model")
	generateCmd.Flags().BoolVar(&skipTeams, "skip-teams", false, "remove the teams MCP server from the session")
	generateCmd.Flags().BoolVar(&skipDocs, "skip-docs", false, "remove the docs MCP server from the session")
	generateCmd.Flags().BoolVar(&generatePlain, "plain", false, "line-by-line progress output instead of the interactive view")
	rootCmd.AddCommand(generateCmd)
}

// plainObserver prints one line per stage transition.
func plainObserver() core.StageObserver {
	return func(ev core.StageEvent) {
		switch ev.Status {
		case core.StageStarted:
			fmt.Printf("... %s\n", ev.Step)
		case core.StageCompleted:
			fmt.Printf("  ✓ %s\n", ev.Step)
		case core.StageFailed:
			fmt.Printf("  ✗ %s: %s\n", ev.Step, ev.Error)
		}
	}
}

// printRunSummary reports the consolidated run result.
func printRunSummary(result *models.PipelineRunResult) {
	fmt.Printf("\nCompleted %d/%d stages\n", len(result.Steps), len(result.Steps)+len(result.Errors))

	for _, stepErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "  stage %s failed: %s\n", stepErr.Step, stepErr.Error)
	}

	if result.Guide != nil {
		fmt.Printf("Guide written to %s\n", result.Guide.OutputPath)
	} else {
		fmt.Println("No guide was generated; see errors above")
	}
}
