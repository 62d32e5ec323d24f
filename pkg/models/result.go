package models

// Pipeline stage names as they appear in StepOutcome and StepError entries.
const (
	StepRepoAnalysis    = "repo-analysis"
	StepDocsFetch       = "docs-fetch"
	StepTeamContext     = "team-context"
	StepGuideGeneration = "guide-generation"
)

// StepOutcome records one successfully completed pipeline stage along with
// stage-specific count metrics (items found, never the raw data).
type StepOutcome struct {
	Step    string         `json:"step"`
	Status  string         `json:"status"`
	Metrics map[string]int `json:"metrics,omitempty"`
}

// StepError records one failed pipeline stage.
type StepError struct {
	Step  string `json:"step"`
	Error string `json:"error"`
}

// Guide is the synthesized onboarding document and where it was written.
type Guide struct {
	Content    string `json:"content"`
	OutputPath string `json:"output_path"`
}

// PipelineRunResult is the consolidated outcome of one pipeline run. Steps
// and Errors are disjoint and together cover every attempted stage exactly
// once. Guide is nil when guide generation failed; the collected records are
// always present, degraded to empty defaults where their stage failed.
type PipelineRunResult struct {
	RunID       string                  `json:"run_id"`
	Steps       []StepOutcome           `json:"steps"`
	Errors      []StepError             `json:"errors"`
	Analysis    RepositoryAnalysis      `json:"analysis"`
	Resources   []LearningResourceGroup `json:"resources"`
	TeamContext TeamContext             `json:"team_context"`
	Guide       *Guide                  `json:"guide,omitempty"`
}
