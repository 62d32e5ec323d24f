package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/valter-silva-au/onboard/internal/integration"
	"github.com/valter-silva-au/onboard/pkg/models"
)

// Params identifies one pipeline run: the repository to analyze and who the
// guide is for.
type Params struct {
	Owner     string
	Repo      string
	Team      string
	Recipient string
}

// Pipeline orchestrates one onboarding run: the repository and team
// collectors fan out concurrently, the resource collector chains onto the
// repository collector's completion (it needs the detected tech stack), and
// once all three settle the guide synthesizer runs over the combined data.
//
// There are no retries and no failed terminal state: every stage failure is
// absorbed at the stage boundary into the run result's error list, and the
// pipeline always advances to a consolidated result.
type Pipeline struct {
	repoCollector     *RepoCollector
	resourceCollector *ResourceCollector
	teamCollector     *TeamCollector
	synthesizer       *GuideSynthesizer
	observer          StageObserver
}

// NewPipeline wires a pipeline over the given session and guide store. The
// session handle is passed down explicitly into every collector; nothing is
// held in shared module state. observer may be nil.
func NewPipeline(session integration.ChatSession, store GuideStore, timeout time.Duration, observer StageObserver) *Pipeline {
	return &Pipeline{
		repoCollector:     NewRepoCollector(session, timeout),
		resourceCollector: NewResourceCollector(session, timeout),
		teamCollector:     NewTeamCollector(session, timeout),
		synthesizer:       NewGuideSynthesizer(session, store, timeout),
		observer:          observer,
	}
}

// Run executes the full pipeline and returns the consolidated result,
// whether or not any individual stage succeeded.
func (p *Pipeline) Run(ctx context.Context, params Params) *models.PipelineRunResult {
	rec := NewRunRecorder(uuid.New().String(), p.observer)

	var (
		analysis models.RepositoryAnalysis
		groups   []models.LearningResourceGroup
		teamCtx  models.TeamContext
	)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		analysis = runStage(ctx, rec, models.StepRepoAnalysis,
			EmptyAnalysis(params.Owner, params.Repo), repoMetrics,
			func(ctx context.Context) (models.RepositoryAnalysis, error) {
				return p.repoCollector.Collect(ctx, params.Owner, params.Repo)
			})

		// Resource search needs the detected tech stack, so it runs as a
		// continuation of the repository stage inside the same goroutine.
		// From the join's point of view it is still part of the parallel
		// phase.
		groups = runStage(ctx, rec, models.StepDocsFetch,
			[]models.LearningResourceGroup{}, resourceMetrics,
			func(ctx context.Context) ([]models.LearningResourceGroup, error) {
				return p.resourceCollector.Collect(ctx, analysis.TechStack)
			})
	}()

	go func() {
		defer wg.Done()
		teamCtx = runStage(ctx, rec, models.StepTeamContext,
			EmptyTeamContext(), teamMetrics,
			func(ctx context.Context) (models.TeamContext, error) {
				return p.teamCollector.Collect(ctx, params.Team)
			})
	}()

	wg.Wait()

	// Synthesis always runs, even over all-empty fallback records: partial
	// results beat no results.
	synthesized := false
	guide := runStage(ctx, rec, models.StepGuideGeneration,
		models.Guide{}, guideMetrics,
		func(ctx context.Context) (models.Guide, error) {
			g, err := p.synthesizer.Synthesize(ctx, analysis, groups, teamCtx, params)
			if err == nil {
				synthesized = true
			}
			return g, err
		})

	steps, errs := rec.Snapshot()
	result := &models.PipelineRunResult{
		RunID:       rec.runID,
		Steps:       steps,
		Errors:      errs,
		Analysis:    analysis,
		Resources:   groups,
		TeamContext: teamCtx,
	}
	if synthesized {
		result.Guide = &guide
	}
	return result
}

func repoMetrics(a models.RepositoryAnalysis) map[string]int {
	return map[string]int{
		"files_listed":      len(a.Structure),
		"tech_detected":     len(a.TechStack),
		"docs_summarized":   len(a.Docs),
		"prs_found":         len(a.PRActivity),
		"issues_found":      len(a.Issues),
		"discussions_found": len(a.Discussions),
	}
}

func resourceMetrics(groups []models.LearningResourceGroup) map[string]int {
	total := 0
	for _, g := range groups {
		total += len(g.Resources)
	}
	return map[string]int{
		"groups":    len(groups),
		"resources": total,
	}
}

func teamMetrics(tc models.TeamContext) map[string]int {
	return map[string]int{
		"discussions": len(tc.RecentDiscussions),
		"members":     len(tc.TeamMembers),
		"events":      len(tc.UpcomingEvents),
		"emails":      len(tc.EmailInsights),
		"documents":   len(tc.RelatedDocuments),
	}
}

func guideMetrics(g models.Guide) map[string]int {
	return map[string]int{
		"content_chars": len(g.Content),
	}
}
