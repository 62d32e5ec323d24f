package core

import (
	"context"
	"fmt"
	"time"

	"github.com/valter-silva-au/onboard/internal/integration"
	"github.com/valter-silva-au/onboard/pkg/models"
)

// TeamCollector gathers organizational context for the new team member:
// recent discussions, people, events, norms, email insights, and related
// documents.
type TeamCollector struct {
	session integration.ChatSession
	timeout time.Duration
}

// NewTeamCollector creates a team-context collector bound to the given
// session.
func NewTeamCollector(session integration.ChatSession, timeout time.Duration) *TeamCollector {
	return &TeamCollector{session: session, timeout: timeout}
}

// Collect issues six independent round-trips. The norms call uses
// object-shape extraction with a fully populated placeholder fallback; all
// others use array-shape extraction with an empty fallback. A failed
// session call fails the collector as a whole.
func (c *TeamCollector) Collect(ctx context.Context, team string) (models.TeamContext, error) {
	teamCtx := EmptyTeamContext()

	raw, err := sendWithTimeout(ctx, c.session, c.timeout, teamDiscussionsPrompt(team))
	if err != nil {
		return teamCtx, fmt.Errorf("fetching team discussions: %w", err)
	}
	teamCtx.RecentDiscussions = ExtractArray(raw, []models.TeamDiscussion{})

	raw, err = sendWithTimeout(ctx, c.session, c.timeout, teamMembersPrompt(team))
	if err != nil {
		return teamCtx, fmt.Errorf("fetching team members: %w", err)
	}
	teamCtx.TeamMembers = ExtractArray(raw, []models.TeamMember{})

	raw, err = sendWithTimeout(ctx, c.session, c.timeout, teamEventsPrompt(team))
	if err != nil {
		return teamCtx, fmt.Errorf("fetching team events: %w", err)
	}
	teamCtx.UpcomingEvents = ExtractArray(raw, []models.TeamEvent{})

	raw, err = sendWithTimeout(ctx, c.session, c.timeout, teamNormsPrompt(team))
	if err != nil {
		return teamCtx, fmt.Errorf("fetching team norms: %w", err)
	}
	teamCtx.TeamNorms = ExtractObject(raw, models.DefaultTeamNorms())

	raw, err = sendWithTimeout(ctx, c.session, c.timeout, teamEmailsPrompt(team))
	if err != nil {
		return teamCtx, fmt.Errorf("fetching email insights: %w", err)
	}
	teamCtx.EmailInsights = ExtractArray(raw, []models.EmailInsight{})

	raw, err = sendWithTimeout(ctx, c.session, c.timeout, teamDocumentsPrompt(team))
	if err != nil {
		return teamCtx, fmt.Errorf("fetching related documents: %w", err)
	}
	teamCtx.RelatedDocuments = ExtractArray(raw, []models.RelatedDocument{})

	return teamCtx, nil
}

// EmptyTeamContext is the fallback record used when the team-context
// collector fails: empty collections plus placeholder norms, so the guide
// always has something to render under Key People and Team Norms.
func EmptyTeamContext() models.TeamContext {
	return models.TeamContext{
		RecentDiscussions: []models.TeamDiscussion{},
		TeamMembers:       []models.TeamMember{},
		UpcomingEvents:    []models.TeamEvent{},
		TeamNorms:         models.DefaultTeamNorms(),
		EmailInsights:     []models.EmailInsight{},
		RelatedDocuments:  []models.RelatedDocument{},
	}
}
