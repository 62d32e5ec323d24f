package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/valter-silva-au/onboard/internal/integration"
	"github.com/valter-silva-au/onboard/pkg/models"
)

// GuideStore persists a finished guide and reports where it was written.
// Implemented by the storage package; kept as an interface here so tests
// and the web server can capture guides without touching the filesystem.
type GuideStore interface {
	Write(owner, repo, content string) (string, error)
}

// guideMetadata is the YAML frontmatter block prepended to every guide.
type guideMetadata struct {
	Title      string   `yaml:"title"`
	Repository string   `yaml:"repository"`
	Team       string   `yaml:"team,omitempty"`
	Recipient  string   `yaml:"recipient"`
	Generated  string   `yaml:"generated"`
	TechStack  []string `yaml:"tech_stack,omitempty"`
}

// GuideSynthesizer turns the three collected records into one Markdown
// onboarding guide via a single session round-trip.
type GuideSynthesizer struct {
	session integration.ChatSession
	store   GuideStore
	timeout time.Duration

	// now is injectable for deterministic timestamps in tests.
	now func() time.Time
}

// NewGuideSynthesizer creates a synthesizer bound to the given session and
// store.
func NewGuideSynthesizer(session integration.ChatSession, store GuideStore, timeout time.Duration) *GuideSynthesizer {
	return &GuideSynthesizer{
		session: session,
		store:   store,
		timeout: timeout,
		now:     time.Now,
	}
}

// Synthesize builds the one large guide prompt, sends it, prepends the
// metadata frontmatter to the verbatim reply, and persists the result.
// There is no fallback document: a failure here is recorded by the caller
// and the run result simply omits the guide.
func (s *GuideSynthesizer) Synthesize(ctx context.Context, analysis models.RepositoryAnalysis, resources []models.LearningResourceGroup, teamCtx models.TeamContext, params Params) (models.Guide, error) {
	reply, err := sendWithTimeout(ctx, s.session, s.timeout, guidePrompt(analysis, resources, teamCtx, params))
	if err != nil {
		return models.Guide{}, fmt.Errorf("generating guide: %w", err)
	}

	meta := guideMetadata{
		Title:      fmt.Sprintf("Onboarding Guide: %s/%s", params.Owner, params.Repo),
		Repository: params.Owner + "/" + params.Repo,
		Team:       params.Team,
		Recipient:  params.Recipient,
		Generated:  s.now().UTC().Format(time.RFC3339),
		TechStack:  analysis.TechStack,
	}
	metaYAML, err := yaml.Marshal(meta)
	if err != nil {
		return models.Guide{}, fmt.Errorf("marshaling guide metadata: %w", err)
	}

	content := "---\n" + string(metaYAML) + "---\n\n" + strings.TrimLeft(reply, "\n")

	path, err := s.store.Write(params.Owner, params.Repo, content)
	if err != nil {
		return models.Guide{}, fmt.Errorf("writing guide: %w", err)
	}

	return models.Guide{Content: content, OutputPath: path}, nil
}
