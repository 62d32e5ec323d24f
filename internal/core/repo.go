package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valter-silva-au/onboard/internal/integration"
	"github.com/valter-silva-au/onboard/pkg/models"
)

// techPattern maps a marker file pattern to the technology it indicates.
// Matching is case-insensitive substring containment after stripping
// wildcard characters, so "*.csproj" matches any path mentioning ".csproj".
type techPattern struct {
	Pattern    string
	Technology string
}

// techPatterns is evaluated in order; a technology appears at most once in
// the detected stack, at the position of its first matching pattern.
var techPatterns = []techPattern{
	{"package.json", "Node.js / JavaScript"},
	{"tsconfig.json", "TypeScript"},
	{"go.mod", "Go"},
	{"cargo.toml", "Rust"},
	{"requirements.txt", "Python"},
	{"pyproject.toml", "Python"},
	{"pom.xml", "Java"},
	{"build.gradle", "Java / Kotlin"},
	{"gemfile", "Ruby"},
	{"*.csproj", "C# / .NET"},
	{"composer.json", "PHP"},
	{"pubspec.yaml", "Dart / Flutter"},
	{"*.tf", "Terraform"},
	{"dockerfile", "Docker"},
	{"docker-compose", "Docker Compose"},
}

// DetectTechStack returns the technologies indicated by the repository
// structure listing. Detection is a pure local substring scan: a technology
// is detected when its lowercased, wildcard-stripped pattern occurs
// anywhere in the lowercased joined listing.
func DetectTechStack(structure []string) []string {
	haystack := strings.ToLower(strings.Join(structure, "\n"))

	var detected []string
	seen := make(map[string]bool)
	for _, tp := range techPatterns {
		needle := strings.ToLower(strings.ReplaceAll(tp.Pattern, "*", ""))
		if strings.Contains(haystack, needle) && !seen[tp.Technology] {
			seen[tp.Technology] = true
			detected = append(detected, tp.Technology)
		}
	}
	return detected
}

// RepoCollector gathers everything the pipeline needs to know about one
// repository: structure, tech stack, documentation, PRs, issues, and
// discussions.
type RepoCollector struct {
	session integration.ChatSession
	timeout time.Duration
}

// NewRepoCollector creates a repository collector bound to the given
// session. timeout bounds each individual session round-trip; zero disables
// the bound.
func NewRepoCollector(session integration.ChatSession, timeout time.Duration) *RepoCollector {
	return &RepoCollector{session: session, timeout: timeout}
}

// Collect runs the fixed prompt sequence against the session and assembles
// a RepositoryAnalysis. Individual replies that fail JSON extraction
// degrade to empty slices; a failed session call fails the whole collector
// so the caller falls over to its default record rather than receiving
// partially filled data.
func (c *RepoCollector) Collect(ctx context.Context, owner, repo string) (models.RepositoryAnalysis, error) {
	analysis := models.RepositoryAnalysis{
		RepoFullName: owner + "/" + repo,
		Structure:    []string{},
		TechStack:    []string{},
		Docs:         []models.DocSummary{},
		PRActivity:   []models.PullRequestInfo{},
		Issues:       []models.IssueInfo{},
		Discussions:  []models.DiscussionInfo{},
	}

	raw, err := sendWithTimeout(ctx, c.session, c.timeout, structurePrompt(owner, repo))
	if err != nil {
		return analysis, fmt.Errorf("listing repository structure: %w", err)
	}
	analysis.Structure = ExtractArray(raw, []string{})
	analysis.TechStack = DetectTechStack(analysis.Structure)
	if analysis.TechStack == nil {
		analysis.TechStack = []string{}
	}

	raw, err = sendWithTimeout(ctx, c.session, c.timeout, docsPrompt(owner, repo))
	if err != nil {
		return analysis, fmt.Errorf("summarizing documentation: %w", err)
	}
	analysis.Docs = ExtractArray(raw, []models.DocSummary{})

	raw, err = sendWithTimeout(ctx, c.session, c.timeout, prsPrompt(owner, repo))
	if err != nil {
		return analysis, fmt.Errorf("listing pull requests: %w", err)
	}
	analysis.PRActivity = ExtractArray(raw, []models.PullRequestInfo{})

	raw, err = sendWithTimeout(ctx, c.session, c.timeout, issuesPrompt(owner, repo))
	if err != nil {
		return analysis, fmt.Errorf("listing issues: %w", err)
	}
	analysis.Issues = ExtractArray(raw, []models.IssueInfo{})

	raw, err = sendWithTimeout(ctx, c.session, c.timeout, discussionsPrompt(owner, repo))
	if err != nil {
		return analysis, fmt.Errorf("listing discussions: %w", err)
	}
	analysis.Discussions = ExtractArray(raw, []models.DiscussionInfo{})

	return analysis, nil
}

// EmptyAnalysis is the fallback record used when the repository collector
// fails: every collection present and empty, never absent.
func EmptyAnalysis(owner, repo string) models.RepositoryAnalysis {
	return models.RepositoryAnalysis{
		RepoFullName: owner + "/" + repo,
		Structure:    []string{},
		TechStack:    []string{},
		Docs:         []models.DocSummary{},
		PRActivity:   []models.PullRequestInfo{},
		Issues:       []models.IssueInfo{},
		Discussions:  []models.DiscussionInfo{},
	}
}
