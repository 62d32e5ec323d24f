package integration

import (
	"context"
	"strings"
)

// DemoSession is an offline ChatSession that pattern-matches on substrings
// of the incoming prompt and returns canned JSON text. It is substituted for
// the real backend whenever that backend cannot be constructed, and it backs
// the web API's offline data path.
type DemoSession struct{}

// NewDemoSession creates the offline demo session.
func NewDemoSession() *DemoSession {
	return &DemoSession{}
}

// demoResponder pairs a lowercase prompt substring with its canned reply.
type demoResponder struct {
	substr string
	reply  string
}

// demoResponders is evaluated in order, first match wins. The guide
// predicate must stay first: the guide prompt embeds JSON serializations of
// every other record, so it would otherwise match an earlier predicate.
var demoResponders = []demoResponder{
	{"onboarding guide", demoGuide},
	{"repository file structure", demoStructure},
	{"documentation files", demoDocs},
	{"pull requests", demoPRs},
	{"open issues", demoIssues},
	{"github discussions", demoRepoDiscussions},
	{"learning resources", demoResources},
	{"team channel discussions", demoTeamDiscussions},
	{"team members", demoTeamMembers},
	{"upcoming team events", demoTeamEvents},
	{"team norms", demoTeamNorms},
	{"email threads", demoEmails},
	{"internal documents", demoDocuments},
}

// SendAndWait returns the canned reply for the first matching predicate, or
// an empty JSON array when nothing matches.
func (s *DemoSession) SendAndWait(_ context.Context, prompt string) (string, error) {
	lower := strings.ToLower(prompt)
	for _, r := range demoResponders {
		if strings.Contains(lower, r.substr) {
			return r.reply, nil
		}
	}
	return "[]", nil
}

// Canned replies deliberately include surrounding prose and markdown fences
// so the offline path exercises the same extraction code as live responses.

const demoStructure = "Here is the top-level structure I found:\n```json\n[\n  \"package.json\",\n  \"tsconfig.json\",\n  \"src/main.ts\",\n  \"src/vs/editor/editor.api.ts\",\n  \"extensions/\",\n  \"build/gulpfile.js\",\n  \"docs/README.md\",\n  \"CONTRIBUTING.md\",\n  \"Dockerfile\",\n  \".github/workflows/ci.yml\"\n]\n```"

const demoDocs = `Summaries of the key documentation files:
[
  {"file": "docs/README.md", "summary": "Project overview, build instructions, and pointers to contributor documentation."},
  {"file": "CONTRIBUTING.md", "summary": "How to set up a development environment, coding guidelines, and the PR review process."}
]`

const demoPRs = `[
  {"number": 20481, "title": "Improve tree view keyboard navigation", "state": "merged", "author": "joao", "description": "Adds home/end handling and fixes focus loss when collapsing nodes."},
  {"number": 20512, "title": "Reduce startup activation of built-in extensions", "state": "open", "author": "sandeep", "description": "Defers activation events for extensions that are not needed at startup."}
]`

const demoIssues = `[
  {"number": 19872, "title": "Terminal renders garbled output on resize", "labels": ["bug", "terminal"], "summary": "Reflow logic drops cells when the window is resized rapidly."},
  {"number": 19904, "title": "Add setting to disable minimap shadows", "labels": ["feature-request", "editor"], "summary": "Good first issue: wire a new boolean setting into the minimap renderer."}
]`

const demoRepoDiscussions = `[
  {"title": "Roadmap for accessibility improvements", "category": "Announcements", "author": "team", "summary": "Screen reader support and keyboard-only workflows planned for the next two iterations."}
]`

const demoResources = `I found these resources:
[
  {"title": "Official Getting Started Guide", "url": "https://example.com/getting-started", "description": "Step-by-step introduction maintained by the project.", "type": "tutorial", "estimatedTime": "2 hours"},
  {"title": "Deep Dive Video Series", "url": "https://example.com/deep-dive", "description": "Conference talks covering internals and architecture.", "type": "video", "estimatedTime": "4 hours"}
]`

const demoTeamDiscussions = `[
  {"channel": "#platform-dev", "topic": "Migrating CI to larger runners", "summary": "Build times cut in half; follow-up on flaky integration tests.", "date": "2025-11-03"},
  {"channel": "#platform-dev", "topic": "Q4 planning", "summary": "Focus areas: performance, accessibility, and reducing open bug count.", "date": "2025-10-28"}
]`

const demoTeamMembers = `[
  {"name": "Ana Souza", "role": "Tech Lead", "expertise": "Editor core, performance", "contact": "ana@example.com"},
  {"name": "Marcus Chen", "role": "Senior Engineer", "expertise": "Extension host, API design", "contact": "marcus@example.com"},
  {"name": "Priya Nair", "role": "Engineer", "expertise": "Terminal, accessibility", "contact": "priya@example.com"}
]`

const demoTeamEvents = `[
  {"title": "Sprint planning", "date": "next Monday 10:00", "notes": "Bring estimates for carried-over items."},
  {"title": "Architecture guild", "date": "first Thursday of the month", "notes": "Open forum, newcomers welcome."}
]`

const demoTeamNorms = `{
  "standup": "Daily at 9:30 in #platform-dev, async updates accepted",
  "code_review": "Two approvals for core changes, one for docs; reviews within 24h",
  "communication": "Slack for quick questions, GitHub discussions for decisions",
  "working_hours": "Core hours 10:00-15:00, otherwise flexible",
  "deployment": "Weekly insiders release, monthly stable release train"
}`

const demoEmails = `[
  {"subject": "Welcome aboard!", "from": "ana@example.com", "summary": "Pointers to the team handbook, access requests, and your onboarding buddy."}
]`

const demoDocuments = `[
  {"title": "Team Handbook", "url": "https://wiki.example.com/handbook", "summary": "Working agreements, escalation paths, and on-call rotation."},
  {"title": "Service Architecture Overview", "url": "https://wiki.example.com/architecture", "summary": "High-level component map with ownership annotations."}
]`

const demoGuide = `# Welcome to the Team

We're excited to have you! This guide walks you through the repository, the
people, and your first week.

## Repository Overview

The repository is a large TypeScript codebase with a layered architecture:
core editor, platform services, and extensions.

## Tech Stack

- Node.js / JavaScript
- TypeScript
- Docker

## Learning Resources

Start with the Official Getting Started Guide, then work through the Deep
Dive Video Series once you have a build running locally.

## Key People

Reach out to your tech lead for architecture questions and your onboarding
buddy for everything else.

## Team Norms

Daily standup, async-friendly communication, and a weekly release train.

## Upcoming Events

Sprint planning happens Monday; the architecture guild meets monthly.

## First Week Checklist

- [ ] Clone the repository and complete a local build
- [ ] Pick up a "good first issue"
- [ ] Join the team channels and introduce yourself
- [ ] Pair with your onboarding buddy on a code review
`
