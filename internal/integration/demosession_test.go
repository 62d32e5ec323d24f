package integration

import (
	"context"
	"strings"
	"testing"
)

func TestDemoSessionSendAndWait(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{
			name:   "structure prompt",
			prompt: "List the repository file structure of microsoft/vscode.",
			want:   demoStructure,
		},
		{
			name:   "docs prompt",
			prompt: "Summarize the key documentation files in microsoft/vscode.",
			want:   demoDocs,
		},
		{
			name:   "prs prompt",
			prompt: "List recent pull requests in microsoft/vscode.",
			want:   demoPRs,
		},
		{
			name:   "issues prompt",
			prompt: "List open issues in microsoft/vscode.",
			want:   demoIssues,
		},
		{
			name:   "repo discussions prompt",
			prompt: "List active GitHub discussions in microsoft/vscode.",
			want:   demoRepoDiscussions,
		},
		{
			name:   "resources prompt",
			prompt: "Search for learning resources about TypeScript.",
			want:   demoResources,
		},
		{
			name:   "team discussions prompt",
			prompt: "Summarize recent team channel discussions for the platform team.",
			want:   demoTeamDiscussions,
		},
		{
			name:   "team members prompt",
			prompt: "List the key team members of the platform team.",
			want:   demoTeamMembers,
		},
		{
			name:   "team events prompt",
			prompt: "List upcoming team events and meetings for the platform team.",
			want:   demoTeamEvents,
		},
		{
			name:   "team norms prompt",
			prompt: "Describe the team norms and working agreements of the platform team.",
			want:   demoTeamNorms,
		},
		{
			name:   "emails prompt",
			prompt: "Summarize onboarding-relevant email threads for the platform team.",
			want:   demoEmails,
		},
		{
			name:   "documents prompt",
			prompt: "Find internal documents related to the platform team.",
			want:   demoDocuments,
		},
		{
			name:   "matching is case-insensitive",
			prompt: "LIST RECENT PULL REQUESTS in acme/widgets",
			want:   demoPRs,
		},
		{
			name:   "unknown prompt falls back to empty array",
			prompt: "What is the weather like today?",
			want:   "[]",
		},
	}

	session := NewDemoSession()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := session.SendAndWait(context.Background(), tt.prompt)
			if err != nil {
				t.Fatalf("SendAndWait failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SendAndWait(%q) returned wrong canned reply", tt.prompt)
			}
		})
	}
}

// The guide prompt embeds serialized data that mentions every other topic, so
// the guide predicate must win regardless of what follows it.
func TestDemoSessionGuidePredicateWins(t *testing.T) {
	prompt := `Create a comprehensive onboarding guide in Markdown for Dana.

Repository analysis:
{"structure": ["package.json"], "pull requests": [], "open issues": []}

Learning resources:
[{"title": "Getting Started"}]

Team context:
{"team members": [], "team norms": {}}`

	session := NewDemoSession()
	got, err := session.SendAndWait(context.Background(), prompt)
	if err != nil {
		t.Fatalf("SendAndWait failed: %v", err)
	}
	if got != demoGuide {
		t.Errorf("guide prompt did not return the guide reply")
	}
	if !strings.Contains(got, "# Welcome to the Team") {
		t.Error("guide reply missing the opening section")
	}
}

// Every responder predicate must be reachable: no earlier predicate may
// shadow a later one for its own prompt.
func TestDemoSessionPredicatesDistinct(t *testing.T) {
	for i, r := range demoResponders {
		for j := 0; j < i; j++ {
			if strings.Contains(r.substr, demoResponders[j].substr) {
				t.Errorf("predicate %q is shadowed by earlier predicate %q", r.substr, demoResponders[j].substr)
			}
		}
	}
}
