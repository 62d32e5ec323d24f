// Package models defines the data records exchanged between the onboarding
// pipeline stages and serialized into API responses and generated guides.
package models

// DocSummary is a short AI-produced summary of one documentation file.
type DocSummary struct {
	File    string `json:"file"`
	Summary string `json:"summary"`
}

// PullRequestInfo captures recent pull request activity in a repository.
type PullRequestInfo struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	State       string `json:"state"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// IssueInfo captures an open issue relevant to a newcomer.
type IssueInfo struct {
	Number  int      `json:"number"`
	Title   string   `json:"title"`
	Labels  []string `json:"labels"`
	Summary string   `json:"summary"`
}

// DiscussionInfo captures a repository discussion thread.
type DiscussionInfo struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Author   string `json:"author"`
	Summary  string `json:"summary"`
}

// RepositoryAnalysis is everything the repository collector learns about one
// repository in a single pipeline run. It is immutable once the collector
// returns it.
type RepositoryAnalysis struct {
	RepoFullName string            `json:"repo_full_name"`
	Structure    []string          `json:"structure"`
	TechStack    []string          `json:"tech_stack"`
	Docs         []DocSummary      `json:"docs"`
	PRActivity   []PullRequestInfo `json:"pr_activity"`
	Issues       []IssueInfo       `json:"issues"`
	Discussions  []DiscussionInfo  `json:"discussions"`
}
