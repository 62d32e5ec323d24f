package core

import (
	"encoding/json"
	"fmt"

	"github.com/valter-silva-au/onboard/pkg/models"
)

// Prompt builders for every session round-trip. Each prompt opens with a
// distinctive phrase the demo session keys on; the phrasing is part of the
// offline contract, so change them together with the demo responder table.

func structurePrompt(owner, repo string) string {
	return fmt.Sprintf(`List the repository file structure of %s/%s.
Focus on top-level files and the directories a newcomer should know about.
Respond with a JSON array of path strings.`, owner, repo)
}

func docsPrompt(owner, repo string) string {
	return fmt.Sprintf(`Summarize the key documentation files in %s/%s
(README, CONTRIBUTING, docs/). Respond with a JSON array of objects with
"file" and "summary" fields.`, owner, repo)
}

func prsPrompt(owner, repo string) string {
	return fmt.Sprintf(`List recent pull requests in %s/%s that show how the
team works. Respond with a JSON array of objects with "number", "title",
"state", "author", and "description" fields.`, owner, repo)
}

func issuesPrompt(owner, repo string) string {
	return fmt.Sprintf(`List open issues in %s/%s that would suit a newcomer,
including good first issues. Respond with a JSON array of objects with
"number", "title", "labels", and "summary" fields.`, owner, repo)
}

func discussionsPrompt(owner, repo string) string {
	return fmt.Sprintf(`List active GitHub discussions in %s/%s. Respond with
a JSON array of objects with "title", "category", "author", and "summary"
fields.`, owner, repo)
}

func resourcesPrompt(topic string) string {
	return fmt.Sprintf(`Search for learning resources about %s. Prefer
official documentation, tutorials, and videos suited to someone joining a
team that uses it. Respond with a JSON array of objects with "title",
"url", "description", and optional "type" and "estimatedTime" fields.`, topic)
}

func teamDiscussionsPrompt(team string) string {
	return fmt.Sprintf(`Summarize recent team channel discussions for the
%s team that a new member should catch up on. Respond with a JSON array of
objects with "channel", "topic", "summary", and "date" fields.`, team)
}

func teamMembersPrompt(team string) string {
	return fmt.Sprintf(`List the key team members of the %s team a newcomer
should meet. Respond with a JSON array of objects with "name", "role",
"expertise", and "contact" fields.`, team)
}

func teamEventsPrompt(team string) string {
	return fmt.Sprintf(`List upcoming team events and meetings for the %s
team. Respond with a JSON array of objects with "title", "date", and
"notes" fields.`, team)
}

func teamNormsPrompt(team string) string {
	return fmt.Sprintf(`Describe the team norms and working agreements of the
%s team. Respond with a JSON object with "standup", "code_review",
"communication", "working_hours", and "deployment" fields.`, team)
}

func teamEmailsPrompt(team string) string {
	return fmt.Sprintf(`Summarize onboarding-relevant email threads for the
%s team. Respond with a JSON array of objects with "subject", "from", and
"summary" fields.`, team)
}

func teamDocumentsPrompt(team string) string {
	return fmt.Sprintf(`Find internal documents related to the %s team that a
new member should read. Respond with a JSON array of objects with "title",
"url", and "summary" fields.`, team)
}

// guidePrompt embeds full JSON serializations of the three collected
// records plus the required section template. The reply is used verbatim as
// the guide body.
func guidePrompt(analysis models.RepositoryAnalysis, resources []models.LearningResourceGroup, teamCtx models.TeamContext, params Params) string {
	analysisJSON, _ := json.MarshalIndent(analysis, "", "  ")
	resourcesJSON, _ := json.MarshalIndent(resources, "", "  ")
	teamJSON, _ := json.MarshalIndent(teamCtx, "", "  ")

	return fmt.Sprintf(`Create a comprehensive onboarding guide in Markdown
for %s, who is joining the %s team to work on %s/%s.

Use the structured data below. Write the guide with exactly these sections,
in this order:

# Welcome to the Team
## Repository Overview
## Tech Stack
## Learning Resources
## Key People
## Team Norms
## Upcoming Events
## First Week Checklist

Always include every section; where the data is empty, write sensible
placeholder guidance instead of omitting the section.

Repository analysis:
%s

Learning resources:
%s

Team context:
%s`, params.Recipient, params.Team, params.Owner, params.Repo,
		analysisJSON, resourcesJSON, teamJSON)
}
