package models

// TeamDiscussion is a recent team channel discussion relevant to onboarding.
type TeamDiscussion struct {
	Channel string `json:"channel"`
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
	Date    string `json:"date,omitempty"`
}

// TeamMember identifies a person a newcomer should know about.
type TeamMember struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Expertise string `json:"expertise,omitempty"`
	Contact   string `json:"contact,omitempty"`
}

// TeamEvent is an upcoming meeting or milestone.
type TeamEvent struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Notes string `json:"notes,omitempty"`
}

// TeamNorms describes how the team works day to day. The team-context
// collector falls back to a fully populated placeholder record when the
// norms call fails, so every field always carries a printable value.
type TeamNorms struct {
	Standup       string `json:"standup"`
	CodeReview    string `json:"code_review"`
	Communication string `json:"communication"`
	WorkingHours  string `json:"working_hours"`
	Deployment    string `json:"deployment"`
}

// EmailInsight summarizes an onboarding-relevant email thread.
type EmailInsight struct {
	Subject string `json:"subject"`
	From    string `json:"from"`
	Summary string `json:"summary"`
}

// RelatedDocument points at an internal document worth reading.
type RelatedDocument struct {
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Summary string `json:"summary"`
}

// TeamContext is the organizational context gathered for the new team
// member. Every field degrades to an empty slice or placeholder record
// rather than being absent, so downstream consumers never nil-check.
type TeamContext struct {
	RecentDiscussions []TeamDiscussion  `json:"recent_discussions"`
	TeamMembers       []TeamMember      `json:"team_members"`
	UpcomingEvents    []TeamEvent       `json:"upcoming_events"`
	TeamNorms         TeamNorms         `json:"team_norms"`
	EmailInsights     []EmailInsight    `json:"email_insights"`
	RelatedDocuments  []RelatedDocument `json:"related_documents"`
}

// DefaultTeamNorms returns the placeholder norms record used when the
// session cannot supply real ones.
func DefaultTeamNorms() TeamNorms {
	return TeamNorms{
		Standup:       "Daily standup schedule not available",
		CodeReview:    "Code review conventions not available",
		Communication: "Communication channels not available",
		WorkingHours:  "Working hours not available",
		Deployment:    "Deployment process not available",
	}
}
