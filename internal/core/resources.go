package core

import (
	"context"
	"fmt"
	"time"

	"github.com/valter-silva-au/onboard/internal/integration"
	"github.com/valter-silva-au/onboard/pkg/models"
)

// Synthetic resource categories searched for every run in addition to the
// detected technologies.
const (
	categoryArchitecture   = "Architecture & Best Practices"
	categoryGettingStarted = "Getting Started"
)

// ResourceCollector searches for learning resources per detected
// technology plus the two fixed categories.
type ResourceCollector struct {
	session integration.ChatSession
	timeout time.Duration
}

// NewResourceCollector creates a resource collector bound to the given
// session.
func NewResourceCollector(session integration.ChatSession, timeout time.Duration) *ResourceCollector {
	return &ResourceCollector{session: session, timeout: timeout}
}

// Collect issues one search per technology in input order, then the two
// category searches. Technologies with zero hits still produce a group with
// an empty resource slice. A failed session call fails the collector as a
// whole.
func (c *ResourceCollector) Collect(ctx context.Context, techStack []string) ([]models.LearningResourceGroup, error) {
	groups := make([]models.LearningResourceGroup, 0, len(techStack)+2)

	for _, tech := range techStack {
		raw, err := sendWithTimeout(ctx, c.session, c.timeout, resourcesPrompt(tech))
		if err != nil {
			return nil, fmt.Errorf("searching resources for %s: %w", tech, err)
		}
		groups = append(groups, models.LearningResourceGroup{
			Technology: tech,
			Resources:  ExtractArray(raw, []models.LearningResource{}),
		})
	}

	raw, err := sendWithTimeout(ctx, c.session, c.timeout, resourcesPrompt("software architecture patterns and best practices"))
	if err != nil {
		return nil, fmt.Errorf("searching architecture resources: %w", err)
	}
	groups = append(groups, models.LearningResourceGroup{
		Technology: categoryArchitecture,
		Resources:  ExtractArray(raw, []models.LearningResource{}),
	})

	raw, err = sendWithTimeout(ctx, c.session, c.timeout, resourcesPrompt("getting started tutorials for new contributors"))
	if err != nil {
		return nil, fmt.Errorf("searching getting-started resources: %w", err)
	}
	groups = append(groups, models.LearningResourceGroup{
		Technology: categoryGettingStarted,
		Resources:  ExtractArray(raw, []models.LearningResource{}),
	})

	return groups, nil
}
