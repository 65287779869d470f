// Package render turns search results and captured errors into the Markdown
// the surrounding UI displays.
package render

import (
	"strings"

	"github.com/snehankekre/forumtopics/internal/forum"
)

// SolvedBadge is appended to links for topics with an accepted answer.
const SolvedBadge = " [✅ Solved]"

// NoTopicsMessage is the soft-failure text shown when a search produced
// nothing, whether from zero matches or an upstream failure.
const NoTopicsMessage = "No topics found. Try setting criteria to 'broad'."

type config struct {
	solvedBadge bool
}

type Option func(*config)

// WithSolvedBadge marks solved topics with a badge after the link.
func WithSolvedBadge() Option {
	return func(c *config) { c.solvedBadge = true }
}

// Links renders one Markdown bullet per topic, linking to the topic's page
// on the forum.
func Links(baseURL string, topics []forum.Topic, opts ...Option) string {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	links := make([]string, 0, len(topics))
	for _, t := range topics {
		line := "- [" + t.Title + "](" + forum.TopicURL(baseURL, t.ID) + ")"
		if cfg.solvedBadge && t.HasAcceptedAnswer {
			line += SolvedBadge
		}
		links = append(links, line)
	}
	return strings.Join(links, "\n")
}

// ErrorReport composes the full annotation: the error line, the related
// topic links (or the no-topics message), and the trimmed stack in a fenced
// block when one was captured.
func ErrorReport(d forum.Descriptor, links string) string {
	parts := []string{"**" + d.Type + "**: " + d.Message}

	if links == "" {
		parts = append(parts, NoTopicsMessage)
	} else {
		parts = append(parts, "Related forum topics:\n\n"+links)
	}

	if len(d.Stack) > 0 {
		parts = append(parts, "Traceback:\n\n```\n"+strings.Join(d.Stack, "\n")+"\n```")
	}

	return strings.Join(parts, "\n\n")
}
