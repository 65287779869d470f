package server

import "github.com/snehankekre/forumtopics/internal/forum"

// SearchResponse is the payload of GET /api/topics/search. A failed or empty
// search still answers 200 with Message set; the upstream forum being down
// must never break the caller's own error reporting.
type SearchResponse struct {
	Query    string        `json:"query"`
	Topics   []forum.Topic `json:"topics"`
	Markdown string        `json:"markdown,omitempty"`
	Message  string        `json:"message,omitempty"`
}
