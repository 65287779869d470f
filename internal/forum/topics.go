package forum

import "time"

// Topic is one forum discussion thread as returned by the search endpoint,
// projected onto the fields the annotation flow consumes.
type Topic struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	CreatedAt         time.Time `json:"created_at"`
	LastPostedAt      time.Time `json:"last_posted_at"`
	PostsCount        int       `json:"posts_count"`
	ReplyCount        int       `json:"reply_count"`
	HighestPostNumber int       `json:"highest_post_number"`
	CategoryID        int64     `json:"category_id"`
	HasAcceptedAnswer bool      `json:"has_accepted_answer"`
}

// searchPage mirrors one page of the search.json response. Topics is a
// pointer so a page that omits the "topics" key (the end-of-results signal)
// is distinguishable from a page with an empty array.
type searchPage struct {
	Topics *[]Topic `json:"topics"`
}

func (p *searchPage) exhausted() bool { return p.Topics == nil }

// dedupeTopics keeps the first occurrence of each topic id, preserving the
// relevance order the upstream returned. It never re-sorts.
func dedupeTopics(in []Topic) []Topic {
	seen := make(map[int64]bool, len(in))
	out := make([]Topic, 0, len(in))
	for _, t := range in {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
