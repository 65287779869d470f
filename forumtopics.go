// Package forumtopics annotates captured errors with related topics from a
// Discourse community forum. Wrap the code to watch with Annotator.Go; when
// it fails, a Markdown report with forum links is written out and the
// original failure continues to the caller untouched.
package forumtopics

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/snehankekre/forumtopics/internal/cache"
	"github.com/snehankekre/forumtopics/internal/forum"
	"github.com/snehankekre/forumtopics/internal/guard"
	"github.com/snehankekre/forumtopics/internal/render"
)

// Annotator searches one forum and writes error reports to a writer.
type Annotator struct {
	client      *forum.Client
	opts        forum.Options
	solvedBadge bool
	out         io.Writer
	logger      *log.Logger
}

type Option func(*Annotator)

// WithBaseURL points the annotator at a different Discourse instance.
func WithBaseURL(u string) Option {
	return func(a *Annotator) { a.client = forum.NewClient(u, forum.WithCache(cache.NewMemory(0))) }
}

// WithClient substitutes a fully configured search client.
func WithClient(c *forum.Client) Option {
	return func(a *Annotator) { a.client = c }
}

// WithCriteria selects broad or narrow query construction.
func WithCriteria(criteria string) Option {
	return func(a *Annotator) { a.opts.Criteria = criteria }
}

// WithSortBy orders results by a recognized sort; anything else is ignored.
func WithSortBy(sortby string) Option {
	return func(a *Annotator) { a.opts.SortBy = sortby }
}

// WithStatus restricts results to a recognized topic status.
func WithStatus(status string) Option {
	return func(a *Annotator) { a.opts.Status = status }
}

// WithTop caps how many topics the report links.
func WithTop(top int) Option {
	return func(a *Annotator) { a.opts.Top = top }
}

// WithSolvedBadge marks solved topics in the report.
func WithSolvedBadge() Option {
	return func(a *Annotator) { a.solvedBadge = true }
}

// WithOutput redirects the report; default is stderr.
func WithOutput(w io.Writer) Option {
	return func(a *Annotator) { a.out = w }
}

func New(opts ...Option) *Annotator {
	a := &Annotator{
		client: forum.NewClient("", forum.WithCache(cache.NewMemory(0))),
		opts:   forum.Options{Criteria: forum.CriteriaBroad, Top: forum.DefaultTop},
		out:    os.Stderr,
		logger: log.New(log.Writer(), "[FORUMTOPICS] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Go runs fn. If fn returns an error or panics, the report is written and
// the failure then propagates exactly as it would have without the wrapper:
// the error is returned, the panic resumes.
func (a *Annotator) Go(ctx context.Context, fn func() error) error {
	return guard.Run(fn, func(d forum.Descriptor) { a.annotate(ctx, d) })
}

func (a *Annotator) annotate(ctx context.Context, d forum.Descriptor) {
	query := forum.BuildQuery(d, a.opts)

	var links string
	topics, err := a.client.Search(ctx, query, a.opts.Top)
	if err != nil {
		// Searching is best-effort; the report falls back to the
		// no-topics message and the original failure stays primary.
		a.logger.Printf("search %q failed: %v", query, err)
	} else {
		var renderOpts []render.Option
		if a.solvedBadge {
			renderOpts = append(renderOpts, render.WithSolvedBadge())
		}
		links = render.Links(a.client.BaseURL(), topics, renderOpts...)
	}

	fmt.Fprintln(a.out, render.ErrorReport(d, links))
}
