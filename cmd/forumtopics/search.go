package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snehankekre/forumtopics/config"
	"github.com/snehankekre/forumtopics/internal/cache"
	"github.com/snehankekre/forumtopics/internal/forum"
	"github.com/snehankekre/forumtopics/internal/render"
)

func searchCMD() *cobra.Command {
	var (
		cfgPath     string
		etype       string
		message     string
		criteria    string
		sortby      string
		status      string
		top         int
		solvedBadge bool
	)
	var search = &cobra.Command{
		Use:   "search",
		Short: "Search the forum for topics related to an error",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)

			d := forum.Descriptor{Type: etype, Message: message}
			opts := forum.Options{Criteria: criteria, SortBy: sortby, Status: status, Top: top}
			query := forum.BuildQuery(d, opts)

			client := forum.NewClient(cfg.Forum.BaseURL,
				forum.WithHTTPClient(forum.NewHTTPClient(cfg.Forum.Timeout, cfg.Forum.Retries, 0)),
				forum.WithMaxPages(cfg.Forum.MaxPages),
				forum.WithCache(cache.NewMemory(cfg.Forum.CacheTTL)),
			)

			topics, err := client.Search(cmd.Context(), query, top)
			if err != nil || len(topics) == 0 {
				fmt.Println(render.NoTopicsMessage)
				return nil
			}

			var renderOpts []render.Option
			if solvedBadge {
				renderOpts = append(renderOpts, render.WithSolvedBadge())
			}
			fmt.Println(render.Links(client.BaseURL(), topics, renderOpts...))
			return nil
		},
	}
	search.Flags().StringVar(&etype, "type", "", "error type name (required)")
	search.Flags().StringVar(&message, "message", "", "error message")
	search.Flags().StringVar(&criteria, "criteria", forum.CriteriaBroad, "search criteria: broad or narrow")
	search.Flags().StringVar(&sortby, "sortby", "", "sort: latest, likes, views, latest_topic")
	search.Flags().StringVar(&status, "status", "", "topic status filter")
	search.Flags().IntVar(&top, "top", forum.DefaultTop, "number of topics to keep")
	search.Flags().BoolVar(&solvedBadge, "solved-badge", false, "mark solved topics")
	search.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	_ = search.MarkFlagRequired("type")

	return search
}
