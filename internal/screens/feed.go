package screens

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/ogc16/FitnessApp/internal/logs"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/ogc16/FitnessApp/internal/workout"
)

const (
	feedTitle       = "Your Fitness Community"
	feedLoadingText = "Loading posts..."
	feedNoPostsText = "No posts yet from people with similar fitness goals"
)

type FeedSource interface {
	Feed(ctx context.Context) ([]models.FeedPost, error)
}

// Feed lists everyone's posts, newest first. It starts in the loading state
// until the first query returns.
type Feed struct {
	source FeedSource

	Posts      []models.FeedPost
	Loading    bool
	Refreshing bool
}

func NewFeed(source FeedSource) *Feed {
	return &Feed{source: source, Loading: true}
}

// Load queries the feed. A failure is logged and leaves the current list
// in place.
func (s *Feed) Load(ctx context.Context) error {
	defer func() {
		s.Loading = false
		s.Refreshing = false
	}()

	posts, err := s.source.Feed(ctx)
	if err != nil {
		logs.LogJSON("ERROR", "Error fetching posts", map[string]any{"error": err.Error()})
		return err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	s.Posts = posts
	return nil
}

func (s *Feed) Refresh(ctx context.Context) error {
	s.Refreshing = true
	return s.Load(ctx)
}

func (s *Feed) EmptyText() string {
	if s.Loading {
		return feedLoadingText
	}
	return feedNoPostsText
}

func (s *Feed) Render(w io.Writer) {
	fmt.Fprintln(w, feedTitle)
	fmt.Fprintln(w)

	if len(s.Posts) == 0 {
		fmt.Fprintln(w, s.EmptyText())
		return
	}
	for _, post := range s.Posts {
		renderFeedItem(w, post)
		fmt.Fprintln(w)
	}
}

func renderFeedItem(w io.Writer, post models.FeedPost) {
	fmt.Fprintf(w, "%s · %s\n", authorName(post.Profiles.Email), post.ActivityType)
	if post.ImageURL != nil && *post.ImageURL != "" {
		fmt.Fprintf(w, "  image: %s\n", *post.ImageURL)
	}
	if post.Content != "" {
		fmt.Fprintf(w, "  %s\n", post.Content)
	}

	stats := workout.FormatDuration(post.Duration)
	if post.Distance != nil && *post.Distance != 0 {
		stats += "  " + formatKM(*post.Distance)
	}
	fmt.Fprintf(w, "  %s\n", stats)
}
