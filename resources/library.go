package resources

import (
	"context"

	"go.uber.org/zap"

	"github.com/richinex/waypoint/internal/logger"
)

// VideoSearcher finds tutorial videos for a topic.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, topic string) ([]Resource, error)
}

// LibraryFetcher returns videos plus curated article and book links.
type LibraryFetcher struct {
	videos VideoSearcher
	logger *zap.Logger
}

// NewLibraryFetcher builds a fetcher. A nil searcher yields no videos.
func NewLibraryFetcher(videos VideoSearcher, l *zap.Logger) *LibraryFetcher {
	return &LibraryFetcher{videos: videos, logger: logger.OrNop(l)}
}

// Fetch implements Fetcher.
func (f *LibraryFetcher) Fetch(ctx context.Context, topic string) Bundle {
	topic = CleanTopic(topic)
	b := Bundle{
		Variant:  VariantLibrary,
		Videos:   []Resource{},
		Articles: Articles(topic),
		Books:    Books(topic),
	}

	if f.videos != nil {
		videos, err := f.videos.SearchVideos(ctx, topic)
		if err != nil {
			f.logger.Warn("video search failed", zap.String("topic", topic),
				zap.Int("kept", len(videos)), zap.Error(err))
		}
		if len(videos) > 0 {
			b.Videos = videos
		}
	}
	return b
}

// Articles returns curated article and documentation searches.
func Articles(topic string) []Resource {
	q := queryEscape(topic)
	return []Resource{
		{
			Type:     "Article",
			Platform: "Medium",
			Title:    "Understanding " + topic + " - A Comprehensive Guide",
			Link:     "https://medium.com/search?q=" + q,
			Duration: "15 mins read",
		},
		{
			Type:     "Article",
			Platform: "Dev.to",
			Title:    "Practical " + topic + " Tutorial",
			Link:     "https://dev.to/search?q=" + q,
			Duration: "10 mins read",
		},
		{
			Type:     "Documentation",
			Platform: "Official Docs",
			Title:    topic + " Documentation",
			Link:     "https://www.google.com/search?q=" + queryEscape(topic+" official documentation"),
			Duration: "Reference",
		},
	}
}

// Books returns curated book searches.
func Books(topic string) []Resource {
	return []Resource{
		{
			Type:     "Book",
			Platform: "Amazon",
			Title:    "Learning " + topic + ": A Comprehensive Guide",
			Link:     "https://www.amazon.com/s?k=" + queryEscape(topic+" programming book"),
			Duration: "Book",
		},
		{
			Type:     "Book",
			Platform: "O'Reilly",
			Title:    topic + " in Practice",
			Link:     "https://www.oreilly.com/search/?q=" + queryEscape(topic),
			Duration: "Book",
		},
	}
}

var _ Fetcher = (*LibraryFetcher)(nil)
