package resources

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const maxVideos = 3

// YouTubeSearcher uses the YouTube Data API.
type YouTubeSearcher struct {
	svc *youtube.Service
}

// NewYouTubeSearcher creates a searcher. Extra client options (endpoint,
// HTTP client) are appended after the API key.
func NewYouTubeSearcher(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeSearcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube: API key is empty")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}
	return &YouTubeSearcher{svc: svc}, nil
}

// SearchVideos returns up to three English tutorials ordered by relevance,
// with view count and duration.
func (s *YouTubeSearcher) SearchVideos(ctx context.Context, topic string) ([]Resource, error) {
	search, err := s.svc.Search.List([]string{"snippet"}).
		Q(fmt.Sprintf("learn %s tutorial", topic)).
		MaxResults(maxVideos).
		Type("video").
		RelevanceLanguage("en").
		Order("relevance").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	videos := make([]Resource, 0, len(search.Items))
	for _, item := range search.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		id := item.Id.VideoId

		details, err := s.svc.Videos.List([]string{"contentDetails", "statistics"}).
			Id(id).
			Context(ctx).
			Do()
		if err != nil {
			return videos, fmt.Errorf("youtube video %s: %w", id, err)
		}
		if len(details.Items) == 0 {
			continue
		}

		v := Resource{
			Type:        "Video",
			Platform:    "YouTube",
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Link:        "https://www.youtube.com/watch?v=" + id,
			Channel:     item.Snippet.ChannelTitle,
			Views:       "N/A",
		}
		if th := item.Snippet.Thumbnails; th != nil && th.Medium != nil {
			v.Thumbnail = th.Medium.Url
		}
		if st := details.Items[0].Statistics; st != nil {
			v.Views = strconv.FormatUint(st.ViewCount, 10)
		}
		if cd := details.Items[0].ContentDetails; cd != nil {
			v.Duration = cd.Duration
		}
		videos = append(videos, v)
	}
	return videos, nil
}

var _ VideoSearcher = (*YouTubeSearcher)(nil)
