package yt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// callTimeout bounds each API round trip.
const callTimeout = 30 * time.Second

// Client wraps the YouTube API service and implements VideoAPI.
type Client struct {
	service *youtube.Service
}

// NewClient creates a new YouTube API client authenticated with apiKey.
// Extra options are applied after the defaults.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, wrapError(CodeAuthInvalid, false, fmt.Errorf("missing YouTube API key"))
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// Search runs one search.list call.
func (c *Client) Search(ctx context.Context, q SearchQuery) (*SearchPage, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	call := c.service.Search.List([]string{"id"}).
		Q(q.Keyword).
		Type(q.Type).
		Order(q.Order).
		MaxResults(q.MaxResults).
		Context(ctx)
	if q.PublishedAfter != "" {
		call = call.PublishedAfter(q.PublishedAfter)
	}
	if q.PageToken != "" {
		call = call.PageToken(q.PageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, classifyAPIError(fmt.Errorf("search %q: %w", q.Keyword, err))
	}

	page := &SearchPage{
		VideoIDs:      make([]string, 0, len(response.Items)),
		NextPageToken: response.NextPageToken,
	}
	for i, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			return nil, wrapError(CodeMalformedResponse, false,
				fmt.Errorf("search %q: item %d has no videoId", q.Keyword, i))
		}
		page.VideoIDs = append(page.VideoIDs, item.Id.VideoId)
	}
	return page, nil
}

// Details runs one videos.list call for ids.
func (c *Client) Details(ctx context.Context, ids []string) ([]VideoItem, error) {
	if len(ids) > DetailsBatchSize {
		return nil, fmt.Errorf("details: %d ids exceeds batch size %d", len(ids), DetailsBatchSize)
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	response, err := c.service.Videos.List(DetailParts).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyAPIError(fmt.Errorf("videos %d ids: %w", len(ids), err))
	}

	items := make([]VideoItem, 0, len(response.Items))
	for _, video := range response.Items {
		items = append(items, fromVideo(video))
	}
	return items, nil
}

func fromVideo(v *youtube.Video) VideoItem {
	item := VideoItem{ID: v.Id}
	if s := v.Snippet; s != nil {
		item.Snippet = &Snippet{
			Title:                s.Title,
			ChannelTitle:         s.ChannelTitle,
			PublishedAt:          s.PublishedAt,
			CategoryID:           s.CategoryId,
			Description:          s.Description,
			Tags:                 s.Tags,
			DefaultLanguage:      s.DefaultLanguage,
			LiveBroadcastContent: s.LiveBroadcastContent,
		}
		if s.Thumbnails != nil && s.Thumbnails.Default != nil {
			item.Snippet.Thumbnails = &Thumbnails{Default: &Thumbnail{URL: s.Thumbnails.Default.Url}}
		}
	}
	if st := v.Statistics; st != nil {
		item.Statistics = &Statistics{
			ViewCount:    int64(st.ViewCount),
			LikeCount:    int64(st.LikeCount),
			CommentCount: int64(st.CommentCount),
		}
	}
	if cd := v.ContentDetails; cd != nil {
		item.ContentDetails = &ContentDetails{
			Duration:   cd.Duration,
			Definition: cd.Definition,
		}
		if cd.Caption != "" {
			item.ContentDetails.Caption = cd.Caption
		}
	}
	if v.Status != nil {
		item.Status = &Status{PrivacyStatus: v.Status.PrivacyStatus}
	}
	return item
}
