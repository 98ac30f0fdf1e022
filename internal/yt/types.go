package yt

import (
	"context"
	"sort"
)

const (
	// SearchPageSize is the largest page search.list will return.
	SearchPageSize = 50
	// DetailsBatchSize is how many ids go into one videos.list call. It is tied to
	// SearchPageSize so one search page always hydrates in a single call.
	DetailsBatchSize = SearchPageSize

	// LookbackDays bounds how far back published videos are searched.
	LookbackDays = 730

	// SearchTypeVideo restricts search results to videos.
	SearchTypeVideo = "video"
	// OrderViewCount ranks search results by view count, highest first.
	OrderViewCount = "viewCount"

	watchURL = "https://www.youtube.com/watch?v="
)

// DetailParts are the facets requested from videos.list.
var DetailParts = []string{"snippet", "statistics", "contentDetails", "status"}

// VideoRecord is one flattened video as written to the sinks.
// Field order is the CSV column order.
type VideoRecord struct {
	Keyword              string   `json:"keyword" bson:"keyword"`
	VideoID              string   `json:"video_id" bson:"video_id"`
	Title                string   `json:"title" bson:"title"`
	ChannelTitle         string   `json:"channel_title" bson:"channel_title"`
	PublishedAt          string   `json:"published_at" bson:"published_at"`
	ViewCount            int64    `json:"view_count" bson:"view_count"`
	LikeCount            int64    `json:"like_count" bson:"like_count"`
	CommentCount         int64    `json:"comment_count" bson:"comment_count"`
	DurationSeconds      *int64   `json:"duration_seconds" bson:"duration_seconds"`
	Definition           string   `json:"definition" bson:"definition"`
	CaptionAvailable     bool     `json:"caption_available" bson:"caption_available"`
	CategoryID           string   `json:"category_id" bson:"category_id"`
	Description          string   `json:"description" bson:"description"`
	Tags                 []string `json:"tags" bson:"tags"`
	DefaultLanguage      string   `json:"default_language" bson:"default_language"`
	ThumbnailURL         string   `json:"thumbnail_url" bson:"thumbnail_url"`
	PrivacyStatus        string   `json:"privacy_status" bson:"privacy_status"`
	LiveBroadcastContent string   `json:"live_broadcast_content" bson:"live_broadcast_content"`
	URL                  string   `json:"url" bson:"url"`
}

// ExtractionResult maps each searched keyword, in its input casing, to its ranked videos.
type ExtractionResult map[string][]VideoRecord

// Keywords returns the keywords of the result in sorted order.
func (r ExtractionResult) Keywords() []string {
	keywords := make([]string, 0, len(r))
	for k := range r {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	return keywords
}

// Total returns the number of records across all keywords.
func (r ExtractionResult) Total() int {
	n := 0
	for _, videos := range r {
		n += len(videos)
	}
	return n
}

// SearchQuery holds the parameters of one search.list call.
type SearchQuery struct {
	Keyword        string
	Type           string
	Order          string
	MaxResults     int64
	PublishedAfter string
	PageToken      string
}

// SearchPage is one page of search.list candidates.
type SearchPage struct {
	VideoIDs      []string
	NextPageToken string
}

// VideoItem is one videos.list item. Any facet may be missing.
type VideoItem struct {
	ID             string          `json:"id"`
	Snippet        *Snippet        `json:"snippet,omitempty"`
	Statistics     *Statistics     `json:"statistics,omitempty"`
	ContentDetails *ContentDetails `json:"contentDetails,omitempty"`
	Status         *Status         `json:"status,omitempty"`
}

// Snippet holds the descriptive metadata of a video.
type Snippet struct {
	Title                string      `json:"title,omitempty"`
	ChannelTitle         string      `json:"channelTitle,omitempty"`
	PublishedAt          string      `json:"publishedAt,omitempty"`
	CategoryID           string      `json:"categoryId,omitempty"`
	Description          string      `json:"description,omitempty"`
	Tags                 []string    `json:"tags,omitempty"`
	DefaultLanguage      string      `json:"defaultLanguage,omitempty"`
	LiveBroadcastContent string      `json:"liveBroadcastContent,omitempty"`
	Thumbnails           *Thumbnails `json:"thumbnails,omitempty"`
}

// Thumbnails keeps only the default-size thumbnail.
type Thumbnails struct {
	Default *Thumbnail `json:"default,omitempty"`
}

// Thumbnail is one thumbnail image.
type Thumbnail struct {
	URL string `json:"url,omitempty"`
}

// Statistics counters arrive as decimal strings and are absent when hidden by the creator.
type Statistics struct {
	ViewCount    int64 `json:"viewCount,omitempty,string"`
	LikeCount    int64 `json:"likeCount,omitempty,string"`
	CommentCount int64 `json:"commentCount,omitempty,string"`
}

// ContentDetails keeps Caption untyped: the API documents it as the string
// "true"/"false", and only that exact string counts as captioned.
type ContentDetails struct {
	Duration   string `json:"duration,omitempty"`
	Definition string `json:"definition,omitempty"`
	Caption    any    `json:"caption,omitempty"`
}

// Status holds the upload and privacy state.
type Status struct {
	PrivacyStatus string `json:"privacyStatus,omitempty"`
}

// VideoAPI is the two-step search capability the extractor depends on.
type VideoAPI interface {
	// Search returns one page of candidate video ids for the query.
	Search(ctx context.Context, q SearchQuery) (*SearchPage, error)
	// Details hydrates up to DetailsBatchSize ids with DetailParts.
	Details(ctx context.Context, ids []string) ([]VideoItem, error)
}
