package yt

import (
	"cmp"
	"fmt"
	"slices"
)

// VideoURL returns the watch URL for a video id.
func VideoURL(videoID string) string {
	return watchURL + videoID
}

// NewVideoRecord flattens a videos.list item found under keyword.
// Missing counters default to 0, a missing duration stays nil, and the caption
// flag is set only for the literal string "true".
func NewVideoRecord(keyword string, item VideoItem) (VideoRecord, error) {
	if item.ID == "" {
		return VideoRecord{}, wrapError(CodeMalformedResponse, false, fmt.Errorf("video item without id for keyword %q", keyword))
	}

	rec := VideoRecord{
		Keyword: keyword,
		VideoID: item.ID,
		Tags:    []string{},
		URL:     VideoURL(item.ID),
	}

	if s := item.Snippet; s != nil {
		rec.Title = s.Title
		rec.ChannelTitle = s.ChannelTitle
		rec.PublishedAt = s.PublishedAt
		rec.CategoryID = s.CategoryID
		rec.Description = s.Description
		rec.DefaultLanguage = s.DefaultLanguage
		rec.LiveBroadcastContent = s.LiveBroadcastContent
		if len(s.Tags) > 0 {
			rec.Tags = slices.Clone(s.Tags)
		}
		if s.Thumbnails != nil && s.Thumbnails.Default != nil {
			rec.ThumbnailURL = s.Thumbnails.Default.URL
		}
	}

	if st := item.Statistics; st != nil {
		rec.ViewCount = st.ViewCount
		rec.LikeCount = st.LikeCount
		rec.CommentCount = st.CommentCount
	}

	if cd := item.ContentDetails; cd != nil {
		secs, err := ParseDuration(cd.Duration)
		if err != nil {
			return VideoRecord{}, fmt.Errorf("video %s: %w", item.ID, err)
		}
		rec.DurationSeconds = secs
		rec.Definition = cd.Definition
		rec.CaptionAvailable = captionAvailable(cd.Caption)
	}

	if item.Status != nil {
		rec.PrivacyStatus = item.Status.PrivacyStatus
	}

	return rec, nil
}

func captionAvailable(v any) bool {
	s, ok := v.(string)
	return ok && s == "true"
}

// SortByEngagement orders records by like count, then comment count, both descending.
// Records that tie on both keep their relative order.
func SortByEngagement(records []VideoRecord) {
	slices.SortStableFunc(records, func(a, b VideoRecord) int {
		if c := cmp.Compare(b.LikeCount, a.LikeCount); c != 0 {
			return c
		}
		return cmp.Compare(b.CommentCount, a.CommentCount)
	})
}
