package sink

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/alanpramil7/ytetl/internal/yt"
)

// Columns is the CSV header, in VideoRecord field order.
var Columns = []string{
	"keyword",
	"video_id",
	"title",
	"channel_title",
	"published_at",
	"view_count",
	"like_count",
	"comment_count",
	"duration_seconds",
	"definition",
	"caption_available",
	"category_id",
	"description",
	"tags",
	"default_language",
	"thumbnail_url",
	"privacy_status",
	"live_broadcast_content",
	"url",
}

// EncodeCSV writes a header row followed by one row per record.
func EncodeCSV(w io.Writer, records []yt.VideoRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		row, err := csvRow(rec)
		if err != nil {
			return err
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", rec.VideoID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(rec yt.VideoRecord) ([]string, error) {
	duration := ""
	if rec.DurationSeconds != nil {
		duration = strconv.FormatInt(*rec.DurationSeconds, 10)
	}
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags for %s: %w", rec.VideoID, err)
	}

	return []string{
		rec.Keyword,
		rec.VideoID,
		rec.Title,
		rec.ChannelTitle,
		rec.PublishedAt,
		strconv.FormatInt(rec.ViewCount, 10),
		strconv.FormatInt(rec.LikeCount, 10),
		strconv.FormatInt(rec.CommentCount, 10),
		duration,
		rec.Definition,
		pyBool(rec.CaptionAvailable),
		rec.CategoryID,
		rec.Description,
		string(tagsJSON),
		rec.DefaultLanguage,
		rec.ThumbnailURL,
		rec.PrivacyStatus,
		rec.LiveBroadcastContent,
		rec.URL,
	}, nil
}

// pyBool renders booleans the way the existing CSV files in the bucket have them.
func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
