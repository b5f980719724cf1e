package database

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/studio-elise/gallerybackend/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// GallerySummary holds the aggregated engagement counts shown on the admin
// dashboard for one gallery.
type GallerySummary struct {
	ViewCount         int64            `json:"view_count"`
	DownloadCount     int64            `json:"download_count"`
	DownloadsByKind   map[string]int64 `json:"downloads_by_kind"`
	ShareCount        int64            `json:"share_count"`
	FavoriteCount     int64            `json:"favorite_count"`
	CommentCount      int64            `json:"comment_count"`
	ClientCount       int64            `json:"client_count"`
	GuestSessionCount int64            `json:"guest_session_count"`
}

// DailyViews is one bucket of the trailing view time-series.
type DailyViews struct {
	Day   string `json:"day"`
	Views int64  `json:"views"`
}

// TopMediaEntry ranks a media item by favorites plus downloads.
type TopMediaEntry struct {
	MediaID       uint    `json:"media_id"`
	Filename      string  `json:"filename"`
	ThumbnailURL  *string `json:"thumbnail_url,omitempty"`
	FavoriteCount int64   `json:"favorite_count"`
	DownloadCount int64   `json:"download_count"`
}

func countEvents(db *sql.DB, galleryID uint, eventType models.AnalyticsEventType) (int64, error) {
	sqlStr, args, err := psql.Select("COUNT(*)").
		From("analytics_events").
		Where(sq.Eq{"gallery_id": galleryID, "event_type": string(eventType)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for countEvents: %w", err)
	}
	var count int64
	if err := db.QueryRow(sqlStr, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s events for gallery %d: %w", eventType, galleryID, err)
	}
	return count, nil
}

func countRows(db *sql.DB, table string, where sq.Eq) (int64, error) {
	sqlStr, args, err := psql.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for countRows on %s: %w", table, err)
	}
	var count int64
	if err := db.QueryRow(sqlStr, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

func countEngagement(db *sql.DB, table string, galleryID uint) (int64, error) {
	sqlStr, args, err := psql.Select("COUNT(*)").
		From(table + " t").
		Join("media m ON m.id = t.media_id").
		Where(sq.Eq{"m.gallery_id": galleryID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for countEngagement on %s: %w", table, err)
	}
	var count int64
	if err := db.QueryRow(sqlStr, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s for gallery %d: %w", table, galleryID, err)
	}
	return count, nil
}

// GetGallerySummary aggregates the engagement counts for one gallery.
func GetGallerySummary(db *sql.DB, galleryID uint) (*GallerySummary, error) {
	summary := &GallerySummary{DownloadsByKind: map[string]int64{}}

	var err error
	if summary.ViewCount, err = countEvents(db, galleryID, models.EventView); err != nil {
		return nil, err
	}
	if summary.ShareCount, err = countEvents(db, galleryID, models.EventShare); err != nil {
		return nil, err
	}

	// downloads broken down by kind; legacy rows without a kind count as single
	sqlStr, args, err := psql.Select("COALESCE(download_kind, 'single')", "COUNT(*)").
		From("analytics_events").
		Where(sq.Eq{"gallery_id": galleryID, "event_type": string(models.EventDownload)}).
		GroupBy("COALESCE(download_kind, 'single')").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for download breakdown: %w", err)
	}
	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query download breakdown for gallery %d: %w", galleryID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan download breakdown row: %w", err)
		}
		summary.DownloadsByKind[kind] = count
		summary.DownloadCount += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate download breakdown rows: %w", err)
	}

	if summary.FavoriteCount, err = countEngagement(db, "favorites", galleryID); err != nil {
		return nil, err
	}
	if summary.CommentCount, err = countEngagement(db, "comments", galleryID); err != nil {
		return nil, err
	}
	if summary.ClientCount, err = countRows(db, "gallery_accesses", sq.Eq{"gallery_id": galleryID}); err != nil {
		return nil, err
	}
	if summary.GuestSessionCount, err = countRows(db, "guest_sessions", sq.Eq{"gallery_id": galleryID}); err != nil {
		return nil, err
	}

	return summary, nil
}

// GetDailyViews buckets view events by calendar day over a trailing window.
// Days without views are absent from the result; the charting layer fills
// the gaps.
func GetDailyViews(db *sql.DB, galleryID uint, windowDays int) ([]DailyViews, error) {
	since := time.Now().AddDate(0, 0, -windowDays)

	sqlStr, args, err := psql.Select("date(created_at) AS day", "COUNT(*)").
		From("analytics_events").
		Where(sq.Eq{"gallery_id": galleryID, "event_type": string(models.EventView)}).
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetDailyViews: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily views for gallery %d: %w", galleryID, err)
	}
	defer rows.Close()

	series := []DailyViews{}
	for rows.Next() {
		var d DailyViews
		if err := rows.Scan(&d.Day, &d.Views); err != nil {
			return nil, fmt.Errorf("failed to scan daily views row: %w", err)
		}
		series = append(series, d)
	}
	return series, rows.Err()
}

// GetTopMedia ranks a gallery's media by favorites plus downloads,
// descending, capped to limit entries.
func GetTopMedia(db *sql.DB, galleryID uint, limit int) ([]TopMediaEntry, error) {
	sqlStr, args, err := psql.Select(
		"m.id",
		"m.filename",
		"m.thumbnail_url",
		"(SELECT COUNT(*) FROM favorites f WHERE f.media_id = m.id) AS favorite_count",
		"(SELECT COUNT(*) FROM analytics_events e WHERE e.media_id = m.id AND e.event_type = 'download') AS download_count",
	).
		From("media m").
		Where(sq.Eq{"m.gallery_id": galleryID}).
		OrderBy("favorite_count + download_count DESC", "m.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetTopMedia: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top media for gallery %d: %w", galleryID, err)
	}
	defer rows.Close()

	entries := []TopMediaEntry{}
	for rows.Next() {
		var e TopMediaEntry
		if err := rows.Scan(&e.MediaID, &e.Filename, &e.ThumbnailURL, &e.FavoriteCount, &e.DownloadCount); err != nil {
			return nil, fmt.Errorf("failed to scan top media row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
