package metadata

// This file provides some APIs for other packages to use.
// Saves them from talking to the crud/service or even crud/orm.

import (
	"context"
	"fmt"

	"github.com/yugank-123/Mood2music/model"

	"github.com/cdfmlr/crud/orm"
	"github.com/cdfmlr/crud/service"
	"gorm.io/gorm"
)

const createBatchSize = 100

// SongExists checks if a song with the same title and artist is in the catalog.
func SongExists(ctx context.Context, song *model.Song) bool {
	cnt, err := service.Count[model.Song](ctx,
		service.FilterBy("title", song.Title),
		service.FilterBy("artist", song.Artist))

	if err != nil {
		logger.WithContext(ctx).
			WithField("title", song.Title).
			WithField("artist", song.Artist).
			WithError(err).
			Error("SongExists: failed to select songs")
		return false
	}

	return cnt > 0
}

// CreateSong adds one song to the catalog.
func CreateSong(ctx context.Context, song *model.Song) error {
	err := service.Create(ctx, song, service.IfNotExist())
	return err
}

// ReplaceSongs empties the catalog and fills it with songs.
// IDs are written back into songs.
func ReplaceSongs(ctx context.Context, songs []model.Song) error {
	err := orm.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&model.Song{}).Error; err != nil {
			return err
		}
		if len(songs) == 0 {
			return nil
		}
		return tx.CreateInBatches(songs, createBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("ReplaceSongs: %w", err)
	}

	logger.WithField("songs", len(songs)).Info("ReplaceSongs: catalog loaded")
	return nil
}

// AllSongs returns every song in the catalog, in insertion order.
func AllSongs(ctx context.Context) ([]model.Song, error) {
	var songs []model.Song
	if err := orm.DB.WithContext(ctx).Order("id").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("AllSongs: %w", err)
	}
	return songs, nil
}

// ListSongs pages through the catalog. An empty mood lists all songs,
// otherwise only songs whose mood matches, ignoring case.
func ListSongs(ctx context.Context, mood string, limit, offset int) ([]model.Song, error) {
	q := orm.DB.WithContext(ctx).Order("id").Limit(limit).Offset(offset)
	if mood != "" {
		q = q.Where("LOWER(mood) = LOWER(?)", mood)
	}

	songs := make([]model.Song, 0)
	if err := q.Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("ListSongs: %w", err)
	}
	return songs, nil
}

// MoodCount is the number of songs tagged with a mood (lower cased).
type MoodCount struct {
	Mood  string
	Songs int64
}

// Moods counts songs per mood, most common first.
func Moods(ctx context.Context) ([]MoodCount, error) {
	moods := make([]MoodCount, 0)
	err := orm.DB.WithContext(ctx).
		Model(&model.Song{}).
		Select("LOWER(mood) AS mood, COUNT(*) AS songs").
		Group("LOWER(mood)").
		Order("songs DESC, mood").
		Scan(&moods).Error
	if err != nil {
		return nil, fmt.Errorf("Moods: %w", err)
	}
	return moods, nil
}
