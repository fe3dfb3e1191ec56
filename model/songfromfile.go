package model

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// SongFromAudioFile reads song metadata from the tags of an audio file.
//
// This function only fills the Title, Artist and Album fields of the Song.
// Mood and AudioFileURL are left blank for the caller.
func SongFromAudioFile(path string) (*Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	song := &Song{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}

	if song.Title == "" {
		song.Title = strings.TrimSuffix(
			filepath.Base(path), filepath.Ext(path))
	}

	return song, nil
}
