package metadata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yugank-123/Mood2music/model"
)

// this file loads the static song dataset: a CSV file with a header row
// and at least a "mood" column.

var (
	ErrNoMoodColumn = errors.New("dataset has no mood column")
	ErrEmptyDataset = errors.New("dataset has no rows")
)

// column name (lower case) -> Song field
var knownColumns = map[string]string{
	"title":          "title",
	"song":           "title",
	"name":           "title",
	"track":          "title",
	"artist":         "artist",
	"album":          "album",
	"mood":           "mood",
	"audio_file_url": "url",
	"url":            "url",
}

// LoadCSV reads the song dataset at path.
func LoadCSV(path string) ([]model.Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadCSV: %w", err)
	}
	defer f.Close()

	songs, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("LoadCSV %s: %w", path, err)
	}

	logger.WithField("path", path).
		WithField("songs", len(songs)).
		Info("LoadCSV: success")

	return songs, nil
}

// ReadCSV parses a song dataset from r.
//
// Header names are matched ignoring case and surrounding spaces.
// Columns that are not known Song fields are kept in Song.Extra.
func ReadCSV(r io.Reader) ([]model.Song, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	hasMood := false
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff") // BOM from spreadsheet exports
		columns[i] = strings.TrimSpace(h)
		if strings.EqualFold(columns[i], "mood") {
			hasMood = true
		}
	}
	if !hasMood {
		return nil, ErrNoMoodColumn
	}

	var songs []model.Song
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		songs = append(songs, songFromRecord(columns, record))
	}

	if len(songs) == 0 {
		return nil, ErrEmptyDataset
	}
	return songs, nil
}

// songFromRecord maps a CSV record to a Song. When two columns map to
// the same field (say "song" and "title"), the first one wins and the
// other is kept in Extra.
func songFromRecord(columns, record []string) model.Song {
	var song model.Song
	filled := make(map[string]bool, len(knownColumns))

	for i, col := range columns {
		v := strings.TrimSpace(record[i])

		field, ok := knownColumns[strings.ToLower(col)]
		if !ok || filled[field] {
			if song.Extra == nil {
				song.Extra = make(map[string]string)
			}
			song.Extra[col] = v
			continue
		}
		filled[field] = true

		switch field {
		case "title":
			song.Title = v
		case "artist":
			song.Artist = v
		case "album":
			song.Album = v
		case "mood":
			song.Mood = v
		case "url":
			song.AudioFileURL = v
		}
	}
	return song
}
