package model

import (
	"strings"

	"github.com/cdfmlr/crud/orm"
)

// Song is one row of the song dataset.
//
// Mood is the only field the recommender looks at. Everything else
// is display data: columns the dataset carries beyond the known ones
// end up in Extra, untouched.
type Song struct {
	orm.BasicModel

	Title        string
	Artist       string
	Album        string
	Mood         string `gorm:"index"`
	AudioFileURL string

	Extra map[string]string `gorm:"serializer:json"`
}

// MoodIs reports whether the song is tagged with mood, ignoring case.
func (s *Song) MoodIs(mood string) bool {
	return strings.ToLower(s.Mood) == strings.ToLower(mood)
}
