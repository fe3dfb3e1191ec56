// Package audiofilestore turns a local directory of audio files into songs.
// Exposure an AudioFileStore with the following methods:
//   - AddTrack: add a track (from audio file path) to the catalog
//   - AddTracksFromDir: read self.FileDir and add all the tracks in it
//
// The directory is laid out by mood:
//
//	{FileDir}/{mood}/{any/sub/dirs}/{file}.mp3
//
// Exposure Routes:
//   - /{Name}/audio: static audio file
package audiofilestore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yugank-123/Mood2music/metadata"
	"github.com/yugank-123/Mood2music/model"

	"github.com/cdfmlr/crud/log"
	"github.com/gin-gonic/gin"
)

var logger = log.ZoneLogger("mood2music/audiofilestore")

var (
	ErrTrackExists = errors.New("track already exists")
	ErrNoMoodDir   = errors.New("file is not inside a mood directory")
)

// AudioFileStore stores audio files in a local directory.
type AudioFileStore struct {
	Name    string
	FileDir string
	BaseUrl string
}

// NewAudioFileStore creates a store and, if router is not nil, serves
// its files under /{name}/audio.
func NewAudioFileStore(name, fileDir, baseUrl string, router gin.IRouter) *AudioFileStore {
	a := &AudioFileStore{
		Name:    name,
		FileDir: fileDir,
		BaseUrl: baseUrl,
	}

	if router != nil {
		a.registerRoutes(router)
	}

	return a
}

// AddTrack adds a track (from audio file path) to the catalog.
// path must be inside FileDir, under a mood directory.
func (a *AudioFileStore) AddTrack(ctx context.Context, path string) (*model.Song, error) {
	mood, err := a.moodOf(path)
	if err != nil {
		return nil, fmt.Errorf("AddTrack: %w: %s", err, path)
	}

	// get track metadata
	song, err := model.SongFromAudioFile(path)
	if err != nil {
		return nil, fmt.Errorf("AddTrack: SongFromAudioFile failed: %w", err)
	}
	song.Mood = mood

	// check if track exists
	if metadata.SongExists(ctx, song) {
		return nil, fmt.Errorf("AddTrack: %w: %s", ErrTrackExists, song.Title)
	}

	// fill url
	song.AudioFileURL, err = a.audioUrl(path)
	if err != nil {
		return nil, fmt.Errorf("AddTrack: AudioFileURL failed: %w", err)
	}

	// save to db
	err = metadata.CreateSong(ctx, song)
	if err != nil {
		return nil, fmt.Errorf("AddTrack: Create failed: %w", err)
	}

	logger.WithField("ID", song.ID).
		WithField("Title", song.Title).
		WithField("Mood", song.Mood).
		WithField("AudioFileURL", song.AudioFileURL).
		Info("AddTrack: success")

	return song, nil
}

// moodOf returns the name of the top level directory under FileDir
// that contains path.
func (a *AudioFileStore) moodOf(path string) (string, error) {
	relevant, err := a.audioRelevantPath(path)
	if err != nil {
		return "", err
	}

	parts := strings.Split(strings.TrimPrefix(filepath.ToSlash(relevant), "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[0] == ".." {
		return "", ErrNoMoodDir
	}
	return parts[0], nil
}

// audioRelevantPath = Abs(path) - Abs(FileDir)
func (a *AudioFileStore) audioRelevantPath(path string) (string, error) {
	fileAbsPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	dirAbsPath, err := filepath.Abs(a.FileDir)
	if err != nil {
		return "", err
	}

	relevant, err := filepath.Rel(dirAbsPath, fileAbsPath)
	if err != nil {
		return "", err
	}

	return relevant, nil
}

func (a *AudioFileStore) audioStaticBasePath() string {
	return "/" + a.Name + "/audio"
}

// audioUrl = BaseUrl + audioStaticBasePath + audioRelevantPath
func (a *AudioFileStore) audioUrl(path string) (string, error) {
	relevant, err := a.audioRelevantPath(path)
	if err != nil {
		return "", err
	}

	u, err := url.JoinPath(a.BaseUrl, a.audioStaticBasePath(), filepath.ToSlash(relevant))
	return u, err
}

// AddTracksFromDir adds all the tracks in the directory to the catalog.
// Files that fail are logged and skipped. It returns the number of
// tracks added.
func (a *AudioFileStore) AddTracksFromDir(ctx context.Context) (int, error) {
	logger.WithField("FileDir", a.FileDir).Info("AddTracksFromDir: start")

	// enumerate music files
	ch, err := enumMusicFiles(a.FileDir)
	if err != nil {
		return 0, fmt.Errorf("AddTracksFromDir: enumMusicFiles failed: %w", err)
	}

	// add tracks
	added := 0
	for path := range ch {
		logger.WithField("path", path).Debug("AddTracksFromDir: AddTrack")
		_, err := a.AddTrack(ctx, path)
		if err != nil {
			logger.Warnf("AddTracksFromDir: %v", err)
			continue
		}
		added++
	}

	logger.WithField("FileDir", a.FileDir).
		WithField("added", added).
		Info("AddTracksFromDir: done")

	return added, nil
}

// isMusicFile returns true if the file is a music file.
// It checks the file extension.
// supported extensions: .mp3, .wav, .m4a, .flac, .ogg
func isMusicFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3", ".wav", ".m4a", ".flac", ".ogg":
		return true
	default:
		return false
	}
}

// enumMusicFiles enumerates all the music files in the directory.
// It returns a channel of the file paths.
func enumMusicFiles(dir string) (chan string, error) {
	if dir == "" {
		return nil, errors.New("empty dir")
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("enumMusicFiles: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("enumMusicFiles: %s is not a dir", dir)
	}

	ch := make(chan string, 3)

	go func() {
		defer close(ch)

		// walk the directory
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			// skip non-music files
			if d.IsDir() || !isMusicFile(path) {
				return nil
			}

			// send the path to the channel
			ch <- path

			return nil
		})

		if err != nil {
			logger.WithError(err).Error("enumMusicFiles: WalkDir failed")
		}
	}()

	return ch, nil
}
