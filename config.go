package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yugank-123/Mood2music/emotion"
	"github.com/yugank-123/Mood2music/metadata"
	"github.com/yugank-123/Mood2music/murecom"

	"github.com/cdfmlr/crud/log"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when -config is not given. It may be absent.
const DefaultConfigFile = "mood2music.yaml"

type Mood2MusicConfig struct {
	LogLevel        string // trace, debug, info, warn, error
	HttpListenAddr  string
	Dataset         DatasetConfig
	Metadata        MetadataConfig
	AudioFileStores []AudioFileStoreConfig
	Emotion         EmotionConfig
	Murecom         MurecomConfig
}

func (c *Mood2MusicConfig) Write(dst io.Writer) error {
	return yaml.NewEncoder(dst).Encode(&c)
}

type DatasetConfig struct {
	Path string
}

type MetadataConfig struct {
	DB string
}

type AudioFileStoreConfig struct {
	Name        string
	FileDir     string
	BaseUrl     string
	LoadFromDir bool
}

type EmotionConfig struct {
	Server   string
	Model    string
	Token    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type MurecomConfig struct {
	Limit int
	Seed  uint64 // 0: random
}

func DefaultConfig() *Mood2MusicConfig {
	return &Mood2MusicConfig{
		LogLevel:       string(log.LevelInfo),
		HttpListenAddr: ":8086",
		Dataset: DatasetConfig{
			Path: "songs.csv",
		},
		Metadata: MetadataConfig{
			DB: metadata.DefaultDSN,
		},
		Emotion: EmotionConfig{
			Server:   emotion.DefaultServer,
			Model:    emotion.DefaultModel,
			Timeout:  30 * time.Second,
			CacheTTL: emotion.DefaultCacheTTL,
		},
		Murecom: MurecomConfig{
			Limit: murecom.DefaultLimit,
		},
	}
}

// LoadConfig reads the YAML config at path over the defaults, then
// applies environment overrides.
//
// A missing DefaultConfigFile is not an error: the defaults are used.
func LoadConfig(path string) (*Mood2MusicConfig, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	c := DefaultConfig()

	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && path == DefaultConfigFile:
		// defaults
	case err != nil:
		return nil, fmt.Errorf("LoadConfig: %w", err)
	default:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("LoadConfig: decode %s: %w", path, err)
		}
	}

	if err := c.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}
	return c, nil
}

// parseLogLevel checks s against the levels crud/log knows.
// Empty means info.
func parseLogLevel(s string) (log.Level, error) {
	level := log.Level(strings.ToLower(strings.TrimSpace(s)))
	switch level {
	case "":
		return log.LevelInfo, nil
	case log.LevelTrace, log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError:
		return level, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

// useLogLevel sets the level of the logger shared by every zone,
// gin and gorm.
func useLogLevel(s string) error {
	level, err := parseLogLevel(s)
	if err != nil {
		return err
	}
	log.UseLogger(log.Logger, log.WithLevel(level))
	return nil
}

// applyEnv overrides fields from the environment:
//
//   - MOOD2MUSIC_LOG_LEVEL: LogLevel
//   - MOOD2MUSIC_LISTEN: HttpListenAddr
//   - MOOD2MUSIC_DATASET: Dataset.Path
//   - EMOTION_SERVER: Emotion.Server
//   - EMOTION_MODEL: Emotion.Model
//   - HF_TOKEN: Emotion.Token
//   - MURECOM_SEED: Murecom.Seed
func (c *Mood2MusicConfig) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"MOOD2MUSIC_LOG_LEVEL": &c.LogLevel,
		"MOOD2MUSIC_LISTEN":    &c.HttpListenAddr,
		"MOOD2MUSIC_DATASET":   &c.Dataset.Path,
		"EMOTION_SERVER":       &c.Emotion.Server,
		"EMOTION_MODEL":        &c.Emotion.Model,
		"HF_TOKEN":             &c.Emotion.Token,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("MURECOM_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MURECOM_SEED: %w", err)
		}
		c.Murecom.Seed = seed
	}
	return nil
}
