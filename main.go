package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/yugank-123/Mood2music/audiofilestore"
	"github.com/yugank-123/Mood2music/emotion"
	"github.com/yugank-123/Mood2music/metadata"
	"github.com/yugank-123/Mood2music/murecom"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	configFile = flag.String("config", DefaultConfigFile, "path to the YAML config file")
	genConfig  = flag.Bool("gen-config", false, "print the effective config as YAML and exit")
)

func main() {
	flag.Parse()

	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.WithError(err).Warn("main: load .env failed")
	}

	config, err := LoadConfig(*configFile)
	if err != nil {
		logger.WithError(err).Fatal("main: LoadConfig failed")
	}

	if err := useLogLevel(config.LogLevel); err != nil {
		logger.WithError(err).Fatal("main: bad log level")
	}

	if *genConfig {
		if err := config.Write(os.Stdout); err != nil {
			logger.WithError(err).Fatal("main: write config failed")
		}
		return
	}

	if err := run(context.Background(), config); err != nil {
		logger.WithError(err).Fatal("main: exit")
	}
}

func run(ctx context.Context, config *Mood2MusicConfig) error {
	r, err := setup(ctx, config)
	if err != nil {
		return err
	}

	logger.WithField("addr", config.HttpListenAddr).Info("Mood2Music is serving")
	return r.Run(config.HttpListenAddr)
}

// setup loads the catalog, imports the audio stores, checks the emotion
// model and mounts every route. Any failure aborts startup.
//
// Audio stores are imported before the recommender takes its snapshot,
// so imported tracks are recommended too.
func setup(ctx context.Context, config *Mood2MusicConfig) (*gin.Engine, error) {
	r, err := MakeRouter()
	if err != nil {
		return nil, fmt.Errorf("MakeRouter: %w", err)
	}

	// catalog
	if err := metadata.Start(config.Metadata.DB, r); err != nil {
		return nil, err
	}

	songs, err := metadata.LoadCSV(config.Dataset.Path)
	if err != nil {
		return nil, err
	}
	if err := metadata.ReplaceSongs(ctx, songs); err != nil {
		return nil, err
	}

	for _, c := range config.AudioFileStores {
		store := audiofilestore.NewAudioFileStore(c.Name, c.FileDir, c.BaseUrl, r)
		if !c.LoadFromDir {
			continue
		}
		if _, err := store.AddTracksFromDir(ctx); err != nil {
			return nil, fmt.Errorf("audiofilestore %s: %w", c.Name, err)
		}
	}

	snapshot, err := metadata.AllSongs(ctx)
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand // nil: random seed
	if config.Murecom.Seed != 0 {
		rng = murecom.NewSeededRand(config.Murecom.Seed)
	}
	recommender, err := murecom.NewRecommender(snapshot, rng)
	if err != nil {
		return nil, err
	}

	// emotion model
	client, err := emotion.NewClient(config.Emotion.Server, config.Emotion.Model,
		config.Emotion.Token, config.Emotion.Timeout)
	if err != nil {
		return nil, err
	}

	warmupCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if err := client.Warmup(warmupCtx); err != nil {
		return nil, fmt.Errorf("emotion model %s is not available: %w", client.Endpoint(), err)
	}

	app := &App{
		Classifier:  emotion.NewCachedClassifier(client, config.Emotion.CacheTTL),
		Recommender: recommender,
		Limit:       config.Murecom.Limit,
	}
	app.RegisterRoutes(r)

	logger.WithField("songs", recommender.Len()).
		WithField("model", client.Endpoint()).
		Info("setup: ready")

	return r, nil
}
