package main

import (
	"context"

	"github.com/yugank-123/Mood2music/emotion"
	"github.com/yugank-123/Mood2music/model"
	"github.com/yugank-123/Mood2music/murecom"
)

// App is the text -> mood -> songs pipeline behind the page and the API.
type App struct {
	Classifier  emotion.Classifier
	Recommender *murecom.Recommender
	Limit       int
}

// Analysis is the result of one run of the pipeline.
type Analysis struct {
	ID    string       `json:"id"`
	Mood  string       `json:"mood"`
	Songs []model.Song `json:"songs"`
}

// Analyze resolves the mood of text and recommends songs for it.
func (a *App) Analyze(ctx context.Context, text string) (*Analysis, error) {
	mood, err := emotion.ResolveMood(ctx, text, a.Classifier)
	if err != nil {
		return nil, err
	}

	limit := a.Limit
	if limit <= 0 {
		limit = murecom.DefaultLimit
	}

	return &Analysis{
		ID:    newAnalysisID(),
		Mood:  mood,
		Songs: a.Recommender.Recommend(mood, limit),
	}, nil
}
