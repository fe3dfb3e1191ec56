package model

// Prediction is a single (label, score) pair returned by an emotion
// classifier. Score is a confidence in [0, 1].
//
// Labels are whatever the model emits (joy, sadness, anger, ...):
// the vocabulary is not fixed here since the model is swappable.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
