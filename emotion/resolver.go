package emotion

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// NeutralMood is the mood of blank text.
const NeutralMood = "neutral"

// ErrNoPrediction is returned when the classifier answers with no usable label.
var ErrNoPrediction = errors.New("emotion: classifier returned no prediction")

// ResolveMood returns the dominant mood of text.
//
// Blank text (empty or whitespace only) is "neutral" and the classifier
// is not called. Otherwise the classifier is called once and the label
// with the highest score wins; on a tie the one the classifier listed
// first wins. Classifier errors are returned as is, wrapped.
func ResolveMood(ctx context.Context, text string, classifier Classifier) (string, error) {
	if strings.TrimSpace(text) == "" {
		return NeutralMood, nil
	}

	preds, err := classifier.Classify(ctx, text)
	if err != nil {
		return "", fmt.Errorf("ResolveMood: %w", err)
	}
	if len(preds) == 0 {
		return "", ErrNoPrediction
	}

	best := preds[0]
	for _, p := range preds[1:] {
		if p.Score > best.Score {
			best = p
		}
	}

	if best.Label == "" {
		return "", ErrNoPrediction
	}

	logger.WithField("mood", best.Label).
		WithField("score", best.Score).
		Debug("ResolveMood: resolved")

	return best.Label, nil
}
