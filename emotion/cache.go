package emotion

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/yugank-123/Mood2music/model"
)

const (
	DefaultCacheTTL      = 10 * time.Minute
	defaultCachePurgeTTL = 20 * time.Minute
)

// CachedClassifier remembers predictions per input text.
// The model is deterministic for a given input, so a hit is as good as a call.
// Failed calls are not cached.
type CachedClassifier struct {
	next  Classifier
	cache *cache.Cache
}

// NewCachedClassifier wraps next with a prediction cache.
// ttl <= 0 means DefaultCacheTTL.
func NewCachedClassifier(next Classifier, ttl time.Duration) *CachedClassifier {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	purge := defaultCachePurgeTTL
	if ttl > purge {
		purge = ttl
	}
	return &CachedClassifier{
		next:  next,
		cache: cache.New(ttl, purge),
	}
}

func (c *CachedClassifier) Classify(ctx context.Context, text string) ([]model.Prediction, error) {
	if x, found := c.cache.Get(text); found {
		return x.([]model.Prediction), nil
	}

	preds, err := c.next.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	c.cache.Set(text, preds, cache.DefaultExpiration)
	return preds, nil
}

// Len returns the number of cached texts, expired ones included.
func (c *CachedClassifier) Len() int {
	return c.cache.ItemCount()
}
