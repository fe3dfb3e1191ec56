// Package murecom recommends songs for a mood.
package murecom

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/cdfmlr/crud/log"
	"github.com/yugank-123/Mood2music/model"
)

var logger = log.ZoneLogger("mood2music/murecom")

// DefaultLimit is how many songs a recommendation returns at most.
const DefaultLimit = 5

var ErrEmptyCatalog = errors.New("murecom: no songs to recommend from")

// Recommend picks up to limit songs for mood.
//
// The algorithm is:
//
//   - Retrieval: songs whose Mood equals mood, ignoring case (no partial match)
//   - Fallback: no match at all -> the whole dataset
//   - Sampling: min(limit, candidates) songs, uniformly at random, in random order
//
// So the result always has at least one song when songs is not empty.
// songs is not modified.
func Recommend(songs []model.Song, mood string, limit int, rng *rand.Rand) []model.Song {
	if limit <= 0 {
		limit = DefaultLimit
	}

	candidates := make([]int, 0, len(songs))
	for i := range songs {
		if songs[i].MoodIs(mood) {
			candidates = append(candidates, i)
		}
	}

	if len(candidates) == 0 {
		logger.WithField("mood", mood).Debug("Recommend: no match, sampling the whole dataset")
		for i := range songs {
			candidates = append(candidates, i)
		}
	}

	picked := sample(candidates, limit, rng)

	out := make([]model.Song, len(picked))
	for i, idx := range picked {
		out[i] = songs[idx]
	}
	return out
}

// sample returns n elements of xs (all of them if n >= len(xs)) drawn
// without replacement, by a partial Fisher-Yates shuffle. xs is reordered.
func sample(xs []int, n int, rng *rand.Rand) []int {
	if n > len(xs) {
		n = len(xs)
	}
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(xs)-i)
		xs[i], xs[j] = xs[j], xs[i]
	}
	return xs[:n]
}

// Recommender holds the song snapshot and the random source shared by
// all requests. The snapshot is never written after NewRecommender.
type Recommender struct {
	songs []model.Song

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewRecommender returns a Recommender over songs.
// A nil rng means a randomly seeded one.
func NewRecommender(songs []model.Song, rng *rand.Rand) (*Recommender, error) {
	if len(songs) == 0 {
		return nil, ErrEmptyCatalog
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	snapshot := make([]model.Song, len(songs))
	copy(snapshot, songs)

	return &Recommender{songs: snapshot, rng: rng}, nil
}

// NewSeededRand returns a random source with a fixed seed,
// for reproducible recommendations.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Recommend picks up to limit songs for mood. See Recommend.
func (r *Recommender) Recommend(mood string, limit int) []model.Song {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Recommend(r.songs, mood, limit, r.rng)
}

// Len returns the number of songs in the snapshot.
func (r *Recommender) Len() int {
	return len(r.songs)
}
