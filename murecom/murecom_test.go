package murecom

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yugank-123/Mood2music/model"
)

func smallDataset() []model.Song {
	return []model.Song{
		{Title: "A", Mood: "joy"},
		{Title: "B", Mood: "joy"},
		{Title: "C", Mood: "sad"},
	}
}

// bigDataset has n songs per mood.
func bigDataset(n int, moods ...string) []model.Song {
	var songs []model.Song
	for _, m := range moods {
		for i := 0; i < n; i++ {
			songs = append(songs, model.Song{Title: fmt.Sprintf("%s-%d", m, i), Mood: m})
		}
	}
	return songs
}

func titles(songs []model.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.Title
	}
	return out
}

func TestRecommend_CaseInsensitiveMatch(t *testing.T) {
	rng := NewSeededRand(1)

	for i := 0; i < 50; i++ {
		got := Recommend(smallDataset(), "JOY", DefaultLimit, rng)
		assert.ElementsMatch(t, []string{"A", "B"}, titles(got))
	}
}

func TestRecommend_FallbackSmallDataset(t *testing.T) {
	rng := NewSeededRand(2)

	for i := 0; i < 50; i++ {
		got := Recommend(smallDataset(), "angry", DefaultLimit, rng)
		assert.ElementsMatch(t, []string{"A", "B", "C"}, titles(got))
	}
}

func TestRecommend_FiveOrMoreMatches(t *testing.T) {
	songs := bigDataset(12, "joy", "sadness", "Anger")
	rng := NewSeededRand(3)

	for _, mood := range []string{"joy", "SADNESS", "anger"} {
		got := Recommend(songs, mood, DefaultLimit, rng)
		require.Len(t, got, 5)

		seen := map[string]bool{}
		for _, s := range got {
			assert.True(t, s.MoodIs(mood), "%q does not match %q", s.Mood, mood)
			assert.False(t, seen[s.Title], "duplicate %s", s.Title)
			seen[s.Title] = true
		}
	}
}

func TestRecommend_FewMatches(t *testing.T) {
	for n := 1; n <= 4; n++ {
		songs := append(bigDataset(n, "fear"), bigDataset(10, "joy")...)

		got := Recommend(songs, "fear", DefaultLimit, NewSeededRand(uint64(n)))

		require.Len(t, got, n)
		for _, s := range got {
			assert.Equal(t, "fear", s.Mood)
		}
	}
}

func TestRecommend_FallbackBigDataset(t *testing.T) {
	songs := bigDataset(10, "joy", "sadness")
	rng := NewSeededRand(4)

	got := Recommend(songs, "surprise", DefaultLimit, rng)

	require.Len(t, got, 5)
	seen := map[string]bool{}
	for _, s := range got {
		assert.False(t, seen[s.Title], "duplicate %s", s.Title)
		seen[s.Title] = true
	}
}

func TestRecommend_FallbackCoversWholeDataset(t *testing.T) {
	songs := bigDataset(3, "joy", "sadness", "anger")
	rng := NewSeededRand(5)

	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		for _, s := range Recommend(songs, "disgust", DefaultLimit, rng) {
			seen[s.Title] = true
		}
	}
	assert.Len(t, seen, len(songs))
}

func TestRecommend_RandomOrder(t *testing.T) {
	songs := bigDataset(5, "joy")
	rng := NewSeededRand(6)

	orders := map[string]bool{}
	for i := 0; i < 100; i++ {
		orders[fmt.Sprint(titles(Recommend(songs, "joy", DefaultLimit, rng)))] = true
	}
	assert.Greater(t, len(orders), 1)
}

func TestRecommend_Reproducible(t *testing.T) {
	songs := bigDataset(20, "joy", "sadness")

	a := Recommend(songs, "joy", DefaultLimit, NewSeededRand(42))
	b := Recommend(songs, "joy", DefaultLimit, NewSeededRand(42))

	assert.Equal(t, titles(a), titles(b))
}

func TestRecommend_DoesNotModifyInput(t *testing.T) {
	songs := bigDataset(8, "joy")
	before := titles(songs)

	_ = Recommend(songs, "joy", DefaultLimit, NewSeededRand(7))
	_ = Recommend(songs, "nope", DefaultLimit, NewSeededRand(7))

	assert.Equal(t, before, titles(songs))
}

func TestRecommend_Limit(t *testing.T) {
	songs := bigDataset(10, "joy")

	assert.Len(t, Recommend(songs, "joy", 3, NewSeededRand(8)), 3)
	assert.Len(t, Recommend(songs, "joy", 0, NewSeededRand(8)), DefaultLimit)
	assert.Len(t, Recommend(songs, "joy", 100, NewSeededRand(8)), 10)
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	assert.Empty(t, sample([]int{}, 5, rng))
	assert.ElementsMatch(t, []int{1, 2}, sample([]int{1, 2}, 5, rng))
	assert.Len(t, sample([]int{1, 2, 3, 4, 5, 6}, 5, rng), 5)
}

func TestNewRecommender(t *testing.T) {
	_, err := NewRecommender(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	songs := smallDataset()
	r, err := NewRecommender(songs, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())

	// the snapshot is a copy
	songs[0].Mood = "changed"
	assert.ElementsMatch(t, []string{"A", "B"}, titles(r.Recommend("joy", DefaultLimit)))
}

func TestRecommender_Concurrent(t *testing.T) {
	r, err := NewRecommender(bigDataset(10, "joy", "sadness"), NewSeededRand(9))
	require.NoError(t, err)

	done := make(chan []model.Song)
	for i := 0; i < 16; i++ {
		go func() { done <- r.Recommend("joy", DefaultLimit) }()
	}
	for i := 0; i < 16; i++ {
		got := <-done
		assert.Len(t, got, 5)
	}
}
