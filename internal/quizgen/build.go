package quizgen

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Ateebshaikh21/Thinkora/internal/model"
)

var (
	// ErrNotEnoughQuestions is returned when a pool is smaller than the requested quiz.
	ErrNotEnoughQuestions = errors.New("not enough questions")
	// ErrInvalidCount is returned for a negative item count.
	ErrInvalidCount = errors.New("item counts must not be negative")
)

// Build shuffles pool with a source seeded by seed and synthesizes count
// multiple-choice items followed by up to trueFalse true/false items.
// pool is shuffled in place.
func Build(content string, pool []model.ClassifiedQuestion, count, trueFalse int, seed uint64) ([]model.QuizItem, error) {
	if count < 0 || trueFalse < 0 {
		return nil, fmt.Errorf("count %d, true/false %d: %w", count, trueFalse, ErrInvalidCount)
	}
	if len(pool) < count {
		return nil, fmt.Errorf("have %d, need %d: %w", len(pool), count, ErrNotEnoughQuestions)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x5bd1e995))
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	s := New(rng)
	items := s.Synthesize(content, pool, count)
	if trueFalse > 0 {
		items = append(items, s.SynthesizeTrueFalse(content, trueFalse)...)
	}
	return items, nil
}
