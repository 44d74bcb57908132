// Package quizgen turns study questions and source content into
// multiple-choice and true/false quiz items.
//
// All randomness (concept and template choice, qualifiers, option order,
// item IDs) comes from the *rand.Rand given to New, so a seeded source
// reproduces the same quiz.
package quizgen

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ateebshaikh21/Thinkora/internal/model"
)

const optionCount = 4

var questionTemplates = map[string][]string{
	"definition": {
		"What is %s?",
		"Define %s.",
		"Which of the following best describes %s?",
		"%s refers to:",
		"The term %s means:",
	},
	"function": {
		"What is the primary function of %s?",
		"What does %s do?",
		"The main purpose of %s is to:",
		"%s is used for:",
		"Which of the following is the main function of %s?",
	},
	"application": {
		"When would you use %s?",
		"In which scenario is %s most appropriate?",
		"%s is best applied when:",
		"A practical application of %s is:",
		"You would use %s in which situation?",
	},
}

var templateFamilies = []string{"definition", "function", "application"}

// Synthesizer builds quiz items. It is not safe for concurrent use because
// it draws from a single random source.
type Synthesizer struct {
	rng *rand.Rand
}

// New returns a Synthesizer drawing from rng. A nil rng is replaced by a
// time-seeded source.
func New(rng *rand.Rand) *Synthesizer {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>1|1))
	}
	return &Synthesizer{rng: rng}
}

// NewSeeded returns a Synthesizer with a deterministic source.
func NewSeeded(seed uint64) *Synthesizer {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Synthesize returns up to count multiple-choice items. The first items
// reuse the given questions in order; the rest are generated from concepts
// found in content. When content yields no concepts, generated slots are
// skipped and fewer than count items are returned. A count below one
// yields no items.
func (s *Synthesizer) Synthesize(content string, questions []model.ClassifiedQuestion, count int) []model.QuizItem {
	count = max(count, 0)
	concepts := Concepts(content)
	items := make([]model.QuizItem, 0, count)
	for i := 0; i < count; i++ {
		if i < len(questions) {
			items = append(items, s.fromQuestion(questions[i], content, concepts))
			continue
		}
		if item, ok := s.generate(content, concepts); ok {
			items = append(items, item)
		}
	}
	return items
}

func (s *Synthesizer) fromQuestion(q model.ClassifiedQuestion, content string, concepts []string) model.QuizItem {
	options, correct := s.options(q.Text, content, concepts, "")
	marks := q.MarksWeightage
	if marks == 0 {
		marks = 1
	}
	topic := q.Topic
	if topic == "" {
		topic = "General"
	}
	difficulty := strings.ToLower(string(q.Difficulty))
	if difficulty == "" {
		difficulty = "medium"
	}
	return model.QuizItem{
		ID:           s.newID(),
		Text:         q.Text,
		Type:         model.QuizMultipleChoice,
		Options:      options,
		CorrectIndex: correct,
		Explanation:  "This is the correct answer because it accurately describes the concept as presented in the source material. " + options[correct],
		Marks:        marks,
		Topic:        topic,
		Difficulty:   difficulty,
	}
}

func (s *Synthesizer) generate(content string, concepts []string) (model.QuizItem, bool) {
	if len(concepts) == 0 {
		return model.QuizItem{}, false
	}
	concept := s.pick(concepts)
	family := templateFamilies[s.rng.IntN(len(templateFamilies))]
	text := fmt.Sprintf(s.pick(questionTemplates[family]), concept)

	options, correct := s.options(text, content, concepts, concept)
	return model.QuizItem{
		ID:           s.newID(),
		Text:         text,
		Type:         model.QuizMultipleChoice,
		Options:      options,
		CorrectIndex: correct,
		Explanation:  fmt.Sprintf("The correct answer relates to %s as described in the content.", concept),
		Marks:        1,
		Topic:        concept,
		Difficulty:   "medium",
	}, true
}

// options assembles the correct answer and distractors into a shuffled,
// duplicate-free list and returns the index of the correct answer.
func (s *Synthesizer) options(question, content string, concepts []string, concept string) ([]string, int) {
	correct := FindAnswer(question, content, concept)
	candidates := append([]string{correct}, s.distractors(question, content, concepts, correct)...)

	seen := make(map[string]bool, optionCount)
	options := make([]string, 0, optionCount)
	add := func(o string) {
		if len(options) < optionCount && !seen[o] {
			seen[o] = true
			options = append(options, o)
		}
	}
	for _, c := range candidates {
		add(c)
	}
	for _, r := range reserveDistractors {
		add(r)
	}

	s.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	for i, o := range options {
		if o == correct {
			return options, i
		}
	}
	return options, 0
}

func (s *Synthesizer) newID() string {
	id, err := uuid.NewRandomFromReader(rngReader{s.rng})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// rngReader adapts a rand.Rand to io.Reader so item IDs follow the seed.
type rngReader struct{ r *rand.Rand }

func (rr rngReader) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(buf[:], rr.r.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}
