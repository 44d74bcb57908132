package quizgen

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ateebshaikh21/Thinkora/internal/model"
)

const sampleContent = `Machine Learning is a field of study that gives computers the ability to learn.
What is overfitting?
Overfitting happens when a model memorizes noise in the training data.
Supervised learning uses labelled data (input-output pairs) to train a model.
The "bias" of a model can increase when it is too simple.
1. Collect data. 2. Train the model. 3. Evaluate accuracy.`

func sampleQuestions() []model.ClassifiedQuestion {
	return []model.ClassifiedQuestion{
		{
			QuestionRecord: model.QuestionRecord{Text: "What is overfitting?", Marks: 5},
			Topic:          "overfitting",
			Difficulty:     model.DifficultyMedium,
			MarksWeightage: 5,
		},
		{
			QuestionRecord: model.QuestionRecord{Text: "Define supervised learning."},
			Difficulty:     model.DifficultyEasy,
		},
	}
}

func assertValidItem(t *testing.T, item model.QuizItem) {
	t.Helper()
	require.NotEmpty(t, item.Options)
	assert.GreaterOrEqual(t, item.CorrectIndex, 0)
	assert.Less(t, item.CorrectIndex, len(item.Options))
	seen := map[string]bool{}
	for _, o := range item.Options {
		assert.False(t, seen[o], "duplicate option %q", o)
		seen[o] = true
	}
	assert.NotEmpty(t, item.ID)
}

func TestFindAnswer(t *testing.T) {
	tests := []struct {
		name     string
		question string
		concept  string
		want     string
	}{
		{"answer follows question", "What is overfitting?", "", "Overfitting happens when a model memorizes noise in the training data."},
		{"term definition", "What is Machine Learning?", "", "A field of study that gives computers the ability to learn"},
		{"concept sentence", "Which of the following best describes bias?", "bias", `The "bias" of a model can increase when it is too simple`},
		{"term fallback", "Define supervised learning.", "", "The definition of supervised learning as described in the material"},
		{"concept fallback", "Explain gizmos", "Gizmo", "A key concept related to Gizmo in the subject matter"},
		{"generic fallback", "Explain gizmos", "", "The answer based on the provided content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindAnswer(tt.question, sampleContent, tt.concept))
		})
	}
}

func TestExtractMaterial(t *testing.T) {
	m := ExtractMaterial(sampleContent)

	assert.Len(t, m.Concepts, 10)
	assert.Equal(t, "Machine Learning", m.Concepts[0])
	assert.Contains(t, m.Concepts, "input-output pairs")
	assert.Contains(t, m.Concepts, "bias")

	assert.Equal(t, []string{
		"Machine Learning is a field of study that gives computers the ability to learn",
		`The "bias" of a model can increase when it is too simple`,
	}, m.Facts)

	assert.Equal(t, []string{"the process described in steps"}, m.Processes)
}

func TestDomainTerms(t *testing.T) {
	assert.Equal(t,
		[]string{"model", "training", "machine", "learning", "data", "supervised", "accuracy"},
		DomainTerms(sampleContent))
	assert.Empty(t, DomainTerms("The cat sat on the mat."))
}

func TestSynthesizeReusesQuestions(t *testing.T) {
	s := NewSeeded(7)
	items := s.Synthesize(sampleContent, sampleQuestions(), 2)
	require.Len(t, items, 2)

	first := items[0]
	assertValidItem(t, first)
	assert.Len(t, first.Options, 4)
	assert.Equal(t, "What is overfitting?", first.Text)
	assert.Equal(t, model.QuizMultipleChoice, first.Type)
	assert.Equal(t, 5, first.Marks)
	assert.Equal(t, "overfitting", first.Topic)
	assert.Equal(t, "medium", first.Difficulty)
	assert.Equal(t, "Overfitting happens when a model memorizes noise in the training data.", first.CorrectOption())
	assert.True(t, strings.HasSuffix(first.Explanation, first.CorrectOption()))

	second := items[1]
	assertValidItem(t, second)
	assert.Equal(t, 1, second.Marks)
	assert.Equal(t, "General", second.Topic)
	assert.Equal(t, "easy", second.Difficulty)
}

func TestSynthesizeGeneratesFromConcepts(t *testing.T) {
	s := NewSeeded(11)
	items := s.Synthesize(sampleContent, sampleQuestions(), 8)
	require.Len(t, items, 8)
	concepts := Concepts(sampleContent)
	for _, item := range items[2:] {
		assertValidItem(t, item)
		assert.Len(t, item.Options, 4)
		assert.Equal(t, 1, item.Marks)
		assert.Equal(t, "medium", item.Difficulty)
		assert.Contains(t, concepts, item.Topic)
		assert.Contains(t, item.Text, item.Topic)
	}
}

func TestSynthesizeWithoutConceptsReturnsFewer(t *testing.T) {
	items := NewSeeded(1).Synthesize("no capitals here at all", sampleQuestions()[:1], 5)
	assert.Len(t, items, 1)
	assert.Empty(t, NewSeeded(1).Synthesize("", nil, 3))
}

func TestSynthesizeDeterministic(t *testing.T) {
	a := NewSeeded(99).Synthesize(sampleContent, sampleQuestions(), 6)
	b := NewSeeded(99).Synthesize(sampleContent, sampleQuestions(), 6)
	assert.Equal(t, a, b)

	c := New(rand.New(rand.NewPCG(1, 2))).Synthesize(sampleContent, sampleQuestions(), 6)
	d := New(rand.New(rand.NewPCG(1, 2))).Synthesize(sampleContent, sampleQuestions(), 6)
	assert.Equal(t, c, d)
}

func TestDistractorKinds(t *testing.T) {
	tests := []struct {
		question string
		want     questionKind
	}{
		{"What is a stack?", kindDefinition},
		{"How does TCP work?", kindProcess},
		{"When would you use a heap?", kindApplication},
		{"Why do we normalize tables?", kindWhy},
		{"Name the layers of the OSI model", kindGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, kindRules.EvalOr(tt.question, kindGeneric))
		})
	}
}

func TestDistractorsUseFixedTemplates(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		s := NewSeeded(seed)
		got := s.distractors("Why do we normalize tables?", "", nil, "To remove redundancy")
		require.Len(t, got, 3)
		for i, d := range got {
			base := fixedDistractors[kindWhy][i]
			if d != base {
				parts := strings.SplitN(d, " ", 2)
				require.Len(t, parts, 2)
				assert.Contains(t, qualifiers, strings.ToLower(parts[0]))
				assert.Equal(t, strings.ToLower(base), parts[1])
			}
		}
	}
}

func TestDefinitionDistractorsUseOtherConcepts(t *testing.T) {
	s := New(rand.New(rand.NewPCG(3, 4)))
	got := s.distractors("What is Gradient?", "", []string{"Gradient", "Entropy"}, "Gradient is a slope")
	require.Len(t, got, 3)
	for _, d := range got {
		assert.Contains(t, d, "entropy")
	}
}

func TestFalsify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Water is wet", "Water is not wet"},
		{"Birds can fly", "Birds cannot fly"},
		{"Models will converge", "Models will not converge"},
		{"This always works", "This never works"},
		{"Prices increase yearly", "Prices decrease yearly"},
		{"It is what it is", "It is not what it is"},
		{"Nothing here", "Nothing here"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Falsify(tt.in))
		})
	}
}

func TestTrueFalse(t *testing.T) {
	sawTrue, sawFalse := false, false
	for seed := uint64(0); seed < 40; seed++ {
		item := NewSeeded(seed).TrueFalse("Water is wet")
		assertValidItem(t, item)
		assert.Equal(t, []string{"True", "False"}, item.Options)
		assert.Equal(t, model.QuizTrueFalse, item.Type)
		assert.Equal(t, "easy", item.Difficulty)
		switch item.CorrectIndex {
		case 0:
			sawTrue = true
			assert.Equal(t, "True or False: Water is wet", item.Text)
			assert.Equal(t, "This statement is true based on the content.", item.Explanation)
		case 1:
			sawFalse = true
			assert.Equal(t, "True or False: Water is not wet", item.Text)
			assert.Equal(t, "This statement is false based on the content.", item.Explanation)
		}
	}
	assert.True(t, sawTrue)
	assert.True(t, sawFalse)

	for seed := uint64(0); seed < 10; seed++ {
		item := NewSeeded(seed).TrueFalse("Nothing here")
		assert.Equal(t, 0, item.CorrectIndex)
	}
}

func TestSynthesizeTrueFalse(t *testing.T) {
	items := NewSeeded(5).SynthesizeTrueFalse(sampleContent, 5)
	assert.Len(t, items, 2)
	items = NewSeeded(5).SynthesizeTrueFalse(sampleContent, 1)
	assert.Len(t, items, 1)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Hello World", Capitalize("hello World"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Éclair", Capitalize("éclair"))
}

func TestBuild(t *testing.T) {
	_, err := Build(sampleContent, sampleQuestions(), 10, 0, 1)
	assert.ErrorIs(t, err, ErrNotEnoughQuestions)

	a, err := Build(sampleContent, sampleQuestions(), 2, 1, 42)
	require.NoError(t, err)
	b, err := Build(sampleContent, sampleQuestions(), 2, 1, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	require.Len(t, a, 3)
	assert.Equal(t, model.QuizMultipleChoice, a[0].Type)
	assert.Equal(t, model.QuizTrueFalse, a[2].Type)
}

func TestSynthesizeNonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -1, -50} {
		s := NewSeeded(1)
		assert.Empty(t, s.Synthesize(sampleContent, sampleQuestions(), n), "count %d", n)
		assert.Empty(t, s.SynthesizeTrueFalse(sampleContent, n), "true/false %d", n)
	}
}

func TestBuildRejectsNegativeCounts(t *testing.T) {
	_, err := Build(sampleContent, sampleQuestions(), -1, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidCount)
	_, err = Build(sampleContent, sampleQuestions(), 1, -2, 1)
	assert.ErrorIs(t, err, ErrInvalidCount)

	items, err := Build(sampleContent, sampleQuestions(), 0, 0, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
