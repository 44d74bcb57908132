package quizgen

import (
	"fmt"
	"strings"

	"github.com/Ateebshaikh21/Thinkora/internal/textrule"
)

// questionKind selects the distractor family for a question.
type questionKind string

const (
	kindDefinition  questionKind = "definition"
	kindProcess     questionKind = "process"
	kindApplication questionKind = "application"
	kindWhy         questionKind = "why"
	kindGeneric     questionKind = "generic"
)

var kindRules = textrule.Table[string, questionKind]{
	{Name: "definition", When: textrule.Keywords("what is", "define"), Then: kindDefinition},
	{Name: "process", When: textrule.Keywords("how", "process"), Then: kindProcess},
	{Name: "application", When: textrule.Keywords("when", "where"), Then: kindApplication},
	{Name: "why", When: textrule.Keywords("why"), Then: kindWhy},
}

var fixedDistractors = map[questionKind][]string{
	kindDefinition: {
		"A process that involves data transformation and analysis",
		"A technique used for system optimization and performance",
		"A method that combines statistical analysis with computational algorithms",
	},
	kindProcess: {
		"By implementing recursive algorithms with dynamic programming",
		"Through iterative refinement using gradient descent methods",
		"Via ensemble methods combining multiple prediction models",
	},
	kindApplication: {
		"When working with high-dimensional feature spaces",
		"In scenarios involving real-time data streaming",
		"During cross-validation and model selection phases",
	},
	kindWhy: {
		"To reduce computational complexity and improve efficiency",
		"To handle overfitting and improve model generalization",
		"To optimize memory usage and processing speed",
	},
	kindGeneric: {
		"An approach that utilizes advanced algorithms for enhanced performance",
		"A framework designed for large-scale data processing applications",
		"A methodology that incorporates machine learning principles",
	},
}

// reserveDistractors tops up option lists that lost entries to deduplication.
var reserveDistractors = func() []string {
	var out []string
	for _, k := range []questionKind{kindDefinition, kindProcess, kindApplication, kindWhy, kindGeneric} {
		out = append(out, fixedDistractors[k]...)
	}
	return out
}()

var qualifiers = []string{"primarily", "mainly", "specifically", "generally", "typically"}

// distractors returns three plausible wrong answers for question.
func (s *Synthesizer) distractors(question, content string, concepts []string, correct string) []string {
	kind := kindRules.EvalOr(question, kindGeneric)

	var out []string
	switch kind {
	case kindDefinition:
		lowerCorrect := strings.ToLower(correct)
		var others []string
		for _, c := range concepts {
			if !strings.Contains(lowerCorrect, strings.ToLower(c)) {
				others = append(others, c)
			}
		}
		if len(others) > 0 {
			out = []string{
				fmt.Sprintf("A process that involves %s and data analysis", strings.ToLower(s.pick(others))),
				fmt.Sprintf("A technique used for %s optimization", strings.ToLower(s.pick(others))),
				fmt.Sprintf("A method that combines %s with statistical analysis", strings.ToLower(s.pick(others))),
			}
		}
	case kindGeneric:
		if terms := DomainTerms(content); len(terms) > 0 {
			out = []string{
				fmt.Sprintf("An approach that utilizes %s for enhanced performance", s.pick(terms)),
				fmt.Sprintf("A framework designed for %s applications", s.pick(terms)),
				fmt.Sprintf("A methodology that incorporates %s principles", s.pick(terms)),
			}
		}
	}
	if out == nil {
		out = append([]string(nil), fixedDistractors[kind]...)
	}

	for i, d := range out {
		if s.rng.Float64() < 0.3 {
			out[i] = Capitalize(s.pick(qualifiers)) + " " + strings.ToLower(d)
		}
	}
	return out
}

func (s *Synthesizer) pick(from []string) string {
	return from[s.rng.IntN(len(from))]
}
