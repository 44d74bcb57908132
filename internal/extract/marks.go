package extract

import (
	"unicode/utf8"

	"github.com/Ateebshaikh21/Thinkora/internal/textrule"
)

var marksRules = textrule.Table[string, int]{
	{Name: "extended", When: textrule.Keywords("analyze", "evaluate", "compare and contrast", "discuss in detail", "critically examine", "justify", "assess", "elaborate"), Then: 15},
	{Name: "descriptive", When: textrule.Keywords("explain", "describe", "discuss", "compare", "differentiate", "illustrate", "demonstrate", "outline"), Then: 8},
	{Name: "procedural", When: textrule.Keywords("how", "why", "process", "method", "steps", "procedure"), Then: 5},
	{Name: "recall", When: textrule.Keywords("define", "what is", "meaning", "list", "name", "identify"), Then: 2},
}

// InferMarks estimates a question's mark-weight from its wording, falling
// back to its length when no keyword applies.
func InferMarks(text string) int {
	if m, ok := marksRules.Eval(text); ok {
		return m
	}
	switch n := utf8.RuneCountInString(text); {
	case n > 100:
		return 8
	case n > 50:
		return 5
	}
	return 2
}
