// Package textrule evaluates ordered (predicate, outcome) tables over text.
//
// The keyword heuristics used by extraction, classification and quiz
// synthesis are all priority lists: the first rule whose predicate holds
// decides the outcome. Keeping them as data makes the order auditable.
package textrule

import "strings"

// Rule pairs a predicate with the outcome it selects.
type Rule[I, O any] struct {
	Name string
	When func(I) bool
	Then O
}

// Table is a priority-ordered list of rules.
type Table[I, O any] []Rule[I, O]

// Eval returns the outcome of the first rule whose predicate holds.
func (t Table[I, O]) Eval(in I) (O, bool) {
	for _, r := range t {
		if r.When(in) {
			return r.Then, true
		}
	}
	var zero O
	return zero, false
}

// EvalOr is Eval with a default outcome when no rule applies.
func (t Table[I, O]) EvalOr(in I, def O) O {
	if out, ok := t.Eval(in); ok {
		return out
	}
	return def
}

// Match returns the name of the first matching rule, or "".
func (t Table[I, O]) Match(in I) string {
	for _, r := range t {
		if r.When(in) {
			return r.Name
		}
	}
	return ""
}

// Keywords returns a predicate reporting whether the lowercased text
// contains any of the given substrings. Keywords must be lowercase.
func Keywords(words ...string) func(string) bool {
	return func(text string) bool {
		return ContainsAny(strings.ToLower(text), words)
	}
}

// ContainsAny reports whether s contains any of subs.
func ContainsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Always is a predicate that always holds, for catch-all rules.
func Always[I any](I) bool { return true }
