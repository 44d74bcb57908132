package quizgen

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxCapitalized = 10
	maxConcepts    = 20
	maxFacts       = 15
	maxProcesses   = 5
	maxDomainTerms = 10
)

var (
	capitalizedRe   = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	parentheticalRe = regexp.MustCompile(`\(([^)]+)\)`)
	quotedRe        = regexp.MustCompile(`"([^"]+)"`)
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	factVerbRe      = regexp.MustCompile(`(?i)\b(?:is|are|can|will|does|has|have)\b`)
	numberedStepRe  = regexp.MustCompile(`\d+\.\s*([^.]+)`)
)

var processKeywords = []string{"algorithm", "method", "procedure", "process", "workflow", "steps"}

var domainTermPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:algorithm|model|training|prediction|classification|regression)\b`),
	regexp.MustCompile(`(?i)\b(?:neural|network|deep|learning|machine|artificial)\b`),
	regexp.MustCompile(`(?i)\b(?:data|dataset|feature|parameter|optimization|gradient)\b`),
	regexp.MustCompile(`(?i)\b(?:clustering|supervised|unsupervised|reinforcement)\b`),
	regexp.MustCompile(`(?i)\b(?:accuracy|precision|recall|validation|testing)\b`),
}

// Material is the supporting vocabulary mined from source content.
type Material struct {
	Concepts  []string `json:"concepts"`
	Facts     []string `json:"facts"`
	Processes []string `json:"processes"`
}

// ExtractMaterial mines concepts, factual sentences and process hints from content.
func ExtractMaterial(content string) Material {
	return Material{
		Concepts:  Concepts(content),
		Facts:     Facts(content),
		Processes: Processes(content),
	}
}

// Concepts returns capitalized terms, short parenthetical phrases and short
// quoted phrases, unique and in order of discovery.
func Concepts(content string) []string {
	var raw []string
	caps := capitalizedRe.FindAllString(content, -1)
	if len(caps) > maxCapitalized {
		caps = caps[:maxCapitalized]
	}
	raw = append(raw, caps...)
	for _, m := range parentheticalRe.FindAllStringSubmatch(content, -1) {
		if p := strings.TrimSpace(m[1]); utf8.RuneCountInString(p) < 50 {
			raw = append(raw, p)
		}
	}
	for _, m := range quotedRe.FindAllStringSubmatch(content, -1) {
		if q := strings.TrimSpace(m[1]); utf8.RuneCountInString(q) < 30 {
			raw = append(raw, q)
		}
	}

	seen := make(map[string]bool)
	var out []string
	for _, c := range raw {
		n := utf8.RuneCountInString(c)
		if seen[c] || n <= 2 || n >= 50 {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) == maxConcepts {
			break
		}
	}
	return out
}

// Facts returns sentences of moderate length built around a copula or modal verb.
func Facts(content string) []string {
	var out []string
	for _, s := range sentences(content) {
		if factVerbRe.MatchString(s) {
			out = append(out, s)
			if len(out) == maxFacts {
				break
			}
		}
	}
	return out
}

// sentences returns trimmed sentences whose length is strictly between 20 and 200.
func sentences(content string) []string {
	var out []string
	for _, s := range sentenceSplitRe.Split(content, -1) {
		s = strings.TrimSpace(s)
		if n := utf8.RuneCountInString(s); n > 20 && n < 200 {
			out = append(out, s)
		}
	}
	return out
}

// Processes reports numbered step blocks and the process keywords content mentions.
func Processes(content string) []string {
	var out []string
	if len(numberedStepRe.FindAllString(content, -1)) > 2 {
		out = append(out, "the process described in steps")
	}
	lower := strings.ToLower(content)
	for _, kw := range processKeywords {
		if strings.Contains(lower, kw) {
			out = append(out, kw)
		}
	}
	if len(out) > maxProcesses {
		out = out[:maxProcesses]
	}
	return out
}

// DomainTerms returns technical vocabulary found in content, lowercased,
// unique in order of discovery.
func DomainTerms(content string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, re := range domainTermPatterns {
		for _, m := range re.FindAllString(content, -1) {
			m = strings.ToLower(m)
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
			if len(out) == maxDomainTerms {
				return out
			}
		}
	}
	return out
}
