// Package similarity scores lexical similarity between question texts.
//
// Texts are vectorized with TF-IDF over unigrams and bigrams, compared by
// cosine similarity, and grouped into clusters whose sizes stand in for how
// often a question recurs across documents.
package similarity

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultThreshold is the similarity above which two texts share a cluster.
const DefaultThreshold = 0.7

// MaxFeatures caps the vocabulary at the most frequent terms.
const MaxFeatures = 1000

// ErrEmptyVocabulary is reported when no term survives tokenization.
var ErrEmptyVocabulary = errors.New("empty vocabulary")

//go:embed stopwords.txt
var stopwordsRaw string

var stopWords = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, w := range strings.Fields(stopwordsRaw) {
		m[w] = struct{}{}
	}
	return m
}()

var (
	spaceRe   = regexp.MustCompile(`\s+`)
	specialRe = regexp.MustCompile(`[^\w\s\?]`)
	tokenRe   = regexp.MustCompile(`\b\w\w+\b`)
)

// IsStopWord reports whether w (lowercase) is an English stop word.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// Preprocess collapses whitespace and replaces everything except word
// characters, whitespace and question marks with spaces.
func Preprocess(text string) string {
	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
	return specialRe.ReplaceAllString(text, " ")
}

// terms returns the unigram and bigram terms of a preprocessed text.
func terms(text string) []string {
	var words []string
	for _, tok := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		if !IsStopWord(tok) {
			words = append(words, tok)
		}
	}
	out := make([]string, 0, 2*len(words))
	out = append(out, words...)
	for i := 0; i+1 < len(words); i++ {
		out = append(out, words[i]+" "+words[i+1])
	}
	return out
}

// Vectorize returns L2-normalized TF-IDF rows, one per text, over a shared
// vocabulary of at most MaxFeatures terms.
func Vectorize(texts []string) ([][]float64, error) {
	docs := make([]map[string]int, len(texts))
	corpus := make(map[string]int)
	df := make(map[string]int)
	for i, t := range texts {
		counts := make(map[string]int)
		for _, term := range terms(Preprocess(t)) {
			counts[term]++
		}
		for term, c := range counts {
			corpus[term] += c
			df[term]++
		}
		docs[i] = counts
	}
	if len(corpus) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocab := make([]string, 0, len(corpus))
	for term := range corpus {
		vocab = append(vocab, term)
	}
	sort.Slice(vocab, func(i, j int) bool {
		if corpus[vocab[i]] != corpus[vocab[j]] {
			return corpus[vocab[i]] > corpus[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if len(vocab) > MaxFeatures {
		vocab = vocab[:MaxFeatures]
	}
	sort.Strings(vocab)

	n := float64(len(texts))
	rows := make([][]float64, len(texts))
	for i, counts := range docs {
		row := make([]float64, len(vocab))
		var norm float64
		for k, term := range vocab {
			c := counts[term]
			if c == 0 {
				continue
			}
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1
			row[k] = float64(c) * idf
			norm += row[k] * row[k]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for k := range row {
				row[k] /= norm
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// Score returns the pairwise cosine similarity matrix of texts. The matrix
// is symmetric with a unit diagonal and values in [0,1]. Batches smaller
// than two yield [[1.0]]. When vectorization fails the identity matrix is
// returned together with the error, which callers may treat as recoverable.
func Score(texts []string) ([][]float64, error) {
	if len(texts) < 2 {
		return [][]float64{{1.0}}, nil
	}
	rows, err := Vectorize(texts)
	if err != nil {
		return Identity(len(texts)), fmt.Errorf("vectorize %d texts: %w", len(texts), err)
	}

	m := make([][]float64, len(texts))
	for i := range m {
		m[i] = make([]float64, len(texts))
		m[i][i] = 1.0
	}
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			v := clamp(dot(rows[i], rows[j]))
			m[i][j] = v
			m[j][i] = v
		}
	}
	return m, nil
}

// Matrix is Score with the failure logged instead of returned.
func Matrix(texts []string) [][]float64 {
	m, err := Score(texts)
	if err != nil {
		slog.Warn("similarity fallback to identity", "texts", len(texts), "error", err)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1.0
	}
	return m
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
