package service

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"rfp-similarity/internal/domain"
)

// Tokens are runs of two or more letters, digits or underscores.
var reToken = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// TFIDFScorer computes the cosine similarity of two documents using TF-IDF
// weights fit on exactly those two documents.
type TFIDFScorer struct {
	stopWords map[string]struct{}
}

// ScorerOption configures a TFIDFScorer
type ScorerOption func(*TFIDFScorer)

// WithStopWords removes the given words (case-insensitive) before weighting
func WithStopWords(words []string) ScorerOption {
	return func(s *TFIDFScorer) {
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				s.stopWords[w] = struct{}{}
			}
		}
	}
}

// NewTFIDFScorer creates a scorer. Without options no stop words are removed.
func NewTFIDFScorer(opts ...ScorerOption) *TFIDFScorer {
	s := &TFIDFScorer{stopWords: make(map[string]struct{})}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the similarity of candidate and reference as a percentage
// rounded to two decimals. A document without tokens scores 0.
func (s *TFIDFScorer) Score(candidate, reference string) (float64, error) {
	vectors, err := s.fitTransform(candidate, reference)
	if errors.Is(err, domain.ErrEmptyVocabulary) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return toPercentage(cosineSimilarity(vectors[0], vectors[1])), nil
}

// Tokenize lowercases text and splits it into terms, dropping stop words
func (s *TFIDFScorer) Tokenize(text string) []string {
	tokens := reToken.FindAllString(strings.ToLower(text), -1)
	if len(s.stopWords) == 0 {
		return tokens
	}
	out := tokens[:0]
	for _, tok := range tokens {
		if _, stop := s.stopWords[tok]; !stop {
			out = append(out, tok)
		}
	}
	return out
}

// fitTransform builds the vocabulary and IDF weights from docs and returns
// one L2-normalised TF-IDF vector per document. Vocabulary order is sorted
// so the arithmetic is deterministic.
func (s *TFIDFScorer) fitTransform(docs ...string) ([][]float64, error) {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, tok := range s.Tokenize(doc) {
			counts[i][tok]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, domain.ErrEmptyVocabulary
	}

	vocabulary := make([]string, 0, len(df))
	for term := range df {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	// smoothed idf: ln((1+n)/(1+df)) + 1
	n := float64(len(docs))
	idf := make([]float64, len(vocabulary))
	for j, term := range vocabulary {
		idf[j] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i := range docs {
		vec := make([]float64, len(vocabulary))
		for j, term := range vocabulary {
			vec[j] = float64(counts[i][term]) * idf[j]
		}
		vectors[i] = normalize(vec)
	}
	return vectors, nil
}

func normalize(vec []float64) []float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// toPercentage scales a cosine to [0, 100] with two decimals
func toPercentage(similarity float64) float64 {
	pct := roundTwoDecimals(similarity * 100)
	return math.Min(math.Max(pct, 0), 100)
}

// roundTwoDecimals rounds against the exact binary value, so 2.675
// (stored as 2.67499...) becomes 2.67 and exact ties go to even.
func roundTwoDecimals(x float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return rounded
}
