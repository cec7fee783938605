package similarity

import (
	"math"
	"sort"
)

// minDocsForMaxDF is the corpus size below which the max-df cut is skipped; in a
// handful of documents every shared word looks ubiquitous.
const minDocsForMaxDF = 10

// Options bound the vocabulary.
type Options struct {
	// MaxFeatures keeps the most frequent terms; 0 means unlimited.
	MaxFeatures int `json:"max_features"`
	// MaxDF drops terms present in more than this fraction of documents; 1 disables it.
	MaxDF float64 `json:"max_df"`
}

// DefaultOptions keeps 500 terms and drops terms found in over 80% of documents.
func DefaultOptions() Options {
	return Options{MaxFeatures: 500, MaxDF: 0.8}
}

// Vector is a sparse, L2-normalized TF-IDF vector keyed by term.
type Vector map[string]float64

// Vectorizer holds a fitted vocabulary and its smoothed inverse document frequencies.
type Vectorizer struct {
	idf map[string]float64
}

// Fit learns the vocabulary of docs, each given as its term list.
// IDF is ln((1+n)/(1+df)) + 1.
func Fit(docs [][]string, opts Options) *Vectorizer {
	n := len(docs)
	df := make(map[string]int)
	tf := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			tf[term]++
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for term, count := range df {
		if opts.MaxDF > 0 && opts.MaxDF < 1 && n >= minDocsForMaxDF && float64(count)/float64(n) > opts.MaxDF {
			continue
		}
		vocab = append(vocab, term)
	}

	if opts.MaxFeatures > 0 && len(vocab) > opts.MaxFeatures {
		sort.Slice(vocab, func(i, j int) bool {
			if tf[vocab[i]] != tf[vocab[j]] {
				return tf[vocab[i]] > tf[vocab[j]]
			}
			return vocab[i] < vocab[j]
		})
		vocab = vocab[:opts.MaxFeatures]
	}

	idf := make(map[string]float64, len(vocab))
	for _, term := range vocab {
		idf[term] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}
	return &Vectorizer{idf: idf}
}

// VocabularySize returns the number of terms kept.
func (v *Vectorizer) VocabularySize() int {
	return len(v.idf)
}

// Transform weights raw term counts by IDF and L2-normalizes the result.
// Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(terms []string) Vector {
	vec := make(Vector)
	for _, term := range terms {
		if idf, ok := v.idf[term]; ok {
			vec[term] += idf
		}
	}
	var norm float64
	for _, term := range vec.terms() {
		norm += vec[term] * vec[term]
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

// terms returns the vector's terms sorted, so float sums are evaluated in a
// fixed order.
func (v Vector) terms() []string {
	terms := make([]string, 0, len(v))
	for term := range v {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Cosine returns the cosine similarity of two normalized vectors, clamped to [0,1].
func Cosine(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for _, term := range a.terms() {
		dot += a[term] * b[term]
	}
	switch {
	case math.IsNaN(dot) || dot < 0:
		return 0
	case dot > 1:
		return 1
	default:
		return dot
	}
}
