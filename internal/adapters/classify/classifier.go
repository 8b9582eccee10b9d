package classify

import (
	"fmt"
	"math"
	"strings"
)

// Classifier categorizes support tickets with TF-IDF vectors and cosine
// similarity against per-category centroids. It is a heuristic stand-in
// for a trained model; Probability is normalized across categories and
// Score is the raw similarity to the winning centroid.
type Classifier struct {
	categories []string
	idf        map[string]float64
	centroids  map[string]map[string]float64
}

type Sample struct {
	Text     string
	Category string
}

type Prediction struct {
	Category    string
	Probability float64
	Score       float64
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "but": true,
	"can": true, "do": true, "for": true, "get": true, "how": true,
	"i": true, "is": true, "it": true, "my": true, "not": true,
	"of": true, "on": true, "the": true, "to": true, "was": true,
	"what": true, "when": true, "why": true, "you": true,
}

// NewClassifier trains on the given samples.
func NewClassifier(samples []Sample) (*Classifier, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no training samples")
	}

	docs := make([][]string, len(samples))
	df := map[string]int{}
	for i, s := range samples {
		docs[i] = tokenize(s.Text)
		seen := map[string]bool{}
		for _, t := range docs[i] {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	idf := make(map[string]float64, len(df))
	n := float64(len(samples))
	for t, d := range df {
		idf[t] = math.Log((1+n)/(1+float64(d))) + 1
	}

	centroids := map[string]map[string]float64{}
	counts := map[string]int{}
	var categories []string
	for i, s := range samples {
		vec := vectorize(docs[i], idf)
		if _, ok := centroids[s.Category]; !ok {
			centroids[s.Category] = map[string]float64{}
			categories = append(categories, s.Category)
		}
		for t, w := range vec {
			centroids[s.Category][t] += w
		}
		counts[s.Category]++
	}
	for cat, centroid := range centroids {
		for t := range centroid {
			centroid[t] /= float64(counts[cat])
		}
	}

	return &Classifier{
		categories: categories,
		idf:        idf,
		centroids:  centroids,
	}, nil
}

// NewDefaultClassifier trains on the built-in support ticket dataset.
func NewDefaultClassifier() *Classifier {
	c, err := NewClassifier(defaultTrainingSet)
	if err != nil {
		// The built-in set is non-empty, so this cannot happen.
		panic(err)
	}
	return c
}

// Predict classifies a ticket text. Empty input is an error.
func (c *Classifier) Predict(text string) (*Prediction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("input text cannot be empty")
	}

	vec := vectorize(tokenize(text), c.idf)

	best := ""
	bestScore := 0.0
	total := 0.0
	for _, cat := range c.categories {
		score := cosine(vec, c.centroids[cat])
		if score > 0 {
			total += score
		}
		if score > bestScore {
			bestScore = score
			best = cat
		}
	}

	if best == "" {
		// Nothing in common with any category; report the first one with
		// zero confidence rather than failing.
		best = c.categories[0]
	}

	probability := 0.0
	if total > 0 {
		probability = bestScore / total
	}

	return &Prediction{
		Category:    best,
		Probability: probability,
		Score:       bestScore,
	}, nil
}

// Categories returns the known categories in training order.
func (c *Classifier) Categories() []string {
	return append([]string(nil), c.categories...)
}

// tokenize lowercases, splits on non-letters, drops stopwords and adds
// bigrams.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})

	var unigrams []string
	for _, f := range fields {
		if !stopwords[f] {
			unigrams = append(unigrams, f)
		}
	}

	tokens := append([]string(nil), unigrams...)
	for i := 0; i+1 < len(unigrams); i++ {
		tokens = append(tokens, unigrams[i]+" "+unigrams[i+1])
	}
	return tokens
}

func vectorize(tokens []string, idf map[string]float64) map[string]float64 {
	tf := map[string]float64{}
	for _, t := range tokens {
		tf[t]++
	}

	vec := map[string]float64{}
	for t, f := range tf {
		w, ok := idf[t]
		if !ok {
			continue
		}
		vec[t] = f * w
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	var dot, na, nb float64
	for t, w := range a {
		na += w * w
		if bw, ok := b[t]; ok {
			dot += w * bw
		}
	}
	for _, w := range b {
		nb += w * w
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
