// Package textfeat turns review text into a tf-idf feature vector.
//
// The vectorizer is loaded from a JSON artifact exported from the training pipeline:
//
//	{
//	  "vocabulary":   {"great": 0, "great product": 1, ...},
//	  "idf":          [1.42, 2.17, ...],
//	  "ngram_range":  [1, 2],
//	  "sublinear_tf": true,
//	  "lowercase":    true,
//	  "stop_words":   ["the", "a"]
//	}
//
// Text is NFKC normalized and case folded before tokenizing. Tokens are runs of two or more
// letters, digits or underscores. The output is L2 normalized.
package textfeat

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Artifact is the serialized vectorizer
type Artifact struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	NgramRange  [2]int         `json:"ngram_range"`
	SublinearTF bool           `json:"sublinear_tf"`
	Lowercase   *bool          `json:"lowercase,omitempty"`
	StopWords   []string       `json:"stop_words,omitempty"`
}

// Vectorizer is immutable after construction and safe for concurrent use
type Vectorizer struct {
	vocab     map[string]int
	idf       []float64
	minN      int
	maxN      int
	sublinear bool
	fold      bool
	stop      map[string]struct{}
}

// Load reads a JSON artifact from path
func Load(path string) (*Vectorizer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("textfeat: read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("textfeat: decode artifact: %w", err)
	}
	return New(a)
}

// New validates a and builds a Vectorizer
func New(a Artifact) (*Vectorizer, error) {
	if len(a.Vocabulary) == 0 {
		return nil, fmt.Errorf("textfeat: empty vocabulary")
	}
	if len(a.IDF) != len(a.Vocabulary) {
		return nil, fmt.Errorf("textfeat: idf has %d weights for %d terms", len(a.IDF), len(a.Vocabulary))
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= len(a.IDF) {
			return nil, fmt.Errorf("textfeat: term %q has index %d out of range", term, idx)
		}
	}

	minN, maxN := a.NgramRange[0], a.NgramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("textfeat: bad ngram range [%d, %d]", minN, maxN)
	}

	v := &Vectorizer{
		vocab:     a.Vocabulary,
		idf:       a.IDF,
		minN:      minN,
		maxN:      maxN,
		sublinear: a.SublinearTF,
		fold:      a.Lowercase == nil || *a.Lowercase,
		stop:      make(map[string]struct{}, len(a.StopWords)),
	}
	for _, w := range a.StopWords {
		v.stop[v.normalize(w)] = struct{}{}
	}
	return v, nil
}

// Dim is the output width
func (v *Vectorizer) Dim() int { return len(v.idf) }

// Transform returns the L2 normalized tf-idf vector for text
// out of vocabulary text yields the zero vector
func (v *Vectorizer) Transform(text string) []float64 {
	out := make([]float64, len(v.idf))

	toks := v.tokens(text)
	counts := make(map[int]float64)
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(toks); i++ {
			gram := strings.Join(toks[i:i+n], " ")
			if idx, ok := v.vocab[gram]; ok {
				counts[idx]++
			}
		}
	}

	var sq float64
	for idx, tf := range counts {
		if v.sublinear {
			tf = 1 + math.Log(tf)
		}
		w := tf * v.idf[idx]
		out[idx] = w
		sq += w * w
	}
	if sq > 0 {
		l2 := math.Sqrt(sq)
		for idx := range counts {
			out[idx] /= l2
		}
	}
	return out
}

func (v *Vectorizer) normalize(s string) string {
	s = norm.NFKC.String(s)
	if v.fold {
		s = cases.Fold().String(s)
	}
	return s
}

func (v *Vectorizer) tokens(text string) []string {
	text = v.normalize(text)
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, skip := v.stop[f]; skip {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Pad appends zero auxiliary columns so vec reaches width
func Pad(vec []float64, width int) ([]float64, error) {
	if len(vec) > width {
		return nil, fmt.Errorf("textfeat: vector width %d exceeds model width %d", len(vec), width)
	}
	if len(vec) == width {
		return vec, nil
	}
	out := make([]float64, width)
	copy(out, vec)
	return out, nil
}
