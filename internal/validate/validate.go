// Package validate scores how well a candidate bibliographic record
// matches the text of the document it was extracted from. The score is
// the fraction of query terms, title words plus author surnames, found
// in a normalized window at the front of the document.
package validate

import (
	"strings"

	"github.com/lnielsen-cern/docmeta/internal/meta"
)

// DefaultThreshold is the acceptance cutoff used when a configured
// threshold falls outside (0, 1].
const DefaultThreshold = 0.8

// DefaultWindow is how many characters of the document front matter
// are searched. Title and authors live on the first pages; scanning
// further only picks up citation noise.
const DefaultWindow = 5000

// Markers that open the bibliography section. Everything from the first
// one found onward is cut before scoring, so a record is never accepted
// on the strength of its own citation.
var referenceMarkers = []string{"References", "REFERENCES", "Bibliography", "BIBLIOGRAPHY"}

// Result is the outcome of scoring one record against one document.
type Result struct {
	Score     float64 `json:"score"`
	Threshold float64 `json:"threshold"`
	Accepted  bool    `json:"accepted"`
}

// Scorer holds the scoring configuration.
type Scorer struct {
	threshold float64
	window    int
}

// New creates a Scorer. A threshold outside (0, 1] is replaced by
// DefaultThreshold; a window of zero or less by DefaultWindow.
func New(threshold float64, window int) *Scorer {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}

	if window <= 0 {
		window = DefaultWindow
	}

	return &Scorer{threshold: threshold, window: window}
}

// Score rates the record against the document text. A record with no
// title words and no author surnames yields zero, never a vacuous
// acceptance.
func (s *Scorer) Score(text string, rec meta.Record) Result {
	result := Result{Threshold: s.threshold}

	terms := queryTerms(rec)
	if len(terms) == 0 {
		return result
	}

	haystack := normalize(window(text, s.window))

	hits := 0
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			hits++
		}
	}

	result.Score = float64(hits) / float64(len(terms))
	result.Accepted = result.Score >= s.threshold

	return result
}

// queryTerms builds the normalized term list: words of the primary
// title plus author surnames. Terms that normalize to nothing (pure
// punctuation) are dropped.
func queryTerms(rec meta.Record) []string {
	raw := append(rec.TitleTerms(), rec.Surnames()...)

	terms := make([]string, 0, len(raw))
	for _, term := range raw {
		if t := normalize(term); t != "" {
			terms = append(terms, t)
		}
	}

	return terms
}

// window cuts the text at the first bibliography marker, then caps it
// at limit characters.
func window(text string, limit int) string {
	cut := len(text)
	for _, marker := range referenceMarkers {
		if idx := strings.Index(text, marker); idx != -1 && idx < cut {
			cut = idx
		}
	}

	text = text[:cut]
	if len(text) > limit {
		text = text[:limit]
	}

	return text
}

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// normalize lowercases and strips all punctuation so hyphenation and
// quoting differences between the record and the extracted text do not
// cost hits.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if strings.ContainsRune(punctuation, r) {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
