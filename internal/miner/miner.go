// Package miner recovers DOI candidates from free document text.
//
// The heuristics trade recall for precision: a malformed candidate that
// slips through is caught downstream by validation, while sandbox and
// placeholder identifiers are dropped here because no registry lookup
// can redeem them.
package miner

import (
	"regexp"
	"strings"
)

// doiPattern is the identifier grammar. It is used as a presence test on
// a cleaned token: a token that contains a DOI-shaped run is kept whole,
// since suffix case and punctuation are handled by the noise-stripping
// passes around it.
var doiPattern = regexp.MustCompile(`10\.\d{4}[\d:.\-/a-z]+`)

// urlPrefix matches the dereferenceable presentation forms of a DOI.
var urlPrefix = regexp.MustCompile(`(?i)^https?://(?:dx\.)?doi\.org/`)

// punctuationInDOI is the punctuation retained during token cleaning;
// everything else in the ASCII punctuation set is stripped.
const punctuationInDOI = ":/.-()"

const allPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// sandboxPrefixes denote test registrations (Zenodo sandbox and the
// DataCite test prefix). Identifiers containing them are never real
// citable works.
var sandboxPrefixes = []string{"10.5281", "10.5072"}

// supplementMarkers denote supplementary-file sub-resources (figure,
// supplement, table). The marker and everything after it is cut so the
// candidate resolves to the cited work itself.
var supplementMarkers = []string{".g0", ".s0", ".t0"}

// Mine scans text for DOI candidates and returns them in first-seen
// order with duplicates removed. Empty input yields an empty result.
func Mine(text string) []string {
	var candidates []string

	seen := make(map[string]bool)

	for _, token := range strings.Fields(text) {
		doi, ok := cleanToken(token)
		if !ok || seen[doi] {
			continue
		}

		seen[doi] = true

		candidates = append(candidates, doi)
	}

	return candidates
}

// cleanToken applies the noise-stripping passes to a single whitespace
// token and reports whether a candidate survived.
func cleanToken(token string) (string, bool) {
	token = stripExcludedPunctuation(token)
	token = trimOneTrailing(token, ".,:")

	if !doiPattern.MatchString(token) {
		return "", false
	}

	for _, prefix := range sandboxPrefixes {
		if strings.Contains(token, prefix) {
			return "", false
		}
	}

	if strings.HasSuffix(token, "/") || strings.HasSuffix(token, "-") ||
		strings.Contains(token, "0000") || strings.Contains(token, "xx") {
		return "", false
	}

	for _, marker := range supplementMarkers {
		if idx := strings.Index(token, marker); idx != -1 {
			token = token[:idx]
		}
	}

	if len(token) >= 4 && strings.EqualFold(token[:4], "doi:") {
		token = token[4:]
	}

	// Keep only the identifier itself when label noise survived the
	// punctuation pass.
	if idx := strings.Index(token, "10."); idx > 0 {
		token = token[idx:]
	}

	token = trimOneTrailing(token, ".-:")

	if token == "" || !strings.HasPrefix(token, "10.") {
		return "", false
	}

	return token, true
}

// Canonical normalizes an identifier read from embedded metadata into
// the bare stored form: presentation prefixes (doi: label, resolver
// URLs) are stripped and the 10.-rooted identifier is returned. It
// returns "" when no DOI shape is present.
func Canonical(s string) string {
	s = strings.TrimSpace(s)
	s = urlPrefix.ReplaceAllString(s, "")

	if len(s) >= 4 && strings.EqualFold(s[:4], "doi:") {
		s = strings.TrimSpace(s[4:])
	}

	idx := strings.Index(s, "10.")
	if idx == -1 {
		return ""
	}

	s = s[idx:]
	if !strings.Contains(s, "/") {
		return ""
	}

	return s
}

// stripExcludedPunctuation removes every punctuation character that is
// not part of DOI syntax, keeping ":/.-()".
func stripExcludedPunctuation(token string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(allPunctuation, r) && !strings.ContainsRune(punctuationInDOI, r) {
			return -1
		}

		return r
	}, token)
}

// trimOneTrailing removes a single trailing character when it is in cutset.
func trimOneTrailing(s, cutset string) string {
	if s != "" && strings.ContainsRune(cutset, rune(s[len(s)-1])) {
		return s[:len(s)-1]
	}

	return s
}
