package miner

import (
	"reflect"
	"strings"
	"testing"
)

func TestMine(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "bare doi",
			text:     "as shown in 10.1000/xyz123 and elsewhere",
			expected: []string{"10.1000/xyz123"},
		},
		{
			name:     "labelled doi with supplementary marker",
			text:     "doi:10.1234/ABC.g0extra",
			expected: []string{"10.1234/ABC"},
		},
		{
			name:     "uppercase label",
			text:     "DOI:10.1021/acs.5b01234",
			expected: []string{"10.1021/acs.5b01234"},
		},
		{
			name:     "trailing sentence punctuation trimmed",
			text:     "available at 10.1002/cpe.3123.",
			expected: []string{"10.1002/cpe.3123"},
		},
		{
			name:     "sandbox issuers excluded",
			text:     "see 10.5281/zenodo.123456 and 10.5072/example.full",
			expected: nil,
		},
		{
			name:     "placeholder patterns excluded",
			text:     "10.1016/j.0000123 10.1234/abcxx01 10.1234/ends- 10.1234/open/",
			expected: nil,
		},
		{
			name:     "surrounding brackets stripped",
			text:     "[10.1103/physrevd.86.010001]",
			expected: []string{"10.1103/physrevd.86.010001"},
		},
		{
			name:     "duplicates removed first seen order",
			text:     "10.1000/b 10.1000/a 10.1000/b 10.1000/a",
			expected: []string{"10.1000/b", "10.1000/a"},
		},
		{
			name:     "empty input",
			text:     "",
			expected: nil,
		},
		{
			name:     "no identifier present",
			text:     "an ordinary sentence with version 10.4 mentioned",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Mine(tc.text)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Mine(%q) = %v, want %v", tc.text, got, tc.expected)
			}
		})
	}
}

func TestMineIdempotent(t *testing.T) {
	text := "intro 10.1000/xyz123 body doi:10.1234/work.1 again 10.1000/xyz123 refs"

	first := Mine(text)
	second := Mine(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated mining differs: %v vs %v", first, second)
	}

	seen := make(map[string]bool)
	for _, doi := range first {
		if seen[doi] {
			t.Errorf("duplicate candidate %q in %v", doi, first)
		}

		seen[doi] = true
	}
}

func TestMineSandboxNeverAppears(t *testing.T) {
	text := strings.Join([]string{
		"10.5281/zenodo.1",
		"doi:10.5281/zenodo.2",
		"10.5072/fk2.abc",
		"10.1000/real.1",
	}, " ")

	for _, doi := range Mine(text) {
		if strings.Contains(doi, "10.5281") || strings.Contains(doi, "10.5072") {
			t.Errorf("sandbox identifier %q leaked into output", doi)
		}
	}
}

func TestCanonical(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{"bare", "10.1000/xyz123", "10.1000/xyz123"},
		{"label", "doi:10.1000/xyz123", "10.1000/xyz123"},
		{"resolver url", "https://doi.org/10.1000/xyz123", "10.1000/xyz123"},
		{"legacy resolver", "http://dx.doi.org/10.1000/xyz123", "10.1000/xyz123"},
		{"whitespace", "  10.1000/xyz123  ", "10.1000/xyz123"},
		{"no doi shape", "urn:isbn:978-3-16-148410-0", ""},
		{"prefix without suffix", "10.1000", ""},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Canonical(tc.in); got != tc.expected {
				t.Errorf("Canonical(%q) = %q, want %q", tc.in, got, tc.expected)
			}
		})
	}
}
