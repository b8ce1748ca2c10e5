// Package meta defines the canonical bibliographic record and the
// per-source normalization that maps each provider's raw fields onto it.
// The canonical key set is fixed; source-prefixed names never cross this
// package's boundary.
package meta

import "strings"

// Journal is the parent-publication sub-record carried by registry
// results that resolved an ISSN.
type Journal struct {
	Title     string   `json:"title,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	ISSN      []string `json:"issn,omitempty"`
}

// Record is the canonical, source-agnostic output schema of the
// pipeline. Callers always receive one; a zero Record means extraction
// produced nothing, which is a valid outcome rather than an error.
type Record struct {
	DOI            string   `json:"doi,omitempty"`
	Title          []string `json:"title,omitempty"`
	Author         []string `json:"author,omitempty"`
	Subject        []string `json:"subject,omitempty"`
	Description    string   `json:"description,omitempty"`
	Publisher      string   `json:"publisher,omitempty"`
	Type           string   `json:"type,omitempty"`
	Issue          string   `json:"issue,omitempty"`
	Volume         string   `json:"volume,omitempty"`
	ISSN           []string `json:"issn,omitempty"`
	ISBN           []string `json:"isbn,omitempty"`
	ReferenceCount int      `json:"reference-count,omitempty"`
	LicenseURL     string   `json:"license-url,omitempty"`
	URL            string   `json:"url,omitempty"`
	Journal        *Journal `json:"journal,omitempty"`

	// Fields only embedded metadata supplies.
	Rights      []string `json:"rights,omitempty"`
	Language    []string `json:"language,omitempty"`
	Copyright   string   `json:"copyright,omitempty"`
	Distributor string   `json:"distributor,omitempty"`
	EISSN       string   `json:"eissn,omitempty"`
}

// IsEmpty reports whether the record carries no data at all.
func (r Record) IsEmpty() bool {
	return r.DOI == "" && len(r.Title) == 0 && len(r.Author) == 0 &&
		len(r.Subject) == 0 && r.Description == "" && r.Publisher == "" &&
		r.Type == "" && r.Issue == "" && r.Volume == "" &&
		len(r.ISSN) == 0 && len(r.ISBN) == 0 && r.ReferenceCount == 0 &&
		r.LicenseURL == "" && r.URL == "" && r.Journal == nil &&
		len(r.Rights) == 0 && len(r.Language) == 0 && r.Copyright == "" &&
		r.Distributor == "" && r.EISSN == ""
}

// Merge combines a registry result with validated embedded metadata.
// Registry-sourced fields are authoritative and are never overwritten;
// embedded fields land only where the registry left a gap.
func Merge(registry, embedded Record) Record {
	out := registry

	fillString(&out.DOI, embedded.DOI)
	fillStrings(&out.Title, embedded.Title)
	fillStrings(&out.Author, embedded.Author)
	fillStrings(&out.Subject, embedded.Subject)
	fillString(&out.Description, embedded.Description)
	fillString(&out.Publisher, embedded.Publisher)
	fillString(&out.Type, embedded.Type)
	fillString(&out.Issue, embedded.Issue)
	fillString(&out.Volume, embedded.Volume)
	fillStrings(&out.ISSN, embedded.ISSN)
	fillStrings(&out.ISBN, embedded.ISBN)

	if out.ReferenceCount == 0 {
		out.ReferenceCount = embedded.ReferenceCount
	}

	fillString(&out.LicenseURL, embedded.LicenseURL)
	fillString(&out.URL, embedded.URL)

	if out.Journal == nil {
		out.Journal = embedded.Journal
	}

	fillStrings(&out.Rights, embedded.Rights)
	fillStrings(&out.Language, embedded.Language)
	fillString(&out.Copyright, embedded.Copyright)
	fillString(&out.Distributor, embedded.Distributor)
	fillString(&out.EISSN, embedded.EISSN)

	return out
}

func fillString(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}

func fillStrings(dst *[]string, src []string) {
	if len(*dst) == 0 && len(src) > 0 {
		*dst = append([]string(nil), src...)
	}
}

// Surnames extracts the surname segment of each author, defined as the
// part before the first comma. Used by validation scoring.
func (r Record) Surnames() []string {
	surnames := make([]string, 0, len(r.Author))

	for _, author := range r.Author {
		surname := author
		if idx := strings.Index(author, ","); idx != -1 {
			surname = author[:idx]
		}

		surname = strings.TrimSpace(surname)
		if surname != "" {
			surnames = append(surnames, surname)
		}
	}

	return surnames
}
