package meta

import (
	"fmt"
	"strings"

	"github.com/lnielsen-cern/docmeta/internal/registry"
	"github.com/lnielsen-cern/docmeta/internal/xmp"
)

// FromCrossref maps a CrossRef works item onto the canonical record.
// Editors stand in for authors only when the work lists no authors;
// when both exist the editor list is dropped rather than mixed in.
func FromCrossref(work *registry.Work) Record {
	if work == nil {
		return Record{}
	}

	rec := Record{
		DOI:            work.DOI,
		Title:          append([]string(nil), work.Title...),
		Subject:        append([]string(nil), work.Subject...),
		Publisher:      work.Publisher,
		Type:           work.Type,
		Issue:          work.Issue,
		Volume:         work.Volume,
		ISSN:           append([]string(nil), work.ISSN...),
		ISBN:           append([]string(nil), work.ISBN...),
		ReferenceCount: work.ReferenceCount,
		URL:            work.URL,
	}

	contributors := work.Author
	if len(contributors) == 0 {
		contributors = work.Editor
	}

	for _, c := range contributors {
		if name := contributorName(c); name != "" {
			rec.Author = append(rec.Author, name)
		}
	}

	if len(work.License) > 0 {
		rec.LicenseURL = work.License[0].URL
	}

	if work.Journal != nil {
		rec.Journal = &Journal{
			Title:     work.Journal.Title,
			Publisher: work.Journal.Publisher,
			ISSN:      append([]string(nil), work.Journal.ISSN...),
		}
	}

	return rec
}

func contributorName(c registry.Contributor) string {
	switch {
	case c.Family == "":
		return c.Given
	case c.Given == "":
		return c.Family
	default:
		return fmt.Sprintf("%s, %s", c.Family, c.Given)
	}
}

// FromDataCite maps a DataCite record onto the canonical record. The
// DOI is carried in, not read from the payload; DataCite lookups are
// always keyed by an identifier the caller already holds.
func FromDataCite(dcMeta *registry.DataCiteMeta, doi string) Record {
	if dcMeta == nil {
		return Record{DOI: doi}
	}

	rec := Record{
		DOI:       doi,
		Author:    dcMeta.CreatorNames(),
		Subject:   dcMeta.SubjectTerms(),
		Publisher: dcMeta.Publisher,
	}

	if title := dcMeta.Title(); title != "" {
		rec.Title = []string{title}
	}

	rec.Description = dcMeta.Description()

	return rec
}

// FromEmbedded maps scrubbed XMP properties onto the canonical record,
// applying the identifier and publisher precedence rules the property
// store defines.
func FromEmbedded(props xmp.Properties) Record {
	rec := Record{
		DOI:         props.DOI(),
		Author:      append([]string(nil), props.Creator...),
		Subject:     append([]string(nil), props.Subject...),
		Description: props.Description,
		Publisher:   props.PublisherName(),
		Rights:      append([]string(nil), props.Rights...),
		Language:    append([]string(nil), props.Language...),
		Copyright:   props.Copyright,
		Distributor: props.Distributor,
		EISSN:       props.EISSN,
	}

	if props.Title != "" {
		rec.Title = []string{props.Title}
	}

	if props.ISSN != "" {
		rec.ISSN = []string{props.ISSN}
	}

	if props.ISBN != "" {
		rec.ISBN = []string{props.ISBN}
	}

	return rec
}

// TitleTerms returns the whitespace-separated words of the primary
// title, the query term source for validation scoring.
func (r Record) TitleTerms() []string {
	if len(r.Title) == 0 {
		return nil
	}

	return strings.Fields(r.Title[0])
}
