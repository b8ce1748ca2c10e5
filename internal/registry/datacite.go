package registry

import (
	"context"
	"fmt"
)

// DataCiteMeta is the attribute subset consumed from a DataCite DOI
// record. Accessors default absent fields to empty values, never nil
// pointers, so callers can use them without presence checks.
type DataCiteMeta struct {
	Titles []struct {
		Title string `json:"title"`
	} `json:"titles"`
	Descriptions []struct {
		Description string `json:"description"`
	} `json:"descriptions"`
	Creators []struct {
		Name string `json:"name"`
	} `json:"creators"`
	Publisher string `json:"publisher"`
	Subjects  []struct {
		Subject string `json:"subject"`
	} `json:"subjects"`
}

type dataciteEnvelope struct {
	Data struct {
		Attributes DataCiteMeta `json:"attributes"`
	} `json:"data"`
}

// Title returns the first title, or "".
func (m *DataCiteMeta) Title() string {
	if len(m.Titles) == 0 {
		return ""
	}

	return m.Titles[0].Title
}

// Description returns the first description, or "".
func (m *DataCiteMeta) Description() string {
	if len(m.Descriptions) == 0 {
		return ""
	}

	return m.Descriptions[0].Description
}

// CreatorNames returns the creator display names in record order.
func (m *DataCiteMeta) CreatorNames() []string {
	names := make([]string, 0, len(m.Creators))
	for _, creator := range m.Creators {
		if creator.Name != "" {
			names = append(names, creator.Name)
		}
	}

	return names
}

// SubjectTerms returns the subject keywords in record order.
func (m *DataCiteMeta) SubjectTerms() []string {
	terms := make([]string, 0, len(m.Subjects))
	for _, subject := range m.Subjects {
		if subject.Subject != "" {
			terms = append(terms, subject.Subject)
		}
	}

	return terms
}

// DataCite fetches the DataCite record for a DOI. Unlike the CrossRef
// path there are no nested lookups; the field set is materially smaller.
func (c *Client) DataCite(ctx context.Context, doi string) (*DataCiteMeta, error) {
	const op = "registry.datacite"

	body, err := c.get(ctx, op, fmt.Sprintf("%s/dois/%s", c.dataciteBase, escapeDOI(doi)))
	if err != nil {
		return nil, err
	}

	var envelope dataciteEnvelope
	if err := decode(op, body, &envelope); err != nil {
		return nil, err
	}

	return &envelope.Data.Attributes, nil
}
