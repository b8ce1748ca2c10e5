package registry

import (
	"context"
	"fmt"
)

// Contributor is a CrossRef author or editor entry.
type Contributor struct {
	Family string `json:"family"`
	Given  string `json:"given"`
}

// License is a CrossRef license entry; only the URL is consumed.
type License struct {
	URL string `json:"URL"`
}

// JournalInfo is the parent-journal record fetched by ISSN.
type JournalInfo struct {
	Title     string   `json:"title,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	ISSN      []string `json:"issn,omitempty"`
}

// Work is one CrossRef works item. Journal is populated by the nested
// journal lookup when the work carries an ISSN; it stays nil when that
// lookup fails, per the empty-on-failure contract.
type Work struct {
	Subject        []string      `json:"subject"`
	Author         []Contributor `json:"author"`
	Editor         []Contributor `json:"editor"`
	Title          []string      `json:"title"`
	Type           string        `json:"type"`
	DOI            string        `json:"DOI"`
	URL            string        `json:"URL"`
	Publisher      string        `json:"publisher"`
	ReferenceCount int           `json:"reference-count"`
	Issue          string        `json:"issue"`
	Volume         string        `json:"volume"`
	License        []License     `json:"license"`
	ISBN           []string      `json:"ISBN"`
	ISSN           []string      `json:"ISSN"`
	Journal        *JournalInfo  `json:"-"`
}

type worksEnvelope struct {
	Status  string `json:"status"`
	Message struct {
		TotalResults int    `json:"total-results"`
		Items        []Work `json:"items"`
	} `json:"message"`
}

type journalEnvelope struct {
	Status  string `json:"status"`
	Message struct {
		Title     string   `json:"title"`
		Publisher string   `json:"publisher"`
		ISSN      []string `json:"ISSN"`
	} `json:"message"`
}

// Work fetches the CrossRef works record for a DOI. A non-"ok" status
// or a match count other than exactly one is NotFound. When the work
// carries an ISSN, one nested journal lookup runs for the first ISSN;
// its failure leaves Work.Journal nil and is not surfaced.
func (c *Client) Work(ctx context.Context, doi string) (*Work, error) {
	const op = "registry.crossref"

	body, err := c.get(ctx, op, fmt.Sprintf("%s/works?filter=doi:%s", c.apiBase, escapeDOI(doi)))
	if err != nil {
		return nil, err
	}

	var envelope worksEnvelope
	if err := decode(op, body, &envelope); err != nil {
		return nil, err
	}

	if envelope.Status != "ok" {
		return nil, newError(op, KindNotFound, fmt.Errorf("status %q", envelope.Status))
	}

	if envelope.Message.TotalResults != 1 || len(envelope.Message.Items) != 1 {
		return nil, newError(op, KindNotFound,
			fmt.Errorf("expected exactly one match, got %d", envelope.Message.TotalResults))
	}

	work := envelope.Message.Items[0]

	if len(work.ISSN) > 0 {
		if journal, err := c.JournalByISSN(ctx, work.ISSN[0]); err == nil {
			work.Journal = journal
		}
	}

	return &work, nil
}

// JournalByISSN fetches title, publisher, and ISSN variants of the
// journal registered under the given ISSN.
func (c *Client) JournalByISSN(ctx context.Context, issn string) (*JournalInfo, error) {
	const op = "registry.crossref-journal"

	body, err := c.get(ctx, op, fmt.Sprintf("%s/journals/%s", c.apiBase, escapeDOI(issn)))
	if err != nil {
		return nil, err
	}

	var envelope journalEnvelope
	if err := decode(op, body, &envelope); err != nil {
		return nil, err
	}

	if envelope.Status != "ok" {
		return nil, newError(op, KindNotFound, fmt.Errorf("status %q", envelope.Status))
	}

	return &JournalInfo{
		Title:     envelope.Message.Title,
		Publisher: envelope.Message.Publisher,
		ISSN:      envelope.Message.ISSN,
	}, nil
}
